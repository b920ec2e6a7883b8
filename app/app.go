// Package app owns the process-wide application instance: the single
// bubbletea event loop that multiplexes every open plot and image
// window, routes key and mouse events to the focused window, and
// exits once all windows are closed.
package app

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Window is the surface the event loop manages. Plot and image
// displays implement it.
type Window interface {
	// Handle is the window's registry slot.
	Handle() int
	// Title labels the window in the hub's window bar.
	Title() string
	// Render draws the window contents into a cols x rows cell area.
	Render(cols, rows int) string
	// CursorMoved reports a mouse position in cell coordinates
	// relative to the window's content area.
	CursorMoved(col, row int)
	// RequestClose is the user-initiated exit path. Implementations
	// must unregister themselves from their registry and from the app.
	RequestClose()
}

// App is the shared application instance. It exists exactly once per
// process; obtain it with Get.
type App struct {
	mu      sync.Mutex
	windows []Window
	focus   int
	program *tea.Program
	running bool
}

var (
	instance *App
	once     sync.Once
)

// Get returns the process-wide App, constructing it on first use.
// Construction does not start the event loop.
func Get() *App {
	once.Do(func() {
		instance = &App{}
	})
	return instance
}

// Register adds a window to the event loop and focuses it.
func (a *App) Register(w Window) {
	a.mu.Lock()
	a.windows = append(a.windows, w)
	a.focus = len(a.windows) - 1
	a.mu.Unlock()
	a.Refresh()
}

// Unregister removes a window. When the loop is running and no
// windows remain, the loop quits.
func (a *App) Unregister(w Window) {
	a.mu.Lock()
	for i, win := range a.windows {
		if win == w {
			a.windows = append(a.windows[:i], a.windows[i+1:]...)
			break
		}
	}
	if a.focus >= len(a.windows) {
		a.focus = len(a.windows) - 1
	}
	empty := len(a.windows) == 0
	p := a.program
	a.mu.Unlock()
	if empty && p != nil {
		// async: close paths run inside Update, and a synchronous
		// Quit would block on the loop's own message channel
		go p.Quit()
		return
	}
	a.Refresh()
}

// Raise focuses the given window.
func (a *App) Raise(w Window) {
	a.mu.Lock()
	for i, win := range a.windows {
		if win == w {
			a.focus = i
			break
		}
	}
	a.mu.Unlock()
	a.Refresh()
}

// Refresh asks the running loop to repaint. No-op when the loop is
// not running. The send is asynchronous: Refresh is reached from
// inside hub.Update (close and raise paths), where a synchronous
// Send would block on the loop's own message channel.
func (a *App) Refresh() {
	a.mu.Lock()
	p := a.program
	a.mu.Unlock()
	if p != nil {
		go p.Send(repaintMsg{})
	}
}

// NumWindows reports the number of managed windows.
func (a *App) NumWindows() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.windows)
}

// Running reports whether the event loop is active.
func (a *App) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.running
}

// MainLoop runs the event loop until every window has been closed or
// the user quits. It returns immediately when no windows are open.
// Interactive callers typically build their windows first and call
// MainLoop last.
func (a *App) MainLoop() error {
	a.mu.Lock()
	if a.running || len(a.windows) == 0 {
		a.mu.Unlock()
		return nil
	}
	a.running = true
	p := tea.NewProgram(newHub(a), tea.WithAltScreen(), tea.WithMouseAllMotion())
	a.program = p
	a.mu.Unlock()

	_, err := p.Run()

	a.mu.Lock()
	a.program = nil
	a.running = false
	a.mu.Unlock()
	return err
}

// snapshot returns the current window list and focus index.
func (a *App) snapshot() ([]Window, int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	wins := make([]Window, len(a.windows))
	copy(wins, a.windows)
	return wins, a.focus
}

func (a *App) focused() Window {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.focus < 0 || a.focus >= len(a.windows) {
		return nil
	}
	return a.windows[a.focus]
}

func (a *App) cycleFocus(dir int) {
	a.mu.Lock()
	if n := len(a.windows); n > 0 {
		a.focus = ((a.focus+dir)%n + n) % n
	}
	a.mu.Unlock()
}

func (a *App) focusIndex(i int) {
	a.mu.Lock()
	if i >= 0 && i < len(a.windows) {
		a.focus = i
	}
	a.mu.Unlock()
}
