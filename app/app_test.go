package app

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// fakeWindow is a minimal Window for event-loop tests.
type fakeWindow struct {
	app     *App
	handle  int
	cursorX int
	cursorY int
	closed  bool
}

func (w *fakeWindow) Handle() int   { return w.handle }
func (w *fakeWindow) Title() string { return fmt.Sprintf("win%d", w.handle) }
func (w *fakeWindow) Render(cols, rows int) string {
	return fmt.Sprintf("[%d %dx%d]", w.handle, cols, rows)
}
func (w *fakeWindow) CursorMoved(col, row int) { w.cursorX, w.cursorY = col, row }
func (w *fakeWindow) RequestClose() {
	w.closed = true
	w.app.Unregister(w)
}

func newTestApp(n int) (*App, []*fakeWindow) {
	a := &App{}
	wins := make([]*fakeWindow, n)
	for i := range wins {
		wins[i] = &fakeWindow{app: a, handle: i + 1}
		a.Register(wins[i])
	}
	return a, wins
}

func TestRegisterFocusesNewWindow(t *testing.T) {
	a, wins := newTestApp(3)

	if a.NumWindows() != 3 {
		t.Fatalf("expected 3 windows, got %d", a.NumWindows())
	}
	if a.focused() != wins[2] {
		t.Error("registering should focus the new window")
	}

	a.Raise(wins[0])
	if a.focused() != wins[0] {
		t.Error("Raise should move focus")
	}
}

func TestUnregisterAdjustsFocus(t *testing.T) {
	a, wins := newTestApp(2)

	a.Unregister(wins[1])
	if a.NumWindows() != 1 {
		t.Fatalf("expected 1 window, got %d", a.NumWindows())
	}
	if a.focused() != wins[0] {
		t.Error("focus should fall back to a remaining window")
	}

	a.Unregister(wins[0])
	if a.focused() != nil {
		t.Error("no windows means no focus")
	}
}

func TestCycleFocusWraps(t *testing.T) {
	a, wins := newTestApp(3)

	a.cycleFocus(1)
	if a.focused() != wins[0] {
		t.Error("cycling forward from the last window should wrap to the first")
	}
	a.cycleFocus(-1)
	if a.focused() != wins[2] {
		t.Error("cycling backward from the first window should wrap to the last")
	}
}

func TestHubTabCycles(t *testing.T) {
	a, wins := newTestApp(2)
	h := newHub(a)

	h.Update(tea.KeyMsg{Type: tea.KeyTab})
	if a.focused() != wins[0] {
		t.Error("tab should cycle focus")
	}
	h.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if a.focused() != wins[1] {
		t.Error("shift+tab should cycle back")
	}
}

func TestHubNumberKeysSelect(t *testing.T) {
	a, wins := newTestApp(3)
	h := newHub(a)

	h.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	if a.focused() != wins[1] {
		t.Error("'2' should focus the second window")
	}
	h.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'9'}})
	if a.focused() != wins[1] {
		t.Error("out-of-range selection should keep focus")
	}
}

func TestHubCloseKey(t *testing.T) {
	a, wins := newTestApp(2)
	h := newHub(a)

	_, cmd := h.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !wins[1].closed {
		t.Error("'q' should close the focused window")
	}
	if a.NumWindows() != 1 {
		t.Fatalf("expected 1 window, got %d", a.NumWindows())
	}
	if cmd != nil {
		t.Error("loop should keep running while windows remain")
	}

	_, cmd = h.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Error("closing the last window should quit the loop")
	}
}

func TestHubCloseDoesNotBlockLoop(t *testing.T) {
	a, wins := newTestApp(2)
	h := newHub(a)

	// A program whose message channel has no receiver, the situation
	// hub.Update runs in: it IS the receiver, so any synchronous send
	// back to the loop can never complete.
	a.mu.Lock()
	a.program = tea.NewProgram(h)
	a.mu.Unlock()

	done := make(chan struct{})
	go func() {
		h.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
		h.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("closing windows from the event loop blocked")
	}
	if !wins[1].closed || !wins[0].closed {
		t.Error("both windows should have closed")
	}
	if a.NumWindows() != 0 {
		t.Errorf("expected 0 windows, got %d", a.NumWindows())
	}
}

func TestHubMouseMotion(t *testing.T) {
	a, wins := newTestApp(1)
	h := newHub(a)

	h.Update(tea.MouseMsg{X: 12, Y: 6, Action: tea.MouseActionMotion})
	if wins[0].cursorX != 12 || wins[0].cursorY != 5 {
		t.Errorf("motion should land below the window bar, got (%d,%d)",
			wins[0].cursorX, wins[0].cursorY)
	}
}

func TestHubView(t *testing.T) {
	a, _ := newTestApp(2)
	h := newHub(a)
	h.Update(tea.WindowSizeMsg{Width: 60, Height: 20})

	out := h.View()
	if !strings.Contains(out, "win1") || !strings.Contains(out, "win2") {
		t.Error("window bar should list all windows")
	}
	if !strings.Contains(out, "[2 60x18]") {
		t.Errorf("focused window should render at hub size minus chrome:\n%s", out)
	}
}

func TestHubViewEmpty(t *testing.T) {
	a := &App{}
	h := newHub(a)
	if !strings.Contains(h.View(), "no windows") {
		t.Error("empty hub should say so")
	}
}
