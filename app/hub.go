package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/plotwin/themes"
)

// repaintMsg forces a redraw after out-of-loop draw calls.
type repaintMsg struct{}

const hubChromeRows = 2 // window bar + help line

var (
	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true).Padding(0, 1).Underline(true)
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// hub is the bubbletea model multiplexing all open windows.
type hub struct {
	app           *App
	width, height int
}

func newHub(a *App) *hub {
	return &hub{app: a, width: 80, height: 24}
}

func (h *hub) Init() tea.Cmd { return nil }

func (h *hub) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h.width, h.height = msg.Width, msg.Height
		return h, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return h, tea.Quit
		case "tab", "right":
			h.app.cycleFocus(1)
		case "shift+tab", "left":
			h.app.cycleFocus(-1)
		case "q", "esc":
			if w := h.app.focused(); w != nil {
				w.RequestClose()
			}
			if h.app.NumWindows() == 0 {
				return h, tea.Quit
			}
		case "t":
			h.cycleTheme()
		default:
			s := msg.String()
			if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
				h.app.focusIndex(int(s[0] - '1'))
			}
		}
		return h, nil

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionMotion {
			if w := h.app.focused(); w != nil {
				// content area starts below the window bar
				w.CursorMoved(msg.X, msg.Y-1)
			}
		}
		return h, nil

	case repaintMsg:
		return h, nil
	}
	return h, nil
}

// cycleTheme advances the process default theme; open windows pick it
// up on their next draw call.
func (h *hub) cycleTheme() {
	names := themes.Names()
	cur := themes.Default().Name
	for i, name := range names {
		if name == cur {
			themes.SetDefault(names[(i+1)%len(names)])
			return
		}
	}
}

func (h *hub) View() string {
	wins, focus := h.app.snapshot()
	if len(wins) == 0 {
		return helpStyle.Render("no windows open")
	}
	if focus < 0 || focus >= len(wins) {
		focus = 0
	}

	var bar strings.Builder
	for i, w := range wins {
		label := fmt.Sprintf("%d:%s", i+1, w.Title())
		if i == focus {
			bar.WriteString(activeTabStyle.Render(label))
		} else {
			bar.WriteString(tabStyle.Render(label))
		}
	}

	body := wins[focus].Render(h.width, h.height-hubChromeRows)
	help := helpStyle.Render("tab:switch  1-9:select  t:theme  q:close window  ctrl+c:quit")
	return bar.String() + "\n" + body + "\n" + help
}
