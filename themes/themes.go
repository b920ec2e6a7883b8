package themes

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a named bundle of default visual style choices shared by
// plot and image windows.
type Theme struct {
	Name       string
	Background lipgloss.Color
	Foreground lipgloss.Color
	Grid       lipgloss.Color
	Axis       lipgloss.Color
	Title      lipgloss.Color
	Muted      lipgloss.Color
	// Traces is the color cycle for unstyled traces.
	Traces []lipgloss.Color
}

// TraceColor returns the cycle color for trace index i.
func (t Theme) TraceColor(i int) lipgloss.Color {
	if len(t.Traces) == 0 {
		return t.Foreground
	}
	if i < 0 {
		i = -i
	}
	return t.Traces[i%len(t.Traces)]
}

// ErrUnknownTheme is returned when a theme name is not in the fixed set.
var ErrUnknownTheme = fmt.Errorf("themes: unknown theme")

// DefaultName is the theme selected at startup.
const DefaultName = "light"

var (
	Light = Theme{
		Name:       "light",
		Background: lipgloss.Color("#ffffff"),
		Foreground: lipgloss.Color("#222222"),
		Grid:       lipgloss.Color("#dddddd"),
		Axis:       lipgloss.Color("#555555"),
		Title:      lipgloss.Color("#000000"),
		Muted:      lipgloss.Color("#999999"),
		Traces: []lipgloss.Color{
			"#1f77b4", "#d62728", "#2ca02c", "#ff7f0e",
			"#9467bd", "#8c564b", "#e377c2", "#17becf",
		},
	}

	Dark = Theme{
		Name:       "dark",
		Background: lipgloss.Color("#1e1e1e"),
		Foreground: lipgloss.Color("#e0e0e0"),
		Grid:       lipgloss.Color("#3a3a3a"),
		Axis:       lipgloss.Color("#aaaaaa"),
		Title:      lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666666"),
		Traces: []lipgloss.Color{
			"#8dd3c7", "#fb8072", "#b3de69", "#fdb462",
			"#bc80bd", "#80b1d3", "#fccde5", "#ffed6f",
		},
	}

	Matplotlib = Theme{
		Name:       "matplotlib",
		Background: lipgloss.Color("#ffffff"),
		Foreground: lipgloss.Color("#000000"),
		Grid:       lipgloss.Color("#b0b0b0"),
		Axis:       lipgloss.Color("#000000"),
		Title:      lipgloss.Color("#000000"),
		Muted:      lipgloss.Color("#808080"),
		Traces: []lipgloss.Color{
			"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728",
			"#9467bd", "#8c564b", "#e377c2", "#7f7f7f",
		},
	}

	Seaborn = Theme{
		Name:       "seaborn",
		Background: lipgloss.Color("#eaeaf2"),
		Foreground: lipgloss.Color("#262626"),
		Grid:       lipgloss.Color("#ffffff"),
		Axis:       lipgloss.Color("#444444"),
		Title:      lipgloss.Color("#262626"),
		Muted:      lipgloss.Color("#8c8c8c"),
		Traces: []lipgloss.Color{
			"#4c72b0", "#dd8452", "#55a868", "#c44e52",
			"#8172b3", "#937860", "#da8bc3", "#64b5cd",
		},
	}

	GGPlot = Theme{
		Name:       "ggplot",
		Background: lipgloss.Color("#e5e5e5"),
		Foreground: lipgloss.Color("#333333"),
		Grid:       lipgloss.Color("#ffffff"),
		Axis:       lipgloss.Color("#555555"),
		Title:      lipgloss.Color("#333333"),
		Muted:      lipgloss.Color("#999999"),
		Traces: []lipgloss.Color{
			"#e24a33", "#348abd", "#988ed5", "#777777",
			"#fbc15e", "#8eba42", "#ffb5b8",
		},
	}

	BMH = Theme{
		Name:       "bmh",
		Background: lipgloss.Color("#eeeeee"),
		Foreground: lipgloss.Color("#333333"),
		Grid:       lipgloss.Color("#cbcbcb"),
		Axis:       lipgloss.Color("#333333"),
		Title:      lipgloss.Color("#0b0b0b"),
		Muted:      lipgloss.Color("#888888"),
		Traces: []lipgloss.Color{
			"#348abd", "#a60628", "#7a68a6", "#467821",
			"#d55e00", "#cc79a7", "#56b4e9",
		},
	}

	FiveThirtyEight = Theme{
		Name:       "fivethirtyeight",
		Background: lipgloss.Color("#f0f0f0"),
		Foreground: lipgloss.Color("#262626"),
		Grid:       lipgloss.Color("#cbcbcb"),
		Axis:       lipgloss.Color("#262626"),
		Title:      lipgloss.Color("#262626"),
		Muted:      lipgloss.Color("#9e9e9e"),
		Traces: []lipgloss.Color{
			"#008fd5", "#fc4f30", "#e5ae38", "#6d904f",
			"#8b8b8b", "#810f7c",
		},
	}

	Grayscale = Theme{
		Name:       "grayscale",
		Background: lipgloss.Color("#ffffff"),
		Foreground: lipgloss.Color("#000000"),
		Grid:       lipgloss.Color("#d0d0d0"),
		Axis:       lipgloss.Color("#303030"),
		Title:      lipgloss.Color("#000000"),
		Muted:      lipgloss.Color("#a0a0a0"),
		Traces: []lipgloss.Color{
			"#000000", "#555555", "#888888", "#bbbbbb",
		},
	}
)

// registry order is the order reported by Names.
var registry = []Theme{
	Light,
	Dark,
	Matplotlib,
	Seaborn,
	GGPlot,
	BMH,
	FiveThirtyEight,
	Grayscale,
}

var (
	mu          sync.RWMutex
	defaultName = DefaultName
)

// Get returns the theme registered under name.
func Get(name string) (Theme, error) {
	for _, t := range registry {
		if t.Name == name {
			return t, nil
		}
	}
	return Theme{}, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
}

// GetOrDefault returns the named theme, falling back to the current
// default when name is empty or unknown.
func GetOrDefault(name string) Theme {
	if t, err := Get(name); err == nil {
		return t
	}
	return Default()
}

// Default returns the current process-wide default theme.
func Default() Theme {
	mu.RLock()
	name := defaultName
	mu.RUnlock()
	t, _ := Get(name)
	return t
}

// SetDefault changes the process-wide default theme. The name must be
// a member of the fixed theme set.
func SetDefault(name string) error {
	if _, err := Get(name); err != nil {
		return err
	}
	mu.Lock()
	defaultName = name
	mu.Unlock()
	return nil
}

// Names returns the names of all registered themes, independent of
// the current default.
func Names() []string {
	names := make([]string, len(registry))
	for i, t := range registry {
		names[i] = t.Name
	}
	return names
}
