package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// colorNames maps the color names accepted by styling options to hex
// values. Hex strings of the form "#rrggbb" pass through unchanged.
var colorNames = map[string]string{
	"black":   "#000000",
	"white":   "#ffffff",
	"red":     "#d62728",
	"green":   "#2ca02c",
	"blue":    "#1f77b4",
	"orange":  "#ff7f0e",
	"purple":  "#9467bd",
	"brown":   "#8c564b",
	"pink":    "#e377c2",
	"gray":    "#7f7f7f",
	"grey":    "#7f7f7f",
	"olive":   "#bcbd22",
	"cyan":    "#17becf",
	"magenta": "#ff00ff",
	"yellow":  "#ffdd00",
}

// namedColor resolves a color option value to a lipgloss color.
// Unknown names fall back to the given default.
func namedColor(name string, fallback lipgloss.Color) lipgloss.Color {
	if name == "" {
		return fallback
	}
	if strings.HasPrefix(name, "#") {
		return lipgloss.Color(name)
	}
	if hex, ok := colorNames[strings.ToLower(name)]; ok {
		return lipgloss.Color(hex)
	}
	return fallback
}
