package render

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Colormap maps normalized intensities in [0, 1] to colors by linear
// interpolation between fixed stops.
type Colormap struct {
	Name  string
	stops [][3]int
}

// At returns the interpolated color for t, clamped to [0, 1].
func (m Colormap) At(t float64) lipgloss.Color {
	if len(m.stops) == 0 {
		return lipgloss.Color("#000000")
	}
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	pos := t * float64(len(m.stops)-1)
	i := int(pos)
	if i >= len(m.stops)-1 {
		s := m.stops[len(m.stops)-1]
		return lipgloss.Color(hexRGB(s[0], s[1], s[2]))
	}
	frac := pos - float64(i)
	a, b := m.stops[i], m.stops[i+1]
	r := int(float64(a[0]) + frac*float64(b[0]-a[0]))
	g := int(float64(a[1]) + frac*float64(b[1]-a[1]))
	bl := int(float64(a[2]) + frac*float64(b[2]-a[2]))
	return lipgloss.Color(hexRGB(r, g, bl))
}

var colormaps = []Colormap{
	{Name: "gray", stops: [][3]int{{0, 0, 0}, {255, 255, 255}}},
	{Name: "viridis", stops: [][3]int{
		{68, 1, 84}, {59, 82, 139}, {33, 145, 140}, {94, 201, 98}, {253, 231, 37},
	}},
	{Name: "hot", stops: [][3]int{
		{10, 0, 0}, {178, 0, 0}, {255, 110, 0}, {255, 235, 0}, {255, 255, 255},
	}},
	{Name: "cool", stops: [][3]int{{0, 255, 255}, {255, 0, 255}}},
	{Name: "coolwarm", stops: [][3]int{
		{59, 76, 192}, {221, 221, 221}, {180, 4, 38},
	}},
}

// DefaultColormap is used when an image display requests no colormap.
const DefaultColormap = "viridis"

// LookupColormap returns the colormap registered under name.
func LookupColormap(name string) (Colormap, error) {
	for _, m := range colormaps {
		if m.Name == name {
			return m, nil
		}
	}
	return Colormap{}, fmt.Errorf("%w: %q", ErrUnknownColormap, name)
}

// ColormapNames returns all registered colormap names.
func ColormapNames() []string {
	names := make([]string, len(colormaps))
	for i, m := range colormaps {
		names[i] = m.Name
	}
	return names
}

func hexRGB(r, g, b int) string {
	return "#" + hexByte(r) + hexByte(g) + hexByte(b)
}

func hexByte(v int) string {
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	const hex = "0123456789abcdef"
	return string(hex[v/16]) + string(hex[v%16])
}
