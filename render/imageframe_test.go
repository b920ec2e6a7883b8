package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/san-kum/plotwin/themes"
)

func testGrid(ny, nx int) [][]float64 {
	g := make([][]float64, ny)
	for i := range g {
		g[i] = make([]float64, nx)
		for j := range g[i] {
			g[i][j] = float64(i * j)
		}
	}
	return g
}

func TestImageDisplay(t *testing.T) {
	f := NewImageFrame(40, 12, themes.GetOrDefault("dark"))
	if err := f.Display(testGrid(8, 8), ImageOpts{}); err != nil {
		t.Fatal(err)
	}

	nx, ny := f.Size()
	if nx != 8 || ny != 8 {
		t.Errorf("expected 8x8, got %dx%d", nx, ny)
	}
	if f.Style() != "image" {
		t.Errorf("expected image style, got %s", f.Style())
	}

	out := f.Render()
	if !strings.Contains(out, "viridis") {
		t.Error("footer should name the colormap")
	}
}

func TestImageDisplayErrors(t *testing.T) {
	f := NewImageFrame(40, 12, themes.GetOrDefault("light"))

	if err := f.Display(nil, ImageOpts{}); !errors.Is(err, ErrEmptyData) {
		t.Errorf("expected ErrEmptyData, got %v", err)
	}

	ragged := [][]float64{{1, 2, 3}, {1, 2}}
	if err := f.Display(ragged, ImageOpts{}); !errors.Is(err, ErrRaggedGrid) {
		t.Errorf("expected ErrRaggedGrid, got %v", err)
	}

	if err := f.Display(testGrid(4, 4), ImageOpts{Colormap: "rainbow9000"}); !errors.Is(err, ErrUnknownColormap) {
		t.Errorf("expected ErrUnknownColormap, got %v", err)
	}
}

func TestImageContourStyle(t *testing.T) {
	f := NewImageFrame(40, 12, themes.GetOrDefault("light"))
	if err := f.Display(testGrid(16, 16), ImageOpts{Style: "contour", Levels: 5}); err != nil {
		t.Fatal(err)
	}
	if f.Style() != "contour" {
		t.Errorf("expected contour style, got %s", f.Style())
	}
	if !strings.Contains(f.Render(), "5 levels") {
		t.Error("contour footer should report the level count")
	}
}

func TestPixelAt(t *testing.T) {
	f := NewImageFrame(40, 12, themes.GetOrDefault("light"))
	if err := f.Display(testGrid(10, 20), ImageOpts{}); err != nil {
		t.Fatal(err)
	}

	if _, ok := f.PixelAt(5, 5); ok {
		t.Error("PixelAt should fail before the first render")
	}

	f.Render()

	px, ok := f.PixelAt(0, 0)
	if !ok {
		t.Fatal("PixelAt failed inside the image")
	}
	if px.IX != 0 || px.IY != 0 {
		t.Errorf("expected pixel (0,0), got (%d,%d)", px.IX, px.IY)
	}
	if px.Val != 0 {
		t.Errorf("expected value 0, got %g", px.Val)
	}
	if px.X != 0 || px.Y != 0 {
		t.Errorf("without axis arrays, coordinates are the indices: (%g,%g)", px.X, px.Y)
	}

	if _, ok := f.PixelAt(-1, 0); ok {
		t.Error("negative columns should be rejected")
	}
	if _, ok := f.PixelAt(0, 1000); ok {
		t.Error("rows past the image should be rejected")
	}
}

func TestPixelAtAxisCoords(t *testing.T) {
	f := NewImageFrame(40, 12, themes.GetOrDefault("light"))

	xs := make([]float64, 4)
	ys := make([]float64, 4)
	for i := range xs {
		xs[i] = 10 + float64(i)*0.5
		ys[i] = -2 + float64(i)
	}
	if err := f.Display(testGrid(4, 4), ImageOpts{X: xs, Y: ys}); err != nil {
		t.Fatal(err)
	}
	f.Render()

	px, ok := f.PixelAt(0, 0)
	if !ok {
		t.Fatal("PixelAt failed inside the image")
	}
	if px.X != 10 || px.Y != -2 {
		t.Errorf("expected coordinates (10,-2), got (%g,%g)", px.X, px.Y)
	}

	px, ok = f.PixelAt(39, 10)
	if !ok {
		t.Fatal("PixelAt failed at the far corner")
	}
	if px.X != xs[px.IX] || px.Y != ys[px.IY] {
		t.Errorf("coordinates should come from the axis arrays: (%g,%g) for (%d,%d)",
			px.X, px.Y, px.IX, px.IY)
	}
}

func TestDisplayAxisLengthMismatch(t *testing.T) {
	f := NewImageFrame(40, 12, themes.GetOrDefault("light"))

	err := f.Display(testGrid(4, 4), ImageOpts{X: []float64{1, 2}})
	if !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("expected ErrLengthMismatch for short x axis, got %v", err)
	}
	err = f.Display(testGrid(4, 4), ImageOpts{Y: []float64{1, 2, 3, 4, 5}})
	if !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("expected ErrLengthMismatch for long y axis, got %v", err)
	}
}

func TestColormapAt(t *testing.T) {
	for _, name := range ColormapNames() {
		m, err := LookupColormap(name)
		if err != nil {
			t.Fatalf("LookupColormap(%s): %v", name, err)
		}
		for _, v := range []float64{-1, 0, 0.5, 1, 2} {
			c := m.At(v)
			if len(c) != 7 || c[0] != '#' {
				t.Errorf("%s.At(%g) = %q, want #rrggbb", name, v, string(c))
			}
		}
	}
}
