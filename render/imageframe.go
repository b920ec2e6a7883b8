package render

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/plotwin/themes"
)

// ImageOpts carries display options for a 2-D intensity map.
type ImageOpts struct {
	Colormap string
	Style    string // "image" (default) or "contour"
	Levels   int    // contour level count; 0 means 7
	X, Y     []float64 // data coordinates of the grid's columns and rows
}

// ImageFrame displays a 2-D array of intensities as a false-color map
// or as a contour plot. Rows of the grid are displayed top to bottom.
type ImageFrame struct {
	mu sync.Mutex

	theme      themes.Theme
	cols, rows int
	title      string

	data   [][]float64
	xs, ys []float64
	cmap   Colormap
	style  string
	levels int

	lo, hi float64

	lay imageLayout
}

type imageLayout struct {
	cols, rows int // displayed image cells
	valid      bool
}

// NewImageFrame returns an empty image frame of cols x rows cells.
func NewImageFrame(cols, rows int, theme themes.Theme) *ImageFrame {
	if cols < 10 {
		cols = 10
	}
	if rows < 6 {
		rows = 6
	}
	cmap, _ := LookupColormap(DefaultColormap)
	return &ImageFrame{theme: theme, cols: cols, rows: rows, cmap: cmap, style: "image", levels: 7}
}

// SetTheme switches the frame's theme.
func (f *ImageFrame) SetTheme(t themes.Theme) {
	f.mu.Lock()
	f.theme = t
	f.mu.Unlock()
}

// SetTitle sets the title drawn above the image.
func (f *ImageFrame) SetTitle(s string) {
	f.mu.Lock()
	f.title = s
	f.mu.Unlock()
}

// Resize changes the frame's character-cell size.
func (f *ImageFrame) Resize(cols, rows int) {
	if cols < 10 || rows < 6 {
		return
	}
	f.mu.Lock()
	f.cols, f.rows = cols, rows
	f.mu.Unlock()
}

// Display replaces the frame's contents with the given intensity
// grid. Styling options pass through unchanged; a zero ImageOpts
// keeps the frame's current colormap and style.
func (f *ImageFrame) Display(data [][]float64, opts ImageOpts) error {
	if len(data) == 0 || len(data[0]) == 0 {
		return ErrEmptyData
	}
	w := len(data[0])
	for _, row := range data {
		if len(row) != w {
			return ErrRaggedGrid
		}
	}
	if len(opts.X) > 0 && len(opts.X) != w {
		return fmt.Errorf("%w: x axis has %d values for %d columns", ErrLengthMismatch, len(opts.X), w)
	}
	if len(opts.Y) > 0 && len(opts.Y) != len(data) {
		return fmt.Errorf("%w: y axis has %d values for %d rows", ErrLengthMismatch, len(opts.Y), len(data))
	}
	var cmap Colormap
	if opts.Colormap != "" {
		m, err := LookupColormap(opts.Colormap)
		if err != nil {
			return err
		}
		cmap = m
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, row := range data {
		for _, v := range row {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if hi == lo {
		hi = lo + 1
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	grid := make([][]float64, len(data))
	for i, row := range data {
		grid[i] = cloneF(row)
	}
	f.data = grid
	f.lo, f.hi = lo, hi
	f.xs, f.ys = cloneF(opts.X), cloneF(opts.Y)
	if opts.Colormap != "" {
		f.cmap = cmap
	}
	if opts.Style != "" {
		f.style = opts.Style
	}
	if opts.Levels > 0 {
		f.levels = opts.Levels
	}
	return nil
}

// Size reports the dimensions of the displayed grid (nx, ny), zero
// when nothing is displayed.
func (f *ImageFrame) Size() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.data) == 0 {
		return 0, 0
	}
	return len(f.data[0]), len(f.data)
}

// Style reports the current display style.
func (f *ImageFrame) Style() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.style
}

// Pixel identifies a grid sample under the cursor: indices into the
// grid, the data coordinates from the axis arrays given at Display
// time (the indices themselves when none were given), and the value.
type Pixel struct {
	IX, IY int
	X, Y   float64
	Val    float64
}

// PixelAt converts a character-cell position inside the rendered
// frame to the pixel it shows. ok is false outside the image area or
// before the first render.
func (f *ImageFrame) PixelAt(col, row int) (Pixel, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.lay.valid || len(f.data) == 0 {
		return Pixel{}, false
	}
	top := 0
	if f.title != "" {
		top = 1
	}
	row -= top
	if col < 0 || row < 0 || col >= f.lay.cols || row >= f.lay.rows {
		return Pixel{}, false
	}
	nx, ny := len(f.data[0]), len(f.data)
	ix := col * nx / f.lay.cols
	iy := row * ny / f.lay.rows
	if ix >= nx {
		ix = nx - 1
	}
	if iy >= ny {
		iy = ny - 1
	}
	px := Pixel{IX: ix, IY: iy, X: float64(ix), Y: float64(iy), Val: f.data[iy][ix]}
	if ix < len(f.xs) {
		px.X = f.xs[ix]
	}
	if iy < len(f.ys) {
		px.Y = f.ys[iy]
	}
	return px, true
}

// Render draws the frame to a string.
func (f *ImageFrame) Render() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	top := 0
	if f.title != "" {
		top = 1
	}
	imgRows := f.rows - top - 1 // footer shows range + colormap
	imgCols := f.cols
	if imgRows < 4 {
		imgRows = 4
	}

	var out strings.Builder
	if f.title != "" {
		pad := (f.cols - len(f.title)) / 2
		if pad < 0 {
			pad = 0
		}
		titleStyle := lipgloss.NewStyle().Foreground(f.theme.Title).Bold(true)
		out.WriteString(strings.Repeat(" ", pad) + titleStyle.Render(f.title) + "\n")
	}

	if len(f.data) == 0 {
		f.lay = imageLayout{}
		out.WriteString(lipgloss.NewStyle().Foreground(f.theme.Muted).Render("(no image)"))
		return out.String()
	}

	f.lay = imageLayout{cols: imgCols, rows: imgRows, valid: true}

	if f.style == "contour" {
		out.WriteString(f.renderContour(imgCols, imgRows))
	} else {
		out.WriteString(f.renderImage(imgCols, imgRows))
	}

	footer := fmt.Sprintf("range [%.4g, %.4g]  colormap %s", f.lo, f.hi, f.cmap.Name)
	if f.style == "contour" {
		footer = fmt.Sprintf("range [%.4g, %.4g]  %d levels", f.lo, f.hi, f.levels)
	}
	out.WriteString("\n" + lipgloss.NewStyle().Foreground(f.theme.Muted).Render(footer))
	return out.String()
}

// renderImage samples the grid onto imgCols x (imgRows*2) pixels and
// emits half-block cells, upper pixel as foreground and lower pixel
// as background.
func (f *ImageFrame) renderImage(imgCols, imgRows int) string {
	nx, ny := len(f.data[0]), len(f.data)
	sample := func(px, py int) float64 {
		ix := px * nx / imgCols
		iy := py * ny / (imgRows * 2)
		if ix >= nx {
			ix = nx - 1
		}
		if iy >= ny {
			iy = ny - 1
		}
		return f.data[iy][ix]
	}
	norm := func(v float64) float64 { return (v - f.lo) / (f.hi - f.lo) }

	var b strings.Builder
	for row := 0; row < imgRows; row++ {
		for col := 0; col < imgCols; col++ {
			upper := f.cmap.At(norm(sample(col, row*2)))
			lower := f.cmap.At(norm(sample(col, row*2+1)))
			b.WriteString(lipgloss.NewStyle().Foreground(upper).Background(lower).Render("▀"))
		}
		if row < imgRows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// renderContour marks level crossings between adjacent samples on a
// braille canvas, one curve color per level.
func (f *ImageFrame) renderContour(imgCols, imgRows int) string {
	nx, ny := len(f.data[0]), len(f.data)
	canvas := NewCanvas(imgCols, imgRows)
	dotW, dotH := canvas.DotWidth(), canvas.DotHeight()

	sample := func(px, py int) float64 {
		ix := px * nx / dotW
		iy := py * ny / dotH
		if ix >= nx {
			ix = nx - 1
		}
		if iy >= ny {
			iy = ny - 1
		}
		return f.data[iy][ix]
	}

	levels := make([]float64, f.levels)
	for i := range levels {
		levels[i] = f.lo + (float64(i)+1)/(float64(f.levels)+1)*(f.hi-f.lo)
	}

	crosses := func(a, b, lv float64) bool {
		return (a-lv)*(b-lv) <= 0 && a != b
	}

	for py := 0; py < dotH; py++ {
		for px := 0; px < dotW; px++ {
			v := sample(px, py)
			for li, lv := range levels {
				hit := false
				if px+1 < dotW && crosses(v, sample(px+1, py), lv) {
					hit = true
				}
				if !hit && py+1 < dotH && crosses(v, sample(px, py+1), lv) {
					hit = true
				}
				if hit {
					canvas.Set(px, py, li)
					break
				}
			}
		}
	}

	palette := make([]lipgloss.Color, f.levels)
	for i := range palette {
		palette[i] = f.cmap.At((float64(i) + 1) / (float64(f.levels) + 1))
	}

	var b strings.Builder
	for row := 0; row < imgRows; row++ {
		runSlot := -2
		var run []rune
		flush := func() {
			if len(run) == 0 {
				return
			}
			s := string(run)
			if runSlot >= 0 && runSlot < len(palette) {
				s = lipgloss.NewStyle().Foreground(palette[runSlot]).Render(s)
			}
			b.WriteString(s)
			run = run[:0]
		}
		for col := 0; col < imgCols; col++ {
			r, s := canvas.CellAt(col, row)
			if r == 0x2800 {
				r, s = ' ', -1
			}
			if s != runSlot {
				flush()
				runSlot = s
			}
			run = append(run, r)
		}
		flush()
		if row < imgRows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
