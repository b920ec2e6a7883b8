package render

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/plotwin/themes"
)

// TraceOpts carries the styling options a caller passes through to a
// line trace. Zero values defer to the frame's theme.
type TraceOpts struct {
	Label      string
	Color      string // named color or "#rrggbb"
	Marker     string // "o", "+", "x", "square", "diamond", "^", "v", "|", "_"
	MarkerSize int
	LineWidth  int
	Style      string // "solid", "dotted", "dashed", "points", "bars"

	barWidth float64 // set by Hist
}

// Trace is one plotted series.
type Trace struct {
	X, Y []float64
	Opts TraceOpts
}

// Limits holds view limits. NaN means the bound is autoscaled.
type Limits struct {
	XMin, XMax, YMin, YMax float64
}

// AutoLimits returns limits with every bound autoscaled.
func AutoLimits() Limits {
	n := math.NaN()
	return Limits{XMin: n, XMax: n, YMin: n, YMax: n}
}

type textNote struct {
	text  string
	x, y  float64
	color string
}

type arrowNote struct {
	x1, y1, x2, y2 float64
	color          string
}

type refLine struct {
	vertical bool
	value    float64
	lo, hi   float64 // span as fraction of the axis, in [0, 1]
	color    string
	label    string
}

// PlotFrame is a renderable XY plotting surface: traces, reference
// lines, text and arrow annotations drawn on a braille canvas with
// themed axes. Safe for concurrent use; draw calls come from the
// caller's goroutine while the event loop renders.
type PlotFrame struct {
	mu sync.Mutex

	theme      themes.Theme
	cols, rows int

	title          string
	xlabel, ylabel string
	showGrid       bool

	traces []Trace
	texts  []textNote
	arrows []arrowNote
	refs   []refLine

	limits Limits

	// layout of the most recent render, for cursor inverse transforms
	lay layout
}

type layout struct {
	gutter   int
	topRows  int
	plotCols int
	plotRows int
	bounds   Limits
	valid    bool
}

// NewPlotFrame returns an empty frame of cols x rows character cells.
func NewPlotFrame(cols, rows int, theme themes.Theme) *PlotFrame {
	if cols < 20 {
		cols = 20
	}
	if rows < 8 {
		rows = 8
	}
	return &PlotFrame{
		theme:    theme,
		cols:     cols,
		rows:     rows,
		showGrid: true,
		limits:   AutoLimits(),
	}
}

// SetTheme switches the frame's theme.
func (f *PlotFrame) SetTheme(t themes.Theme) {
	f.mu.Lock()
	f.theme = t
	f.mu.Unlock()
}

// Theme reports the frame's current theme.
func (f *PlotFrame) Theme() themes.Theme {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.theme
}

// Resize changes the frame's character-cell size.
func (f *PlotFrame) Resize(cols, rows int) {
	if cols < 20 || rows < 8 {
		return
	}
	f.mu.Lock()
	f.cols, f.rows = cols, rows
	f.mu.Unlock()
}

// SetTitle sets the plot title drawn above the axes.
func (f *PlotFrame) SetTitle(s string) {
	f.mu.Lock()
	f.title = s
	f.mu.Unlock()
}

// SetXLabel sets the x-axis label.
func (f *PlotFrame) SetXLabel(s string) {
	f.mu.Lock()
	f.xlabel = s
	f.mu.Unlock()
}

// SetYLabel sets the y-axis label.
func (f *PlotFrame) SetYLabel(s string) {
	f.mu.Lock()
	f.ylabel = s
	f.mu.Unlock()
}

// SetShowGrid toggles the background grid.
func (f *PlotFrame) SetShowGrid(show bool) {
	f.mu.Lock()
	f.showGrid = show
	f.mu.Unlock()
}

// Plot clears the frame and draws x, y as the first trace.
func (f *PlotFrame) Plot(x, y []float64, opts TraceOpts) error {
	if err := checkSeries(x, y); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.traces = f.traces[:0]
	f.texts = f.texts[:0]
	f.arrows = f.arrows[:0]
	f.refs = f.refs[:0]
	f.limits = AutoLimits()
	f.traces = append(f.traces, Trace{X: cloneF(x), Y: cloneF(y), Opts: opts})
	return nil
}

// OPlot overplots x, y as an additional trace, keeping existing ones.
func (f *PlotFrame) OPlot(x, y []float64, opts TraceOpts) error {
	if err := checkSeries(x, y); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.traces = append(f.traces, Trace{X: cloneF(x), Y: cloneF(y), Opts: opts})
	return nil
}

// UpdateTrace replaces the data of trace idx (0-based) in place,
// keeping its styling.
func (f *PlotFrame) UpdateTrace(idx int, x, y []float64) error {
	if err := checkSeries(x, y); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if idx < 0 || idx >= len(f.traces) {
		return fmt.Errorf("%w: %d (have %d)", ErrNoSuchTrace, idx, len(f.traces))
	}
	f.traces[idx].X = cloneF(x)
	f.traces[idx].Y = cloneF(y)
	return nil
}

// NumTraces reports the number of traces.
func (f *PlotFrame) NumTraces() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.traces)
}

// TraceLabels returns the labels of all traces, in order.
func (f *PlotFrame) TraceLabels() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	labels := make([]string, len(f.traces))
	for i, tr := range f.traces {
		labels[i] = tr.Opts.Label
	}
	return labels
}

// AddText draws text at data coordinates (x, y).
func (f *PlotFrame) AddText(text string, x, y float64, color string) {
	f.mu.Lock()
	f.texts = append(f.texts, textNote{text: text, x: x, y: y, color: color})
	f.mu.Unlock()
}

// AddArrow draws an arrow from (x1, y1) to (x2, y2) in data coordinates.
func (f *PlotFrame) AddArrow(x1, y1, x2, y2 float64, color string) {
	f.mu.Lock()
	f.arrows = append(f.arrows, arrowNote{x1: x1, y1: y1, x2: x2, y2: y2, color: color})
	f.mu.Unlock()
}

// AxHLine draws a horizontal reference line at data y, spanning the
// fraction [lo, hi] of the x axis.
func (f *PlotFrame) AxHLine(y, lo, hi float64, color, label string) {
	f.mu.Lock()
	f.refs = append(f.refs, refLine{value: y, lo: clamp01(lo), hi: clamp01(hi), color: color, label: label})
	f.mu.Unlock()
}

// AxVLine draws a vertical reference line at data x, spanning the
// fraction [lo, hi] of the y axis.
func (f *PlotFrame) AxVLine(x, lo, hi float64, color, label string) {
	f.mu.Lock()
	f.refs = append(f.refs, refLine{vertical: true, value: x, lo: clamp01(lo), hi: clamp01(hi), color: color, label: label})
	f.mu.Unlock()
}

// Hist bins values and draws the histogram as bars. When clear is
// true the frame is reset first.
func (f *PlotFrame) Hist(values []float64, bins int, clear bool, opts TraceOpts) error {
	if len(values) == 0 {
		return ErrEmptyData
	}
	if bins < 1 {
		bins = 10
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi == lo {
		hi = lo + 1
	}
	width := (hi - lo) / float64(bins)
	counts := make([]float64, bins)
	centers := make([]float64, bins)
	for i := range centers {
		centers[i] = lo + (float64(i)+0.5)*width
	}
	for _, v := range values {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}
	opts.Style = "bars"
	opts.barWidth = width

	f.mu.Lock()
	defer f.mu.Unlock()
	if clear {
		f.traces = f.traces[:0]
		f.texts = f.texts[:0]
		f.arrows = f.arrows[:0]
		f.refs = f.refs[:0]
	}
	f.traces = append(f.traces, Trace{X: centers, Y: counts, Opts: opts})
	return nil
}

// SetLimits overrides view limits. NaN bounds stay autoscaled.
func (f *PlotFrame) SetLimits(xmin, xmax, ymin, ymax float64) {
	f.mu.Lock()
	f.limits = Limits{XMin: xmin, XMax: xmax, YMin: ymin, YMax: ymax}
	f.mu.Unlock()
}

// ViewLimits returns the resolved view limits: manual bounds where
// set, data bounds (with padding) elsewhere.
func (f *PlotFrame) ViewLimits() Limits {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resolveBounds()
}

func (f *PlotFrame) resolveBounds() Limits {
	xmin, xmax := math.Inf(1), math.Inf(-1)
	ymin, ymax := math.Inf(1), math.Inf(-1)
	for _, tr := range f.traces {
		for i := range tr.X {
			xmin = math.Min(xmin, tr.X[i])
			xmax = math.Max(xmax, tr.X[i])
			ymin = math.Min(ymin, tr.Y[i])
			ymax = math.Max(ymax, tr.Y[i])
		}
		if tr.Opts.Style == "bars" {
			// bars start at zero
			ymin = math.Min(ymin, 0)
			xmin = math.Min(xmin, tr.X[0]-tr.Opts.barWidth/2)
			xmax = math.Max(xmax, tr.X[len(tr.X)-1]+tr.Opts.barWidth/2)
		}
	}
	if math.IsInf(xmin, 1) {
		xmin, xmax, ymin, ymax = 0, 1, 0, 1
	}
	// pad so extremes stay off the border
	xpad := (xmax - xmin) * 0.02
	ypad := (ymax - ymin) * 0.05
	if xpad == 0 {
		xpad = 0.5
	}
	if ypad == 0 {
		ypad = 0.5
	}
	b := Limits{XMin: xmin - xpad, XMax: xmax + xpad, YMin: ymin - ypad, YMax: ymax + ypad}
	if !math.IsNaN(f.limits.XMin) {
		b.XMin = f.limits.XMin
	}
	if !math.IsNaN(f.limits.XMax) {
		b.XMax = f.limits.XMax
	}
	if !math.IsNaN(f.limits.YMin) {
		b.YMin = f.limits.YMin
	}
	if !math.IsNaN(f.limits.YMax) {
		b.YMax = f.limits.YMax
	}
	if b.XMax <= b.XMin {
		b.XMax = b.XMin + 1
	}
	if b.YMax <= b.YMin {
		b.YMax = b.YMin + 1
	}
	return b
}

// DataCoords converts a character-cell position inside the rendered
// frame to data coordinates. ok is false when the cell lies outside
// the plot area or the frame has not been rendered yet.
func (f *PlotFrame) DataCoords(col, row int) (x, y float64, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l := f.lay
	if !l.valid {
		return 0, 0, false
	}
	pc, pr := col-l.gutter, row-l.topRows
	if pc < 0 || pr < 0 || pc >= l.plotCols || pr >= l.plotRows {
		return 0, 0, false
	}
	fx := (float64(pc) + 0.5) / float64(l.plotCols)
	fy := (float64(pr) + 0.5) / float64(l.plotRows)
	x = l.bounds.XMin + fx*(l.bounds.XMax-l.bounds.XMin)
	y = l.bounds.YMax - fy*(l.bounds.YMax-l.bounds.YMin)
	return x, y, true
}

var markerRunes = map[string]rune{
	"o":       '●',
	"+":       '+',
	"x":       '×',
	"square":  '■',
	"diamond": '◆',
	"^":       '▲',
	"v":       '▼',
	"|":       '|',
	"_":       '_',
}

type overlayCell struct {
	r    rune
	slot int
}

// Render draws the frame to a string of exactly rows lines.
func (f *PlotFrame) Render() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	gutter := 10
	topRows := 0
	if f.title != "" {
		topRows = 1
	}
	bottomRows := 2 // axis line + tick labels
	if f.xlabel != "" {
		bottomRows++
	}
	legendRows := 0
	for _, tr := range f.traces {
		if tr.Opts.Label != "" && tr.Opts.Label != "_nolegend_" {
			legendRows = 1
			break
		}
	}
	plotRows := f.rows - topRows - bottomRows - legendRows
	plotCols := f.cols - gutter
	if plotRows < 4 {
		plotRows = 4
	}
	if plotCols < 10 {
		plotCols = 10
	}

	bounds := f.resolveBounds()
	f.lay = layout{gutter: gutter, topRows: topRows, plotCols: plotCols, plotRows: plotRows, bounds: bounds, valid: true}

	canvas := NewCanvas(plotCols, plotRows)
	dotW, dotH := canvas.DotWidth(), canvas.DotHeight()
	overlay := make(map[[2]int]overlayCell)

	var palette []lipgloss.Color
	slot := func(c lipgloss.Color) int {
		palette = append(palette, c)
		return len(palette) - 1
	}

	toDot := func(x, y float64) (int, int) {
		fx := (x - bounds.XMin) / (bounds.XMax - bounds.XMin)
		fy := (bounds.YMax - y) / (bounds.YMax - bounds.YMin)
		return int(fx * float64(dotW-1)), int(fy * float64(dotH-1))
	}

	if f.showGrid {
		gs := slot(f.theme.Grid)
		for _, fx := range []float64{0.25, 0.5, 0.75} {
			for dy := 0; dy < dotH; dy += 4 {
				canvas.Set(int(fx*float64(dotW-1)), dy, gs)
			}
		}
		for _, fy := range []float64{0.25, 0.5, 0.75} {
			for dx := 0; dx < dotW; dx += 4 {
				canvas.Set(dx, int(fy*float64(dotH-1)), gs)
			}
		}
	}

	for _, r := range f.refs {
		rs := slot(namedColor(r.color, f.theme.Muted))
		if r.vertical {
			dx, _ := toDot(r.value, bounds.YMin)
			y0 := int((1 - r.hi) * float64(dotH-1))
			y1 := int((1 - r.lo) * float64(dotH-1))
			canvas.Line(dx, y0, dx, y1, rs)
		} else {
			_, dy := toDot(bounds.XMin, r.value)
			x0 := int(r.lo * float64(dotW-1))
			x1 := int(r.hi * float64(dotW-1))
			canvas.Line(x0, dy, x1, dy, rs)
		}
	}

	traceIdx := 0
	for _, tr := range f.traces {
		color := namedColor(tr.Opts.Color, f.theme.TraceColor(traceIdx))
		traceIdx++
		ts := slot(color)
		switch tr.Opts.Style {
		case "bars":
			halfW := tr.Opts.barWidth / 2
			for i := range tr.X {
				lx, _ := toDot(tr.X[i]-halfW*0.9, 0)
				rx, _ := toDot(tr.X[i]+halfW*0.9, 0)
				_, top := toDot(tr.X[i], tr.Y[i])
				_, base := toDot(tr.X[i], 0)
				for dx := lx; dx <= rx; dx++ {
					canvas.Line(dx, top, dx, base, ts)
				}
			}
		case "points":
			// no connecting line
		case "dotted":
			for i := range tr.X {
				dx, dy := toDot(tr.X[i], tr.Y[i])
				canvas.Set(dx, dy, ts)
			}
		case "dashed":
			for i := 1; i < len(tr.X); i++ {
				if i%2 == 0 {
					continue
				}
				x0, y0 := toDot(tr.X[i-1], tr.Y[i-1])
				x1, y1 := toDot(tr.X[i], tr.Y[i])
				canvas.Line(x0, y0, x1, y1, ts)
			}
		default:
			for i := 1; i < len(tr.X); i++ {
				x0, y0 := toDot(tr.X[i-1], tr.Y[i-1])
				x1, y1 := toDot(tr.X[i], tr.Y[i])
				canvas.Line(x0, y0, x1, y1, ts)
				if tr.Opts.LineWidth > 1 {
					canvas.Line(x0, y0+1, x1, y1+1, ts)
				}
			}
			if len(tr.X) == 1 && tr.Opts.Marker == "" {
				dx, dy := toDot(tr.X[0], tr.Y[0])
				canvas.Blot(dx, dy, 1, ts)
			}
		}
		if mr, ok := markerRunes[tr.Opts.Marker]; ok {
			for i := range tr.X {
				dx, dy := toDot(tr.X[i], tr.Y[i])
				if tr.Opts.MarkerSize >= 8 {
					canvas.Blot(dx, dy, 1, ts)
				}
				overlay[[2]int{dx / 2, dy / 4}] = overlayCell{r: mr, slot: ts}
			}
		}
	}

	for _, a := range f.arrows {
		as := slot(namedColor(a.color, f.theme.Foreground))
		x0, y0 := toDot(a.x1, a.y1)
		x1, y1 := toDot(a.x2, a.y2)
		canvas.Line(x0, y0, x1, y1, as)
		canvas.Blot(x1, y1, 1, as)
	}

	for _, tn := range f.texts {
		ts := slot(namedColor(tn.color, f.theme.Foreground))
		dx, dy := toDot(tn.x, tn.y)
		col, row := dx/2, dy/4
		for i, r := range tn.text {
			if col+i >= plotCols {
				break
			}
			overlay[[2]int{col + i, row}] = overlayCell{r: r, slot: ts}
		}
	}

	axisStyle := lipgloss.NewStyle().Foreground(f.theme.Axis)
	mutedStyle := lipgloss.NewStyle().Foreground(f.theme.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(f.theme.Title).Bold(true)

	var out strings.Builder
	if f.title != "" {
		pad := (f.cols - len(f.title)) / 2
		if pad < 0 {
			pad = 0
		}
		out.WriteString(strings.Repeat(" ", pad) + titleStyle.Render(f.title) + "\n")
	}

	yTickRow := func(row int) (string, bool) {
		switch row {
		case 0:
			return fmt.Sprintf("%8.3g", bounds.YMax), true
		case plotRows / 2:
			return fmt.Sprintf("%8.3g", (bounds.YMax+bounds.YMin)/2), true
		case plotRows - 1:
			return fmt.Sprintf("%8.3g", bounds.YMin), true
		}
		return "", false
	}

	for row := 0; row < plotRows; row++ {
		if lbl, ok := yTickRow(row); ok {
			out.WriteString(mutedStyle.Render(lbl) + " ")
		} else {
			out.WriteString(strings.Repeat(" ", 9))
		}
		out.WriteString(axisStyle.Render("│"))
		out.WriteString(f.renderCanvasRow(canvas, overlay, palette, row, plotCols))
		out.WriteByte('\n')
	}

	out.WriteString(strings.Repeat(" ", 9) + axisStyle.Render("└"+strings.Repeat("─", plotCols)) + "\n")

	left := fmt.Sprintf("%.4g", bounds.XMin)
	right := fmt.Sprintf("%.4g", bounds.XMax)
	mid := fmt.Sprintf("%.4g", (bounds.XMin+bounds.XMax)/2)
	tickLine := left + strings.Repeat(" ", maxInt(1, plotCols/2-len(left)-len(mid)/2)) + mid
	if n := plotCols - len(tickLine) - len(right); n > 0 {
		tickLine += strings.Repeat(" ", n)
	}
	tickLine += right
	out.WriteString(strings.Repeat(" ", 10) + mutedStyle.Render(tickLine) + "\n")

	if f.xlabel != "" {
		pad := gutter + (plotCols-len(f.xlabel))/2
		if pad < 0 {
			pad = 0
		}
		out.WriteString(strings.Repeat(" ", pad) + axisStyle.Render(f.xlabel) + "\n")
	}

	if legendRows > 0 {
		var parts []string
		idx := 0
		for _, tr := range f.traces {
			color := namedColor(tr.Opts.Color, f.theme.TraceColor(idx))
			idx++
			if tr.Opts.Label == "" || tr.Opts.Label == "_nolegend_" {
				continue
			}
			key := lipgloss.NewStyle().Foreground(color).Render("──")
			parts = append(parts, key+" "+tr.Opts.Label)
		}
		out.WriteString(strings.Repeat(" ", gutter) + strings.Join(parts, "   ") + "\n")
	}

	return strings.TrimRight(out.String(), "\n")
}

// renderCanvasRow emits one canvas row with overlay characters and
// per-run color styling.
func (f *PlotFrame) renderCanvasRow(canvas *Canvas, overlay map[[2]int]overlayCell, palette []lipgloss.Color, row, plotCols int) string {
	var b strings.Builder
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
	for col := 0; col < plotCols; col++ {
		r, s := canvas.CellAt(col, row)
		if oc, ok := overlay[[2]int{col, row}]; ok {
			r, s = oc.r, oc.slot
		} else if r == 0x2800 {
			r, s = ' ', -1
		}
		if s != runSlot {
			flush()
			runSlot = s
		}
		run = append(run, r)
	}
	flush()
	return b.String()
}

func checkSeries(x, y []float64) error {
	if len(x) == 0 || len(y) == 0 {
		return ErrEmptyData
	}
	if len(x) != len(y) {
		return fmt.Errorf("%w (%d vs %d)", ErrLengthMismatch, len(x), len(y))
	}
	return nil
}

func cloneF(s []float64) []float64 {
	c := make([]float64, len(s))
	copy(c, s)
	return c
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
