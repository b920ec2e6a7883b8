package interactive

import "github.com/san-kum/plotwin/render"

// defaults applied when an option is not given.
const (
	defaultCols = 80
	defaultRows = 24
	defaultBins = 10
)

type options struct {
	win           int
	width, height int
	winTitle      string
	theme         string
	replace       bool

	title, xlabel, ylabel string
	grid                  *bool

	trace          int // 1-based
	bins           int
	spanLo, spanHi float64

	colormap string
	levels   int
	xdata    []float64
	ydata    []float64

	tr render.TraceOpts
}

// Option adjusts a forwarder call. Options a forwarder does not use
// are ignored, matching the pass-through styling contract.
type Option func(*options)

func newOptions(opts []Option) options {
	o := options{win: 1, trace: 1, bins: defaultBins, spanLo: 0, spanHi: 1}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Win selects the target window handle (default 1). Values outside
// [1, 100] are clamped, not rejected.
func Win(n int) Option { return func(o *options) { o.win = n } }

// Size sets the window size in character cells, applied only when the
// window is created.
func Size(cols, rows int) Option {
	return func(o *options) { o.width, o.height = cols, rows }
}

// WinTitle sets the window frame title, applied only on creation.
func WinTitle(s string) Option { return func(o *options) { o.winTitle = s } }

// Theme pins the window to a named theme instead of the process
// default, applied only on creation.
func Theme(name string) Option { return func(o *options) { o.theme = name } }

// Replace starts a fresh plot, discarding existing traces and
// annotations.
func Replace() Option { return func(o *options) { o.replace = true } }

// Title sets the plot title.
func Title(s string) Option { return func(o *options) { o.title = s } }

// XLabel sets the x-axis label.
func XLabel(s string) Option { return func(o *options) { o.xlabel = s } }

// YLabel sets the y-axis label.
func YLabel(s string) Option { return func(o *options) { o.ylabel = s } }

// ShowGrid toggles the background grid.
func ShowGrid(show bool) Option {
	return func(o *options) { o.grid = &show }
}

// Color sets the trace color by name ("red") or hex ("#rrggbb").
func Color(s string) Option { return func(o *options) { o.tr.Color = s } }

// Marker sets the symbol drawn at each point.
func Marker(s string) Option { return func(o *options) { o.tr.Marker = s } }

// MarkerSize sets the marker size.
func MarkerSize(n int) Option { return func(o *options) { o.tr.MarkerSize = n } }

// LineWidth sets the width of the line joining points.
func LineWidth(n int) Option { return func(o *options) { o.tr.LineWidth = n } }

// Label sets the legend label for a trace.
func Label(s string) Option { return func(o *options) { o.tr.Label = s } }

// LineStyle sets the line style: "solid", "dotted", "dashed" or
// "points".
func LineStyle(s string) Option { return func(o *options) { o.tr.Style = s } }

// Trace selects the 1-based trace index for UpdateTrace (default 1).
func Trace(n int) Option { return func(o *options) { o.trace = n } }

// Bins sets the histogram bin count (default 10).
func Bins(n int) Option { return func(o *options) { o.bins = n } }

// Span limits a reference line to the fraction [lo, hi] of its axis.
func Span(lo, hi float64) Option {
	return func(o *options) { o.spanLo, o.spanHi = lo, hi }
}

// Colormap selects the false-color map for image windows.
func Colormap(name string) Option { return func(o *options) { o.colormap = name } }

// Levels sets the contour level count.
func Levels(n int) Option { return func(o *options) { o.levels = n } }

// XData sets the data coordinates of an image's columns, so cursor
// events report coordinates instead of column indices.
func XData(x []float64) Option { return func(o *options) { o.xdata = x } }

// YData sets the data coordinates of an image's rows.
func YData(y []float64) Option { return func(o *options) { o.ydata = y } }
