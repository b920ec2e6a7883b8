// Package interactive provides convenience plotting functions in the
// style of an interactive session: Plot, ImShow and friends resolve a
// window by integer handle (creating it on first use), forward the
// draw call to its surface, and raise it in the shared event loop.
//
//	interactive.Plot(x, y, interactive.Label("signal"))
//	interactive.ImShow(grid, interactive.Colormap("hot"), interactive.Win(2))
//	interactive.MainLoop()
//
// Windows live in a process-wide registry until the user closes them;
// MainLoop blocks until the last window is gone.
package interactive

import (
	"math"

	"github.com/san-kum/plotwin/app"
	"github.com/san-kum/plotwin/render"
	"github.com/san-kum/plotwin/themes"
)

// GetApp returns the shared application instance, constructing it on
// first use. The event loop is not started until MainLoop.
func GetApp() *app.App { return app.Get() }

// MainLoop runs the shared event loop until every window is closed.
func MainLoop() error { return app.Get().MainLoop() }

// SetTheme changes the process-wide default theme. The name must be
// one of AvailableThemes; anything else is an error.
func SetTheme(name string) error { return themes.SetDefault(name) }

// AvailableThemes lists the fixed theme set, independent of the
// current default.
func AvailableThemes() []string { return themes.Names() }

// GetPlotWindow returns the plot window for the (clamped) handle in
// the Win option, creating it if needed.
func GetPlotWindow(opts ...Option) *PlotDisplay {
	return defaultRegistry.PlotWindow(opts...)
}

// GetImageWindow returns the image window for the (clamped) handle,
// creating it if needed.
func GetImageWindow(opts ...Option) *ImageDisplay {
	return defaultRegistry.ImageWindow(opts...)
}

// applyFrameOpts forwards plot-level options to the frame.
func applyFrameOpts(f *render.PlotFrame, o options) {
	if o.title != "" {
		f.SetTitle(o.title)
	}
	if o.xlabel != "" {
		f.SetXLabel(o.xlabel)
	}
	if o.ylabel != "" {
		f.SetYLabel(o.ylabel)
	}
	if o.grid != nil {
		f.SetShowGrid(*o.grid)
	}
}

// Plot draws an XY trace in a plot window, overplotting onto any
// existing traces. Use Replace (or NewPlot) to start fresh. Styling
// options pass through to the drawing surface unchanged.
func Plot(x, y []float64, opts ...Option) (*PlotDisplay, error) {
	o := newOptions(opts)
	d := defaultRegistry.PlotWindow(opts...)
	app.Get().Raise(d)
	applyFrameOpts(d.Frame(), o)
	var err error
	if o.replace {
		err = d.Frame().Plot(x, y, o.tr)
	} else {
		err = d.Frame().OPlot(x, y, o.tr)
	}
	app.Get().Refresh()
	return d, err
}

// NewPlot is Plot with Replace: it clears the window first.
func NewPlot(x, y []float64, opts ...Option) (*PlotDisplay, error) {
	return Plot(x, y, append(opts, Replace())...)
}

// UpdateTrace swaps new data into an existing trace (1-based index,
// default 1) without disturbing its styling, avoiding a full replot.
func UpdateTrace(x, y []float64, opts ...Option) error {
	o := newOptions(opts)
	d := defaultRegistry.PlotWindow(opts...)
	app.Get().Raise(d)
	err := d.Frame().UpdateTrace(o.trace-1, x, y)
	app.Get().Refresh()
	return err
}

// SetLimits overrides the view limits of a plot window. NaN bounds
// remain autoscaled.
func SetLimits(xmin, xmax, ymin, ymax float64, opts ...Option) {
	d := defaultRegistry.PlotWindow(opts...)
	d.Frame().SetLimits(xmin, xmax, ymin, ymax)
	app.Get().Refresh()
}

// Auto is a limit bound that keeps autoscaling, for use with
// SetLimits.
func Auto() float64 { return math.NaN() }

// PlotText draws text at data coordinates (x, y).
func PlotText(text string, x, y float64, opts ...Option) {
	o := newOptions(opts)
	d := defaultRegistry.PlotWindow(opts...)
	app.Get().Raise(d)
	d.Frame().AddText(text, x, y, o.tr.Color)
	app.Get().Refresh()
}

// PlotArrow draws an arrow from (x1, y1) to (x2, y2) in data
// coordinates.
func PlotArrow(x1, y1, x2, y2 float64, opts ...Option) {
	o := newOptions(opts)
	d := defaultRegistry.PlotWindow(opts...)
	app.Get().Raise(d)
	d.Frame().AddArrow(x1, y1, x2, y2, o.tr.Color)
	app.Get().Refresh()
}

// PlotMarker draws a single marker at (x, y). Defaults: marker "o",
// size 4, color black, excluded from the legend.
func PlotMarker(x, y float64, opts ...Option) (*PlotDisplay, error) {
	o := newOptions(opts)
	if o.tr.Marker == "" {
		o.tr.Marker = "o"
	}
	if o.tr.MarkerSize == 0 {
		o.tr.MarkerSize = 4
	}
	if o.tr.Color == "" {
		o.tr.Color = "black"
	}
	if o.tr.Label == "" {
		o.tr.Label = "_nolegend_"
	}
	o.tr.Style = "points"
	d := defaultRegistry.PlotWindow(opts...)
	app.Get().Raise(d)
	err := d.Frame().OPlot([]float64{x}, []float64{y}, o.tr)
	app.Get().Refresh()
	return d, err
}

// AxHLine draws a horizontal reference line at data y, spanning the
// Span fraction of the x axis (full width by default).
func AxHLine(y float64, opts ...Option) {
	o := newOptions(opts)
	if o.tr.Label == "" {
		o.tr.Label = "_nolegend_"
	}
	d := defaultRegistry.PlotWindow(opts...)
	app.Get().Raise(d)
	d.Frame().AxHLine(y, o.spanLo, o.spanHi, o.tr.Color, o.tr.Label)
	app.Get().Refresh()
}

// AxVLine draws a vertical reference line at data x, spanning the
// Span fraction of the y axis.
func AxVLine(x float64, opts ...Option) {
	o := newOptions(opts)
	if o.tr.Label == "" {
		o.tr.Label = "_nolegend_"
	}
	d := defaultRegistry.PlotWindow(opts...)
	app.Get().Raise(d)
	d.Frame().AxVLine(x, o.spanLo, o.spanHi, o.tr.Color, o.tr.Label)
	app.Get().Refresh()
}

// Hist bins values (Bins option, default 10) and draws the histogram
// in a plot window. Replace clears the window first.
func Hist(values []float64, opts ...Option) (*PlotDisplay, error) {
	o := newOptions(opts)
	d := defaultRegistry.PlotWindow(opts...)
	app.Get().Raise(d)
	applyFrameOpts(d.Frame(), o)
	err := d.Frame().Hist(values, o.bins, o.replace, o.tr)
	app.Get().Refresh()
	return d, err
}

// ImShow displays a 2-D array of intensities as a false-color map in
// an image window.
func ImShow(data [][]float64, opts ...Option) (*ImageDisplay, error) {
	o := newOptions(opts)
	d := defaultRegistry.ImageWindow(opts...)
	app.Get().Raise(d)
	if o.title != "" {
		d.Frame().SetTitle(o.title)
	}
	err := d.Frame().Display(data, render.ImageOpts{
		Colormap: o.colormap,
		Levels:   o.levels,
		X:        o.xdata,
		Y:        o.ydata,
	})
	app.Get().Refresh()
	return d, err
}

// Contour displays a 2-D array as a contour plot; it is ImShow in
// contour style.
func Contour(data [][]float64, opts ...Option) (*ImageDisplay, error) {
	o := newOptions(opts)
	d := defaultRegistry.ImageWindow(opts...)
	app.Get().Raise(d)
	if o.title != "" {
		d.Frame().SetTitle(o.title)
	}
	err := d.Frame().Display(data, render.ImageOpts{
		Colormap: o.colormap,
		Style:    "contour",
		Levels:   o.levels,
		X:        o.xdata,
		Y:        o.ydata,
	})
	app.Get().Refresh()
	return d, err
}
