package interactive

import "sync"

const (
	// MaxWindows bounds the number of slots per registry.
	MaxWindows = 100
	// MaxCursorHist bounds each window's cursor event history.
	MaxCursorHist = 100
)

// ClampHandle maps any int onto a valid window handle: absolute
// value, clamped into [1, MaxWindows]. Invalid handles are never
// rejected, only clamped.
func ClampHandle(win int) int {
	if win < 0 {
		win = -win
	}
	if win < 1 {
		return 1
	}
	if win > MaxWindows {
		return MaxWindows
	}
	return win
}

// Registry owns the handle-to-window maps for plot and image windows.
// A window occupies its slot until its exit path removes it; that is
// the only deletion path.
type Registry struct {
	mu     sync.Mutex
	plots  map[int]*PlotDisplay
	images map[int]*ImageDisplay
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		plots:  make(map[int]*PlotDisplay),
		images: make(map[int]*ImageDisplay),
	}
}

// defaultRegistry backs the package-level forwarders.
var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry used by the
// package-level functions.
func DefaultRegistry() *Registry { return defaultRegistry }

// PlotWindow returns the plot window registered under the clamped
// handle, constructing and registering a new one when the slot is
// empty. Size, title and theme options are applied only on creation.
func (r *Registry) PlotWindow(opts ...Option) *PlotDisplay {
	o := newOptions(opts)
	win := ClampHandle(o.win)

	r.mu.Lock()
	if d, ok := r.plots[win]; ok {
		r.mu.Unlock()
		return d
	}
	d := newPlotDisplay(r, win, o)
	r.plots[win] = d
	r.mu.Unlock()

	d.attach()
	return d
}

// ImageWindow is PlotWindow for image windows.
func (r *Registry) ImageWindow(opts ...Option) *ImageDisplay {
	o := newOptions(opts)
	win := ClampHandle(o.win)

	r.mu.Lock()
	if d, ok := r.images[win]; ok {
		r.mu.Unlock()
		return d
	}
	d := newImageDisplay(r, win, o)
	r.images[win] = d
	r.mu.Unlock()

	d.attach()
	return d
}

// removePlot clears a plot slot, but only while d still occupies it.
func (r *Registry) removePlot(win int, d *PlotDisplay) {
	r.mu.Lock()
	if cur, ok := r.plots[win]; ok && cur == d {
		delete(r.plots, win)
	}
	r.mu.Unlock()
}

func (r *Registry) removeImage(win int, d *ImageDisplay) {
	r.mu.Lock()
	if cur, ok := r.images[win]; ok && cur == d {
		delete(r.images, win)
	}
	r.mu.Unlock()
}

// NumPlots reports the number of open plot windows.
func (r *Registry) NumPlots() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.plots)
}

// NumImages reports the number of open image windows.
func (r *Registry) NumImages() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.images)
}
