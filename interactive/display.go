package interactive

import (
	"fmt"
	"sync"
	"time"

	"github.com/san-kum/plotwin/app"
	"github.com/san-kum/plotwin/internal/dataio"
	"github.com/san-kum/plotwin/render"
	"github.com/san-kum/plotwin/themes"
)

// CursorEvent is one cursor-motion notification recorded by a window.
// IX and IY are image pixel indices; they are -1 for plot windows.
type CursorEvent struct {
	X, Y   float64
	IX, IY int
	Time   time.Time
}

// PlotDisplay is a plot window entry: a plot frame plus bookkeeping
// (handle, cursor history, registry slot).
type PlotDisplay struct {
	frame  *render.PlotFrame
	reg    *Registry
	handle int
	title  string
	themed bool // theme pinned at creation; otherwise follows the default

	mu         sync.Mutex
	cursorHist []CursorEvent
}

func newPlotDisplay(reg *Registry, handle int, o options) *PlotDisplay {
	app.Get() // the application must exist before any window

	title := o.winTitle
	if title == "" {
		title = fmt.Sprintf("Plot Window %d", handle)
	}
	cols, rows := o.width, o.height
	if cols <= 0 {
		cols = defaultCols
	}
	if rows <= 0 {
		rows = defaultRows
	}
	return &PlotDisplay{
		frame:  render.NewPlotFrame(cols, rows, themes.GetOrDefault(o.theme)),
		reg:    reg,
		handle: handle,
		title:  title,
		themed: o.theme != "",
	}
}

// attach makes the window visible and focused in the event loop.
func (d *PlotDisplay) attach() { app.Get().Register(d) }

// Frame exposes the window's drawing surface.
func (d *PlotDisplay) Frame() *render.PlotFrame { return d.frame }

// Handle returns the window's registry slot.
func (d *PlotDisplay) Handle() int { return d.handle }

// Title returns the window frame title.
func (d *PlotDisplay) Title() string { return d.title }

// Render draws the window at the given size.
func (d *PlotDisplay) Render(cols, rows int) string {
	if !d.themed {
		d.frame.SetTheme(themes.Default())
	}
	d.frame.Resize(cols, rows)
	return d.frame.Render()
}

// CursorMoved translates a cell position to data coordinates and
// prepends the event to the bounded history.
func (d *PlotDisplay) CursorMoved(col, row int) {
	x, y, ok := d.frame.DataCoords(col, row)
	if !ok {
		return
	}
	d.recordCursor(CursorEvent{X: x, Y: y, IX: -1, IY: -1, Time: time.Now()})
}

// RequestClose is the window's exit path: it frees the registry slot
// and leaves the event loop. A later resolution of the same handle
// constructs a fresh window.
func (d *PlotDisplay) RequestClose() {
	d.reg.removePlot(d.handle, d)
	app.Get().Unregister(d)
}

// CursorHistory returns a copy of the recorded cursor events, most
// recent first.
func (d *PlotDisplay) CursorHistory() []CursorEvent {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]CursorEvent, len(d.cursorHist))
	copy(out, d.cursorHist)
	return out
}

func (d *PlotDisplay) recordCursor(ev CursorEvent) {
	d.mu.Lock()
	d.cursorHist = append([]CursorEvent{ev}, d.cursorHist...)
	if len(d.cursorHist) > MaxCursorHist {
		d.cursorHist = d.cursorHist[:MaxCursorHist]
	}
	d.mu.Unlock()
}

// SaveSnapshot writes the rendered window and its metadata under dir,
// returning the snapshot path.
func (d *PlotDisplay) SaveSnapshot(dir string) (string, error) {
	meta := dataio.SnapshotMeta{
		Window:    d.handle,
		Kind:      "plot",
		Title:     d.title,
		Traces:    d.frame.TraceLabels(),
		Timestamp: time.Now(),
	}
	return dataio.WriteSnapshot(dir, meta, d.frame.Render())
}

// ImageDisplay is an image window entry: an image frame plus
// bookkeeping, mirroring PlotDisplay.
type ImageDisplay struct {
	frame  *render.ImageFrame
	reg    *Registry
	handle int
	title  string
	themed bool

	mu         sync.Mutex
	cursorHist []CursorEvent
}

func newImageDisplay(reg *Registry, handle int, o options) *ImageDisplay {
	app.Get()

	title := o.winTitle
	if title == "" {
		title = fmt.Sprintf("Image Window %d", handle)
	}
	cols, rows := o.width, o.height
	if cols <= 0 {
		cols = defaultCols
	}
	if rows <= 0 {
		rows = defaultRows
	}
	return &ImageDisplay{
		frame:  render.NewImageFrame(cols, rows, themes.GetOrDefault(o.theme)),
		reg:    reg,
		handle: handle,
		title:  title,
		themed: o.theme != "",
	}
}

func (d *ImageDisplay) attach() { app.Get().Register(d) }

// Frame exposes the window's drawing surface.
func (d *ImageDisplay) Frame() *render.ImageFrame { return d.frame }

// Handle returns the window's registry slot.
func (d *ImageDisplay) Handle() int { return d.handle }

// Title returns the window frame title.
func (d *ImageDisplay) Title() string { return d.title }

// Render draws the window at the given size.
func (d *ImageDisplay) Render(cols, rows int) string {
	if !d.themed {
		d.frame.SetTheme(themes.Default())
	}
	d.frame.Resize(cols, rows)
	return d.frame.Render()
}

// CursorMoved records the pixel under the cursor: data coordinates
// from the image's axis arrays plus the grid indices.
func (d *ImageDisplay) CursorMoved(col, row int) {
	px, ok := d.frame.PixelAt(col, row)
	if !ok {
		return
	}
	d.recordCursor(CursorEvent{X: px.X, Y: px.Y, IX: px.IX, IY: px.IY, Time: time.Now()})
}

// RequestClose frees the registry slot and leaves the event loop.
func (d *ImageDisplay) RequestClose() {
	d.reg.removeImage(d.handle, d)
	app.Get().Unregister(d)
}

// CursorHistory returns a copy of the recorded cursor events, most
// recent first.
func (d *ImageDisplay) CursorHistory() []CursorEvent {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]CursorEvent, len(d.cursorHist))
	copy(out, d.cursorHist)
	return out
}

func (d *ImageDisplay) recordCursor(ev CursorEvent) {
	d.mu.Lock()
	d.cursorHist = append([]CursorEvent{ev}, d.cursorHist...)
	if len(d.cursorHist) > MaxCursorHist {
		d.cursorHist = d.cursorHist[:MaxCursorHist]
	}
	d.mu.Unlock()
}

// SaveSnapshot writes the rendered window and its metadata under dir.
func (d *ImageDisplay) SaveSnapshot(dir string) (string, error) {
	meta := dataio.SnapshotMeta{
		Window:    d.handle,
		Kind:      "image",
		Title:     d.title,
		Timestamp: time.Now(),
	}
	return dataio.WriteSnapshot(dir, meta, d.frame.Render())
}
