package render

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/plotwin/themes"
)

func newTestFrame() *PlotFrame {
	return NewPlotFrame(60, 20, themes.GetOrDefault("light"))
}

func TestPlotReplacesOPlotAppends(t *testing.T) {
	f := newTestFrame()
	x := []float64{0, 1, 2}
	y := []float64{1, 2, 3}

	if err := f.Plot(x, y, TraceOpts{Label: "a"}); err != nil {
		t.Fatal(err)
	}
	if err := f.OPlot(x, y, TraceOpts{Label: "b"}); err != nil {
		t.Fatal(err)
	}
	if f.NumTraces() != 2 {
		t.Fatalf("expected 2 traces after overplot, got %d", f.NumTraces())
	}

	if err := f.Plot(x, y, TraceOpts{Label: "c"}); err != nil {
		t.Fatal(err)
	}
	if f.NumTraces() != 1 {
		t.Fatalf("Plot should reset traces, got %d", f.NumTraces())
	}
	if labels := f.TraceLabels(); labels[0] != "c" {
		t.Errorf("expected label c, got %s", labels[0])
	}
}

func TestPlotBadSeries(t *testing.T) {
	f := newTestFrame()

	if err := f.Plot(nil, nil, TraceOpts{}); !errors.Is(err, ErrEmptyData) {
		t.Errorf("expected ErrEmptyData, got %v", err)
	}
	if err := f.Plot([]float64{1, 2}, []float64{1}, TraceOpts{}); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("expected ErrLengthMismatch, got %v", err)
	}
}

func TestUpdateTrace(t *testing.T) {
	f := newTestFrame()
	if err := f.Plot([]float64{0, 1}, []float64{0, 1}, TraceOpts{Label: "sig"}); err != nil {
		t.Fatal(err)
	}

	if err := f.UpdateTrace(0, []float64{0, 1}, []float64{5, 6}); err != nil {
		t.Fatal(err)
	}
	if labels := f.TraceLabels(); labels[0] != "sig" {
		t.Error("update should keep trace styling")
	}

	if err := f.UpdateTrace(3, []float64{0}, []float64{0}); !errors.Is(err, ErrNoSuchTrace) {
		t.Errorf("expected ErrNoSuchTrace, got %v", err)
	}
}

func TestUpdateTraceDoesNotShareBacking(t *testing.T) {
	f := newTestFrame()
	x := []float64{0, 1}
	y := []float64{0, 1}
	if err := f.Plot(x, y, TraceOpts{}); err != nil {
		t.Fatal(err)
	}
	y[0] = 99

	lim := f.ViewLimits()
	if lim.YMax > 50 {
		t.Error("frame should copy input slices")
	}
}

func TestViewLimitsAutoscale(t *testing.T) {
	f := newTestFrame()
	if err := f.Plot([]float64{0, 10}, []float64{-2, 2}, TraceOpts{}); err != nil {
		t.Fatal(err)
	}

	lim := f.ViewLimits()
	if lim.XMin >= 0 || lim.XMax <= 10 {
		t.Errorf("x limits should pad beyond data, got [%g, %g]", lim.XMin, lim.XMax)
	}
	if lim.YMin >= -2 || lim.YMax <= 2 {
		t.Errorf("y limits should pad beyond data, got [%g, %g]", lim.YMin, lim.YMax)
	}
}

func TestSetLimitsPartial(t *testing.T) {
	f := newTestFrame()
	if err := f.Plot([]float64{0, 10}, []float64{0, 100}, TraceOpts{}); err != nil {
		t.Fatal(err)
	}

	n := math.NaN()
	f.SetLimits(2, 8, n, n)
	lim := f.ViewLimits()
	if lim.XMin != 2 || lim.XMax != 8 {
		t.Errorf("manual x limits ignored: [%g, %g]", lim.XMin, lim.XMax)
	}
	if lim.YMax <= 100 {
		t.Errorf("y should stay autoscaled, got YMax %g", lim.YMax)
	}
}

func TestPlotResetsLimits(t *testing.T) {
	f := newTestFrame()
	if err := f.Plot([]float64{0, 1}, []float64{0, 1}, TraceOpts{}); err != nil {
		t.Fatal(err)
	}
	f.SetLimits(0, 5, 0, 5)

	if err := f.Plot([]float64{0, 1}, []float64{0, 1}, TraceOpts{}); err != nil {
		t.Fatal(err)
	}
	lim := f.ViewLimits()
	if lim.XMax == 5 {
		t.Error("Plot should reset manual limits")
	}
}

func TestHistBinning(t *testing.T) {
	f := newTestFrame()
	values := []float64{0, 0.1, 0.2, 5, 5.1, 9.9, 10}
	if err := f.Hist(values, 5, true, TraceOpts{}); err != nil {
		t.Fatal(err)
	}
	if f.NumTraces() != 1 {
		t.Fatalf("expected 1 trace, got %d", f.NumTraces())
	}

	lim := f.ViewLimits()
	if lim.YMin > 0 {
		t.Errorf("histogram bars start at zero, YMin %g", lim.YMin)
	}

	if err := f.Hist(nil, 5, true, TraceOpts{}); !errors.Is(err, ErrEmptyData) {
		t.Errorf("expected ErrEmptyData, got %v", err)
	}
}

func TestHistAppendVsClear(t *testing.T) {
	f := newTestFrame()
	if err := f.Hist([]float64{1, 2, 3}, 3, true, TraceOpts{}); err != nil {
		t.Fatal(err)
	}
	if err := f.Hist([]float64{1, 2, 3}, 3, false, TraceOpts{}); err != nil {
		t.Fatal(err)
	}
	if f.NumTraces() != 2 {
		t.Fatalf("expected 2 traces, got %d", f.NumTraces())
	}
	if err := f.Hist([]float64{1, 2, 3}, 3, true, TraceOpts{}); err != nil {
		t.Fatal(err)
	}
	if f.NumTraces() != 1 {
		t.Fatalf("clear should reset, got %d traces", f.NumTraces())
	}
}

func TestRenderLineCount(t *testing.T) {
	f := newTestFrame()
	f.SetTitle("demo")
	f.SetXLabel("t")
	if err := f.Plot([]float64{0, 1, 2}, []float64{0, 1, 0}, TraceOpts{Label: "sig"}); err != nil {
		t.Fatal(err)
	}

	out := f.Render()
	if out == "" {
		t.Fatal("empty render")
	}
	if !strings.Contains(out, "demo") {
		t.Error("render should include the title")
	}
	if !strings.Contains(out, "sig") {
		t.Error("render should include the legend label")
	}
}

func TestRenderHidesNoLegend(t *testing.T) {
	f := newTestFrame()
	if err := f.Plot([]float64{0, 1}, []float64{0, 1}, TraceOpts{Label: "_nolegend_"}); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(f.Render(), "_nolegend_") {
		t.Error("_nolegend_ traces must not appear in the legend")
	}
}

func TestDataCoordsRoundTrip(t *testing.T) {
	f := newTestFrame()
	if err := f.Plot([]float64{0, 10}, []float64{0, 10}, TraceOpts{}); err != nil {
		t.Fatal(err)
	}

	if _, _, ok := f.DataCoords(15, 5); ok {
		t.Error("DataCoords should fail before the first render")
	}

	f.Render()
	lim := f.ViewLimits()

	x, y, ok := f.DataCoords(15, 5)
	if !ok {
		t.Fatal("DataCoords failed inside the plot area")
	}
	if x < lim.XMin || x > lim.XMax || y < lim.YMin || y > lim.YMax {
		t.Errorf("(%g, %g) outside view limits %+v", x, y, lim)
	}

	if _, _, ok := f.DataCoords(0, 0); ok {
		t.Error("gutter cells should not map to data coordinates")
	}
}

func TestAnnotationsSurviveOPlot(t *testing.T) {
	f := newTestFrame()
	if err := f.Plot([]float64{0, 1}, []float64{0, 1}, TraceOpts{}); err != nil {
		t.Fatal(err)
	}
	f.AddText("peak", 0.5, 0.5, "")
	f.AxHLine(0.5, 0, 1, "", "_nolegend_")

	if err := f.OPlot([]float64{0, 1}, []float64{1, 0}, TraceOpts{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(f.Render(), "peak") {
		t.Error("overplot should keep annotations")
	}
}
