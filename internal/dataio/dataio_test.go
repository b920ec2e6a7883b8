package dataio

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadColumnsWithHeader(t *testing.T) {
	path := writeFile(t, "time,volts\n0.0,1.5\n0.1,2.5\n0.2,3.5\n")

	cols, err := ReadColumns(path)
	if err != nil {
		t.Fatal(err)
	}
	if cols.Name(0) != "time" || cols.Name(1) != "volts" {
		t.Errorf("headers not detected: %v", cols.Headers)
	}

	v, err := cols.Column(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(v) != 3 || v[0] != 1.5 || v[2] != 3.5 {
		t.Errorf("unexpected column values %v", v)
	}
}

func TestReadColumnsNoHeader(t *testing.T) {
	path := writeFile(t, "0,1\n1,2\n2,4\n")

	cols, err := ReadColumns(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cols.Headers) != 0 {
		t.Errorf("numeric first row treated as header: %v", cols.Headers)
	}
	if cols.Name(1) != "col1" {
		t.Errorf("expected generated name col1, got %s", cols.Name(1))
	}

	x, err := cols.Column(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(x) != 3 {
		t.Errorf("expected 3 rows, got %d", len(x))
	}
}

func TestReadColumnsBadIndex(t *testing.T) {
	path := writeFile(t, "0,1\n1,2\n")

	cols, err := ReadColumns(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := cols.Column(5); err == nil {
		t.Error("expected error for missing column")
	}
}

func TestReadColumnsEmpty(t *testing.T) {
	path := writeFile(t, "")
	if _, err := ReadColumns(path); err == nil {
		t.Error("expected error for empty file")
	}
}

func TestReadGrid(t *testing.T) {
	path := writeFile(t, "1,2,3\n4,5,6\n")

	grid, err := ReadGrid(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(grid) != 2 || len(grid[0]) != 3 {
		t.Fatalf("expected 2x3 grid, got %dx%d", len(grid), len(grid[0]))
	}
	if grid[1][2] != 6 {
		t.Errorf("expected 6 at (1,2), got %g", grid[1][2])
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	meta := SnapshotMeta{
		Window:    3,
		Kind:      "plot",
		Title:     "Plot Window 3",
		Traces:    []string{"sig", "noise"},
		Timestamp: time.Now(),
	}

	snapDir, err := WriteSnapshot(t.TempDir(), meta, "rendered output")
	if err != nil {
		t.Fatal(err)
	}

	got, err := ReadSnapshotMeta(snapDir)
	if err != nil {
		t.Fatal(err)
	}
	if got.Window != 3 || got.Kind != "plot" {
		t.Errorf("metadata mismatch: %+v", got)
	}
	if len(got.Traces) != 2 {
		t.Errorf("expected 2 trace labels, got %v", got.Traces)
	}

	rendered, err := os.ReadFile(filepath.Join(snapDir, "window.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(rendered) != "rendered output" {
		t.Errorf("unexpected window.txt contents %q", rendered)
	}
}
