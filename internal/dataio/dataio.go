// Package dataio reads plot data from CSV files and writes window
// snapshots (rendered text plus JSON metadata) to disk.
package dataio

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Columns holds column-oriented series parsed from a CSV file.
type Columns struct {
	Headers []string
	Data    [][]float64
}

// ReadColumns parses a CSV file into columns of floats. A first row
// that does not parse as numbers is treated as a header.
func ReadColumns(path string) (*Columns, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("dataio: %s: empty file", path)
	}

	cols := &Columns{}
	start := 0
	if _, err := strconv.ParseFloat(records[0][0], 64); err != nil {
		cols.Headers = records[0]
		start = 1
	}
	if start >= len(records) {
		return nil, fmt.Errorf("dataio: %s: no data rows", path)
	}

	width := len(records[start])
	cols.Data = make([][]float64, width)
	for i := start; i < len(records); i++ {
		rec := records[i]
		if len(rec) == 0 {
			continue
		}
		for j := 0; j < width && j < len(rec); j++ {
			v, err := strconv.ParseFloat(rec[j], 64)
			if err != nil {
				continue
			}
			cols.Data[j] = append(cols.Data[j], v)
		}
	}
	return cols, nil
}

// Column returns the series at index i.
func (c *Columns) Column(i int) ([]float64, error) {
	if i < 0 || i >= len(c.Data) {
		return nil, fmt.Errorf("dataio: no column %d (have %d)", i, len(c.Data))
	}
	return c.Data[i], nil
}

// Name returns the header for column i, or a generated "colN" name
// when the file had no header row.
func (c *Columns) Name(i int) string {
	if i >= 0 && i < len(c.Headers) && c.Headers[i] != "" {
		return c.Headers[i]
	}
	return fmt.Sprintf("col%d", i)
}

// ReadGrid parses a CSV file of numbers into a row-major 2-D grid.
func ReadGrid(path string) ([][]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	grid := make([][]float64, 0, len(records))
	for _, rec := range records {
		if len(rec) == 0 {
			continue
		}
		row := make([]float64, 0, len(rec))
		for _, field := range rec {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				continue
			}
			row = append(row, v)
		}
		if len(row) > 0 {
			grid = append(grid, row)
		}
	}
	if len(grid) == 0 {
		return nil, fmt.Errorf("dataio: %s: no numeric rows", path)
	}
	return grid, nil
}

// SnapshotMeta describes a saved window snapshot.
type SnapshotMeta struct {
	Window    int       `json:"window"`
	Kind      string    `json:"kind"` // "plot" or "image"
	Title     string    `json:"title"`
	Traces    []string  `json:"traces,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// WriteSnapshot stores the rendered window text and its metadata
// under dir, returning the snapshot directory path.
func WriteSnapshot(dir string, meta SnapshotMeta, rendered string) (string, error) {
	name := fmt.Sprintf("%s%d_%d", meta.Kind, meta.Window, time.Now().Unix())
	snapDir := filepath.Join(dir, name)
	if err := os.MkdirAll(snapDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(snapDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()
	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := os.WriteFile(filepath.Join(snapDir, "window.txt"), []byte(rendered), 0644); err != nil {
		return "", err
	}
	return snapDir, nil
}

// ReadSnapshotMeta loads the metadata of a saved snapshot directory.
func ReadSnapshotMeta(snapDir string) (*SnapshotMeta, error) {
	data, err := os.ReadFile(filepath.Join(snapDir, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta SnapshotMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}
