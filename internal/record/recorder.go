package record

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"spmon/internal/model"
)

// Recorder is an append-only sink for cycle records.
type Recorder interface {
	// EnsureSchema establishes the column set if the log does not exist
	// yet. Existing logs are left exactly as they are.
	EnsureSchema() error
	// Append writes one row in schema order.
	Append(model.Cycle) error
	Close() error
}

// CSVRecorder appends comma-separated rows to a single log file. It holds
// no file handle between appends; each write opens, appends, and closes.
type CSVRecorder struct {
	path string
	n    int
}

func NewCSV(path string, n int) *CSVRecorder {
	return &CSVRecorder{path: path, n: n}
}

func (r *CSVRecorder) EnsureSchema() error {
	_, err := os.Stat(r.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat log %s: %w", r.path, err)
	}
	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("creating log %s: %w", r.path, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(Header(r.n)); err != nil {
		f.Close()
		return fmt.Errorf("writing header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("writing header: %w", err)
	}
	return f.Close()
}

func (r *CSVRecorder) Append(c model.Cycle) error {
	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening log %s: %w", r.path, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(Row(c, r.n)); err != nil {
		f.Close()
		return fmt.Errorf("appending row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("appending row: %w", err)
	}
	return f.Close()
}

func (r *CSVRecorder) Close() error { return nil }

// Target is the log destination shown in the display header.
func (r *CSVRecorder) Target() string { return r.path }
