/*
PURPOSE:
  Writes a per-command summary of a run to a CSV file.
  Optional companion to the JSON report for spreadsheet-style diffing.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine when summary_csv is configured
  - Consumes: internal/model.CommandResult

ERROR HANDLING:
  - Returns error on file creation or write failure.

IMPLEMENTATION RULES:
  - Use encoding/csv.
  - Flush() after every write.

USAGE:
  w, err := output.NewCSVWriter("benchmarks/latest.csv")
  w.Write(result)
  w.Close()

MAINTENANCE:
  - Update Write() mapping when CommandResult changes.
*/

package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/daryltucker/cellbench/internal/model"
)

var csvHeader = []string{"label", "command", "duration_s", "returncode", "captured"}

// CSVWriter writes command records to a CSV file.
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates a new CSVWriter.
// It overwrites the file if it exists.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		f.Close()
		return nil, err
	}
	w.Flush()

	return &CSVWriter{
		file:   f,
		writer: w,
	}, nil
}

// Write writes a single command record.
func (cw *CSVWriter) Write(r model.CommandResult) error {
	record := []string{
		r.Label,
		r.Command,
		fmt.Sprintf("%.4f", r.Duration),
		strconv.Itoa(r.ReturnCode),
		strconv.FormatBool(r.Captured()),
	}
	if err := cw.writer.Write(record); err != nil {
		return err
	}
	cw.writer.Flush()
	return cw.writer.Error()
}

// Close closes the underlying file.
func (cw *CSVWriter) Close() error {
	cw.writer.Flush()
	return cw.file.Close()
}

// WriteSummary writes all records to path.
func WriteSummary(path string, results []model.CommandResult) (err error) {
	w, err := NewCSVWriter(path)
	if err != nil {
		return fmt.Errorf("failed to init CSV writer at %s: %w", path, err)
	}
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()
	for _, r := range results {
		if err := w.Write(r); err != nil {
			return fmt.Errorf("failed to write CSV row for %s: %w", r.Label, err)
		}
	}
	return nil
}
