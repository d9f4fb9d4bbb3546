package extract

import (
	"math"
	"unicode/utf8"

	"github.com/daryltucker/cellbench/internal/model"
)

// MeasureCell compares the compact and relaxed renderings of a cell.
// The compression ratio is relaxed/compact bytes rounded to 4 decimals and
// is left nil when the compact rendering is empty.
func MeasureCell(compact, relaxed string) model.CellMetrics {
	metrics := model.CellMetrics{
		CompactChars: utf8.RuneCountInString(compact),
		CompactBytes: len(compact),
		RelaxedChars: utf8.RuneCountInString(relaxed),
		RelaxedBytes: len(relaxed),
	}
	metrics.CompressionRatio = CompressionRatio(metrics.CompactBytes, metrics.RelaxedBytes)
	return metrics
}

// CompressionRatio returns relaxedBytes/compactBytes rounded to 4 decimals,
// or nil when compactBytes is 0.
func CompressionRatio(compactBytes, relaxedBytes int) *float64 {
	if compactBytes == 0 {
		return nil
	}
	ratio := math.Round(float64(relaxedBytes)/float64(compactBytes)*10_000) / 10_000
	return &ratio
}
