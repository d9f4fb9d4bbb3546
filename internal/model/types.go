/*
PURPOSE:
  Defines the data structures that make up a benchmark report.
  Every value here is built once and never mutated afterwards.

REQUIREMENTS:
  User-specified:
  - Record label, command, duration and return code for every step.
  - Keep "not captured" distinct from "captured but empty".
  - Record hashes, context estimates and cell size metrics.

  Implementation-discovered:
  - Optional scalars are pointers so that absence serializes as an omitted
    key (or null for captured streams) instead of a zero value.

ARCHITECTURE INTEGRATION:
  - Used by: internal/extract, internal/engine, internal/output
  - Shared across boundaries.

ERROR HANDLING:
  - None (pure data structs).

RELATED FILES:
  - internal/schema/report.schema.json
  - internal/output/json.go
*/

package model

// HashNames is the fixed vocabulary accepted from a hash listing.
var HashNames = []string{"semhash", "formhash"}

// CommandResult is the record of one executed pipeline step.
type CommandResult struct {
	Label      string  `json:"label"`
	Command    string  `json:"command"`
	Duration   float64 `json:"duration_s"` // seconds, monotonic
	ReturnCode int     `json:"returncode"`
	Stdout     *string `json:"stdout"` // nil when not captured
	Stderr     *string `json:"stderr"`
}

// Captured reports whether the step ran with output capture.
func (c CommandResult) Captured() bool {
	return c.Stdout != nil || c.Stderr != nil
}

// Hashes maps a hash name from HashNames to its reported value.
type Hashes map[string]string

// FunctionUsage is one per-function line of a token-budget report.
type FunctionUsage struct {
	Name   string `json:"name"`
	Tokens int    `json:"tokens"`
	Chars  int    `json:"chars"`
}

// Context holds the parsed token-budget report.
type Context struct {
	Raw          string          `json:"raw"`
	TotalTokens  *int            `json:"total_tokens,omitempty"`
	Budget       *int            `json:"budget,omitempty"`
	UsagePercent *float64        `json:"usage_percent,omitempty"`
	CharCount    *int            `json:"char_count,omitempty"`
	Functions    []FunctionUsage `json:"functions,omitempty"` // source order
}

// CellMetrics compares the compact and relaxed renderings of the cell.
type CellMetrics struct {
	CompactChars     int      `json:"compact_chars"`
	CompactBytes     int      `json:"compact_bytes"`
	RelaxedChars     int      `json:"relaxed_chars"`
	RelaxedBytes     int      `json:"relaxed_bytes"`
	CompressionRatio *float64 `json:"compression_ratio"` // nil when CompactBytes is 0
}

// Meta describes the benchmarked revision and everything measured on the cell.
type Meta struct {
	GitHead     string      `json:"git_head"`
	Timestamp   string      `json:"timestamp"`
	Cell        string      `json:"cell"`
	CellMetrics CellMetrics `json:"cell_metrics"`
	Hashes      Hashes      `json:"hashes"`
	Context     Context     `json:"context"`
}

// Report is the top-level document written once per run.
type Report struct {
	Meta     Meta            `json:"meta"`
	Commands []CommandResult `json:"commands"` // execution order
}
