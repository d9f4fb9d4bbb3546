/*
PURPOSE:
  Bounds captured command output before it is embedded in a report.

IMPLEMENTATION RULES:
  - Count characters (runes), never bytes.
  - The marker states exactly how many characters were dropped.
  - Not idempotent: truncating an already truncated string at the same limit
    truncates again, because the marker itself pushes it over the limit.
*/

package extract

import "fmt"

// DefaultTruncateLimit is the character limit applied to captured streams.
const DefaultTruncateLimit = 2000

// Truncate returns text unchanged when it has at most limit characters.
// Otherwise it keeps the first limit characters and appends a marker line.
func Truncate(text string, limit int) string {
	if limit < 0 {
		limit = 0
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	omitted := len(runes) - limit
	return fmt.Sprintf("%s\n...[truncated %d chars]", string(runes[:limit]), omitted)
}

// TruncatePtr applies Truncate to a captured stream, leaving nil as nil.
func TruncatePtr(text *string, limit int) *string {
	if text == nil {
		return nil
	}
	out := Truncate(*text, limit)
	return &out
}
