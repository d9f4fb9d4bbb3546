/*
PURPOSE:
  Parses the verbose token-budget report of `z1 ctx`.

REQUIREMENTS:
  User-specified:
  - Keep the raw text next to the extracted values.
  - Per-function entries keep the order in which they appear.

  Implementation-discovered:
  - A malformed "Usage:" percentage is skipped. "Total tokens:", "Budget:"
    and "Characters:" are emitted by the estimator itself and a value that
    does not parse there is an error.

ERROR HANDLING:
  - Returns an error for non-integer token, budget or character values.
  - Never fails on lines it does not recognize.

RELATED FILES:
  - internal/engine/assembler.go
*/

package extract

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/daryltucker/cellbench/internal/model"
)

const (
	totalTokensPrefix = "Total tokens:"
	budgetPrefix      = "Budget:"
	usagePrefix       = "Usage:"
	charactersPrefix  = "Characters:"
)

var functionLine = regexp.MustCompile(`^-\s*(?P<name>[^:]+):\s*(?P<tokens>\d+)\s+tokens\s+\((?P<chars>\d+)\s+chars\)`)

// ParseContext extracts the summary scalars and per-function breakdown.
func ParseContext(output string) (model.Context, error) {
	ctx := model.Context{Raw: output}
	var functions []model.FunctionUsage

	for _, line := range splitLines(output) {
		stripped := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(stripped, totalTokensPrefix):
			v, err := optionalInt(stripped, totalTokensPrefix)
			if err != nil {
				return model.Context{}, err
			}
			if v != nil {
				ctx.TotalTokens = v
			}
		case strings.HasPrefix(stripped, budgetPrefix):
			v, err := optionalInt(stripped, budgetPrefix)
			if err != nil {
				return model.Context{}, err
			}
			if v != nil {
				ctx.Budget = v
			}
		case strings.HasPrefix(stripped, usagePrefix):
			if v, ok := parseUsage(stripped); ok {
				ctx.UsagePercent = &v
			}
		case strings.HasPrefix(stripped, charactersPrefix):
			raw := strings.TrimSpace(strings.TrimPrefix(stripped, charactersPrefix))
			n, err := strconv.Atoi(raw)
			if err != nil {
				return model.Context{}, fmt.Errorf("parse %q: %w", stripped, err)
			}
			ctx.CharCount = &n
		default:
			if fn, ok := parseFunctionLine(stripped); ok {
				functions = append(functions, fn)
			}
		}
	}

	if len(functions) > 0 {
		ctx.Functions = functions
	}
	return ctx, nil
}

// optionalInt parses the remainder after prefix. An empty remainder is not
// an error and yields nil.
func optionalInt(line, prefix string) (*int, error) {
	raw := strings.TrimSpace(strings.TrimPrefix(line, prefix))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", line, err)
	}
	return &n, nil
}

func parseUsage(line string) (float64, bool) {
	raw := strings.TrimSpace(strings.TrimPrefix(line, usagePrefix))
	raw = strings.TrimRight(raw, "%")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseFunctionLine(line string) (model.FunctionUsage, bool) {
	m := functionLine.FindStringSubmatch(line)
	if m == nil {
		return model.FunctionUsage{}, false
	}
	tokens, err := strconv.Atoi(m[functionLine.SubexpIndex("tokens")])
	if err != nil {
		return model.FunctionUsage{}, false
	}
	chars, err := strconv.Atoi(m[functionLine.SubexpIndex("chars")])
	if err != nil {
		return model.FunctionUsage{}, false
	}
	return model.FunctionUsage{
		Name:   strings.TrimSpace(m[functionLine.SubexpIndex("name")]),
		Tokens: tokens,
		Chars:  chars,
	}, true
}
