package extract

import (
	"slices"
	"strings"

	"github.com/daryltucker/cellbench/internal/model"
)

// ParseHashes reads `key: value` lines and keeps the recognized hash names.
// Lines without a colon and unknown keys are ignored; a repeated key keeps
// its last value. The result is never nil.
func ParseHashes(output string) model.Hashes {
	hashes := model.Hashes{}
	for _, line := range splitLines(output) {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if slices.Contains(model.HashNames, key) {
			hashes[key] = strings.TrimSpace(value)
		}
	}
	return hashes
}

// splitLines splits text on \n, dropping a trailing \r from each line and
// the empty element after a final newline.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
