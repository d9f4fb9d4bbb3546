/*
PURPOSE:
  Writes the benchmark report as one indented JSON document.

REQUIREMENTS:
  User-specified:
  - Indented JSON with a trailing newline.
  - Parent directories are created as needed.

  Implementation-discovered:
  - The document is validated against the embedded report schema before it
    touches the disk.
  - Returns the SHA-256 of the canonical (RFC 8785) form for logging.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine
  - Consumes: internal/model.Report
  - Uses: internal/schema, github.com/gowebpki/jcs

ERROR HANDLING:
  - Returns error on encoding, validation, directory creation or write failure.

USAGE:
  digest, err := output.WriteReport("benchmarks/latest.json", report)
*/

package output

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gowebpki/jcs"

	"github.com/daryltucker/cellbench/internal/model"
	"github.com/daryltucker/cellbench/internal/schema"
)

// EncodeReport renders the report exactly as it is written to disk.
func EncodeReport(r model.Report) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	// Encode terminates the document with a newline.
	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	return buf.Bytes(), nil
}

// Digest returns the SHA-256 hex digest of the canonical form of data.
func Digest(data []byte) (string, error) {
	canonical, err := jcs.Transform(data)
	if err != nil {
		return "", fmt.Errorf("canonicalize report: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// WriteReport validates, encodes and writes r to path and returns its digest.
func WriteReport(path string, r model.Report) (string, error) {
	data, err := EncodeReport(r)
	if err != nil {
		return "", err
	}
	if err := schema.ValidateReport(data); err != nil {
		return "", err
	}
	digest, err := Digest(data)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return digest, nil
}
