package output

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/daryltucker/cellbench/internal/model"
)

func sampleReport() model.Report {
	stdout := "semhash: abc\n"
	stderr := ""
	ratio := 1.5
	return model.Report{
		Meta: model.Meta{
			GitHead:   "deadbeef",
			Timestamp: "2026-10-16T09:30:00Z",
			Cell:      "fixtures/cells/http_server.z1c",
			CellMetrics: model.CellMetrics{
				CompactChars: 100, CompactBytes: 100,
				RelaxedChars: 150, RelaxedBytes: 150,
				CompressionRatio: &ratio,
			},
			Hashes:  model.Hashes{"semhash": "abc"},
			Context: model.Context{Raw: ""},
		},
		Commands: []model.CommandResult{
			{Label: "cargo fmt", Command: "cargo fmt --all", Duration: 0.25},
			{Label: "z1 hash", Command: "cargo run -p z1-cli -- hash cell.z1c", Duration: 0.1, Stdout: &stdout, Stderr: &stderr},
		},
	}
}

func TestEncodeReportShape(t *testing.T) {
	data, err := EncodeReport(sampleReport())
	if err != nil {
		t.Fatalf("EncodeReport error: %v", err)
	}
	if !strings.HasSuffix(string(data), "}\n") {
		t.Fatalf("expected trailing newline")
	}
	if !strings.Contains(string(data), "\n  \"meta\": {") {
		t.Fatalf("expected two-space indentation:\n%s", data)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	commands := decoded["commands"].([]any)
	first := commands[0].(map[string]any)
	if v, ok := first["stdout"]; !ok || v != nil {
		t.Fatalf("uncaptured stdout must be null, got %v (present=%v)", v, ok)
	}
	second := commands[1].(map[string]any)
	if second["stderr"] != "" {
		t.Fatalf("captured empty stderr must stay an empty string, got %v", second["stderr"])
	}
	ctx := decoded["meta"].(map[string]any)["context"].(map[string]any)
	for _, key := range []string{"total_tokens", "budget", "usage_percent", "char_count", "functions"} {
		if _, ok := ctx[key]; ok {
			t.Fatalf("unset context field %s must be omitted", key)
		}
	}
}

func TestEncodeReportNullRatio(t *testing.T) {
	r := sampleReport()
	r.Meta.CellMetrics.CompressionRatio = nil
	data, err := EncodeReport(r)
	if err != nil {
		t.Fatalf("EncodeReport error: %v", err)
	}
	if !strings.Contains(string(data), `"compression_ratio": null`) {
		t.Fatalf("expected null compression_ratio:\n%s", data)
	}
}

func TestWriteReportCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "latest.json")
	digest, err := WriteReport(path, sampleReport())
	if err != nil {
		t.Fatalf("WriteReport error: %v", err)
	}
	if len(digest) != 64 {
		t.Fatalf("unexpected digest %q", digest)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("report not written: %v", err)
	}
}

func TestWriteReportRejectsInvalid(t *testing.T) {
	r := sampleReport()
	r.Meta.Hashes = model.Hashes{"md5": "nope"}
	path := filepath.Join(t.TempDir(), "latest.json")
	if _, err := WriteReport(path, r); err == nil {
		t.Fatalf("expected schema validation error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("invalid report must not be written")
	}
}

func TestDigestIgnoresFormatting(t *testing.T) {
	a, err := Digest([]byte(`{"b": 2, "a": 1}`))
	if err != nil {
		t.Fatalf("digest error: %v", err)
	}
	b, err := Digest([]byte(`{"a":1,"b":2}`))
	if err != nil {
		t.Fatalf("digest error: %v", err)
	}
	if a != b {
		t.Fatalf("expected equal digests for equivalent JSON")
	}
	if _, err := Digest([]byte(`{`)); err == nil {
		t.Fatalf("expected error for invalid JSON")
	}
}

func TestWriteSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "summary.csv")
	if err := WriteSummary(path, sampleReport().Commands); err != nil {
		t.Fatalf("WriteSummary error: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[1][0] != "cargo fmt" || rows[1][2] != "0.2500" || rows[1][4] != "false" {
		t.Fatalf("unexpected row: %v", rows[1])
	}
	if rows[2][4] != "true" {
		t.Fatalf("captured flag not set: %v", rows[2])
	}
}
