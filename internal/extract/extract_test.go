package extract

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/daryltucker/cellbench/internal/model"
)

func TestTruncate(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		limit int
		want  string
	}{
		{name: "under", text: "abc", limit: 5, want: "abc"},
		{name: "exact", text: "abcde", limit: 5, want: "abcde"},
		{name: "over", text: "abcdefgh", limit: 5, want: "abcde\n...[truncated 3 chars]"},
		{name: "zero", text: "ab", limit: 0, want: "\n...[truncated 2 chars]"},
		{name: "negative clamps", text: "ab", limit: -3, want: "\n...[truncated 2 chars]"},
		{name: "empty", text: "", limit: 0, want: ""},
		{name: "runes not bytes", text: "ééééé", limit: 5, want: "ééééé"},
		{name: "multibyte over", text: "日本語テキスト", limit: 3, want: "日本語\n...[truncated 4 chars]"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Truncate(tc.text, tc.limit)
			if got != tc.want {
				t.Fatalf("Truncate(%q, %d) = %q, want %q", tc.text, tc.limit, got, tc.want)
			}
		})
	}
}

func TestTruncateBound(t *testing.T) {
	text := strings.Repeat("x", 5000)
	got := Truncate(text, DefaultTruncateLimit)
	marker := "\n...[truncated 3000 chars]"
	if !strings.HasSuffix(got, marker) {
		t.Fatalf("missing marker: %q", got[len(got)-40:])
	}
	if n := utf8.RuneCountInString(got); n != DefaultTruncateLimit+len(marker) {
		t.Fatalf("unexpected length %d", n)
	}
}

func TestTruncateNotIdempotent(t *testing.T) {
	once := Truncate("abcdefgh", 5)
	twice := Truncate(once, 5)
	if twice == once {
		t.Fatalf("expected second truncation to change the text")
	}
}

func TestTruncatePtr(t *testing.T) {
	if TruncatePtr(nil, 10) != nil {
		t.Fatalf("nil must stay nil")
	}
	empty := ""
	got := TruncatePtr(&empty, 10)
	if got == nil || *got != "" {
		t.Fatalf("empty capture must stay an empty string, got %v", got)
	}
}

func TestParseHashes(t *testing.T) {
	got := ParseHashes("semhash: abc123\nformhash: def456\nnoise line\n")
	want := model.Hashes{"semhash": "abc123", "formhash": "def456"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseHashes = %v, want %v", got, want)
	}
}

func TestParseHashesIgnoresUnknownAndKeepsLast(t *testing.T) {
	input := strings.Join([]string{
		"otherhash: zzz",
		"semhash: first",
		"no colon here",
		"  semhash :  second  ",
		"formhash:a:b",
	}, "\r\n")
	got := ParseHashes(input)
	want := model.Hashes{"semhash": "second", "formhash": "a:b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseHashes = %v, want %v", got, want)
	}
}

func TestParseHashesEmpty(t *testing.T) {
	got := ParseHashes("")
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil map, got %#v", got)
	}
}

func TestParseContext(t *testing.T) {
	input := strings.Join([]string{
		"Context estimate for cell http_server",
		"  Total tokens: 150",
		"  Budget: 200",
		"  Usage: 75.0%",
		"  Characters: 900",
		"  Functions:",
		"  - foo: 10 tokens (40 chars)",
		"  - bar baz : 7 tokens (21 chars)",
		"",
	}, "\n")
	got, err := ParseContext(input)
	if err != nil {
		t.Fatalf("ParseContext error: %v", err)
	}
	if got.Raw != input {
		t.Fatalf("raw text not preserved")
	}
	if got.TotalTokens == nil || *got.TotalTokens != 150 {
		t.Fatalf("total_tokens = %v", got.TotalTokens)
	}
	if got.Budget == nil || *got.Budget != 200 {
		t.Fatalf("budget = %v", got.Budget)
	}
	if got.UsagePercent == nil || *got.UsagePercent != 75.0 {
		t.Fatalf("usage_percent = %v", got.UsagePercent)
	}
	if got.CharCount == nil || *got.CharCount != 900 {
		t.Fatalf("char_count = %v", got.CharCount)
	}
	want := []model.FunctionUsage{
		{Name: "foo", Tokens: 10, Chars: 40},
		{Name: "bar baz", Tokens: 7, Chars: 21},
	}
	if !reflect.DeepEqual(got.Functions, want) {
		t.Fatalf("functions = %+v, want %+v", got.Functions, want)
	}
}

func TestParseContextMalformedUsage(t *testing.T) {
	got, err := ParseContext("Usage: N/A%\nTotal tokens: 12\n")
	if err != nil {
		t.Fatalf("malformed usage must not fail: %v", err)
	}
	if got.UsagePercent != nil {
		t.Fatalf("usage_percent should be unset, got %v", *got.UsagePercent)
	}
	if got.TotalTokens == nil || *got.TotalTokens != 12 {
		t.Fatalf("lines after usage were not parsed: %v", got.TotalTokens)
	}
}

func TestParseContextEmptyScalars(t *testing.T) {
	got, err := ParseContext("Total tokens:\nBudget:   \n")
	if err != nil {
		t.Fatalf("ParseContext error: %v", err)
	}
	if got.TotalTokens != nil || got.Budget != nil {
		t.Fatalf("empty values must leave fields unset")
	}
	if got.Functions != nil {
		t.Fatalf("functions must be omitted when no entry matched")
	}
}

func TestParseContextFatalScalars(t *testing.T) {
	for _, input := range []string{
		"Characters: many",
		"Total tokens: lots",
		"Budget: none",
	} {
		if _, err := ParseContext(input); err == nil {
			t.Fatalf("expected error for %q", input)
		}
	}
}

func TestParseContextIgnoresNearMisses(t *testing.T) {
	got, err := ParseContext("- foo: ten tokens (40 chars)\nfoo: 10 tokens (40 chars)\n")
	if err != nil {
		t.Fatalf("ParseContext error: %v", err)
	}
	if got.Functions != nil {
		t.Fatalf("expected no entries, got %+v", got.Functions)
	}
}

func TestCompressionRatio(t *testing.T) {
	r := CompressionRatio(100, 150)
	if r == nil || *r != 1.5 {
		t.Fatalf("ratio = %v, want 1.5", r)
	}
	if CompressionRatio(0, 150) != nil {
		t.Fatalf("ratio must be nil for empty compact rendering")
	}
	r = CompressionRatio(3, 10)
	if r == nil || *r != 3.3333 {
		t.Fatalf("ratio = %v, want 3.3333", r)
	}
}

func TestMeasureCell(t *testing.T) {
	m := MeasureCell("fn é", "fn  é\n")
	if m.CompactChars != 4 || m.CompactBytes != 5 {
		t.Fatalf("compact counts = %d/%d", m.CompactChars, m.CompactBytes)
	}
	if m.RelaxedChars != 6 || m.RelaxedBytes != 7 {
		t.Fatalf("relaxed counts = %d/%d", m.RelaxedChars, m.RelaxedBytes)
	}
	if m.CompressionRatio == nil || *m.CompressionRatio != 1.4 {
		t.Fatalf("ratio = %v", m.CompressionRatio)
	}
}
