package pkg

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
)

func TestEscapeCSV(t *testing.T) {
	cases := map[string]string{
		"plain":        "plain",
		`Boston, "MA"`: `"Boston, ""MA"""`,
		"a\nb":         "\"a\nb\"",
		`say "hi"`:     `"say ""hi"""`,
		"":             "",
	}
	for in, want := range cases {
		if got := EscapeCSV(in); got != want {
			t.Errorf("EscapeCSV(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	header := []string{"ID", "姓名", "所在地"}
	rows := [][]string{
		{"1", "张三", `Boston, "MA"`},
		{"2", "Line\nBreak", "NYC"},
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, header, rows); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, UTF8BOM) {
		t.Fatalf("missing BOM")
	}
	if !strings.Contains(out, `"Boston, ""MA"""`) {
		t.Fatalf("location not escaped: %q", out)
	}

	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(out, UTF8BOM)))
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d", len(records))
	}
	if records[1][2] != `Boston, "MA"` {
		t.Fatalf("round trip mismatch: %q", records[1][2])
	}
	if records[2][1] != "Line\nBreak" {
		t.Fatalf("newline round trip mismatch: %q", records[2][1])
	}
}
