package output

import (
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"", "", false},
		{"table", FormatTable, false},
		{"json", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"JSON", FormatJSON, false},
		{"Table", FormatTable, false},
		{"xml", "", true},
		{"wide", "", true},
	}

	for _, test := range tests {
		result, err := ParseFormat(test.input)
		if test.wantErr {
			if err == nil {
				t.Errorf("ParseFormat(%q) expected error, got %q", test.input, result)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFormat(%q) unexpected error: %v", test.input, err)
			continue
		}
		if result != test.expected {
			t.Errorf("ParseFormat(%q) = %q, want %q", test.input, result, test.expected)
		}
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf strings.Builder
	formatter := NewFormatter(FormatJSON)

	data := map[string]string{"batch": "20250101"}
	if err := formatter.Format(&buf, data); err != nil {
		t.Fatalf("Format() error: %v", err)
	}

	got := buf.String()
	if !strings.Contains(got, `"batch": "20250101"`) {
		t.Errorf("Format() output missing indented field, got %q", got)
	}
	if !strings.HasSuffix(got, "\n") {
		t.Errorf("Format() output missing trailing newline, got %q", got)
	}
}

func TestYAMLFormatter(t *testing.T) {
	var buf strings.Builder
	formatter := NewFormatter(FormatYAML)

	data := map[string]string{"batch": "20250101"}
	if err := formatter.Format(&buf, data); err != nil {
		t.Fatalf("Format() error: %v", err)
	}

	if !strings.Contains(buf.String(), "batch: \"20250101\"") {
		t.Errorf("Format() output missing field, got %q", buf.String())
	}
}

func TestTableFormatter(t *testing.T) {
	var buf strings.Builder
	formatter := NewFormatter(FormatTable)

	data := Data{
		Headers: []string{"Batch", "Documents"},
		Rows: [][]string{
			{"20250101", "3"},
			{"20250102", "1"},
		},
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
	if err := formatter.Format(&buf, data); err != nil {
		t.Fatalf("Format() error: %v", err)
	}

	got := buf.String()
	for _, want := range []string{"BATCH", "DOCUMENTS", "20250101", "20250102"} {
		if !strings.Contains(got, want) {
			t.Errorf("Format() output missing %q, got:\n%s", want, got)
		}
	}
}

func TestTableFormatterConvertsStructSlices(t *testing.T) {
	var buf strings.Builder
	formatter := NewFormatter(FormatTable)

	type row struct {
		Batch     string `json:"batch"`
		Documents int    `json:"document_count"`
		hidden    bool
	}
	data := []row{
		{Batch: "20250101", Documents: 3},
		{Batch: "20250102", Documents: 1, hidden: true},
	}
	if err := formatter.Format(&buf, data); err != nil {
		t.Fatalf("Format() error: %v", err)
	}

	got := buf.String()
	for _, want := range []string{"BATCH", "DOCUMENT COUNT", "20250101", "20250102"} {
		if !strings.Contains(got, want) {
			t.Errorf("Format() output missing %q, got:\n%s", want, got)
		}
	}
	if strings.Contains(got, "HIDDEN") {
		t.Errorf("Format() included unexported field, got:\n%s", got)
	}
}

func TestTableFormatterFallsBackToJSON(t *testing.T) {
	var buf strings.Builder
	formatter := NewFormatter(FormatTable)

	// Non-tabular values render as JSON so structured data stays usable.
	data := map[string]int{"documents": 4}
	if err := formatter.Format(&buf, data); err != nil {
		t.Fatalf("Format() error: %v", err)
	}

	if !strings.Contains(buf.String(), `"documents": 4`) {
		t.Errorf("Format() expected JSON fallback, got %q", buf.String())
	}
}

func TestDetectFormatExplicit(t *testing.T) {
	if got := DetectFormat("yaml"); got != FormatYAML {
		t.Errorf("DetectFormat(\"yaml\") = %q, want %q", got, FormatYAML)
	}
	if got := DetectFormat("TABLE"); got != FormatTable {
		t.Errorf("DetectFormat(\"TABLE\") = %q, want %q", got, FormatTable)
	}
}
