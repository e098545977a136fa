package query

import (
	"testing"
	"time"
)

func TestFormatValue(t *testing.T) {
	ts := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"nil", nil, "NULL"},
		{"true", true, "t"},
		{"false", false, "f"},
		{"string", "hello", "hello"},
		{"multiline string", "a\nb", "a b"},
		{"int64", int64(42), "42"},
		{"float", 3.5, "3.5"},
		{"bytes", []byte{0xde, 0xad}, "\\xdead"},
		{"time", ts, "2025-03-14 09:26:53"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatValue(tt.input); got != tt.expected {
				t.Errorf("FormatValue(%v) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNumericColumn(t *testing.T) {
	rs := &ResultSet{
		Columns: []Column{{Name: "name"}, {Name: "count"}},
		RawRows: [][]any{
			{"a", int64(1)},
			{"b", int64(2)},
			{"c", nil},
			{"d", int64(4)},
		},
	}
	rs.Rows = FormatRows(rs.RawRows)

	vals := rs.NumericColumn(1)
	if len(vals) != 3 {
		t.Fatalf("expected 3 numeric values, got %d", len(vals))
	}
	if vals[0] != 1 || vals[1] != 2 || vals[2] != 4 {
		t.Errorf("unexpected values: %v", vals)
	}

	if got := rs.NumericColumn(0); got != nil {
		t.Errorf("expected nil for text column, got %v", got)
	}
	if got := rs.NumericColumn(5); got != nil {
		t.Errorf("expected nil for out-of-range column, got %v", got)
	}
	if idx := rs.FirstNumericColumn(); idx != 1 {
		t.Errorf("FirstNumericColumn = %d, want 1", idx)
	}
}

func TestCalculateColWidths(t *testing.T) {
	rs := &ResultSet{
		Columns: []Column{{Name: "id"}, {Name: "description"}},
		Rows: [][]string{
			{"1", "short"},
			{"2", "a very long description value that exceeds the cap"},
		},
	}
	rs.CalculateColWidths(20)

	if rs.Columns[0].Width != 2 {
		t.Errorf("id width = %d, want 2", rs.Columns[0].Width)
	}
	if rs.Columns[1].Width != 20 {
		t.Errorf("description width = %d, want 20 (capped)", rs.Columns[1].Width)
	}
}

func TestRowCount(t *testing.T) {
	var rs *ResultSet
	if rs.RowCount() != 0 {
		t.Error("nil result set should report 0 rows")
	}
	rs = &ResultSet{Rows: [][]string{{"a"}, {"b"}}}
	if rs.RowCount() != 2 {
		t.Errorf("RowCount = %d, want 2", rs.RowCount())
	}
}
