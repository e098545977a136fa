// Package query provides query execution and result tracking for sift.
package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Column represents a result column.
type Column struct {
	Name     string // Column name from query
	TypeOID  uint32 // PostgreSQL type OID
	TypeName string // Human-readable type name (e.g., "integer", "text")
	Width    int    // Display width for TUI table
}

// ResultSet holds one batch result for display.
type ResultSet struct {
	Columns  []Column   // Column metadata
	Rows     [][]string // Row data (pre-formatted for display)
	RawRows  [][]any    // Raw row data (for charting)
	Duration time.Duration
}

// RowCount returns the number of rows in the result set.
func (r *ResultSet) RowCount() int {
	if r == nil {
		return 0
	}
	return len(r.Rows)
}

// NumericColumn returns the values of column idx as float64s, skipping
// rows whose value is not numeric. Returns nil if the column has no
// numeric values at all.
func (r *ResultSet) NumericColumn(idx int) []float64 {
	if r == nil || idx < 0 || idx >= len(r.Columns) {
		return nil
	}
	var vals []float64
	for _, row := range r.RawRows {
		if idx >= len(row) {
			continue
		}
		if f, ok := toFloat(row[idx]); ok {
			vals = append(vals, f)
		}
	}
	return vals
}

// FirstNumericColumn returns the index of the first column containing
// numeric data, or -1 if none exists.
func (r *ResultSet) FirstNumericColumn() int {
	if r == nil {
		return -1
	}
	for i := range r.Columns {
		if len(r.NumericColumn(i)) > 0 {
			return i
		}
	}
	return -1
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case int16:
		return float64(n), true
	case int:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	return 0, false
}

// CalculateColWidths pre-computes display widths for all columns,
// capped at maxWidth.
func (r *ResultSet) CalculateColWidths(maxWidth int) {
	for i := range r.Columns {
		w := lipgloss.Width(r.Columns[i].Name)
		for _, row := range r.Rows {
			if i < len(row) {
				if cw := lipgloss.Width(row[i]); cw > w {
					w = cw
				}
			}
		}
		if w > maxWidth {
			w = maxWidth
		}
		r.Columns[i].Width = w
	}
}

// FormatRows converts raw row values to display strings.
func FormatRows(rows [][]any) [][]string {
	formatted := make([][]string, len(rows))
	for i, row := range rows {
		formatted[i] = make([]string, len(row))
		for j, val := range row {
			formatted[i][j] = FormatValue(val)
		}
	}
	return formatted
}

// FormatValue renders a single cell value for display.
func FormatValue(val any) string {
	switch v := val.(type) {
	case nil:
		return "NULL"
	case bool:
		if v {
			return "t"
		}
		return "f"
	case []byte:
		return fmt.Sprintf("\\x%x", v)
	case time.Time:
		return v.Format("2006-01-02 15:04:05")
	case string:
		// Collapse newlines so rows stay single-line
		return strings.ReplaceAll(v, "\n", " ")
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Message is an execution notice or error emitted by a runner.
type Message struct {
	Time    time.Time
	Text    string
	IsError bool
}
