package cli

import (
	"fmt"
	"strings"
)

// Table provides formatted table output.
type Table struct {
	headers []string
	rows    [][]string
	widths  []int
}

// NewTable creates a new table with the given headers.
func NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	return &Table{
		headers: headers,
		widths:  widths,
	}
}

// AddRow adds a row to the table.
// Missing cells are blank and extra cells are dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.headers))
	copy(row, cells)
	for i, cell := range row {
		if len(cell) > t.widths[i] {
			t.widths[i] = len(cell)
		}
	}
	t.rows = append(t.rows, row)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// String renders the table as a string.
// Trailing padding on the last column is trimmed.
func (t *Table) String() string {
	if len(t.headers) == 0 {
		return ""
	}

	var b strings.Builder

	// Header row
	b.WriteString(t.renderRow(t.headers, Header))

	// Separator
	seps := make([]string, len(t.widths))
	for i, w := range t.widths {
		seps[i] = strings.Repeat("-", w)
	}
	b.WriteString(t.renderRow(seps, Dim))

	// Data rows
	for _, row := range t.rows {
		b.WriteString(t.renderRow(row, nil))
	}

	return b.String()
}

func (t *Table) renderRow(cells []string, style func(string) string) string {
	var b strings.Builder
	last := len(cells) - 1
	for i, cell := range cells {
		if i > 0 {
			b.WriteString("  ")
		}
		if i < last {
			cell = padRight(cell, t.widths[i])
		}
		if style != nil {
			cell = style(cell)
		}
		b.WriteString(cell)
	}
	b.WriteString("\n")
	return b.String()
}

// padRight pads a string to the right with spaces.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// FormatCount formats a count with singular/plural form.
func FormatCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
