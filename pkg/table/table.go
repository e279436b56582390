// Package table holds the in-memory Perseus matrix that knownsites annotates
// and the driver that appends known-site columns to it.
package table

import (
	"fmt"
	"strings"
)

// Column type codes used in "#!{Type}" annotation rows.
const (
	TypeText     = "T"
	TypeCategory = "C"
)

// annotationTypeRow marks the annotation row that carries column type codes.
const annotationTypeRow = "#!{Type}"

// Table is a tab-separated matrix with a header, optional "#!" annotation
// rows and string data rows. Every row has len(Header) cells.
type Table struct {
	Header      []string
	Annotations [][]string
	Rows        [][]string
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// Column returns the cells of column i.
func (t *Table) Column(i int) []string {
	col := make([]string, len(t.Rows))
	for r, row := range t.Rows {
		col[r] = row[i]
	}
	return col
}

// FindColumn returns the index of the first column whose name equals name,
// ignoring case, or -1.
func (t *Table) FindColumn(name string) int {
	for i, h := range t.Header {
		if strings.EqualFold(h, name) {
			return i
		}
	}
	return -1
}

// SelectColumn resolves a column by exact name when name is set, otherwise by
// a case-insensitive match against fallback, otherwise column 0.
func (t *Table) SelectColumn(name, fallback string) (int, error) {
	if len(t.Header) == 0 {
		return -1, fmt.Errorf("table has no columns")
	}
	if name != "" {
		for i, h := range t.Header {
			if h == name {
				return i, nil
			}
		}
		if i := t.FindColumn(name); i >= 0 {
			return i, nil
		}
		return -1, fmt.Errorf("column %q not found", name)
	}
	if i := t.FindColumn(fallback); i >= 0 {
		return i, nil
	}
	return 0, nil
}

// AddStringColumn appends a text column.
func (t *Table) AddStringColumn(name string, values []string) error {
	if len(values) != len(t.Rows) {
		return fmt.Errorf("column %q has %d values for %d rows", name, len(values), len(t.Rows))
	}
	t.appendColumn(name, TypeText)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], values[i])
	}
	return nil
}

// AddCategoryColumn appends a multi-valued category column. Values within a
// cell are joined with ';'.
func (t *Table) AddCategoryColumn(name string, values [][]string) error {
	if len(values) != len(t.Rows) {
		return fmt.Errorf("column %q has %d values for %d rows", name, len(values), len(t.Rows))
	}
	t.appendColumn(name, TypeCategory)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], strings.Join(values[i], ";"))
	}
	return nil
}

func (t *Table) appendColumn(name, typeCode string) {
	t.Header = append(t.Header, name)
	for i, ann := range t.Annotations {
		cell := ""
		if len(ann) > 0 && strings.HasPrefix(ann[0], annotationTypeRow) {
			cell = typeCode
		}
		t.Annotations[i] = append(ann, cell)
	}
}
