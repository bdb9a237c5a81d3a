package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Row maps a column name to a scalar (string, int, float64, bool or nil).
// Rows are untyped on purpose: columns are whatever the source provides.
type Row map[string]any

// Dataset is an ordered set of rows sharing Columns. It is built once per run
// and never mutated afterwards.
type Dataset struct {
	Columns []string
	Rows    []Row
}

// Len returns the number of rows.
func (d Dataset) Len() int { return len(d.Rows) }

// Head returns a view of the first n rows (all rows when n exceeds Len or is negative).
func (d Dataset) Head(n int) Dataset {
	if n < 0 || n > len(d.Rows) {
		n = len(d.Rows)
	}
	return Dataset{Columns: d.Columns, Rows: d.Rows[:n]}
}

// RowsJSON serializes the first n rows as a JSON array of objects whose keys
// follow column order. A non-empty indent pretty-prints the result.
func (d Dataset) RowsJSON(n int, indent string) (json.RawMessage, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, row := range d.Head(n).Rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeRow(&buf, d.Columns, row); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}
	buf.WriteByte(']')
	if indent == "" {
		return buf.Bytes(), nil
	}
	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", indent); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func writeRow(buf *bytes.Buffer, columns []string, row Row) error {
	buf.WriteByte('{')
	for j, col := range columns {
		if j > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return err
		}
		val, err := json.Marshal(row[col])
		if err != nil {
			return fmt.Errorf("column %q: %w", col, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return nil
}
