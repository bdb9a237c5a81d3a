package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrUnsupportedFileType is returned by Load for anything other than .csv or .json.
var ErrUnsupportedFileType = errors.New("unsupported file type. Use .csv or .json")

// Load reads a CSV or JSON file into a Dataset, dispatching on the
// case-insensitive extension. Unsupported extensions fail before the file is opened.
func Load(path string) (Dataset, error) {
	p := strings.TrimSpace(path)
	switch strings.ToLower(filepath.Ext(p)) {
	case ".csv":
		f, err := os.Open(p)
		if err != nil {
			return Dataset{}, err
		}
		defer f.Close()
		return ReadCSV(f)
	case ".json":
		data, err := os.ReadFile(p)
		if err != nil {
			return Dataset{}, err
		}
		return ParseJSON(data)
	default:
		return Dataset{}, fmt.Errorf("%w: %q", ErrUnsupportedFileType, p)
	}
}

// ReadCSV parses a header row followed by records. Each column is typed as a
// whole: int when every non-empty cell is an integer, float64 when every
// non-empty cell is numeric, string otherwise. Empty cells become nil.
func ReadCSV(r io.Reader) (Dataset, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return Dataset{}, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return Dataset{}, errors.New("read csv: no header row")
	}

	columns := records[0]
	body := records[1:]
	kinds := make([]cellKind, len(columns))
	for c := range columns {
		kinds[c] = columnKind(body, c)
	}

	rows := make([]Row, 0, len(body))
	for _, rec := range body {
		row := make(Row, len(columns))
		for c, col := range columns {
			row[col] = convertCell(rec[c], kinds[c])
		}
		rows = append(rows, row)
	}
	return Dataset{Columns: columns, Rows: rows}, nil
}

type cellKind int

const (
	kindInt cellKind = iota
	kindFloat
	kindString
)

func columnKind(records [][]string, col int) cellKind {
	kind := kindInt
	for _, rec := range records {
		cell := strings.TrimSpace(rec[col])
		if cell == "" {
			continue
		}
		if _, err := strconv.Atoi(cell); err == nil {
			continue
		}
		if _, err := strconv.ParseFloat(cell, 64); err == nil {
			kind = kindFloat
			continue
		}
		return kindString
	}
	return kind
}

func convertCell(raw string, kind cellKind) any {
	cell := strings.TrimSpace(raw)
	if cell == "" {
		return nil
	}
	switch kind {
	case kindInt:
		v, _ := strconv.Atoi(cell)
		return v
	case kindFloat:
		v, _ := strconv.ParseFloat(cell, 64)
		return v
	default:
		return raw
	}
}

// ParseJSON accepts either an array of records or a column-oriented object
// ({"col": {"0": v, "1": v}} or {"col": [v, v]}). Key order is preserved.
func ParseJSON(data []byte) (Dataset, error) {
	if !gjson.ValidBytes(data) {
		return Dataset{}, errors.New("parse json: invalid document")
	}
	root := gjson.ParseBytes(data)
	switch {
	case root.IsArray():
		return parseRecords(root)
	case root.IsObject():
		return parseColumns(root)
	default:
		return Dataset{}, fmt.Errorf("parse json: expected array or object, got %s", root.Type)
	}
}

func parseRecords(root gjson.Result) (Dataset, error) {
	var (
		ds   Dataset
		seen = map[string]bool{}
		err  error
	)
	root.ForEach(func(idx, rec gjson.Result) bool {
		if !rec.IsObject() {
			err = fmt.Errorf("parse json: record %d is not an object", len(ds.Rows))
			return false
		}
		row := Row{}
		rec.ForEach(func(key, val gjson.Result) bool {
			if !seen[key.Str] {
				seen[key.Str] = true
				ds.Columns = append(ds.Columns, key.Str)
			}
			row[key.Str] = scalar(val)
			return true
		})
		ds.Rows = append(ds.Rows, row)
		return true
	})
	if err != nil {
		return Dataset{}, err
	}
	return ds, nil
}

func parseColumns(root gjson.Result) (Dataset, error) {
	var (
		ds    Dataset
		order []string
		byIdx = map[string]Row{}
		err   error
	)
	root.ForEach(func(col, cells gjson.Result) bool {
		if !cells.IsObject() && !cells.IsArray() {
			err = fmt.Errorf("parse json: column %q is not an object or array", col.Str)
			return false
		}
		ds.Columns = append(ds.Columns, col.Str)
		cells.ForEach(func(idx, val gjson.Result) bool {
			key := idx.String()
			row, ok := byIdx[key]
			if !ok {
				row = Row{}
				byIdx[key] = row
				order = append(order, key)
			}
			row[col.Str] = scalar(val)
			return true
		})
		return true
	})
	if err != nil {
		return Dataset{}, err
	}
	for _, key := range order {
		ds.Rows = append(ds.Rows, byIdx[key])
	}
	return ds, nil
}

func scalar(val gjson.Result) any {
	switch val.Type {
	case gjson.Null:
		return nil
	case gjson.Number:
		if i, err := strconv.Atoi(val.Raw); err == nil {
			return i
		}
		return val.Float()
	case gjson.String:
		return val.Str
	case gjson.True, gjson.False:
		return val.Bool()
	default:
		return val.Value()
	}
}
