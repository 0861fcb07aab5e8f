package storage

import (
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/marcboeker/go-duckdb/v2"
)

var (
	// ErrMissingColumn is returned when a dataset lacks a requested column.
	ErrMissingColumn = errors.New("missing column")
	// ErrNotNumeric is returned when a column holds values that are not numbers.
	ErrNotNumeric = errors.New("column is not numeric")
)

// Dataset is one loaded benchmark result file, keyed by its file name without extension.
type Dataset struct {
	Name    string
	Path    string
	Columns []string
	Rows    []map[string]any
}

// Len returns the number of rows in the dataset.
func (d *Dataset) Len() int {
	return len(d.Rows)
}

// HasColumn reports whether the dataset carries the named column.
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Column returns a numeric column in row order. NULL cells become NaN.
func (d *Dataset) Column(name string) ([]float64, error) {
	if !d.HasColumn(name) {
		return nil, fmt.Errorf("%s: %w: %s", d.Name, ErrMissingColumn, name)
	}

	values := make([]float64, len(d.Rows))
	for i, row := range d.Rows {
		v, ok := toFloat64(row[name])
		if !ok {
			return nil, fmt.Errorf("%s: %w: %s (row %d holds %T)", d.Name, ErrNotNumeric, name, i, row[name])
		}
		values[i] = v
	}
	return values, nil
}

// Chunks returns the derived chunks column.
func (d *Dataset) Chunks() ([]float64, error) {
	return d.Column(ColumnChunks)
}

// ColumnInfo describes one column of a loaded table.
type ColumnInfo struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// TableInfo is the shape and a preview of a loaded table.
type TableInfo struct {
	Name      string           `json:"name"`
	Rows      int64            `json:"rows"`
	Columns   []ColumnInfo     `json:"columns"`
	ChunksMin float64          `json:"chunks_min"`
	ChunksMax float64          `json:"chunks_max"`
	Head      []map[string]any `json:"head"`
}

// ColumnNames returns the column names in table order.
func (t *TableInfo) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// toFloat64 converts a value scanned from DuckDB into a float64.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return math.NaN(), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case int16:
		return float64(n), true
	case int8:
		return float64(n), true
	case int:
		return float64(n), true
	case uint64:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint8:
		return float64(n), true
	case *big.Int:
		f, _ := new(big.Float).SetInt(n).Float64()
		return f, true
	case duckdb.Decimal:
		return n.Float64(), true
	default:
		return 0, false
	}
}
