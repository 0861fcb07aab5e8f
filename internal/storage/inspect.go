package storage

import (
	"context"
	"database/sql"
	"fmt"
	"math"
)

// DefaultHeadRows is the number of preview rows returned by Inspect.
const DefaultHeadRows = 3

// Inspect returns the shape, column types, chunk range and first rows of a loaded table.
func (s *Store) Inspect(ctx context.Context, name string, headRows int) (*TableInfo, error) {
	columns, err := s.describe(ctx, name)
	if err != nil {
		return nil, err
	}

	info := &TableInfo{
		Name:      name,
		Columns:   columns,
		ChunksMin: math.NaN(),
		ChunksMax: math.NaN(),
	}

	var minChunks, maxChunks sql.NullFloat64
	query := fmt.Sprintf(SQLChunkRangeTemplate, quoteIdent(name))
	if err := s.db.QueryRowContext(ctx, query).Scan(&info.Rows, &minChunks, &maxChunks); err != nil {
		return nil, fmt.Errorf("failed to get chunk range for %s: %w", name, err)
	}
	if minChunks.Valid {
		info.ChunksMin = minChunks.Float64
	}
	if maxChunks.Valid {
		info.ChunksMax = maxChunks.Float64
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(SQLHeadTemplate, quoteIdent(name), headRows))
	if err != nil {
		return nil, fmt.Errorf("failed to preview %s: %w", name, err)
	}
	defer rows.Close()

	_, head, err := serializeRows(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to preview %s: %w", name, err)
	}
	info.Head = head
	return info, nil
}

// describe lists the columns and their DuckDB types.
func (s *Store) describe(ctx context.Context, name string) ([]ColumnInfo, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(SQLDescribeTemplate, quoteIdent(name)))
	if err != nil {
		return nil, fmt.Errorf("failed to describe %s: %w", name, err)
	}
	defer rows.Close()

	_, described, err := serializeRows(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to describe %s: %w", name, err)
	}

	columns := make([]ColumnInfo, 0, len(described))
	for _, row := range described {
		colName, _ := row["column_name"].(string)
		colType, _ := row["column_type"].(string)
		columns = append(columns, ColumnInfo{Name: colName, Type: colType})
	}
	return columns, nil
}
