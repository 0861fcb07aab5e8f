package storage

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// ExportFormat selects the file format written by Export.
type ExportFormat string

const (
	FormatCSV     ExportFormat = "csv"
	FormatParquet ExportFormat = "parquet"
)

// FormatFromPath picks the export format from a file extension.
func FormatFromPath(path string) (ExportFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".parquet":
		return FormatParquet, nil
	default:
		return "", fmt.Errorf("unsupported output extension %q (want .csv or .parquet)", filepath.Ext(path))
	}
}

func (f ExportFormat) copyOptions() (string, error) {
	switch f {
	case FormatCSV:
		return "FORMAT csv, HEADER true", nil
	case FormatParquet:
		return "FORMAT parquet, COMPRESSION zstd", nil
	default:
		return "", fmt.Errorf("unsupported export format %q", f)
	}
}

// Export writes every loaded dataset into a single file, tagging each row with
// its dataset name in a leading "dataset" column.
func (s *Store) Export(ctx context.Context, path string, format ExportFormat) error {
	options, err := format.copyOptions()
	if err != nil {
		return err
	}

	query, err := buildUnionQuery(s.tables)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	copySQL := fmt.Sprintf(SQLExportTemplate, query, quoteLiteral(path), options)
	log.Printf("storage: exporting %d dataset(s) to %s", len(s.tables), path)
	if _, err := s.db.ExecContext(ctx, copySQL); err != nil {
		// Cleanup partially written file if copy fails
		os.Remove(path)
		return fmt.Errorf("failed to execute export copy: %w", err)
	}
	return nil
}

// buildUnionQuery unions the given tables by column name, tagging each with its name.
func buildUnionQuery(tables []string) (string, error) {
	if len(tables) == 0 {
		return "", fmt.Errorf("no datasets to export")
	}

	sources := make([]string, len(tables))
	for i, t := range tables {
		sources[i] = fmt.Sprintf(SQLSelectTaggedTemplate, quoteLiteral(t), quoteIdent(t))
	}
	return strings.Join(sources, " UNION ALL BY NAME "), nil
}
