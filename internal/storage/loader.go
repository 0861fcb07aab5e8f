package storage

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"slices"
	"strings"

	"github.com/iwanhae/vecbench/internal/metrics"
	"github.com/iwanhae/vecbench/internal/utils"
)

// LoadResult holds the datasets that loaded and the files that were skipped.
type LoadResult struct {
	Datasets []*Dataset
	Skipped  utils.MultiError
	// Files has the outcome of every file, in load order.
	Files []FileResult
}

// FileResult is the outcome of loading one file: a dataset or an error.
type FileResult struct {
	Path    string
	Dataset *Dataset
	Err     error
}

// Discover returns the files in dir matching patterns, in pattern order.
// A file matched by several patterns is listed once, at its first match.
func Discover(dir string, patterns []string) ([]string, error) {
	var paths []string
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if seen[m] {
				continue
			}
			seen[m] = true
			paths = append(paths, m)
		}
	}
	return paths, nil
}

// DatasetName returns the file name without its extension.
func DatasetName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// LoadDir discovers and loads every benchmark file in dir.
func (s *Store) LoadDir(ctx context.Context, dir string, patterns []string) (*LoadResult, error) {
	paths, err := Discover(dir, patterns)
	if err != nil {
		return nil, err
	}
	log.Printf("storage: discovered %d file(s) in %s", len(paths), dir)
	return s.LoadFiles(ctx, paths)
}

// LoadFiles loads each file as a dataset. A file that cannot be read is logged
// and skipped; only context cancellation aborts the whole load.
// Loading a name twice replaces the earlier dataset in place.
func (s *Store) LoadFiles(ctx context.Context, paths []string) (*LoadResult, error) {
	result := &LoadResult{}
	for _, path := range paths {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("failed fast: %w", ctx.Err())
		}

		name := DatasetName(path)
		ds, err := s.LoadCSV(ctx, name, path)
		if err != nil {
			log.Printf("storage: error loading %s: %v", path, err)
			metrics.DatasetsSkipped.Inc()
			result.Skipped.Add(fmt.Errorf("%s: %w", path, err))
			result.Files = append(result.Files, FileResult{Path: path, Err: err})
			continue
		}
		result.Files = append(result.Files, FileResult{Path: path, Dataset: ds})

		idx := slices.IndexFunc(result.Datasets, func(d *Dataset) bool { return d.Name == name })
		if idx >= 0 {
			result.Datasets[idx] = ds
		} else {
			result.Datasets = append(result.Datasets, ds)
		}
	}
	return result, nil
}

// LoadCSV reads a CSV file into a table named after the dataset and adds the
// derived chunks column (bytes_written / 128^3). The file is staged in a
// separate table first, so a failed load leaves an existing dataset of the
// same name untouched.
func (s *Store) LoadCSV(ctx context.Context, name, path string) (*Dataset, error) {
	staging := name + stagingSuffix
	table := quoteIdent(staging)

	err := func() error {
		if _, err := s.db.ExecContext(ctx, fmt.Sprintf(SQLLoadCSVTemplate, table, quoteLiteral(path))); err != nil {
			return fmt.Errorf("failed to read csv: %w", err)
		}

		columns, err := s.columns(ctx, staging)
		if err != nil {
			return err
		}
		if !slices.Contains(columns, ColumnBytesWritten) {
			return fmt.Errorf("%w: %s", ErrMissingColumn, ColumnBytesWritten)
		}
		// A chunks column already in the file is replaced by the derived one.
		if slices.Contains(columns, ColumnChunks) {
			if _, err := s.db.ExecContext(ctx, fmt.Sprintf(SQLDropChunksColumnTemplate, table)); err != nil {
				return fmt.Errorf("failed to replace chunks column: %w", err)
			}
		}
		if _, err := s.db.ExecContext(ctx, fmt.Sprintf(SQLAddChunksColumnTemplate, table)); err != nil {
			return fmt.Errorf("failed to add chunks column: %w", err)
		}
		if _, err := s.db.ExecContext(ctx, fmt.Sprintf(SQLFillChunksTemplate, table, BytesPerChunk)); err != nil {
			return fmt.Errorf("failed to derive chunks: %w", err)
		}
		return s.promote(ctx, staging, name)
	}()
	if err != nil {
		if dropErr := s.dropTable(ctx, staging); dropErr != nil {
			log.Printf("storage: %v", dropErr)
		}
		return nil, err
	}

	ds, err := s.Dataset(ctx, name)
	if err != nil {
		return nil, err
	}
	ds.Path = path
	s.track(name)

	metrics.DatasetsLoaded.Inc()
	metrics.RowsLoaded.Add(float64(ds.Len()))
	log.Printf("storage: loaded %s: %d rows", name, ds.Len())
	return ds, nil
}

// promote replaces the dataset table with the staged one.
func (s *Store) promote(ctx context.Context, staging, name string) error {
	if err := s.dropTable(ctx, name); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf(SQLRenameTableTemplate, quoteIdent(staging), quoteIdent(name))); err != nil {
		return fmt.Errorf("failed to rename table %s: %w", staging, err)
	}
	return nil
}

// columns lists the column names of a table.
func (s *Store) columns(ctx context.Context, name string) ([]string, error) {
	info, err := s.describe(ctx, name)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(info))
	for i, c := range info {
		names[i] = c.Name
	}
	return names, nil
}
