package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"

	_ "github.com/marcboeker/go-duckdb/v2"
)

// Store keeps loaded benchmark tables in a DuckDB database.
// An empty dbPath keeps everything in memory for the lifetime of the process.
type Store struct {
	db     *sql.DB
	dbPath string

	tables []string // dataset names in load order
}

// New opens the DuckDB database backing the store.
func New(dbPath string) (*Store, error) {
	dsn := ""
	if dbPath != "" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create db directory: %w", err)
		}
		dsn = dbPath + "?access_mode=READ_WRITE"
	}

	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// Tables returns the names of the loaded datasets in load order.
func (s *Store) Tables() []string {
	return slices.Clone(s.tables)
}

// Dataset reads a loaded table back into memory.
func (s *Store) Dataset(ctx context.Context, name string) (*Dataset, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(SQLSelectAllTemplate, quoteIdent(name)))
	if err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", name, err)
	}
	defer rows.Close()

	columns, results, err := serializeRows(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", name, err)
	}
	return &Dataset{
		Name:    name,
		Columns: columns,
		Rows:    results,
	}, nil
}

// Drop removes a loaded table.
func (s *Store) Drop(ctx context.Context, name string) error {
	if err := s.dropTable(ctx, name); err != nil {
		return err
	}
	s.tables = slices.DeleteFunc(s.tables, func(t string) bool { return t == name })
	return nil
}

// Close closes the database connection.
func (s *Store) Close() {
	log.Println("storage: closing storage...")
	if err := s.db.Close(); err != nil {
		log.Printf("storage: error closing database: %v", err)
	}
	log.Println("storage: closed successfully")
}

func (s *Store) dropTable(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf(SQLDropTableTemplate, quoteIdent(name))); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", name, err)
	}
	return nil
}

func (s *Store) track(name string) {
	if !slices.Contains(s.tables, name) {
		s.tables = append(s.tables, name)
	}
}
