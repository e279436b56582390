// Package sqlite provides SQLite database writing for annotated matrices
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/wengx006/perseus-plugins/pkg/table"
)

const (
	// Date format for HeaderTable (ISO 8601)
	headerDateFormat = "2006-01-02"

	// Table holding the annotated rows
	rowsTable = "AnnotatedRows"
)

// Header describes the run recorded in HeaderTable.
type Header struct {
	Dataset      string
	Modification string
	Rows         int
	KnownSites   int
}

// Writer handles writing annotated matrices to SQLite database files
type Writer struct {
	db         *sql.DB
	outputPath string
	closed     bool
}

// NewWriter creates a new SQLite writer
func NewWriter(outputPath string) (*Writer, error) {
	db, err := sql.Open("sqlite3", outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	w := &Writer{
		db:         db,
		outputPath: outputPath,
	}

	if err := w.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	return w, nil
}

// createTables creates the fixed part of the schema
func (w *Writer) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS HeaderTable (
		version INTEGER NOT NULL DEFAULT 0,
		CreationDate TEXT,
		Dataset TEXT,
		Modification TEXT,
		NoofRows INTEGER,
		NoofKnownSites INTEGER
	);
	`

	_, err := w.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}

// WriteTable replaces AnnotatedRows with the contents of t. Every matrix
// column becomes a TEXT column; annotation rows are not stored.
func (w *Writer) WriteTable(t *table.Table) error {
	columns := columnNames(t.Header)

	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	defs := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = quoteIdent(c) + " TEXT"
	}
	stmts := []string{
		fmt.Sprintf("DROP TABLE IF EXISTS %s", rowsTable),
		fmt.Sprintf("CREATE TABLE %s (RowId INTEGER PRIMARY KEY, %s)", rowsTable, strings.Join(defs, ", ")),
	}
	for _, s := range stmts {
		if _, err := tx.Exec(s); err != nil {
			return fmt.Errorf("failed to create %s: %w", rowsTable, err)
		}
	}

	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = quoteIdent(c)
	}
	insert, err := tx.Prepare(fmt.Sprintf(
		"INSERT INTO %s (RowId, %s) VALUES (?%s)",
		rowsTable, strings.Join(quoted, ", "), strings.Repeat(", ?", len(columns)),
	))
	if err != nil {
		return fmt.Errorf("failed to prepare row statement: %w", err)
	}
	defer insert.Close()

	args := make([]interface{}, len(columns)+1)
	for i, row := range t.Rows {
		if len(row) != len(columns) {
			return fmt.Errorf("row %d has %d cells, header has %d", i+1, len(row), len(columns))
		}
		args[0] = i + 1
		for j, cell := range row {
			args[j+1] = cell
		}
		if _, err := insert.Exec(args...); err != nil {
			return fmt.Errorf("failed to insert row %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit rows: %w", err)
	}
	return nil
}

// Finalize writes the header table and closes the database
func (w *Writer) Finalize(h Header) error {
	_, err := w.db.Exec(`
		INSERT INTO HeaderTable (version, CreationDate, Dataset, Modification, NoofRows, NoofKnownSites)
		VALUES (?, ?, ?, ?, ?, ?)
	`, 1, time.Now().Format(headerDateFormat), h.Dataset, h.Modification, h.Rows, h.KnownSites)
	if err != nil {
		return fmt.Errorf("failed to insert header: %w", err)
	}

	return w.Close()
}

// Close closes the database connection. It is safe to call more than once.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if err := w.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// columnNames makes header names unique and non-empty for use as SQL columns.
func columnNames(header []string) []string {
	seen := map[string]int{"rowid": 1}
	names := make([]string, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("Column%d", i+1)
		}
		base := name
		for n := 2; seen[strings.ToLower(name)] > 0; n++ {
			name = fmt.Sprintf("%s_%d", base, n)
		}
		seen[strings.ToLower(name)]++
		names[i] = name
	}
	return names
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
