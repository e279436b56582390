// Package psp provides streaming readers for PhosphoSitePlus site datasets
package psp

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/wengx006/perseus-plugins/pkg/core"
)

// DefaultSkipLines is the number of metadata lines that precede the header
// in PhosphoSitePlus downloads.
const DefaultSkipLines = 3

// Column names read from the dataset header.
const (
	ColAccession = "ACC_ID"
	ColWindow    = "SITE_+/-7_AA"
	ColLTLit     = "LT_LIT"
	ColMSLit     = "MS_LIT"
	ColMSCST     = "MS_CST"
)

// RequiredColumns lists the header columns a dataset must carry.
var RequiredColumns = []string{ColAccession, ColWindow, ColLTLit, ColMSLit, ColMSCST}

// ColumnError reports a required column missing from the dataset header.
type ColumnError struct {
	Column string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("dataset header has no column %q", e.Column)
}

// Reader provides streaming access to PhosphoSitePlus TSV datasets
type Reader struct {
	scanner   *bufio.Scanner
	skipLines int
	lineNum   int
	cols      map[string]int
	current   core.ReferenceRecord
	err       error
}

// NewReader creates a new dataset reader. skipLines metadata lines are
// discarded before the header; a negative value selects DefaultSkipLines.
func NewReader(r io.Reader, skipLines int) *Reader {
	if skipLines < 0 {
		skipLines = DefaultSkipLines
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	return &Reader{
		scanner:   scanner,
		skipLines: skipLines,
	}
}

// Next advances to the next record. Returns false when no more records or error.
func (r *Reader) Next() bool {
	if r.err != nil {
		return false
	}
	if r.cols == nil {
		if err := r.readHeader(); err != nil {
			if err != io.EOF {
				r.err = err
			}
			return false
		}
	}

	for r.scanner.Scan() {
		r.lineNum++
		line := strings.TrimRight(r.scanner.Text(), "\r")
		if line == "" {
			continue
		}
		r.current = r.parseRecord(strings.Split(line, "\t"))
		return true
	}

	if err := r.scanner.Err(); err != nil {
		r.err = fmt.Errorf("line %d: %w", r.lineNum, err)
	}
	return false
}

// Record returns the current record
func (r *Reader) Record() core.ReferenceRecord {
	return r.current
}

// Err returns any error encountered during reading
func (r *Reader) Err() error {
	return r.err
}

// readHeader skips the metadata lines and maps required columns by name
func (r *Reader) readHeader() error {
	for r.lineNum < r.skipLines {
		if !r.scanner.Scan() {
			if err := r.scanner.Err(); err != nil {
				return err
			}
			return io.EOF
		}
		r.lineNum++
	}

	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return err
		}
		return io.EOF
	}
	r.lineNum++

	header := strings.Split(strings.TrimRight(r.scanner.Text(), "\r"), "\t")
	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}

	for _, name := range RequiredColumns {
		if _, ok := cols[name]; !ok {
			return &ColumnError{Column: name}
		}
	}

	r.cols = cols
	return nil
}

// parseRecord builds a record from one data line. Missing trailing fields
// read as empty.
func (r *Reader) parseRecord(fields []string) core.ReferenceRecord {
	field := func(name string) string {
		i := r.cols[name]
		if i >= len(fields) {
			return ""
		}
		return fields[i]
	}

	return core.ReferenceRecord{
		Accession: field(ColAccession),
		Window:    field(ColWindow),
		LTP:       field(ColLTLit) != "",
		HTP:       field(ColMSLit) != "",
		CST:       field(ColMSCST) != "",
	}
}

// ReadAll reads every record from r.
func ReadAll(r io.Reader, skipLines int) ([]core.ReferenceRecord, error) {
	reader := NewReader(r, skipLines)

	var records []core.ReferenceRecord
	for reader.Next() {
		records = append(records, reader.Record())
	}
	if err := reader.Err(); err != nil {
		return nil, fmt.Errorf("error reading dataset: %w", err)
	}

	return records, nil
}

// Load resolves path (falling back to path + ".gz"), opens it and reads every
// record.
func Load(path string, skipLines int) ([]core.ReferenceRecord, string, error) {
	resolved, err := Resolve(path)
	if err != nil {
		return nil, "", err
	}

	f, err := Open(resolved)
	if err != nil {
		return nil, resolved, err
	}
	defer f.Close()

	records, err := ReadAll(f, skipLines)
	if err != nil {
		return nil, resolved, fmt.Errorf("%s: %w", resolved, err)
	}

	return records, resolved, nil
}
