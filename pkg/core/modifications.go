package core

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultModification is selected when no modification is named.
const DefaultModification = "Phosphorylation"

// DatasetMap maps modification names to PhosphoSitePlus site dataset files.
type DatasetMap struct {
	files map[string]string // modification -> dataset path
}

// NewDatasetMap creates an empty dataset map
func NewDatasetMap() *DatasetMap {
	return &DatasetMap{
		files: make(map[string]string),
	}
}

// LoadFromCSV loads entries from a CSV file (format: modification,path)
func (m *DatasetMap) LoadFromCSV(r io.Reader) error {
	scanner := bufio.NewScanner(r)

	// Skip header line
	if scanner.Scan() {
		// header line
	}

	lineNum := 1
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Split(line, ",")
		if len(parts) < 2 {
			return fmt.Errorf("line %d: invalid format, expected 2 comma-separated fields (modification,path)", lineNum)
		}

		mod := strings.TrimSpace(parts[0])
		path := strings.TrimSpace(parts[1])
		if mod == "" || path == "" {
			return fmt.Errorf("line %d: modification and path must be non-empty", lineNum)
		}

		m.files[mod] = path
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading CSV: %w", err)
	}

	return nil
}

// Path returns the dataset path for a modification name
func (m *DatasetMap) Path(mod string) (string, bool) {
	path, ok := m.files[mod]
	return path, ok
}

// Add adds or replaces a modification entry
func (m *DatasetMap) Add(mod, path string) {
	m.files[mod] = path
}

// Names returns the known modification names in sorted order.
func (m *DatasetMap) Names() []string {
	names := make([]string, 0, len(m.files))
	for name := range m.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultDatasetMap returns the PhosphoSitePlus datasets expected under dir.
func DefaultDatasetMap(dir string) *DatasetMap {
	m := NewDatasetMap()

	for _, mod := range []string{
		"Acetylation",
		"Methylation",
		"O-GlcNAc",
		"O-GalNAc",
		"Phosphorylation",
		"Sumoylation",
		"Ubiquitination",
	} {
		m.Add(mod, filepath.Join(dir, mod+"_site_dataset"))
	}

	return m
}
