// Package matrix reads Perseus-style tab-separated matrix files
package matrix

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/wengx006/perseus-plugins/pkg/table"
)

// annotationPrefix marks a column annotation row.
const annotationPrefix = "#!"

// Read parses a matrix: a header line, any number of "#!" annotation rows,
// then data rows. Rows are padded with empty cells to the header width; rows
// wider than the header are an error.
func Read(r io.Reader) (*table.Table, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("error reading header: %w", err)
		}
		return nil, fmt.Errorf("empty matrix: no header line")
	}

	t := &table.Table{
		Header: splitLine(scanner.Text()),
	}
	width := len(t.Header)

	lineNum := 1
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}

		cells, err := pad(splitLine(line), width)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		if strings.HasPrefix(line, annotationPrefix) && len(t.Rows) == 0 {
			t.Annotations = append(t.Annotations, cells)
			continue
		}
		t.Rows = append(t.Rows, cells)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", lineNum, err)
	}

	return t, nil
}

func splitLine(line string) []string {
	return strings.Split(strings.TrimRight(line, "\r"), "\t")
}

func pad(cells []string, width int) ([]string, error) {
	if len(cells) > width {
		return nil, fmt.Errorf("row has %d cells, header has %d", len(cells), width)
	}
	for len(cells) < width {
		cells = append(cells, "")
	}
	return cells, nil
}
