// Package tsv writes annotated matrices back out as tab-separated text
package tsv

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/wengx006/perseus-plugins/pkg/table"
)

// Write writes the header, annotation rows and data rows of t to w.
func Write(w io.Writer, t *table.Table) error {
	bw := bufio.NewWriter(w)

	if err := writeLine(bw, t.Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, ann := range t.Annotations {
		if err := writeLine(bw, ann); err != nil {
			return fmt.Errorf("failed to write annotation row: %w", err)
		}
	}
	for i, row := range t.Rows {
		if err := writeLine(bw, row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	return bw.Flush()
}

func writeLine(w *bufio.Writer, cells []string) error {
	if _, err := w.WriteString(strings.Join(cells, "\t")); err != nil {
		return err
	}
	return w.WriteByte('\n')
}
