package table

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/wengx006/perseus-plugins/pkg/core"
)

// Names of the appended columns.
const (
	ColumnWindow    = "PhosphoSitePlus window"
	ColumnKnownSite = "Known site"
	ColumnOrigin    = "Origin"
)

// Options selects the input columns and the number of annotation workers.
type Options struct {
	AccessionColumn int
	WindowColumn    int
	Workers         int // <= 1 annotates on the calling goroutine
}

// Annotate computes a known-site annotation for every row of t against idx
// and appends the window, known-site and origin columns. The returned slice
// holds one annotation per row.
//
// idx must be fully built before Annotate is called; workers only read it.
func Annotate(ctx context.Context, t *Table, idx *core.ReferenceIndex, opts Options) ([]core.Annotation, error) {
	width := len(t.Header)
	for _, c := range []int{opts.AccessionColumn, opts.WindowColumn} {
		if c < 0 || c >= width {
			return nil, fmt.Errorf("column index %d out of range (table has %d columns)", c, width)
		}
	}

	results := make([]core.Annotation, len(t.Rows))
	annotateRange := func(ctx context.Context, lo, hi int) error {
		for i := lo; i < hi; i++ {
			if i%1024 == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			row := t.Rows[i]
			results[i] = core.Annotate(core.InputRow{
				Accessions: core.ParseAccessions(row[opts.AccessionColumn]),
				Window:     row[opts.WindowColumn],
			}, idx)
		}
		return nil
	}

	workers := opts.Workers
	if workers > len(t.Rows) {
		workers = len(t.Rows)
	}
	if workers <= 1 {
		if err := annotateRange(ctx, 0, len(t.Rows)); err != nil {
			return nil, err
		}
	} else {
		// Each worker owns a contiguous block of result slots.
		eg, egCtx := errgroup.WithContext(ctx)
		chunk := (len(t.Rows) + workers - 1) / workers
		for lo := 0; lo < len(t.Rows); lo += chunk {
			lo, hi := lo, min(lo+chunk, len(t.Rows))
			eg.Go(func() error {
				return annotateRange(egCtx, lo, hi)
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}
	}

	if err := appendAnnotations(t, results); err != nil {
		return nil, err
	}
	return results, nil
}

func appendAnnotations(t *Table, results []core.Annotation) error {
	windows := make([]string, len(results))
	known := make([][]string, len(results))
	origins := make([][]string, len(results))
	for i, a := range results {
		windows[i] = a.WindowText()
		known[i] = a.KnownSite()
		origins[i] = a.Origins
	}

	if err := t.AddStringColumn(ColumnWindow, windows); err != nil {
		return err
	}
	if err := t.AddCategoryColumn(ColumnKnownSite, known); err != nil {
		return err
	}
	return t.AddCategoryColumn(ColumnOrigin, origins)
}
