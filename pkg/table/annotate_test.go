package table

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/wengx006/perseus-plugins/pkg/core"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func refIndex() *core.ReferenceIndex {
	return core.BuildIndex([]core.ReferenceRecord{
		{Accession: "P1", Window: "AABCDEFGHIJKLMN", LTP: true},
		{Accession: "P2", Window: "XABCDEFGHIJKLMY", HTP: true},
		{Accession: "P3", Window: "QQQQQQQQQQQQQQQ", CST: true},
	})
}

func TestAnnotate(t *testing.T) {
	tbl := &Table{
		Header:      []string{"Uniprot", "Sequence window"},
		Annotations: [][]string{{"#!{Type}T", "T"}},
		Rows: [][]string{
			{"P1;P2", "BCDEFGHIJKL"},
			{"P3", "BCDEFGHIJKL"},
			{"", "QQQQQQQQQQQQQ"},
			{"P3", "QQQQQQQQQQQQQ"},
		},
	}

	anns, err := Annotate(context.Background(), tbl, refIndex(), Options{AccessionColumn: 0, WindowColumn: 1})
	require.NoError(t, err)
	require.Len(t, anns, 4)

	want := [][]string{
		{"P1;P2", "BCDEFGHIJKL", "AABCDEFGHIJKLMN;XABCDEFGHIJKLMY", "+", "HTP;LTP"},
		{"P3", "BCDEFGHIJKL", "", "", ""},
		{"", "QQQQQQQQQQQQQ", "", "", ""},
		{"P3", "QQQQQQQQQQQQQ", "QQQQQQQQQQQQQQQ", "+", "CST"},
	}
	if diff := cmp.Diff(want, tbl.Rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"Uniprot", "Sequence window", ColumnWindow, ColumnKnownSite, ColumnOrigin}, tbl.Header)
	assert.Equal(t, []string{"#!{Type}T", "T", "T", "C", "C"}, tbl.Annotations[0])
	assert.True(t, anns[0].Present)
	assert.False(t, anns[2].Present)
}

func TestAnnotateParallelMatchesSerial(t *testing.T) {
	build := func() *Table {
		tbl := &Table{Header: []string{"Uniprot", "Sequence window"}}
		for i := 0; i < 5000; i++ {
			acc := fmt.Sprintf("P%d", i%4)
			win := "BCDEFGHIJKL"
			if i%3 == 0 {
				win = "QQQQQQQQQQQQQ"
			}
			tbl.Rows = append(tbl.Rows, []string{acc, win})
		}
		return tbl
	}

	serial, parallel := build(), build()
	opts := Options{AccessionColumn: 0, WindowColumn: 1}

	wantAnns, err := Annotate(context.Background(), serial, refIndex(), opts)
	require.NoError(t, err)

	opts.Workers = 7
	gotAnns, err := Annotate(context.Background(), parallel, refIndex(), opts)
	require.NoError(t, err)

	if diff := cmp.Diff(wantAnns, gotAnns); diff != "" {
		t.Errorf("annotations mismatch (-serial +parallel):\n%s", diff)
	}
	if diff := cmp.Diff(serial.Rows, parallel.Rows); diff != "" {
		t.Errorf("rows mismatch (-serial +parallel):\n%s", diff)
	}
}

func TestAnnotateCancelled(t *testing.T) {
	tbl := &Table{
		Header: []string{"Uniprot", "Sequence window"},
		Rows:   [][]string{{"P1", "BCDEFGHIJKL"}, {"P2", "BCDEFGHIJKL"}},
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, workers := range []int{1, 2} {
		_, err := Annotate(ctx, tbl, refIndex(), Options{WindowColumn: 1, Workers: workers})
		assert.ErrorIs(t, err, context.Canceled)
	}
	assert.Len(t, tbl.Header, 2, "cancelled annotation must not append columns")
}

func TestAnnotateColumnOutOfRange(t *testing.T) {
	tbl := &Table{Header: []string{"Uniprot"}, Rows: [][]string{{"P1"}}}
	_, err := Annotate(context.Background(), tbl, refIndex(), Options{WindowColumn: 3})
	assert.Error(t, err)
}

func TestAnnotateEmptyTable(t *testing.T) {
	tbl := &Table{Header: []string{"Uniprot", "Sequence window"}}
	anns, err := Annotate(context.Background(), tbl, refIndex(), Options{WindowColumn: 1, Workers: 4})
	require.NoError(t, err)
	assert.Empty(t, anns)
	assert.Len(t, tbl.Header, 5)
}
