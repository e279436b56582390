package sqlite

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wengx006/perseus-plugins/pkg/table"
)

func TestWriteTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "annotated.db")

	w, err := NewWriter(path)
	require.NoError(t, err)

	tbl := &table.Table{
		Header: []string{"Uniprot", "Known site", "uniprot", `Odd "name"`},
		Rows: [][]string{
			{"P1", "+", "a", "x"},
			{"P2", "", "b", "y"},
		},
	}
	require.NoError(t, w.WriteTable(tbl))
	require.NoError(t, w.Finalize(Header{Dataset: "psp/Phosphorylation_site_dataset", Modification: "Phosphorylation", Rows: 2, KnownSites: 1}))
	require.NoError(t, w.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM AnnotatedRows WHERE "Known site" = '+'`).Scan(&count))
	assert.Equal(t, 1, count)

	var dup, odd string
	require.NoError(t, db.QueryRow(`SELECT "uniprot_2", "Odd ""name""" FROM AnnotatedRows WHERE RowId = 2`).Scan(&dup, &odd))
	assert.Equal(t, "b", dup)
	assert.Equal(t, "y", odd)

	var mod string
	var known int
	require.NoError(t, db.QueryRow(`SELECT Modification, NoofKnownSites FROM HeaderTable`).Scan(&mod, &known))
	assert.Equal(t, "Phosphorylation", mod)
	assert.Equal(t, 1, known)
}

func TestColumnNames(t *testing.T) {
	got := columnNames([]string{"A", "a", "", "RowId", "A"})
	assert.Equal(t, []string{"A", "a_2", "Column3", "RowId_2", "A_3"}, got)
}
