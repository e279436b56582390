package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wengx006/perseus-plugins/pkg/core"
)

const testDataset = "20240101\n" +
	"PhosphoSitePlus(R) (PSP) was created by Cell Signaling Technology Inc.\n" +
	"\n" +
	"GENE\tPROTEIN\tACC_ID\tHU_CHR_LOC\tMOD_RSD\tSITE_+/-7_AA\tLT_LIT\tMS_LIT\tMS_CST\n" +
	"G1\tProt1\tP1\t1\tS7-p\tAABCDEFGHIJKLMN\t1\t\t\n" +
	"G2\tProt2\tP2\t2\tT9-p\tXABCDEFGHIJKLMY\t\t4\t\n" +
	"G3\tProt3\tP3\t3\tY5-p\tQQQQQQQQQQQQQQQ\t\t\t2\n"

const testMatrix = "Intensity\tUniprot\tSequence window\n" +
	"#!{Type}E\tT\tT\n" +
	"1.0\tP1;P2\tBCDEFGHIJKL\n" +
	"2.0\tP3\tBCDEFGHIJKL\n" +
	"3.0\t\tQQQQQQQQQQQQQ\n"

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("KNOWNSITES_PSP_DIR", "")
	t.Setenv("KNOWNSITES_WORKERS", "")

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestAnnotateCommand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Phosphorylation_site_dataset", testDataset)
	in := writeFile(t, dir, "sites.txt", testMatrix)
	out := filepath.Join(dir, "annotated.txt")

	_, stderr, err := execute(t, "annotate", "--in", in, "--out", out, "--psp-dir", dir, "--workers", "2")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Known sites: 1")

	got, err := os.ReadFile(out)
	require.NoError(t, err)

	want := "Intensity\tUniprot\tSequence window\tPhosphoSitePlus window\tKnown site\tOrigin\n" +
		"#!{Type}E\tT\tT\tT\tC\tC\n" +
		"1.0\tP1;P2\tBCDEFGHIJKL\tAABCDEFGHIJKLMN;XABCDEFGHIJKLMY\t+\tHTP;LTP\n" +
		"2.0\tP3\tBCDEFGHIJKL\t\t\t\n" +
		"3.0\t\tQQQQQQQQQQQQQ\t\t\t\n"
	assert.Equal(t, want, string(got))
}

func TestSummarizeCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "Acetylation_site_dataset", testDataset)

	stdout, _, err := execute(t, "summarize", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Records: 3\n")
	assert.Contains(t, stdout, "Accessions: 3\n")
	assert.Contains(t, stdout, "CST evidence: 1\n")
}

func TestValidateCommandMissingDataset(t *testing.T) {
	_, _, err := execute(t, "validate", filepath.Join(t.TempDir(), "Methylation_site_dataset"))
	require.Error(t, err)
	assert.True(t, strings.HasSuffix(err.Error(), "does not exist."))
}

func TestModificationsCommand(t *testing.T) {
	stdout, _, err := execute(t, "modifications")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Phosphorylation (default)")
	assert.Contains(t, stdout, "Ubiquitination")
}

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		format, out string
		want        string
		wantErr     bool
	}{
		{"", "-", "tsv", false},
		{"", "out.txt", "tsv", false},
		{"", "out.DB", "sqlite", false},
		{"SQLite", "out.bin", "sqlite", false},
		{"sqlite", "-", "", true},
		{"csv", "out.csv", "", true},
	}

	for _, tt := range tests {
		got, err := resolveFormat(tt.format, tt.out)
		if tt.wantErr {
			assert.Error(t, err, "resolveFormat(%q, %q)", tt.format, tt.out)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestCountKnown(t *testing.T) {
	anns := []core.Annotation{{Present: true}, {}, {Present: true}}
	assert.Equal(t, 2, countKnown(anns))
}
