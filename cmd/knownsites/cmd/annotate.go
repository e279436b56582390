package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wengx006/perseus-plugins/pkg/core"
	"github.com/wengx006/perseus-plugins/pkg/filter"
	"github.com/wengx006/perseus-plugins/pkg/reader/matrix"
	"github.com/wengx006/perseus-plugins/pkg/reader/psp"
	"github.com/wengx006/perseus-plugins/pkg/table"
	"github.com/wengx006/perseus-plugins/pkg/writer/sqlite"
	"github.com/wengx006/perseus-plugins/pkg/writer/tsv"
)

const (
	defaultAccessionColumn = "UNIPROT"
	defaultWindowColumn    = "SEQUENCE WINDOW"
)

var (
	// Flags for annotate command
	inputFile       string
	outputFile      string
	outputFormat    string
	modification    string
	pspDir          string
	datasetFile     string
	datasetMapCSV   string
	accessionColumn string
	windowColumn    string
	skipLines       int
	workers         int
	knownOnly       bool
	origins         string
)

func init() {
	annotateCmd.Flags().StringVarP(&inputFile, "in", "i", "", "Input matrix file, '-' for stdin (required)")
	annotateCmd.Flags().StringVarP(&outputFile, "out", "o", "-", "Output file, '-' for stdout")
	annotateCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "Output format: tsv or sqlite (auto-detect from --out if not specified)")
	annotateCmd.Flags().StringVarP(&modification, "modification", "m", "", "Modification dataset to use (default from config: Phosphorylation)")
	annotateCmd.Flags().StringVar(&pspDir, "psp-dir", "", "Folder holding the PhosphoSitePlus site datasets")
	annotateCmd.Flags().StringVar(&datasetFile, "dataset", "", "Explicit site dataset file, overrides --modification")
	annotateCmd.Flags().StringVar(&datasetMapCSV, "dataset-map", "", "CSV of modification,path entries added to the dataset map")
	annotateCmd.Flags().StringVar(&accessionColumn, "uniprot-column", "", "Column holding ';'-separated accessions (default: 'Uniprot')")
	annotateCmd.Flags().StringVar(&windowColumn, "window-column", "", "Column holding sequence windows (default: 'Sequence window')")
	annotateCmd.Flags().IntVar(&skipLines, "skip-lines", psp.DefaultSkipLines, "Metadata lines before the dataset header")
	annotateCmd.Flags().IntVar(&workers, "workers", 1, "Number of annotation workers")
	annotateCmd.Flags().BoolVar(&knownOnly, "known-only", false, "Keep only rows with a known site")
	annotateCmd.Flags().StringVar(&origins, "origin", "", "Keep only rows with one of these origins (e.g. 'LTP,HTP')")

	annotateCmd.MarkFlagRequired("in")
}

var annotateCmd = &cobra.Command{
	Use:   "annotate",
	Short: "Add known-site columns to a Perseus matrix",
	Long: `Annotate a tab-separated Perseus matrix with PhosphoSitePlus evidence.

Three columns are appended: "PhosphoSitePlus window" (matched dataset windows),
"Known site" ("+" when matched) and "Origin" (LTP, HTP, CST).

Examples:
  # Annotate phosphosites using datasets in ~/psp
  knownsites annotate --in proteinGroups.txt --psp-dir ~/psp --out annotated.txt

  # Acetylation sites, keep only known sites backed by low-throughput literature
  knownsites annotate -i sites.txt -m Acetylation --known-only --origin LTP

  # Write the result to SQLite
  knownsites annotate -i sites.txt --dataset Phosphorylation_site_dataset.gz --out sites.db`,
	RunE: runAnnotate,
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	if flags.Changed("psp-dir") {
		cfg.PSPDir = pspDir
	}
	if flags.Changed("modification") {
		cfg.Modification = modification
	}
	if flags.Changed("skip-lines") {
		cfg.SkipLines = skipLines
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}

	datasets := cfg.DatasetMap()
	if datasetMapCSV != "" {
		if err := loadDatasetMap(datasets, datasetMapCSV); err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	path := datasetFile
	if path == "" {
		var ok bool
		if path, ok = datasets.Path(cfg.Modification); !ok {
			return fmt.Errorf("unknown modification %q, known: %s", cfg.Modification, strings.Join(datasets.Names(), ", "))
		}
	}

	format, err := resolveFormat(outputFormat, outputFile)
	if err != nil {
		return err
	}

	filterConfig := &filter.Config{KnownOnly: knownOnly}
	if filterConfig.Origins, err = filter.ParseOrigins(origins); err != nil {
		return err
	}

	// Load and index the dataset before touching any row
	idx, resolved, err := loadIndex(path, cfg.SkipLines)
	if err != nil {
		return err
	}

	tbl, err := readMatrix(inputFile)
	if err != nil {
		return err
	}
	accCol, err := tbl.SelectColumn(accessionColumn, defaultAccessionColumn)
	if err != nil {
		return fmt.Errorf("accession column: %w", err)
	}
	winCol, err := tbl.SelectColumn(windowColumn, defaultWindowColumn)
	if err != nil {
		return fmt.Errorf("window column: %w", err)
	}
	logger.Debug("Columns selected",
		zap.String("accession", tbl.Header[accCol]),
		zap.String("window", tbl.Header[winCol]))

	anns, err := table.Annotate(cmd.Context(), tbl, idx, table.Options{
		AccessionColumn: accCol,
		WindowColumn:    winCol,
		Workers:         cfg.Workers,
	})
	if err != nil {
		return fmt.Errorf("annotation failed: %w", err)
	}

	total := len(anns)
	known := countKnown(anns)
	logger.Info("Rows annotated", zap.Int("rows", total), zap.Int("known", known))

	if anns, err = filterConfig.Apply(tbl, anns); err != nil {
		return err
	}
	if filterConfig.Active() {
		logger.Info("Rows filtered", zap.Int("kept", len(anns)), zap.Int("removed", total-len(anns)))
	}

	if err := writeOutput(cmd.OutOrStdout(), tbl, format, outputFile, sqlite.Header{
		Dataset:      resolved,
		Modification: cfg.Modification,
		Rows:         len(anns),
		KnownSites:   countKnown(anns),
	}); err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	fmt.Fprintf(stderr, "\nAnnotation complete!\n")
	fmt.Fprintf(stderr, "Dataset: %s\n", resolved)
	fmt.Fprintf(stderr, "Rows: %d\n", total)
	fmt.Fprintf(stderr, "Known sites: %d\n", known)
	if filterConfig.Active() {
		fmt.Fprintf(stderr, "Kept after filtering: %d\n", len(anns))
	}
	if outputFile != "-" {
		fmt.Fprintf(stderr, "Output: %s\n", outputFile)
	}

	return nil
}

func loadDatasetMap(m *core.DatasetMap, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open dataset map: %w", err)
	}
	defer f.Close()

	if err := m.LoadFromCSV(f); err != nil {
		return fmt.Errorf("failed to load dataset map %s: %w", path, err)
	}
	return nil
}

// loadIndex reads a site dataset and indexes it by accession.
func loadIndex(path string, skip int) (*core.ReferenceIndex, string, error) {
	records, resolved, err := psp.Load(path, skip)
	if err != nil {
		return nil, resolved, err
	}

	idx := core.BuildIndex(records)
	logger.Info("Dataset indexed",
		zap.String("path", resolved),
		zap.Int("records", len(records)),
		zap.Int("accessions", idx.Len()))

	return idx, resolved, nil
}

func readMatrix(path string) (*table.Table, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open input file: %w", err)
		}
		defer f.Close()
		r = f
	}

	tbl, err := matrix.Read(r)
	if err != nil {
		return nil, fmt.Errorf("error reading input file: %w", err)
	}
	return tbl, nil
}

// resolveFormat picks the output format from --format or the output extension.
func resolveFormat(format, out string) (string, error) {
	if format == "" {
		switch strings.ToLower(filepath.Ext(out)) {
		case ".db", ".sqlite", ".sqlite3":
			format = "sqlite"
		default:
			format = "tsv"
		}
	}

	format = strings.ToLower(format)
	switch format {
	case "tsv":
		return format, nil
	case "sqlite":
		if out == "-" {
			return "", fmt.Errorf("format 'sqlite' needs an output file, not stdout")
		}
		return format, nil
	default:
		return "", fmt.Errorf("invalid output format '%s', must be tsv or sqlite", format)
	}
}

func writeOutput(stdout io.Writer, tbl *table.Table, format, out string, header sqlite.Header) error {
	switch format {
	case "sqlite":
		writer, err := sqlite.NewWriter(out)
		if err != nil {
			return fmt.Errorf("failed to create output database: %w", err)
		}
		defer writer.Close()

		if err := writer.WriteTable(tbl); err != nil {
			return fmt.Errorf("failed to write output database: %w", err)
		}
		return writer.Finalize(header)

	default:
		if out == "-" {
			return tsv.Write(stdout, tbl)
		}
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		if err := tsv.Write(f, tbl); err != nil {
			f.Close()
			return fmt.Errorf("failed to write output file: %w", err)
		}
		return f.Close()
	}
}

func countKnown(anns []core.Annotation) int {
	n := 0
	for _, a := range anns {
		if a.Present {
			n++
		}
	}
	return n
}
