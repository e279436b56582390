package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wengx006/perseus-plugins/pkg/core"
)

var validateCmd = &cobra.Command{
	Use:   "validate [dataset]",
	Short: "Validate a PhosphoSitePlus site dataset",
	Long: `Check that a site dataset (or its .gz variant) exists, can be read and carries
the ACC_ID, SITE_+/-7_AA, LT_LIT, MS_LIT and MS_CST columns.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, resolved, err := loadIndex(args[0], cfg.SkipLines)
		if err != nil {
			return err
		}

		s := core.Summarize(idx)
		fmt.Fprintf(cmd.OutOrStdout(), "%s: OK (%d records)\n", resolved, s.Records)
		if s.ShortWindows > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %d records have windows too short to match\n", s.ShortWindows)
		}
		return nil
	},
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize [dataset]",
	Short: "Summarize a PhosphoSitePlus site dataset",
	Long:  `Print record, accession and evidence counts for a site dataset.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, resolved, err := loadIndex(args[0], cfg.SkipLines)
		if err != nil {
			return err
		}

		s := core.Summarize(idx)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Dataset: %s\n", resolved)
		fmt.Fprintf(out, "Records: %d\n", s.Records)
		fmt.Fprintf(out, "Accessions: %d\n", s.Accessions)
		fmt.Fprintf(out, "LTP evidence: %d\n", s.LTP)
		fmt.Fprintf(out, "HTP evidence: %d\n", s.HTP)
		fmt.Fprintf(out, "CST evidence: %d\n", s.CST)
		fmt.Fprintf(out, "No evidence: %d\n", s.NoEvidence)
		if s.ShortWindows > 0 {
			fmt.Fprintf(out, "Unmatchable windows: %d\n", s.ShortWindows)
		}
		return nil
	},
}

var modificationsCmd = &cobra.Command{
	Use:   "modifications",
	Short: "List the modification datasets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		datasets := cfg.DatasetMap()

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, name := range datasets.Names() {
			path, _ := datasets.Path(name)
			marker := ""
			if name == cfg.Modification {
				marker = " (default)"
			}
			fmt.Fprintf(tw, "%s%s\t%s\n", name, marker, path)
		}
		return tw.Flush()
	},
}
