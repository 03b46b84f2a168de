package main

import (
	"fmt"

	"github.com/ahmadsaptan/devlog/internal/config"
	"github.com/ahmadsaptan/devlog/internal/report"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newReportCmd() *cobra.Command {
	var opts report.Options
	cmd := &cobra.Command{
		Use:   "report <sprint-id>",
		Short: "Render a sprint's entries as a Markdown report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			reportsDir, err := config.ReportsDir()
			if err != nil {
				return err
			}

			opts.SprintID = args[0]
			out, err := report.Generate(cmd.Context(), store, reportsDir, opts)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), out.Markdown)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d items)\n",
				color.GreenString("Report written to"), out.FilePath, out.TotalItems)
			if out.PDFPath != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
					color.GreenString("PDF written to"), out.PDFPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.FromDate, "from", "", "include entries on or after this date")
	cmd.Flags().StringVar(&opts.ToDate, "to", "", "include entries on or before this date")
	cmd.Flags().StringSliceVar(&opts.CategoryIDs, "category", nil, "restrict to these category ids (repeatable)")
	cmd.Flags().BoolVar(&opts.PDF, "pdf", false, "also write a PDF rendering")
	return cmd
}
