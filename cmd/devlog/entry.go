package main

import (
	"fmt"

	"github.com/ahmadsaptan/devlog/internal/database"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newEntryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Manage daily entries",
	}

	var in database.NewEntryInput
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Log a daily entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			entry, err := store.AddEntry(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s on %s\n",
				color.GreenString("Logged"), entry.Title, entry.Date)
			return nil
		},
	}
	addCmd.Flags().StringVar(&in.SprintID, "sprint", "", "sprint id")
	addCmd.Flags().StringVar(&in.Date, "date", "", "entry date (YYYY-MM-DD)")
	addCmd.Flags().StringVar(&in.CategoryID, "category", "", "category id")
	addCmd.Flags().StringVar(&in.Title, "title", "", "entry title")
	addCmd.Flags().StringVar(&in.Details, "details", "", "optional details")
	_ = addCmd.MarkFlagRequired("sprint")
	_ = addCmd.MarkFlagRequired("date")
	_ = addCmd.MarkFlagRequired("category")
	_ = addCmd.MarkFlagRequired("title")
	cmd.AddCommand(addCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "list <sprint-id>",
		Short: "List a sprint's entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.ListEntries(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, entry := range entries {
				line := fmt.Sprintf("%s\t%s\t%s", entry.Date, entry.CategoryID, entry.Title)
				if entry.Details != nil {
					line += " - " + *entry.Details
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	})

	return cmd
}
