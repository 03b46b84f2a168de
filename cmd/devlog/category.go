package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newCategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage entry categories",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			categories, err := store.ListCategories(cmd.Context())
			if err != nil {
				return err
			}
			for _, category := range categories {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", category.ID, category.Name)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			category, err := store.CreateCategory(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n",
				color.GreenString("Created category"), category.Name, category.ID)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			category, err := store.RenameCategory(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
				color.GreenString("Renamed category to"), category.Name)
			return nil
		},
	})

	var replacement string
	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category, reassigning its entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.DeleteCategory(cmd.Context(), args[0], replacement); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
				color.GreenString("Deleted category"), args[0])
			return nil
		},
	}
	deleteCmd.Flags().StringVar(&replacement, "replacement", "",
		"category id that absorbs the deleted category's entries (defaults to the oldest other category)")
	cmd.AddCommand(deleteCmd)

	return cmd
}
