package main

import (
	"fmt"
	"time"

	"github.com/ahmadsaptan/devlog/internal/config"
	"github.com/ahmadsaptan/devlog/internal/database"
	"github.com/ahmadsaptan/devlog/internal/models"
	"github.com/ahmadsaptan/devlog/internal/util"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// sprintWindow renders the date window for listings, showing "open"
// for a missing end date.
func sprintWindow(sprint models.Sprint) string {
	end := util.Deref(sprint.EndDate)
	if end == "" {
		end = "open"
	}
	return sprint.StartDate + " to " + end
}

func newSprintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sprint",
		Short: "Manage sprints",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all sprints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			sprints, err := store.ListSprints(cmd.Context())
			if err != nil {
				return err
			}
			for _, sprint := range sprints {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n",
					sprint.ID, sprint.Code, sprint.Name, sprintWindow(sprint))
			}
			return nil
		},
	})

	var startDate, name string
	var days int
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Create a sprint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			sprint, err := store.CreateSprint(cmd.Context(), startDate, days, name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n",
				color.GreenString("Created sprint"), sprint.Name, sprint.Code)
			return nil
		},
	}
	addCmd.Flags().StringVar(&startDate, "start", "", "start date (YYYY-MM-DD)")
	addCmd.Flags().IntVar(&days, "days", config.DefaultSprintDays, "sprint length in days (7 or 14)")
	addCmd.Flags().StringVar(&name, "name", "", "display name (defaults to the sprint code)")
	_ = addCmd.MarkFlagRequired("start")
	cmd.AddCommand(addCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a sprint (the code is immutable)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			sprint, err := store.RenameSprint(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
				color.GreenString("Renamed sprint to"), sprint.Name)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a sprint and its entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.DeleteSprint(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
				color.GreenString("Deleted sprint"), args[0])
			return nil
		},
	})

	return cmd
}

func newActiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "active",
		Short: "Show the currently active sprint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			sprints, err := store.ListSprints(cmd.Context())
			if err != nil {
				return err
			}
			today := time.Now().Format(config.DateLayout)
			activeID, ok := database.PickActiveSprintID(sprints, today)
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "No sprints yet.")
				return nil
			}
			for _, sprint := range sprints {
				if sprint.ID == activeID {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n",
						sprint.ID, sprint.Code, sprint.Name, sprintWindow(sprint))
					break
				}
			}
			return nil
		},
	}
}
