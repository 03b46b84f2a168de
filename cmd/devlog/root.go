package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ahmadsaptan/devlog/internal/config"
	"github.com/ahmadsaptan/devlog/internal/database"
	"github.com/ahmadsaptan/devlog/internal/util"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "devlog",
		Short:        "Track daily work log entries grouped into sprints",
		Long:         "devlog keeps a per-sprint work log of daily entries, categorized by tag, and renders filtered Markdown reports.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Initialize(); err != nil {
				return err
			}
			if logPath, err := config.LogPath(); err == nil {
				_ = os.MkdirAll(filepath.Dir(logPath), 0o755)
				util.SetupFileLogging(logPath)
			}
			return nil
		},
	}

	cmd.AddCommand(newCategoryCmd())
	cmd.AddCommand(newSprintCmd())
	cmd.AddCommand(newEntryCmd())
	cmd.AddCommand(newReportCmd())
	cmd.AddCommand(newActiveCmd())
	cmd.AddCommand(newBackupCmd())
	cmd.AddCommand(newPathCmd())
	return cmd
}

// openStore resolves the configured paths and opens the store. Every
// command opens, works, and closes; nothing is shared between runs.
func openStore(ctx context.Context) (*database.Store, error) {
	dbPath, err := config.DBPath()
	if err != nil {
		return nil, err
	}
	legacyPath, err := config.LegacyPath()
	if err != nil {
		return nil, err
	}
	store, err := database.Open(ctx, dbPath, legacyPath)
	if err != nil {
		util.LogError("open store", err)
		return nil, err
	}
	return store, nil
}

func newPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the resolved database path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, err := config.DBPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dbPath)
			return nil
		},
	}
}
