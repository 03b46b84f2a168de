package main

import (
	"fmt"
	"os"

	"github.com/ahmadsaptan/devlog/internal/database"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or restore the whole store as JSON",
	}

	var out, passphrase string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write a full backup document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			payload, err := store.ExportBackup(cmd.Context(), database.BackupOptions{Passphrase: passphrase})
			if err != nil {
				return err
			}
			if out == "" {
				_, err := cmd.OutOrStdout().Write(payload)
				return err
			}
			if err := os.WriteFile(out, payload, 0o600); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", color.GreenString("Backup written to"), out)
			return nil
		},
	}
	exportCmd.Flags().StringVar(&out, "out", "", "output file (defaults to stdout)")
	exportCmd.Flags().StringVar(&passphrase, "passphrase", "", "encrypt the backup with this passphrase")
	cmd.AddCommand(exportCmd)

	var importPassphrase string
	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Restore a backup document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.ImportBackup(cmd.Context(), payload, importPassphrase); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", color.GreenString("Backup restored from"), args[0])
			return nil
		},
	}
	importCmd.Flags().StringVar(&importPassphrase, "passphrase", "", "passphrase for an encrypted backup")
	cmd.AddCommand(importCmd)

	return cmd
}
