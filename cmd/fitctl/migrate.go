package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/noah-isme/teamfit-api/db"
)

var migrateDryRun bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := openDB()
		if err != nil {
			return err
		}
		defer conn.Close()

		applied, err := db.Migrate(cmd.Context(), conn, logr, migrateDryRun)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(applied) == 0 {
			fmt.Fprintln(out, "Schema is up to date.")
			return nil
		}
		verb := "applied"
		if migrateDryRun {
			verb = "pending"
		}
		green := color.New(color.FgGreen)
		for _, name := range applied {
			green.Fprintf(out, "%s ", verb)
			fmt.Fprintln(out, name)
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "list pending migrations without applying them")
}
