package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/noah-isme/teamfit-api/db"
	"github.com/noah-isme/teamfit-api/internal/repository"
	"github.com/noah-isme/teamfit-api/internal/service"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed-formulas",
	Short: "Upsert the formula catalog",
	Long: `Upsert the formula catalog from a YAML document.

Without --file the built-in catalog (DIVISION, SUM, AVERAGE, PRODUCT) is used.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw := db.DefaultFormulas
		if seedFile != "" {
			data, err := os.ReadFile(seedFile)
			if err != nil {
				return fmt.Errorf("read %s: %w", seedFile, err)
			}
			raw = data
		}

		conn, err := openDB()
		if err != nil {
			return err
		}
		defer conn.Close()

		seeder := service.NewFormulaSeeder(repository.NewFormulaRepository(conn), nil, logr)
		formulas, err := seeder.Seed(cmd.Context(), raw)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		faint := color.New(color.Faint)
		for _, f := range formulas {
			arity := fmt.Sprintf("%d args", f.MaxArguments)
			if f.Rule().Unlimited() {
				arity = "2+ args"
			}
			fmt.Fprintf(out, "%-3d %-10s %s ", f.ID, f.Code, f.Name)
			faint.Fprintln(out, "("+arity+")")
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "YAML catalog to load instead of the built-in one")
}
