package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"soulsig/internal/domain"
	"soulsig/internal/questionbank"
)

var normsCmd = &cobra.Command{
	Use:   "norms",
	Short: "Print the norm table of a scheme as JSON",
	RunE:  runNorms,
}

var (
	normsScheme  string
	normsOutFile string
)

func init() {
	normsCmd.Flags().StringVar(&normsScheme, "scheme", domain.SchemeBigFive, "Question bank scheme")
	normsCmd.Flags().StringVarP(&normsOutFile, "out", "o", "", "Write the table to a file instead of stdout")

	rootCmd.AddCommand(normsCmd)
}

func runNorms(_ *cobra.Command, _ []string) error {
	catalog, err := questionbank.Load()
	if err != nil {
		return fmt.Errorf("load question banks: %w", err)
	}

	norms, ok := catalog.Norms(normsScheme)
	if !ok {
		return fmt.Errorf("scheme %q has no norm table (available: %v)", normsScheme, catalog.Schemes())
	}

	return writeJSON(norms, normsOutFile)
}
