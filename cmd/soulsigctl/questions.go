package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"soulsig/internal/domain"
	"soulsig/internal/questionbank"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Print a question bank as JSON",
	RunE:  runQuestions,
}

var (
	questionsScheme  string
	questionsOutFile string
)

func init() {
	questionsCmd.Flags().StringVar(&questionsScheme, "scheme", domain.SchemeBigFive, "Question bank scheme")
	questionsCmd.Flags().StringVarP(&questionsOutFile, "out", "o", "", "Write the bank to a file instead of stdout")

	rootCmd.AddCommand(questionsCmd)
}

func runQuestions(_ *cobra.Command, _ []string) error {
	catalog, err := questionbank.Load()
	if err != nil {
		return fmt.Errorf("load question banks: %w", err)
	}

	bank, err := catalog.Bank(questionsScheme)
	if err != nil {
		return fmt.Errorf("unknown scheme %q (available: %v)", questionsScheme, catalog.Schemes())
	}

	return writeJSON(bank, questionsOutFile)
}
