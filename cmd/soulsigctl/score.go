package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"soulsig/internal/domain"
	"soulsig/internal/questionbank"
	"soulsig/internal/scoring"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a JSON responses file offline",
	Long:  "Score a JSON array of question responses against an embedded question bank and print the full scoring result, including percentiles, confidence intervals and archetype.",
	RunE:  runScore,
}

var (
	scoreScheme    string
	scoreInputFile string
	scoreOutFile   string
)

func init() {
	scoreCmd.Flags().StringVar(&scoreScheme, "scheme", domain.SchemeBigFive, "Question bank scheme")
	scoreCmd.Flags().StringVarP(&scoreInputFile, "responses", "r", "", `Path to JSON file: [{"question_id": "...", "value": N}, ...]`)
	scoreCmd.Flags().StringVarP(&scoreOutFile, "out", "o", "", "Write the result to a file instead of stdout")
	_ = scoreCmd.MarkFlagRequired("responses")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(_ *cobra.Command, _ []string) error {
	catalog, err := questionbank.Load()
	if err != nil {
		return fmt.Errorf("load question banks: %w", err)
	}

	bank, err := catalog.Bank(scoreScheme)
	if err != nil {
		return fmt.Errorf("unknown scheme %q (available: %v)", scoreScheme, catalog.Schemes())
	}
	norms, _ := catalog.Norms(scoreScheme)

	raw, err := os.ReadFile(scoreInputFile)
	if err != nil {
		return fmt.Errorf("read responses file: %w", err)
	}

	var responses []domain.QuestionResponse
	if err := json.Unmarshal(raw, &responses); err != nil {
		return fmt.Errorf("parse responses file: %w", err)
	}
	if len(responses) == 0 {
		return fmt.Errorf("responses file is empty")
	}

	result, err := scoring.Score(bank, norms, responses)
	if err != nil {
		return fmt.Errorf("score responses: %w", err)
	}

	return writeJSON(result, scoreOutFile)
}
