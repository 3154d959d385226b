package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"spendmatch/internal/domain"
	"spendmatch/internal/service"
)

var (
	analyzeInput     string
	analyzeOutput    string
	analyzePreferred bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Infer a behavioral profile from a payment payload",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(analyzeInput)
		if err != nil {
			return fmt.Errorf("failed to read payload: %w", err)
		}
		var payload domain.Payload
		if err := json.Unmarshal(data, &payload); err != nil {
			return fmt.Errorf("malformed payload JSON: %w", err)
		}

		analyzer, err := openAnalyzer()
		if err != nil {
			return err
		}
		prof, err := analyzer.Analyze(payload)
		if err != nil {
			return err
		}

		var out any = prof
		if analyzePreferred {
			out = service.PreferredShape(prof, globalConfig.Profile.FocusGroup)
		}
		return writeJSON(analyzeOutput, out)
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeInput, "input", "", "payment payload JSON file")
	analyzeCmd.Flags().StringVar(&analyzeOutput, "output", "", "output file (default stdout)")
	analyzeCmd.Flags().BoolVar(&analyzePreferred, "preferred", false, "emit the condensed client shape")
	_ = analyzeCmd.MarkFlagRequired("input")
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
