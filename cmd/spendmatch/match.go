package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"spendmatch/internal/candidates"
	"spendmatch/internal/domain"
	"spendmatch/internal/match"
)

var (
	matchRefPath   string
	matchCandsPath string
	matchTopN      int
	matchExclude   []int
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank candidate profiles against a reference profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		refData, err := os.ReadFile(matchRefPath)
		if err != nil {
			return fmt.Errorf("failed to read reference profile: %w", err)
		}
		var ref domain.Profile
		if err := json.Unmarshal(refData, &ref); err != nil {
			return fmt.Errorf("malformed reference profile: %w", err)
		}

		candsPath := matchCandsPath
		if candsPath == "" {
			candsPath = globalConfig.Match.DatasetPath
		}
		if candsPath == "" {
			return fmt.Errorf("no candidate dataset: pass --cands or set match.dataset_path")
		}
		cands, err := candidates.LoadFile(candsPath)
		if err != nil {
			return err
		}

		opts := matchOptions()
		opts.ExcludeIDs = matchExclude
		results := match.OneToMany(ref, cands, opts)
		if matchTopN > 0 && matchTopN < len(results) {
			results = results[:matchTopN]
		}
		return writeJSON("", results)
	},
}

func init() {
	matchCmd.Flags().StringVar(&matchRefPath, "ref", "", "reference profile JSON file")
	matchCmd.Flags().StringVar(&matchCandsPath, "cands", "", "candidate dataset JSON file")
	matchCmd.Flags().IntVar(&matchTopN, "topn", 20, "truncate output to the top N matches (0 = all)")
	matchCmd.Flags().IntSliceVar(&matchExclude, "exclude", nil, "candidate ids to exclude")
	_ = matchCmd.MarkFlagRequired("ref")
}
