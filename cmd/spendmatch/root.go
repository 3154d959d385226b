package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"spendmatch/internal/config"
	"spendmatch/internal/embedding"
	"spendmatch/internal/match"
	"spendmatch/internal/service"
	"spendmatch/internal/taxonomy"
)

var (
	cfgPath      string
	globalConfig *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "spendmatch",
	Short: "Behavioral profiles and matching from payment histories",
	Long: `spendmatch infers a semantic behavioral profile from a person's
categorized payment history, classifies it against a fixed archetype
set, scores affinity over the category keyword vocabulary, and ranks
pairwise compatibility across a candidate population.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}
		var err error
		if cfgPath != "" {
			globalConfig, err = config.Load(cfgPath)
		} else {
			globalConfig, _, err = config.LoadDefault()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config file")
	rootCmd.AddCommand(analyzeCmd, matchCmd, generateCmd, serveCmd, exploreCmd)
}

// openAnalyzer loads the embedding store and builds the analyzer.
// A store that fails to load is a setup defect and aborts the command.
func openAnalyzer() (*service.Analyzer, error) {
	store, err := embedding.Load(globalConfig.Embedding.MappingsDir, globalConfig.Embedding.ArtifactPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load embedding store: %w", err)
	}
	return service.NewAnalyzer(store, taxonomy.Default(), globalConfig.Profile.Temperature, globalConfig.IncludeMissingAsZero()), nil
}

func matchOptions() match.Options {
	return match.Options{
		KeywordWeight: globalConfig.Match.KeywordWeight,
		TypeWeight:    globalConfig.Match.TypeWeight,
		Beta:          globalConfig.Match.Beta,
	}
}
