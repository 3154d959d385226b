package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"spendmatch/internal/candidates"
	"spendmatch/internal/tui"
)

var exploreCandsPath string

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Interactively explore match rankings over a candidate dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := exploreCandsPath
		if path == "" {
			path = globalConfig.Match.DatasetPath
		}
		if path == "" {
			return fmt.Errorf("no candidate dataset: pass --cands or set match.dataset_path")
		}
		profiles, err := candidates.LoadFile(path)
		if err != nil {
			return err
		}
		store := candidates.NewStore()
		store.Replace(profiles)

		m := tui.New(store, matchOptions())
		_, err = tea.NewProgram(m).Run()
		return err
	},
}

func init() {
	exploreCmd.Flags().StringVar(&exploreCandsPath, "cands", "", "candidate dataset JSON file")
}
