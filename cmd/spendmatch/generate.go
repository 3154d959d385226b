package main

import (
	"time"

	"github.com/spf13/cobra"

	"spendmatch/internal/generate"
)

var (
	genGender    string
	genBirthdate string
	genAge       int
	genMonths    int
	genUserID    int
	genSeed      int64
	genOutput    string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic payment payload for one user",
	RunE: func(cmd *cobra.Command, args []string) error {
		gen := generate.NewGenerator()
		if genSeed != 0 {
			gen = generate.NewSeededGenerator(genSeed)
		}
		payload, err := gen.GeneratePayload(genBirthdate, genGender, genAge, genMonths, time.Now(), genUserID)
		if err != nil {
			return err
		}
		return writeJSON(genOutput, payload)
	},
}

func init() {
	generateCmd.Flags().StringVar(&genGender, "gender", "남자", "gender (남자/여자)")
	generateCmd.Flags().StringVar(&genBirthdate, "birthdate", "", "birthdate YYYY-MM-DD")
	generateCmd.Flags().IntVar(&genAge, "age", 0, "age (used when birthdate is empty)")
	generateCmd.Flags().IntVar(&genMonths, "months", 6, "months of history to generate")
	generateCmd.Flags().IntVar(&genUserID, "user-id", 1, "user id to stamp on the payload")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "random seed (0 = clock)")
	generateCmd.Flags().StringVar(&genOutput, "output", "", "output file (default stdout)")
}
