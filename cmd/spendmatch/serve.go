package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"spendmatch/internal/candidates"
	"spendmatch/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the profile and matching HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
		slog.SetDefault(logger)

		analyzer, err := openAnalyzer()
		if err != nil {
			return err
		}

		store := candidates.NewStore()
		if path := globalConfig.Match.DatasetPath; path != "" {
			profiles, err := candidates.LoadFile(path)
			if err != nil {
				return err
			}
			store.Replace(profiles)
			logger.Info("candidate dataset loaded", "path", path, "profiles", store.Len())
		}

		addr := serveAddr
		if addr == "" {
			addr = globalConfig.Server.Addr
		}
		srv := server.New(analyzer, matchOptions(), store, globalConfig.Profile.FocusGroup, logger)
		return srv.Start(addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
}
