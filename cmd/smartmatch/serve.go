package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nexten/smartmatch/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  "Starts an HTTP server exposing match computation, batch matching, weight profile discovery and optional result persistence.",
	RunE:  runServe,
}

var (
	servePort       int
	serveConfigPath string
)

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config: 8080)")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(serveConfigPath)
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	log, err := buildLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	srv, err := server.New(server.Config{
		Port:               cfg.Port,
		DatabaseURL:        cfg.DatabaseURL,
		DistanceServiceURL: cfg.DistanceServiceURL,
		DistanceTimeout:    time.Duration(cfg.DistanceTimeoutMs) * time.Millisecond,
		ProfilesFile:       cfg.ProfilesFile,
		DefaultProfile:     cfg.DefaultProfile,
		Parallelism:        cfg.Parallelism,
		Logger:             log,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
