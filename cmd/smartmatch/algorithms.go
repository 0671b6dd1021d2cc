package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nexten/smartmatch/internal/weights"
)

var algorithmsCmd = &cobra.Command{
	Use:   "algorithms",
	Short: "List available weight profiles",
	RunE:  runAlgorithms,
}

var algorithmsConfigPath string

func init() {
	algorithmsCmd.Flags().StringVar(&algorithmsConfigPath, "config", "", "Path to JSON config file")
	rootCmd.AddCommand(algorithmsCmd)
}

func runAlgorithms(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(algorithmsConfigPath)
	if err != nil {
		return err
	}

	catalog := weights.NewCatalog()
	if cfg.ProfilesFile != "" {
		if err := catalog.LoadProfilesFile(cfg.ProfilesFile); err != nil {
			return fmt.Errorf("failed to load weight profiles: %w", err)
		}
	}

	return printJSON(map[string]any{
		"algorithms": catalog.Names(),
		"default":    cfg.DefaultProfile,
	})
}
