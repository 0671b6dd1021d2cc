package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nexten/smartmatch/internal/observability"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score one candidate against one job",
	Long:  "Computes the weighted multi-criteria compatibility score for a candidate/job pair and prints the full result with its per-criterion breakdown.",
	RunE:  runMatch,
}

var (
	matchCandidatePath string
	matchJobPath       string
	matchProfile       string
	matchConfigPath    string
	matchVerbose       bool
)

func init() {
	matchCmd.Flags().StringVar(&matchCandidatePath, "candidate", "", "Path to candidate JSON file (required)")
	matchCmd.Flags().StringVar(&matchJobPath, "job", "", "Path to job JSON file (required)")
	matchCmd.Flags().StringVar(&matchProfile, "profile", "", "Weight profile to use (default from config)")
	matchCmd.Flags().StringVar(&matchConfigPath, "config", "", "Path to JSON config file")
	matchCmd.Flags().BoolVarP(&matchVerbose, "verbose", "v", false, "Print a formatted breakdown to stderr")

	if err := matchCmd.MarkFlagRequired("candidate"); err != nil {
		panic(fmt.Sprintf("failed to mark candidate flag as required: %v", err))
	}
	if err := matchCmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}

	rootCmd.AddCommand(matchCmd)
}

func runMatch(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(matchConfigPath)
	if err != nil {
		return err
	}

	log, err := buildLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	eng, _, err := buildEngine(cfg, log)
	if err != nil {
		return err
	}

	candidate, err := readCandidateFile(matchCandidatePath)
	if err != nil {
		return err
	}
	job, err := readJobFile(matchJobPath)
	if err != nil {
		return err
	}

	result, err := eng.Match(context.Background(), candidate, job, matchParams(matchProfile, cfg))
	if err != nil {
		return err
	}

	if matchVerbose || cfg.Verbose {
		// Boxes go to stderr so piped stdout stays machine-readable.
		printer := observability.NewPrinter(os.Stderr)
		printer.PrintMatchResult(result)
		printer.PrintWeights(result.Weights)
		printer.PrintFallbacks(result)
	}

	return printJSON(result)
}
