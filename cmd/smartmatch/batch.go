package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nexten/smartmatch/internal/schemas"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Score every candidate against every job",
	Long:  "Computes the full cross product of the candidate and job files found in two directories, with bounded parallelism, and prints results sorted by input order.",
	RunE:  runBatch,
}

var (
	batchCandidatesDir string
	batchJobsDir       string
	batchProfile       string
	batchParallel      int
	batchConfigPath    string
)

func init() {
	batchCmd.Flags().StringVar(&batchCandidatesDir, "candidates", "", "Directory of candidate JSON files (required)")
	batchCmd.Flags().StringVar(&batchJobsDir, "jobs", "", "Directory of job JSON files (required)")
	batchCmd.Flags().StringVar(&batchProfile, "profile", "", "Weight profile to use (default from config)")
	batchCmd.Flags().IntVar(&batchParallel, "parallel", 0, "Concurrent pair limit (default: CPU count)")
	batchCmd.Flags().StringVar(&batchConfigPath, "config", "", "Path to JSON config file")

	if err := batchCmd.MarkFlagRequired("candidates"); err != nil {
		panic(fmt.Sprintf("failed to mark candidates flag as required: %v", err))
	}
	if err := batchCmd.MarkFlagRequired("jobs"); err != nil {
		panic(fmt.Sprintf("failed to mark jobs flag as required: %v", err))
	}

	rootCmd.AddCommand(batchCmd)
}

// batchOutput is the printed shape: one entry per pair, named by source
// file instead of index.
type batchOutput struct {
	Candidate    string  `json:"candidate"`
	Job          string  `json:"job"`
	FinalScore   float64 `json:"final_score"`
	ScorePercent int     `json:"score_percent"`
	Tier         string  `json:"quality_tier"`
}

func runBatch(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(batchConfigPath)
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

	candidates, candidateNames, err := readPayloadDir(batchCandidatesDir, schemas.ValidateCandidate)
	if err != nil {
		return err
	}
	jobs, jobNames, err := readPayloadDir(batchJobsDir, schemas.ValidateJob)
	if err != nil {
		return err
	}

	parallel := batchParallel
	if parallel <= 0 {
		parallel = cfg.Parallelism
	}

	items, err := eng.MatchBatch(context.Background(), candidates, jobs, matchParams(batchProfile, cfg), parallel)
	if err != nil {
		return err
	}

	output := make([]batchOutput, 0, len(items))
	for _, item := range items {
		output = append(output, batchOutput{
			Candidate:    candidateNames[item.CandidateIndex],
			Job:          jobNames[item.JobIndex],
			FinalScore:   item.Result.FinalScore,
			ScorePercent: item.Result.ScorePercent,
			Tier:         string(item.Result.Tier),
		})
	}

	return printJSON(output)
}
