// Package main provides the smartmatch CLI: candidate/job matching from the
// command line and the HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "smartmatch",
	Short: "Multi-criteria candidate/job matching engine",
	Long:  "SmartMatch scores candidate/job compatibility across weighted criteria with motivation-driven dynamic weighting, exposed as a CLI and a REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
