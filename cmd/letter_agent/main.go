// Package main provides the entry point for the cover letter agent CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "letter_agent",
	Short: "Cover Letter Agent",
	Long:  "Cover Letter Agent generates evidence-grounded cover letters from a structured profile and job posting, with degraded fallback tiers when the full pipeline cannot run.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
