// Package main provides the entry point for the Resume Parser HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_parser",
	Short: "Resume Parser HTTP API Server",
	Long:  "Resume Parser accepts uploaded resumes, extracts structured candidate data via the Gemini API with layered fallback parsing, and stores results in PostgreSQL.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
