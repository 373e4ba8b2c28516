// Package main provides the docxlint CLI for linting and rendering docx Jinja templates.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "docxlint",
	Short: "Lint and render docx Jinja templates",
	Long:  "docxlint validates Jinja2 template syntax, tag structure and variable usage inside Word documents, and renders templates against a JSON data context.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
