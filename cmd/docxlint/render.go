package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/docxtools/docxlint/internal/config"
	"github.com/docxtools/docxlint/internal/linter"
	"github.com/docxtools/docxlint/internal/rendering"
	"github.com/docxtools/docxlint/internal/types"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a docx Jinja template against a data context",
	Long:  "Substitutes the JSON data context into the template and writes the rendered document. The template is linted first; a template with errors is not rendered unless --skip-lint is given.",
	RunE:  runRender,
}

var (
	renderConfigPath string
	renderInput      string
	renderDataPath   string
	renderOutput     string
	renderUndefined  string
	renderSkipLint   bool
)

func init() {
	renderCmd.Flags().StringVar(&renderConfigPath, "config", "", "Path to config JSON file")
	renderCmd.Flags().StringVarP(&renderInput, "in", "i", "", "Path to docx template (required)")
	renderCmd.Flags().StringVarP(&renderDataPath, "data", "d", "", "Path to data-context JSON file (required)")
	renderCmd.Flags().StringVarP(&renderOutput, "out", "o", "", "Path to rendered docx output (required)")
	renderCmd.Flags().StringVar(&renderUndefined, "undefined", "", "Undefined-variable mode: silent, marker or strict (default silent)")
	renderCmd.Flags().BoolVar(&renderSkipLint, "skip-lint", false, "Render even when linting finds errors")

	if err := renderCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}
	if err := renderCmd.MarkFlagRequired("data"); err != nil {
		panic(fmt.Sprintf("failed to mark data flag as required: %v", err))
	}
	if err := renderCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(renderCmd)
}

func runRender(_ *cobra.Command, _ []string) error {
	opts := types.DefaultLintOptions()
	modeFlag := renderUndefined

	if renderConfigPath != "" {
		cfg, err := config.LoadConfig(renderConfigPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		opts = cfg.LintOptions()
		if modeFlag == "" {
			modeFlag = cfg.UndefinedMode
		}
	}

	mode, err := rendering.ParseUndefinedMode(modeFlag)
	if err != nil {
		return err
	}

	data, err := loadDataContext(renderDataPath)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(renderInput)
	if err != nil {
		return fmt.Errorf("failed to read template: %w", err)
	}

	if !renderSkipLint {
		result, err := linter.Lint(content, opts, data)
		if err != nil {
			return err
		}
		// Warnings do not block rendering, errors do.
		if result.HasErrors() {
			return fmt.Errorf("template failed linting with %d errors; fix them or pass --skip-lint (run 'docxlint lint %s' for details)",
				result.Summary.TotalErrors, renderInput)
		}
	}

	rendered, err := rendering.RenderDocx(content, data, mode)
	if err != nil {
		return fmt.Errorf("rendering failed: %w", err)
	}

	outputDir := filepath.Dir(renderOutput)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(renderOutput, rendered, 0644); err != nil {
		return fmt.Errorf("failed to write rendered document: %w", err)
	}

	fmt.Printf("Rendered %s -> %s\n", renderInput, renderOutput)
	return nil
}
