package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/docxtools/docxlint/internal/config"
	"github.com/docxtools/docxlint/internal/linter"
	"github.com/docxtools/docxlint/internal/observability"
	"github.com/docxtools/docxlint/internal/report"
	"github.com/docxtools/docxlint/internal/types"
)

var lintCmd = &cobra.Command{
	Use:   "lint [templates...]",
	Short: "Lint docx Jinja templates",
	Long:  "Validates template syntax, tag matching, nesting depth and variable usage for one or more docx files. With --data, variables are cross-referenced against the JSON context.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLint,
}

var (
	lintConfigPath      string
	lintDataPath        string
	lintVerbose         bool
	lintFailOnWarnings  bool
	lintCheckUndefined  bool
	lintCheckMatching   bool
	lintCheckNesting    bool
	lintMaxLineLength   int
	lintMaxNestingDepth int
	lintJSONOutput      bool
	lintReportDir       string
	lintReportFormat    string
	lintConcurrency     int
)

func init() {
	lintCmd.Flags().StringVar(&lintConfigPath, "config", "", "Path to config JSON file")
	lintCmd.Flags().StringVarP(&lintDataPath, "data", "d", "", "Path to data-context JSON file")
	lintCmd.Flags().BoolVarP(&lintVerbose, "verbose", "v", false, "Include full template text and summary boxes in output")
	lintCmd.Flags().BoolVar(&lintFailOnWarnings, "fail-on-warnings", false, "Treat warnings as failures")
	lintCmd.Flags().BoolVar(&lintCheckUndefined, "check-undefined-vars", true, "Cross-reference variables against the data context")
	lintCmd.Flags().BoolVar(&lintCheckMatching, "check-tag-matching", true, "Check that block tags open and close correctly")
	lintCmd.Flags().BoolVar(&lintCheckNesting, "check-nested-structure", true, "Check block nesting depth")
	lintCmd.Flags().IntVar(&lintMaxLineLength, "max-line-length", 200, "Line length above which a warning is emitted")
	lintCmd.Flags().IntVar(&lintMaxNestingDepth, "max-nesting-depth", 10, "Nesting depth above which an error is emitted")
	lintCmd.Flags().BoolVar(&lintJSONOutput, "json", false, "Print results as JSON instead of formatted output")
	lintCmd.Flags().StringVar(&lintReportDir, "report-dir", "", "Directory to write per-document reports into")
	lintCmd.Flags().StringVar(&lintReportFormat, "report-format", "markdown", "Report format: json, markdown or html")
	lintCmd.Flags().IntVar(&lintConcurrency, "concurrency", 4, "Maximum number of documents linted in parallel")

	rootCmd.AddCommand(lintCmd)
}

// lintOutcome is one document's result within a batch.
type lintOutcome struct {
	path   string
	result *types.LintResult
	err    error
}

func (o *lintOutcome) failed() bool {
	return o.err != nil || !o.result.Success
}

func runLint(cmd *cobra.Command, args []string) error {
	opts, dataPath, reportFormat, err := resolveLintSettings(cmd)
	if err != nil {
		return err
	}

	data, err := loadDataContext(dataPath)
	if err != nil {
		return err
	}

	if lintReportDir != "" {
		if err := os.MkdirAll(lintReportDir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	outcomes := lintAll(args, opts, data)

	if lintReportDir != "" {
		if err := writeReports(outcomes, reportFormat, data); err != nil {
			return err
		}
	}

	if lintJSONOutput {
		if err := printJSON(outcomes); err != nil {
			return err
		}
	} else {
		printFormatted(outcomes, opts.Verbose)
	}

	failed := 0
	for i := range outcomes {
		if outcomes[i].failed() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("linting failed for %d of %d documents", failed, len(outcomes))
	}
	return nil
}

// resolveLintSettings merges config file values with flags. A flag the
// user set explicitly always wins over the config file.
func resolveLintSettings(cmd *cobra.Command) (types.LintOptions, string, string, error) {
	opts := types.DefaultLintOptions()
	dataPath := lintDataPath
	reportFormat := lintReportFormat

	if lintConfigPath != "" {
		cfg, err := config.LoadConfig(lintConfigPath)
		if err != nil {
			return opts, "", "", err
		}
		if err := cfg.Validate(); err != nil {
			return opts, "", "", err
		}
		opts = cfg.LintOptions()
		if dataPath == "" {
			dataPath = cfg.Data
		}
		if !cmd.Flags().Changed("report-format") && cfg.ReportFormat != "" {
			reportFormat = cfg.ReportFormat
		}
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		opts.Verbose = lintVerbose
	}
	if flags.Changed("fail-on-warnings") {
		opts.FailOnWarnings = lintFailOnWarnings
	}
	if flags.Changed("check-undefined-vars") {
		opts.CheckUndefinedVars = lintCheckUndefined
	}
	if flags.Changed("check-tag-matching") {
		opts.CheckTagMatching = lintCheckMatching
	}
	if flags.Changed("check-nested-structure") {
		opts.CheckNestedStructure = lintCheckNesting
	}
	if flags.Changed("max-line-length") {
		opts.MaxLineLength = lintMaxLineLength
	}
	if flags.Changed("max-nesting-depth") {
		opts.MaxNestingDepth = lintMaxNestingDepth
	}

	switch reportFormat {
	case "json", "markdown", "html":
	default:
		return opts, "", "", fmt.Errorf("unknown report format %q (want json, markdown or html)", reportFormat)
	}

	return opts, dataPath, reportFormat, nil
}

// lintAll lints every template with bounded concurrency. Per-document
// failures are recorded, not propagated, so one broken file does not
// stop the batch.
func lintAll(paths []string, opts types.LintOptions, data map[string]any) []lintOutcome {
	outcomes := make([]lintOutcome, len(paths))

	var g errgroup.Group
	g.SetLimit(lintConcurrency)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			outcomes[i] = lintOne(path, opts, data)
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

func lintOne(path string, opts types.LintOptions, data map[string]any) lintOutcome {
	content, err := os.ReadFile(path)
	if err != nil {
		return lintOutcome{path: path, err: fmt.Errorf("failed to read template: %w", err)}
	}

	result, err := linter.Lint(content, opts, data)
	if err != nil {
		return lintOutcome{path: path, err: err}
	}
	return lintOutcome{path: path, result: result}
}

func printFormatted(outcomes []lintOutcome, verbose bool) {
	printer := observability.NewPrinter(os.Stdout)
	if len(outcomes) > 1 {
		printer.PrintBatchHeader(len(outcomes))
	}

	for i := range outcomes {
		o := &outcomes[i]
		if o.err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", o.path, o.err)
			continue
		}
		printer.PrintVerdict(o.path, o.result)
		if verbose {
			printer.PrintSummary(o.result)
		}
		printer.PrintErrors(o.result.Errors)
		printer.PrintWarnings(o.result.Warnings)
	}
}

func printJSON(outcomes []lintOutcome) error {
	if len(outcomes) == 1 {
		o := &outcomes[0]
		if o.err != nil {
			return o.err
		}
		return encodeJSON(os.Stdout, o.result)
	}

	results := make(map[string]*types.LintResult, len(outcomes))
	for i := range outcomes {
		o := &outcomes[i]
		if o.err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", o.path, o.err)
			continue
		}
		results[o.path] = o.result
	}
	return encodeJSON(os.Stdout, results)
}

func encodeJSON(w *os.File, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	return nil
}

func writeReports(outcomes []lintOutcome, format string, data map[string]any) error {
	htmlRenderer := report.NewHTMLRenderer()

	for i := range outcomes {
		o := &outcomes[i]
		if o.err != nil {
			continue
		}

		name := filepath.Base(o.path)
		meta := report.NewMetadata(name)

		var out []byte
		var ext string
		switch format {
		case "json":
			encoded, err := json.MarshalIndent(o.result, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal report for %s: %w", name, err)
			}
			out, ext = encoded, ".report.json"
		case "markdown":
			out, ext = []byte(report.FormatMarkdown(o.result, meta, data)), ".report.md"
		case "html":
			md := report.FormatMarkdown(o.result, meta, data)
			page, err := htmlRenderer.RenderHTML(md, name)
			if err != nil {
				return fmt.Errorf("failed to render report for %s: %w", name, err)
			}
			out, ext = page, ".report.html"
		}

		base := strings.TrimSuffix(name, filepath.Ext(name))
		target := filepath.Join(lintReportDir, base+ext)
		if err := os.WriteFile(target, out, 0644); err != nil {
			return fmt.Errorf("failed to write report %s: %w", target, err)
		}
	}
	return nil
}
