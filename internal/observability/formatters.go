// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/docxtools/docxlint/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer

	red    *color.Color
	yellow *color.Color
	green  *color.Color
	cyan   *color.Color
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{
		out:    out,
		red:    color.New(color.FgRed),
		yellow: color.New(color.FgYellow),
		green:  color.New(color.FgGreen),
		cyan:   color.New(color.FgCyan, color.Bold),
	}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintSummary outputs the aggregate linting statistics for one document.
func (p *Printer) PrintSummary(result *types.LintResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Template size:   %d characters\n", result.Summary.TemplateSize))
	sb.WriteString(fmt.Sprintf("Lines:           %d\n", result.Summary.LinesCount))
	sb.WriteString(fmt.Sprintf("Jinja tags:      %d\n", result.Summary.JinjaTagsCount))
	sb.WriteString(fmt.Sprintf("Errors:          %d\n", result.Summary.TotalErrors))
	sb.WriteString(fmt.Sprintf("Warnings:        %d\n", result.Summary.TotalWarnings))
	sb.WriteString(fmt.Sprintf("Score:           %.1f%%\n", result.Summary.CompletenessScore))
	sb.WriteString(fmt.Sprintf("Processing time: %.2fms", result.Summary.ProcessingTimeMs))

	p.printBox("LINT SUMMARY", sb.String())
}

// PrintErrors outputs each blocking defect with its location.
func (p *Printer) PrintErrors(errors []types.LintError) {
	if len(errors) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d errors:\n\n", len(errors)))

	count := min(len(errors), maxItemsToShow)
	for i := 0; i < count; i++ {
		e := errors[i]
		sb.WriteString(fmt.Sprintf("✗ %s%s\n", e.ErrorType, locationSuffix(e.LineNumber, e.Column)))
		sb.WriteString(fmt.Sprintf("  %s\n", truncate(e.Message, 50)))
		if e.Suggestion != "" {
			sb.WriteString(fmt.Sprintf("  → %s\n", truncate(e.Suggestion, 48)))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(errors) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more errors", len(errors)-maxItemsToShow))
	}

	p.printBox("ERRORS", sb.String())
}

// PrintWarnings outputs each non-blocking quality issue.
func (p *Printer) PrintWarnings(warnings []types.LintWarning) {
	if len(warnings) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d warnings:\n\n", len(warnings)))

	count := min(len(warnings), maxItemsToShow)
	for i := 0; i < count; i++ {
		w := warnings[i]
		sb.WriteString(fmt.Sprintf("⚠ %s%s\n", w.WarningType, locationSuffix(w.LineNumber, w.Column)))
		sb.WriteString(fmt.Sprintf("  %s\n", truncate(w.Message, 50)))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(warnings) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more warnings", len(warnings)-maxItemsToShow))
	}

	p.printBox("WARNINGS", sb.String())
}

// PrintVerdict prints a one-line colored pass/fail verdict for a document.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintVerdict(documentName string, result *types.LintResult) {
	if result == nil {
		return
	}

	switch {
	case result.Success && !result.HasWarnings():
		p.green.Fprint(p.out, "PASS")
	case result.Success:
		p.yellow.Fprint(p.out, "PASS")
	default:
		p.red.Fprint(p.out, "FAIL")
	}
	fmt.Fprintf(p.out, "  %s", documentName)
	if result.HasErrors() || result.HasWarnings() {
		fmt.Fprintf(p.out, "  (%d errors, %d warnings)",
			result.Summary.TotalErrors, result.Summary.TotalWarnings)
	}
	fmt.Fprintln(p.out)
}

// PrintBatchHeader announces a multi-document run.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintBatchHeader(total int) {
	p.cyan.Fprintf(p.out, "Linting %d documents\n", total)
}

// PrintResult outputs everything for one result: verdict, summary and
// whatever issues were found.
func (p *Printer) PrintResult(documentName string, result *types.LintResult) {
	if result == nil {
		return
	}
	p.PrintVerdict(documentName, result)
	p.PrintSummary(result)
	p.PrintErrors(result.Errors)
	p.PrintWarnings(result.Warnings)
}

func locationSuffix(line, column *int) string {
	if line == nil {
		return ""
	}
	if column != nil {
		return fmt.Sprintf(" (line %d:%d)", *line, *column)
	}
	return fmt.Sprintf(" (line %d)", *line)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
