// Package linter implements the docx template lint pipeline: structural
// validation, engine syntax delegation, quality checks and report assembly.
package linter

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/docxtools/docxlint/internal/docx"
	"github.com/docxtools/docxlint/internal/scanner"
	"github.com/docxtools/docxlint/internal/types"
	"github.com/docxtools/docxlint/internal/variables"
)

// previewLength is how much of the extracted text goes into the preview.
const previewLength = 500

// Lint validates the Jinja template embedded in raw .docx bytes and
// returns the assembled report. data is the optional render context used
// for undefined-variable cross-referencing; pass nil to skip that check.
//
// Recoverable template defects never surface as a Go error: they are
// collected into the result and the caller branches on Success. The only
// error return is a *docx.DocumentError for input that is not a readable
// Word package, in which case no partial report is produced.
func Lint(content []byte, opts types.LintOptions, data map[string]any) (*types.LintResult, error) {
	start := time.Now()
	text, err := docx.ExtractText(content)
	if err != nil {
		return nil, err
	}
	result := lint(text, opts, data)
	result.Summary.ProcessingTimeMs = elapsedMs(start)
	return result, nil
}

// LintText runs the same pipeline over already-extracted template text.
func LintText(text string, opts types.LintOptions, data map[string]any) *types.LintResult {
	start := time.Now()
	result := lint(text, opts, data)
	result.Summary.ProcessingTimeMs = elapsedMs(start)
	return result
}

func lint(text string, opts types.LintOptions, data map[string]any) *types.LintResult {
	var errs []types.LintError
	var warnings []types.LintWarning

	if strings.TrimSpace(text) == "" {
		errs = append(errs, types.LintError{
			ErrorType:  types.DocumentError,
			Message:    "No template content found in document",
			Suggestion: "Ensure the document contains Jinja2 template syntax",
		})
	}

	scan := scanner.Scan(text)
	errs = append(errs, scan.Errors...)

	// Unknown-keyword diagnostics carry the offending tag name; the engine
	// pass suppresses its own rendition of those.
	scannedUnknown := make(map[string]bool)
	for _, e := range scan.Errors {
		if e.TagName != "" {
			scannedUnknown[e.TagName] = true
		}
	}
	errs = append(errs, checkEngineSyntax(text, opts.CheckTagMatching, scannedUnknown)...)

	if opts.CheckTagMatching {
		errs = append(errs, checkTagMatching(scan.Tokens)...)
	}
	if opts.CheckNestedStructure {
		errs = append(errs, checkNesting(scan.Tokens, opts.MaxNestingDepth)...)
	}

	warnings = append(warnings, checkQuality(text, scan.Tokens, opts.MaxLineLength)...)

	// Undefined-variable checking requires a key set; with none supplied
	// it is skipped entirely rather than treating everything as undefined.
	if opts.CheckUndefinedVars && data != nil {
		warnings = append(warnings, variables.CheckUndefined(scan.Tokens, data)...)
		warnings = append(warnings, variables.CheckUnused(scan.Tokens, data)...)
	}

	summary := types.LintSummary{
		TotalErrors:       len(errs),
		TotalWarnings:     len(warnings),
		TemplateSize:      utf8.RuneCountInString(text),
		LinesCount:        len(strings.Split(text, "\n")),
		JinjaTagsCount:    scan.TagCount,
		CompletenessScore: completenessScore(text, len(errs), len(warnings), scan.TagCount),
	}

	result := &types.LintResult{
		Success:         len(errs) == 0 && (!opts.FailOnWarnings || len(warnings) == 0),
		Errors:          errs,
		Warnings:        warnings,
		Summary:         summary,
		TemplatePreview: preview(text),
	}
	if opts.Verbose {
		result.TemplateContent = text
	}
	return result
}

func preview(text string) string {
	if utf8.RuneCountInString(text) <= previewLength {
		return text
	}
	runes := []rune(text)
	return string(runes[:previewLength]) + "..."
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
