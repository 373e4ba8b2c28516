// Package types provides type definitions for structured data used throughout the docxlint system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// LintErrorType classifies a blocking defect found in a template.
type LintErrorType string

const (
	SyntaxError       LintErrorType = "syntax_error"
	UnclosedTag       LintErrorType = "unclosed_tag"
	MismatchedTag     LintErrorType = "mismatched_tag"
	NestedError       LintErrorType = "nested_error"
	UndefinedVariable LintErrorType = "undefined_variable"
	DocumentError     LintErrorType = "document_error"
)

// LintWarningType classifies a non-blocking quality issue.
type LintWarningType string

const (
	LongLine              LintWarningType = "long_line"
	UnusedVariable        LintWarningType = "unused_variable"
	ComplexExpression     LintWarningType = "complex_expression"
	SuspiciousSyntax      LintWarningType = "suspicious_syntax"
	UndefinedVariableWarn LintWarningType = "undefined_variable"
)

// LintError represents a blocking defect found in the template.
type LintError struct {
	LineNumber *int          `json:"line_number,omitempty"` // 1-based; nil when the source line could not be determined
	Column     *int          `json:"column,omitempty"`
	ErrorType  LintErrorType `json:"error_type"`
	Message    string        `json:"message"`
	Context    string        `json:"context,omitempty"` // Offending raw text, if available
	TagName    string        `json:"tag_name,omitempty"`
	Suggestion string        `json:"suggestion,omitempty"`
}

// LintWarning represents a non-blocking quality issue found in the template.
type LintWarning struct {
	LineNumber  *int            `json:"line_number,omitempty"`
	Column      *int            `json:"column,omitempty"`
	WarningType LintWarningType `json:"warning_type"`
	Message     string          `json:"message"`
	Context     string          `json:"context,omitempty"`
	Suggestion  string          `json:"suggestion,omitempty"`
}

// LintSummary holds aggregate statistics for one lint invocation.
type LintSummary struct {
	TotalErrors       int     `json:"total_errors"`
	TotalWarnings     int     `json:"total_warnings"`
	TemplateSize      int     `json:"template_size"` // Characters of extracted text
	LinesCount        int     `json:"lines_count"`
	JinjaTagsCount    int     `json:"jinja_tags_count"`
	CompletenessScore float64 `json:"completeness_score"`
	ProcessingTimeMs  float64 `json:"processing_time_ms"`
}

// LintResult is the complete output of linting one document.
type LintResult struct {
	Success         bool          `json:"success"`
	Errors          []LintError   `json:"errors"`
	Warnings        []LintWarning `json:"warnings"`
	Summary         LintSummary   `json:"summary"`
	TemplateContent string        `json:"template_content,omitempty"` // Full extracted text, verbose mode only
	TemplatePreview string        `json:"template_preview,omitempty"` // First 500 characters
}

// HasErrors reports whether any errors were found.
func (r *LintResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings reports whether any warnings were found.
func (r *LintResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// IntPtr returns a pointer to i. Used for the optional line/column fields.
func IntPtr(i int) *int {
	return &i
}
