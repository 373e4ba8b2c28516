// Package report renders lint results into shareable report documents.
package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/docxtools/docxlint/internal/types"
)

const contextPreviewLength = 50

// Metadata identifies one generated report.
type Metadata struct {
	ReportID     string    `json:"report_id"`
	DocumentName string    `json:"document_name"`
	GeneratedAt  time.Time `json:"generated_at"`
}

// NewMetadata stamps a report for the given document.
func NewMetadata(documentName string) Metadata {
	return Metadata{
		ReportID:     uuid.NewString(),
		DocumentName: documentName,
		GeneratedAt:  time.Now(),
	}
}

// FormatMarkdown renders a full lint report as markdown: document
// information, pass/fail status, issue summary, per-issue detail tables
// and the template preview. templateData, when provided, is echoed as a
// JSON block so the report records what the variables were checked
// against.
func FormatMarkdown(result *types.LintResult, meta Metadata, templateData map[string]any) string {
	var parts []string
	parts = append(parts, header(result, meta, templateData))
	parts = append(parts, summarySection(result))
	parts = append(parts, "\n<div class=\"page-break\"></div>\n")

	if len(result.Errors) > 0 || len(result.Warnings) > 0 {
		parts = append(parts, detailedResults(result))
	} else {
		parts = append(parts, successMessage())
	}

	if result.TemplatePreview != "" {
		parts = append(parts, "\n<div class=\"page-break\"></div>\n")
		parts = append(parts, previewSection(result.TemplatePreview))
	}

	return strings.Join(parts, "\n")
}

func header(result *types.LintResult, meta Metadata, templateData map[string]any) string {
	var b strings.Builder
	b.WriteString("# DocX Jinja Template Linting Report\n\n")
	b.WriteString("## Document Information\n\n")
	b.WriteString("| Field | Value |\n")
	b.WriteString("|-------|-------|\n")
	fmt.Fprintf(&b, "| **Document Name** | `%s` |\n", meta.DocumentName)
	fmt.Fprintf(&b, "| **Report ID** | %s |\n", meta.ReportID)
	fmt.Fprintf(&b, "| **Report Generated** | %s |\n", meta.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "| **Template Size** | %d characters |\n", result.Summary.TemplateSize)
	fmt.Fprintf(&b, "| **Lines Count** | %d lines |\n", result.Summary.LinesCount)
	fmt.Fprintf(&b, "| **Jinja Tags** | %d tags |\n", result.Summary.JinjaTagsCount)
	fmt.Fprintf(&b, "| **Processing Time** | %.2fms |\n", result.Summary.ProcessingTimeMs)
	fmt.Fprintf(&b, "| **Completeness Score** | %.1f%% |\n", result.Summary.CompletenessScore)
	b.WriteString("\n## Validation Status\n\n")

	if result.Success {
		b.WriteString("✅ **PASSED** - Template validation successful\n\n")
	} else {
		b.WriteString("❌ **FAILED** - Template validation failed\n\n")
	}

	if len(templateData) > 0 {
		b.WriteString("## Template Data Summary\n\n")
		b.WriteString("```json\n")
		if encoded, err := json.MarshalIndent(templateData, "", "  "); err == nil {
			b.Write(encoded)
		}
		b.WriteString("\n```\n\n")
	}

	return b.String()
}

func summarySection(result *types.LintResult) string {
	var b strings.Builder
	b.WriteString("## Summary\n\n")

	if result.Summary.TotalErrors == 0 && result.Summary.TotalWarnings == 0 {
		b.WriteString("**Perfect Template!** No errors or warnings found.\n\n")
		return b.String()
	}

	b.WriteString("| Issue Type | Count |\n")
	b.WriteString("|------------|-------|\n")
	fmt.Fprintf(&b, "| ❌ **Errors** | %d |\n", result.Summary.TotalErrors)
	fmt.Fprintf(&b, "| ⚠️ **Warnings** | %d |\n\n", result.Summary.TotalWarnings)

	if result.Summary.TotalErrors > 0 {
		b.WriteString("**Action Required**: Errors must be fixed before the template can be processed.\n\n")
	} else {
		b.WriteString("**Recommendations**: Consider addressing warnings to improve template quality.\n\n")
	}
	return b.String()
}

func detailedResults(result *types.LintResult) string {
	var b strings.Builder
	b.WriteString("# Detailed Analysis\n\n")

	if len(result.Errors) > 0 {
		b.WriteString("## ❌ Errors\n\n")
		b.WriteString(errorsTable(result.Errors))
		b.WriteString("\n")
	}
	if len(result.Warnings) > 0 {
		b.WriteString("## ⚠️ Warnings\n\n")
		b.WriteString(warningsTable(result.Warnings))
		b.WriteString("\n")
	}
	return b.String()
}

func errorsTable(errors []types.LintError) string {
	var b strings.Builder
	writeIssueTableHeader(&b)
	for _, e := range errors {
		writeIssueRow(&b, issueRow{
			line:       e.LineNumber,
			column:     e.Column,
			context:    e.Context,
			kind:       string(e.ErrorType),
			message:    e.Message,
			suggestion: e.Suggestion,
		})
	}
	return b.String()
}

func warningsTable(warnings []types.LintWarning) string {
	var b strings.Builder
	writeIssueTableHeader(&b)
	for _, w := range warnings {
		writeIssueRow(&b, issueRow{
			line:       w.LineNumber,
			column:     w.Column,
			context:    w.Context,
			kind:       string(w.WarningType),
			message:    w.Message,
			suggestion: w.Suggestion,
		})
	}
	return b.String()
}

type issueRow struct {
	line       *int
	column     *int
	context    string
	kind       string
	message    string
	suggestion string
}

func writeIssueTableHeader(b *strings.Builder) {
	b.WriteString("| Line | Template Text | Issue Description |\n")
	b.WriteString("|------|---------------|-------------------|\n")
}

func writeIssueRow(b *strings.Builder, row issueRow) {
	lineInfo := "Unknown"
	if row.line != nil {
		lineInfo = fmt.Sprintf("%d", *row.line)
		if row.column != nil {
			lineInfo += fmt.Sprintf(":%d", *row.column)
		}
	}

	templateText := "N/A"
	if row.context != "" {
		context := row.context
		truncated := false
		if len(context) > contextPreviewLength {
			context = context[:contextPreviewLength]
			truncated = true
		}
		templateText = "`" + escapeMarkdown(context) + "`"
		if truncated {
			templateText += "..."
		}
	}

	description := fmt.Sprintf("**%s**<br/>%s", row.kind, escapeMarkdown(row.message))
	if row.suggestion != "" {
		description += fmt.Sprintf("<br/>*%s*", escapeMarkdown(row.suggestion))
	}

	fmt.Fprintf(b, "| %s | %s | %s |\n", lineInfo, templateText, description)
}

func successMessage() string {
	return `# ✅ Validation Successful

**Congratulations!** Your template has passed all validation checks.

## What this means:
- All Jinja2 syntax is correct
- All template tags are properly matched
- Template structure is valid
- No quality issues detected

Your template is ready for production use!
`
}

func previewSection(preview string) string {
	var b strings.Builder
	b.WriteString("# Template Preview\n\n")
	b.WriteString("```jinja2\n")
	b.WriteString(escapeCodeBlock(preview))
	b.WriteString("\n```\n")
	return b.String()
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"|", `\|`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"#", `\#`,
)

func escapeMarkdown(text string) string {
	return markdownEscaper.Replace(text)
}

// escapeCodeBlock keeps template text from terminating its fenced block.
func escapeCodeBlock(text string) string {
	return strings.ReplaceAll(text, "```", "\\`\\`\\`")
}
