// Package linter implements the docx template lint pipeline: structural
// validation, engine syntax delegation, quality checks and report assembly.
package linter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/docxtools/docxlint/internal/types"
)

// complexExpressionLength is the raw-text length above which a variable
// expression is flagged as complex.
const complexExpressionLength = 50

// suspiciousPatterns are delimiter shapes that are almost always typos.
var suspiciousPatterns = []struct {
	re          *regexp.Regexp
	description string
}{
	{regexp.MustCompile(`\{\{\{[^}]*\}\}\}`), "Triple braces detected"},
	{regexp.MustCompile(`\{%\s*\{[^}]*\}\s*%\}`), "Mixed tag syntax"},
	{regexp.MustCompile(`\{\{[^}]*\{\{[^}]*\}\}`), "Nested double braces in variable"},
	{regexp.MustCompile(`\{\s+\{[^}]*\}\s+\}`), "Spaces between braces"},
}

// checkQuality produces the non-blocking quality warnings: over-long lines,
// overly complex variable expressions and suspicious delimiter shapes.
func checkQuality(text string, tokens []types.TemplateToken, maxLineLength int) []types.LintWarning {
	var warnings []types.LintWarning

	for i, line := range strings.Split(text, "\n") {
		if len([]rune(line)) <= maxLineLength {
			continue
		}
		context := line
		if r := []rune(context); len(r) > 100 {
			context = string(r[:100]) + "..."
		}
		warnings = append(warnings, types.LintWarning{
			LineNumber:  types.IntPtr(i + 1),
			WarningType: types.LongLine,
			Message:     fmt.Sprintf("Line too long (%d > %d characters)", len([]rune(line)), maxLineLength),
			Context:     context,
			Suggestion:  "Consider breaking long lines for better readability",
		})
	}

	for _, tok := range tokens {
		if tok.Kind != types.VariableExpr || len(tok.RawText) <= complexExpressionLength {
			continue
		}
		warnings = append(warnings, types.LintWarning{
			LineNumber:  tok.Line(),
			WarningType: types.ComplexExpression,
			Message:     "Complex variable expression detected",
			Context:     tok.RawText,
			Suggestion:  "Consider simplifying the expression or using intermediate variables",
		})
	}

	for _, pattern := range suspiciousPatterns {
		for _, loc := range pattern.re.FindAllStringIndex(text, -1) {
			line := strings.Count(text[:loc[0]], "\n") + 1
			warnings = append(warnings, types.LintWarning{
				LineNumber:  types.IntPtr(line),
				WarningType: types.SuspiciousSyntax,
				Message:     fmt.Sprintf("Suspicious syntax: %s", pattern.description),
				Context:     text[loc[0]:loc[1]],
				Suggestion:  "Review syntax for correctness",
			})
		}
	}

	return warnings
}
