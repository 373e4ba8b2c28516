// Package linter implements the docx template lint pipeline: structural
// validation, engine syntax delegation, quality checks and report assembly.
package linter

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/docxtools/docxlint/internal/types"
)

var (
	// docxtplPrefix strips the p/tr/tc/r placement prefixes before engine
	// parsing; the engine knows plain Jinja only. Replacements never touch
	// newlines so line numbers stay valid.
	docxtplPrefix = regexp.MustCompile(`\{%-?\s*(?:p|tr|tc|r)\s+`)

	// richtextVar rewrites docxtpl {{r expr }} richtext markers to plain
	// variable expressions.
	richtextVar = regexp.MustCompile(`\{\{r\s+`)

	// docxtplStandalone removes docxtpl table helper tags the engine has
	// no parser for.
	docxtplStandalone = regexp.MustCompile(`\{%-?\s*(?:cellbg|colspan|hm|vm)\b[^%]*%\}`)

	// rawBlock rewrites Jinja raw/endraw into the engine's verbatim tag,
	// which has the same skip-until-closer semantics.
	rawBlock = regexp.MustCompile(`(\{%-?\s*)(end)?raw(\s*-?%\})`)

	// engineTagNotFound extracts the tag name from the engine's
	// unknown-tag message so block-balance duplicates can be recognized.
	engineTagNotFound = regexp.MustCompile(`[Tt]ag '(\w+)' not found`)
)

// checkEngineSyntax hands the full extracted text to the template engine's
// own parser and translates any syntax exception into a LintError. This
// catches expression-level defects (malformed filters, unbalanced
// parentheses) that tag-level scanning cannot see.
//
// Two engine error classes are owned by earlier passes and dropped here
// so each defect surfaces exactly once: unknown keywords the scanner has
// already diagnosed (scannedUnknown), and, when the stack-based matcher is
// enabled, block-balance errors (unclosed and stray end tags). Everything
// else the engine reports is kept verbatim.
func checkEngineSyntax(text string, structuralEnabled bool, scannedUnknown map[string]bool) []types.LintError {
	_, err := pongo2.FromString(sanitizeForEngine(text))
	if err == nil {
		return nil
	}

	var perr *pongo2.Error
	if !errors.As(err, &perr) {
		return []types.LintError{{
			ErrorType:  types.SyntaxError,
			Message:    fmt.Sprintf("Template syntax error: %v", err),
			Suggestion: "Check Jinja2 syntax documentation for correct tag format",
		}}
	}

	message := perr.Error()
	if perr.OrigError != nil {
		message = perr.OrigError.Error()
	}

	if m := engineTagNotFound.FindStringSubmatch(message); m != nil && scannedUnknown[strings.ToLower(m[1])] {
		return nil
	}
	if structuralEnabled && isBlockBalanceError(message) {
		return nil
	}

	lintErr := types.LintError{
		ErrorType:  types.SyntaxError,
		Message:    fmt.Sprintf("Template syntax error: %s", message),
		Suggestion: "Check Jinja2 syntax documentation for correct tag format",
	}
	if perr.Line > 0 {
		lintErr.LineNumber = types.IntPtr(perr.Line)
	}
	if perr.Column > 0 {
		lintErr.Column = types.IntPtr(perr.Column)
	}
	if perr.Token != nil {
		lintErr.Context = perr.Token.Val
	}
	return []types.LintError{lintErr}
}

// sanitizeForEngine rewrites docxtpl extensions into plain Jinja the
// engine can parse.
func sanitizeForEngine(text string) string {
	out := docxtplPrefix.ReplaceAllString(text, "{% ")
	out = richtextVar.ReplaceAllString(out, "{{ ")
	out = docxtplStandalone.ReplaceAllString(out, "")
	out = rawBlock.ReplaceAllString(out, "${1}${2}verbatim${3}")
	return out
}

// isBlockBalanceError reports whether an engine message describes a tag
// balance defect rather than an expression defect.
func isBlockBalanceError(message string) bool {
	lower := strings.ToLower(message)
	if strings.Contains(lower, "unexpected eof") {
		return true
	}
	if m := engineTagNotFound.FindStringSubmatch(message); m != nil {
		name := strings.ToLower(m[1])
		if name == "else" || name == "elif" {
			return true
		}
		if rest, ok := strings.CutPrefix(name, "end"); ok && rest != "" {
			return true
		}
	}
	return false
}
