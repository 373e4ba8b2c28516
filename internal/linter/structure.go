// Package linter implements the docx template lint pipeline: structural
// validation, engine syntax delegation, quality checks and report assembly.
package linter

import (
	"fmt"

	"github.com/docxtools/docxlint/internal/types"
)

// frame is one open paired tag on the matching stack.
type frame struct {
	tag    string
	prefix string
	line   int
	raw    string
}

func (f frame) closer() string {
	if f.prefix != "" {
		return f.prefix + " end" + f.tag
	}
	return "end" + f.tag
}

// checkTagMatching runs the stack-based matcher over the token stream.
// Closers that do not match the innermost open tag are reported and
// treated as no-ops (not popped) so subsequent matching can recover.
// Tags still open at the end of the stream are reported outermost first.
func checkTagMatching(tokens []types.TemplateToken) []types.LintError {
	var errs []types.LintError
	var stack []frame

	for _, tok := range tokens {
		switch tok.Kind {
		case types.BlockOpen:
			stack = append(stack, frame{
				tag:    tok.TagName,
				prefix: tok.Prefix,
				line:   tok.LineNumber,
				raw:    tok.RawText,
			})

		case types.BlockClose:
			if len(stack) == 0 {
				errs = append(errs, types.LintError{
					LineNumber: tok.Line(),
					ErrorType:  types.MismatchedTag,
					Message:    fmt.Sprintf("Closing tag 'end%s' without matching opening tag", tok.TagName),
					Context:    tok.RawText,
					TagName:    tok.TagName,
					Suggestion: fmt.Sprintf("Add an opening {%% %s %%} tag before this point", tok.TagName),
				})
				continue
			}
			top := stack[len(stack)-1]
			if tok.TagName == top.tag && tok.Prefix == top.prefix {
				stack = stack[:len(stack)-1]
				continue
			}
			errs = append(errs, types.LintError{
				LineNumber: tok.Line(),
				ErrorType:  types.MismatchedTag,
				Message:    fmt.Sprintf("Expected '%s' but found 'end%s'", top.closer(), tok.TagName),
				Context:    tok.RawText,
				TagName:    tok.TagName,
				Suggestion: fmt.Sprintf("Change to {%% %s %%} or check tag nesting (opened at line %d)", top.closer(), top.line),
			})

		case types.BlockElse:
			// else/elif are only valid directly inside an open if block.
			if len(stack) > 0 && stack[len(stack)-1].tag == "if" {
				continue
			}
			errs = append(errs, types.LintError{
				LineNumber: tok.Line(),
				ErrorType:  types.MismatchedTag,
				Message:    fmt.Sprintf("'%s' outside of an if block", tok.TagName),
				Context:    tok.RawText,
				TagName:    tok.TagName,
				Suggestion: fmt.Sprintf("'%s' must be nested directly inside {%% if ... %%}", tok.TagName),
			})
		}
	}

	for _, open := range stack {
		tag := open.tag
		if open.prefix != "" {
			tag = open.prefix + " " + tag
		}
		errs = append(errs, types.LintError{
			LineNumber: lineOrNil(open.line),
			ErrorType:  types.UnclosedTag,
			Message:    fmt.Sprintf("Unclosed '%s' tag", tag),
			Context:    open.raw,
			TagName:    open.tag,
			Suggestion: fmt.Sprintf("Add a {%% %s %%} tag to close this block", open.closer()),
		})
	}

	return errs
}

// checkNesting tracks block depth alongside the stream and reports a single
// NestedError at the point the configured threshold is first exceeded.
func checkNesting(tokens []types.TemplateToken, maxDepth int) []types.LintError {
	var errs []types.LintError
	var stack []string
	reported := false

	for _, tok := range tokens {
		switch tok.Kind {
		case types.BlockOpen:
			stack = append(stack, tok.TagName)
			if !reported && len(stack) > maxDepth {
				reported = true
				errs = append(errs, types.LintError{
					LineNumber: tok.Line(),
					ErrorType:  types.NestedError,
					Message:    fmt.Sprintf("Excessive nesting depth (%d) at '%s' tag", len(stack), tok.TagName),
					Context:    tok.RawText,
					TagName:    tok.TagName,
					Suggestion: "Consider breaking complex logic into smaller templates",
				})
			}
		case types.BlockClose:
			if len(stack) > 0 && stack[len(stack)-1] == tok.TagName {
				stack = stack[:len(stack)-1]
			}
		}
	}

	return errs
}

func lineOrNil(line int) *int {
	if line == types.LineUnknown {
		return nil
	}
	return &line
}
