// Package types provides type definitions for structured data used throughout the docxlint system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// LintOptions configures linting behavior for a single invocation.
// The zero value is not usable; start from DefaultLintOptions.
type LintOptions struct {
	Verbose              bool `json:"verbose"`                                    // Include the full extracted text in the result
	CheckUndefinedVars   bool `json:"check_undefined_vars"`                       // Cross-reference variables against the data key set
	MaxLineLength        int  `json:"max_line_length" validate:"min=1"`           // Threshold for long-line warnings
	FailOnWarnings       bool `json:"fail_on_warnings"`                           // Success requires zero warnings too
	CheckTagMatching     bool `json:"check_tag_matching"`                         // Run the stack-based tag matcher
	CheckNestedStructure bool `json:"check_nested_structure"`                     // Run the nesting-depth pass
	MaxNestingDepth      int  `json:"max_nesting_depth" validate:"min=1,max=100"` // Depth above which NestedError is emitted
}

// DefaultLintOptions returns the default linting configuration.
func DefaultLintOptions() LintOptions {
	return LintOptions{
		Verbose:              false,
		CheckUndefinedVars:   true,
		MaxLineLength:        200,
		FailOnWarnings:       false,
		CheckTagMatching:     true,
		CheckNestedStructure: true,
		MaxNestingDepth:      10,
	}
}
