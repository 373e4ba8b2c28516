// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/docxtools/docxlint/internal/types"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Template string `json:"template,omitempty"` // Path to the docx template
	Data     string `json:"data,omitempty"`     // Path to the data-context JSON file

	// Lint behavior
	Verbose              bool  `json:"verbose,omitempty"`                // Include full extracted text in results
	FailOnWarnings       bool  `json:"fail_on_warnings,omitempty"`       // Treat warnings as failures
	CheckUndefinedVars   *bool `json:"check_undefined_vars,omitempty"`   // Cross-reference variables against data (default on)
	CheckTagMatching     *bool `json:"check_tag_matching,omitempty"`     // Run the tag matcher (default on)
	CheckNestedStructure *bool `json:"check_nested_structure,omitempty"` // Run the nesting-depth pass (default on)
	MaxLineLength        int   `json:"max_line_length,omitempty" validate:"omitempty,min=1"`
	MaxNestingDepth      int   `json:"max_nesting_depth,omitempty" validate:"omitempty,min=1,max=100"`

	// Output
	ReportFormat string `json:"report_format,omitempty" validate:"omitempty,oneof=json markdown html"`

	// Rendering
	UndefinedMode string `json:"undefined_mode,omitempty" validate:"omitempty,oneof=silent marker strict"`
}

var validate = validator.New()

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			return fmt.Errorf("config error: field '%s' failed '%s' validation", first.Field(), first.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}

	// Validate file paths exist (if specified)
	if c.Template != "" {
		if _, err := os.Stat(c.Template); os.IsNotExist(err) {
			return fmt.Errorf("config error: template file not found: %s", c.Template)
		}
	}
	if c.Data != "" {
		if _, err := os.Stat(c.Data); os.IsNotExist(err) {
			return fmt.Errorf("config error: data file not found: %s", c.Data)
		}
	}

	return nil
}

// LintOptions converts the configuration into lint options, filling
// everything unset from the defaults.
func (c *Config) LintOptions() types.LintOptions {
	opts := types.DefaultLintOptions()
	opts.Verbose = c.Verbose
	opts.FailOnWarnings = c.FailOnWarnings
	if c.CheckUndefinedVars != nil {
		opts.CheckUndefinedVars = *c.CheckUndefinedVars
	}
	if c.CheckTagMatching != nil {
		opts.CheckTagMatching = *c.CheckTagMatching
	}
	if c.CheckNestedStructure != nil {
		opts.CheckNestedStructure = *c.CheckNestedStructure
	}
	if c.MaxLineLength > 0 {
		opts.MaxLineLength = c.MaxLineLength
	}
	if c.MaxNestingDepth > 0 {
		opts.MaxNestingDepth = c.MaxNestingDepth
	}
	return opts
}

// MergeWithDefaults returns a new Config with unset fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.Data == "" {
		result.Data = defaults.Data
	}
	if result.ReportFormat == "" {
		result.ReportFormat = defaults.ReportFormat
	}
	if result.UndefinedMode == "" {
		result.UndefinedMode = defaults.UndefinedMode
	}

	// Toggle fields: nil means unset, so defaults can say "on"
	if result.CheckUndefinedVars == nil {
		result.CheckUndefinedVars = defaults.CheckUndefinedVars
	}
	if result.CheckTagMatching == nil {
		result.CheckTagMatching = defaults.CheckTagMatching
	}
	if result.CheckNestedStructure == nil {
		result.CheckNestedStructure = defaults.CheckNestedStructure
	}

	// Int fields: use default if zero
	if result.MaxLineLength == 0 {
		result.MaxLineLength = defaults.MaxLineLength
	}
	if result.MaxNestingDepth == 0 {
		result.MaxNestingDepth = defaults.MaxNestingDepth
	}

	// Plain bool fields: cannot distinguish unset from false, so we don't
	// merge (CLI flags should always win for bools)

	return result
}
