package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestLoadConfig_ValidJSON(t *testing.T) {
	// Create temp config file
	content := `{
		"data": "context.json",
		"max_line_length": 120,
		"check_undefined_vars": false,
		"report_format": "markdown",
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "context.json", cfg.Data)
	assert.Equal(t, 120, cfg.MaxLineLength)
	require.NotNil(t, cfg.CheckUndefinedVars)
	assert.False(t, *cfg.CheckUndefinedVars)
	assert.Equal(t, "markdown", cfg.ReportFormat)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate_NegativeLineLength(t *testing.T) {
	cfg := &Config{
		MaxLineLength: -1,
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "MaxLineLength")
}

func TestValidate_NestingDepthTooLarge(t *testing.T) {
	cfg := &Config{
		MaxNestingDepth: 500,
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "MaxNestingDepth")
}

func TestValidate_BadReportFormat(t *testing.T) {
	cfg := &Config{
		ReportFormat: "pdf",
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ReportFormat")
}

func TestValidate_BadUndefinedMode(t *testing.T) {
	cfg := &Config{
		UndefinedMode: "loud",
	}

	err := cfg.Validate()
	assert.Error(t, err)
}

func TestValidate_MissingTemplateFile(t *testing.T) {
	cfg := &Config{
		Template: "/nonexistent/template.docx",
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "template file not found")
}

func TestValidate_MissingDataFile(t *testing.T) {
	cfg := &Config{
		Data: "/nonexistent/context.json",
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "data file not found")
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		MaxLineLength:   150,
		MaxNestingDepth: 8,
		ReportFormat:    "html",
		UndefinedMode:   "strict",
	}

	err := cfg.Validate()
	assert.NoError(t, err)
}

func TestLintOptions_Defaults(t *testing.T) {
	cfg := &Config{}

	opts := cfg.LintOptions()
	assert.Equal(t, 200, opts.MaxLineLength)
	assert.Equal(t, 10, opts.MaxNestingDepth)
	assert.True(t, opts.CheckUndefinedVars)
	assert.True(t, opts.CheckTagMatching)
	assert.True(t, opts.CheckNestedStructure)
	assert.False(t, opts.Verbose)
	assert.False(t, opts.FailOnWarnings)
}

func TestLintOptions_Overrides(t *testing.T) {
	cfg := &Config{
		Verbose:              true,
		FailOnWarnings:       true,
		CheckUndefinedVars:   boolPtr(false),
		CheckNestedStructure: boolPtr(false),
		MaxLineLength:        80,
		MaxNestingDepth:      5,
	}

	opts := cfg.LintOptions()
	assert.True(t, opts.Verbose)
	assert.True(t, opts.FailOnWarnings)
	assert.False(t, opts.CheckUndefinedVars)
	assert.True(t, opts.CheckTagMatching)
	assert.False(t, opts.CheckNestedStructure)
	assert.Equal(t, 80, opts.MaxLineLength)
	assert.Equal(t, 5, opts.MaxNestingDepth)
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		Template:         "default.docx",
		Data:             "default_context.json",
		ReportFormat:     "markdown",
		MaxLineLength:    150,
		CheckTagMatching: boolPtr(false),
	}

	partial := Config{
		Template:      "custom.docx",
		UndefinedMode: "strict",
	}

	merged := partial.MergeWithDefaults(defaults)

	// Custom values should be preserved
	assert.Equal(t, "custom.docx", merged.Template)
	assert.Equal(t, "strict", merged.UndefinedMode)

	// Default values should fill in empty fields
	assert.Equal(t, "default_context.json", merged.Data)
	assert.Equal(t, "markdown", merged.ReportFormat)
	assert.Equal(t, 150, merged.MaxLineLength)
	require.NotNil(t, merged.CheckTagMatching)
	assert.False(t, *merged.CheckTagMatching)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{
		Template: "template.docx",
		Data:     "context.json",
	}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "template.docx", merged.Template)
	assert.Equal(t, "context.json", merged.Data)
	assert.Nil(t, merged.CheckUndefinedVars)
}
