package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perrors "github.com/conneroisu/passforge/internal/errors"
)

func validConfig() *Config {
	return &Config{
		Generate: GenerateConfig{Length: 16, Classes: DefaultClasses},
		Output:   OutputConfig{Format: "text", File: DefaultFile},
		Log:      LogConfig{Level: "warn", Format: "text"},
	}
}

func TestValidateConfigWithDetails(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		errors   []string
		warnings []string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:   "bad length",
			mutate: func(c *Config) { c.Generate.Length = -3 },
			errors: []string{"generate.length"},
		},
		{
			name:   "bad class",
			mutate: func(c *Config) { c.Generate.Classes = []string{"upper", "kanji"} },
			errors: []string{"generate.classes"},
		},
		{
			name:   "bad output format",
			mutate: func(c *Config) { c.Output.Format = "xml" },
			errors: []string{"output.format"},
		},
		{
			name: "bad save format and path",
			mutate: func(c *Config) {
				c.Output.Save = "pdf"
				c.Output.File = "/etc/pw"
			},
			errors: []string{"output.save", "output.file"},
		},
		{
			name:   "bad log settings",
			mutate: func(c *Config) { c.Log = LogConfig{Level: "loud", Format: "xml"} },
			errors: []string{"log.level", "log.format"},
		},
		{
			name:     "seed warning",
			mutate:   func(c *Config) { c.Generate.Seed = 7 },
			warnings: []string{"generate.seed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			result := ValidateConfigWithDetails(cfg)

			var gotErrors, gotWarnings []string
			for _, e := range result.Errors {
				gotErrors = append(gotErrors, e.Field())
			}
			for _, w := range result.Warnings {
				gotWarnings = append(gotWarnings, w.Field())
			}

			assert.Equal(t, tt.errors, gotErrors)
			assert.Equal(t, tt.warnings, gotWarnings)
			assert.Equal(t, len(tt.errors) == 0, result.Valid)
		})
	}
}

func TestValidationResultErr(t *testing.T) {
	result := ValidateConfigWithDetails(validConfig())
	assert.NoError(t, result.Err())

	cfg := validConfig()
	cfg.Generate.Length = 0
	cfg.Output.Format = "xml"
	result = ValidateConfigWithDetails(cfg)

	err := result.Err()
	require.Error(t, err)
	assert.Equal(t, perrors.ErrCodeValidationFailed, perrors.CodeOf(err))

	out := result.String()
	assert.Contains(t, out, "Validation Errors:")
	assert.Contains(t, out, "generate.length")
	assert.Contains(t, out, "output.format")
}

func TestValidateComposable(t *testing.T) {
	cfg := validConfig()
	cfg.Generate.Length = 3
	cfg.Generate.Prefix = "abcd"

	result := ValidateConfigWithDetails(cfg)
	require.False(t, result.HasErrors())

	ValidateComposable(cfg, result)
	require.True(t, result.HasErrors())
	assert.False(t, result.Valid)
	assert.Equal(t, "generate", result.Errors[0].Field())
	assert.Equal(t, perrors.ErrCodePrefixTooLong, result.Errors[0].Value())
	assert.NotEmpty(t, result.Errors[0].Suggestions())
}
