package config

import (
	"fmt"
	"strings"

	"github.com/conneroisu/passforge/internal/composer"
	perrors "github.com/conneroisu/passforge/internal/errors"
	"github.com/conneroisu/passforge/internal/logging"
	"github.com/conneroisu/passforge/internal/persist"
	"github.com/conneroisu/passforge/internal/validation"
)

// ValidationResult holds the result of configuration validation
type ValidationResult struct {
	Valid    bool
	Errors   []*perrors.FieldValidationError
	Warnings []*perrors.FieldValidationError
}

// HasErrors returns true if there are any validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// HasWarnings returns true if there are any validation warnings
func (vr *ValidationResult) HasWarnings() bool {
	return len(vr.Warnings) > 0
}

// Err returns the errors as a single error, or nil.
func (vr *ValidationResult) Err() error {
	if !vr.HasErrors() {
		return nil
	}

	collection := &perrors.ValidationErrorCollection{}
	for _, err := range vr.Errors {
		collection.Add(err)
	}

	return collection.ToPassforgeError()
}

// String returns a formatted string of all validation issues
func (vr *ValidationResult) String() string {
	var builder strings.Builder

	if len(vr.Errors) > 0 {
		builder.WriteString("Validation Errors:\n")
		writeIssues(&builder, vr.Errors)
		builder.WriteString("\n")
	}

	if len(vr.Warnings) > 0 {
		builder.WriteString("Validation Warnings:\n")
		writeIssues(&builder, vr.Warnings)
	}

	return builder.String()
}

func writeIssues(builder *strings.Builder, issues []*perrors.FieldValidationError) {
	for _, issue := range issues {
		builder.WriteString(fmt.Sprintf("  • %s: %s\n", issue.FieldName, issue.ErrorMessage))
		for _, suggestion := range issue.HelpText {
			builder.WriteString(fmt.Sprintf("    - %s\n", suggestion))
		}
	}
}

func (vr *ValidationResult) addError(field string, value interface{}, message string, suggestions ...string) {
	vr.Errors = append(vr.Errors, perrors.NewFieldValidationError(field, value, message, suggestions...))
}

func (vr *ValidationResult) addWarning(field string, value interface{}, message string, suggestions ...string) {
	vr.Warnings = append(vr.Warnings, perrors.NewFieldValidationError(field, value, message, suggestions...))
}

// ValidateConfigWithDetails checks every field and reports errors and
// warnings with suggestions.
func ValidateConfigWithDetails(config *Config) *ValidationResult {
	result := &ValidationResult{}

	validateGenerateConfigDetails(&config.Generate, result)
	validateOutputConfigDetails(&config.Output, result)
	validateLogConfigDetails(&config.Log, result)

	result.Valid = !result.HasErrors()

	return result
}

// ValidateComposable additionally checks that the configured generation
// defaults form a request the composer would accept on their own.
func ValidateComposable(config *Config, result *ValidationResult) {
	req, err := config.Generate.Request()
	if err != nil {
		return // already reported by ValidateConfigWithDetails
	}

	if err := composer.Validate(req); err != nil {
		result.addError("generate", perrors.CodeOf(err), err.Error(), perrors.Suggestions(err)...)
		result.Valid = false
	}
}

func validateGenerateConfigDetails(config *GenerateConfig, result *ValidationResult) {
	if config.Length <= 0 {
		result.addError("generate.length", config.Length,
			fmt.Sprintf("length %d must be positive", config.Length),
			fmt.Sprintf("Use the default of %d", DefaultLength))
	}

	if _, err := config.ClassSet(); err != nil {
		result.addError("generate.classes", config.Classes, err.Error(), perrors.Suggestions(err)...)
	}

	if config.Seed != 0 {
		result.addWarning("generate.seed", config.Seed,
			"a fixed seed makes every generated password reproducible",
			"Leave generate.seed at 0 unless you need repeatable output")
	}
}

func validateOutputConfigDetails(config *OutputConfig, result *ValidationResult) {
	if !contains(OutputFormats, strings.ToLower(config.Format)) {
		result.addError("output.format", config.Format,
			fmt.Sprintf("unsupported output format %q", config.Format),
			"Supported formats: "+strings.Join(OutputFormats, ", "))
	}

	if config.Save != "" {
		format, err := persist.ParseFormat(config.Save)
		switch {
		case err != nil:
			result.addError("output.save", config.Save, err.Error(), "Use text or docx")
		case !format.IsFile():
			result.addError("output.save", config.Save,
				"output.save selects a file format",
				"Use output.clipboard to copy the password instead")
		}

		if err := validation.ValidatePath(config.File); err != nil {
			result.addError("output.file", config.File, err.Error(), perrors.Suggestions(err)...)
		}
	}
}

func validateLogConfigDetails(config *LogConfig, result *ValidationResult) {
	if _, err := logging.ParseLevel(config.Level); err != nil {
		result.addError("log.level", config.Level, err.Error())
	}

	if config.Format != "" && config.Format != "text" && config.Format != "json" {
		result.addError("log.format", config.Format,
			fmt.Sprintf("unsupported log format %q", config.Format),
			"Use text or json")
	}
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
