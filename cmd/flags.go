package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/conneroisu/passforge/internal/composer"
	"github.com/conneroisu/passforge/internal/config"
	perrors "github.com/conneroisu/passforge/internal/errors"
	"github.com/conneroisu/passforge/internal/persist"
)

// AddFlagValidation adds validation for a specific flag
func AddFlagValidation(cmd *cobra.Command, flagName string, validator func(string) error) {
	flag := cmd.Flags().Lookup(flagName)
	if flag == nil {
		return
	}

	// Store original value setter
	originalSet := flag.Value.Set

	// Create wrapper that validates
	flag.Value = &validatingValue{
		Value:       flag.Value,
		validator:   validator,
		originalSet: originalSet,
	}
}

type validatingValue struct {
	pflag.Value
	validator   func(string) error
	originalSet func(string) error
}

func (v *validatingValue) Set(val string) error {
	if v.validator != nil {
		if err := v.validator(val); err != nil {
			return err
		}
	}
	return v.originalSet(val)
}

// ValidateLength checks a --length value.
func ValidateLength(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return perrors.WrapValidation(err, perrors.ErrCodeInvalidLength, "invalid length: "+s)
	}

	if n <= 0 {
		return perrors.NewValidationError(perrors.ErrCodeInvalidLength,
			fmt.Sprintf("length must be at least 1, got %d", n)).WithContext("length", n)
	}

	return nil
}

// ValidateClasses checks a --classes value such as "upper,digit".
func ValidateClasses(s string) error {
	_, err := composer.ParseClasses([]string{s})
	return err
}

// ValidateSaveFormat checks a --save value. Only file formats are accepted;
// the clipboard has its own flag.
func ValidateSaveFormat(s string) error {
	if s == "" {
		return nil
	}

	format, err := persist.ParseFormat(s)
	if err != nil {
		return err
	}

	if !format.IsFile() {
		return perrors.NewValidationError(perrors.ErrCodeUnknownFormat,
			fmt.Sprintf("--save takes a file format (text, docx); use --clipboard for %s", format)).
			WithContext("format", s)
	}

	return nil
}

// ValidateOutputFormat checks an --output value.
func ValidateOutputFormat(s string) error {
	for _, f := range config.OutputFormats {
		if strings.EqualFold(s, f) {
			return nil
		}
	}

	return perrors.ErrUnknownFormat(s, config.OutputFormats)
}
