package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/passforge/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect passforge configuration",
	Long: `Inspect passforge configuration files and settings.

This command provides subcommands for:
- Showing the configuration resolved from all sources
- Validating a configuration file

Passforge never writes configuration; edit .passforge.yml by hand.

Examples:
  passforge config show                  # Show current configuration
  passforge config show --format json    # Show as JSON
  passforge config validate              # Validate .passforge.yml
  passforge config validate --file team.yml`,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long: `Validate a passforge configuration file.

This command checks for:
- Proper data types
- Known character classes and output formats
- A save file name that stays inside the working directory
- Generation defaults that can actually produce a password

Examples:
  passforge config validate                   # Validate .passforge.yml in current directory
  passforge config validate --file config.yml # Validate specific file
  passforge config validate --strict          # Treat warnings as errors`,
	Args: cobra.NoArgs,
	RunE: runConfigValidate,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Display the current passforge configuration including all resolved values.

This shows the final configuration after:
- Loading from configuration file
- Applying environment variable overrides
- Setting default values

Examples:
  passforge config show                  # Show all configuration
  passforge config show --format yaml    # Show in YAML format
  passforge config show --format json    # Show in JSON format`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var (
	configFile   string
	configFormat string
	configStrict bool
)

// defaultConfigFile is the file looked up in the working directory.
const defaultConfigFile = ".passforge.yml"

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configShowCmd)

	configValidateCmd.Flags().
		StringVarP(&configFile, "file", "f", "", "Configuration file to validate (default: .passforge.yml)")
	configValidateCmd.Flags().BoolVar(&configStrict, "strict", false, "Treat warnings as errors")

	configShowCmd.Flags().StringVar(&configFormat, "format", "yaml", "Output format (yaml, json)")
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	targetFile := configFile
	if targetFile == "" {
		if _, err := os.Stat(defaultConfigFile); err != nil {
			return errors.New("no configuration file found. Use --file to specify a config file")
		}
		targetFile = defaultConfigFile
	}

	if _, err := os.Stat(targetFile); os.IsNotExist(err) {
		return fmt.Errorf("configuration file %s does not exist", targetFile)
	}

	fmt.Fprintf(out, "Validating configuration file: %s\n", targetFile)

	// A private viper keeps the file under test away from the global state.
	v := viper.New()
	v.SetConfigFile(targetFile)

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read configuration file: %w", err)
	}

	cfg, err := config.DecodeFrom(v)
	if err != nil {
		return fmt.Errorf("failed to parse configuration: %w", err)
	}

	result := config.ValidateConfigWithDetails(cfg)
	if !result.HasErrors() {
		config.ValidateComposable(cfg, result)
	}

	if result.Valid && !result.HasWarnings() {
		fmt.Fprintln(out, "Configuration is valid.")
		return nil
	}

	fmt.Fprint(out, result.String())

	if result.HasErrors() {
		return fmt.Errorf("configuration validation failed with %d errors", len(result.Errors))
	}

	if configStrict {
		return fmt.Errorf("configuration validation failed in strict mode with %d warnings", len(result.Warnings))
	}

	fmt.Fprintf(out, "Configuration is valid with %d warnings. Use --strict to treat warnings as errors.\n", len(result.Warnings))

	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	out := cmd.OutOrStdout()

	switch strings.ToLower(configFormat) {
	case "yaml", "yml":
		fmt.Fprintln(out, "# Resolved from all sources (file, env vars, defaults)")
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(2)
		defer encoder.Close()
		return encoder.Encode(cfg)
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(cfg)
	default:
		return fmt.Errorf("unsupported format: %s (supported: yaml, json)", configFormat)
	}
}
