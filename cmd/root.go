// Package cmd provides the command-line interface for passforge with
// configuration management supporting multiple configuration sources.
//
// Configuration System:
//
//	The CLI supports flexible configuration through multiple sources with clear precedence:
//	1. Command-line flags (--length, --classes, etc.) - highest priority
//	2. Individual environment variables (PASSFORGE_GENERATE_LENGTH, etc.)
//	3. Configuration file (--config, PASSFORGE_CONFIG_FILE or .passforge.yml)
//	4. Built-in defaults - lowest priority
//
// Environment Variables:
//
//	PASSFORGE_CONFIG_FILE: Path to custom configuration file
//	PASSFORGE_GENERATE_LENGTH: Override the default password length
//	PASSFORGE_GENERATE_CLASSES: Override the default character classes
//	PASSFORGE_LOG_LEVEL: Override the log level
//	And the rest following the PASSFORGE_<SECTION>_<OPTION> pattern
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conneroisu/passforge/internal/config"
	"github.com/conneroisu/passforge/internal/logging"
	"github.com/conneroisu/passforge/internal/persist"
)

var cfgFile string

// newStore builds the persistence store used by commands. Tests replace it
// to keep the system clipboard out of the picture.
var newStore = persist.NewStore

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "passforge",
	Short: "Generate passwords from composition rules",
	Long: `Passforge generates randomized passwords from composition rules and saves
them to a text file, a Word document or the clipboard.

Composition rules:
  • Total length in characters
  • Character classes to draw from (upper, lower, digit, symbol)
  • A fixed prefix placed at the start
  • Required text spliced in at a random position
  • Characters that must never be drawn

Quick Start:
  passforge generate                      Generate a password with the defaults
  passforge generate -n 24 -c lower,digit Lowercase letters and digits only
  passforge generate --save docx --file vault
  passforge interactive                   Answer questions step by step

Command Aliases (for faster typing):
  generate (gen, g), interactive (i, m)`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .passforge.yml, can also use PASSFORGE_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "", "log level (debug, info, warn, error)")
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig initializes the configuration system with support for multiple config sources.
//
// Configuration Loading Priority (highest to lowest):
//  1. --config flag: Explicitly specified config file path
//  2. PASSFORGE_CONFIG_FILE environment variable: Custom config file path
//  3. Default: .passforge.yml in current directory
//
// A missing config file is not an error; defaults apply.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("PASSFORGE_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".passforge")
	}

	viper.SetEnvPrefix("PASSFORGE")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig decodes the resolved configuration and builds a logger from its
// log section. The --log-level flag wins over the configured level. The
// configuration is not validated here; callers validate once their own flags
// have been applied.
func loadConfig(cmd *cobra.Command) (*config.Config, *logging.PassforgeLogger, error) {
	cfg, err := config.Decode()
	if err != nil {
		return nil, nil, err
	}

	if flag := cmd.Flags().Lookup("log-level"); flag != nil && flag.Changed {
		cfg.Log.Level = flag.Value.String()
	}

	logCfg, err := cfg.Log.LoggerConfig()
	if err != nil {
		return nil, nil, err
	}
	logCfg.Output = cmd.ErrOrStderr()

	return cfg, logging.NewLogger(logCfg), nil
}
