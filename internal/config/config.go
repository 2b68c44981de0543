// Package config provides configuration management for passforge using
// Viper for flexible loading from files, environment variables, and
// command-line flags.
//
// The configuration supplies defaults for the composition rules (length,
// character classes, prefix, required text, exclusions), for how results are
// printed and saved, and for logging. Values are read from .passforge.yml and
// PASSFORGE_* environment variables; nothing is ever written back.
package config

import (
	"github.com/spf13/viper"
	"golang.org/x/text/unicode/norm"

	"github.com/conneroisu/passforge/internal/composer"
	perrors "github.com/conneroisu/passforge/internal/errors"
	"github.com/conneroisu/passforge/internal/logging"
)

type Config struct {
	Generate GenerateConfig `yaml:"generate" json:"generate" mapstructure:"generate"`
	Output   OutputConfig   `yaml:"output" json:"output" mapstructure:"output"`
	Log      LogConfig      `yaml:"log" json:"log" mapstructure:"log"`
}

type GenerateConfig struct {
	Length      int      `yaml:"length" json:"length" mapstructure:"length"`
	Classes     []string `yaml:"classes" json:"classes" mapstructure:"classes"`
	Prefix      string   `yaml:"prefix" json:"prefix" mapstructure:"prefix"`
	MustInclude string   `yaml:"must_include" json:"must_include" mapstructure:"must_include"`
	Exclude     string   `yaml:"exclude" json:"exclude" mapstructure:"exclude"`
	// Seed makes generation reproducible. Zero selects the crypto source.
	Seed uint64 `yaml:"seed" json:"seed" mapstructure:"seed"`
}

type OutputConfig struct {
	// Format controls how the result is printed: text, json or yaml.
	Format string `yaml:"format" json:"format" mapstructure:"format"`
	// Save selects a file format to save to: "", text or docx.
	Save      string `yaml:"save" json:"save" mapstructure:"save"`
	File      string `yaml:"file" json:"file" mapstructure:"file"`
	Clipboard bool   `yaml:"clipboard" json:"clipboard" mapstructure:"clipboard"`
}

type LogConfig struct {
	Level  string `yaml:"level" json:"level" mapstructure:"level"`
	Format string `yaml:"format" json:"format" mapstructure:"format"`
}

// Defaults used when neither a file, the environment nor a flag sets a value.
const (
	DefaultLength       = 16
	DefaultOutputFormat = "text"
	DefaultFile         = "password"
	DefaultLogLevel     = "warn"
	DefaultLogFormat    = "text"
)

// DefaultClasses enables every character class.
var DefaultClasses = []string{"upper", "lower", "digit", "symbol"}

// OutputFormats lists the formats a result can be printed in.
var OutputFormats = []string{"text", "json", "yaml"}

// SetDefaults registers default values with v. Explicitly set values always
// win over these.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("generate.length", DefaultLength)
	v.SetDefault("generate.classes", DefaultClasses)
	v.SetDefault("generate.prefix", "")
	v.SetDefault("generate.must_include", "")
	v.SetDefault("generate.exclude", "")
	v.SetDefault("generate.seed", 0)

	v.SetDefault("output.format", DefaultOutputFormat)
	v.SetDefault("output.save", "")
	v.SetDefault("output.file", DefaultFile)
	v.SetDefault("output.clipboard", false)

	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)
}

// Decode reads the configuration viper has gathered and applies defaults
// without validating it. Commands that still apply flag overrides decode
// first and validate the merged result.
func Decode() (*Config, error) {
	return decode(viper.GetViper())
}

// DecodeFrom is Decode for a viper instance other than the global one.
func DecodeFrom(v *viper.Viper) (*Config, error) {
	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, perrors.WrapConfig(err, perrors.ErrCodeConfigInvalid, "failed to decode configuration")
	}

	// Handle classes set as a single string via viper (workaround for viper slice handling)
	if v.IsSet("generate.classes") && len(config.Generate.Classes) == 0 {
		config.Generate.Classes = v.GetStringSlice("generate.classes")
	}

	return &config, nil
}

// Load decodes the configuration and validates the result.
func Load() (*Config, error) {
	config, err := Decode()
	if err != nil {
		return nil, err
	}

	if result := ValidateConfigWithDetails(config); result.HasErrors() {
		return nil, perrors.WrapConfig(result.Err(), perrors.ErrCodeConfigInvalid, "invalid configuration")
	}

	return config, nil
}

// ClassSet parses the configured character classes.
func (g GenerateConfig) ClassSet() (composer.ClassSet, error) {
	return composer.ParseClasses(g.Classes)
}

// Request builds a composition request from the configured defaults. Text
// fields are normalized to NFC so that lengths are counted the same way no
// matter how the input was typed.
func (g GenerateConfig) Request() (composer.Request, error) {
	classes, err := g.ClassSet()
	if err != nil {
		return composer.Request{}, err
	}

	return composer.Request{
		Length:      g.Length,
		Classes:     classes,
		Prefix:      Normalize(g.Prefix),
		MustInclude: Normalize(g.MustInclude),
		Exclude:     Normalize(g.Exclude),
	}, nil
}

// Normalize returns s in Unicode normalization form C.
func Normalize(s string) string {
	return norm.NFC.String(s)
}

// LoggerConfig converts the log section into a logger configuration.
func (l LogConfig) LoggerConfig() (*logging.LoggerConfig, error) {
	level, err := logging.ParseLevel(l.Level)
	if err != nil {
		return nil, err
	}

	cfg := logging.DefaultConfig()
	cfg.Level = level
	if l.Format != "" {
		cfg.Format = l.Format
	}

	return cfg, nil
}
