package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/passforge/internal/composer"
	"github.com/conneroisu/passforge/internal/config"
	perrors "github.com/conneroisu/passforge/internal/errors"
	"github.com/conneroisu/passforge/internal/logging"
	"github.com/conneroisu/passforge/internal/persist"
	"github.com/conneroisu/passforge/internal/random"
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen", "g"},
	Short:   "Generate a password",
	Long: `Generate a password from composition rules and optionally save it.

Flags default to the values in the configuration file and PASSFORGE_*
environment variables; any flag given on the command line wins.

Examples:
  passforge generate                           # Use the configured defaults
  passforge generate -n 20 -c upper,lower      # Letters only
  passforge generate --prefix ab- --include 2024
  passforge generate --exclude 0O1lI           # Avoid look-alike characters
  passforge generate --save text --file pw     # Write pw.txt
  passforge generate --clipboard -o json       # Copy and print as JSON`,
	Args: cobra.NoArgs,
	RunE: runGenerateCommand,
}

var (
	genLength    int
	genClasses   string
	genPrefix    string
	genInclude   string
	genExclude   string
	genSeed      uint64
	genSave      string
	genFile      string
	genClipboard bool
	genOutput    string
)

func init() {
	rootCmd.AddCommand(generateCmd)

	flags := generateCmd.Flags()
	flags.IntVarP(&genLength, "length", "n", config.DefaultLength, "Password length in characters")
	flags.StringVarP(&genClasses, "classes", "c", strings.Join(config.DefaultClasses, ","), "Character classes (upper, lower, digit, symbol, all)")
	flags.StringVar(&genPrefix, "prefix", "", "Fixed text at the start of the password")
	flags.StringVar(&genInclude, "include", "", "Text that must appear in the password")
	flags.StringVar(&genExclude, "exclude", "", "Characters that must not be drawn")
	flags.Uint64Var(&genSeed, "seed", 0, "Seed for reproducible output (0 uses the system random source)")
	flags.StringVar(&genSave, "save", "", "Save to a file (text, docx)")
	flags.StringVar(&genFile, "file", config.DefaultFile, "File name to save to; the extension is added when missing")
	flags.BoolVar(&genClipboard, "clipboard", false, "Copy the password to the clipboard")
	flags.StringVarP(&genOutput, "output", "o", config.DefaultOutputFormat, "Output format (text, json, yaml)")

	AddFlagValidation(generateCmd, "length", ValidateLength)
	AddFlagValidation(generateCmd, "classes", ValidateClasses)
	AddFlagValidation(generateCmd, "save", ValidateSaveFormat)
	AddFlagValidation(generateCmd, "output", ValidateOutputFormat)
}

// generateOutput is the machine-readable rendering of a generated password.
type generateOutput struct {
	Password     string   `json:"password" yaml:"password"`
	Length       int      `json:"length" yaml:"length"`
	Classes      []string `json:"classes" yaml:"classes"`
	AlphabetSize int      `json:"alphabet_size" yaml:"alphabet_size"`
	InsertAt     *int     `json:"insert_at,omitempty" yaml:"insert_at,omitempty"`
	Saved        []string `json:"saved,omitempty" yaml:"saved,omitempty"`
}

func runGenerateCommand(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	applyGenerateFlags(cmd, cfg)

	if err := generate(ctx, cmd, cfg, logger); err != nil {
		perrors.NewErrorHandler(logger.WithComponent("generate")).Handle(ctx, err)
		return err
	}

	return nil
}

func generate(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *logging.PassforgeLogger) error {
	if result := config.ValidateConfigWithDetails(cfg); result.HasErrors() {
		return result.Err()
	}

	req, err := cfg.Generate.Request()
	if err != nil {
		return err
	}

	op := logger.StartOperation("generate")

	result, err := composer.Compose(req, random.New(cfg.Generate.Seed))
	if err != nil {
		op.EndWithError(ctx, err)
		return err
	}
	op.End(ctx,
		"length", req.Length,
		"classes", req.Classes.String(),
		"fill", req.FillLength(),
		"seeded", cfg.Generate.Seed != 0,
	)

	saved, err := newStore(logger).PersistAll(ctx, result.Password, destinations(cfg.Output)...)
	if err != nil {
		return err
	}

	if err := renderResult(cmd.OutOrStdout(), cfg.Output.Format, req, result, saved); err != nil {
		return err
	}

	if strings.EqualFold(cfg.Output.Format, "text") {
		reportSaved(cmd.ErrOrStderr(), saved)
	}

	return nil
}

// applyGenerateFlags copies explicitly set flags over the loaded
// configuration.
func applyGenerateFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	if flags.Changed("length") {
		cfg.Generate.Length = genLength
	}
	if flags.Changed("classes") {
		cfg.Generate.Classes = []string{genClasses}
	}
	if flags.Changed("prefix") {
		cfg.Generate.Prefix = genPrefix
	}
	if flags.Changed("include") {
		cfg.Generate.MustInclude = genInclude
	}
	if flags.Changed("exclude") {
		cfg.Generate.Exclude = genExclude
	}
	if flags.Changed("seed") {
		cfg.Generate.Seed = genSeed
	}
	if flags.Changed("save") {
		cfg.Output.Save = genSave
	}
	if flags.Changed("file") {
		cfg.Output.File = genFile
	}
	if flags.Changed("clipboard") {
		cfg.Output.Clipboard = genClipboard
	}
	if flags.Changed("output") {
		cfg.Output.Format = strings.ToLower(genOutput)
	}
}

// destinations lists where the output section asks a password to go. The
// clipboard comes first, then the file.
func destinations(out config.OutputConfig) []persist.Destination {
	var dests []persist.Destination

	if out.Clipboard {
		dests = append(dests, persist.Destination{Format: persist.FormatClipboard})
	}

	if out.Save != "" {
		// already validated by config
		format, _ := persist.ParseFormat(out.Save)
		dests = append(dests, persist.Destination{Path: out.File, Format: format})
	}

	return dests
}

func renderResult(w io.Writer, format string, req composer.Request, result composer.Result, saved []string) error {
	out := generateOutput{
		Password:     result.Password,
		Length:       req.Length,
		Classes:      req.Classes.Names(),
		AlphabetSize: len(result.Alphabet),
		Saved:        saved,
	}
	if req.MustInclude != "" {
		at := result.InsertAt
		out.InsertAt = &at
	}

	switch strings.ToLower(format) {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(out)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		defer encoder.Close()
		return encoder.Encode(out)
	default:
		_, err := fmt.Fprintln(w, result.Password)
		return err
	}
}

// reportSaved tells the user where the password went.
func reportSaved(w io.Writer, saved []string) {
	for _, location := range saved {
		if location == persist.ClipboardLocation {
			fmt.Fprintln(w, "Password copied to the clipboard.")
			continue
		}
		fmt.Fprintf(w, "Password saved to %s.\n", location)
	}
}
