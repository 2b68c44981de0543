package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/conneroisu/passforge/internal/composer"
	"github.com/conneroisu/passforge/internal/config"
	perrors "github.com/conneroisu/passforge/internal/errors"
	"github.com/conneroisu/passforge/internal/logging"
	"github.com/conneroisu/passforge/internal/persist"
	"github.com/conneroisu/passforge/internal/random"
	"github.com/conneroisu/passforge/internal/validation"
)

// interactiveCmd walks the user through building a password step by step.
var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"i", "m"},
	Short:   "Build a password by answering questions",
	Long: `Ask for the password length, the character classes and one optional rule
(a prefix, required text or excluded characters), then generate a password.
Afterwards the password can be saved to a text file, a Word document, the
clipboard, or the clipboard and a file, or regenerated with new conditions.

Pressing Enter accepts the default shown in brackets. Defaults come from the
configuration file and are refreshed when it changes during the session.`,
	Args: cobra.NoArgs,
	RunE: runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// Configured values only seed the prompt defaults, so a bad one is
	// reported and the user gets to answer instead.
	if result := config.ValidateConfigWithDetails(cfg); result.HasErrors() {
		logger.Warn(context.Background(), result.Err(), "Configuration has invalid defaults")
	}

	session := NewSession(
		cmd.InOrStdin(),
		cmd.OutOrStdout(),
		newStore(logger),
		random.New(cfg.Generate.Seed),
		cfg.Generate,
		logger,
	)

	config.Watch(func(updated *config.Config, err error) {
		if err != nil {
			logger.Warn(context.Background(), err, "Ignoring invalid configuration change")
			return
		}
		session.SetDefaults(updated.Generate)
		logger.Info(context.Background(), "Configuration reloaded")
	})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	return session.Run(ctx)
}

// Extra rule choices offered after the character classes.
const (
	optionPrefix = iota + 1
	optionMustInclude
	optionExclude
	optionNone
)

// Save choices offered after a password was generated.
const (
	saveText = iota + 1
	saveDocx
	saveClipboard
	saveClipboardAndFile
)

var classDescriptions = map[composer.Class]string{
	composer.Upper:  "uppercase letters",
	composer.Lower:  "lowercase letters",
	composer.Digit:  "digits",
	composer.Symbol: "symbols",
}

// Session is one interactive run. Each cycle asks for the conditions, builds
// a fresh composer.Request from the answers and generates from it.
type Session struct {
	in     *bufio.Reader
	out    io.Writer
	store  *persist.Store
	source random.Source
	logger logging.Logger
	title  cases.Caser

	mu       sync.Mutex
	defaults config.GenerateConfig
}

// NewSession creates a session reading answers from in and writing prompts
// to out.
func NewSession(
	in io.Reader,
	out io.Writer,
	store *persist.Store,
	source random.Source,
	defaults config.GenerateConfig,
	logger logging.Logger,
) *Session {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	return &Session{
		in:       bufio.NewReader(in),
		out:      out,
		store:    store,
		source:   source,
		logger:   logger.WithComponent("interactive"),
		title:    cases.Title(language.English),
		defaults: defaults,
	}
}

// SetDefaults replaces the defaults offered by the following prompts. It is
// safe to call while Run is waiting for input.
func (s *Session) SetDefaults(defaults config.GenerateConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaults = defaults
}

func (s *Session) currentDefaults() config.GenerateConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.defaults
}

// Run drives the session until a password was saved or the user declines.
func (s *Session) Run(ctx context.Context) error {
	ok, err := s.confirm("Generate a password?", true)
	if err != nil {
		return err
	}
	if !ok {
		s.println("Exiting.")
		return nil
	}

	req, err := s.askConditions()
	if err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		result, err := composer.Compose(req, s.source)
		if err != nil {
			if !perrors.IsRecoverable(err) {
				return err
			}
			s.logger.Debug(ctx, "Conditions rejected", "error_context", perrors.GetErrorContext(err))
			s.println(perrors.FormatErrorWithSuggestions(err))
			s.println("Please enter the conditions again.")
			if req, err = s.askConditions(); err != nil {
				return err
			}
			continue
		}

		s.printf("Generated password: %s\n", result.Password)

		done, err := s.afterGenerate(ctx, result.Password)
		if err != nil {
			return err
		}
		if done {
			return nil
		}

		if req, err = s.askConditions(); err != nil {
			return err
		}
	}
}

// afterGenerate offers to save or regenerate. It reports true once the
// password was saved.
func (s *Session) afterGenerate(ctx context.Context, password string) (bool, error) {
	for {
		choice, err := s.choose("Choose an action:\n1: Save the password\n2: Regenerate\nChoice: ", 1, 2)
		if err != nil {
			return false, err
		}

		if choice == 2 {
			return false, nil
		}

		if err := s.save(ctx, password); err != nil {
			s.println(perrors.FormatErrorWithSuggestions(err))
			continue
		}
		return true, nil
	}
}

func (s *Session) save(ctx context.Context, password string) error {
	method, err := s.choose("Choose how to save the password:\n"+
		"1: Save as .txt\n"+
		"2: Save as .docx\n"+
		"3: Copy to the clipboard\n"+
		"4: Copy to the clipboard and save as .txt or .docx\n"+
		"Choice: ", saveText, saveClipboardAndFile)
	if err != nil {
		return err
	}

	var dests []persist.Destination
	if method == saveClipboard || method == saveClipboardAndFile {
		dests = append(dests, persist.Destination{Format: persist.FormatClipboard})
	}

	if method != saveClipboard {
		name, err := s.ask(fmt.Sprintf("File name (e.g. mypassword) [%s]: ", config.DefaultFile))
		if err != nil {
			return err
		}
		if name == "" {
			name = config.DefaultFile
		}

		format := persist.FormatText
		switch method {
		case saveDocx:
			format = persist.FormatDocx
		case saveClipboardAndFile:
			choice, err := s.choose("File type (1: .txt 2: .docx): ", 1, 2)
			if err != nil {
				return err
			}
			if choice == 2 {
				format = persist.FormatDocx
			}
		}

		dests = append(dests, persist.Destination{Path: name, Format: format})
	}

	locations, err := s.store.PersistAll(ctx, password, dests...)
	for _, location := range locations {
		if location == persist.ClipboardLocation {
			s.println("Password copied to the clipboard.")
			continue
		}
		s.printf("Password saved to %s.\n", location)
	}

	return err
}

// askConditions reads the composition rules and returns them as a new
// request.
func (s *Session) askConditions() (composer.Request, error) {
	defaults := s.currentDefaults()

	length, err := s.askLength(defaults.Length)
	if err != nil {
		return composer.Request{}, err
	}

	enabled, err := defaults.ClassSet()
	if err != nil {
		enabled = composer.Classes(composer.AllClasses...)
	}

	var classes composer.ClassSet
	for _, c := range composer.AllClasses {
		use, err := s.confirm("Use "+s.title.String(classDescriptions[c])+"?", enabled.Has(c))
		if err != nil {
			return composer.Request{}, err
		}
		if use {
			classes = classes.With(c)
		}
	}

	req := composer.Request{Length: length, Classes: classes}

	option, err := s.ask("Choose an additional option:\n" +
		"1: Set a prefix\n" +
		"2: Include specific text\n" +
		"3: Exclude specific characters\n" +
		"4: None\n" +
		"Choice: ")
	if err != nil {
		return composer.Request{}, err
	}

	switch option {
	case strconv.Itoa(optionPrefix):
		if req.Prefix, err = s.askPrefix(length); err != nil {
			return composer.Request{}, err
		}
	case strconv.Itoa(optionMustInclude):
		if req.MustInclude, err = s.askMustInclude(length); err != nil {
			return composer.Request{}, err
		}
	case strconv.Itoa(optionExclude):
		exclude, err := s.prompt("Characters to exclude: ")
		if err != nil {
			return composer.Request{}, err
		}
		req.Exclude = config.Normalize(exclude)
	case strconv.Itoa(optionNone), "":
	default:
		s.println("Please enter 1, 2, 3 or 4. No additional option was set.")
	}

	return req, nil
}

func (s *Session) askLength(def int) (int, error) {
	for {
		answer, err := s.ask(fmt.Sprintf("Password length [%d]: ", def))
		if err != nil {
			return 0, err
		}

		if answer == "" && def > 0 {
			return def, nil
		}

		n, err := strconv.Atoi(answer)
		if err != nil {
			s.println("Please enter a valid number.")
			continue
		}
		if n <= 0 {
			s.println("The password length must be at least 1.")
			continue
		}

		return n, nil
	}
}

func (s *Session) askPrefix(length int) (string, error) {
	for {
		prefix, err := s.prompt("Prefix: ")
		if err != nil {
			return "", err
		}
		prefix = config.Normalize(prefix)

		if n := utf8.RuneCountInString(prefix); n > length {
			s.printf("The prefix is longer than the password by %d characters. Please try again.\n", n-length)
			continue
		}

		return prefix, nil
	}
}

func (s *Session) askMustInclude(length int) (string, error) {
	for {
		text, err := s.prompt("Text to include: ")
		if err != nil {
			return "", err
		}
		text = config.Normalize(text)

		switch n := utf8.RuneCountInString(text); {
		case n == 0:
			s.println("The text cannot be empty.")
		case n > length:
			s.println("The text is longer than the password. Please try again.")
		default:
			return text, nil
		}
	}
}

// confirm asks a yes/no question. An empty answer selects def.
func (s *Session) confirm(question string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}

	answer, err := s.ask(fmt.Sprintf("%s (%s): ", question, hint))
	if err != nil {
		return false, err
	}

	switch strings.ToLower(answer) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// choose asks until the answer is a number between lo and hi.
func (s *Session) choose(question string, lo, hi int) (int, error) {
	for {
		answer, err := s.ask(question)
		if err != nil {
			return 0, err
		}

		n, err := strconv.Atoi(answer)
		if err == nil && n >= lo && n <= hi {
			return n, nil
		}

		s.printf("Please enter a number between %d and %d.\n", lo, hi)
	}
}

func (s *Session) prompt(question string) (string, error) {
	fmt.Fprint(s.out, question)

	line, err := s.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	return validation.SanitizeInput(line), nil
}

// ask is prompt with surrounding whitespace removed, for menu choices and
// other answers where spaces carry no meaning.
func (s *Session) ask(question string) (string, error) {
	answer, err := s.prompt(question)
	return strings.TrimSpace(answer), err
}

func (s *Session) println(msg string) {
	fmt.Fprintln(s.out, msg)
}

func (s *Session) printf(format string, args ...interface{}) {
	fmt.Fprintf(s.out, format, args...)
}
