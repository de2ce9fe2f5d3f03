// Package main provides the CLI entrypoint for typist.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/typist/internal/config"
	"github.com/verte-zerg/typist/internal/generator"
	"github.com/verte-zerg/typist/internal/logging"
	"github.com/verte-zerg/typist/internal/model"
	"github.com/verte-zerg/typist/internal/stats"
	"github.com/verte-zerg/typist/internal/store"
	"github.com/verte-zerg/typist/internal/texts"
	"github.com/verte-zerg/typist/internal/tui"
	"github.com/verte-zerg/typist/internal/wordlist"
)

const (
	defaultLang        = "en"
	defaultWords       = 25
	defaultCaps        = 0.0
	defaultPunct       = 0.0
	defaultLogLevel    = "info"
	defaultStatsWidth  = 80
	defaultMistakeRows = 10
)

const defaultPunctSet = ".,!?;:"

var (
	practiceText       string
	practiceFile       string
	practiceTextsDir   string
	practiceWhitespace bool
	practiceWordlist   string
	practiceLang       string
	practiceWords      int
	practiceCaps       float64
	practicePunct      float64
	practicePunctSet   string

	logLevel string
	logFile  string

	statsText     string
	statsSince    string
	statsLast     int
	statsMistakes int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typist",
		Short:         "Chunked typing practice in the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceText, "text", "", "name of the text to start with")
	rootCmd.Flags().StringVar(&practiceFile, "file", "", "practice on a text file")
	rootCmd.Flags().StringVar(&practiceTextsDir, "texts-dir", config.DefaultTextsDir(), "directory of *.txt practice texts")
	rootCmd.Flags().BoolVar(&practiceWhitespace, "whitespace", false, "show whitespace glyphs for every text")
	rootCmd.Flags().StringVar(&practiceWordlist, "wordlist", "", "word list for the random text (default: wordlists/<lang>.txt)")
	rootCmd.Flags().StringVar(&practiceLang, "lang", defaultLang, "word list language")
	rootCmd.Flags().IntVar(&practiceWords, "words", defaultWords, "words in the random text")
	rootCmd.Flags().Float64Var(&practiceCaps, "caps", defaultCaps, "probability of capitalized first letter (0-1)")
	rootCmd.Flags().Float64Var(&practicePunct, "punct", defaultPunct, "punctuation probability per word (0-1)")
	rootCmd.Flags().StringVar(&practicePunctSet, "punct-set", defaultPunctSet, "punctuation set")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", config.DefaultLogPath(), "log file, or - for stderr")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newTextsCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func loadPracticeConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "text", &practiceText, fileCfg.Practice.Text)
	applyStringConfig(cmd, "texts-dir", &practiceTextsDir, fileCfg.Practice.TextsDir)
	applyStringConfig(cmd, "wordlist", &practiceWordlist, fileCfg.Practice.Wordlist)
	applyStringConfig(cmd, "lang", &practiceLang, fileCfg.Practice.Lang)
	applyIntConfig(cmd, "words", &practiceWords, fileCfg.Practice.Words)
	applyFloatConfig(cmd, "caps", &practiceCaps, fileCfg.Practice.CapsPct)
	applyFloatConfig(cmd, "punct", &practicePunct, fileCfg.Practice.PunctPct)
	applyStringConfig(cmd, "punct-set", &practicePunctSet, fileCfg.Practice.PunctSet)
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	applyStringConfig(cmd, "log-file", &logFile, fileCfg.Log.File)

	cfg := model.Config{
		Text:     practiceText,
		TextsDir: practiceTextsDir,
		File:     practiceFile,
		Wordlist: practiceWordlist,
		Lang:     practiceLang,
		Words:    practiceWords,
		CapsPct:  practiceCaps,
		PunctPct: practicePunct,
		PunctSet: practicePunctSet,
	}
	switch {
	case cmd.Flags().Changed("whitespace"):
		show := practiceWhitespace
		cfg.ShowWhitespace = &show
	case fileCfg.Practice.ShowWhitespace != nil:
		show := *fileCfg.Practice.ShowWhitespace
		cfg.ShowWhitespace = &show
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadPracticeConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := openLogger()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeLog(); cerr != nil {
			logErrf("failed to close log: %v\n", cerr)
		}
	}()

	catalog, active, err := buildCatalog(cfg, logger)
	if err != nil {
		return err
	}
	generate, err := randomTextSource(cfg, logger)
	if err != nil {
		return err
	}
	if generate != nil {
		catalog.Add(texts.Text{Name: tui.RandomText})
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Error("failed to close db", "err", cerr)
		}
	}()

	m, err := tui.NewModel(tui.Options{
		Texts:          catalog,
		Active:         active,
		ShowWhitespace: cfg.ShowWhitespace,
		Store:          st,
		Logger:         logger,
		Generate:       generate,
	})
	if err != nil {
		return err
	}
	logger.Info("practice started", "texts", catalog.Len(), "active", active)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// buildCatalog merges built-in texts, the texts directory and --file, in that
// order; later texts replace earlier ones with the same name. It also returns
// the text to start with: --text, else the --file text.
func buildCatalog(cfg model.Config, logger *slog.Logger) (*texts.Catalog, string, error) {
	catalog := texts.NewCatalog(texts.Builtin()...)
	if cfg.TextsDir != "" {
		dirTexts, err := texts.LoadDir(cfg.TextsDir)
		if err != nil {
			return nil, "", err
		}
		for _, t := range dirTexts {
			catalog.Add(t)
		}
		logger.Debug("loaded texts directory", "dir", cfg.TextsDir, "texts", len(dirTexts))
	}
	active := cfg.Text
	if cfg.File != "" {
		t, err := texts.LoadFile(cfg.File)
		if err != nil {
			return nil, "", err
		}
		catalog.Add(t)
		if active == "" {
			active = t.Name
		}
	}
	if cfg.Text != "" {
		if _, ok := catalog.Get(cfg.Text); !ok && !strings.EqualFold(cfg.Text, tui.RandomText) {
			return nil, "", fmt.Errorf("unknown text %q (available: %s)", cfg.Text, strings.Join(catalog.Names(), ", "))
		}
	}
	return catalog, active, nil
}

// randomTextSource returns nil when no word list is configured or present.
func randomTextSource(cfg model.Config, logger *slog.Logger) (func() string, error) {
	path := cfg.Wordlist
	explicit := path != ""
	if !explicit {
		path = config.DefaultWordListPath(cfg.Lang)
		if _, err := os.Stat(path); err != nil {
			logger.Debug("no word list, random text disabled", "path", path)
			return nil, nil
		}
	}
	words, err := wordlist.LoadForLang(path, cfg.Lang)
	if err != nil {
		return nil, fmt.Errorf("failed to load word list %s: %w", path, err)
	}
	gen := generator.New()
	opts := generator.Options{
		Words:    cfg.Words,
		CapsPct:  cfg.CapsPct,
		PunctPct: cfg.PunctPct,
		PunctSet: []rune(cfg.PunctSet),
	}
	return func() string {
		return gen.Text(words, opts)
	}, nil
}

func openLogger() (*slog.Logger, func() error, error) {
	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return nil, nil, err
	}
	logger, closeLog, err := logging.Open(logFile, level)
	if err != nil {
		return nil, nil, err
	}
	return logger, closeLog, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newTextsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "texts",
		Short: "List practice texts",
		Args:  cobra.NoArgs,
		RunE:  runTextsCmd,
	}
	cmd.Flags().StringVar(&practiceTextsDir, "texts-dir", config.DefaultTextsDir(), "directory of *.txt practice texts")
	return cmd
}

func runTextsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "texts-dir", &practiceTextsDir, fileCfg.Practice.TextsDir)
	catalog, _, err := buildCatalog(model.Config{TextsDir: practiceTextsDir}, logging.Discard())
	if err != nil {
		return err
	}
	for _, name := range catalog.Names() {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsText, "text", "", "text name filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsMistakes, "mistakes", defaultMistakeRows, "number of recent mistakes to show")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if statsLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}

	cfg := model.StatsConfig{
		Text:     statsText,
		Since:    sinceTime,
		Last:     statsLast,
		Mistakes: statsMistakes,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	report, err := stats.BuildReport(context.Background(), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to load stats: %w", err)
	}
	return report.Render(cmd.OutOrStdout(), terminalWidth())
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultStatsWidth
	}
	return width
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typist configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# text = "Paragraph"       # Text to start with
# texts-dir = %q           # Directory of *.txt practice texts
# show-whitespace = true   # Force whitespace glyphs on or off for every text
# wordlist = ""            # Word list for the random text
# lang = %q                # Word list language
# words = %d               # Words in the random text
# caps = %.2f              # Probability of capitalized first letter (0-1)
# punct = %.2f             # Punctuation probability per word (0-1)
# punct-set = %q           # Punctuation set

[log]
# level = %q               # debug, info, warn or error
# file = %q                # Log file, or "-" for stderr
`,
		config.DefaultTextsDir(),
		defaultLang,
		defaultWords,
		defaultCaps,
		defaultPunct,
		defaultPunctSet,
		defaultLogLevel,
		config.DefaultLogPath(),
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Words <= 0 {
		return fmt.Errorf("--words must be > 0")
	}
	if cfg.CapsPct < 0 || cfg.CapsPct > 1 {
		return fmt.Errorf("--caps must be between 0 and 1")
	}
	if cfg.PunctPct < 0 || cfg.PunctPct > 1 {
		return fmt.Errorf("--punct must be between 0 and 1")
	}
	if cfg.PunctPct > 0 && cfg.PunctSet == "" {
		return fmt.Errorf("--punct-set must not be empty")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
