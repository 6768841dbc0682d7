// Package main provides the CLI entrypoint for ticktype.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/ticktype/internal/config"
	"github.com/verte-zerg/ticktype/internal/controller"
	"github.com/verte-zerg/ticktype/internal/corpus"
	"github.com/verte-zerg/ticktype/internal/generator"
	"github.com/verte-zerg/ticktype/internal/model"
	"github.com/verte-zerg/ticktype/internal/report"
	"github.com/verte-zerg/ticktype/internal/store"
	"github.com/verte-zerg/ticktype/internal/tui"
	"github.com/verte-zerg/ticktype/internal/wordfreq"
	"github.com/verte-zerg/ticktype/internal/wordlist"
)

const (
	defaultLang     = "en"
	defaultSeconds  = 30
	defaultLogLevel = "info"
	defaultFetchSz  = 10000
)

var (
	practiceLang     string
	practiceSeconds  int
	practiceWords    int
	practiceLogLevel string

	wordlistForce bool
	wordlistSize  int
)

var log = logrus.New()

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ticktype",
		Short:         "Timed TUI typing challenge",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceLang, "lang", defaultLang, "language code (en, fi, js or an imported list)")
	rootCmd.Flags().IntVar(&practiceSeconds, "time", defaultSeconds, "challenge length in seconds (15, 30, 60, 120)")
	rootCmd.Flags().IntVar(&practiceWords, "words", controller.DefaultBatch, "words generated per challenge")
	rootCmd.PersistentFlags().StringVar(&practiceLogLevel, "log-level", defaultLogLevel, "log level")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLangsCmd())
	rootCmd.AddCommand(newWordlistCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	wordlistDir := config.DefaultWordListDir()
	applyStringConfig(cmd, "lang", &practiceLang, fileCfg.Practice.Lang)
	applyIntConfig(cmd, "time", &practiceSeconds, fileCfg.Practice.Seconds)
	applyIntConfig(cmd, "words", &practiceWords, fileCfg.Practice.Words)
	applyStringConfig(cmd, "log-level", &practiceLogLevel, fileCfg.Practice.LogLevel)
	if fileCfg.Practice.WordlistDir != nil {
		wordlistDir = *fileCfg.Practice.WordlistDir
	}

	cfg := model.Config{
		Lang:        corpus.Normalize(practiceLang),
		Seconds:     practiceSeconds,
		Words:       practiceWords,
		WordlistDir: wordlistDir,
		LogLevel:    strings.ToLower(practiceLogLevel),
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	if err := setupLogger(cfg.LogLevel); err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			log.WithError(cerr).Warn("failed to close db")
		}
	}()

	provider := newProvider(cfg.WordlistDir, st)
	langs, err := provider.Languages()
	if err != nil {
		return fmt.Errorf("failed to list languages: %w", err)
	}

	ctrl := controller.New(generator.New(provider), controller.WithLogger(log), controller.WithBatch(cfg.Words))
	if err := ctrl.Configure(cfg.Lang, cfg.Seconds); err != nil {
		return languageError(cfg.Lang, err)
	}

	logFile, err := redirectLog(config.DefaultLogPath())
	if err != nil {
		return err
	}
	defer func() {
		log.SetOutput(os.Stderr)
		if cerr := logFile.Close(); cerr != nil {
			log.WithError(cerr).Warn("failed to close log file")
		}
	}()

	m := tui.NewModel(ctrl, langs, log)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	if res, ok := m.LastResult(); ok {
		out := cmd.OutOrStdout()
		if err := report.Render(out, res, ctrl.Lang(), report.ShouldUseColor(out)); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
	}
	return nil
}

func newProvider(wordlistDir string, st *store.Store) corpus.Chain {
	return corpus.Chain{
		corpus.NewStored(st),
		corpus.NewDir(wordlistDir),
		corpus.NewBuiltin(),
	}
}

func setupLogger(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid --log-level value: %w", err)
	}
	log.SetLevel(lvl)
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return nil
}

// redirectLog sends log output to a file while the TUI owns the terminal.
func redirectLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(f)
	return f, nil
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

func newLangsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List available languages",
		Args:  cobra.NoArgs,
		RunE:  runLangsCmd,
	}
}

func runLangsCmd(cmd *cobra.Command, _ []string) error {
	wordlistDir, err := configuredWordlistDir()
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			log.WithError(cerr).Warn("failed to close db")
		}
	}()

	langs, err := newProvider(wordlistDir, st).Languages()
	if err != nil {
		return fmt.Errorf("failed to list languages: %w", err)
	}
	for _, lang := range langs {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), lang); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newWordlistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wordlist",
		Short: "Manage imported word lists",
	}

	importCmd := &cobra.Command{
		Use:   "import <lang> <file>",
		Short: "Import a word list (one word per line)",
		Args:  cobra.ExactArgs(2),
		RunE:  runWordlistImportCmd,
	}
	importCmd.Flags().BoolVar(&wordlistForce, "force", false, "overwrite an existing imported list")

	fetchCmd := &cobra.Command{
		Use:   "fetch <lang|all>",
		Short: "Download a word list from the wordfreq dataset",
		Args:  cobra.ExactArgs(1),
		RunE:  runWordlistFetchCmd,
	}
	fetchCmd.Flags().IntVar(&wordlistSize, "size", defaultFetchSz, "number of words")
	fetchCmd.Flags().BoolVar(&wordlistForce, "force", false, "overwrite existing files")

	cmd.AddCommand(importCmd)
	cmd.AddCommand(fetchCmd)
	cmd.AddCommand(&cobra.Command{
		Use:   "remove <lang>",
		Short: "Remove an imported word list",
		Args:  cobra.ExactArgs(1),
		RunE:  runWordlistRemoveCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List imported word lists",
		Args:  cobra.NoArgs,
		RunE:  runWordlistListCmd,
	})
	return cmd
}

func runWordlistImportCmd(cmd *cobra.Command, args []string) error {
	lang := corpus.Normalize(args[0])
	if lang == "" {
		return fmt.Errorf("language must not be empty")
	}
	path := args[1]
	words, err := wordlist.LoadWords(path, wordlist.FilterForLang(lang))
	if err != nil {
		return fmt.Errorf("failed to load word list %s: %w", path, err)
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			log.WithError(cerr).Warn("failed to close db")
		}
	}()

	ctx := context.Background()
	if !wordlistForce {
		existing, err := st.Words(ctx, lang)
		if err != nil {
			return fmt.Errorf("failed to check existing list: %w", err)
		}
		if len(existing) > 0 {
			return fmt.Errorf("word list already imported for %s (use --force to overwrite)", lang)
		}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if err := st.ImportWords(ctx, lang, abs, words); err != nil {
		return fmt.Errorf("failed to import word list: %w", err)
	}
	log.WithFields(logrus.Fields{"lang": lang, "words": len(words)}).Info("word list imported")
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d words for %s\n", len(words), lang)
	return err
}

func runWordlistFetchCmd(cmd *cobra.Command, args []string) error {
	if wordlistSize <= 0 {
		return fmt.Errorf("--size must be greater than 0")
	}
	if err := setupLogger(practiceLogLevel); err != nil {
		return err
	}
	outDir, err := configuredWordlistDir()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	log.Info("fetching wordfreq metadata")
	wheel, err := wordfreq.NewClient().DownloadLatestWheel(ctx, config.DefaultWordfreqCacheDir())
	if err != nil {
		return fmt.Errorf("failed to download wordfreq wheel: %w", err)
	}
	log.WithFields(logrus.Fields{"wheel": wheel.Filename, "cached": wheel.Cached}).Info("wordfreq wheel ready")

	types, err := wordfreq.ListLanguageTypes(wheel.Path)
	if err != nil {
		return fmt.Errorf("failed to list languages: %w", err)
	}
	langs, all, err := resolveFetchLangs(args[0], types.Languages())
	if err != nil {
		return err
	}

	for _, lang := range langs {
		if err := fetchWordlist(cmd, wheel, types, lang, outDir); err != nil {
			if all {
				log.WithError(err).WithField("lang", lang).Warn("skipping language")
				continue
			}
			return err
		}
	}

	if err := wordfreq.WriteAttribution(wheel.Path, outDir); err != nil {
		return fmt.Errorf("failed to write attribution: %w", err)
	}
	return nil
}

func fetchWordlist(cmd *cobra.Command, wheel wordfreq.Wheel, types wordfreq.LanguageTypes, lang, outDir string) error {
	outPath := filepath.Join(outDir, lang+".txt")
	if !wordlistForce {
		if _, err := os.Stat(outPath); err == nil {
			return fmt.Errorf("word list already exists: %s (use --force to overwrite)", outPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat word list: %w", err)
		}
	}
	listType, ok := types.Select(lang, wordfreq.ListLarge)
	if !ok {
		return fmt.Errorf("no word list available for %s", lang)
	}
	words, err := wordfreq.ExtractWordlist(wheel.Path, lang, listType, wordlistSize)
	if err != nil {
		return fmt.Errorf("failed to extract %s word list: %w", lang, err)
	}
	if err := wordlist.Write(outPath, words); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	log.WithFields(logrus.Fields{"lang": lang, "list": listType, "words": len(words)}).Debug("word list extracted")
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d words to %s\n", len(words), outPath)
	return err
}

// resolveFetchLangs expands "all" or a comma-separated list against the
// languages present in the dataset.
func resolveFetchLangs(arg string, available []string) ([]string, bool, error) {
	arg = strings.TrimSpace(strings.ToLower(arg))
	if arg == "all" {
		return available, true, nil
	}
	var langs []string
	for _, part := range strings.Split(arg, ",") {
		lang := corpus.Normalize(part)
		if lang == "" {
			continue
		}
		if !slices.Contains(available, lang) {
			return nil, false, fmt.Errorf("unknown language %q (available: %s)", lang, strings.Join(available, ", "))
		}
		langs = append(langs, lang)
	}
	if len(langs) == 0 {
		return nil, false, fmt.Errorf("language must not be empty")
	}
	return langs, false, nil
}

func configuredWordlistDir() (string, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}
	if fileCfg.Practice.WordlistDir != nil {
		return *fileCfg.Practice.WordlistDir, nil
	}
	return config.DefaultWordListDir(), nil
}

func runWordlistRemoveCmd(cmd *cobra.Command, args []string) error {
	lang := corpus.Normalize(args[0])
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			log.WithError(cerr).Warn("failed to close db")
		}
	}()

	removed, err := st.RemoveWords(context.Background(), lang)
	if err != nil {
		return fmt.Errorf("failed to remove word list: %w", err)
	}
	if !removed {
		return fmt.Errorf("no imported word list for %s", lang)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", lang)
	return err
}

func runWordlistListCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			log.WithError(cerr).Warn("failed to close db")
		}
	}()

	lists, err := st.Lists(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list word lists: %w", err)
	}
	if len(lists) == 0 {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "No imported word lists.")
		return err
	}
	for _, l := range lists {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d words\t%s\t%s\n",
			l.Lang, l.Words, l.ImportedAt.Local().Format("2006-01-02 15:04"), l.Source); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
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

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# ticktype configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# lang = %q              # Language code (en, fi, js or an imported list)
# time = %d                # Challenge length in seconds (15, 30, 60, 120)
# words = %d              # Words generated per challenge
# wordlist-dir = %q
# log-level = %q         # trace, debug, info, warn, error
`,
		defaultLang,
		defaultSeconds,
		controller.DefaultBatch,
		config.DefaultWordListDir(),
		defaultLogLevel,
	)
}

func languageError(lang string, err error) error {
	if !errors.Is(err, corpus.ErrUnknownLanguage) {
		return fmt.Errorf("failed to start challenge: %w", err)
	}
	hints := []string{
		fmt.Sprintf("language %q not found", lang),
		"Run: ticktype langs",
		fmt.Sprintf("Fetch: ticktype wordlist fetch %s", lang),
		fmt.Sprintf("Import: ticktype wordlist import %s <file>", lang),
	}
	return fmt.Errorf("failed to start challenge: %w\n%s", err, strings.Join(hints, "\n"))
}
