package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"addonlist/internal/addon"
	"addonlist/internal/catalog"
	"addonlist/internal/clipboard"
	"addonlist/internal/config"
	"addonlist/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	configPath string
	gameName   string
	query      string
	showHidden bool
	timeout    time.Duration

	// Logger
	logger *zap.Logger

	// clipboardWriter is swapped in tests.
	clipboardWriter = clipboard.Default
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "addons",
	Short: "Browse World of Warcraft addon lists",
	Long: `addons shows curated World of Warcraft addon lists, one CSV data set per
game variant, and builds download links and wowa install commands for them.

Run without arguments to open the interactive table.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The interactive table owns the terminal; it logs to files only.
		if cmd == cmd.Root() {
			logger = zap.NewNop()
			return nil
		}

		config := zap.NewProductionConfig()
		config.Encoding = "console"
		config.OutputPaths = []string{"stderr"}
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
	RunE: runInteractive,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: "+config.DefaultConfigPath()+")")
	rootCmd.PersistentFlags().StringVarP(&gameName, "game", "g", "", "Game data set to show (default: config default_game)")
	rootCmd.PersistentFlags().StringVarP(&query, "filter", "f", "", "Filter addon names (case-insensitive pattern)")
	rootCmd.PersistentFlags().BoolVar(&showHidden, "hidden", false, "Show only problematic addons")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Load timeout (default: config fetch.timeout)")

	linksCmd.Flags().StringVarP(&linkService, "service", "s", "", "preferred, curse, wowi or repo (default: config ui.copy_service)")
	linksCmd.Flags().BoolVarP(&linkCommands, "wowa", "w", false, "Print wowa install commands instead of links")
	linksCmd.Flags().BoolVar(&linkCopy, "copy", false, "Copy to the clipboard instead of printing")

	showCmd.Flags().BoolVar(&showRaw, "raw", false, "Print markdown without rendering")
	initConfigCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing config file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(linksCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(gamesCmd)
	rootCmd.AddCommand(initConfigCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func resolvedConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultConfigPath()
}

// loadConfig loads, overrides and validates the configuration and starts
// file logging from it.
func loadConfig() (*config.Config, error) {
	path := resolvedConfigPath()
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		cfg.Fetch.Timeout = timeout.String()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	if err := logging.Initialize(logging.Options{
		DebugMode:  cfg.Logging.DebugMode,
		Level:      cfg.Logging.Level,
		JSONFormat: cfg.Logging.JSONFormat,
		Dir:        cfg.Logging.Dir,
		Categories: cfg.Logging.Categories,
	}); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	logging.Config("loaded %s (%d games)", path, len(cfg.Games))
	if logging.IsDebugMode() {
		resolved := cfg.Sources()
		for _, g := range cfg.Games {
			logging.BootDebug("game %s: source %s", g.Name, resolved[g.Name])
		}
	}
	return cfg, nil
}

// selectedGame returns the --game flag, the configured default, or the first game.
func selectedGame(cfg *config.Config) (string, error) {
	name := gameName
	if name == "" {
		name = cfg.DefaultGame
	}
	if name == "" {
		name = cfg.Games[0].Name
	}
	if _, ok := cfg.Game(name); !ok {
		return "", fmt.Errorf("unknown game %q (valid: %v)", name, cfg.GameNames())
	}
	return name, nil
}

func newStore(cfg *config.Config) *catalog.Store {
	resolved := cfg.Sources()
	sources := make([]catalog.Source, 0, len(cfg.Games))
	for _, g := range cfg.Games {
		sources = append(sources, catalog.Source{Name: g.Name, Location: resolved[g.Name]})
	}
	return catalog.NewStore(catalog.NewSourceFetcher(cfg.Fetch.UserAgent), sources, cfg.GetFetchTimeout())
}

// loadGame loads the selected game's data set for the one-shot commands.
func loadGame() (*config.Config, string, []addon.Record, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, "", nil, err
	}
	game, err := selectedGame(cfg)
	if err != nil {
		return nil, "", nil, err
	}

	store := newStore(cfg)
	logger.Debug("Loading data set", zap.String("game", game), zap.Duration("timeout", cfg.GetFetchTimeout()))
	sets, err := store.Load(context.Background(), game)
	if err != nil {
		return nil, "", nil, err
	}
	logger.Debug("Data set loaded", zap.String("game", game), zap.Int("records", len(sets[game])))
	return cfg, game, sets[game], nil
}
