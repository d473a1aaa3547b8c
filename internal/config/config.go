package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"addonlist/internal/addon"

	"gopkg.in/yaml.v3"
)

// Config holds all addonlist configuration.
type Config struct {
	// Data sets, one CSV source per game variant
	Games       []GameConfig `yaml:"games"`
	DefaultGame string       `yaml:"default_game"`

	// Base directory for relative file sources
	DataDir string `yaml:"data_dir,omitempty"`

	Fetch   FetchConfig   `yaml:"fetch"`
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
}

// GameConfig names one data set and where its CSV lives.
type GameConfig struct {
	Name   string `yaml:"name"`
	Title  string `yaml:"title"`
	Source string `yaml:"source"` // http(s) URL, file:// URL or path
}

// FetchConfig configures data set retrieval.
type FetchConfig struct {
	Timeout   string `yaml:"timeout"`
	UserAgent string `yaml:"user_agent"`
}

// UIConfig configures the interactive table.
type UIConfig struct {
	DarkMode    bool   `yaml:"dark_mode"`
	ShowHidden  bool   `yaml:"show_hidden"`
	CopyService string `yaml:"copy_service"` // preferred, curse, wowi, repo
	Watch       bool   `yaml:"watch"`        // reload when local sources change
}

// LoggingConfig configures file logging.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Level      string          `yaml:"level"` // debug, info, warn, error
	JSONFormat bool            `yaml:"json_format"`
	Dir        string          `yaml:"dir"`
	Categories map[string]bool `yaml:"categories,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Games: []GameConfig{
			{Name: "classic", Title: "Classic", Source: "addons.csv"},
		},
		DefaultGame: "classic",
		Fetch: FetchConfig{
			Timeout:   "30s",
			UserAgent: "addonlist",
		},
		UI: UIConfig{
			CopyService: addon.PreferredService,
		},
		Logging: LoggingConfig{
			Level: "info",
			Dir:   defaultLogDir(),
		},
	}
}

func defaultLogDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "addonlist", "logs")
	}
	return filepath.Join(".addonlist", "logs")
}

// DefaultConfigPath returns the default config location.
func DefaultConfigPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "addonlist", "config.yaml")
	}
	return "addonlist.yaml"
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Defaults if config file doesn't exist
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func (c *Config) applyEnvOverrides() {
	if dir := os.Getenv("ADDONS_DATA_DIR"); dir != "" {
		c.DataDir = dir
	}
	if game := os.Getenv("ADDONS_DEFAULT_GAME"); game != "" {
		c.DefaultGame = game
	}
	if timeout := os.Getenv("ADDONS_FETCH_TIMEOUT"); timeout != "" {
		c.Fetch.Timeout = timeout
	}
	if v, ok := envBool("ADDONS_DEBUG"); ok {
		c.Logging.DebugMode = v
	}
	if v, ok := envBool("ADDONS_DARK_MODE"); ok {
		c.UI.DarkMode = v
	}
}

func envBool(key string) (bool, bool) {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	}
	return false, false
}

// GetFetchTimeout returns the batch load timeout as a duration.
func (c *Config) GetFetchTimeout() time.Duration {
	d, err := time.ParseDuration(c.Fetch.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// GameNames returns the configured data set names in declaration order.
func (c *Config) GameNames() []string {
	names := make([]string, 0, len(c.Games))
	for _, g := range c.Games {
		names = append(names, g.Name)
	}
	return names
}

// Game returns the configuration of the named data set.
func (c *Config) Game(name string) (GameConfig, bool) {
	for _, g := range c.Games {
		if g.Name == name {
			return g, true
		}
	}
	return GameConfig{}, false
}

// Sources maps each data set name to its resolved source. Relative file
// paths are resolved against DataDir when it is set.
func (c *Config) Sources() map[string]string {
	out := make(map[string]string, len(c.Games))
	for _, g := range c.Games {
		out[g.Name] = c.resolveSource(g.Source)
	}
	return out
}

func (c *Config) resolveSource(src string) string {
	if strings.Contains(src, "://") || c.DataDir == "" || filepath.IsAbs(src) {
		return src
	}
	return filepath.Join(c.DataDir, src)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if len(c.Games) == 0 {
		return fmt.Errorf("no games configured")
	}

	seen := make(map[string]bool, len(c.Games))
	for i, g := range c.Games {
		if g.Name == "" {
			return fmt.Errorf("games[%d]: name is required", i)
		}
		if seen[g.Name] {
			return fmt.Errorf("games[%d]: duplicate name %q", i, g.Name)
		}
		seen[g.Name] = true
		if g.Source == "" {
			return fmt.Errorf("game %q: source is required", g.Name)
		}
	}

	if c.DefaultGame != "" && !seen[c.DefaultGame] {
		return fmt.Errorf("default game %q is not configured (valid: %v)", c.DefaultGame, c.GameNames())
	}

	if c.Fetch.Timeout != "" {
		if _, err := time.ParseDuration(c.Fetch.Timeout); err != nil {
			return fmt.Errorf("invalid fetch timeout %q: %w", c.Fetch.Timeout, err)
		}
	}

	if s := c.UI.CopyService; s != "" && s != addon.PreferredService {
		if _, err := addon.ParseService(s); err != nil {
			return fmt.Errorf("invalid copy service: %w", err)
		}
	}

	return nil
}
