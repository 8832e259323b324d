package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

type Config struct {
	Sources          []string
	Timeout          time.Duration
	Theme            Theme
	PageSize         int
	Debounce         time.Duration
	Watch            bool
	Offline          bool
	NoCache          bool
	CacheDir         string
	OpenAIModel      string
	OpenAIBase       string
	OpenAITimeoutSec int
	PrefsPath        string
	NoPrefs          bool
	ExportFormat     string
	ExportOut        string
	LogLevel         string
}

// Default returns the configuration before flags are parsed. Environment
// variables override the built-in defaults; flags override both.
func Default() *Config {
	return &Config{
		Sources:          splitList(os.Getenv("BENCHSCOPE_SOURCES")),
		Timeout:          getenvDefaultDuration("BENCHSCOPE_TIMEOUT", 15*time.Second),
		Theme:            Theme(getenvDefault("BENCHSCOPE_THEME", string(ThemeDark))),
		PageSize:         getenvDefaultInt("BENCHSCOPE_PAGE_SIZE", 25),
		Debounce:         getenvDefaultDuration("BENCHSCOPE_DEBOUNCE", 300*time.Millisecond),
		CacheDir:         getenvDefault("BENCHSCOPE_CACHE_DIR", ""),
		OpenAIModel:      getenvDefault("BENCHSCOPE_OPENAI_MODEL", "gpt-5-mini"),
		OpenAIBase:       getenvDefault("BENCHSCOPE_OPENAI_BASE_URL", ""),
		OpenAITimeoutSec: getenvDefaultInt("BENCHSCOPE_OPENAI_TIMEOUT_SEC", 120),
		PrefsPath:        getenvDefault("BENCHSCOPE_PREFS", ""),
		LogLevel:         getenvDefault("BENCHSCOPE_LOG_LEVEL", "info"),
	}
}

// BindFlags registers every option on fs, using c's current values as
// defaults.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringArrayVarP(&c.Sources, "source", "s", c.Sources, "data source path or URL; repeat to add fallbacks tried in order (- reads stdin)")
	fs.DurationVar(&c.Timeout, "timeout", c.Timeout, "per-source load timeout")
	fs.Var(newThemeValue(&c.Theme), "theme", "theme: dark|light")
	fs.IntVar(&c.PageSize, "page-size", c.PageSize, "rows per page in the table")
	fs.DurationVar(&c.Debounce, "debounce", c.Debounce, "quiet period before search input is applied")
	fs.BoolVar(&c.Watch, "watch", c.Watch, "reload when a local source file changes")
	fs.BoolVar(&c.Offline, "offline", c.Offline, "disable OpenAI and serve remote sources from cache only")
	fs.BoolVar(&c.NoCache, "no-cache", c.NoCache, "do not read or write the download cache")
	fs.StringVar(&c.CacheDir, "cache-dir", c.CacheDir, "download cache directory")
	fs.StringVar(&c.OpenAIModel, "openai-model", c.OpenAIModel, "OpenAI model override")
	fs.StringVar(&c.OpenAIBase, "openai-base-url", c.OpenAIBase, "OpenAI base URL override")
	fs.IntVar(&c.OpenAITimeoutSec, "openai-timeout-sec", c.OpenAITimeoutSec, "OpenAI request timeout in seconds")
	fs.StringVar(&c.PrefsPath, "prefs", c.PrefsPath, "preferences file (default: user config dir)")
	fs.BoolVar(&c.NoPrefs, "no-prefs", c.NoPrefs, "do not read or write preferences")
	fs.StringVar(&c.ExportFormat, "export", c.ExportFormat, "export filtered view: csv|json")
	fs.StringVar(&c.ExportOut, "out", c.ExportOut, "output path for export")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug|info|warn|error")
}

const (
	minPageSize = 5
	maxPageSize = 500
)

// Validate checks flag combinations and clamps sizes into range.
func (c *Config) Validate() error {
	if c.ExportFormat != "" && c.ExportOut == "" {
		return errors.New("--export requires --out path")
	}
	switch c.ExportFormat {
	case "", "csv", "json":
	default:
		return fmt.Errorf("--export must be csv or json, got %q", c.ExportFormat)
	}
	if c.Theme != ThemeDark && c.Theme != ThemeLight {
		return fmt.Errorf("--theme must be dark or light, got %q", c.Theme)
	}
	if c.Timeout <= 0 {
		return errors.New("--timeout must be positive")
	}
	if c.Debounce < 0 {
		c.Debounce = 0
	}
	if c.PageSize < minPageSize {
		c.PageSize = minPageSize
	}
	if c.PageSize > maxPageSize {
		c.PageSize = maxPageSize
	}
	if c.OpenAITimeoutSec <= 0 {
		c.OpenAITimeoutSec = 120
	}
	return nil
}

func (c *Config) OpenAIKey() string { return os.Getenv("OPENAI_API_KEY") }

func (c *Config) OpenAITimeout() time.Duration {
	return time.Duration(c.OpenAITimeoutSec) * time.Second
}

func (c *Config) String() string {
	return fmt.Sprintf("sources=%v timeout=%s theme=%s page=%d watch=%v offline=%v", c.Sources, c.Timeout, c.Theme, c.PageSize, c.Watch, c.Offline)
}

type themeValue Theme

func newThemeValue(p *Theme) *themeValue { return (*themeValue)(p) }

func (t *themeValue) String() string { return string(*t) }

func (t *themeValue) Set(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	if s != string(ThemeDark) && s != string(ThemeLight) {
		return fmt.Errorf("unknown theme %q", s)
	}
	*t = themeValue(s)
	return nil
}

func (t *themeValue) Type() string { return "theme" }

func getenvDefault(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvDefaultInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func getenvDefaultDuration(k string, d time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if n, err := time.ParseDuration(v); err == nil {
			return n
		}
	}
	return d
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
