package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config - all settings of the chart generator
type Config struct {
	WakaTime WakaTimeConfig `mapstructure:"wakatime"`
	Chart    ChartConfig    `mapstructure:"chart"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Watch    WatchConfig    `mapstructure:"watch"`
	App      AppConfig      `mapstructure:"app"`
	Log      LogConfig      `mapstructure:"log"`
}

// WakaTimeConfig - summaries API access
type WakaTimeConfig struct {
	APIKey          string `mapstructure:"api_key"`
	BaseURL         string `mapstructure:"base_url"`
	RequestTimeout  int    `mapstructure:"request_timeout"` // seconds, 0 = no timeout
	MaxResponseSize int64  `mapstructure:"max_response_size"`
}

type ChartConfig struct {
	WindowDays int    `mapstructure:"window_days"`
	TopN       int    `mapstructure:"top_n"`
	Output     string `mapstructure:"output"`
	PNGOutput  string `mapstructure:"png_output"` // empty = no PNG preview
}

// TelegramConfig - only the publish command needs it
type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
}

type WatchConfig struct {
	Interval int `mapstructure:"interval"` // seconds
}

type AppConfig struct {
	BaseDir string `mapstructure:"base_dir"` // empty = directory of the executable
}

type LogConfig struct {
	File string `mapstructure:"file"`
}

// ConfigError reports a missing or invalid setting. It is returned before any network activity.
type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: %s: %s", e.Key, e.Reason)
}

const (
	DefaultBaseURL = "https://wakatime.com/api/v1"
	DefaultOutput  = "assets/top-langs.svg"
)

// LoadConfig reads settings in increasing priority:
// 1. defaults
// 2. config.yaml in the working directory
// 3. .env file and process environment
// 4. command flags (flags may be nil)
func LoadConfig(flags *pflag.FlagSet) (*Config, error) {
	// .env values land in the process environment; existing variables win
	godotenv.Load(".env")

	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.ReadInConfig() // missing config.yaml is fine

	v.AutomaticEnv()

	setupEnvAliases(v)

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.App.BaseDir == "" {
		config.App.BaseDir = DefaultBaseDir(os.Executable)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func setupEnvAliases(v *viper.Viper) {
	// WakaTime
	v.BindEnv("wakatime.api_key", "WAKATIME_API_KEY")
	v.BindEnv("wakatime.base_url", "WAKATIME_BASE_URL")
	v.BindEnv("wakatime.request_timeout", "WAKATIME_REQUEST_TIMEOUT")
	v.BindEnv("wakatime.max_response_size", "WAKATIME_MAX_RESPONSE_SIZE")

	// Chart
	v.BindEnv("chart.window_days", "CHART_WINDOW_DAYS")
	v.BindEnv("chart.top_n", "CHART_TOP_N")
	v.BindEnv("chart.output", "CHART_OUTPUT")
	v.BindEnv("chart.png_output", "CHART_PNG_OUTPUT")

	// Telegram
	v.BindEnv("telegram.bot_token", "TELEGRAM_BOT_TOKEN")
	v.BindEnv("telegram.chat_id", "TELEGRAM_CHAT_ID")

	v.BindEnv("watch.interval", "WATCH_INTERVAL")
	v.BindEnv("app.base_dir", "APP_BASE_DIR")
	v.BindEnv("log.file", "LOG_FILE")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("wakatime.api_key", "")
	v.SetDefault("wakatime.base_url", DefaultBaseURL)
	v.SetDefault("wakatime.request_timeout", 0)
	v.SetDefault("wakatime.max_response_size", 10*1024*1024) // 10MB

	v.SetDefault("chart.window_days", 7)
	v.SetDefault("chart.top_n", 5)
	v.SetDefault("chart.output", DefaultOutput)
	v.SetDefault("chart.png_output", "")

	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", "")

	v.SetDefault("watch.interval", 3600) // hourly
	v.SetDefault("app.base_dir", "")
	v.SetDefault("log.file", "")
}

// RegisterFlags adds the flags shared by all chart commands.
// Flag names match config keys so BindPFlags maps them directly.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("wakatime.base_url", DefaultBaseURL, "WakaTime API base URL (env: WAKATIME_BASE_URL)")
	fs.Int("wakatime.request_timeout", 0, "Request timeout in seconds, 0 disables it (env: WAKATIME_REQUEST_TIMEOUT)")
	fs.Int("chart.window_days", 7, "Number of days in the summaries window (env: CHART_WINDOW_DAYS)")
	fs.Int("chart.top_n", 5, "Number of languages in the chart (env: CHART_TOP_N)")
	fs.String("chart.output", DefaultOutput, "SVG output path (env: CHART_OUTPUT)")
	fs.String("chart.png_output", "", "Optional PNG preview path (env: CHART_PNG_OUTPUT)")
	fs.String("app.base_dir", "", "Directory relative outputs resolve against, default the executable's directory (env: APP_BASE_DIR)")
	fs.String("log.file", "", "Optional log file (env: LOG_FILE)")
}

func validateConfig(cfg *Config) error {
	if cfg.WakaTime.APIKey == "" {
		return &ConfigError{Key: "WAKATIME_API_KEY", Reason: "please set WAKATIME_API_KEY in the environment or .env"}
	}
	if cfg.Chart.WindowDays <= 0 {
		return &ConfigError{Key: "chart.window_days", Reason: "must be positive"}
	}
	if cfg.Chart.TopN <= 0 {
		return &ConfigError{Key: "chart.top_n", Reason: "must be positive"}
	}
	if cfg.Chart.Output == "" {
		return &ConfigError{Key: "chart.output", Reason: "must not be empty"}
	}
	return nil
}

// ValidateTelegram checks the settings the publish command depends on.
func (c *Config) ValidateTelegram() error {
	if c.Telegram.BotToken == "" {
		return &ConfigError{Key: "TELEGRAM_BOT_TOKEN", Reason: "required for publish"}
	}
	if c.Telegram.ChatID == "" {
		return &ConfigError{Key: "TELEGRAM_CHAT_ID", Reason: "required for publish"}
	}
	return nil
}

// DefaultBaseDir returns the directory holding the running binary. Binaries
// built by "go run" or "go test" live in a throwaway go-build directory, so
// those fall back to the working directory, as does a failed lookup.
func DefaultBaseDir(executable func() (string, error)) string {
	exe, err := executable()
	if err != nil {
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	dir := filepath.Dir(exe)
	if isBuildCacheDir(dir) {
		return "."
	}
	return dir
}

func isBuildCacheDir(dir string) bool {
	for _, part := range strings.Split(filepath.ToSlash(dir), "/") {
		if strings.HasPrefix(part, "go-build") {
			return true
		}
	}
	return false
}

// ResolvePath joins relative paths onto app.base_dir.
func (c *Config) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) || c.App.BaseDir == "" {
		return p
	}
	return filepath.Join(c.App.BaseDir, p)
}
