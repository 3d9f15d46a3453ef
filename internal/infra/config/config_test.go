package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"WAKATIME_API_KEY", "WAKATIME_BASE_URL", "WAKATIME_REQUEST_TIMEOUT",
	"CHART_WINDOW_DAYS", "CHART_TOP_N", "CHART_OUTPUT", "CHART_PNG_OUTPUT",
	"TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "WATCH_INTERVAL", "APP_BASE_DIR", "LOG_FILE",
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
	return dir
}

func TestLoadConfig_MissingAPIKey(t *testing.T) {
	isolate(t)

	_, err := LoadConfig(nil)

	var ce *ConfigError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "WAKATIME_API_KEY", ce.Key)
	assert.Contains(t, err.Error(), "WAKATIME_API_KEY")
}

func TestLoadConfig_Defaults(t *testing.T) {
	isolate(t)
	t.Setenv("WAKATIME_API_KEY", "key")

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, "key", cfg.WakaTime.APIKey)
	assert.Equal(t, DefaultBaseURL, cfg.WakaTime.BaseURL)
	assert.Equal(t, 0, cfg.WakaTime.RequestTimeout)
	assert.Equal(t, 7, cfg.Chart.WindowDays)
	assert.Equal(t, 5, cfg.Chart.TopN)
	assert.Equal(t, DefaultOutput, cfg.Chart.Output)
	assert.Empty(t, cfg.Chart.PNGOutput)
	assert.Empty(t, cfg.Log.File)
	assert.Equal(t, 3600, cfg.Watch.Interval)
	assert.Equal(t, DefaultBaseDir(os.Executable), cfg.App.BaseDir)
}

func TestLoadConfig_BaseDirFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("WAKATIME_API_KEY", "key")
	t.Setenv("APP_BASE_DIR", "/srv/profile")

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, "/srv/profile", cfg.App.BaseDir)
}

func TestDefaultBaseDir(t *testing.T) {
	installed := filepath.Join(t.TempDir(), "bin")
	require.NoError(t, os.MkdirAll(installed, 0755))
	exe := filepath.Join(installed, "langchart")
	require.NoError(t, os.WriteFile(exe, nil, 0755))
	wantDir, err := filepath.EvalSymlinks(installed)
	require.NoError(t, err)

	assert.Equal(t, wantDir, DefaultBaseDir(func() (string, error) { return exe, nil }))

	goRun := "/tmp/go-build1234567/b001/exe/langchart"
	assert.Equal(t, ".", DefaultBaseDir(func() (string, error) { return goRun, nil }))

	assert.Equal(t, ".", DefaultBaseDir(func() (string, error) { return "", errors.New("unsupported") }))
}

func TestLoadConfig_YAMLThenEnvThenFlags(t *testing.T) {
	dir := isolate(t)
	yaml := "wakatime:\n  api_key: from-yaml\nchart:\n  top_n: 3\n  window_days: 14\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("CHART_TOP_N", "4")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--chart.output", "out/chart.svg"}))

	cfg, err := LoadConfig(fs)
	require.NoError(t, err)

	assert.Equal(t, "from-yaml", cfg.WakaTime.APIKey)
	assert.Equal(t, 14, cfg.Chart.WindowDays)
	assert.Equal(t, 4, cfg.Chart.TopN)
	assert.Equal(t, "out/chart.svg", cfg.Chart.Output)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.Unsetenv("WAKATIME_API_KEY"))
	t.Cleanup(func() { os.Unsetenv("WAKATIME_API_KEY") })

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("WAKATIME_API_KEY=from-dotenv\n"), 0644))

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.WakaTime.APIKey)
}

func TestLoadConfig_InvalidTopN(t *testing.T) {
	isolate(t)
	t.Setenv("WAKATIME_API_KEY", "key")
	t.Setenv("CHART_TOP_N", "0")

	_, err := LoadConfig(nil)

	var ce *ConfigError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "chart.top_n", ce.Key)
}

func TestValidateTelegram(t *testing.T) {
	cfg := &Config{}
	var ce *ConfigError
	require.True(t, errors.As(cfg.ValidateTelegram(), &ce))
	assert.Equal(t, "TELEGRAM_BOT_TOKEN", ce.Key)

	cfg.Telegram.BotToken = "token"
	require.True(t, errors.As(cfg.ValidateTelegram(), &ce))
	assert.Equal(t, "TELEGRAM_CHAT_ID", ce.Key)

	cfg.Telegram.ChatID = "42"
	assert.NoError(t, cfg.ValidateTelegram())
}

func TestResolvePath(t *testing.T) {
	cfg := &Config{App: AppConfig{BaseDir: "/srv/profile"}}

	assert.Equal(t, filepath.Join("/srv/profile", "assets/top-langs.svg"), cfg.ResolvePath("assets/top-langs.svg"))
	assert.Equal(t, "/tmp/x.svg", cfg.ResolvePath("/tmp/x.svg"))
	assert.Equal(t, "", cfg.ResolvePath(""))
}
