package commands

// Command to generate the chart once
// Fails before any network call when WAKATIME_API_KEY is missing

import (
	"fmt"
	"time"

	"langchart/internal/clients_api/wakatime"
	"langchart/internal/features/langchart"
	"langchart/internal/infra/config"
	logging "langchart/internal/infra/log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Fetch summaries and write the chart once",
		Long:  `Fetch WakaTime summaries for the configured window, aggregate per language and write the SVG chart (and the PNG preview when chart.png_output is set).`,
		RunE:  runGenerate,
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	_, err = newGenerator(cfg).Run(cmd.Context())
	if err != nil {
		logging.LogError("Failed to generate chart", zap.Error(err))
		return err
	}
	return nil
}

// loadConfig loads settings and attaches the log file. Config errors are
// reported before anything touches the network or the filesystem.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(cmd.Flags())
	if err != nil {
		logging.LogError("Failed to load config", zap.Error(err))
		return nil, err
	}

	if err := logging.Init(cfg.ResolvePath(cfg.Log.File)); err != nil {
		return nil, fmt.Errorf("failed to init log file: %w", err)
	}

	return cfg, nil
}

func newGenerator(cfg *config.Config) *langchart.Generator {
	client := wakatime.NewClient(cfg.WakaTime.APIKey, wakatime.Options{
		BaseURL:         cfg.WakaTime.BaseURL,
		Timeout:         time.Duration(cfg.WakaTime.RequestTimeout) * time.Second,
		MaxResponseSize: cfg.WakaTime.MaxResponseSize,
	})

	return langchart.NewGenerator(client, langchart.Options{
		WindowDays: cfg.Chart.WindowDays,
		TopN:       cfg.Chart.TopN,
		SVGPath:    cfg.ResolvePath(cfg.Chart.Output),
		PNGPath:    cfg.ResolvePath(cfg.Chart.PNGOutput),
	})
}
