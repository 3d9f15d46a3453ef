package commands

// Command to generate the chart and send its PNG preview to Telegram
// Requires TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID in addition to the API key

import (
	"strings"

	"langchart/internal/features/langchart"
	"langchart/internal/features/tg_publish"
	"langchart/internal/infra/config"
	logging "langchart/internal/infra/log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newPublishCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "publish",
		Short: "Generate the chart and post the preview to Telegram",
		Long:  `Generate the SVG chart, render its PNG preview and send it as a photo to the configured Telegram chat.`,
		RunE:  runPublish,
	}
}

func runPublish(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.ValidateTelegram(); err != nil {
		logging.LogError("Failed to load config", zap.Error(err))
		return err
	}
	ensurePNGOutput(cfg)

	publisher, err := newPublisher(cfg)
	if err != nil {
		return err
	}

	res, err := newGenerator(cfg).Run(cmd.Context())
	if err != nil {
		logging.LogError("Failed to generate chart", zap.Error(err))
		return err
	}

	return publisher.PublishChart(res.PNGPath, langchart.Caption(res.Stats, cfg.Chart.WindowDays))
}

func newPublisher(cfg *config.Config) (*tg_publish.Publisher, error) {
	bot, err := tg_publish.NewBot(cfg.Telegram.BotToken)
	if err != nil {
		logging.LogError("Failed to initialize Telegram bot", zap.Error(err))
		return nil, err
	}
	return tg_publish.NewPublisher(bot, cfg.Telegram.ChatID)
}

// ensurePNGOutput defaults the preview next to the SVG: top-langs.svg -> top-langs.png.
func ensurePNGOutput(cfg *config.Config) {
	if cfg.Chart.PNGOutput != "" {
		return
	}
	cfg.Chart.PNGOutput = strings.TrimSuffix(cfg.Chart.Output, ".svg") + ".png"
}
