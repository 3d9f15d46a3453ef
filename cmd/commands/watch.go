package commands

// Command to keep the chart fresh in a long-running process
// Regenerates every watch.interval seconds, optionally publishing each refresh
// Implements graceful shutdown for proper termination

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"langchart/internal/features/langchart"
	"langchart/internal/features/tg_publish"
	logging "langchart/internal/infra/log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate the chart on an interval",
		Long:  `Regenerate the chart immediately and then every watch.interval seconds until interrupted.`,
		RunE:  runWatch,
	}
	cmd.Flags().Int("watch.interval", 3600, "Seconds between refreshes (env: WATCH_INTERVAL)")
	cmd.Flags().Bool("publish", false, "Also send every refresh to Telegram")
	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	interval := time.Duration(cfg.Watch.Interval) * time.Second
	if interval <= 0 {
		interval = time.Hour
	}

	var publisher *tg_publish.Publisher
	if publish, _ := cmd.Flags().GetBool("publish"); publish {
		if err := cfg.ValidateTelegram(); err != nil {
			logging.LogError("Failed to load config", zap.Error(err))
			return err
		}
		ensurePNGOutput(cfg)
		if publisher, err = newPublisher(cfg); err != nil {
			return err
		}
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	gen := newGenerator(cfg)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		gen.Watch(ctx, interval, func(res *langchart.Result) {
			if publisher == nil {
				return
			}
			caption := langchart.Caption(res.Stats, cfg.Chart.WindowDays)
			if err := publisher.PublishChart(res.PNGPath, caption); err != nil {
				logging.LogError("Failed to publish chart", zap.Error(err))
			}
		})
	}()

	logging.LogSuccess("Chart watcher is running", zap.Duration("interval", interval))

	<-ctx.Done()
	logging.LogInfo("Shutdown signal received, gracefully stopping...")
	cancel()

	waitStopped(&wg, 10*time.Second)
	return nil
}

func waitStopped(wg *sync.WaitGroup, timeout time.Duration) {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logging.LogSuccess("Chart watcher stopped gracefully")
	case <-time.After(timeout):
		logging.LogWarn("Timeout waiting for watcher to stop")
	}
}
