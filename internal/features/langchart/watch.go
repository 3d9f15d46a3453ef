package langchart

import (
	"context"
	"time"

	logging "langchart/internal/infra/log"

	"go.uber.org/zap"
)

// Watch refreshes the chart immediately and then every interval until ctx is done.
// A failed refresh is logged; the next tick runs as usual.
func (g *Generator) Watch(ctx context.Context, interval time.Duration, onResult func(*Result)) {
	logging.LogInfo("Starting chart watcher", zap.Duration("interval", interval))

	refresh := func() {
		res, err := g.Run(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logging.LogError("Chart refresh failed", zap.Error(err))
			return
		}
		if onResult != nil {
			onResult(res)
		}
	}

	refresh()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.LogInfo("Chart watcher stopped")
			return
		case <-ticker.C:
			refresh()
		}
	}
}
