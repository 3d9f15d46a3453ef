package langchart

// Pipeline of one chart refresh: fetch summaries, aggregate, render, write

import (
	"context"
	"fmt"
	"time"

	"langchart/internal/clients_api/wakatime"
	"langchart/internal/features/charts"
	"langchart/internal/features/langstats"
	storage "langchart/internal/infra/fs"
	logging "langchart/internal/infra/log"

	"go.uber.org/zap"
)

// SummariesFetcher is the part of the WakaTime client the pipeline needs.
type SummariesFetcher interface {
	GetSummaries(ctx context.Context, days int) ([]wakatime.DailySummary, error)
}

type Options struct {
	WindowDays int
	TopN       int
	SVGPath    string
	PNGPath    string // empty = skip the preview
}

// Result describes a finished refresh.
type Result struct {
	Stats   []langstats.LanguageStat
	SVGPath string
	PNGPath string
}

type Generator struct {
	fetcher SummariesFetcher
	opts    Options
}

func NewGenerator(fetcher SummariesFetcher, opts Options) *Generator {
	if opts.WindowDays <= 0 {
		opts.WindowDays = 7
	}
	if opts.TopN <= 0 {
		opts.TopN = langstats.DefaultTopN
	}
	return &Generator{fetcher: fetcher, opts: opts}
}

// Run performs one refresh. Nothing is written when the fetch fails.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	startTime := time.Now()

	days, err := g.fetcher.GetSummaries(ctx, g.opts.WindowDays)
	if err != nil {
		return nil, err
	}

	top := langstats.Top(days, g.opts.TopN)
	for i, s := range top {
		logging.LogDebug("Top language",
			zap.Int("rank", i+1),
			zap.String("name", s.Name),
			zap.Float64("hours", s.Hours),
			zap.Float64("percent", s.Percent))
	}

	if err := storage.SaveChart(g.opts.SVGPath, charts.RenderSVG(top)); err != nil {
		return nil, err
	}

	result := &Result{Stats: top, SVGPath: g.opts.SVGPath}

	if g.opts.PNGPath != "" {
		if err := charts.SavePNG(top, g.opts.PNGPath); err != nil {
			return nil, fmt.Errorf("failed to render png preview: %w", err)
		}
		result.PNGPath = g.opts.PNGPath
	}

	logging.LogSuccess(fmt.Sprintf("SVG generated: %s", g.opts.SVGPath),
		zap.Int("languages", len(top)),
		zap.Int64("duration_ms", time.Since(startTime).Milliseconds()))

	return result, nil
}

// Caption summarizes the stats as plain text, one language per line.
func Caption(stats []langstats.LanguageStat, windowDays int) string {
	if len(stats) == 0 {
		return fmt.Sprintf("No coding activity in the last %d days", windowDays)
	}
	caption := fmt.Sprintf("Top languages, last %d days", windowDays)
	for i, s := range stats {
		caption += fmt.Sprintf("\n%d. %s", i+1, charts.Label(s))
	}
	return caption
}
