package wakatime

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"langchart/internal/infra/log"

	"go.uber.org/zap"
)

const summariesEndpoint = "/users/current/summaries"

// SummariesResponse - body of GET /users/current/summaries
type SummariesResponse struct {
	Data []DailySummary `json:"data"`
}

// DailySummary - one day of activity
type DailySummary struct {
	Languages []LanguageEntry `json:"languages"`
	Range     SummaryRange    `json:"range"`
}

// LanguageEntry - time spent in one language on one day
type LanguageEntry struct {
	Name        string  `json:"name"`
	TextSeconds float64 `json:"text_seconds"` // absent = 0
}

type SummaryRange struct {
	Date string `json:"date"`
}

// DateWindow returns the start and end dates of a window of days ending today.
// Dates are taken from the UTC calendar, matching the ISO-8601 date the API expects.
func DateWindow(now time.Time, days int) (start, end string) {
	now = now.UTC()
	return now.AddDate(0, 0, -days).Format(time.DateOnly), now.Format(time.DateOnly)
}

// GetSummaries fetches daily summaries for the window of days ending today. A response without
// a data field yields an empty slice.
func (c *Client) GetSummaries(ctx context.Context, days int) ([]DailySummary, error) {
	start, end := DateWindow(c.now(), days)

	endpoint := fmt.Sprintf("%s?start=%s&end=%s", summariesEndpoint, start, end)

	respBody, err := c.MakeRequest(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to get summaries: %w", err)
	}

	log.LogJSON(respBody, "WakaTime summaries response")

	var summariesResp SummariesResponse
	if err := json.Unmarshal(respBody, &summariesResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal summaries response: %w", err)
	}

	if summariesResp.Data == nil {
		summariesResp.Data = []DailySummary{}
	}

	for i, day := range summariesResp.Data {
		log.LogDebug("Summary day",
			zap.Int("index", i),
			zap.String("date", day.Range.Date),
			zap.Int("languages", len(day.Languages)))
	}

	log.LogInfo("Fetched summaries",
		zap.String("start", start),
		zap.String("end", end),
		zap.Int("days", len(summariesResp.Data)))

	return summariesResp.Data, nil
}
