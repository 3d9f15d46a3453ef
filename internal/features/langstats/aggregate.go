package langstats

import (
	"sort"

	"langchart/internal/clients_api/wakatime"
)

const (
	secondsPerHour = 3600.0

	// DefaultTopN is how many languages the chart shows.
	DefaultTopN = 5
)

// LanguageTotal is the summed time of one language over the window.
type LanguageTotal struct {
	Name         string
	TotalSeconds float64
}

// LanguageStat is a language's share of the window.
type LanguageStat struct {
	Name    string
	Hours   float64
	Percent float64
}

// Totals sums text_seconds per language name across all days.
// The result is in first-encountered order.
func Totals(days []wakatime.DailySummary) []LanguageTotal {
	index := make(map[string]int)
	var totals []LanguageTotal

	for _, day := range days {
		for _, lang := range day.Languages {
			i, ok := index[lang.Name]
			if !ok {
				i = len(totals)
				index[lang.Name] = i
				totals = append(totals, LanguageTotal{Name: lang.Name})
			}
			totals[i].TotalSeconds += lang.TextSeconds
		}
	}

	return totals
}

// Aggregate converts daily summaries into per-language stats over the whole
// window, sorted by descending hours with ties kept in first-encountered order.
// A window with no recorded time at all yields no stats; otherwise every language
// seen is kept, including ones at 0 seconds.
func Aggregate(days []wakatime.DailySummary) []LanguageStat {
	totals := Totals(days)

	var sum float64
	for _, t := range totals {
		sum += t.TotalSeconds
	}
	if sum == 0 {
		return []LanguageStat{}
	}
	grandTotal := max(sum, 1)

	stats := make([]LanguageStat, 0, len(totals))
	for _, t := range totals {
		stats = append(stats, LanguageStat{
			Name:    t.Name,
			Hours:   t.TotalSeconds / secondsPerHour,
			Percent: t.TotalSeconds / grandTotal * 100,
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Hours > stats[j].Hours
	})

	return stats
}

// Top returns the first n entries of the aggregated stats.
func Top(days []wakatime.DailySummary, n int) []LanguageStat {
	stats := Aggregate(days)
	if n >= 0 && len(stats) > n {
		stats = stats[:n]
	}
	return stats
}
