package charts

import (
	"fmt"
	"strconv"
	"strings"

	"langchart/internal/features/langstats"
)

const (
	chartWidth = 400.0
	padding    = 20.0
	barHeight  = 20.0
	barGap     = 15.0
	barRadius  = 6.0

	labelOffsetX = 5.0
	labelOffsetY = 5.0 // up from the bar's bottom edge
	labelFont    = 12.0

	backgroundColor = "#fff"
	trackColor      = "#eee"
	darkTextColor   = "#333"
	lightTextColor  = "#fff"

	// bars brighter than this get dark labels
	brightnessThreshold = 160.0
)

// Row is the geometry of one language bar.
type Row struct {
	Stat       langstats.LanguageStat
	Y          float64
	TrackWidth float64
	BarWidth   float64
	Color      string
	TextColor  string
	Label      string
}

// Layout is the chart geometry shared by the SVG and PNG renderers.
type Layout struct {
	Width  float64
	Height float64
	Rows   []Row
}

// ChartHeight keeps the trailing gap after the last row: n*(barHeight+barGap) + 2*padding.
func ChartHeight(n int) float64 {
	return float64(n)*(barHeight+barGap) + padding*2
}

// NewLayout computes bar positions, widths, colors and labels for stats.
func NewLayout(stats []langstats.LanguageStat) Layout {
	trackWidth := chartWidth - padding*2

	rows := make([]Row, 0, len(stats))
	for i, s := range stats {
		fill := langstats.ColorFor(s.Name)
		rows = append(rows, Row{
			Stat:       s,
			Y:          padding + float64(i)*(barHeight+barGap),
			TrackWidth: trackWidth,
			BarWidth:   s.Percent / 100 * trackWidth,
			Color:      fill,
			TextColor:  TextColor(fill),
			Label:      Label(s),
		})
	}

	return Layout{
		Width:  chartWidth,
		Height: ChartHeight(len(stats)),
		Rows:   rows,
	}
}

// Label formats "<name> <hours> hrs (<percent>%)" with two decimals.
func Label(s langstats.LanguageStat) string {
	return fmt.Sprintf("%s %.2f hrs (%.2f%%)", s.Name, s.Hours, s.Percent)
}

// TextColor picks a readable label color for a bar fill.
func TextColor(fill string) string {
	if Brightness(fill) > brightnessThreshold {
		return darkTextColor
	}
	return lightTextColor
}

// Brightness returns the perceived brightness (299R+587G+114B)/1000 of a
// "#rgb" or "#rrggbb" color. Unparseable colors count as black.
func Brightness(hex string) float64 {
	r, g, b, ok := parseHexColor(hex)
	if !ok {
		return 0
	}
	return (299*float64(r) + 587*float64(g) + 114*float64(b)) / 1000
}

func parseHexColor(hex string) (r, g, b uint8, ok bool) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return 0, 0, 0, false
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}
