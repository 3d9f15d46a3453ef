package charts

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"langchart/internal/features/langstats"
)

// RenderSVG builds the top-languages chart as an SVG document.
func RenderSVG(stats []langstats.LanguageStat) []byte {
	layout := NewLayout(stats)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s">`+"\n",
		num(layout.Width), num(layout.Height))
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", backgroundColor)

	for _, row := range layout.Rows {
		// track
		fmt.Fprintf(&buf, `  <rect x="%s" y="%s" width="%s" height="%s" rx="%s" fill="%s"/>`+"\n",
			num(padding), num(row.Y), num(row.TrackWidth), num(barHeight), num(barRadius), trackColor)
		// bar
		fmt.Fprintf(&buf, `  <rect x="%s" y="%s" width="%s" height="%s" rx="%s" fill="%s"/>`+"\n",
			num(padding), num(row.Y), num(row.BarWidth), num(barHeight), num(barRadius), row.Color)

		fmt.Fprintf(&buf, `  <text x="%s" y="%s" font-family="sans-serif" font-size="%s" fill="%s">`,
			num(padding+labelOffsetX), num(row.Y+barHeight-labelOffsetY), num(labelFont), row.TextColor)
		xml.EscapeText(&buf, []byte(row.Label))
		buf.WriteString("</text>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// num prints the shortest decimal form: 360, not 360.000000.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
