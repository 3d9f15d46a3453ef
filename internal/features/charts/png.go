package charts

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"langchart/internal/features/langstats"
	logging "langchart/internal/infra/log"

	"github.com/fogleman/gg"
	"go.uber.org/zap"
)

// pngScale renders the preview at 2x so Telegram does not blur it.
const pngScale = 2.0

// fontPaths are tried in order; gg's built-in 7x13 face is the fallback.
var fontPaths = []string{
	"etc/fonts/Inter-Regular.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
	"/Library/Fonts/Arial.ttf",
	"/System/Library/Fonts/Supplemental/Arial.ttf",
}

// RenderPNG draws the same chart as RenderSVG into a raster image.
func RenderPNG(stats []langstats.LanguageStat, w io.Writer) error {
	dc := newPNGContext(NewLayout(stats))
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// SavePNG renders the preview to path, creating the parent directory.
func SavePNG(stats []langstats.LanguageStat, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create png directory: %w", err)
	}

	dc := newPNGContext(NewLayout(stats))
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save png: %w", err)
	}
	return nil
}

func newPNGContext(layout Layout) *gg.Context {
	dc := gg.NewContext(int(layout.Width*pngScale), int(layout.Height*pngScale))
	dc.Scale(pngScale, pngScale)

	dc.SetHexColor(backgroundColor)
	dc.Clear()

	loadFont(dc)

	for _, row := range layout.Rows {
		dc.SetHexColor(trackColor)
		dc.DrawRoundedRectangle(padding, row.Y, row.TrackWidth, barHeight, barRadius)
		dc.Fill()

		if row.BarWidth > 0 {
			dc.SetHexColor(row.Color)
			dc.DrawRoundedRectangle(padding, row.Y, row.BarWidth, barHeight, min(barRadius, row.BarWidth/2))
			dc.Fill()
		}

		dc.SetHexColor(row.TextColor)
		dc.DrawString(row.Label, padding+labelOffsetX, row.Y+barHeight-labelOffsetY)
	}

	return dc
}

func loadFont(dc *gg.Context) {
	for _, path := range fontPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := dc.LoadFontFace(path, labelFont); err != nil {
			logging.LogWarn("Font file exists but failed to load", zap.String("path", path), zap.Error(err))
			continue
		}
		logging.LogDebug("Loaded chart font", zap.String("path", path))
		return
	}
	logging.LogDebug("No TTF font found, using built-in face", zap.Int("paths_checked", len(fontPaths)))
}
