package charts

import (
	"bytes"
	"encoding/xml"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"langchart/internal/features/langstats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type svgDoc struct {
	Width  string    `xml:"width,attr"`
	Height string    `xml:"height,attr"`
	Rects  []svgRect `xml:"rect"`
	Texts  []svgText `xml:"text"`
}

type svgRect struct {
	X     string `xml:"x,attr"`
	Y     string `xml:"y,attr"`
	Width string `xml:"width,attr"`
	Fill  string `xml:"fill,attr"`
}

type svgText struct {
	X     string `xml:"x,attr"`
	Y     string `xml:"y,attr"`
	Fill  string `xml:"fill,attr"`
	Value string `xml:",chardata"`
}

func parseSVG(t *testing.T, data []byte) svgDoc {
	t.Helper()
	var doc svgDoc
	require.NoError(t, xml.Unmarshal(data, &doc))
	return doc
}

func goRust() []langstats.LanguageStat {
	return []langstats.LanguageStat{
		{Name: "Go", Hours: 1, Percent: 50},
		{Name: "Rust", Hours: 1, Percent: 50},
	}
}

func TestChartHeight(t *testing.T) {
	assert.Equal(t, 40.0, ChartHeight(0))
	assert.Equal(t, 110.0, ChartHeight(2))
	assert.Equal(t, 215.0, ChartHeight(5))
}

func TestRenderSVG_GoRust(t *testing.T) {
	out := RenderSVG(goRust())
	doc := parseSVG(t, out)

	assert.Equal(t, "400", doc.Width)
	assert.Equal(t, "110", doc.Height)

	// background, then track+bar per language
	require.Len(t, doc.Rects, 5)
	assert.Equal(t, "#fff", doc.Rects[0].Fill)

	assert.Equal(t, "20", doc.Rects[1].Y)
	assert.Equal(t, "360", doc.Rects[1].Width)
	assert.Equal(t, "#eee", doc.Rects[1].Fill)
	assert.Equal(t, "180", doc.Rects[2].Width)
	assert.Equal(t, "#00ADD8", doc.Rects[2].Fill)

	assert.Equal(t, "55", doc.Rects[3].Y)
	assert.Equal(t, "#dea584", doc.Rects[4].Fill)

	require.Len(t, doc.Texts, 2)
	assert.Equal(t, "Go 1.00 hrs (50.00%)", doc.Texts[0].Value)
	assert.Equal(t, "25", doc.Texts[0].X)
	assert.Equal(t, "35", doc.Texts[0].Y)
	assert.Equal(t, "Rust 1.00 hrs (50.00%)", doc.Texts[1].Value)
	assert.Equal(t, "70", doc.Texts[1].Y)

	// #00ADD8 brightness 126.2 -> white; #dea584 brightness 178.3 -> dark
	assert.Equal(t, "#fff", doc.Texts[0].Fill)
	assert.Equal(t, "#333", doc.Texts[1].Fill)
}

func TestRenderSVG_Empty(t *testing.T) {
	doc := parseSVG(t, RenderSVG(nil))

	assert.Equal(t, "40", doc.Height)
	require.Len(t, doc.Rects, 1)
	assert.Empty(t, doc.Texts)
}

func TestRenderSVG_UnknownLanguageFallsBackToGray(t *testing.T) {
	doc := parseSVG(t, RenderSVG([]langstats.LanguageStat{{Name: "COBOL", Hours: 2, Percent: 100}}))

	require.Len(t, doc.Rects, 3)
	assert.Equal(t, "#888", doc.Rects[2].Fill)
	assert.Equal(t, "#fff", doc.Texts[0].Fill)
}

func TestRenderSVG_EscapesNames(t *testing.T) {
	out := RenderSVG([]langstats.LanguageStat{{Name: "C<&>", Hours: 0.5, Percent: 12.5}})

	assert.Contains(t, string(out), "C&lt;&amp;&gt;")
	doc := parseSVG(t, out)
	assert.Equal(t, "C<&> 0.50 hrs (12.50%)", doc.Texts[0].Value)
}

func TestRenderSVG_PartialBarWidth(t *testing.T) {
	doc := parseSVG(t, RenderSVG([]langstats.LanguageStat{{Name: "Go", Hours: 1, Percent: 25}}))
	assert.Equal(t, "90", doc.Rects[2].Width)
}

func TestBrightness(t *testing.T) {
	assert.InDelta(t, 136.0, Brightness("#888"), 1e-9)
	assert.InDelta(t, 136.0, Brightness("#888888"), 1e-9)
	assert.InDelta(t, 255.0, Brightness("#fff"), 1e-9)
	assert.InDelta(t, 0.0, Brightness("#000000"), 1e-9)
	assert.InDelta(t, 0.0, Brightness("not-a-color"), 1e-9)
}

func TestTextColor_Threshold(t *testing.T) {
	// #a0a0a0 is exactly 160: not brighter than the threshold
	assert.InDelta(t, 160.0, Brightness("#a0a0a0"), 1e-9)
	assert.Equal(t, "#fff", TextColor("#a0a0a0"))
	assert.Equal(t, "#333", TextColor("#a1a1a1"))
	assert.Equal(t, "#fff", TextColor(langstats.DefaultColor))
	assert.Equal(t, "#333", TextColor("#f7df1e"))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Python 12.35 hrs (3.00%)",
		Label(langstats.LanguageStat{Name: "Python", Hours: 12.3456, Percent: 2.999}))
}

func TestRenderPNG_Dimensions(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPNG(goRust(), &buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 220, img.Bounds().Dy())
}

func TestSavePNG_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "preview.png")
	require.NoError(t, SavePNG(nil, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 80, img.Bounds().Dy())
}
