package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/YicongCao/LineQualityTester/src/analysis"
)

const (
	footerHeight = 18
	footerPad    = 6
	footerGap    = 14
	swatchWidth  = 8
)

var (
	footerBackground = color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	footerForeground = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// footerItem is one segment of the footer. Segments with a swatch repeat the colour of the series they describe.
type footerItem struct {
	swatch color.Color
	text   string
}

func footerItems(s analysis.Summary) []footerItem {
	return []footerItem{
		{text: fmt.Sprintf("%d samples %s-%s", s.Samples, clock(s.FirstHour), clock(s.LastHour))},
		{swatch: chart.ColorRed, text: fmt.Sprintf("avg %.1fms p95 %.1fms max %.1fms", s.AvgLatencyMs, s.P95LatencyMs, s.MaxLatencyMs)},
		{swatch: chart.ColorBlue, text: fmt.Sprintf("avg %.2f%% max %.2f%%", s.AvgLossPct, s.MaxLossPct)},
	}
}

// clock prints a fractional hour as HH:MM.
func clock(h float64) string {
	m := int(math.Round(h * 60))
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// drawFooter paints a full-width band along the bottom of img with the summary of s.
// Segments that do not fit the width are dropped. An empty summary leaves img untouched.
func drawFooter(img image.Image, s analysis.Summary) image.Image {
	if img == nil || s.Samples == 0 {
		return img
	}
	b := img.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, img, b.Min, draw.Src)
	band := image.Rect(b.Min.X, b.Max.Y-footerHeight, b.Max.X, b.Max.Y)
	draw.Draw(out, band, image.NewUniform(footerBackground), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	baseline := band.Min.Y + (footerHeight+face.Ascent)/2
	dr := &font.Drawer{Dst: out, Src: image.NewUniform(footerForeground), Face: face}
	x := b.Min.X + footerPad
	for _, it := range footerItems(s) {
		width := dr.MeasureString(it.text).Ceil()
		if it.swatch != nil {
			width += swatchWidth + 4
		}
		if x+width > b.Max.X-footerPad {
			break
		}
		if it.swatch != nil {
			sw := image.Rect(x, baseline-face.Ascent+2, x+swatchWidth, baseline)
			draw.Draw(out, sw, image.NewUniform(it.swatch), image.Point{}, draw.Src)
			x += swatchWidth + 4
		}
		dr.Dot = fixed.P(x, baseline)
		dr.DrawString(it.text)
		x = dr.Dot.X.Ceil() + footerGap
	}
	return out
}
