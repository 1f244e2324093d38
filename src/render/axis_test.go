package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"
	"testing"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/YicongCao/LineQualityTester/src/analysis"
)

func TestBuildRangeAndTicksCoversData(t *testing.T) {
	rng, ticks := hourRangeAndTicks(0.25, 23.9, 8)
	if len(ticks) < 2 {
		t.Fatalf("expected ticks, got %d", len(ticks))
	}
	if rng.Min > 0.25 || rng.Max < 23.9 {
		t.Fatalf("range [%v,%v] must cover data", rng.Min, rng.Max)
	}
	first, last := ticks[0].Value, ticks[len(ticks)-1].Value
	if math.Abs(rng.Min-first) > 1e-9 || math.Abs(rng.Max-last) > 1e-9 {
		t.Fatalf("range [%v,%v] should match tick span [%v,%v]", rng.Min, rng.Max, first, last)
	}
}

func TestBuildRangeAndTicksDegenerate(t *testing.T) {
	rng, ticks := hourRangeAndTicks(8.5, 8.5, 8)
	if rng.Min >= rng.Max {
		t.Fatalf("expected widened range; got %v >= %v", rng.Min, rng.Max)
	}
	if rng.Min > 8.5 || rng.Max < 8.5 {
		t.Fatalf("widened range must still contain the point: [%v,%v]", rng.Min, rng.Max)
	}
	if len(ticks) < 2 {
		t.Fatalf("expected >=2 ticks, got %d", len(ticks))
	}
}

func TestFixedRangeAndTicks(t *testing.T) {
	rng, ticks := fixedRangeAndTicks(100, 4)
	if rng.Min != 0 || rng.Max != 100 {
		t.Fatalf("expected [0,100], got [%v,%v]", rng.Min, rng.Max)
	}
	want := []string{"0", "25", "50", "75", "100"}
	if len(ticks) != len(want) {
		t.Fatalf("expected %d ticks, got %d", len(want), len(ticks))
	}
	for i, tk := range ticks {
		if tk.Label != want[i] {
			t.Fatalf("tick %d label %q want %q", i, tk.Label, want[i])
		}
	}
}

func TestHourTicksSteps(t *testing.T) {
	cases := []struct {
		min, max float64
		want     []string
	}{
		{0.25, 23.9, []string{"0", "4", "8", "12", "16", "20", "24"}},
		{9.1, 9.9, []string{"9", "9.25", "9.5", "9.75", "10"}},
		{8, 11.5, []string{"8", "8.5", "9", "9.5", "10", "10.5", "11", "11.5"}},
	}
	for _, c := range cases {
		ticks := hourTicks(c.min, c.max, 8)
		var got []string
		for _, tk := range ticks {
			got = append(got, tk.Label)
		}
		if strings.Join(got, ",") != strings.Join(c.want, ",") {
			t.Fatalf("hourTicks(%v,%v)=%v want %v", c.min, c.max, got, c.want)
		}
	}
	if hourTicks(1, 0, 8) != nil || hourTicks(0, 1, 1) != nil {
		t.Fatalf("invalid input should yield no ticks")
	}
}

func TestFormatTick(t *testing.T) {
	cases := map[float64]string{0: "0", 600: "600", 12: "12", 12.5: "12.5", 2.5: "2.5", 3: "3", 100.0 / 3: "33.33"}
	for v, want := range cases {
		if got := formatTick(v); got != want {
			t.Fatalf("formatTick(%v)=%q want %q", v, got, want)
		}
	}
}

func whiteImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return img
}

func TestDrawFooterBand(t *testing.T) {
	s := analysis.Summary{Samples: 2, FirstHour: 0, LastHour: 12, AvgLatencyMs: 15, P95LatencyMs: 20, MaxLatencyMs: 20, AvgLossPct: 2.5, MaxLossPct: 5}
	out := drawFooter(whiteImage(800, 100), s)
	if out.Bounds() != image.Rect(0, 0, 800, 100) {
		t.Fatalf("footer must keep the image size, got %v", out.Bounds())
	}
	if c := color.RGBAModel.Convert(out.At(1, 99)); c != footerBackground {
		t.Fatalf("expected footer band at the bottom edge, got %v", c)
	}
	if c := color.RGBAModel.Convert(out.At(1, 50)); c != (color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}) {
		t.Fatalf("chart area above the band must be untouched, got %v", c)
	}
	red, blue := false, false
	for y := 100 - footerHeight; y < 100; y++ {
		for x := 0; x < 800; x++ {
			switch color.RGBAModel.Convert(out.At(x, y)) {
			case color.RGBAModel.Convert(chart.ColorRed):
				red = true
			case color.RGBAModel.Convert(chart.ColorBlue):
				blue = true
			}
		}
	}
	if !red || !blue {
		t.Fatalf("expected latency and loss swatches in the footer: red=%v blue=%v", red, blue)
	}
}

func TestDrawFooterEmptySummary(t *testing.T) {
	src := whiteImage(200, 50)
	if drawFooter(src, analysis.Summary{}) != image.Image(src) {
		t.Fatalf("empty summary should return the input unchanged")
	}
}

func TestFooterItems(t *testing.T) {
	items := footerItems(analysis.Summary{Samples: 3, FirstHour: 9.5, LastHour: 23.99, AvgLatencyMs: 15, P95LatencyMs: 20, MaxLatencyMs: 21, AvgLossPct: 1, MaxLossPct: 5})
	if len(items) != 3 {
		t.Fatalf("expected 3 footer segments, got %d", len(items))
	}
	if items[0].text != "3 samples 09:30-23:59" || items[0].swatch != nil {
		t.Fatalf("unexpected first segment %+v", items[0])
	}
	if !strings.Contains(items[1].text, "p95 20.0ms") || items[1].swatch != chart.ColorRed {
		t.Fatalf("unexpected latency segment %+v", items[1])
	}
	if !strings.Contains(items[2].text, "max 5.00%") || items[2].swatch != chart.ColorBlue {
		t.Fatalf("unexpected loss segment %+v", items[2])
	}
}
