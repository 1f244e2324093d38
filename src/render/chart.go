// Package render draws a LogTable as a dual-axis PNG chart: latency on the left axis and
// loss percent on the right axis, both against the fractional hour of day.
//
// Every call builds its own chart.Chart and output buffer; nothing is shared between renders.
package render

import (
	"bytes"
	"fmt"
	"image/png"
	"math"
	"os"
	"path/filepath"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/YicongCao/LineQualityTester/src/analysis"
)

const (
	LatencyLabel = "latency(ms)"
	LossLabel    = "loss(%)"
	HourLabel    = "hour(h)"
)

// Options control the rendered image. Zero fields fall back to DefaultOptions.
type Options struct {
	Dir        string  // output directory
	Width      int     // pixels
	Height     int     // pixels
	LatencyMax float64 // left axis maximum (ms)
	LossMax    float64 // right axis maximum (%)
	Annotate   bool    // draw a summary footer onto the image
}

// DefaultOptions returns the stock chart settings.
func DefaultOptions() Options {
	return Options{Dir: ".", Width: 1024, Height: 600, LatencyMax: 600, LossMax: 100}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Dir == "" {
		o.Dir = d.Dir
	}
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if o.LatencyMax <= 0 {
		o.LatencyMax = d.LatencyMax
	}
	if o.LossMax <= 0 {
		o.LossMax = d.LossMax
	}
	return o
}

// RenderError reports a table that cannot be charted or a chart library failure.
type RenderError struct {
	Name   string
	Reason string
	Err    error
}

func (e *RenderError) Error() string {
	msg := fmt.Sprintf("render %s: %s", e.Name, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RenderError) Unwrap() error { return e.Err }

// OutputPath returns where a chart named base is written.
func OutputPath(dir, base string) string {
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, base+".png")
}

// RenderChart renders table with DefaultOptions and writes <outputBaseName>.png in the working directory.
func RenderChart(table *analysis.LogTable, outputBaseName string) error {
	return RenderChartWithOptions(table, outputBaseName, DefaultOptions())
}

// RenderChartWithOptions renders table and writes <opts.Dir>/<outputBaseName>.png, replacing any existing file.
// Nothing is written unless rendering succeeds.
func RenderChartWithOptions(table *analysis.LogTable, outputBaseName string, opts Options) error {
	opts = opts.withDefaults()
	img, err := RenderPNG(table, outputBaseName, opts)
	if err != nil {
		return err
	}
	out := OutputPath(opts.Dir, outputBaseName)
	if err := os.WriteFile(out, img, 0o644); err != nil {
		return &analysis.IOError{Op: "write", Path: out, Err: err}
	}
	return nil
}

// RenderPNG renders table into PNG bytes without touching the filesystem.
func RenderPNG(table *analysis.LogTable, title string, opts Options) ([]byte, error) {
	opts = opts.withDefaults()
	ch, err := BuildChart(table, title, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, &RenderError{Name: title, Reason: "chart render", Err: err}
	}
	if !opts.Annotate {
		return buf.Bytes(), nil
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, &RenderError{Name: title, Reason: "decode rendered chart", Err: err}
	}
	var out bytes.Buffer
	if err := png.Encode(&out, drawFooter(img, analysis.Summarize(table))); err != nil {
		return nil, &RenderError{Name: title, Reason: "encode annotated chart", Err: err}
	}
	return out.Bytes(), nil
}

// BuildSeries returns the latency and loss series of table, one point per record in table order.
// Values outside [0, axis maximum] are pinned to the nearest edge and marked with a dot.
func BuildSeries(table *analysis.LogTable, opts Options) (latency, loss chart.ContinuousSeries) {
	opts = opts.withDefaults()
	xs := table.Hours()
	latValues, latPinned := clampAll(table.Latencies(), opts.LatencyMax)
	lossValues, lossPinned := clampAll(table.LossPercents(), opts.LossMax)
	latency = chart.ContinuousSeries{
		Name:    LatencyLabel,
		XValues: xs,
		YValues: latValues,
		Style:   lineStyle(chart.ColorRed, latPinned),
	}
	loss = chart.ContinuousSeries{
		Name:    LossLabel,
		YAxis:   chart.YAxisSecondary,
		XValues: append([]float64(nil), xs...),
		YValues: lossValues,
		Style:   lineStyle(chart.ColorBlue, lossPinned),
	}
	return latency, loss
}

// BuildChart assembles the chart for table. The returned value is independent of any other call.
func BuildChart(table *analysis.LogTable, title string, opts Options) (*chart.Chart, error) {
	if table == nil {
		return nil, &RenderError{Name: title, Reason: "no table"}
	}
	if table.Len() == 0 {
		return nil, &RenderError{Name: title, Reason: "table has no records"}
	}
	for i, r := range table.Records {
		if !finite(r.DateTimeFloat) || !finite(r.Latency) || !finite(r.LossPercent) {
			return nil, &RenderError{Name: title, Reason: fmt.Sprintf("record %d", i+1), Err: analysis.ErrNotFinite}
		}
	}
	opts = opts.withDefaults()
	latency, loss := BuildSeries(table, opts)

	xMin, xMax := minMax(latency.XValues)
	xRange, xTicks := hourRangeAndTicks(xMin, xMax, 8)
	latRange, latTicks := fixedRangeAndTicks(opts.LatencyMax, 6)
	lossRange, lossTicks := fixedRangeAndTicks(opts.LossMax, 4)

	padBottom := 20
	if opts.Annotate {
		padBottom += footerHeight + 4
	}
	ch := &chart.Chart{
		Title:          title,
		Width:          opts.Width,
		Height:         opts.Height,
		Background:     chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: padBottom}},
		XAxis:          chart.XAxis{Name: HourLabel, Range: xRange, Ticks: xTicks},
		YAxis:          chart.YAxis{Name: LatencyLabel, Range: latRange, Ticks: latTicks},
		YAxisSecondary: chart.YAxis{Name: LossLabel, Range: lossRange, Ticks: lossTicks},
		Series:         []chart.Series{latency, loss},
	}
	ch.Elements = []chart.Renderable{chart.Legend(ch)}
	return ch, nil
}

const markerWidth = 4

// lineStyle draws a solid line with a dot on every marked point. A lone sample is always marked.
func lineStyle(col drawing.Color, marked []bool) chart.Style {
	st := chart.Style{StrokeColor: col, StrokeWidth: 1.5}
	if len(marked) == 1 {
		marked = []bool{true}
	}
	if !anyTrue(marked) {
		return st
	}
	st.DotColor = col
	st.DotWidthProvider = func(_, _ chart.Range, i int, _, _ float64) float64 {
		if i < len(marked) && marked[i] {
			return markerWidth
		}
		return 0
	}
	st.DotColorProvider = func(_, _ chart.Range, i int, _, _ float64) drawing.Color {
		if i < len(marked) && marked[i] {
			return col
		}
		return chart.ColorTransparent
	}
	return st
}

// clampAll pins vs into [0, max] in place and reports which indexes were moved.
func clampAll(vs []float64, max float64) ([]float64, []bool) {
	pinned := make([]bool, len(vs))
	for i, v := range vs {
		switch {
		case v > max:
			vs[i], pinned[i] = max, true
		case v < 0:
			vs[i], pinned[i] = 0, true
		}
	}
	return vs, pinned
}

func anyTrue(bs []bool) bool {
	for _, b := range bs {
		if b {
			return true
		}
	}
	return false
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func minMax(vs []float64) (float64, float64) {
	if len(vs) == 0 {
		return 0, 0
	}
	lo, hi := vs[0], vs[0]
	for _, v := range vs[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
