package render

import (
	"math"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
)

// hourSteps are the x tick spacings in hours, finest first. All are exact in binary,
// so start+i*step never drifts off the boundary.
var hourSteps = []float64{0.25, 0.5, 1, 2, 3, 4, 6, 12}

// hourRangeAndTicks returns hour ticks covering [min, max] and a range equal to the tick span.
// A single instant is widened by half an hour on each side.
func hourRangeAndTicks(min, max float64, n int) (*chart.ContinuousRange, []chart.Tick) {
	if max <= min {
		min, max = min-0.5, max+0.5
	}
	ticks := hourTicks(min, max, n)
	if len(ticks) < 2 {
		return &chart.ContinuousRange{Min: min, Max: max}, ticks
	}
	return &chart.ContinuousRange{Min: ticks[0].Value, Max: ticks[len(ticks)-1].Value}, ticks
}

// hourTicks places ticks on the finest step in hourSteps that needs at most n ticks to cover [min, max].
// The coarsest step is used when none fits.
func hourTicks(min, max float64, n int) []chart.Tick {
	if n < 2 || max < min {
		return nil
	}
	step := hourSteps[len(hourSteps)-1]
	for _, s := range hourSteps {
		if math.Ceil(max/s)-math.Floor(min/s)+1 <= float64(n) {
			step = s
			break
		}
	}
	first, last := math.Floor(min/step), math.Ceil(max/step)
	if last == first {
		last++
	}
	ticks := make([]chart.Tick, 0, int(last-first)+1)
	for k := first; k <= last; k++ {
		v := k * step
		ticks = append(ticks, chart.Tick{Value: v, Label: formatTick(v)})
	}
	return ticks
}

// fixedRangeAndTicks anchors the axis at zero with a fixed maximum and evenly spaced ticks
// (max=100, steps=4 -> 0,25,50,75,100).
func fixedRangeAndTicks(max float64, steps int) (*chart.ContinuousRange, []chart.Tick) {
	if steps < 1 {
		steps = 1
	}
	ticks := make([]chart.Tick, 0, steps+1)
	for i := 0; i <= steps; i++ {
		v := max * float64(i) / float64(steps)
		ticks = append(ticks, chart.Tick{Value: v, Label: formatTick(v)})
	}
	return &chart.ContinuousRange{Min: 0, Max: max}, ticks
}

// formatTick prints v with at most two decimals and no trailing zeros.
func formatTick(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
