package charts

import (
	"fmt"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
)

// countTicks returns integer ticks from 0 up to at least maxCount using a
// 1/2/5 x 10^k step, so count axes never show fractional labels.
func countTicks(maxCount int, n int) []chart.Tick {
	if maxCount < 1 {
		maxCount = 1
	}
	if n < 2 {
		n = 2
	}
	step := niceStep(float64(maxCount) / float64(n-1))
	top := math.Ceil(float64(maxCount)/step) * step

	ticks := make([]chart.Tick, 0, int(top/step)+1)
	for v := 0.0; v <= top+step/2; v += step {
		ticks = append(ticks, chart.Tick{Value: v, Label: fmt.Sprintf("%.0f", v)})
	}
	return ticks
}

// niceStep rounds raw up to 1, 2 or 5 times a power of ten, never below 1.
func niceStep(raw float64) float64 {
	if raw <= 1 {
		return 1
	}
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	norm := raw / mag
	switch {
	case norm <= 1:
		return mag
	case norm <= 2:
		return 2 * mag
	case norm <= 5:
		return 5 * mag
	default:
		return 10 * mag
	}
}

// countAxis builds a Y axis spanning the ticks for maxCount.
func countAxis(name string, maxCount int) chart.YAxis {
	ticks := countTicks(maxCount, 6)
	return chart.YAxis{
		Name:  name,
		Range: &chart.ContinuousRange{Min: 0, Max: ticks[len(ticks)-1].Value},
		Ticks: ticks,
	}
}
