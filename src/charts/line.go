package charts

import (
	"fmt"
	"io"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"tweet-sentiment/src/pipeline"
	"tweet-sentiment/src/tweets"
)

// lineStyle draws a line with visible dots so isolated days still show up.
func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor: col,
		StrokeWidth: 2,
		DotColor:    col,
		DotWidth:    3,
	}
}

// TimelineChart draws the Positif and Negatif series of one category per day.
func TimelineChart(w io.Writer, c tweets.Category, points []pipeline.TimelinePoint, opts Options) error {
	if len(points) == 0 {
		return ErrNoData
	}
	opts = opts.withDefaults()

	times := make([]time.Time, 0, len(points)+1)
	positives := make([]float64, 0, len(points)+1)
	negatives := make([]float64, 0, len(points)+1)
	maxCount := 0
	for _, p := range points {
		times = append(times, p.Date)
		positives = append(positives, float64(p.Positive))
		negatives = append(negatives, float64(p.Negative))
		if p.Positive > maxCount {
			maxCount = p.Positive
		}
		if p.Negative > maxCount {
			maxCount = p.Negative
		}
	}
	// Pad to at least two X values for go-chart
	if len(times) == 1 {
		times = append(times, times[0].Add(time.Second))
		positives = append(positives, positives[0])
		negatives = append(negatives, negatives[0])
	}

	graph := chart.Chart{
		Title:      "Line Plot Positif dan Negatif berdasarkan Kategori: " + string(c),
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20}},
		XAxis:      chart.XAxis{Name: tweets.DateColumn, ValueFormatter: chart.TimeDateValueFormatter},
		YAxis:      countAxis("value", maxCount),
		Series: []chart.Series{
			chart.TimeSeries{Name: tweets.Positive.Label(), XValues: times, YValues: positives, Style: lineStyle(sentimentColor(tweets.Positive))},
			chart.TimeSeries{Name: tweets.Negative.Label(), XValues: times, YValues: negatives, Style: lineStyle(sentimentColor(tweets.Negative))},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render timeline chart: %w", err)
	}
	return nil
}
