package charts

import (
	"fmt"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"

	"tweet-sentiment/src/pipeline"
	"tweet-sentiment/src/tweets"
)

// SentimentBars draws the all-categories chart: a Positif group and a
// Negatif group, one bar per category in each.
func SentimentBars(w io.Writer, counts []pipeline.CategoryCount, opts Options) error {
	opts = opts.withDefaults()

	var bars []chart.Value
	maxCount := 0
	for _, s := range []tweets.Sentiment{tweets.Positive, tweets.Negative} {
		for _, cc := range counts {
			v := cc.Positive
			if s == tweets.Negative {
				v = cc.Negative
			}
			if v > maxCount {
				maxCount = v
			}
			bars = append(bars, chart.Value{
				Label: fmt.Sprintf("%s %s", s.Label(), cc.Category.DisplayName()),
				Value: float64(v),
				Style: fillStyle(categoryColors[cc.Category]),
			})
		}
	}
	if len(bars) == 0 {
		return ErrNoData
	}

	return renderBars(w, "Jumlah Sentimen Positif dan Negatif pada Seluruh Kategori", bars, maxCount, opts)
}

// CategoryBars draws the positive and negative counts of one category.
func CategoryBars(w io.Writer, c tweets.Category, counts pipeline.SentimentCount, opts Options) error {
	opts = opts.withDefaults()

	bars := []chart.Value{
		{Label: tweets.Positive.Label(), Value: float64(counts.Positive), Style: fillStyle(sentimentColor(tweets.Positive))},
		{Label: tweets.Negative.Label(), Value: float64(counts.Negative), Style: fillStyle(sentimentColor(tweets.Negative))},
	}
	maxCount := counts.Positive
	if counts.Negative > maxCount {
		maxCount = counts.Negative
	}

	return renderBars(w, "Jumlah Sentimen Positif dan Negatif pada Kategori "+string(c), bars, maxCount, opts)
}

func renderBars(w io.Writer, title string, bars []chart.Value, maxCount int, opts Options) error {
	// Fit every bar and its gap inside the canvas
	slot := max((opts.Width-120)/len(bars), 3)
	barWidth := slot * 2 / 3
	if barWidth > 160 {
		barWidth = 160
	}

	graph := chart.BarChart{
		Title:      title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20}},
		BarWidth:   barWidth,
		BarSpacing: slot - barWidth,
		YAxis:      countAxis("Jumlah", maxCount),
		Bars:       bars,
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render bar chart: %w", err)
	}
	return nil
}
