// Package charts renders the dashboard's PNG charts with go-chart.
package charts

import (
	"errors"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"tweet-sentiment/src/tweets"
)

// ErrNoData is returned when there is nothing to draw, e.g. a date range
// without tweets or a category without positive tweets.
var ErrNoData = errors.New("no data to plot")

// Options sizes a chart in pixels. Zero values use the defaults.
type Options struct {
	Width  int
	Height int
}

const (
	DefaultWidth  = 1000
	DefaultHeight = 500

	// Smaller canvases are raised to these; the axes and titles need the room.
	MinWidth  = 320
	MinHeight = 200
)

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	o.Width = max(o.Width, MinWidth)
	o.Height = max(o.Height, MinHeight)
	return o
}

var (
	PositiveColor = chart.ColorBlue
	NegativeColor = chart.ColorRed
)

// categoryColors follows the plotly default qualitative palette.
var categoryColors = map[tweets.Category]drawing.Color{
	tweets.WisataHiburan:          drawing.ColorFromHex("636EFA"),
	tweets.Pendidikan:             drawing.ColorFromHex("EF553B"),
	tweets.FasilitasLayananPublik: drawing.ColorFromHex("00CC96"),
	tweets.Kuliner:                drawing.ColorFromHex("AB63FA"),
}

func sentimentColor(s tweets.Sentiment) drawing.Color {
	if s == tweets.Positive {
		return PositiveColor
	}
	return NegativeColor
}

func fillStyle(c drawing.Color) chart.Style {
	return chart.Style{FillColor: c, StrokeColor: c, StrokeWidth: 1}
}
