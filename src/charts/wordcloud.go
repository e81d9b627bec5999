package charts

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/golang/freetype/truetype"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"tweet-sentiment/src/pipeline"
	"tweet-sentiment/src/tweets"
)

// WordCloudOptions configures WordCloud. Zero values use the defaults.
type WordCloudOptions struct {
	Width       int
	Height      int
	MaxWords    int
	MinFontSize float64
	MaxFontSize float64
}

const (
	DefaultCloudWidth    = 800
	DefaultCloudHeight   = 400
	DefaultCloudMaxWords = 200

	titleBand = 36
)

func (o WordCloudOptions) withDefaults() WordCloudOptions {
	if o.Width <= 0 {
		o.Width = DefaultCloudWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultCloudHeight
	}
	if o.MaxWords <= 0 {
		o.MaxWords = DefaultCloudMaxWords
	}
	if o.MinFontSize <= 0 {
		o.MinFontSize = 6
	}
	if o.MaxFontSize <= 0 {
		o.MaxFontSize = float64(o.Height) / 5
	}
	if o.MaxFontSize < o.MinFontSize {
		o.MaxFontSize = o.MinFontSize
	}
	return o
}

// cloudPalette approximates the viridis colormap.
var cloudPalette = []drawing.Color{
	drawing.ColorFromHex("440154"),
	drawing.ColorFromHex("3B528B"),
	drawing.ColorFromHex("21908C"),
	drawing.ColorFromHex("5DC963"),
	drawing.ColorFromHex("31688E"),
	drawing.ColorFromHex("482878"),
	drawing.ColorFromHex("35B779"),
}

// WordCloudTitle returns the cloud title for c, e.g. "Word Cloud - Kuliner".
func WordCloudTitle(c tweets.Category) string {
	s := strings.ToLower(string(c))
	if s != "" {
		s = strings.ToUpper(s[:1]) + s[1:]
	}
	return "Word Cloud - " + s
}

// Box is a placed word's rectangle in pixels; X, Y is the top-left corner.
type Box struct {
	X, Y, W, H int
}

func (b Box) overlaps(o Box) bool {
	return b.X < o.X+o.W && o.X < b.X+b.W && b.Y < o.Y+o.H && o.Y < b.Y+b.H
}

// PlacedWord is one word of a laid out cloud.
type PlacedWord struct {
	Word     string
	Count    int
	FontSize float64
	Box
}

// MeasureFunc returns the pixel width and height of word at a font size.
type MeasureFunc func(word string, fontSize float64) (int, int)

// Layout places words inside area, largest first, along an Archimedean spiral
// from the center. Font size is proportional to the word's count. A word that
// fits nowhere is retried smaller and dropped once it is below MinFontSize.
// The result never contains overlapping boxes and is deterministic.
func Layout(words []pipeline.TokenCount, area Box, opts WordCloudOptions, measure MeasureFunc) []PlacedWord {
	opts = opts.withDefaults()

	sorted := append([]pipeline.TokenCount(nil), words...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Count != sorted[j].Count {
			return sorted[i].Count > sorted[j].Count
		}
		return sorted[i].Token < sorted[j].Token
	})
	if len(sorted) > opts.MaxWords {
		sorted = sorted[:opts.MaxWords]
	}
	if len(sorted) == 0 || sorted[0].Count <= 0 {
		return nil
	}
	maxCount := float64(sorted[0].Count)

	placed := make([]PlacedWord, 0, len(sorted))
	for _, wc := range sorted {
		if wc.Count <= 0 {
			continue
		}
		size := opts.MaxFontSize * float64(wc.Count) / maxCount
		if size < opts.MinFontSize {
			size = opts.MinFontSize
		}
		for size >= opts.MinFontSize {
			w, h := measure(wc.Token, size)
			if box, ok := findSpot(w, h, area, placed); ok {
				placed = append(placed, PlacedWord{Word: wc.Token, Count: wc.Count, FontSize: size, Box: box})
				break
			}
			size *= 0.8
		}
	}
	return placed
}

func findSpot(w, h int, area Box, placed []PlacedWord) (Box, bool) {
	if w <= 0 || h <= 0 || w > area.W || h > area.H {
		return Box{}, false
	}
	cx := float64(area.X) + float64(area.W)/2
	cy := float64(area.Y) + float64(area.H)/2
	aspect := float64(area.H) / float64(area.W)
	maxRadius := math.Hypot(float64(area.W), float64(area.H)) / 2

	for t := 0.0; 2*t <= maxRadius; t += 0.1 {
		r := 2 * t
		candidate := Box{
			X: int(cx + r*math.Cos(t) - float64(w)/2),
			Y: int(cy + r*math.Sin(t)*aspect - float64(h)/2),
			W: w,
			H: h,
		}
		if candidate.X < area.X || candidate.Y < area.Y ||
			candidate.X+w > area.X+area.W || candidate.Y+h > area.Y+area.H {
			continue
		}
		free := true
		for _, p := range placed {
			if candidate.overlaps(p.Box) {
				free = false
				break
			}
		}
		if free {
			return candidate, true
		}
	}
	return Box{}, false
}

// WordCloud renders words as a PNG with a white background and title above.
func WordCloud(w io.Writer, title string, words []pipeline.TokenCount, opts WordCloudOptions) error {
	if len(words) == 0 {
		return ErrNoData
	}
	opts = opts.withDefaults()

	font, err := chart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("load font: %w", err)
	}
	width, height := opts.Width, opts.Height+titleBand
	r, err := chart.PNG(width, height)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	fillRect(r, Box{W: width, H: height}, drawing.ColorWhite)

	area := Box{X: 0, Y: titleBand, W: opts.Width, H: opts.Height}
	layout := Layout(words, area, opts, rendererMeasure(r, font))
	if len(layout) == 0 {
		return ErrNoData
	}

	for i, pw := range layout {
		r.SetFont(font)
		r.SetFontSize(pw.FontSize)
		r.SetFontColor(cloudPalette[i%len(cloudPalette)])
		r.Text(pw.Word, pw.X, pw.Y+baselineOffset(r, pw.FontSize))
	}

	r.SetFont(font)
	r.SetFontSize(14)
	r.SetFontColor(drawing.ColorBlack)
	tb := r.MeasureText(title)
	r.Text(title, (width-tb.Width())/2, titleBand-10)

	if err := r.Save(w); err != nil {
		return fmt.Errorf("encode word cloud: %w", err)
	}
	return nil
}

// fontPixels converts a point size to pixels at the renderer's DPI.
func fontPixels(r chart.Renderer, size float64) float64 {
	return size * r.GetDPI() / 72
}

// rendererMeasure sizes a word by its rendered width and a line height that
// leaves room for ascenders and descenders.
func rendererMeasure(r chart.Renderer, font *truetype.Font) MeasureFunc {
	return func(word string, size float64) (int, int) {
		r.SetFont(font)
		r.SetFontSize(size)
		b := r.MeasureText(word)
		return b.Width() + 2, int(math.Ceil(fontPixels(r, size) * 1.2))
	}
}

func baselineOffset(r chart.Renderer, size float64) int {
	return int(math.Ceil(fontPixels(r, size) * 0.95))
}

func fillRect(r chart.Renderer, b Box, c drawing.Color) {
	r.SetFillColor(c)
	r.SetStrokeColor(c)
	r.MoveTo(b.X, b.Y)
	r.LineTo(b.X+b.W, b.Y)
	r.LineTo(b.X+b.W, b.Y+b.H)
	r.LineTo(b.X, b.Y+b.H)
	r.Close()
	r.Fill()
}
