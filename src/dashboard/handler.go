package dashboard

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"tweet-sentiment/src/charts"
	"tweet-sentiment/src/filter"
	"tweet-sentiment/src/pipeline"
	"tweet-sentiment/src/tweets"
)

const dateLayout = "2006-01-02"

var errBadRequest = errors.New("bad request")

// Settings holds the presentation options of the dashboard.
type Settings struct {
	Title     string
	LogoPath  string
	Chart     charts.Options
	WordCloud charts.WordCloudOptions
}

// Handler serves the dashboard. The dataset is never modified after load,
// so handlers read it concurrently without locking.
type Handler struct {
	dataset        *tweets.Dataset
	normalizer     *filter.Normalizer
	cloudStopwords *filter.WordFilter
	settings       Settings
}

// NewHandler creates a Handler over ds. cloudStopwords may be nil.
func NewHandler(ds *tweets.Dataset, normalizer *filter.Normalizer, cloudStopwords *filter.WordFilter, settings Settings) *Handler {
	if settings.Title == "" {
		settings.Title = DefaultTitle
	}
	return &Handler{
		dataset:        ds,
		normalizer:     normalizer,
		cloudStopwords: cloudStopwords,
		settings:       settings,
	}
}

// query holds the parsed selector state of a request.
type query struct {
	category tweets.Category
	dates    pipeline.DateRange
	start    string
	end      string
}

func parseQuery(r *http.Request) (query, error) {
	values := r.URL.Query()
	var q query

	c, err := tweets.ParseCategory(values.Get("category"))
	if err != nil {
		return q, err
	}
	q.category = c

	parseDay := func(name string) (*time.Time, string, error) {
		raw := values.Get(name)
		if raw == "" {
			return nil, "", nil
		}
		d, err := time.Parse(dateLayout, raw)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %s must be YYYY-MM-DD, got %q", errBadRequest, name, raw)
		}
		return &d, raw, nil
	}
	if q.dates.Start, q.start, err = parseDay("start"); err != nil {
		return q, err
	}
	if q.dates.End, q.end, err = parseDay("end"); err != nil {
		return q, err
	}
	return q, nil
}

// single rejects the union category for views that only exist per category.
func (q query) single() error {
	if !q.category.IsColumn() {
		return fmt.Errorf("%w: choose one category", errBadRequest)
	}
	return nil
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, tweets.ErrUnknownCategory), errors.Is(err, errBadRequest):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, charts.ErrNoData):
		http.Error(w, "Tidak ada data untuk ditampilkan", http.StatusNotFound)
	default:
		slog.Error("failed to serve dashboard request", "error", err)
		http.Error(w, "Error rendering dashboard", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writePNG(w http.ResponseWriter, render func(*bytes.Buffer) error) error {
	// Render fully first so a failure can still change the status code
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, err := buf.WriteTo(w)
	if err != nil {
		slog.Warn("failed to write chart", "error", err)
	}
	return nil
}

// SentimentChart serves the grouped bar chart for All or the two-bar chart
// of one category.
func (h *Handler) SentimentChart(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		h.fail(w, err)
		return
	}

	err = writePNG(w, func(buf *bytes.Buffer) error {
		if q.category == tweets.All {
			return charts.SentimentBars(buf, pipeline.CountAll(h.dataset), h.settings.Chart)
		}
		counts, err := pipeline.CountCategory(h.dataset, q.category)
		if err != nil {
			return err
		}
		return charts.CategoryBars(buf, q.category, counts, h.settings.Chart)
	})
	if err != nil {
		h.fail(w, err)
	}
}

// TimelineChart serves the per-day line chart of one category, optionally
// limited by start and end.
func (h *Handler) TimelineChart(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err == nil {
		err = q.single()
	}
	if err != nil {
		h.fail(w, err)
		return
	}

	err = writePNG(w, func(buf *bytes.Buffer) error {
		points, err := pipeline.Timeline(h.dataset, q.category, q.dates)
		if err != nil {
			return err
		}
		return charts.TimelineChart(buf, q.category, points, h.settings.Chart)
	})
	if err != nil {
		h.fail(w, err)
	}
}

// WordCloudChart serves the word cloud of the positive tweets of one category.
func (h *Handler) WordCloudChart(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err == nil {
		err = q.single()
	}
	if err != nil {
		h.fail(w, err)
		return
	}

	err = writePNG(w, func(buf *bytes.Buffer) error {
		words, err := h.topWords(q.category, h.settings.WordCloud.MaxWords)
		if err != nil {
			return err
		}
		return charts.WordCloud(buf, charts.WordCloudTitle(q.category), words, h.settings.WordCloud)
	})
	if err != nil {
		h.fail(w, err)
	}
}

func (h *Handler) topWords(c tweets.Category, n int) ([]pipeline.TokenCount, error) {
	if n <= 0 {
		n = charts.DefaultCloudMaxWords
	}
	tc, err := pipeline.WordFrequencies(h.dataset, c, h.normalizer, h.cloudStopwords)
	if err != nil {
		return nil, err
	}
	return tc.Top(n), nil
}

type sentimentResponse struct {
	Category   tweets.Category          `json:"category"`
	Total      pipeline.SentimentCount  `json:"total"`
	Categories []pipeline.CategoryCount `json:"categories,omitempty"`
}

// SentimentAPI returns the aggregation behind SentimentChart as JSON.
func (h *Handler) SentimentAPI(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		h.fail(w, err)
		return
	}
	total, err := pipeline.CountCategory(h.dataset, q.category)
	if err != nil {
		h.fail(w, err)
		return
	}
	resp := sentimentResponse{Category: q.category, Total: total}
	if q.category == tweets.All {
		resp.Categories = pipeline.CountAll(h.dataset)
	}
	writeJSON(w, resp)
}

type timelineResponse struct {
	Category tweets.Category          `json:"category"`
	Start    string                   `json:"start,omitempty"`
	End      string                   `json:"end,omitempty"`
	Points   []pipeline.TimelinePoint `json:"points"`
}

// TimelineAPI returns the per-day counts behind TimelineChart as JSON.
func (h *Handler) TimelineAPI(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err == nil {
		err = q.single()
	}
	if err != nil {
		h.fail(w, err)
		return
	}
	points, err := pipeline.Timeline(h.dataset, q.category, q.dates)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, timelineResponse{Category: q.category, Start: q.start, End: q.end, Points: points})
}

type wordsResponse struct {
	Category tweets.Category       `json:"category"`
	Words    []pipeline.TokenCount `json:"words"`
}

// WordsAPI returns the most frequent positive words of one category.
// The top parameter defaults to the word cloud size.
func (h *Handler) WordsAPI(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err == nil {
		err = q.single()
	}
	if err != nil {
		h.fail(w, err)
		return
	}
	n := h.settings.WordCloud.MaxWords
	if raw := r.URL.Query().Get("top"); raw != "" {
		n, err = strconv.Atoi(raw)
		if err != nil || n <= 0 {
			h.fail(w, fmt.Errorf("%w: top must be a positive integer", errBadRequest))
			return
		}
	}
	words, err := h.topWords(q.category, n)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, wordsResponse{Category: q.category, Words: words})
}

// Logo serves the configured branding image.
func (h *Handler) Logo(w http.ResponseWriter, r *http.Request) {
	if h.settings.LogoPath == "" {
		http.NotFound(w, r)
		return
	}
	if _, err := os.Stat(h.settings.LogoPath); err != nil {
		slog.Warn("logo not available", "path", h.settings.LogoPath, "error", err)
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, h.settings.LogoPath)
}
