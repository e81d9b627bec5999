package dashboard

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/dustin/go-humanize"

	"tweet-sentiment/src/pipeline"
	"tweet-sentiment/src/tweets"
)

// DefaultTitle is the page header.
const DefaultTitle = "Sentimen Analisis Kota Tegal Pada Aspek Wisata Hiburan, Pendidikan, Fasilitas Publik, dan Kuliner"

const (
	TabUnfiltered = "unfiltered"
	TabFiltered   = "filtered"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"comma": func(n int) string { return humanize.Comma(int64(n)) },
}).ParseFS(templateFS, "templates/index.html"))

type option struct {
	Value    string
	Label    string
	Selected bool
}

type pageData struct {
	Title    string
	HasLogo  bool
	Options  []option
	Category string
	IsAll    bool
	Tab      string
	Start    string
	End      string

	Tweets  int
	Skipped int
	Counts  []pipeline.CategoryCount
	Total   pipeline.SentimentCount

	SentimentURL string
	TimelineURL  string
	FilteredURL  string
	WordCloudURL string
	TabURLs      map[string]string

	HasTimeline         bool
	HasFilteredTimeline bool
	HasWords            bool
}

// Page renders the dashboard for the selected category, tab and dates.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		h.fail(w, err)
		return
	}
	tab := r.URL.Query().Get("tab")
	if tab != TabFiltered {
		tab = TabUnfiltered
	}

	data := pageData{
		Title:    h.settings.Title,
		HasLogo:  h.settings.LogoPath != "",
		Category: string(q.category),
		IsAll:    q.category == tweets.All,
		Tab:      tab,
		Start:    q.start,
		End:      q.end,
		Tweets:   h.dataset.Len(),
		Skipped:  h.dataset.Skipped,
	}
	data.Options = append(data.Options, option{Value: string(tweets.All), Label: string(tweets.All), Selected: data.IsAll})
	for _, c := range tweets.Categories {
		data.Options = append(data.Options, option{Value: string(c), Label: string(c), Selected: c == q.category})
	}

	data.SentimentURL = chartURL("/charts/sentiment.png", q.category, "", "")
	if data.IsAll {
		data.Counts = pipeline.CountAll(h.dataset)
	} else {
		if err := h.fillCategory(&data, q); err != nil {
			h.fail(w, err)
			return
		}
	}
	if data.Total, err = pipeline.CountCategory(h.dataset, q.category); err != nil {
		h.fail(w, err)
		return
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		slog.Error("failed to render page", "error", err)
		http.Error(w, "Error rendering dashboard", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

// fillCategory adds the single-category views; images are only linked when
// they have something to draw.
func (h *Handler) fillCategory(data *pageData, q query) error {
	data.TimelineURL = chartURL("/charts/timeline.png", q.category, "", "")
	data.FilteredURL = chartURL("/charts/timeline.png", q.category, q.start, q.end)
	data.WordCloudURL = chartURL("/charts/wordcloud.png", q.category, "", "")
	data.TabURLs = map[string]string{
		TabUnfiltered: pageURL(q.category, TabUnfiltered, "", ""),
		TabFiltered:   pageURL(q.category, TabFiltered, q.start, q.end),
	}

	all, err := pipeline.Timeline(h.dataset, q.category, pipeline.DateRange{})
	if err != nil {
		return err
	}
	data.HasTimeline = len(all) > 0

	filtered, err := pipeline.Timeline(h.dataset, q.category, q.dates)
	if err != nil {
		return err
	}
	data.HasFilteredTimeline = len(filtered) > 0

	words, err := h.topWords(q.category, 1)
	if err != nil {
		return err
	}
	data.HasWords = len(words) > 0
	return nil
}

func chartURL(path string, c tweets.Category, start, end string) string {
	return path + "?" + encodeQuery(c, "", start, end)
}

func pageURL(c tweets.Category, tab, start, end string) string {
	return "/?" + encodeQuery(c, tab, start, end)
}

func encodeQuery(c tweets.Category, tab, start, end string) string {
	v := url.Values{}
	v.Set("category", string(c))
	if tab != "" {
		v.Set("tab", tab)
	}
	if start != "" {
		v.Set("start", start)
	}
	if end != "" {
		v.Set("end", end)
	}
	return v.Encode()
}
