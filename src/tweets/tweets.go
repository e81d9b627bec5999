package tweets

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-gota/gota/dataframe"
)

// ErrUnknownCategory is returned when a category name is not one of the dataset columns.
var ErrUnknownCategory = errors.New("unknown category")

// Category is one of the topical labels a tweet's sentiment is scored against.
type Category string

const (
	WisataHiburan          Category = "wisata_hiburan"
	Pendidikan             Category = "pendidikan"
	FasilitasLayananPublik Category = "fasilitas_layanan_publik"
	Kuliner                Category = "kuliner"

	// All selects the union of every category. It is not a dataset column.
	All Category = "Semua Kategori"
)

// Categories lists the dataset columns in display order.
var Categories = []Category{WisataHiburan, Pendidikan, FasilitasLayananPublik, Kuliner}

// ParseCategory maps a selector value to a Category.
// "All" and "Semua Kategori" both select the union.
func ParseCategory(name string) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "all") || name == string(All) {
		return All, nil
	}
	for _, c := range Categories {
		if name == string(c) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}

// IsColumn reports whether c is one of the dataset columns.
func (c Category) IsColumn() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// DisplayName returns the column name with spaces and title case,
// e.g. "Fasilitas Layanan Publik".
func (c Category) DisplayName() string {
	words := strings.Split(string(c), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// Sentiment is the per-category label of a tweet.
type Sentiment int

const (
	NotApplicable Sentiment = -1
	Negative      Sentiment = 0
	Positive      Sentiment = 1
)

// Label returns the dashboard label for the sentiment.
func (s Sentiment) Label() string {
	switch s {
	case Positive:
		return "Positif"
	case Negative:
		return "Negatif"
	}
	return ""
}

// ParseSentiment parses a label cell. Integral floats ("1.0") are accepted
// and a blank or NaN cell reads as NotApplicable.
func ParseSentiment(raw string) (Sentiment, error) {
	raw = strings.TrimSpace(raw)
	if missingValues[strings.ToLower(raw)] {
		return NotApplicable, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || f != float64(int(f)) {
			return 0, fmt.Errorf("invalid sentiment %q", raw)
		}
		v = int(f)
	}
	switch Sentiment(v) {
	case Positive, Negative, NotApplicable:
		return Sentiment(v), nil
	}
	return 0, fmt.Errorf("invalid sentiment %q", raw)
}

// missingValues are the blank-cell spellings spreadsheet and pandas exports
// produce; such a cell means the tweet is not about the category.
var missingValues = map[string]bool{
	"":     true,
	"nan":  true,
	"na":   true,
	"n/a":  true,
	"#n/a": true,
	"<na>": true,
	"null": true,
	"none": true,
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05Z07:00",
	time.RFC3339,
}

// ParseDate parses the tanggal column.
func ParseDate(raw string) (time.Time, error) {
	// Normalize all whitespace to a single space
	clean := strings.Join(strings.Fields(raw), " ")
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, clean); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", raw)
}

// Tweet represents one labeled record of the dataset
type Tweet struct {
	Text       string                 `json:"tweet"`
	Date       time.Time              `json:"tanggal"`
	Sentiments map[Category]Sentiment `json:"sentiments"`
}

// Sentiment returns the tweet's label for c, NotApplicable when absent.
func (t *Tweet) Sentiment(c Category) Sentiment {
	s, ok := t.Sentiments[c]
	if !ok {
		return NotApplicable
	}
	return s
}

// Day returns the tweet's calendar day as midnight UTC, keeping the local date
// it was recorded with.
func (t *Tweet) Day() time.Time {
	return Midnight(t.Date)
}

// Midnight truncates ts to its calendar day, expressed in UTC.
func Midnight(ts time.Time) time.Time {
	y, m, d := ts.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Dataset is the read-only collection of tweets loaded at startup.
// Tweets must not change once Frame has been called.
type Dataset struct {
	Tweets  []*Tweet
	Skipped int

	frameOnce sync.Once
	frame     dataframe.DataFrame
}

// Len returns the number of loaded tweets.
func (ds *Dataset) Len() int {
	return len(ds.Tweets)
}
