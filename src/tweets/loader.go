package tweets

import (
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"
)

const (
	TextColumn = "tweet"
	DateColumn = "tanggal"
)

// LoadFile reads the dataset at path, gunzipping it when the name ends in
// ".gz". The file is read once; the returned Dataset is never modified afterwards.
func LoadFile(path string, delimiter string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	ds, err := Read(r, delimiter)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}
	return ds, nil
}

// Read parses a delimited dataset. Columns are located by header name, so
// extra columns and any column order are accepted. Rows that fail to parse
// are skipped and counted in Dataset.Skipped.
func Read(r io.Reader, delimiter string) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	if delimiter != "" {
		comma, size := utf8.DecodeRuneInString(delimiter)
		if size != len(delimiter) {
			return nil, fmt.Errorf("delimiter must be a single character, got %q", delimiter)
		}
		reader.Comma = comma
	}

	head, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	cols, err := indexColumns(head)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{}
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			slog.Warn("Skipping row", "line", line, "error", err)
			ds.Skipped++
			continue
		}
		tweet, err := parseRow(row, cols)
		if err != nil {
			slog.Warn("Skipping row", "line", line, "error", err)
			ds.Skipped++
			continue
		}
		ds.Tweets = append(ds.Tweets, tweet)
	}
	return ds, nil
}

type columnIndex struct {
	text       int
	date       int
	categories map[Category]int
}

func indexColumns(head []string) (columnIndex, error) {
	byName := make(map[string]int, len(head))
	for i, name := range head {
		// Strip a UTF-8 BOM left by spreadsheet exports
		name = strings.TrimPrefix(strings.TrimSpace(name), "\ufeff")
		byName[name] = i
	}

	cols := columnIndex{categories: make(map[Category]int, len(Categories))}
	var missing []string
	lookup := func(name string) int {
		i, ok := byName[name]
		if !ok {
			missing = append(missing, name)
			return -1
		}
		return i
	}
	cols.text = lookup(TextColumn)
	cols.date = lookup(DateColumn)
	for _, c := range Categories {
		cols.categories[c] = lookup(string(c))
	}
	if len(missing) > 0 {
		return cols, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

func parseRow(row []string, cols columnIndex) (*Tweet, error) {
	field := func(i int) (string, error) {
		if i >= len(row) {
			return "", fmt.Errorf("expected at least %d fields, got %d", i+1, len(row))
		}
		return row[i], nil
	}

	text, err := field(cols.text)
	if err != nil {
		return nil, err
	}
	rawDate, err := field(cols.date)
	if err != nil {
		return nil, err
	}
	date, err := ParseDate(rawDate)
	if err != nil {
		return nil, err
	}

	tweet := &Tweet{
		Text:       text,
		Date:       date,
		Sentiments: make(map[Category]Sentiment, len(Categories)),
	}
	for _, c := range Categories {
		raw, err := field(cols.categories[c])
		if err != nil {
			return nil, err
		}
		s, err := ParseSentiment(raw)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", c, err)
		}
		tweet.Sentiments[c] = s
	}
	return tweet, nil
}
