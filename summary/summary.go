package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"tweet-sentiment/src/filter"
	"tweet-sentiment/src/pipeline"
	"tweet-sentiment/src/tweets"
)

var REPORT_COLS = []string{
	"category",
	"positive",
	"negative",
	"total",
	"top_words",
}

func main() {
	dataset := flag.String("dataset", "", "Path to the labeled tweet CSV (optionally gzipped)")
	delimiter := flag.String("delimiter", ",", "Field delimiter of the dataset")
	top := flag.Int("top", 10, "Number of top positive words per category")
	outFile := flag.String("out", "", "Optional path of a CSV report to write")
	flag.Parse()

	if *dataset == "" {
		log.Fatalf("Usage: summary -dataset tweets.csv [-top N] [-out report.csv]")
	}

	ds, err := tweets.LoadFile(*dataset, *delimiter)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}

	rows, err := summarize(ds, filter.DefaultNormalizer(), filter.WordCloudStopwords(), *top)
	if err != nil {
		log.Fatalf("Failed to summarize: %v", err)
	}
	printSummary(os.Stdout, ds, rows)

	if *outFile != "" {
		if err := writeReport(*outFile, rows); err != nil {
			log.Fatalf("Failed to write report: %v", err)
		}
		log.Printf("Report written to %s", *outFile)
	}
}

// summaryRow is one line of the report. The last row is the union.
type summaryRow struct {
	category tweets.Category
	counts   pipeline.SentimentCount
	words    []pipeline.TokenCount
}

func summarize(ds *tweets.Dataset, n *filter.Normalizer, skip *filter.WordFilter, top int) ([]summaryRow, error) {
	var rows []summaryRow
	for _, cc := range pipeline.CountAll(ds) {
		tc, err := pipeline.WordFrequencies(ds, cc.Category, n, skip)
		if err != nil {
			return nil, err
		}
		rows = append(rows, summaryRow{category: cc.Category, counts: cc.SentimentCount, words: tc.Top(top)})
	}
	total, err := pipeline.CountCategory(ds, tweets.All)
	if err != nil {
		return nil, err
	}
	return append(rows, summaryRow{category: tweets.All, counts: total}), nil
}

func printSummary(w io.Writer, ds *tweets.Dataset, rows []summaryRow) {
	fmt.Fprintf(w, "Tweets: %s (skipped rows: %s)\n\n", humanize.Comma(int64(ds.Len())), humanize.Comma(int64(ds.Skipped)))
	fmt.Fprintf(w, "%-26s %10s %10s %10s\n", "Kategori", "Positif", "Negatif", "Total")
	for _, row := range rows {
		fmt.Fprintf(w, "%-26s %10s %10s %10s\n",
			row.category.DisplayName(),
			humanize.Comma(int64(row.counts.Positive)),
			humanize.Comma(int64(row.counts.Negative)),
			humanize.Comma(int64(row.counts.Total())))
	}
	for _, row := range rows {
		if len(row.words) == 0 {
			continue
		}
		fmt.Fprintf(w, "\nTop words %s: %s\n", row.category.DisplayName(), formatWords(row.words))
	}
}

func formatWords(words []pipeline.TokenCount) string {
	parts := make([]string, 0, len(words))
	for _, tc := range words {
		parts = append(parts, fmt.Sprintf("%s(%d)", tc.Token, tc.Count))
	}
	return strings.Join(parts, " ")
}

func writeReport(outputPath string, rows []summaryRow) error {
	outf, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer outf.Close()
	writer := csv.NewWriter(outf)

	if err := writer.Write(REPORT_COLS); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			string(row.category),
			strconv.Itoa(row.counts.Positive),
			strconv.Itoa(row.counts.Negative),
			strconv.Itoa(row.counts.Total()),
			formatWords(row.words),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
