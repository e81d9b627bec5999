package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tweet-sentiment/src/filter"
	"tweet-sentiment/src/tweets"
)

const testCSV = `tweet,tanggal,wisata_hiburan,pendidikan,fasilitas_layanan_publik,kuliner
"Pantai Alam Indah ramai",2023-06-01,1,-1,-1,-1
"jalan rusak parah",2023-06-02,-1,-1,0,-1
"sate kambing enak",2023-06-02,-1,-1,-1,1
"sate ayam enak",2023-06-03,-1,-1,-1,1
"warung mahal",2023-06-05,-1,-1,-1,0
not,a,valid,row
`

func loadTestDataset(t *testing.T) *tweets.Dataset {
	t.Helper()
	ds, err := tweets.Read(strings.NewReader(testCSV), ",")
	if err != nil {
		t.Fatalf("Failed to read test dataset: %v", err)
	}
	return ds
}

func TestSummarize(t *testing.T) {
	ds := loadTestDataset(t)
	rows, err := summarize(ds, filter.DefaultNormalizer(), filter.WordCloudStopwords(), 2)
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}
	if len(rows) != len(tweets.Categories)+1 {
		t.Fatalf("Expected %d rows, got %d", len(tweets.Categories)+1, len(rows))
	}

	kuliner := rows[3]
	if kuliner.category != tweets.Kuliner || kuliner.counts.Positive != 2 || kuliner.counts.Negative != 1 {
		t.Errorf("Unexpected kuliner row %+v", kuliner)
	}
	if got := formatWords(kuliner.words); got != "enak(2) sate(2)" {
		t.Errorf("Expected 'enak(2) sate(2)', got '%s'", got)
	}

	union := rows[len(rows)-1]
	if union.category != tweets.All || union.counts.Positive != 3 || union.counts.Negative != 2 {
		t.Errorf("Unexpected union row %+v", union)
	}
}

func TestPrintSummary(t *testing.T) {
	ds := loadTestDataset(t)
	rows, err := summarize(ds, filter.DefaultNormalizer(), nil, 3)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	printSummary(&buf, ds, rows)
	out := buf.String()

	for _, want := range []string{"Tweets: 5 (skipped rows: 1)", "Kuliner", "Semua Kategori", "Top words Kuliner:"} {
		if !strings.Contains(out, want) {
			t.Errorf("Summary should contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Top words Fasilitas Layanan Publik") {
		t.Error("Categories without positive words should not list top words")
	}
}

func TestWriteReport(t *testing.T) {
	ds := loadTestDataset(t)
	rows, err := summarize(ds, filter.DefaultNormalizer(), filter.WordCloudStopwords(), 1)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "report.csv")
	if err := writeReport(path, rows); err != nil {
		t.Fatalf("writeReport failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("Report is not valid CSV: %v", err)
	}
	if len(records) != len(rows)+1 {
		t.Fatalf("Expected %d records, got %d", len(rows)+1, len(records))
	}
	if strings.Join(records[0], ",") != strings.Join(REPORT_COLS, ",") {
		t.Errorf("Unexpected header %v", records[0])
	}
	expected := []string{"kuliner", "2", "1", "3", "enak(2)"}
	if strings.Join(records[4], ",") != strings.Join(expected, ",") {
		t.Errorf("Expected kuliner record %v, got %v", expected, records[4])
	}
}
