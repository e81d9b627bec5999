package pipeline

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"tweet-sentiment/src/filter"
	"tweet-sentiment/src/tweets"
)

// row builds a tweet; labels are wisata_hiburan, pendidikan, fasilitas_layanan_publik, kuliner.
func row(text, date string, labels ...tweets.Sentiment) *tweets.Tweet {
	d, err := tweets.ParseDate(date)
	if err != nil {
		panic(err)
	}
	tw := &tweets.Tweet{Text: text, Date: d, Sentiments: make(map[tweets.Category]tweets.Sentiment)}
	for i, c := range tweets.Categories {
		tw.Sentiments[c] = labels[i]
	}
	return tw
}

const (
	pos = tweets.Positive
	neg = tweets.Negative
	na  = tweets.NotApplicable
)

func sampleDataset() *tweets.Dataset {
	return &tweets.Dataset{Tweets: []*tweets.Tweet{
		row("Pantai Alam Indah ramai", "2023-06-01", pos, na, na, na),
		row("sekolah di tegal bagus", "2023-06-01", na, pos, na, na),
		row("jalan rusak parah", "2023-06-02", na, na, neg, na),
		row("sate kambing enak", "2023-06-02", na, na, na, pos),
		row("sate ayam enak murah", "2023-06-03", na, na, na, pos),
		row("warung mahal https://t.co/a", "2023-06-05", na, na, na, neg),
		row("taman kota kotor, sekolah jauh", "2023-06-05", neg, neg, na, na),
	}}
}

func day(s string) *time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &d
}

func TestCountCategoryKuliner(t *testing.T) {
	ds := sampleDataset()
	got, err := CountCategory(ds, tweets.Kuliner)
	if err != nil {
		t.Fatalf("CountCategory failed: %v", err)
	}
	if got.Positive != 2 || got.Negative != 1 {
		t.Errorf("Expected Positive=2 Negative=1, got %+v", got)
	}
	if got.Total() != 3 {
		t.Errorf("Expected total 3, got %d", got.Total())
	}
}

func TestCountAllMatchesCountCategory(t *testing.T) {
	ds := sampleDataset()
	all := CountAll(ds)
	if len(all) != len(tweets.Categories) {
		t.Fatalf("Expected %d categories, got %d", len(tweets.Categories), len(all))
	}

	sum := 0
	for i, cc := range all {
		if cc.Category != tweets.Categories[i] {
			t.Errorf("Position %d: expected %s, got %s", i, tweets.Categories[i], cc.Category)
		}
		single, err := CountCategory(ds, cc.Category)
		if err != nil {
			t.Fatalf("CountCategory(%s) failed: %v", cc.Category, err)
		}
		if single != cc.SentimentCount {
			t.Errorf("%s: CountAll=%+v, CountCategory=%+v", cc.Category, cc.SentimentCount, single)
		}
		sum += cc.Total()
	}

	union, err := CountCategory(ds, tweets.All)
	if err != nil {
		t.Fatalf("CountCategory(All) failed: %v", err)
	}
	if union.Total() != sum {
		t.Errorf("Union total %d != sum of categories %d", union.Total(), sum)
	}
	// 4 positives (wisata, pendidikan, kuliner x2) and 4 negatives
	if union.Positive != 4 || union.Negative != 4 {
		t.Errorf("Expected union Positive=4 Negative=4, got %+v", union)
	}
}

func TestCountSkipsNotApplicable(t *testing.T) {
	ds := &tweets.Dataset{Tweets: []*tweets.Tweet{
		row("a", "2023-06-01", na, na, na, na),
		row("b", "2023-06-01", na, na, na, na),
	}}
	for _, cc := range CountAll(ds) {
		if cc.Total() != 0 {
			t.Errorf("%s: expected no counts, got %+v", cc.Category, cc.SentimentCount)
		}
	}
}

func TestCountCategoryUnknown(t *testing.T) {
	_, err := CountCategory(sampleDataset(), tweets.Category("olahraga"))
	if !errors.Is(err, tweets.ErrUnknownCategory) {
		t.Errorf("Expected ErrUnknownCategory, got %v", err)
	}
}

func TestTimelineUnfiltered(t *testing.T) {
	points, err := Timeline(sampleDataset(), tweets.Kuliner, DateRange{})
	if err != nil {
		t.Fatalf("Timeline failed: %v", err)
	}
	expected := []TimelinePoint{
		{Date: *day("2023-06-02"), SentimentCount: SentimentCount{Positive: 1}},
		{Date: *day("2023-06-03"), SentimentCount: SentimentCount{Positive: 1}},
		{Date: *day("2023-06-05"), SentimentCount: SentimentCount{Negative: 1}},
	}
	if !reflect.DeepEqual(points, expected) {
		t.Errorf("Timeline = %+v, expected %+v", points, expected)
	}
}

func TestTimelineRangeInclusive(t *testing.T) {
	ds := sampleDataset()

	testCases := []struct {
		name     string
		r        DateRange
		expected []string
	}{
		{"both bounds inclusive", DateRange{Start: day("2023-06-02"), End: day("2023-06-03")}, []string{"2023-06-02", "2023-06-03"}},
		{"start only", DateRange{Start: day("2023-06-03")}, []string{"2023-06-03", "2023-06-05"}},
		{"end only", DateRange{End: day("2023-06-02")}, []string{"2023-06-02"}},
		{"single day", DateRange{Start: day("2023-06-05"), End: day("2023-06-05")}, []string{"2023-06-05"}},
		{"empty", DateRange{Start: day("2023-07-01")}, []string{}},
		{"inverted", DateRange{Start: day("2023-06-05"), End: day("2023-06-02")}, []string{}},
	}

	for _, tc := range testCases {
		points, err := Timeline(ds, tweets.Kuliner, tc.r)
		if err != nil {
			t.Fatalf("%s: Timeline failed: %v", tc.name, err)
		}
		got := []string{}
		for _, p := range points {
			got = append(got, p.Date.Format("2006-01-02"))
		}
		if !reflect.DeepEqual(got, tc.expected) {
			t.Errorf("%s: got days %v, expected %v", tc.name, got, tc.expected)
		}
	}
}

func TestTimelineEndBoundCoversWholeDay(t *testing.T) {
	ds := &tweets.Dataset{Tweets: []*tweets.Tweet{
		row("pagi", "2023-06-02 07:00:00", na, pos, na, na),
		row("malam", "2023-06-02 22:45:00", na, neg, na, na),
	}}
	points, err := Timeline(ds, tweets.Pendidikan, DateRange{End: day("2023-06-02")})
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 1 || points[0].Positive != 1 || points[0].Negative != 1 {
		t.Errorf("Expected one day with Positive=1 Negative=1, got %+v", points)
	}
}

func TestEmptyDataset(t *testing.T) {
	ds := &tweets.Dataset{}
	for _, cc := range CountAll(ds) {
		if cc.Total() != 0 {
			t.Errorf("Expected zero counts for %s, got %+v", cc.Category, cc.SentimentCount)
		}
	}
	points, err := Timeline(ds, tweets.Kuliner, DateRange{})
	if err != nil {
		t.Fatalf("Timeline failed: %v", err)
	}
	if len(points) != 0 {
		t.Errorf("Expected no points, got %v", points)
	}
}

func TestTimelineSameDayAcrossOffsets(t *testing.T) {
	ds := &tweets.Dataset{Tweets: []*tweets.Tweet{
		row("sate enak", "2023-06-01 08:00:00+07:00", na, na, na, pos),
		row("sate mahal", "2023-06-01 23:00:00", na, na, na, neg),
		row("sate murah", "2023-06-01", na, na, na, pos),
	}}
	points, err := Timeline(ds, tweets.Kuliner, DateRange{})
	if err != nil {
		t.Fatalf("Timeline failed: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("Expected one day, got %+v", points)
	}
	if points[0].Positive != 2 || points[0].Negative != 1 {
		t.Errorf("Expected Positive=2 Negative=1, got %+v", points[0].SentimentCount)
	}
}

func TestTimelineRejectsAll(t *testing.T) {
	if _, err := Timeline(sampleDataset(), tweets.All, DateRange{}); !errors.Is(err, tweets.ErrUnknownCategory) {
		t.Errorf("Expected ErrUnknownCategory for All, got %v", err)
	}
}

func TestTimelineMatchesCount(t *testing.T) {
	ds := sampleDataset()
	for _, c := range tweets.Categories {
		points, err := Timeline(ds, c, DateRange{})
		if err != nil {
			t.Fatal(err)
		}
		var sum SentimentCount
		for _, p := range points {
			sum.Positive += p.Positive
			sum.Negative += p.Negative
		}
		total, _ := CountCategory(ds, c)
		if sum != total {
			t.Errorf("%s: timeline sums to %+v, count is %+v", c, sum, total)
		}
	}
}

func TestPositiveCorpusOnlyPositiveRows(t *testing.T) {
	ds := &tweets.Dataset{Tweets: []*tweets.Tweet{
		row("sate enak", "2023-06-01", na, na, na, pos),
		row("bakso mantap", "2023-06-01", na, na, na, pos),
		row("warung mahal", "2023-06-02", na, na, na, neg),
	}}
	counts, err := CountCategory(ds, tweets.Kuliner)
	if err != nil {
		t.Fatal(err)
	}
	if counts.Positive != 2 || counts.Negative != 1 {
		t.Errorf("Expected Positive=2 Negative=1, got %+v", counts)
	}

	corpus, err := PositiveCorpus(ds, tweets.Kuliner)
	if err != nil {
		t.Fatal(err)
	}
	if corpus != "sate enak bakso mantap" {
		t.Errorf("Unexpected corpus %q", corpus)
	}

	tc, err := WordFrequencies(ds, tweets.Kuliner, filter.DefaultNormalizer(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if tc.GetCount("warung") != 0 || tc.GetCount("mahal") != 0 {
		t.Error("Negative tweets must not reach the word cloud")
	}
	if tc.GetTotalTokens() != 4 {
		t.Errorf("Expected 4 words, got %d", tc.GetTotalTokens())
	}
}

func TestWordFrequencies(t *testing.T) {
	ds := sampleDataset()
	tc, err := WordFrequencies(ds, tweets.Kuliner, filter.DefaultNormalizer(), filter.WordCloudStopwords())
	if err != nil {
		t.Fatalf("WordFrequencies failed: %v", err)
	}
	expected := map[string]int{"sate": 2, "kambing": 1, "enak": 2, "ayam": 1, "murah": 1}
	if !reflect.DeepEqual(tc.Counts(), expected) {
		t.Errorf("Counts = %v, expected %v", tc.Counts(), expected)
	}

	// Fixed tokens and stop words never show up
	tc, err = WordFrequencies(ds, tweets.Pendidikan, filter.DefaultNormalizer(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if tc.GetCount("tegal") != 0 || tc.GetCount("di") != 0 {
		t.Errorf("Unexpected words in %v", tc.Counts())
	}
	if tc.GetCount("sekolah") != 1 {
		t.Errorf("Expected 'sekolah' once, got %d", tc.GetCount("sekolah"))
	}
}

func TestWordFrequenciesSkipsShortAndListedWords(t *testing.T) {
	ds := &tweets.Dataset{Tweets: []*tweets.Tweet{
		row("a b the pantai", "2023-06-01", pos, na, na, na),
	}}
	tc, err := WordFrequencies(ds, tweets.WisataHiburan, filter.NewNormalizer(nil, nil), filter.WordCloudStopwords())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(tc.Counts(), map[string]int{"pantai": 1}) {
		t.Errorf("Expected only 'pantai', got %v", tc.Counts())
	}
}

func TestWordFrequenciesUnknownCategory(t *testing.T) {
	if _, err := WordFrequencies(sampleDataset(), tweets.All, filter.DefaultNormalizer(), nil); !errors.Is(err, tweets.ErrUnknownCategory) {
		t.Errorf("Expected ErrUnknownCategory, got %v", err)
	}
}
