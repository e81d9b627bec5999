package pipeline

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"tweet-sentiment/src/tweets"
)

// SentimentCount holds the positive and negative counts of one category.
// Rows labeled -1 are never counted.
type SentimentCount struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
}

// Total returns Positive + Negative.
func (sc SentimentCount) Total() int {
	return sc.Positive + sc.Negative
}

// CategoryCount is the aggregation of one category.
type CategoryCount struct {
	Category tweets.Category `json:"category"`
	SentimentCount
}

// CountAll counts positive and negative tweets of every category, in
// tweets.Categories order.
func CountAll(ds *tweets.Dataset) []CategoryCount {
	df := ds.Frame()
	counts := make([]CategoryCount, len(tweets.Categories))
	for i, c := range tweets.Categories {
		counts[i] = CategoryCount{Category: c, SentimentCount: countColumn(df, c)}
	}
	return counts
}

// CountCategory counts positive and negative tweets of c. For tweets.All the
// result is the sum over every category.
func CountCategory(ds *tweets.Dataset, c tweets.Category) (SentimentCount, error) {
	if c == tweets.All {
		var union SentimentCount
		for _, cc := range CountAll(ds) {
			union.Positive += cc.Positive
			union.Negative += cc.Negative
		}
		return union, nil
	}
	if err := requireColumn(c); err != nil {
		return SentimentCount{}, err
	}
	return countColumn(ds.Frame(), c), nil
}

func countColumn(df dataframe.DataFrame, c tweets.Category) SentimentCount {
	if df.Nrow() == 0 {
		return SentimentCount{}
	}
	return SentimentCount{
		Positive: labeled(df, c, tweets.Positive).Nrow(),
		Negative: labeled(df, c, tweets.Negative).Nrow(),
	}
}

// labeled keeps the rows whose c column equals s.
func labeled(df dataframe.DataFrame, c tweets.Category, s tweets.Sentiment) dataframe.DataFrame {
	return df.Filter(dataframe.F{Colname: string(c), Comparator: series.Eq, Comparando: int(s)})
}

// requireColumn rejects anything but one of the four dataset columns.
func requireColumn(c tweets.Category) error {
	if !c.IsColumn() {
		return fmt.Errorf("%w: %q has no column", tweets.ErrUnknownCategory, c)
	}
	return nil
}
