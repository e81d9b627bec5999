package pipeline

import (
	"fmt"
	"sort"
	"time"

	"github.com/go-gota/gota/dataframe"

	"tweet-sentiment/src/tweets"
)

// DateRange bounds a timeline. Both ends are inclusive calendar days; a nil
// end leaves that side unconstrained.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Contains reports whether day (midnight UTC) lies within the range.
func (r DateRange) Contains(day time.Time) bool {
	if r.Start != nil && day.Before(tweets.Midnight(*r.Start)) {
		return false
	}
	if r.End != nil && day.After(tweets.Midnight(*r.End)) {
		return false
	}
	return true
}

// TimelinePoint is the sentiment count of one calendar day.
type TimelinePoint struct {
	Date time.Time `json:"tanggal"`
	SentimentCount
}

// Timeline buckets the positive and negative tweets of c per day, keeping the
// days inside r. Points are ordered by date; a day with tweets of only one
// sentiment reports zero for the other.
func Timeline(ds *tweets.Dataset, c tweets.Category, r DateRange) ([]TimelinePoint, error) {
	if err := requireColumn(c); err != nil {
		return nil, err
	}

	df := ds.Frame()
	buckets := make(map[time.Time]*SentimentCount)
	bucket := func(day time.Time) *SentimentCount {
		sc, ok := buckets[day]
		if !ok {
			sc = &SentimentCount{}
			buckets[day] = sc
		}
		return sc
	}

	for _, s := range []tweets.Sentiment{tweets.Positive, tweets.Negative} {
		perDay, err := countPerDay(labeled(df, c, s), c)
		if err != nil {
			return nil, err
		}
		for day, n := range perDay {
			if !r.Contains(day) {
				continue
			}
			if s == tweets.Positive {
				bucket(day).Positive = n
			} else {
				bucket(day).Negative = n
			}
		}
	}

	points := make([]TimelinePoint, 0, len(buckets))
	for day, sc := range buckets {
		points = append(points, TimelinePoint{Date: day, SentimentCount: *sc})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points, nil
}

// countPerDay groups df by DateColumn and counts the rows of each day.
func countPerDay(df dataframe.DataFrame, c tweets.Category) (map[time.Time]int, error) {
	perDay := make(map[time.Time]int)
	if df.Nrow() == 0 {
		return perDay, nil
	}

	agg := df.GroupBy(tweets.DateColumn).Aggregation(
		[]dataframe.AggregationType{dataframe.Aggregation_COUNT},
		[]string{string(c)},
	)
	if agg.Err != nil {
		return nil, fmt.Errorf("failed to group %s by day: %w", c, agg.Err)
	}

	// The count column is named after c and the aggregation
	var countCol string
	for _, name := range agg.Names() {
		if name != tweets.DateColumn {
			countCol = name
		}
	}
	days := agg.Col(tweets.DateColumn).Records()
	counts := agg.Col(countCol).Float()
	for i, raw := range days {
		day, err := time.Parse(tweets.DayLayout, raw)
		if err != nil {
			return nil, fmt.Errorf("bad day %q in frame: %w", raw, err)
		}
		perDay[day] += int(counts[i])
	}
	return perDay, nil
}
