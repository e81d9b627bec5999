package tweets

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// DayLayout is the format of the DateColumn in a Dataset frame.
const DayLayout = "2006-01-02"

// Frame returns the label table of the dataset: DateColumn holds Day() as
// DayLayout, every category column holds its Sentiment as an int. Built on
// first use and shared afterwards.
func (ds *Dataset) Frame() dataframe.DataFrame {
	ds.frameOnce.Do(func() {
		ds.frame = buildFrame(ds.Tweets)
	})
	return ds.frame
}

func buildFrame(tws []*Tweet) dataframe.DataFrame {
	days := make([]string, len(tws))
	labels := make(map[Category][]int, len(Categories))
	for _, c := range Categories {
		labels[c] = make([]int, len(tws))
	}
	for i, tw := range tws {
		days[i] = tw.Day().Format(DayLayout)
		for _, c := range Categories {
			labels[c][i] = int(tw.Sentiment(c))
		}
	}

	cols := []series.Series{series.New(days, series.String, DateColumn)}
	for _, c := range Categories {
		cols = append(cols, series.New(labels[c], series.Int, string(c)))
	}
	return dataframe.New(cols...)
}
