package filter

import (
	_ "embed"
	"strings"
)

//go:embed stopwords_id.txt
var indonesianStopwords string

//go:embed stopwords_wordcloud.txt
var wordCloudStopwords string

// IndonesianStopwords returns a filter preloaded with the Sastrawi stop word list.
func IndonesianStopwords() *WordFilter {
	return mustLoad(indonesianStopwords)
}

// WordCloudStopwords returns a filter preloaded with the English stop words
// a word cloud ignores by default.
func WordCloudStopwords() *WordFilter {
	return mustLoad(wordCloudStopwords)
}

func mustLoad(list string) *WordFilter {
	wf := NewWordFilter()
	if err := wf.LoadFromReader(strings.NewReader(list)); err != nil {
		panic("filter: embedded word list: " + err.Error())
	}
	return wf
}
