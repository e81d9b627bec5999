package pipeline

import (
	"strings"

	"tweet-sentiment/src/filter"
	"tweet-sentiment/src/tweets"
)

// MinWordLength is the shortest token a word cloud shows.
const MinWordLength = 2

// PositiveCorpus joins the text of every tweet labeled positive for c.
func PositiveCorpus(ds *tweets.Dataset, c tweets.Category) (string, error) {
	if err := requireColumn(c); err != nil {
		return "", err
	}
	var texts []string
	for _, tw := range ds.Tweets {
		if tw.Sentiment(c) == tweets.Positive {
			texts = append(texts, tw.Text)
		}
	}
	return strings.Join(texts, " "), nil
}

// WordFrequencies counts the normalized words of the positive tweets of c.
// Words shorter than MinWordLength and words in skip are left out; skip may be nil.
func WordFrequencies(ds *tweets.Dataset, c tweets.Category, n *filter.Normalizer, skip *filter.WordFilter) (*TokenCounter, error) {
	corpus, err := PositiveCorpus(ds, c)
	if err != nil {
		return nil, err
	}

	tc := NewTokenCounter()
	tokens := n.Tokens(corpus)
	kept := tokens[:0]
	for _, tok := range tokens {
		if len(tok) < MinWordLength {
			continue
		}
		if skip != nil && skip.IsFiltered(tok) {
			continue
		}
		kept = append(kept, tok)
	}
	tc.IncrementTokens(kept)
	return tc, nil
}
