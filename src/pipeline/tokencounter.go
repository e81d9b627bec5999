package pipeline

import (
	"sort"
	"sync"
	"sync/atomic"
)

// TokenCount holds a token and its count.
type TokenCount struct {
	Token string `json:"word"`
	Count int    `json:"count"`
}

// TokenCounter keeps track of how many times each token appears in a corpus.
type TokenCounter struct {
	counts     map[string]int
	totalCount int64 // Running total of all token counts (atomic for thread safety)
	mu         sync.RWMutex
}

// NewTokenCounter creates a new TokenCounter with an empty map.
func NewTokenCounter() *TokenCounter {
	return &TokenCounter{counts: make(map[string]int)}
}

// IncrementTokens increases the count for each token in the list.
func (tc *TokenCounter) IncrementTokens(tokens []string) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	for _, token := range tokens {
		tc.counts[token]++
		atomic.AddInt64(&tc.totalCount, 1)
	}
}

// GetCount returns the count for a specific token.
func (tc *TokenCounter) GetCount(token string) int {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return tc.counts[token]
}

// Counts returns a snapshot of all token counts.
func (tc *TokenCounter) Counts() map[string]int {
	tc.mu.RLock()
	defer tc.mu.RUnlock()

	snapshot := make(map[string]int, len(tc.counts))
	for token, count := range tc.counts {
		snapshot[token] = count
	}
	return snapshot
}

// Distinct returns the number of distinct tokens.
func (tc *TokenCounter) Distinct() int {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return len(tc.counts)
}

// GetTotalTokens returns the total number of token occurrences (sum of all counts)
func (tc *TokenCounter) GetTotalTokens() int {
	return int(atomic.LoadInt64(&tc.totalCount))
}

// Top returns the n most frequent tokens, most frequent first. Ties are
// broken alphabetically so the result is stable. n <= 0 returns all tokens.
func (tc *TokenCounter) Top(n int) []TokenCount {
	tc.mu.RLock()
	all := make([]TokenCount, 0, len(tc.counts))
	for token, count := range tc.counts {
		all = append(all, TokenCount{Token: token, Count: count})
	}
	tc.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].Count != all[j].Count {
			return all[i].Count > all[j].Count
		}
		return all[i].Token < all[j].Token
	})
	if n > 0 && len(all) > n {
		all = all[:n]
	}
	return all
}
