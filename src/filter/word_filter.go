package filter

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// WordFilter holds a set of words to filter out
type WordFilter struct {
	filteredWords map[string]bool
	mu            sync.RWMutex
}

// NewWordFilter creates a new empty WordFilter
func NewWordFilter() *WordFilter {
	return &WordFilter{
		filteredWords: make(map[string]bool),
	}
}

// LoadFromFile loads filtered words from a file
// Each line should contain one word, lines starting with # are comments
func (wf *WordFilter) LoadFromFile(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open filter file %s: %w", filename, err)
	}
	defer file.Close()

	if err := wf.LoadFromReader(file); err != nil {
		return fmt.Errorf("filter file %s: %w", filename, err)
	}
	return nil
}

// LoadFromReader loads filtered words from r using the same format as LoadFromFile.
func (wf *WordFilter) LoadFromReader(r io.Reader) error {
	wf.mu.Lock()
	defer wf.mu.Unlock()

	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Convert to lowercase for case-insensitive matching
		wf.filteredWords[strings.ToLower(line)] = true
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading word list at line %d: %w", lineNum, err)
	}
	return nil
}

// IsFiltered checks if a token should be filtered out
func (wf *WordFilter) IsFiltered(token string) bool {
	wf.mu.RLock()
	defer wf.mu.RUnlock()

	// Convert token to lowercase for case-insensitive matching
	return wf.filteredWords[strings.ToLower(token)]
}

// GetFilteredCount returns the number of words in the filter
func (wf *WordFilter) GetFilteredCount() int {
	wf.mu.RLock()
	defer wf.mu.RUnlock()
	return len(wf.filteredWords)
}

// AddWords puts words into the filter. Surrounding space is trimmed and
// blank entries are ignored.
func (wf *WordFilter) AddWords(words ...string) {
	wf.mu.Lock()
	defer wf.mu.Unlock()
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			wf.filteredWords[w] = true
		}
	}
}

// RemoveWords takes words out of the filter, so a built-in stop word can be
// kept in the output.
func (wf *WordFilter) RemoveWords(words ...string) {
	wf.mu.Lock()
	defer wf.mu.Unlock()
	for _, w := range words {
		delete(wf.filteredWords, strings.ToLower(strings.TrimSpace(w)))
	}
}

// Merge adds every word of other to wf.
func (wf *WordFilter) Merge(other *WordFilter) {
	other.mu.RLock()
	words := make([]string, 0, len(other.filteredWords))
	for w := range other.filteredWords {
		words = append(words, w)
	}
	other.mu.RUnlock()

	wf.mu.Lock()
	defer wf.mu.Unlock()
	for _, w := range words {
		wf.filteredWords[w] = true
	}
}
