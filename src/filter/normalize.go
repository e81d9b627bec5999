package filter

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultFixedTokens are place names present in almost every tweet of the
// dataset; they would dominate the word cloud.
var DefaultFixedTokens = []string{"tegal", "kota"}

var (
	urlRe       = regexp.MustCompile(`http\S+`)
	mentionRe   = regexp.MustCompile(`@\S+`)
	nonLetterRe = regexp.MustCompile(`[^a-zA-Z\s\p{Zs}]`)
)

// Normalizer cleans tweet text before word counting.
type Normalizer struct {
	stopwords *WordFilter
	fixed     []string
}

// NewNormalizer builds a Normalizer dropping stopwords and fixedTokens.
// A nil stopwords filter disables stopword removal.
func NewNormalizer(stopwords *WordFilter, fixedTokens []string) *Normalizer {
	if stopwords == nil {
		stopwords = NewWordFilter()
	}
	fixed := make([]string, 0, len(fixedTokens))
	for _, f := range fixedTokens {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" {
			fixed = append(fixed, f)
		}
	}
	return &Normalizer{stopwords: stopwords, fixed: fixed}
}

// DefaultNormalizer uses the Indonesian stop word list and DefaultFixedTokens.
func DefaultNormalizer() *Normalizer {
	return NewNormalizer(IndonesianStopwords(), DefaultFixedTokens)
}

// Normalize strips URLs, mentions and everything that is not a letter,
// lowercases, and removes stopwords and fixed tokens. The result is the
// remaining tokens joined by single spaces, so Normalize(Normalize(s)) == Normalize(s).
func (n *Normalizer) Normalize(text string) string {
	return strings.Join(n.Tokens(text), " ")
}

// Tokens returns the normalized tokens of text in order.
func (n *Normalizer) Tokens(text string) []string {
	// Remove URLs
	text = urlRe.ReplaceAllString(text, "")

	// Remove usernames
	text = mentionRe.ReplaceAllString(text, "")

	// Fold accented letters so "café" keeps its letters
	text = foldAccents(text)

	// Remove special characters and numbers
	text = nonLetterRe.ReplaceAllString(text, "")

	text = strings.ToLower(text)

	// Lowercasing and stripping can expose new URL remains ("h.ttps", "mantapHttps")
	text = urlRe.ReplaceAllString(text, "")

	fields := strings.Fields(text)
	tokens := fields[:0]
	for _, tok := range fields {
		if n.stopwords.IsFiltered(tok) || n.isFixed(tok) {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// isFixed reports whether tok consists only of fixed tokens, which also
// catches hashtags such as #KotaTegal without touching words like "kotak".
func (n *Normalizer) isFixed(tok string) bool {
	if len(n.fixed) == 0 {
		return false
	}
	for {
		prev := tok
		for _, f := range n.fixed {
			tok = strings.ReplaceAll(tok, f, "")
		}
		if tok == "" {
			return true
		}
		if tok == prev {
			return false
		}
	}
}

func foldAccents(s string) string {
	// Transformers are stateful, build one per call
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
