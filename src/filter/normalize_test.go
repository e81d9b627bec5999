package filter

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	n := DefaultNormalizer()

	testCases := []struct {
		input    string
		expected string
	}{
		{"Pantai Alam Indah ramai sekali https://t.co/x @pemkot_tegal!!", "pantai alam indah ramai sekali"},
		{"Sate di Kota Tegal enak, 100% mantap!!", "sate enak mantap"},
		{"#KotaTegal kotak", "kotak"},
		{"Kafe café rasanya", "kafe cafe rasanya"},
		{"jalan-jalan   ke\talun-alun", "jalanjalan alunalun"},
		{"h.ttps//x", ""},
		{"http", "http"},
		{"", ""},
		{"@a @b https://c", ""},
	}

	for _, tc := range testCases {
		if got := n.Normalize(tc.input); got != tc.expected {
			t.Errorf("Normalize(%q) = %q, expected %q", tc.input, got, tc.expected)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	n := DefaultNormalizer()
	inputs := []string{
		"Pantai Alam Indah ramai sekali https://t.co/x @pemkot_tegal!!",
		"RT @user: Sekolah di TEGAL bagus bgt 👍 #pendidikan",
		"h.ttps//x httpfoo",
		"kotakota tegaltegal",
		"Ñoño   ÀÉÎ",
		"yang dan di",
		"aHTTPb",
		"xh.ttpz",
		"mantapHttps sate",
		"HTTP http Http://x",
	}
	for _, in := range inputs {
		once := n.Normalize(in)
		twice := n.Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestNormalizeDropsURLRemainsInsideWords(t *testing.T) {
	n := DefaultNormalizer()
	testCases := map[string]string{
		"aHTTPb":           "a",
		"xh.ttpz":          "x",
		"mantapHttps sate": "mantap sate",
		"h.ttps//x enak":   "enak",
		"http enak":        "http enak",
	}
	for in, expected := range testCases {
		if got := n.Normalize(in); got != expected {
			t.Errorf("Normalize(%q) = %q, expected %q", in, got, expected)
		}
	}
}

func TestNormalizeWithoutStopwords(t *testing.T) {
	n := NewNormalizer(nil, nil)
	if got := n.Normalize("Yang di Kota Tegal"); got != "yang di kota tegal" {
		t.Errorf("Expected only lowercasing, got %q", got)
	}
}

func TestNormalizeCustomFixedTokens(t *testing.T) {
	n := NewNormalizer(NewWordFilter(), []string{" Brebes ", ""})
	got := n.Tokens("Brebes telur asin #brebesbrebes")
	expected := []string{"telur", "asin"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Tokens = %v, expected %v", got, expected)
	}
}
