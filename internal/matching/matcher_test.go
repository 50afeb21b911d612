package matching

import "testing"

func TestBestMatchExact(t *testing.T) {
	m := NewWeightedRatioMatcher()

	match, score := m.BestMatch("hello", []string{"goodbye", "hello", "water"})
	if match != "hello" || score != 100 {
		t.Fatalf("BestMatch = %q, %d; want hello, 100", match, score)
	}
}

func TestBestMatchPrefersCloserCandidate(t *testing.T) {
	m := NewWeightedRatioMatcher()

	match, score := m.BestMatch("helo", []string{"goodbye", "hello", "water"})
	if match != "hello" {
		t.Fatalf("BestMatch = %q, want hello", match)
	}
	if score <= 0 || score >= 100 {
		t.Fatalf("score = %d, want a partial score in (0, 100)", score)
	}
}

func TestBestMatchNoCandidates(t *testing.T) {
	m := NewWeightedRatioMatcher()

	match, score := m.BestMatch("hello", nil)
	if match != "" || score != 0 {
		t.Fatalf("BestMatch = %q, %d; want empty, 0", match, score)
	}
}

func TestBestMatchShortQueryAgainstLongerPhrase(t *testing.T) {
	m := NewWeightedRatioMatcher()

	match, score := m.BestMatch("hello", []string{"hello everyone"})
	if match != "hello everyone" {
		t.Fatalf("BestMatch = %q, want hello everyone", match)
	}
	if score < 70 {
		t.Fatalf("score = %d, want at least 70 for a contained phrase", score)
	}
}

func TestBestMatchScoresOrderedBySimilarity(t *testing.T) {
	m := NewWeightedRatioMatcher()

	_, near := m.BestMatch("bonjour", []string{"bonjours"})
	_, far := m.BestMatch("bonjour", []string{"nourriture"})
	if near <= far {
		t.Fatalf("near = %d, far = %d; closer candidate should score higher", near, far)
	}
}
