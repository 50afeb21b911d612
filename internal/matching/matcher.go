// Package matching scores approximate lookups against dictionary source phrases.
package matching

import (
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// Matcher finds the closest candidate phrase for a query. Scores are integers in
// 0..100, where 100 is an identical string.
type Matcher interface {
	BestMatch(query string, candidates []string) (match string, score int)
}

// WeightedRatioMatcher scores candidates with the weighted ratio, which blends
// full, partial and token-based similarity so a short query still scores high
// against a longer candidate phrase containing it.
type WeightedRatioMatcher struct{}

// NewWeightedRatioMatcher returns the default matcher.
func NewWeightedRatioMatcher() *WeightedRatioMatcher {
	return &WeightedRatioMatcher{}
}

// BestMatch returns the highest scoring candidate. Ties keep the earliest
// candidate. An empty candidate list yields ("", 0).
func (m *WeightedRatioMatcher) BestMatch(query string, candidates []string) (string, int) {
	bestMatch := ""
	bestScore := 0
	for _, candidate := range candidates {
		score := fuzzy.WRatio(query, candidate)
		if score > bestScore {
			bestMatch = candidate
			bestScore = score
		}
	}
	return bestMatch, bestScore
}
