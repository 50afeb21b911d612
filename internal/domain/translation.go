package domain

import "time"

// MatchType labels the resolution tier that produced a translation result.
type MatchType string

const (
	// MatchTypeExact indicates the source text was found verbatim in the dictionary.
	MatchTypeExact MatchType = "exact"
	// MatchTypeFuzzy indicates a close dictionary key was accepted by similarity score.
	MatchTypeFuzzy MatchType = "fuzzy"
	// MatchTypePending indicates the translation comes from an unreviewed contribution.
	MatchTypePending MatchType = "pending"
	// MatchTypeNone indicates no tier produced a translation.
	MatchTypeNone MatchType = "none"
)

// ContributionStatus tracks the review lifecycle of a crowd-submitted translation.
type ContributionStatus string

const (
	// ContributionStatusPending marks a contribution awaiting review.
	ContributionStatusPending ContributionStatus = "pending"
	// ContributionStatusValidated marks a contribution approved by review.
	// This service reads the state but never sets it; approval happens elsewhere.
	ContributionStatusValidated ContributionStatus = "validated"
)

// Contribution is a user-submitted candidate translation. Immutable after
// creation from this service's perspective.
type Contribution struct {
	ID             string
	SourceText     string
	TargetText     string
	SourceLanguage string
	TargetLanguage string
	SourceExample  string
	TargetExample  string
	Status         ContributionStatus
	Votes          int64
	Reviewed       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// LanguagePairStats aggregates contribution volume for one ordered language pair.
type LanguagePairStats struct {
	PairKey                string
	SourceLanguage         string
	TargetLanguage         string
	TotalContributions     int64
	PendingContributions   int64
	ValidatedContributions int64
	LastUpdated            time.Time
}

// CounterDelta describes the atomic additions applied to a language pair's
// aggregate counters in one update.
type CounterDelta struct {
	Total     int64
	Pending   int64
	Validated int64
}

// TranslationResult is the outcome of one pass through the resolution pipeline.
type TranslationResult struct {
	OriginalText   string
	Translation    string
	MatchType      MatchType
	SourceLanguage string
	TargetLanguage string

	// FuzzyScore and MatchedWord are set only for fuzzy matches.
	FuzzyScore  int
	MatchedWord string

	// Note carries the advisory for pending results; Suggestion the hint for misses.
	Note       string
	Suggestion string
}
