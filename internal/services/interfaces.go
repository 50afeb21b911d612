package services

import (
	"context"

	domain "github.com/lingobridge/api/internal/domain"
)

// TranslationResult aliases the domain result for handler convenience.
type TranslationResult = domain.TranslationResult

// TranslateQuery carries one resolution request through the pipeline.
type TranslateQuery struct {
	Text       string
	SourceLang string
	TargetLang string
}

// TranslationService resolves source text through the tiered lookup pipeline.
type TranslationService interface {
	Translate(ctx context.Context, query TranslateQuery) (TranslationResult, error)
	SupportedPairs() []string
}

// ContributionCommand carries one crowd submission.
type ContributionCommand struct {
	SourceText     string
	TargetText     string
	SourceLanguage string
	TargetLanguage string
	SourceExample  string
	TargetExample  string
}

// ContributionReceipt reports the stored record back to the caller.
type ContributionReceipt struct {
	ContributionID string
	Status         domain.ContributionStatus
	LanguagePair   string
}

// ContributionService validates, deduplicates and persists crowd contributions.
type ContributionService interface {
	Submit(ctx context.Context, cmd ContributionCommand) (ContributionReceipt, error)
}
