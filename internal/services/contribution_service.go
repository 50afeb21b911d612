package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lingobridge/api/internal/dictionary"
	"github.com/lingobridge/api/internal/platform/textutil"
	"github.com/lingobridge/api/internal/repositories"

	domain "github.com/lingobridge/api/internal/domain"
)

var (
	errContributionDictionaryRequired = errors.New("contribution: dictionary is required")
	errContributionRepositoryRequired = errors.New("contribution: contribution repository is required")
	errContributionPairsRequired      = errors.New("contribution: language pair repository is required")
)

// ErrContributionMissingText indicates source or target text was not supplied.
var ErrContributionMissingText = errors.New("contribution: source text and target text are required")

// ErrContributionMissingLanguages indicates source or target language was not supplied.
var ErrContributionMissingLanguages = errors.New("contribution: source and target language are required")

// ErrContributionUnavailable indicates a store failure interrupted ingestion.
var ErrContributionUnavailable = errors.New("contribution: service unavailable")

// DuplicateError reports a submission whose translation is already known, either
// from the dictionary or from an approved contribution.
type DuplicateError struct {
	ExistingTranslation string
}

func (e *DuplicateError) Error() string {
	return "contribution: this translation already exists"
}

// ContributionServiceDeps bundles constructor inputs for contribution ingestion.
type ContributionServiceDeps struct {
	Dictionary    *dictionary.Index
	Contributions repositories.ContributionRepository
	LanguagePairs repositories.LanguagePairRepository
	Clock         func() time.Time
	IDGenerator   func() string
}

type contributionService struct {
	dict          *dictionary.Index
	contributions repositories.ContributionRepository
	languagePairs repositories.LanguagePairRepository
	now           func() time.Time
	newID         func() string
}

// NewContributionService constructs a ContributionService with the provided dependencies.
func NewContributionService(deps ContributionServiceDeps) (ContributionService, error) {
	if deps.Dictionary == nil {
		return nil, errContributionDictionaryRequired
	}
	if deps.Contributions == nil {
		return nil, errContributionRepositoryRequired
	}
	if deps.LanguagePairs == nil {
		return nil, errContributionPairsRequired
	}

	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = uuid.NewString
	}

	return &contributionService{
		dict:          deps.Dictionary,
		contributions: deps.Contributions,
		languagePairs: deps.LanguagePairs,
		now:           func() time.Time { return clock().UTC() },
		newID:         idGen,
	}, nil
}

// Submit validates and stores one contribution. Duplicates are rejected when the
// dictionary or an approved contribution already holds a translation for the
// source phrase; a pending record for the same phrase does not block another
// submission, review tooling arbitrates those.
func (s *contributionService) Submit(ctx context.Context, cmd ContributionCommand) (ContributionReceipt, error) {
	sourceText := textutil.NormalizeKey(cmd.SourceText)
	targetText := strings.TrimSpace(cmd.TargetText)
	sourceLang := textutil.NormalizeKey(cmd.SourceLanguage)
	targetLang := textutil.NormalizeKey(cmd.TargetLanguage)

	if sourceText == "" || targetText == "" {
		return ContributionReceipt{}, ErrContributionMissingText
	}
	if sourceLang == "" || targetLang == "" {
		return ContributionReceipt{}, ErrContributionMissingLanguages
	}

	pairKey := textutil.PairKey(sourceLang, targetLang)

	// Dictionary wins over the store when both hold the phrase.
	if existing, ok := s.dict.Lookup(pairKey, sourceText); ok {
		return ContributionReceipt{}, &DuplicateError{ExistingTranslation: existing}
	}

	validated, err := s.contributions.FindValidated(ctx, sourceText, sourceLang, targetLang)
	switch {
	case err == nil:
		return ContributionReceipt{}, &DuplicateError{ExistingTranslation: validated.TargetText}
	case isRepoNotFound(err):
		// no approved record, proceed
	default:
		return ContributionReceipt{}, fmt.Errorf("%w: validated lookup: %v", ErrContributionUnavailable, err)
	}

	now := s.now()
	contribution := domain.Contribution{
		ID:             s.newID(),
		SourceText:     sourceText,
		TargetText:     targetText,
		SourceLanguage: sourceLang,
		TargetLanguage: targetLang,
		SourceExample:  strings.TrimSpace(cmd.SourceExample),
		TargetExample:  strings.TrimSpace(cmd.TargetExample),
		Status:         domain.ContributionStatusPending,
		Votes:          0,
		Reviewed:       false,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.contributions.Insert(ctx, contribution); err != nil {
		return ContributionReceipt{}, fmt.Errorf("%w: insert contribution: %v", ErrContributionUnavailable, err)
	}

	stats := domain.LanguagePairStats{
		PairKey:        pairKey,
		SourceLanguage: sourceLang,
		TargetLanguage: targetLang,
		LastUpdated:    now,
	}
	if err := s.languagePairs.EnsureExists(ctx, stats); err != nil {
		return ContributionReceipt{}, fmt.Errorf("%w: ensure language pair: %v", ErrContributionUnavailable, err)
	}

	delta := domain.CounterDelta{Total: 1, Pending: 1}
	if err := s.languagePairs.IncrementCounters(ctx, pairKey, delta, now); err != nil {
		return ContributionReceipt{}, fmt.Errorf("%w: increment counters: %v", ErrContributionUnavailable, err)
	}

	if err := s.languagePairs.InsertTranslationCopy(ctx, pairKey, contribution); err != nil {
		return ContributionReceipt{}, fmt.Errorf("%w: translation copy: %v", ErrContributionUnavailable, err)
	}

	return ContributionReceipt{
		ContributionID: contribution.ID,
		Status:         contribution.Status,
		LanguagePair:   pairKey,
	}, nil
}
