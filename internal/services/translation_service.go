package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/lingobridge/api/internal/dictionary"
	"github.com/lingobridge/api/internal/matching"
	"github.com/lingobridge/api/internal/platform/textutil"
	"github.com/lingobridge/api/internal/repositories"

	domain "github.com/lingobridge/api/internal/domain"
)

// Fuzzy candidates at or above this score are accepted as matches.
const fuzzyScoreThreshold = 70

var (
	errTranslationDictionaryRequired = errors.New("translation: dictionary is required")
	errTranslationMatcherRequired    = errors.New("translation: matcher is required")
	errTranslationRepositoryRequired = errors.New("translation: contribution repository is required")
)

// ErrTranslationMissingText indicates the request carried no text to translate.
var ErrTranslationMissingText = errors.New("translation: no text provided")

// ErrTranslationMissingLanguages indicates the source or target language was not specified.
var ErrTranslationMissingLanguages = errors.New("translation: source or target language not specified")

// ErrTranslationUnavailable indicates a dependency failure prevented resolution.
var ErrTranslationUnavailable = errors.New("translation: service unavailable")

// UnsupportedPairError reports a language pair the dictionary has no bucket for.
type UnsupportedPairError struct {
	SourceLang     string
	TargetLang     string
	SupportedPairs []string
}

func (e *UnsupportedPairError) Error() string {
	return fmt.Sprintf("translation: pair %s-%s is not supported", e.SourceLang, e.TargetLang)
}

// NoMatchError reports that no tier produced a translation for the text.
type NoMatchError struct {
	Text       string
	SourceLang string
	TargetLang string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("translation: no translation found for %q", e.Text)
}

// TranslationServiceDeps bundles constructor inputs for the resolution pipeline.
type TranslationServiceDeps struct {
	Dictionary    *dictionary.Index
	Matcher       matching.Matcher
	Contributions repositories.ContributionRepository
}

type translationService struct {
	dict          *dictionary.Index
	matcher       matching.Matcher
	contributions repositories.ContributionRepository
}

// NewTranslationService constructs a TranslationService with the provided dependencies.
func NewTranslationService(deps TranslationServiceDeps) (TranslationService, error) {
	if deps.Dictionary == nil {
		return nil, errTranslationDictionaryRequired
	}
	if deps.Matcher == nil {
		return nil, errTranslationMatcherRequired
	}
	if deps.Contributions == nil {
		return nil, errTranslationRepositoryRequired
	}
	return &translationService{
		dict:          deps.Dictionary,
		matcher:       deps.Matcher,
		contributions: deps.Contributions,
	}, nil
}

// Translate resolves the query through the tiers in order: exact dictionary hit,
// fuzzy dictionary hit at or above the threshold, then pending contributions.
// Earlier tiers always win; the store is only consulted after both dictionary
// tiers miss.
func (s *translationService) Translate(ctx context.Context, query TranslateQuery) (TranslationResult, error) {
	text := textutil.NormalizeKey(query.Text)
	sourceLang := textutil.NormalizeKey(query.SourceLang)
	targetLang := textutil.NormalizeKey(query.TargetLang)

	if text == "" {
		return TranslationResult{}, ErrTranslationMissingText
	}
	if sourceLang == "" || targetLang == "" {
		return TranslationResult{}, ErrTranslationMissingLanguages
	}

	pairKey := textutil.PairKey(sourceLang, targetLang)
	if !s.dict.HasPair(pairKey) {
		return TranslationResult{}, &UnsupportedPairError{
			SourceLang:     sourceLang,
			TargetLang:     targetLang,
			SupportedPairs: s.dict.SupportedPairs(),
		}
	}

	if translation, ok := s.dict.Lookup(pairKey, text); ok {
		return TranslationResult{
			OriginalText:   text,
			Translation:    translation,
			MatchType:      domain.MatchTypeExact,
			SourceLanguage: sourceLang,
			TargetLanguage: targetLang,
		}, nil
	}

	if match, score := s.matcher.BestMatch(text, s.dict.Sources(pairKey)); score >= fuzzyScoreThreshold {
		translation, ok := s.dict.Lookup(pairKey, match)
		if !ok {
			return TranslationResult{}, fmt.Errorf("%w: matched phrase %q missing from bucket %s", ErrTranslationUnavailable, match, pairKey)
		}
		return TranslationResult{
			OriginalText:   text,
			Translation:    translation,
			MatchType:      domain.MatchTypeFuzzy,
			SourceLanguage: sourceLang,
			TargetLanguage: targetLang,
			FuzzyScore:     score,
			MatchedWord:    match,
		}, nil
	}

	pending, err := s.contributions.FindPending(ctx, text, sourceLang, targetLang)
	switch {
	case err == nil:
		return TranslationResult{
			OriginalText:   text,
			Translation:    pending.TargetText,
			MatchType:      domain.MatchTypePending,
			SourceLanguage: sourceLang,
			TargetLanguage: targetLang,
			Note:           "This is a pending contribution awaiting review",
		}, nil
	case isRepoNotFound(err):
		return TranslationResult{}, &NoMatchError{Text: text, SourceLang: sourceLang, TargetLang: targetLang}
	default:
		return TranslationResult{}, fmt.Errorf("%w: pending lookup: %v", ErrTranslationUnavailable, err)
	}
}

// SupportedPairs lists the pair keys the dictionary can resolve.
func (s *translationService) SupportedPairs() []string {
	return s.dict.SupportedPairs()
}

func isRepoNotFound(err error) bool {
	var repoErr repositories.RepositoryError
	return errors.As(err, &repoErr) && repoErr.IsNotFound()
}
