package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	domain "github.com/lingobridge/api/internal/domain"
	pfirestore "github.com/lingobridge/api/internal/platform/firestore"
)

const (
	languagePairsCollection   = "language_pairs"
	translationsSubcollection = "translations"
)

type languagePairDocument struct {
	SourceLanguage         string    `firestore:"source_language"`
	TargetLanguage         string    `firestore:"target_language"`
	TotalContributions     int64     `firestore:"total_contributions"`
	PendingContributions   int64     `firestore:"pending_contributions"`
	ValidatedContributions int64     `firestore:"validated_contributions"`
	LastUpdated            time.Time `firestore:"last_updated"`
}

// LanguagePairRepository maintains per-pair aggregate documents and their
// denormalized translation copies.
type LanguagePairRepository struct {
	provider *pfirestore.Provider
	base     *pfirestore.BaseRepository[domain.LanguagePairStats]
}

// NewLanguagePairRepository constructs a Firestore-backed language pair repository.
func NewLanguagePairRepository(provider *pfirestore.Provider) (*LanguagePairRepository, error) {
	if provider == nil {
		return nil, errors.New("language pair repository: firestore provider is required")
	}

	encoder := func(ctx context.Context, value domain.LanguagePairStats) (any, error) {
		return encodeLanguagePairDocument(value), nil
	}
	decoder := func(ctx context.Context, snap *firestore.DocumentSnapshot) (domain.LanguagePairStats, error) {
		var doc languagePairDocument
		if err := snap.DataTo(&doc); err != nil {
			return domain.LanguagePairStats{}, err
		}
		return decodeLanguagePairDocument(snap.Ref.ID, doc), nil
	}

	base := pfirestore.NewBaseRepository[domain.LanguagePairStats](provider, languagePairsCollection, encoder, decoder)
	return &LanguagePairRepository{provider: provider, base: base}, nil
}

// EnsureExists creates the aggregate document with zero counters when absent.
// The check-then-create runs inside a transaction so concurrent first
// contributions for the same pair converge on a single document.
func (r *LanguagePairRepository) EnsureExists(ctx context.Context, stats domain.LanguagePairStats) error {
	if r == nil || r.provider == nil {
		return errors.New("language pair repository not initialised")
	}
	pairKey := strings.TrimSpace(stats.PairKey)
	if pairKey == "" {
		return errors.New("language pair repository: pair key is required")
	}

	err := r.provider.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		ref, err := r.base.DocumentRef(ctx, pairKey)
		if err != nil {
			return err
		}

		_, err = tx.Get(ref)
		switch status.Code(err) {
		case codes.NotFound:
			doc := languagePairDocument{
				SourceLanguage: stats.SourceLanguage,
				TargetLanguage: stats.TargetLanguage,
				LastUpdated:    stats.LastUpdated.UTC(),
			}
			return tx.Create(ref, doc)
		case codes.OK:
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return pfirestore.WrapError("language_pairs.ensure", err)
	}
	return nil
}

// IncrementCounters applies the delta as atomic field transforms in one update.
func (r *LanguagePairRepository) IncrementCounters(ctx context.Context, pairKey string, delta domain.CounterDelta, updatedAt time.Time) error {
	if r == nil || r.base == nil {
		return errors.New("language pair repository not initialised")
	}
	pairKey = strings.TrimSpace(pairKey)
	if pairKey == "" {
		return errors.New("language pair repository: pair key is required")
	}

	updates := []firestore.Update{
		{Path: "last_updated", Value: updatedAt.UTC()},
	}
	if delta.Total != 0 {
		updates = append(updates, firestore.Update{Path: "total_contributions", Value: firestore.Increment(delta.Total)})
	}
	if delta.Pending != 0 {
		updates = append(updates, firestore.Update{Path: "pending_contributions", Value: firestore.Increment(delta.Pending)})
	}
	if delta.Validated != 0 {
		updates = append(updates, firestore.Update{Path: "validated_contributions", Value: firestore.Increment(delta.Validated)})
	}

	if _, err := r.base.Update(ctx, pairKey, updates); err != nil {
		return err
	}
	return nil
}

// InsertTranslationCopy writes the denormalized contribution copy under the
// pair's translations subcollection.
func (r *LanguagePairRepository) InsertTranslationCopy(ctx context.Context, pairKey string, contribution domain.Contribution) error {
	if r == nil || r.base == nil {
		return errors.New("language pair repository not initialised")
	}
	pairKey = strings.TrimSpace(pairKey)
	if pairKey == "" {
		return errors.New("language pair repository: pair key is required")
	}
	contribution.ID = strings.TrimSpace(contribution.ID)
	if contribution.ID == "" {
		return errors.New("language pair repository: contribution id is required")
	}

	pairRef, err := r.base.DocumentRef(ctx, pairKey)
	if err != nil {
		return err
	}
	copyRef := pairRef.Collection(translationsSubcollection).Doc(contribution.ID)
	payload := encodeContributionDocument(contribution)
	if _, err := copyRef.Set(ctx, payload); err != nil {
		return pfirestore.WrapError("language_pairs.translations.insert", err)
	}
	return nil
}

// Get loads the aggregate document for the pair key.
func (r *LanguagePairRepository) Get(ctx context.Context, pairKey string) (domain.LanguagePairStats, error) {
	if r == nil || r.base == nil {
		return domain.LanguagePairStats{}, errors.New("language pair repository not initialised")
	}
	pairKey = strings.TrimSpace(pairKey)
	if pairKey == "" {
		return domain.LanguagePairStats{}, errors.New("language pair repository: pair key is required")
	}
	doc, err := r.base.Get(ctx, pairKey)
	if err != nil {
		return domain.LanguagePairStats{}, err
	}
	return doc.Data, nil
}

func encodeLanguagePairDocument(stats domain.LanguagePairStats) languagePairDocument {
	return languagePairDocument{
		SourceLanguage:         stats.SourceLanguage,
		TargetLanguage:         stats.TargetLanguage,
		TotalContributions:     stats.TotalContributions,
		PendingContributions:   stats.PendingContributions,
		ValidatedContributions: stats.ValidatedContributions,
		LastUpdated:            stats.LastUpdated.UTC(),
	}
}

func decodeLanguagePairDocument(id string, doc languagePairDocument) domain.LanguagePairStats {
	return domain.LanguagePairStats{
		PairKey:                id,
		SourceLanguage:         doc.SourceLanguage,
		TargetLanguage:         doc.TargetLanguage,
		TotalContributions:     doc.TotalContributions,
		PendingContributions:   doc.PendingContributions,
		ValidatedContributions: doc.ValidatedContributions,
		LastUpdated:            doc.LastUpdated,
	}
}
