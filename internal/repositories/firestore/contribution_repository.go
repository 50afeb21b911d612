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

const contributionsCollection = "contributions"

// contributionDocument mirrors the stored field layout. Field names are shared
// with the review tooling, so they stay snake_case.
type contributionDocument struct {
	ID             string    `firestore:"id"`
	SourceText     string    `firestore:"source_text"`
	TargetText     string    `firestore:"target_text"`
	SourceLanguage string    `firestore:"source_language"`
	TargetLanguage string    `firestore:"target_language"`
	SourceExample  string    `firestore:"source_example"`
	TargetExample  string    `firestore:"target_example"`
	Status         string    `firestore:"status"`
	Votes          int64     `firestore:"votes"`
	Reviewed       bool      `firestore:"reviewed"`
	CreatedAt      time.Time `firestore:"created_at"`
	UpdatedAt      time.Time `firestore:"updated_at"`
}

// ContributionRepository persists contribution records in the primary collection.
type ContributionRepository struct {
	base *pfirestore.BaseRepository[domain.Contribution]
}

// NewContributionRepository constructs a Firestore-backed contribution repository.
func NewContributionRepository(provider *pfirestore.Provider) (*ContributionRepository, error) {
	if provider == nil {
		return nil, errors.New("contribution repository: firestore provider is required")
	}

	encoder := func(ctx context.Context, value domain.Contribution) (any, error) {
		return encodeContributionDocument(value), nil
	}
	decoder := func(ctx context.Context, snap *firestore.DocumentSnapshot) (domain.Contribution, error) {
		var doc contributionDocument
		if err := snap.DataTo(&doc); err != nil {
			return domain.Contribution{}, err
		}
		if doc.ID == "" {
			doc.ID = snap.Ref.ID
		}
		return decodeContributionDocument(doc), nil
	}

	base := pfirestore.NewBaseRepository[domain.Contribution](provider, contributionsCollection, encoder, decoder)
	return &ContributionRepository{base: base}, nil
}

// Insert stores a new contribution document keyed by its ID.
func (r *ContributionRepository) Insert(ctx context.Context, contribution domain.Contribution) error {
	if r == nil || r.base == nil {
		return errors.New("contribution repository not initialised")
	}
	contribution.ID = strings.TrimSpace(contribution.ID)
	if contribution.ID == "" {
		return errors.New("contribution repository: id is required")
	}

	docRef, err := r.base.DocumentRef(ctx, contribution.ID)
	if err != nil {
		return err
	}
	payload := encodeContributionDocument(contribution)
	if _, err := docRef.Create(ctx, payload); err != nil {
		return pfirestore.WrapError("contributions.insert", err)
	}
	return nil
}

// FindByID loads a contribution by its identifier.
func (r *ContributionRepository) FindByID(ctx context.Context, contributionID string) (domain.Contribution, error) {
	if r == nil || r.base == nil {
		return domain.Contribution{}, errors.New("contribution repository not initialised")
	}
	contributionID = strings.TrimSpace(contributionID)
	if contributionID == "" {
		return domain.Contribution{}, errors.New("contribution repository: id is required")
	}
	doc, err := r.base.Get(ctx, contributionID)
	if err != nil {
		return domain.Contribution{}, err
	}
	return doc.Data, nil
}

// FindPending returns one unreviewed contribution matching the phrase and pair.
func (r *ContributionRepository) FindPending(ctx context.Context, sourceText, sourceLang, targetLang string) (domain.Contribution, error) {
	return r.findByStatus(ctx, sourceText, sourceLang, targetLang, domain.ContributionStatusPending)
}

// FindValidated returns one approved contribution matching the phrase and pair.
func (r *ContributionRepository) FindValidated(ctx context.Context, sourceText, sourceLang, targetLang string) (domain.Contribution, error) {
	return r.findByStatus(ctx, sourceText, sourceLang, targetLang, domain.ContributionStatusValidated)
}

func (r *ContributionRepository) findByStatus(ctx context.Context, sourceText, sourceLang, targetLang string, st domain.ContributionStatus) (domain.Contribution, error) {
	if r == nil || r.base == nil {
		return domain.Contribution{}, errors.New("contribution repository not initialised")
	}

	docs, err := r.base.Query(ctx, func(q firestore.Query) firestore.Query {
		return q.Where("source_text", "==", sourceText).
			Where("source_language", "==", sourceLang).
			Where("target_language", "==", targetLang).
			Where("status", "==", string(st)).
			Limit(1)
	})
	if err != nil {
		return domain.Contribution{}, err
	}
	if len(docs) == 0 {
		return domain.Contribution{}, pfirestore.WrapError("contributions.find", status.Error(codes.NotFound, "contribution not found"))
	}
	return docs[0].Data, nil
}

func encodeContributionDocument(contribution domain.Contribution) contributionDocument {
	return contributionDocument{
		ID:             contribution.ID,
		SourceText:     contribution.SourceText,
		TargetText:     contribution.TargetText,
		SourceLanguage: contribution.SourceLanguage,
		TargetLanguage: contribution.TargetLanguage,
		SourceExample:  contribution.SourceExample,
		TargetExample:  contribution.TargetExample,
		Status:         string(contribution.Status),
		Votes:          contribution.Votes,
		Reviewed:       contribution.Reviewed,
		CreatedAt:      contribution.CreatedAt.UTC(),
		UpdatedAt:      contribution.UpdatedAt.UTC(),
	}
}

func decodeContributionDocument(doc contributionDocument) domain.Contribution {
	return domain.Contribution{
		ID:             doc.ID,
		SourceText:     doc.SourceText,
		TargetText:     doc.TargetText,
		SourceLanguage: doc.SourceLanguage,
		TargetLanguage: doc.TargetLanguage,
		SourceExample:  doc.SourceExample,
		TargetExample:  doc.TargetExample,
		Status:         domain.ContributionStatus(doc.Status),
		Votes:          doc.Votes,
		Reviewed:       doc.Reviewed,
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
	}
}
