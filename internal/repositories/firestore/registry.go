package firestore

import (
	"context"
	"errors"

	"google.golang.org/api/iterator"

	pfirestore "github.com/lingobridge/api/internal/platform/firestore"
	"github.com/lingobridge/api/internal/repositories"
)

// Registry wires the Firestore-backed repositories behind the repositories.Registry contract.
type Registry struct {
	provider      *pfirestore.Provider
	contributions *ContributionRepository
	languagePairs *LanguagePairRepository
	health        *healthRepository
}

var _ repositories.Registry = (*Registry)(nil)

// NewRegistry builds the repository set on a shared Firestore provider.
func NewRegistry(provider *pfirestore.Provider) (*Registry, error) {
	if provider == nil {
		return nil, errors.New("registry: firestore provider is required")
	}

	contributions, err := NewContributionRepository(provider)
	if err != nil {
		return nil, err
	}
	languagePairs, err := NewLanguagePairRepository(provider)
	if err != nil {
		return nil, err
	}

	return &Registry{
		provider:      provider,
		contributions: contributions,
		languagePairs: languagePairs,
		health:        &healthRepository{provider: provider},
	}, nil
}

// Close releases the underlying Firestore client.
func (r *Registry) Close() error {
	if r == nil || r.provider == nil {
		return nil
	}
	return r.provider.Close()
}

// Contributions returns the contribution repository.
func (r *Registry) Contributions() repositories.ContributionRepository {
	return r.contributions
}

// LanguagePairs returns the language pair repository.
func (r *Registry) LanguagePairs() repositories.LanguagePairRepository {
	return r.languagePairs
}

// Health returns the store connectivity probe.
func (r *Registry) Health() repositories.HealthRepository {
	return r.health
}

type healthRepository struct {
	provider *pfirestore.Provider
}

// Check runs a single-document read to confirm the store answers.
func (h *healthRepository) Check(ctx context.Context) error {
	if h == nil || h.provider == nil {
		return errors.New("health repository not initialised")
	}
	client, err := h.provider.Client(ctx)
	if err != nil {
		return err
	}

	iter := client.Collection(languagePairsCollection).Limit(1).Documents(ctx)
	defer iter.Stop()
	if _, err := iter.Next(); err != nil && !errors.Is(err, iterator.Done) {
		return pfirestore.WrapError("health.check", err)
	}
	return nil
}
