package repositories

import (
	"context"
	"time"

	domain "github.com/lingobridge/api/internal/domain"
)

// Registry exposes typed repository accessors and lifecycle hooks for dependency injection.
type Registry interface {
	Close() error

	Contributions() ContributionRepository
	LanguagePairs() LanguagePairRepository
	Health() HealthRepository
}

// RepositoryError wraps low-level persistence failures with categorisation used by services.
type RepositoryError interface {
	error
	IsNotFound() bool
	IsConflict() bool
	IsUnavailable() bool
}

// ContributionRepository persists crowd-sourced translation contributions.
type ContributionRepository interface {
	Insert(ctx context.Context, contribution domain.Contribution) error
	FindByID(ctx context.Context, contributionID string) (domain.Contribution, error)
	FindPending(ctx context.Context, sourceText, sourceLang, targetLang string) (domain.Contribution, error)
	FindValidated(ctx context.Context, sourceText, sourceLang, targetLang string) (domain.Contribution, error)
}

// LanguagePairRepository maintains per-pair aggregate documents and the
// denormalized translation copies kept alongside them.
type LanguagePairRepository interface {
	// EnsureExists creates the aggregate with zero counters if it is absent.
	// Concurrent calls for the same pair must converge on a single document.
	EnsureExists(ctx context.Context, stats domain.LanguagePairStats) error
	IncrementCounters(ctx context.Context, pairKey string, delta domain.CounterDelta, updatedAt time.Time) error
	InsertTranslationCopy(ctx context.Context, pairKey string, contribution domain.Contribution) error
	Get(ctx context.Context, pairKey string) (domain.LanguagePairStats, error)
}

// HealthRepository verifies store connectivity for readiness probes.
type HealthRepository interface {
	Check(ctx context.Context) error
}
