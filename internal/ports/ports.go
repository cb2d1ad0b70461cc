package ports

import (
	"context"
	"errors"
	"time"

	"DemandScout/internal/domain"
)

// ErrFetch marks listing-level failures from a PostSource. A fetch error is
// fatal to the whole run.
var ErrFetch = errors.New("post source fetch failed")

// ErrPersist marks per-record store failures. These are counted and skipped,
// never fatal.
var ErrPersist = errors.New("demand store persist failed")

// PostSource pulls forum submissions from one upstream platform listing.
// A non-positive limit yields no posts.
type PostSource interface {
	Platform() domain.Platform
	FetchPosts(ctx context.Context, kind domain.PostKind, limit int) ([]domain.Post, error)
}

// DemandStore persists scored demand records and per-source crawl health.
// UpsertSourceStats must be a single atomic read-modify-write.
type DemandStore interface {
	Save(ctx context.Context, record domain.ScoredDemand) (string, error)
	UpsertSourceStats(ctx context.Context, platform domain.Platform, demandsFound, demandsSaved int) error
}

// Notifier streams run digests to Telegram or other channels.
type Notifier interface {
	PublishDigest(ctx context.Context, digest string) error
}

// Scheduler controls when pipelines execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
