package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jask/adminui/internal/database/repository"
	"github.com/jask/adminui/internal/member"
	"github.com/jask/adminui/internal/source"
)

// SnapshotStore is the cache the loader falls back to when the source is
// unreachable.
type SnapshotStore interface {
	Save(ctx context.Context, origin string, members []member.Member, rejected int) (repository.Snapshot, error)
	Latest(ctx context.Context, origin string) (*repository.Snapshot, error)
	Prune(ctx context.Context, origin string, keep int) (int64, error)
}

// Loader fetches the member list once per session.
type Loader struct {
	Source    source.Fetcher
	Snapshots SnapshotStore // optional
	Keep      int
	Logger    *slog.Logger
}

// LoadResult is what the table is populated with.
type LoadResult struct {
	Members  []member.Member
	Rejected []member.Rejection
	// RejectedCount is how many records were dropped at ingestion. For a
	// snapshot only the count survives.
	RejectedCount int
	Origin        string
	FetchedAt     time.Time
	// Stale is set when the source failed and Members come from a snapshot
	// that was Age old at load time.
	Stale    bool
	Age      time.Duration
	FetchErr error
}

// Load fetches from the source. On success the fetched list is written to
// the snapshot cache. On failure the newest snapshot for the same origin is
// returned with Stale set; without one the fetch error is returned.
func (l *Loader) Load(ctx context.Context) (LoadResult, error) {
	log := l.logger()
	origin := l.Source.Origin()
	started := time.Now()

	batch, err := l.Source.Fetch(ctx)
	if err != nil {
		log.Warn("fetch members failed", "origin", origin, "err", err)
		return l.fallback(ctx, origin, err)
	}
	for _, rej := range batch.Rejected {
		log.Warn("rejected member record", "origin", origin, "index", rej.Index, "id", string(rej.ID), "err", rej.Err)
	}
	log.Info("fetched members", "origin", origin, "count", len(batch.Members), "rejected", len(batch.Rejected), "took", time.Since(started))

	res := LoadResult{
		Members:       batch.Members,
		Rejected:      batch.Rejected,
		RejectedCount: len(batch.Rejected),
		Origin:        origin,
		FetchedAt:     time.Now().UTC(),
	}
	if l.Snapshots != nil {
		if snap, err := l.Snapshots.Save(ctx, origin, batch.Members, len(batch.Rejected)); err != nil {
			log.Error("save snapshot", "origin", origin, "err", err)
		} else {
			res.FetchedAt = snap.FetchedAt
			if n, err := l.Snapshots.Prune(ctx, origin, l.keep()); err != nil {
				log.Error("prune snapshots", "origin", origin, "err", err)
			} else if n > 0 {
				log.Debug("pruned snapshots", "origin", origin, "removed", n)
			}
		}
	}
	return res, nil
}

func (l *Loader) fallback(ctx context.Context, origin string, fetchErr error) (LoadResult, error) {
	if l.Snapshots == nil {
		return LoadResult{}, fetchErr
	}
	snap, err := l.Snapshots.Latest(ctx, origin)
	if err != nil {
		l.logger().Error("read snapshot", "origin", origin, "err", err)
		return LoadResult{}, fetchErr
	}
	if snap == nil {
		return LoadResult{}, fetchErr
	}
	l.logger().Info("using cached snapshot", "origin", origin, "snapshot", snap.ID, "fetched_at", snap.FetchedAt, "count", len(snap.Members))
	return LoadResult{
		Members:       snap.Members,
		RejectedCount: snap.Rejected,
		Origin:        origin,
		FetchedAt:     snap.FetchedAt,
		Stale:         true,
		Age:           snap.Age(time.Now()),
		FetchErr:      fetchErr,
	}, nil
}

func (l *Loader) keep() int {
	if l.Keep < 1 {
		return 1
	}
	return l.Keep
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l.Logger
}

// Summary is a one-line description of a load for the status bar.
func (r LoadResult) Summary() string {
	s := fmt.Sprintf("loaded %d members", len(r.Members))
	if r.RejectedCount > 0 {
		s += fmt.Sprintf(", rejected %d malformed", r.RejectedCount)
	}
	if r.Stale {
		s += fmt.Sprintf(" (offline: cached %s, %s old)", r.FetchedAt.Local().Format("2006-01-02 15:04"), r.Age.Truncate(time.Second))
	}
	return s
}
