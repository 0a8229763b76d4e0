package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jask/adminui/internal/database"
	"github.com/jask/adminui/internal/member"
)

// SnapshotRepo stores fetched member lists.
type SnapshotRepo struct {
	db *sql.DB
}

func NewSnapshotRepo(db *sql.DB) *SnapshotRepo { return &SnapshotRepo{db: db} }

// Save writes members as a new snapshot of origin and returns it.
func (r *SnapshotRepo) Save(ctx context.Context, origin string, members []member.Member, rejected int) (Snapshot, error) {
	snap := Snapshot{
		ID:        uuid.NewString(),
		Origin:    origin,
		FetchedAt: database.Now(),
		Rejected:  rejected,
		Members:   members,
	}
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO snapshots(id, origin, fetched_at, rejected) VALUES (?, ?, ?, ?);
		`, snap.ID, snap.Origin, snap.FetchedAt, snap.Rejected); err != nil {
			return fmt.Errorf("insert snapshot: %w", err)
		}
		stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO snapshot_members(snapshot_id, position, member_id, name, email, role)
		VALUES (?, ?, ?, ?, ?, ?);
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for i, m := range members {
			if _, err := stmt.ExecContext(ctx, snap.ID, i, string(m.ID), m.Name, m.Email, string(m.Role)); err != nil {
				return fmt.Errorf("insert snapshot member %s: %w", m.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// Latest returns the newest snapshot of origin, or nil when there is none.
func (r *SnapshotRepo) Latest(ctx context.Context, origin string) (*Snapshot, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, origin, fetched_at, rejected FROM snapshots
	WHERE origin = ? ORDER BY fetched_at DESC, rowid DESC LIMIT 1
	`, origin)
	var s Snapshot
	if err := row.Scan(&s.ID, &s.Origin, &s.FetchedAt, &s.Rejected); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	members, err := r.members(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	s.Members = members
	return &s, nil
}

func (r *SnapshotRepo) members(ctx context.Context, snapshotID string) ([]member.Member, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT member_id, name, email, role FROM snapshot_members
	WHERE snapshot_id = ? ORDER BY position
	`, snapshotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []member.Member{}
	for rows.Next() {
		var m member.Member
		var id, role string
		if err := rows.Scan(&id, &m.Name, &m.Email, &role); err != nil {
			return nil, err
		}
		m.ID, m.Role = member.ID(id), member.Role(role)
		out = append(out, m)
	}
	return out, rows.Err()
}

// Prune keeps the newest keep snapshots of origin and deletes the rest.
func (r *SnapshotRepo) Prune(ctx context.Context, origin string, keep int) (int64, error) {
	if keep < 1 {
		keep = 1
	}
	res, err := r.db.ExecContext(ctx, `
	DELETE FROM snapshots WHERE origin = ? AND id NOT IN (
		SELECT id FROM snapshots WHERE origin = ? ORDER BY fetched_at DESC, rowid DESC LIMIT ?
	)
	`, origin, origin, keep)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Count returns the number of stored snapshots across all origins.
func (r *SnapshotRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM snapshots`).Scan(&n)
	return n, err
}

// Age reports how long ago s was fetched.
func (s Snapshot) Age(now time.Time) time.Duration { return now.Sub(s.FetchedAt) }
