package links

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when no redirect record exists for a slug.
var ErrNotFound = errors.New("redirect record not found")

// DirtyMarker is notified whenever a redirect record is mutated, so the
// edge-cache sync subsystem knows the cache may be stale.
type DirtyMarker interface {
	MarkDirty()
}

// Store is the Postgres-backed authoritative store for redirect records.
type Store struct {
	pool  *pgxpool.Pool
	dirty DirtyMarker
}

// NewStore creates a store backed by the given pgx pool. Every mutation marks
// the dirty flag; the caller is responsible for closing the pool.
func NewStore(pool *pgxpool.Pool, dirty DirtyMarker) (*Store, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgx pool is required")
	}
	if dirty == nil {
		return nil, fmt.Errorf("dirty marker is required")
	}
	return &Store{pool: pool, dirty: dirty}, nil
}

// ListRedirects returns the full snapshot of redirect records, ordered by
// slug for deterministic batching.
func (s *Store) ListRedirects(ctx context.Context) ([]RedirectRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, slug, target_url, expires_at FROM links ORDER BY slug`)
	if err != nil {
		return nil, fmt.Errorf("failed to list redirect records: %w", err)
	}
	defer rows.Close()

	var records []RedirectRecord
	for rows.Next() {
		var rec RedirectRecord
		if err := rows.Scan(&rec.ID, &rec.Slug, &rec.TargetURL, &rec.ExpiresAt); err != nil {
			return nil, fmt.Errorf("failed to scan redirect record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read redirect records: %w", err)
	}

	return records, nil
}

// Create inserts a new redirect record and marks the cache dirty.
func (s *Store) Create(ctx context.Context, slug, targetURL string, expiresAt *time.Time) (RedirectRecord, error) {
	rec := RedirectRecord{
		ID:        uuid.New(),
		Slug:      slug,
		TargetURL: targetURL,
		ExpiresAt: expiresAt,
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO links (id, slug, target_url, expires_at) VALUES ($1, $2, $3, $4)`,
		rec.ID, rec.Slug, rec.TargetURL, rec.ExpiresAt)
	if err != nil {
		return RedirectRecord{}, fmt.Errorf("failed to create redirect record %q: %w", slug, err)
	}

	s.dirty.MarkDirty()
	return rec, nil
}

// Update rewrites the target and expiry of an existing redirect record and
// marks the cache dirty.
func (s *Store) Update(ctx context.Context, slug, targetURL string, expiresAt *time.Time) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE links SET target_url = $2, expires_at = $3, updated_at = now() WHERE slug = $1`,
		slug, targetURL, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to update redirect record %q: %w", slug, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	s.dirty.MarkDirty()
	return nil
}

// Delete removes a redirect record and marks the cache dirty.
func (s *Store) Delete(ctx context.Context, slug string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM links WHERE slug = $1`, slug)
	if err != nil {
		return fmt.Errorf("failed to delete redirect record %q: %w", slug, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	s.dirty.MarkDirty()
	return nil
}
