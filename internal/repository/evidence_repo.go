package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"soulsig/internal/domain"
)

type EvidenceRepository interface {
	Insert(ctx context.Context, items []domain.EvidenceItem) error
	ListByProfile(ctx context.Context, profileID string, limit int) ([]domain.EvidenceItem, error)
	ListTagged(ctx context.Context, profileID string) ([]domain.EvidenceItem, error)
}

type PgEvidenceRepository struct {
	pool *pgxpool.Pool
}

func NewPgEvidenceRepository(pool *pgxpool.Pool) *PgEvidenceRepository {
	return &PgEvidenceRepository{pool: pool}
}

func (r *PgEvidenceRepository) Insert(ctx context.Context, items []domain.EvidenceItem) error {
	const query = `
		INSERT INTO evidence_items (
			id, profile_id, platform, feature, dimension, value, correlation,
			description, observed_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	for _, item := range items {
		_, err := r.pool.Exec(ctx, query,
			item.ID,
			item.ProfileID,
			item.Platform,
			item.Feature,
			item.Dimension,
			item.Value,
			item.Correlation,
			item.Description,
			item.ObservedAt,
			item.CreatedAt,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *PgEvidenceRepository) ListByProfile(ctx context.Context, profileID string, limit int) ([]domain.EvidenceItem, error) {
	if limit <= 0 {
		limit = 100
	}
	const query = `
		SELECT id, profile_id, platform, feature, dimension, value, correlation,
			description, observed_at, created_at
		FROM evidence_items
		WHERE profile_id = $1
		ORDER BY observed_at DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, profileID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvidence(rows)
}

func (r *PgEvidenceRepository) ListTagged(ctx context.Context, profileID string) ([]domain.EvidenceItem, error) {
	const query = `
		SELECT id, profile_id, platform, feature, dimension, value, correlation,
			description, observed_at, created_at
		FROM evidence_items
		WHERE profile_id = $1 AND dimension <> '' AND correlation <> 0
		ORDER BY observed_at DESC
	`
	rows, err := r.pool.Query(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvidence(rows)
}

func scanEvidence(rows pgxRows) ([]domain.EvidenceItem, error) {
	var items []domain.EvidenceItem
	for rows.Next() {
		var item domain.EvidenceItem
		if err := rows.Scan(
			&item.ID,
			&item.ProfileID,
			&item.Platform,
			&item.Feature,
			&item.Dimension,
			&item.Value,
			&item.Correlation,
			&item.Description,
			&item.ObservedAt,
			&item.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

type pgxRows interface {
	Next() bool
	Scan(...interface{}) error
	Err() error
	Close()
}
