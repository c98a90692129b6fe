package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"soulsig/internal/domain"
)

type SignatureRepository interface {
	Upsert(ctx context.Context, profileID, scheme string, embedding pgvector.Vector, updatedAt time.Time) error
	FindSimilar(ctx context.Context, profileID string, k int) ([]domain.SimilarProfile, error)
}

type PgSignatureRepository struct {
	pool *pgxpool.Pool
}

func NewPgSignatureRepository(pool *pgxpool.Pool) *PgSignatureRepository {
	return &PgSignatureRepository{pool: pool}
}

func (r *PgSignatureRepository) Upsert(ctx context.Context, profileID, scheme string, embedding pgvector.Vector, updatedAt time.Time) error {
	const query = `
		INSERT INTO signatures (profile_id, scheme, embedding, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (profile_id)
		DO UPDATE SET
			scheme = EXCLUDED.scheme,
			embedding = EXCLUDED.embedding,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.pool.Exec(ctx, query, profileID, scheme, embedding, updatedAt)
	return err
}

func (r *PgSignatureRepository) FindSimilar(ctx context.Context, profileID string, k int) ([]domain.SimilarProfile, error) {
	if k <= 0 {
		k = 5
	}
	const query = `
		SELECT p.id, p.user_id, s.embedding <=> t.embedding AS distance
		FROM signatures s
		JOIN signatures t ON t.profile_id = $1 AND t.scheme = s.scheme
		JOIN profiles p ON p.id = s.profile_id
		WHERE s.profile_id <> $1
		ORDER BY s.embedding <=> t.embedding
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, profileID, k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var similar []domain.SimilarProfile
	for rows.Next() {
		var s domain.SimilarProfile
		if err := rows.Scan(&s.ProfileID, &s.UserID, &s.Distance); err != nil {
			return nil, err
		}
		similar = append(similar, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return similar, nil
}
