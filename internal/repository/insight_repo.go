package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"soulsig/internal/domain"
)

type InsightRepository interface {
	Create(ctx context.Context, insight domain.Insight) error
	ListByProfile(ctx context.Context, profileID string, limit int) ([]domain.Insight, error)
}

type PgInsightRepository struct {
	pool *pgxpool.Pool
}

func NewPgInsightRepository(pool *pgxpool.Pool) *PgInsightRepository {
	return &PgInsightRepository{pool: pool}
}

func (r *PgInsightRepository) Create(ctx context.Context, insight domain.Insight) error {
	const query = `
		INSERT INTO insights (id, profile_id, summary, highlights, model, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.pool.Exec(ctx, query,
		insight.ID,
		insight.ProfileID,
		insight.Summary,
		insight.Highlights,
		insight.Model,
		insight.CreatedAt,
	)
	return err
}

func (r *PgInsightRepository) ListByProfile(ctx context.Context, profileID string, limit int) ([]domain.Insight, error) {
	if limit <= 0 {
		limit = 10
	}
	const query = `
		SELECT id, profile_id, summary, highlights, model, created_at
		FROM insights
		WHERE profile_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, profileID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var insights []domain.Insight
	for rows.Next() {
		var insight domain.Insight
		if err := rows.Scan(
			&insight.ID,
			&insight.ProfileID,
			&insight.Summary,
			&insight.Highlights,
			&insight.Model,
			&insight.CreatedAt,
		); err != nil {
			return nil, err
		}
		insights = append(insights, insight)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return insights, nil
}
