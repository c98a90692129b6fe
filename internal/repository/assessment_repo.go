package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"soulsig/internal/domain"
)

type AssessmentRepository interface {
	Create(ctx context.Context, assessment domain.Assessment) error
	LatestByProfile(ctx context.Context, profileID string) (domain.Assessment, error)
	ListByProfile(ctx context.Context, profileID string, limit int) ([]domain.Assessment, error)
}

type PgAssessmentRepository struct {
	pool *pgxpool.Pool
}

func NewPgAssessmentRepository(pool *pgxpool.Pool) *PgAssessmentRepository {
	return &PgAssessmentRepository{pool: pool}
}

func (r *PgAssessmentRepository) Create(ctx context.Context, assessment domain.Assessment) error {
	const query = `
		INSERT INTO assessments (
			id, profile_id, scheme, version, mode, dimensions, archetype,
			total_answered, completion_percentage, skipped_responses, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	dimensions, err := json.Marshal(assessment.Dimensions)
	if err != nil {
		return fmt.Errorf("marshal dimensions: %w", err)
	}
	var archetype interface{}
	if assessment.Archetype != nil {
		raw, err := json.Marshal(assessment.Archetype)
		if err != nil {
			return fmt.Errorf("marshal archetype: %w", err)
		}
		archetype = raw
	}

	_, err = r.pool.Exec(ctx, query,
		assessment.ID,
		assessment.ProfileID,
		assessment.Scheme,
		assessment.Version,
		assessment.Mode,
		dimensions,
		archetype,
		assessment.TotalAnswered,
		assessment.CompletionPercentage,
		assessment.SkippedResponses,
		assessment.CreatedAt,
	)
	return err
}

func (r *PgAssessmentRepository) LatestByProfile(ctx context.Context, profileID string) (domain.Assessment, error) {
	const query = `
		SELECT id, profile_id, scheme, version, mode, dimensions, archetype,
			total_answered, completion_percentage, skipped_responses, created_at
		FROM assessments
		WHERE profile_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	row := r.pool.QueryRow(ctx, query, profileID)
	return scanAssessment(row)
}

func (r *PgAssessmentRepository) ListByProfile(ctx context.Context, profileID string, limit int) ([]domain.Assessment, error) {
	if limit <= 0 {
		limit = 20
	}
	const query = `
		SELECT id, profile_id, scheme, version, mode, dimensions, archetype,
			total_answered, completion_percentage, skipped_responses, created_at
		FROM assessments
		WHERE profile_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, profileID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assessments []domain.Assessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		assessments = append(assessments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return assessments, nil
}

type pgxRow interface {
	Scan(...interface{}) error
}

func scanAssessment(row pgxRow) (domain.Assessment, error) {
	var a domain.Assessment
	var dimensions []byte
	var archetype []byte

	if err := row.Scan(
		&a.ID,
		&a.ProfileID,
		&a.Scheme,
		&a.Version,
		&a.Mode,
		&dimensions,
		&archetype,
		&a.TotalAnswered,
		&a.CompletionPercentage,
		&a.SkippedResponses,
		&a.CreatedAt,
	); err != nil {
		return domain.Assessment{}, err
	}

	if err := json.Unmarshal(dimensions, &a.Dimensions); err != nil {
		return domain.Assessment{}, fmt.Errorf("unmarshal dimensions: %w", err)
	}
	if len(archetype) > 0 {
		var arch domain.Archetype
		if err := json.Unmarshal(archetype, &arch); err != nil {
			return domain.Assessment{}, fmt.Errorf("unmarshal archetype: %w", err)
		}
		a.Archetype = &arch
	}
	return a, nil
}
