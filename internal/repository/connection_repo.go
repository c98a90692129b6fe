package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"soulsig/internal/domain"
)

type ConnectionRepository interface {
	Upsert(ctx context.Context, conn domain.PlatformConnection) error
	ListByUser(ctx context.Context, userID string) ([]domain.PlatformConnection, error)
	Delete(ctx context.Context, userID, platform string) error
	TouchLastSync(ctx context.Context, userID, platform string, at time.Time) error
}

type PgConnectionRepository struct {
	pool *pgxpool.Pool
}

func NewPgConnectionRepository(pool *pgxpool.Pool) *PgConnectionRepository {
	return &PgConnectionRepository{pool: pool}
}

func (r *PgConnectionRepository) Upsert(ctx context.Context, conn domain.PlatformConnection) error {
	const query = `
		INSERT INTO platform_connections (id, user_id, platform, sealed_token, scopes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, platform)
		DO UPDATE SET
			sealed_token = EXCLUDED.sealed_token,
			scopes = EXCLUDED.scopes
	`
	_, err := r.pool.Exec(ctx, query,
		conn.ID,
		conn.UserID,
		conn.Platform,
		conn.SealedToken,
		conn.Scopes,
		conn.CreatedAt,
	)
	return err
}

func (r *PgConnectionRepository) ListByUser(ctx context.Context, userID string) ([]domain.PlatformConnection, error) {
	const query = `
		SELECT id, user_id, platform, sealed_token, scopes, created_at, last_sync_at
		FROM platform_connections
		WHERE user_id = $1
		ORDER BY platform
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conns []domain.PlatformConnection
	for rows.Next() {
		var conn domain.PlatformConnection
		if err := rows.Scan(
			&conn.ID,
			&conn.UserID,
			&conn.Platform,
			&conn.SealedToken,
			&conn.Scopes,
			&conn.CreatedAt,
			&conn.LastSyncAt,
		); err != nil {
			return nil, err
		}
		conns = append(conns, conn)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return conns, nil
}

func (r *PgConnectionRepository) Delete(ctx context.Context, userID, platform string) error {
	const query = `
		DELETE FROM platform_connections
		WHERE user_id = $1 AND platform = $2
	`
	tag, err := r.pool.Exec(ctx, query, userID, platform)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PgConnectionRepository) TouchLastSync(ctx context.Context, userID, platform string, at time.Time) error {
	const query = `
		UPDATE platform_connections
		SET last_sync_at = $3
		WHERE user_id = $1 AND platform = $2
	`
	_, err := r.pool.Exec(ctx, query, userID, platform, at)
	return err
}
