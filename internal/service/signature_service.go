package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	pgvector "github.com/pgvector/pgvector-go"
	"go.uber.org/zap"

	"soulsig/internal/domain"
	"soulsig/internal/questionbank"
	"soulsig/internal/repository"
)

// SignatureService mantiene la firma vectorial de cada perfil y resuelve
// vecinos por distancia coseno. Solo se comparan firmas del mismo esquema.
type SignatureService struct {
	catalog    *questionbank.Catalog
	signatures repository.SignatureRepository
	profiles   repository.ProfileRepository
	logger     *zap.Logger
}

func NewSignatureService(
	catalog *questionbank.Catalog,
	signatures repository.SignatureRepository,
	profiles repository.ProfileRepository,
	logger *zap.Logger,
) *SignatureService {
	return &SignatureService{
		catalog:    catalog,
		signatures: signatures,
		profiles:   profiles,
		logger:     logger,
	}
}

// Refresh reescribe la firma del perfil con los percentiles del resultado,
// en el orden de ejes que declara el banco del esquema.
func (s *SignatureService) Refresh(ctx context.Context, profileID string, result domain.ScoringResult) error {
	bank, err := s.catalog.Bank(result.Scheme)
	if err != nil {
		return err
	}
	percentiles := result.PercentileMap()
	vec := make([]float32, 0, len(bank.Axes))
	for _, axis := range bank.Axes {
		p, ok := percentiles[axis.Code]
		if !ok {
			return fmt.Errorf("result is missing dimension %q", axis.Code)
		}
		vec = append(vec, float32(p)/100)
	}

	if err := s.signatures.Upsert(ctx, profileID, result.Scheme, pgvector.NewVector(vec), time.Now().UTC()); err != nil {
		return fmt.Errorf("upsert signature: %w", err)
	}
	s.logger.Info("signature refreshed", zap.String("profile_id", profileID), zap.String("scheme", result.Scheme))
	return nil
}

// Similar busca los k perfiles con la firma más cercana a la del usuario.
func (s *SignatureService) Similar(ctx context.Context, userID string, k int) ([]domain.SimilarProfile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	similar, err := s.signatures.FindSimilar(ctx, profile.ID, k)
	if err != nil {
		return nil, fmt.Errorf("find similar: %w", err)
	}
	return similar, nil
}
