package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"soulsig/internal/domain"
	"soulsig/internal/questionbank"
	"soulsig/internal/repository"
	"soulsig/internal/scoring"
)

var (
	ErrNoAssessment = errors.New("profile has no assessments")
	ErrNoResponses  = errors.New("assessment needs at least one response")
)

const resultCacheTTL = 24 * time.Hour

// signatureRefresher recalcula la firma vectorial tras una corrida.
type signatureRefresher interface {
	Refresh(ctx context.Context, profileID string, result domain.ScoringResult) error
}

// AssessmentService corre el pipeline de scoring contra el banco del esquema
// y persiste cada corrida. La firma vectorial y la cache se refrescan a mejor
// esfuerzo: su falla no invalida un assessment ya puntuado.
type AssessmentService struct {
	catalog       *questionbank.Catalog
	assessments   repository.AssessmentRepository
	profiles      repository.ProfileRepository
	signatures    signatureRefresher
	cache         ResultCache
	defaultScheme string
	logger        *zap.Logger
}

func NewAssessmentService(
	catalog *questionbank.Catalog,
	assessments repository.AssessmentRepository,
	profiles repository.ProfileRepository,
	signatures signatureRefresher,
	cache ResultCache,
	defaultScheme string,
	logger *zap.Logger,
) *AssessmentService {
	if defaultScheme == "" {
		defaultScheme = domain.SchemeBigFive
	}
	return &AssessmentService{
		catalog:       catalog,
		assessments:   assessments,
		profiles:      profiles,
		signatures:    signatures,
		cache:         cache,
		defaultScheme: defaultScheme,
		logger:        logger,
	}
}

// resolveScheme aplica el esquema por defecto cuando el pedido no trae uno.
func (s *AssessmentService) resolveScheme(scheme string) string {
	scheme = strings.TrimSpace(scheme)
	if scheme == "" {
		return s.defaultScheme
	}
	return scheme
}

// Questionnaire devuelve el banco de preguntas a presentar para un esquema.
func (s *AssessmentService) Questionnaire(scheme string) (domain.QuestionBank, error) {
	return s.catalog.Bank(s.resolveScheme(scheme))
}

// Schemes lista los esquemas disponibles.
func (s *AssessmentService) Schemes() []string {
	return s.catalog.Schemes()
}

// Submit puntúa las respuestas y persiste la corrida resultante.
func (s *AssessmentService) Submit(ctx context.Context, userID, scheme string, responses []domain.QuestionResponse) (domain.Assessment, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.Assessment{}, ErrInvalidUserID
	}
	if len(responses) == 0 {
		return domain.Assessment{}, ErrNoResponses
	}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Assessment{}, ErrProfileNotFound
	}
	if err != nil {
		return domain.Assessment{}, fmt.Errorf("get profile: %w", err)
	}

	scheme = s.resolveScheme(scheme)
	bank, err := s.catalog.Bank(scheme)
	if err != nil {
		return domain.Assessment{}, err
	}
	norms, _ := s.catalog.Norms(scheme)

	result, err := scoring.Score(bank, norms, responses)
	if err != nil {
		return domain.Assessment{}, fmt.Errorf("score responses: %w", err)
	}

	assessment := domain.Assessment{
		ID:                   uuid.NewString(),
		ProfileID:            profile.ID,
		Scheme:               result.Scheme,
		Version:              result.Version,
		Mode:                 result.Mode,
		Dimensions:           result.Dimensions,
		Archetype:            result.Archetype,
		TotalAnswered:        result.TotalAnswered,
		CompletionPercentage: result.CompletionPercentage,
		SkippedResponses:     result.SkippedResponses,
		CreatedAt:            time.Now().UTC(),
	}
	if err := s.assessments.Create(ctx, assessment); err != nil {
		return domain.Assessment{}, fmt.Errorf("persist assessment: %w", err)
	}

	if s.signatures != nil {
		if err := s.signatures.Refresh(ctx, profile.ID, result); err != nil {
			s.logger.Warn("signature refresh failed", zap.Error(err), zap.String("profile_id", profile.ID))
		}
	}
	if s.cache != nil {
		if err := s.cache.Store(assessment, resultCacheTTL); err != nil {
			s.logger.Warn("result cache store failed", zap.Error(err), zap.String("profile_id", profile.ID))
		}
	}

	s.logger.Info("assessment scored",
		zap.String("profile_id", profile.ID),
		zap.String("scheme", result.Scheme),
		zap.Int("answered", result.TotalAnswered),
		zap.Int("skipped", result.SkippedResponses),
	)
	return assessment, nil
}

// Latest devuelve el último assessment del usuario, cache mediante.
func (s *AssessmentService) Latest(ctx context.Context, userID string) (domain.Assessment, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.Assessment{}, ErrInvalidUserID
	}
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Assessment{}, ErrProfileNotFound
	}
	if err != nil {
		return domain.Assessment{}, fmt.Errorf("get profile: %w", err)
	}

	if s.cache != nil {
		if cached, ok, err := s.cache.Get(profile.ID); err == nil && ok {
			return cached, nil
		}
	}

	assessment, err := s.assessments.LatestByProfile(ctx, profile.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Assessment{}, ErrNoAssessment
	}
	if err != nil {
		return domain.Assessment{}, fmt.Errorf("latest assessment: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Store(assessment, resultCacheTTL); err != nil {
			s.logger.Warn("result cache store failed", zap.Error(err), zap.String("profile_id", profile.ID))
		}
	}
	return assessment, nil
}

// History lista las corridas del usuario, más reciente primero.
func (s *AssessmentService) History(ctx context.Context, userID string, limit int) ([]domain.Assessment, error) {
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
	assessments, err := s.assessments.ListByProfile(ctx, profile.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	return assessments, nil
}
