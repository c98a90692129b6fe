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
	"soulsig/internal/extract"
	"soulsig/internal/repository"
	"soulsig/internal/scoring"
)

var (
	ErrUnknownPlatform = errors.New("platform is not supported")
	ErrNoSignals       = errors.New("ingest needs at least one signal")
)

// EvidenceService ingesta señales de plataformas conectadas y fusiona la
// evidencia acumulada con el último assessment del perfil.
type EvidenceService struct {
	evidence    repository.EvidenceRepository
	profiles    repository.ProfileRepository
	assessments repository.AssessmentRepository
	connections repository.ConnectionRepository
	registry    *extract.Registry
	weight      float64
	logger      *zap.Logger
}

func NewEvidenceService(
	evidence repository.EvidenceRepository,
	profiles repository.ProfileRepository,
	assessments repository.AssessmentRepository,
	connections repository.ConnectionRepository,
	registry *extract.Registry,
	weight float64,
	logger *zap.Logger,
) *EvidenceService {
	if registry == nil {
		registry = extract.DefaultRegistry()
	}
	if weight <= 0 || weight > 1 {
		weight = scoring.DefaultBehavioralWeight
	}
	return &EvidenceService{
		evidence:    evidence,
		profiles:    profiles,
		assessments: assessments,
		connections: connections,
		registry:    registry,
		weight:      weight,
		logger:      logger,
	}
}

// Ingest convierte señales normalizadas (feature → 0..100) en evidencia
// etiquetada y la persiste. Las features fuera de catálogo se descartan.
func (s *EvidenceService) Ingest(ctx context.Context, userID, platform string, signals map[string]float64, observedAt time.Time) ([]domain.EvidenceItem, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	platform = strings.ToLower(strings.TrimSpace(platform))
	extractor, ok := s.registry.For(platform)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlatform, platform)
	}
	if len(signals) == 0 {
		return nil, ErrNoSignals
	}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	if observedAt.IsZero() {
		observedAt = time.Now().UTC()
	}
	items := extractor.Extract(profile.ID, signals, observedAt)
	now := time.Now().UTC()
	for i := range items {
		items[i].ID = uuid.NewString()
		items[i].CreatedAt = now
	}
	if len(items) > 0 {
		if err := s.evidence.Insert(ctx, items); err != nil {
			return nil, fmt.Errorf("persist evidence: %w", err)
		}
	}

	if s.connections != nil {
		if err := s.connections.TouchLastSync(ctx, userID, platform, now); err != nil {
			s.logger.Warn("touch last sync failed", zap.Error(err), zap.String("platform", platform))
		}
	}

	s.logger.Info("evidence ingested",
		zap.String("profile_id", profile.ID),
		zap.String("platform", platform),
		zap.Int("accepted", len(items)),
		zap.Int("discarded", len(signals)-len(items)),
	)
	return items, nil
}

// List devuelve la evidencia reciente del perfil.
func (s *EvidenceService) List(ctx context.Context, userID string, limit int) ([]domain.EvidenceItem, error) {
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
	items, err := s.evidence.ListByProfile(ctx, profile.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("list evidence: %w", err)
	}
	return items, nil
}

// Fuse combina el último assessment con la evidencia acumulada del perfil.
// weight == nil usa el peso configurado del servicio.
func (s *EvidenceService) Fuse(ctx context.Context, userID string, weight *float64) (domain.FusionResult, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.FusionResult{}, ErrInvalidUserID
	}
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.FusionResult{}, ErrProfileNotFound
	}
	if err != nil {
		return domain.FusionResult{}, fmt.Errorf("get profile: %w", err)
	}

	latest, err := s.assessments.LatestByProfile(ctx, profile.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.FusionResult{}, ErrNoAssessment
	}
	if err != nil {
		return domain.FusionResult{}, fmt.Errorf("latest assessment: %w", err)
	}

	items, err := s.evidence.ListTagged(ctx, profile.ID)
	if err != nil {
		return domain.FusionResult{}, fmt.Errorf("list evidence: %w", err)
	}

	w := s.weight
	if weight != nil {
		w = *weight
	}

	result := latest.Result()
	fused := scoring.Fuse(result.PercentileMap(), translateEvidence(result.Scheme, items), w)
	return fused, nil
}

// translateEvidence reexpresa evidencia etiquetada con rasgos Big Five en los
// ejes del esquema axis. identity corre invertido respecto de neuroticism.
func translateEvidence(scheme string, items []domain.EvidenceItem) []domain.EvidenceItem {
	if scheme != domain.SchemeAxis {
		return items
	}
	out := make([]domain.EvidenceItem, 0, len(items))
	for _, item := range items {
		code, inverted, ok := scoring.TraitAxis(item.Dimension)
		if ok {
			item.Dimension = code
			if inverted {
				item.Value = 100 - item.Value
			}
		}
		out = append(out, item)
	}
	return out
}
