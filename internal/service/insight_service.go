package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"soulsig/internal/domain"
	"soulsig/internal/llm"
	"soulsig/internal/repository"
)

var ErrInsightRateLimited = errors.New("insight generation rate limited")

// InsightRateLimiter limita cuántos insights puede pedir un perfil por ventana.
type InsightRateLimiter interface {
	Allow(key string) bool
}

// InsightService pide al LLM un resumen en lenguaje natural del perfil y lo
// persiste. El texto generado se trata como opaco: nunca alimenta scoring.
type InsightService struct {
	insights    repository.InsightRepository
	profiles    repository.ProfileRepository
	assessments repository.AssessmentRepository
	llmClient   llm.Client
	limiter     InsightRateLimiter
	model       string
	logger      *zap.Logger
}

func NewInsightService(
	insights repository.InsightRepository,
	profiles repository.ProfileRepository,
	assessments repository.AssessmentRepository,
	llmClient llm.Client,
	limiter InsightRateLimiter,
	model string,
	logger *zap.Logger,
) *InsightService {
	return &InsightService{
		insights:    insights,
		profiles:    profiles,
		assessments: assessments,
		llmClient:   llmClient,
		limiter:     limiter,
		model:       model,
		logger:      logger,
	}
}

// Generate crea y persiste un insight nuevo a partir del último assessment.
func (s *InsightService) Generate(ctx context.Context, userID string) (domain.Insight, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.Insight{}, ErrInvalidUserID
	}
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Insight{}, ErrProfileNotFound
	}
	if err != nil {
		return domain.Insight{}, fmt.Errorf("get profile: %w", err)
	}

	if s.limiter != nil && !s.limiter.Allow(profile.ID) {
		return domain.Insight{}, ErrInsightRateLimited
	}

	latest, err := s.assessments.LatestByProfile(ctx, profile.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Insight{}, ErrNoAssessment
	}
	if err != nil {
		return domain.Insight{}, fmt.Errorf("latest assessment: %w", err)
	}

	raw, err := s.llmClient.Generate(ctx, buildInsightPrompt(profile, latest))
	if err != nil {
		return domain.Insight{}, fmt.Errorf("llm generate: %w", err)
	}
	payload := parseInsightPayload(raw)
	if payload.Summary == "" {
		return domain.Insight{}, fmt.Errorf("llm empty insight")
	}

	insight := domain.Insight{
		ID:         uuid.NewString(),
		ProfileID:  profile.ID,
		Summary:    payload.Summary,
		Highlights: payload.Highlights,
		Model:      s.model,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.insights.Create(ctx, insight); err != nil {
		return domain.Insight{}, fmt.Errorf("persist insight: %w", err)
	}

	s.logger.Info("insight generated", zap.String("profile_id", profile.ID), zap.String("model", s.model))
	return insight, nil
}

// List devuelve los insights del usuario, más reciente primero.
func (s *InsightService) List(ctx context.Context, userID string, limit int) ([]domain.Insight, error) {
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
	insights, err := s.insights.ListByProfile(ctx, profile.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("list insights: %w", err)
	}
	return insights, nil
}

func buildInsightPrompt(profile domain.Profile, assessment domain.Assessment) string {
	var b strings.Builder
	b.WriteString("Eres un psicologo que redacta devoluciones breves, calidas y concretas.\n")
	b.WriteString("Perfil de personalidad a resumir")
	if profile.DisplayName != "" {
		fmt.Fprintf(&b, " (%s)", profile.DisplayName)
	}
	b.WriteString(":\n")

	dims := make([]string, 0, len(assessment.Dimensions))
	for dim := range assessment.Dimensions {
		dims = append(dims, dim)
	}
	sort.Strings(dims)
	for _, dim := range dims {
		r := assessment.Dimensions[dim]
		fmt.Fprintf(&b, "- %s: puntaje %.1f, percentil %d (%s)\n", dim, r.Score, r.Percentile, r.Label)
	}
	if assessment.Archetype != nil {
		fmt.Fprintf(&b, "Arquetipo: %s %s (%s)\n", assessment.Archetype.FullCode, assessment.Archetype.Name, assessment.Archetype.Group)
	}

	b.WriteString("\nDevuelve SOLO un JSON con este formato:\n")
	b.WriteString(`{"summary": "parrafo breve en segunda persona", "highlights": ["rasgo destacado", "otro rasgo"]}`)
	return b.String()
}
