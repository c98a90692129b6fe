package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	pgvector "github.com/pgvector/pgvector-go"

	"soulsig/internal/domain"
)

type mockProfileRepo struct {
	profiles map[string]domain.Profile
	created  []domain.Profile
	err      error
}

func newMockProfileRepo(profiles ...domain.Profile) *mockProfileRepo {
	m := &mockProfileRepo{profiles: make(map[string]domain.Profile)}
	for _, p := range profiles {
		m.profiles[p.UserID] = p
	}
	return m
}

func (m *mockProfileRepo) Create(ctx context.Context, profile domain.Profile) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, profile)
	m.profiles[profile.UserID] = profile
	return nil
}

func (m *mockProfileRepo) GetByUserID(ctx context.Context, userID string) (domain.Profile, error) {
	if m.err != nil {
		return domain.Profile{}, m.err
	}
	p, ok := m.profiles[userID]
	if !ok {
		return domain.Profile{}, pgx.ErrNoRows
	}
	return p, nil
}

type mockAssessmentRepo struct {
	created   []domain.Assessment
	latest    domain.Assessment
	hasLatest bool
	list      []domain.Assessment
	err       error
}

func (m *mockAssessmentRepo) Create(ctx context.Context, assessment domain.Assessment) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, assessment)
	m.latest = assessment
	m.hasLatest = true
	return nil
}

func (m *mockAssessmentRepo) LatestByProfile(ctx context.Context, profileID string) (domain.Assessment, error) {
	if m.err != nil {
		return domain.Assessment{}, m.err
	}
	if !m.hasLatest {
		return domain.Assessment{}, pgx.ErrNoRows
	}
	return m.latest, nil
}

func (m *mockAssessmentRepo) ListByProfile(ctx context.Context, profileID string, limit int) ([]domain.Assessment, error) {
	return m.list, m.err
}

type mockEvidenceRepo struct {
	inserted []domain.EvidenceItem
	tagged   []domain.EvidenceItem
	err      error
}

func (m *mockEvidenceRepo) Insert(ctx context.Context, items []domain.EvidenceItem) error {
	if m.err != nil {
		return m.err
	}
	m.inserted = append(m.inserted, items...)
	return nil
}

func (m *mockEvidenceRepo) ListByProfile(ctx context.Context, profileID string, limit int) ([]domain.EvidenceItem, error) {
	return m.inserted, m.err
}

func (m *mockEvidenceRepo) ListTagged(ctx context.Context, profileID string) ([]domain.EvidenceItem, error) {
	return m.tagged, m.err
}

type mockSignatureRepo struct {
	upserts       int
	lastProfileID string
	lastScheme    string
	lastVector    pgvector.Vector
	similar       []domain.SimilarProfile
	err           error
}

func (m *mockSignatureRepo) Upsert(ctx context.Context, profileID, scheme string, embedding pgvector.Vector, updatedAt time.Time) error {
	if m.err != nil {
		return m.err
	}
	m.upserts++
	m.lastProfileID = profileID
	m.lastScheme = scheme
	m.lastVector = embedding
	return nil
}

func (m *mockSignatureRepo) FindSimilar(ctx context.Context, profileID string, k int) ([]domain.SimilarProfile, error) {
	return m.similar, m.err
}

type mockInsightRepo struct {
	created []domain.Insight
	list    []domain.Insight
	err     error
}

func (m *mockInsightRepo) Create(ctx context.Context, insight domain.Insight) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, insight)
	return nil
}

func (m *mockInsightRepo) ListByProfile(ctx context.Context, profileID string, limit int) ([]domain.Insight, error) {
	return m.list, m.err
}

type mockConnectionRepo struct {
	upserted  []domain.PlatformConnection
	conns     []domain.PlatformConnection
	deleted   []string
	touched   int
	deleteErr error
	err       error
}

func (m *mockConnectionRepo) Upsert(ctx context.Context, conn domain.PlatformConnection) error {
	if m.err != nil {
		return m.err
	}
	m.upserted = append(m.upserted, conn)
	m.conns = append(m.conns, conn)
	return nil
}

func (m *mockConnectionRepo) ListByUser(ctx context.Context, userID string) ([]domain.PlatformConnection, error) {
	return m.conns, m.err
}

func (m *mockConnectionRepo) Delete(ctx context.Context, userID, platform string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, platform)
	return nil
}

func (m *mockConnectionRepo) TouchLastSync(ctx context.Context, userID, platform string, at time.Time) error {
	m.touched++
	return nil
}

type mockRefresher struct {
	calls         int
	lastProfileID string
	lastResult    domain.ScoringResult
	err           error
}

func (m *mockRefresher) Refresh(ctx context.Context, profileID string, result domain.ScoringResult) error {
	m.calls++
	m.lastProfileID = profileID
	m.lastResult = result
	return m.err
}

type mockLimiter struct {
	allow bool
	keys  []string
}

func (m *mockLimiter) Allow(key string) bool {
	m.keys = append(m.keys, key)
	return m.allow
}
