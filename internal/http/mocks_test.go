package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	pgvector "github.com/pgvector/pgvector-go"
	"go.uber.org/zap"

	"soulsig/internal/domain"
	"soulsig/internal/llm"
	"soulsig/internal/questionbank"
	"soulsig/internal/secrets"
	"soulsig/internal/service"
)

type mockProfileRepo struct {
	profiles map[string]domain.Profile
}

func newMockProfileRepo(profiles ...domain.Profile) *mockProfileRepo {
	m := &mockProfileRepo{profiles: make(map[string]domain.Profile)}
	for _, p := range profiles {
		m.profiles[p.UserID] = p
	}
	return m
}

func (m *mockProfileRepo) Create(_ context.Context, profile domain.Profile) error {
	m.profiles[profile.UserID] = profile
	return nil
}

func (m *mockProfileRepo) GetByUserID(_ context.Context, userID string) (domain.Profile, error) {
	p, ok := m.profiles[userID]
	if !ok {
		return domain.Profile{}, pgx.ErrNoRows
	}
	return p, nil
}

type mockAssessmentRepo struct {
	latest    domain.Assessment
	hasLatest bool
	list      []domain.Assessment
}

func (m *mockAssessmentRepo) Create(_ context.Context, assessment domain.Assessment) error {
	m.latest = assessment
	m.hasLatest = true
	m.list = append([]domain.Assessment{assessment}, m.list...)
	return nil
}

func (m *mockAssessmentRepo) LatestByProfile(_ context.Context, profileID string) (domain.Assessment, error) {
	if !m.hasLatest {
		return domain.Assessment{}, pgx.ErrNoRows
	}
	return m.latest, nil
}

func (m *mockAssessmentRepo) ListByProfile(_ context.Context, profileID string, limit int) ([]domain.Assessment, error) {
	return m.list, nil
}

type mockEvidenceRepo struct {
	inserted []domain.EvidenceItem
	tagged   []domain.EvidenceItem
}

func (m *mockEvidenceRepo) Insert(_ context.Context, items []domain.EvidenceItem) error {
	m.inserted = append(m.inserted, items...)
	return nil
}

func (m *mockEvidenceRepo) ListByProfile(_ context.Context, profileID string, limit int) ([]domain.EvidenceItem, error) {
	return m.inserted, nil
}

func (m *mockEvidenceRepo) ListTagged(_ context.Context, profileID string) ([]domain.EvidenceItem, error) {
	return m.tagged, nil
}

type mockSignatureRepo struct {
	upserts int
	similar []domain.SimilarProfile
}

func (m *mockSignatureRepo) Upsert(_ context.Context, profileID, scheme string, embedding pgvector.Vector, updatedAt time.Time) error {
	m.upserts++
	return nil
}

func (m *mockSignatureRepo) FindSimilar(_ context.Context, profileID string, k int) ([]domain.SimilarProfile, error) {
	return m.similar, nil
}

type mockInsightRepo struct {
	created []domain.Insight
	list    []domain.Insight
}

func (m *mockInsightRepo) Create(_ context.Context, insight domain.Insight) error {
	m.created = append(m.created, insight)
	return nil
}

func (m *mockInsightRepo) ListByProfile(_ context.Context, profileID string, limit int) ([]domain.Insight, error) {
	return m.list, nil
}

type mockConnectionRepo struct {
	conns   []domain.PlatformConnection
	deleted []string
}

func (m *mockConnectionRepo) Upsert(_ context.Context, conn domain.PlatformConnection) error {
	m.conns = append(m.conns, conn)
	return nil
}

func (m *mockConnectionRepo) ListByUser(_ context.Context, userID string) ([]domain.PlatformConnection, error) {
	return m.conns, nil
}

func (m *mockConnectionRepo) Delete(_ context.Context, userID, platform string) error {
	for _, conn := range m.conns {
		if conn.Platform == platform {
			m.deleted = append(m.deleted, platform)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *mockConnectionRepo) TouchLastSync(_ context.Context, userID, platform string, at time.Time) error {
	return nil
}

type mockLimiter struct {
	allow bool
}

func (m *mockLimiter) Allow(_ string) bool {
	return m.allow
}

// routerMocks agrupa los dobles que respaldan un router completo de prueba.
type routerMocks struct {
	profiles    *mockProfileRepo
	assessments *mockAssessmentRepo
	evidence    *mockEvidenceRepo
	signatures  *mockSignatureRepo
	insights    *mockInsightRepo
	connections *mockConnectionRepo
	llmClient   *llm.MockClient
	limiter     service.InsightRateLimiter
}

func defaultRouterMocks() *routerMocks {
	return &routerMocks{
		profiles:    newMockProfileRepo(),
		assessments: &mockAssessmentRepo{},
		evidence:    &mockEvidenceRepo{},
		signatures:  &mockSignatureRepo{},
		insights:    &mockInsightRepo{},
		connections: &mockConnectionRepo{},
		llmClient:   &llm.MockClient{Response: `{"summary": "ok", "highlights": []}`},
	}
}

func newTestRouter(t *testing.T, m *routerMocks) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog, err := questionbank.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	sealer, err := secrets.NewSealer(bytes.Repeat([]byte{0x24}, 32))
	if err != nil {
		t.Fatalf("new sealer: %v", err)
	}

	logger := zap.NewNop()
	signatureSvc := service.NewSignatureService(catalog, m.signatures, m.profiles, logger)
	assessmentSvc := service.NewAssessmentService(catalog, m.assessments, m.profiles, signatureSvc, service.NewMemoryResultCache(), "", logger)
	evidenceSvc := service.NewEvidenceService(m.evidence, m.profiles, m.assessments, m.connections, nil, 0, logger)
	insightSvc := service.NewInsightService(m.insights, m.profiles, m.assessments, m.llmClient, m.limiter, "test-model", logger)

	return NewRouter(
		logger,
		NewProfileHandler(logger, service.NewProfileService(m.profiles, logger), assessmentSvc),
		NewAssessmentHandler(logger, assessmentSvc),
		NewEvidenceHandler(logger, evidenceSvc),
		NewSignatureHandler(logger, signatureSvc),
		NewInsightHandler(logger, insightSvc),
		NewConnectionHandler(logger, service.NewConnectionService(m.connections, sealer, logger)),
	)
}

func performRequest(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	out := make(map[string]json.RawMessage)
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v\n%s", err, rec.Body.String())
	}
	return out
}
