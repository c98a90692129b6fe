package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"soulsig/internal/domain"
)

func insightRouterMocks() *routerMocks {
	m := defaultRouterMocks()
	m.profiles = newMockProfileRepo(domain.Profile{ID: "p1", UserID: "user-1"})
	m.assessments.latest = domain.Assessment{
		ProfileID: "p1",
		Scheme:    domain.SchemeBigFive,
		Dimensions: map[string]domain.DimensionResult{
			"openness": {Dimension: "openness", Score: 60, Percentile: 80, Label: "high"},
		},
	}
	m.assessments.hasLatest = true
	return m
}

func TestInsightHandlerGenerate(t *testing.T) {
	m := insightRouterMocks()
	m.llmClient.Response = `{"summary": "Perfil curioso.", "highlights": ["apertura alta"]}`
	r := newTestRouter(t, m)

	rec := performRequest(r, http.MethodPost, "/profiles/user-1/insights", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var insight domain.Insight
	if err := json.Unmarshal(decodeBody(t, rec)["insight"], &insight); err != nil {
		t.Fatalf("decode insight: %v", err)
	}
	if insight.Summary != "Perfil curioso." || insight.Model != "test-model" {
		t.Fatalf("unexpected insight: %+v", insight)
	}
	if len(m.insights.created) != 1 {
		t.Fatalf("expected 1 persisted insight, got %d", len(m.insights.created))
	}
}

func TestInsightHandlerGenerateRateLimited(t *testing.T) {
	m := insightRouterMocks()
	m.limiter = &mockLimiter{allow: false}
	r := newTestRouter(t, m)

	rec := performRequest(r, http.MethodPost, "/profiles/user-1/insights", nil)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", rec.Code)
	}
}

func TestInsightHandlerGenerateNoAssessment(t *testing.T) {
	m := defaultRouterMocks()
	m.profiles = newMockProfileRepo(domain.Profile{ID: "p1", UserID: "user-1"})
	r := newTestRouter(t, m)

	rec := performRequest(r, http.MethodPost, "/profiles/user-1/insights", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestInsightHandlerList(t *testing.T) {
	m := insightRouterMocks()
	m.insights.list = []domain.Insight{{ID: "i1"}, {ID: "i2"}}
	r := newTestRouter(t, m)

	rec := performRequest(r, http.MethodGet, "/profiles/user-1/insights?limit=5", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var insights []domain.Insight
	if err := json.Unmarshal(decodeBody(t, rec)["insights"], &insights); err != nil {
		t.Fatalf("decode insights: %v", err)
	}
	if len(insights) != 2 {
		t.Fatalf("expected 2 insights, got %d", len(insights))
	}
}
