package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"soulsig/internal/domain"
	"soulsig/internal/questionbank"
)

func testCatalog(t *testing.T) *questionbank.Catalog {
	t.Helper()
	catalog, err := questionbank.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return catalog
}

func TestAssessmentServiceSubmitAxis(t *testing.T) {
	profiles := newMockProfileRepo(domain.Profile{ID: "p1", UserID: "user-1"})
	assessments := &mockAssessmentRepo{}
	refresher := &mockRefresher{}
	cache := NewMemoryResultCache()
	svc := NewAssessmentService(testCatalog(t), assessments, profiles, refresher, cache, "", zap.NewNop())

	got, err := svc.Submit(context.Background(), "user-1", domain.SchemeAxis, []domain.QuestionResponse{
		{QuestionID: "ax1", Value: 7},
		{QuestionID: "ax2", Value: 7},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.ID == "" || got.ProfileID != "p1" {
		t.Fatalf("unexpected assessment identity: id=%q profile=%q", got.ID, got.ProfileID)
	}
	if got.Scheme != domain.SchemeAxis || got.Mode != domain.ModeLinearRescale {
		t.Fatalf("unexpected scheme/mode: %s/%s", got.Scheme, got.Mode)
	}

	mind := got.Dimensions["mind"]
	if mind.Score != 100 {
		t.Fatalf("expected mind score 100, got %v", mind.Score)
	}
	if mind.Percentile != 99 {
		t.Fatalf("expected mind percentile 99, got %d", mind.Percentile)
	}
	if got.Archetype == nil || got.Archetype.FullCode != "ENFJ-A" {
		t.Fatalf("expected archetype ENFJ-A, got %+v", got.Archetype)
	}
	if got.TotalAnswered != 2 {
		t.Fatalf("expected 2 answered, got %d", got.TotalAnswered)
	}

	if len(assessments.created) != 1 {
		t.Fatalf("expected assessment persisted, got %d", len(assessments.created))
	}
	if refresher.calls != 1 || refresher.lastProfileID != "p1" {
		t.Fatalf("expected signature refresh for p1, got calls=%d profile=%q", refresher.calls, refresher.lastProfileID)
	}
	cached, ok, err := cache.Get("p1")
	if err != nil || !ok {
		t.Fatalf("expected cached assessment, ok=%v err=%v", ok, err)
	}
	if cached.ID != got.ID {
		t.Fatalf("expected cache to hold the new assessment, got %q", cached.ID)
	}
}

func TestAssessmentServiceSubmitBigFive(t *testing.T) {
	profiles := newMockProfileRepo(domain.Profile{ID: "p1", UserID: "user-1"})
	assessments := &mockAssessmentRepo{}
	svc := NewAssessmentService(testCatalog(t), assessments, profiles, nil, nil, "", zap.NewNop())

	got, err := svc.Submit(context.Background(), "user-1", domain.SchemeBigFive, []domain.QuestionResponse{
		{QuestionID: "bf1", Value: 4},
		{QuestionID: "bf2", Value: 4},
		{QuestionID: "bf3", Value: 4},
		{QuestionID: "bf4", Value: 2},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	openness := got.Dimensions["openness"]
	if openness.Score != 39.5 {
		t.Fatalf("expected openness score 39.5, got %v", openness.Score)
	}
	if openness.Percentile != 15 {
		t.Fatalf("expected openness percentile 15, got %d", openness.Percentile)
	}
	if openness.Label != "very low" {
		t.Fatalf("expected label very low, got %q", openness.Label)
	}
	if openness.Answered != 4 {
		t.Fatalf("expected 4 answered openness items, got %d", openness.Answered)
	}

	var imagination *domain.FacetScore
	for i := range openness.Facets {
		if openness.Facets[i].Facet == "imagination" {
			imagination = &openness.Facets[i]
		}
	}
	if imagination == nil {
		t.Fatal("expected imagination facet in openness result")
	}
	if imagination.Raw != 16 || imagination.Score != 53.9 || imagination.Percentile != 65 {
		t.Fatalf("unexpected imagination facet: %+v", *imagination)
	}

	if got.Archetype == nil || got.Archetype.Code != "ISTP" || got.Archetype.Variant != "Turbulent" {
		t.Fatalf("expected ISTP Turbulent, got %+v", got.Archetype)
	}
	if got.TotalAnswered != 4 {
		t.Fatalf("expected 4 answered, got %d", got.TotalAnswered)
	}
	if got.CompletionPercentage != 3.3 {
		t.Fatalf("expected completion 3.3, got %v", got.CompletionPercentage)
	}
}

func TestAssessmentServiceSubmitGuards(t *testing.T) {
	profiles := newMockProfileRepo(domain.Profile{ID: "p1", UserID: "user-1"})
	svc := NewAssessmentService(testCatalog(t), &mockAssessmentRepo{}, profiles, nil, nil, "", zap.NewNop())
	responses := []domain.QuestionResponse{{QuestionID: "ax1", Value: 4}}

	if _, err := svc.Submit(context.Background(), "user-1", "hexaco", responses); !errors.Is(err, questionbank.ErrUnknownScheme) {
		t.Fatalf("expected ErrUnknownScheme, got %v", err)
	}
	if _, err := svc.Submit(context.Background(), "ghost", domain.SchemeAxis, responses); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
	if _, err := svc.Submit(context.Background(), "user-1", domain.SchemeAxis, nil); !errors.Is(err, ErrNoResponses) {
		t.Fatalf("expected ErrNoResponses, got %v", err)
	}
}

func TestAssessmentServiceSubmitDefaultScheme(t *testing.T) {
	profiles := newMockProfileRepo(domain.Profile{ID: "p1", UserID: "user-1"})
	assessments := &mockAssessmentRepo{}
	svc := NewAssessmentService(testCatalog(t), assessments, profiles, nil, nil, domain.SchemeAxis, zap.NewNop())

	got, err := svc.Submit(context.Background(), "user-1", "", []domain.QuestionResponse{
		{QuestionID: "ax1", Value: 7},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Scheme != domain.SchemeAxis {
		t.Fatalf("expected default scheme axis, got %q", got.Scheme)
	}

	bank, err := svc.Questionnaire("")
	if err != nil {
		t.Fatalf("expected default questionnaire, got %v", err)
	}
	if bank.Scheme != domain.SchemeAxis {
		t.Fatalf("expected axis bank, got %q", bank.Scheme)
	}
}

func TestAssessmentServiceSubmitSurvivesRefreshFailure(t *testing.T) {
	profiles := newMockProfileRepo(domain.Profile{ID: "p1", UserID: "user-1"})
	assessments := &mockAssessmentRepo{}
	refresher := &mockRefresher{err: errors.New("vector store down")}
	svc := NewAssessmentService(testCatalog(t), assessments, profiles, refresher, nil, "", zap.NewNop())

	if _, err := svc.Submit(context.Background(), "user-1", domain.SchemeAxis, []domain.QuestionResponse{
		{QuestionID: "ax1", Value: 5},
	}); err != nil {
		t.Fatalf("refresh failure should not fail the submit, got %v", err)
	}
	if len(assessments.created) != 1 {
		t.Fatalf("expected assessment persisted, got %d", len(assessments.created))
	}
}

func TestAssessmentServiceLatestPrefersCache(t *testing.T) {
	profiles := newMockProfileRepo(domain.Profile{ID: "p1", UserID: "user-1"})
	assessments := &mockAssessmentRepo{err: errors.New("db down")}
	cache := NewMemoryResultCache()
	if err := cache.Store(domain.Assessment{ID: "a1", ProfileID: "p1"}, resultCacheTTL); err != nil {
		t.Fatalf("seed cache: %v", err)
	}
	svc := NewAssessmentService(testCatalog(t), assessments, profiles, nil, cache, "", zap.NewNop())

	got, err := svc.Latest(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("expected cached assessment, got error %v", err)
	}
	if got.ID != "a1" {
		t.Fatalf("expected assessment a1 from cache, got %q", got.ID)
	}
}

func TestAssessmentServiceLatestFallsBackToRepo(t *testing.T) {
	profiles := newMockProfileRepo(domain.Profile{ID: "p1", UserID: "user-1"})
	assessments := &mockAssessmentRepo{latest: domain.Assessment{ID: "a2", ProfileID: "p1"}, hasLatest: true}
	cache := NewMemoryResultCache()
	svc := NewAssessmentService(testCatalog(t), assessments, profiles, nil, cache, "", zap.NewNop())

	got, err := svc.Latest(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.ID != "a2" {
		t.Fatalf("expected assessment a2, got %q", got.ID)
	}
	if _, ok, _ := cache.Get("p1"); !ok {
		t.Fatal("expected repo result to be cached")
	}
}

func TestAssessmentServiceLatestNone(t *testing.T) {
	profiles := newMockProfileRepo(domain.Profile{ID: "p1", UserID: "user-1"})
	svc := NewAssessmentService(testCatalog(t), &mockAssessmentRepo{}, profiles, nil, nil, "", zap.NewNop())

	if _, err := svc.Latest(context.Background(), "user-1"); !errors.Is(err, ErrNoAssessment) {
		t.Fatalf("expected ErrNoAssessment, got %v", err)
	}
}

func TestAssessmentServiceHistory(t *testing.T) {
	profiles := newMockProfileRepo(domain.Profile{ID: "p1", UserID: "user-1"})
	assessments := &mockAssessmentRepo{list: []domain.Assessment{{ID: "a2"}, {ID: "a1"}}}
	svc := NewAssessmentService(testCatalog(t), assessments, profiles, nil, nil, "", zap.NewNop())

	history, err := svc.History(context.Background(), "user-1", 10)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(history) != 2 || history[0].ID != "a2" {
		t.Fatalf("unexpected history: %+v", history)
	}
}
