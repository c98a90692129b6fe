package scoring

import (
	"testing"

	"soulsig/internal/domain"
)

func miniBank() domain.QuestionBank {
	return domain.QuestionBank{
		Scheme:   "mini",
		Version:  "test-1",
		Mode:     domain.ModeLinearRescale,
		ScaleMax: 5,
		Axes: []domain.AxisDef{
			{Code: "mind", Name: "Mind"},
			{Code: "energy", Name: "Energy"},
		},
		Questions: []domain.Question{
			{ID: "m1", Dimension: "mind"},
			{ID: "m2", Dimension: "mind", Reversed: true},
			{ID: "m3", Dimension: "mind", Facet: "sociability"},
			{ID: "e1", Dimension: "energy"},
		},
	}
}

func TestAggregateResponses_ReverseKeying(t *testing.T) {
	agg := AggregateResponses(miniBank(), []domain.QuestionResponse{
		{QuestionID: "m1", Value: 4},
		{QuestionID: "m2", Value: 1},
	})

	mind := agg.ByDimension["mind"]
	if mind == nil {
		t.Fatalf("expected mind aggregate")
	}
	if mind.Sum != 9 {
		t.Fatalf("expected reversed sum 4+5=9, got %v", mind.Sum)
	}
	if mind.Count != 2 {
		t.Fatalf("expected count 2, got %d", mind.Count)
	}
}

func TestAggregateResponses_SkipsMalformed(t *testing.T) {
	agg := AggregateResponses(miniBank(), []domain.QuestionResponse{
		{QuestionID: "zz", Value: 3},
		{QuestionID: "m1", Value: 0},
		{QuestionID: "m1", Value: 9},
		{QuestionID: "m1", Value: 4},
	})

	if agg.Skipped != 3 {
		t.Fatalf("expected 3 skipped responses, got %d", agg.Skipped)
	}
	if agg.Answered != 1 {
		t.Fatalf("expected 1 answered, got %d", agg.Answered)
	}
	if agg.ByDimension["mind"].Sum != 4 {
		t.Fatalf("expected valid response kept, got sum %v", agg.ByDimension["mind"].Sum)
	}
}

func TestAggregateResponses_LastResponseWins(t *testing.T) {
	agg := AggregateResponses(miniBank(), []domain.QuestionResponse{
		{QuestionID: "m1", Value: 2},
		{QuestionID: "m1", Value: 5},
	})

	mind := agg.ByDimension["mind"]
	if mind.Count != 1 {
		t.Fatalf("expected duplicate answer counted once, got %d", mind.Count)
	}
	if mind.Sum != 5 {
		t.Fatalf("expected last value to win, got sum %v", mind.Sum)
	}
	if agg.Answered != 1 {
		t.Fatalf("expected 1 answered, got %d", agg.Answered)
	}
}

func TestAggregateResponses_EmptyDimensionMidpoint(t *testing.T) {
	agg := AggregateResponses(miniBank(), []domain.QuestionResponse{
		{QuestionID: "m1", Value: 3},
	})

	energy := agg.ByDimension["energy"]
	if energy.Count != 0 {
		t.Fatalf("expected count 0 for unanswered dimension, got %d", energy.Count)
	}
	if energy.Sum != 3 {
		t.Fatalf("expected midpoint sum 3 for one item on scale 5, got %v", energy.Sum)
	}
}

func TestAggregateResponses_FacetSums(t *testing.T) {
	agg := AggregateResponses(miniBank(), []domain.QuestionResponse{
		{QuestionID: "m3", Value: 5},
	})

	mind := agg.ByDimension["mind"]
	fa := mind.Facets["sociability"]
	if fa == nil {
		t.Fatalf("expected facet aggregate for sociability")
	}
	if fa.Sum != 5 || fa.Count != 1 {
		t.Fatalf("expected facet sum 5 count 1, got sum=%v count=%d", fa.Sum, fa.Count)
	}
}

func TestAggregateResponses_TotalItemsPerDimension(t *testing.T) {
	agg := AggregateResponses(miniBank(), nil)
	if agg.ByDimension["mind"].TotalItems != 3 {
		t.Fatalf("expected 3 mind items, got %d", agg.ByDimension["mind"].TotalItems)
	}
	if agg.ByDimension["energy"].TotalItems != 1 {
		t.Fatalf("expected 1 energy item, got %d", agg.ByDimension["energy"].TotalItems)
	}
}
