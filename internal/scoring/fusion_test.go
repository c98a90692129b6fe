package scoring

import (
	"testing"

	"soulsig/internal/domain"
)

func TestFuse_ZeroWeightIsIdentity(t *testing.T) {
	scores := map[string]int{"mind": 60, "energy": 40}
	evidence := []domain.EvidenceItem{
		{Dimension: "mind", Value: 90, Correlation: 0.5},
	}

	out := Fuse(scores, evidence, 0)

	out.Scores["probe"] = 1
	if scores["probe"] != 1 {
		t.Fatalf("expected fused scores to alias the input map on w=0")
	}
	if len(out.Adjustments) != 0 {
		t.Fatalf("expected no adjustments, got %+v", out.Adjustments)
	}
}

func TestFuse_NoEvidenceIsIdentity(t *testing.T) {
	scores := map[string]int{"mind": 60, "energy": 40}

	out := Fuse(scores, nil, 0.2)

	out.Scores["probe"] = 1
	if scores["probe"] != 1 {
		t.Fatalf("expected fused scores to alias the input map with no evidence")
	}
	if out.Weight != 0.2 {
		t.Fatalf("expected weight preserved, got %v", out.Weight)
	}
}

func TestFuse_CorrelationWeightedBlend(t *testing.T) {
	scores := map[string]int{"mind": 60, "energy": 40}
	evidence := []domain.EvidenceItem{
		{Dimension: "mind", Value: 90, Correlation: 0.5},
		{Dimension: "mind", Value: 70, Correlation: -0.25},
	}

	out := Fuse(scores, evidence, 0.2)

	// behavioral = (90*0.5 + 70*0.25) / 0.75 = 83.333...
	// combined  = 60*0.8 + 83.333*0.2 = 64.666... -> 65
	if out.Scores["mind"] != 65 {
		t.Fatalf("expected fused mind 65, got %d", out.Scores["mind"])
	}
	if out.Adjustments["mind"] != 23 {
		t.Fatalf("expected adjustment 23, got %d", out.Adjustments["mind"])
	}
	if out.Scores["energy"] != 40 {
		t.Fatalf("expected untouched energy 40, got %d", out.Scores["energy"])
	}
	if _, ok := out.Adjustments["energy"]; ok {
		t.Fatalf("expected no adjustment for dimension without evidence")
	}
	if out.EvidenceUsed != 2 {
		t.Fatalf("expected 2 evidence items used, got %d", out.EvidenceUsed)
	}
}

func TestFuse_IgnoresUnusableEvidence(t *testing.T) {
	scores := map[string]int{"mind": 60}
	evidence := []domain.EvidenceItem{
		{Dimension: "", Value: 90, Correlation: 0.9},
		{Dimension: "mind", Value: 90, Correlation: 0},
		{Dimension: "elsewhere", Value: 90, Correlation: 0.9},
	}

	out := Fuse(scores, evidence, 0.2)

	out.Scores["probe"] = 1
	if scores["probe"] != 1 {
		t.Fatalf("expected identity when no evidence matches a scored dimension")
	}
}

func TestFuse_ClampsOutputs(t *testing.T) {
	scores := map[string]int{"mind": 95}
	evidence := []domain.EvidenceItem{
		{Dimension: "mind", Value: 180, Correlation: 2.0},
	}

	out := Fuse(scores, evidence, 1)
	if out.Scores["mind"] != 100 {
		t.Fatalf("expected clamp to 100, got %d", out.Scores["mind"])
	}

	low := Fuse(map[string]int{"mind": 2}, []domain.EvidenceItem{
		{Dimension: "mind", Value: -40, Correlation: 0.8},
	}, 1)
	if low.Scores["mind"] != 0 {
		t.Fatalf("expected clamp to 0, got %d", low.Scores["mind"])
	}
}

func TestFuse_WeightClamped(t *testing.T) {
	scores := map[string]int{"mind": 60}
	evidence := []domain.EvidenceItem{{Dimension: "mind", Value: 80, Correlation: 1}}

	out := Fuse(scores, evidence, 7)
	if out.Weight != 1 {
		t.Fatalf("expected weight clamped to 1, got %v", out.Weight)
	}
	if out.Scores["mind"] != 80 {
		t.Fatalf("expected full behavioral takeover at w=1, got %d", out.Scores["mind"])
	}
}
