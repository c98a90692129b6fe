package scoring

import (
	"math"
	"testing"
)

func TestPopulationStdDev(t *testing.T) {
	cases := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"uniform", []float64{3, 3, 3}, 0},
		{"alternating extremes", []float64{1, 5, 1, 5}, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := PopulationStdDev(tc.values)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestCronbachAlpha(t *testing.T) {
	t.Run("perfectly consistent items", func(t *testing.T) {
		matrix := [][]float64{{1, 1}, {2, 2}, {3, 3}}
		if got := CronbachAlpha(matrix); math.Abs(got-1) > 1e-9 {
			t.Fatalf("expected alpha 1, got %v", got)
		}
	})

	t.Run("moderate consistency", func(t *testing.T) {
		matrix := [][]float64{{1, 2}, {2, 1}, {3, 3}, {4, 4}}
		want := 2 * (1 - 2.5/4.5)
		if got := CronbachAlpha(matrix); math.Abs(got-want) > 1e-9 {
			t.Fatalf("expected alpha %v, got %v", want, got)
		}
	})

	t.Run("degenerate matrices", func(t *testing.T) {
		degenerate := [][][]float64{
			nil,
			{{1, 2}},
			{{1}, {2}},
			{{1, 2}, {3}},
			{{1, 3}, {3, 1}},
		}
		for i, m := range degenerate {
			if got := CronbachAlpha(m); got != 0 {
				t.Fatalf("case %d: expected 0 for degenerate matrix, got %v", i, got)
			}
		}
	})
}
