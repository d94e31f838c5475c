package service

import (
	"testing"
)

// TestSynthesizeCompatibilityBounds checks the synthetic score stays inside
// its documented ranges: overall in [0.50, 1.00] and every breakdown
// dimension in [50, 100].
func TestSynthesizeCompatibilityBounds(t *testing.T) {
	dimensions := []string{"genre_match", "audience_overlap", "budget_fit"}

	for i := 0; i < 200; i++ {
		score, breakdown := synthesizeCompatibility()

		if score < 0.50 || score > 1.00 {
			t.Fatalf("score %v out of [0.50, 1.00]", score)
		}
		for _, dim := range dimensions {
			raw, ok := breakdown[dim]
			if !ok {
				t.Fatalf("breakdown missing %q", dim)
			}
			n, ok := raw.(int)
			if !ok {
				t.Fatalf("breakdown[%q] is %T, want int", dim, raw)
			}
			if n < 50 || n > 100 {
				t.Fatalf("breakdown[%q] = %d out of [50, 100]", dim, n)
			}
		}
	}
}
