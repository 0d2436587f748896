package gamification

import "testing"

func TestComputeMultiplier(t *testing.T) {
	tests := []struct {
		name      string
		streak    int
		combo     int
		earlyBird bool
		want      float64
	}{
		{"baseline", 0, 0, false, 1.0},
		{"week streak", 7, 0, false, 1.5},
		{"fortnight streak", 14, 0, false, 1.75},
		{"legend streak", 30, 0, false, 2.0},
		{"just below week tier", 6, 0, false, 1.0},
		{"warm combo", 0, 3, false, 1.25},
		{"hot combo", 0, 5, false, 1.5},
		{"combo below tier", 0, 2, false, 1.0},
		{"early bird alone", 0, 0, true, 1.5},
		{"tiers multiply", 30, 5, true, 4.5}, // 2.0 × 1.5 × 1.5
		{"week and warm combo", 7, 3, false, 1.875},
		{"highest tier wins not cumulative", 31, 6, false, 3.0}, // 2.0 × 1.5
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeMultiplier(tt.streak, tt.combo, tt.earlyBird)
			if got != tt.want {
				t.Errorf("ComputeMultiplier(%d, %d, %v) = %v, want %v",
					tt.streak, tt.combo, tt.earlyBird, got, tt.want)
			}
		})
	}
}

func TestComputeMultiplier_Deterministic(t *testing.T) {
	first := ComputeMultiplier(14, 5, true)
	for i := 0; i < 100; i++ {
		if got := ComputeMultiplier(14, 5, true); got != first {
			t.Fatalf("call %d returned %v, first call returned %v", i, got, first)
		}
	}
}
