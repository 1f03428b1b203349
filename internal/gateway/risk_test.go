package gateway

import "testing"

func TestScoreAmount(t *testing.T) {
	tests := []struct {
		amount float64
		want   bool
	}{
		{1, false},
		{500, false},
		{899.99, false},
		{900, false}, // strict threshold, 900 itself is clean
		{900.01, true},
		{950, true},
		{1000, true},
		{50000, true},
	}

	for _, tt := range tests {
		if got := bool(ScoreAmount(tt.amount)); got != tt.want {
			t.Errorf("ScoreAmount(%v) = %v, want %v", tt.amount, got, tt.want)
		}
	}
}

func TestUniformLatencyRange(t *testing.T) {
	for i := 0; i < 10000; i++ {
		got := UniformLatency()
		if got < MinLatencyMS || got >= MaxLatencyMS {
			t.Fatalf("UniformLatency() = %d, want value in [%d, %d)", got, MinLatencyMS, MaxLatencyMS)
		}
	}
}
