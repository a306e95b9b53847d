package risk_test

import (
	"testing"

	"github.com/Jaydot33/proppulse-mvp/internal/risk"
)

func TestAdjust(t *testing.T) {
	tests := []struct {
		name      string
		baseline  float64
		riskScore float64
		want      float64
	}{
		{
			name:      "Zero risk returns baseline unchanged",
			baseline:  50.0,
			riskScore: 0,
			want:      50.0,
		},
		{
			name:      "Moderate risk subtracts",
			baseline:  50.0,
			riskScore: 12.5,
			want:      37.5,
		},
		{
			name:      "Risk equal to baseline clamps to zero",
			baseline:  50.0,
			riskScore: 50.0,
			want:      0,
		},
		{
			name:      "Risk above baseline clamps to zero",
			baseline:  50.0,
			riskScore: 87.3,
			want:      0,
		},
		{
			name:      "Result rounds to one decimal",
			baseline:  50.0,
			riskScore: 12.34,
			want:      37.7,
		},
		{
			name:      "Baseline above 100 is not capped",
			baseline:  120.0,
			riskScore: 10.0,
			want:      110.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := risk.Adjust(tt.baseline, tt.riskScore); got != tt.want {
				t.Errorf("Adjust(%v, %v) = %v, want %v", tt.baseline, tt.riskScore, got, tt.want)
			}
		})
	}
}

func TestAdjust_IdentityLawAcrossBaselines(t *testing.T) {
	for _, baseline := range []float64{0, 25.5, 50.0, 99.9, 100.0} {
		if got := risk.Adjust(baseline, 0); got != baseline {
			t.Errorf("Adjust(%v, 0) = %v, want identity", baseline, got)
		}
	}
}
