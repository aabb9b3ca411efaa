package decision

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xhaul-labs/fronthaul-analyzer-backend/config"
	"github.com/xhaul-labs/fronthaul-analyzer-backend/types"
)

func TestCurrentLinkRate(t *testing.T) {
	cfg := config.Default()

	tests := []struct {
		peak float64
		want string
	}{
		{peak: 5, want: "10G"},
		{peak: 9.0, want: "10G"},  // 9.9 with headroom
		{peak: 9.5, want: "25G"},  // 10.45 with headroom
		{peak: 30, want: "40G"},   // 33
		{peak: 50, want: "100G"},  // 55
		{peak: 200, want: "100G"}, // beyond the largest class
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CurrentLinkRate(tt.peak, cfg))
	}
}

func TestRecommend(t *testing.T) {
	cfg := config.Default()

	opt := types.OptimizationResult{
		LinkID:               1,
		PeakCapacityGbps:     0.6,
		OptimalCapacityGbps:  0.12,
		CapacityReductionPct: 80,
		BufferUs:             143,
		ShapingMode:          types.ShapingModerate,
	}

	resWithRisk := func(risk types.Severity) types.ResilienceAssessment {
		return types.ResilienceAssessment{LinkID: 1, OverallRisk: risk}
	}

	t.Run("critical risk forces an upgrade", func(t *testing.T) {
		rec := Recommend(opt, resWithRisk(types.SeverityCritical), cfg)
		assert.Equal(t, types.ActionUpgradeRequired, rec.Action)
		assert.Equal(t, types.SeverityCritical, rec.RiskLevel)
		assert.NotEmpty(t, rec.NextSteps)
	})

	t.Run("high risk means conditional shaping", func(t *testing.T) {
		rec := Recommend(opt, resWithRisk(types.SeverityHigh), cfg)
		assert.Equal(t, types.ActionConditionalShaping, rec.Action)
	})

	t.Run("large reduction at low risk enables shaping", func(t *testing.T) {
		rec := Recommend(opt, resWithRisk(types.SeverityLow), cfg)
		assert.Equal(t, types.ActionEnableShaping, rec.Action)
		assert.Contains(t, rec.Summary, "DO NOT upgrade")
	})

	t.Run("small reduction recommends an upgrade instead", func(t *testing.T) {
		smallGain := opt
		smallGain.OptimalCapacityGbps = 0.55
		smallGain.CapacityReductionPct = 8.3

		rec := Recommend(smallGain, resWithRisk(types.SeverityLow), cfg)
		assert.Equal(t, types.ActionUpgradeRecommended, rec.Action)
	})

	t.Run("recommendation carries the optimization figures", func(t *testing.T) {
		rec := Recommend(opt, resWithRisk(types.SeverityLow), cfg)
		assert.Equal(t, 1, rec.LinkID)
		assert.InDelta(t, 0.6, rec.CurrentPeakGbps, 1e-12)
		assert.InDelta(t, 0.12, rec.OptimalCapacityGbps, 1e-12)
		assert.InDelta(t, 143.0, rec.BufferRequiredUs, 1e-12)
		assert.Equal(t, "10G", rec.CurrentLinkRate)
		assert.Equal(t, types.ShapingModerate, rec.ShapingMode)
	})
}
