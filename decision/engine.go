package decision

import (
	"fmt"

	"github.com/xhaul-labs/fronthaul-analyzer-backend/config"
	"github.com/xhaul-labs/fronthaul-analyzer-backend/types"
)

// CurrentLinkRate infers the optic class a link is sized for from its peak
// traffic plus headroom. Peaks beyond the largest class map to it anyway.
func CurrentLinkRate(peakGbps float64, cfg *config.Config) string {
	required := peakGbps * cfg.OpticHeadroom
	classes := config.OpticClasses()
	for _, c := range classes {
		if c.RateGbps >= required {
			return c.Name
		}
	}
	return classes[len(classes)-1].Name
}

// Recommend turns one link's optimization and resilience results into an
// operator action. Risk outranks savings: a CRITICAL failure mode forces an
// upgrade no matter how attractive the capacity reduction looks.
func Recommend(opt types.OptimizationResult, res types.ResilienceAssessment, cfg *config.Config) types.Recommendation {
	rec := types.Recommendation{
		LinkID:               opt.LinkID,
		CurrentPeakGbps:      opt.PeakCapacityGbps,
		OptimalCapacityGbps:  opt.OptimalCapacityGbps,
		CapacityReductionPct: opt.CapacityReductionPct,
		BufferRequiredUs:     opt.BufferUs,
		CurrentLinkRate:      CurrentLinkRate(opt.PeakCapacityGbps, cfg),
		ShapingMode:          opt.ShapingMode,
		RiskLevel:            res.OverallRisk,
	}

	switch {
	case res.OverallRisk == types.SeverityCritical:
		rec.Action = types.ActionUpgradeRequired
		rec.Summary = fmt.Sprintf(
			"UPGRADE REQUIRED due to %s risk. Shaping cannot be safely deployed.",
			res.OverallRisk)
		rec.NextSteps = []string{
			"Review failure mode analysis",
			"Plan link capacity upgrade",
			"Consider traffic segregation (URLLC vs eMBB)",
		}

	case res.OverallRisk == types.SeverityHigh:
		rec.Action = types.ActionConditionalShaping
		rec.Summary = fmt.Sprintf(
			"CONDITIONAL: Enable shaping with %.0f µs buffer, but monitor closely due to HIGH risk factors.",
			opt.BufferUs)
		rec.NextSteps = []string{
			"Deploy shaping in monitoring mode first",
			"Address failure modes from resilience analysis",
			"Prepare upgrade plan as fallback",
		}

	case opt.CapacityReductionPct > 50:
		rec.Action = types.ActionEnableShaping
		rec.Summary = fmt.Sprintf(
			"DO NOT upgrade fiber. Enable shaping with %.0f µs buffer. Savings: %.1f%% capacity reduction (%.2f → %.2f Gbps)",
			opt.BufferUs, opt.CapacityReductionPct, opt.PeakCapacityGbps, opt.OptimalCapacityGbps)
		rec.NextSteps = []string{
			fmt.Sprintf("Configure %s shaping mode", opt.ShapingMode),
			fmt.Sprintf("Set buffer depth to %.0f µs", opt.BufferUs),
			fmt.Sprintf("Monitor packet loss (target < %.0f%%)", cfg.PacketLossLimit*100),
			"Validate QoS metrics post-deployment",
		}

	default:
		rec.Action = types.ActionUpgradeRecommended
		rec.Summary = fmt.Sprintf(
			"Shaping provides minimal benefit (%.1f%% reduction). Consider upgrading link capacity instead.",
			opt.CapacityReductionPct)
		rec.NextSteps = []string{
			"Evaluate cost of link upgrade vs shaping complexity",
			"If cost-sensitive, deploy shaping as interim solution",
		}
	}

	return rec
}
