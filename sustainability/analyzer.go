package sustainability

import (
	"github.com/xhaul-labs/fronthaul-analyzer-backend/config"
	"github.com/xhaul-labs/fronthaul-analyzer-backend/types"
)

// RequiredOptic returns the smallest optic class covering the given
// capacity plus configured headroom.
func RequiredOptic(capacityGbps float64, cfg *config.Config) config.OpticClass {
	required := capacityGbps * cfg.OpticHeadroom
	classes := config.OpticClasses()
	for _, c := range classes {
		if c.RateGbps >= required {
			return c
		}
	}
	return classes[len(classes)-1]
}

// HardwareSavings compares the optic needed at peak capacity against the
// optic needed at the shaped capacity.
func HardwareSavings(peakGbps, optimalGbps float64, cfg *config.Config) types.HardwareSavings {
	without := RequiredOptic(peakGbps, cfg)
	with := RequiredOptic(optimalGbps, cfg)

	savings := without.CostUSD - with.CostUSD
	hs := types.HardwareSavings{
		OpticWithoutShaping: without.Name,
		OpticWithShaping:    with.Name,
		CostWithoutUSD:      without.CostUSD,
		CostWithUSD:         with.CostUSD,
		SavingsUSD:          savings,
		UpgradeAvoided:      without.Name != with.Name,
	}
	if without.CostUSD > 0 {
		hs.SavingsPct = savings / without.CostUSD * 100
	}
	return hs
}

// EnergyImpact computes the annual energy saved by running a lower-rate
// optic.
func EnergyImpact(peakGbps, optimalGbps float64, cfg *config.Config) types.EnergyImpact {
	without := RequiredOptic(peakGbps, cfg)
	with := RequiredOptic(optimalGbps, cfg)

	savingsW := without.PowerW - with.PowerW
	ei := types.EnergyImpact{
		OpticWithout:    without.Name,
		OpticWith:       with.Name,
		PowerWithoutW:   without.PowerW,
		PowerWithW:      with.PowerW,
		PowerSavingsW:   savingsW,
		AnnualEnergyKWh: savingsW / 1000 * cfg.HoursPerYear,
	}
	if without.PowerW > 0 {
		ei.AnnualSavingsPct = savingsW / without.PowerW * 100
	}
	return ei
}

// CarbonImpact converts annual energy savings to CO2 equivalents.
func CarbonImpact(energy types.EnergyImpact, cfg *config.Config) types.CarbonImpact {
	co2Kg := energy.AnnualEnergyKWh * cfg.KgCO2PerKWh
	return types.CarbonImpact{
		AnnualCO2ReductionKg:   co2Kg,
		AnnualCO2ReductionTons: co2Kg / 1000,
		CO2IntensityKgPerKWh:   cfg.KgCO2PerKWh,
	}
}

// AnalyzeLink runs the full sustainability analysis for one link.
func AnalyzeLink(opt types.OptimizationResult, cfg *config.Config) types.LinkSustainability {
	energy := EnergyImpact(opt.PeakCapacityGbps, opt.OptimalCapacityGbps, cfg)
	return types.LinkSustainability{
		LinkID:   opt.LinkID,
		Hardware: HardwareSavings(opt.PeakCapacityGbps, opt.OptimalCapacityGbps, cfg),
		Energy:   energy,
		Carbon:   CarbonImpact(energy, cfg),
	}
}

// AggregateNetwork sums sustainability impact across all analyzed links.
func AggregateNetwork(links []types.LinkSustainability) types.NetworkImpact {
	impact := types.NetworkImpact{NumLinks: len(links)}
	for _, l := range links {
		impact.TotalHardwareSavingsUSD += l.Hardware.SavingsUSD
		impact.TotalAnnualEnergyKWh += l.Energy.AnnualEnergyKWh
		impact.TotalAnnualCO2Kg += l.Carbon.AnnualCO2ReductionKg
	}
	impact.TotalAnnualCO2Tons = impact.TotalAnnualCO2Kg / 1000
	return impact
}
