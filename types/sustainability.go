package types

// HardwareSavings quantifies the optic cost avoided by shaping.
type HardwareSavings struct {
	OpticWithoutShaping string  `json:"opticWithoutShaping" bson:"opticWithoutShaping"`
	OpticWithShaping    string  `json:"opticWithShaping" bson:"opticWithShaping"`
	CostWithoutUSD      float64 `json:"costWithoutUsd" bson:"costWithoutUsd"`
	CostWithUSD         float64 `json:"costWithUsd" bson:"costWithUsd"`
	SavingsUSD          float64 `json:"savingsUsd" bson:"savingsUsd"`
	SavingsPct          float64 `json:"savingsPct" bson:"savingsPct"`
	UpgradeAvoided      bool    `json:"upgradeAvoided" bson:"upgradeAvoided"`
}

// EnergyImpact quantifies the power draw difference between optic tiers.
type EnergyImpact struct {
	OpticWithout     string  `json:"opticWithout" bson:"opticWithout"`
	OpticWith        string  `json:"opticWith" bson:"opticWith"`
	PowerWithoutW    float64 `json:"powerWithoutW" bson:"powerWithoutW"`
	PowerWithW       float64 `json:"powerWithW" bson:"powerWithW"`
	PowerSavingsW    float64 `json:"powerSavingsW" bson:"powerSavingsW"`
	AnnualEnergyKWh  float64 `json:"annualEnergyKwh" bson:"annualEnergyKwh"`
	AnnualSavingsPct float64 `json:"annualSavingsPct" bson:"annualSavingsPct"`
}

// CarbonImpact converts the annual energy savings into CO2 equivalents.
type CarbonImpact struct {
	AnnualCO2ReductionKg   float64 `json:"annualCo2ReductionKg" bson:"annualCo2ReductionKg"`
	AnnualCO2ReductionTons float64 `json:"annualCo2ReductionTons" bson:"annualCo2ReductionTons"`
	CO2IntensityKgPerKWh   float64 `json:"co2IntensityKgPerKwh" bson:"co2IntensityKgPerKwh"`
}

// LinkSustainability is the complete sustainability analysis for one link.
type LinkSustainability struct {
	LinkID   int             `json:"linkId" bson:"linkId"`
	Hardware HardwareSavings `json:"hardwareSavings" bson:"hardwareSavings"`
	Energy   EnergyImpact    `json:"energyImpact" bson:"energyImpact"`
	Carbon   CarbonImpact    `json:"carbonImpact" bson:"carbonImpact"`
}

// NetworkImpact aggregates sustainability impact across all links of a batch.
type NetworkImpact struct {
	NumLinks                int     `json:"numLinks" bson:"numLinks"`
	TotalHardwareSavingsUSD float64 `json:"totalHardwareSavingsUsd" bson:"totalHardwareSavingsUsd"`
	TotalAnnualEnergyKWh    float64 `json:"totalAnnualEnergyKwh" bson:"totalAnnualEnergyKwh"`
	TotalAnnualCO2Kg        float64 `json:"totalAnnualCo2Kg" bson:"totalAnnualCo2Kg"`
	TotalAnnualCO2Tons      float64 `json:"totalAnnualCo2Tons" bson:"totalAnnualCo2Tons"`
}
