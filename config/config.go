package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Config holds the physical-layer constants and analysis tunables shared by
// the whole pipeline. One Config is built at startup and passed read-only
// into every stage.
type Config struct {
	// 5G NR physical layer
	SymbolDurationSec float64 `validate:"gt=0"` // ~35.7 µs per symbol
	SymbolsPerSlot    int     `validate:"gt=0"` // 14 symbols per slot

	// Shaping buffer bounds (microseconds)
	DefaultBufferUs float64 `validate:"gt=0"`
	MinBufferUs     float64 `validate:"gt=0"`
	MaxBufferUs     float64 `validate:"gtefield=MinBufferUs"`

	// Traffic analysis
	CorrelationThreshold float64 `validate:"gt=0,lte=1"`
	PacketLossLimit      float64 `validate:"gt=0,lt=1"`
	BurstWindowSymbols   int     `validate:"gt=0"`
	BurstFactor          float64 `validate:"gt=1"`

	// PAPR tier boundaries for shaping-mode selection
	PAPRLow    float64 `validate:"gt=0"`
	PAPRMedium float64 `validate:"gtfield=PAPRLow"`

	// Resilience thresholds
	LatencyBudgetUs  float64 `validate:"gt=0"`
	OccupancyHighPct float64 `validate:"gt=0,lte=100"`
	OccupancyLowPct  float64 `validate:"gte=0,ltfield=OccupancyHighPct"`

	// Capacity optimizer
	SearchIterations int `validate:"gt=0"`

	// Sustainability / decision support
	OpticHeadroom float64 `validate:"gte=1"`
	KgCO2PerKWh   float64 `validate:"gt=0"`
	HoursPerYear  float64 `validate:"gt=0"`

	// Per-link fan-out limit; 0 means GOMAXPROCS
	MaxWorkers int `validate:"gte=0"`
}

// OpticClass describes a pluggable optic tier used for upgrade decisions and
// sustainability accounting.
type OpticClass struct {
	Name     string  `json:"name" bson:"name"`
	RateGbps float64 `json:"rateGbps" bson:"rateGbps"`
	CostUSD  float64 `json:"costUsd" bson:"costUsd"`
	PowerW   float64 `json:"powerW" bson:"powerW"`
}

// OpticClasses returns the supported optic tiers ordered by rate ascending.
func OpticClasses() []OpticClass {
	return []OpticClass{
		{Name: "10G", RateGbps: 10.0, CostUSD: 500, PowerW: 2.5},
		{Name: "25G", RateGbps: 25.0, CostUSD: 1500, PowerW: 3.5},
		{Name: "40G", RateGbps: 40.0, CostUSD: 5000, PowerW: 5.0},
		{Name: "100G", RateGbps: 100.0, CostUSD: 15000, PowerW: 8.0},
	}
}

// Default returns the analysis configuration from the fronthaul problem
// statement: 35.7 µs symbols, 14-symbol slots, 143 µs buffer within a
// [70, 200] µs range, 1% loss budget and a 0.70 correlation threshold.
func Default() *Config {
	return &Config{
		SymbolDurationSec:    35.7e-6,
		SymbolsPerSlot:       14,
		DefaultBufferUs:      143,
		MinBufferUs:          70,
		MaxBufferUs:          200,
		CorrelationThreshold: 0.70,
		PacketLossLimit:      0.01,
		BurstWindowSymbols:   4,
		BurstFactor:          2.0,
		PAPRLow:              10.0,
		PAPRMedium:           100.0,
		LatencyBudgetUs:      200,
		OccupancyHighPct:     95,
		OccupancyLowPct:      30,
		SearchIterations:     20,
		OpticHeadroom:        1.1,
		KgCO2PerKWh:          0.5,
		HoursPerYear:         8760,
		MaxWorkers:           0,
	}
}

// SlotDurationSec is the slot aggregation window: 14 symbols, ~500 µs.
func (c *Config) SlotDurationSec() float64 {
	return c.SymbolDurationSec * float64(c.SymbolsPerSlot)
}

// FromEnv returns the default configuration with any environment overrides
// applied. Unset or malformed variables fall back to the defaults.
func FromEnv() *Config {
	c := Default()
	c.DefaultBufferUs = envFloat("FH_BUFFER_US", c.DefaultBufferUs)
	c.MinBufferUs = envFloat("FH_MIN_BUFFER_US", c.MinBufferUs)
	c.MaxBufferUs = envFloat("FH_MAX_BUFFER_US", c.MaxBufferUs)
	c.CorrelationThreshold = envFloat("FH_CORRELATION_THRESHOLD", c.CorrelationThreshold)
	c.PacketLossLimit = envFloat("FH_LOSS_LIMIT", c.PacketLossLimit)
	c.LatencyBudgetUs = envFloat("FH_LATENCY_BUDGET_US", c.LatencyBudgetUs)
	c.MaxWorkers = envInt("FH_MAX_WORKERS", c.MaxWorkers)
	return c
}

// Validate checks the configuration invariants.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid analysis config: %w", err)
	}
	return nil
}

func envFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
