package shaping

import (
	"github.com/xhaul-labs/fronthaul-analyzer-backend/config"
	"github.com/xhaul-labs/fronthaul-analyzer-backend/types"
)

// ModeForPAPR classifies burstiness into a shaping mode and returns the
// buffer depth that mode simulates with. Low PAPR needs barely any
// smoothing and gets the smallest buffer; high PAPR gets the largest.
// The buffer is clamped to the configured [min, max] range.
func ModeForPAPR(papr float64, cfg *config.Config) (types.ShapingMode, float64) {
	var mode types.ShapingMode
	var bufferUs float64

	switch {
	case papr < cfg.PAPRLow:
		mode = types.ShapingMinimal
		bufferUs = cfg.MinBufferUs
	case papr < cfg.PAPRMedium:
		mode = types.ShapingModerate
		bufferUs = cfg.DefaultBufferUs
	default:
		mode = types.ShapingAggressive
		bufferUs = cfg.MaxBufferUs
	}

	if bufferUs < cfg.MinBufferUs {
		bufferUs = cfg.MinBufferUs
	}
	if bufferUs > cfg.MaxBufferUs {
		bufferUs = cfg.MaxBufferUs
	}
	return mode, bufferUs
}
