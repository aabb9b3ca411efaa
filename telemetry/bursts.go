package telemetry

import (
	"github.com/montanaflynn/stats"

	"github.com/xhaul-labs/fronthaul-analyzer-backend/config"
	"github.com/xhaul-labs/fronthaul-analyzer-backend/types"
)

// DetectBursts computes sub-slot burst statistics for one cell from its raw
// symbol series. A symbol is a burst when its instantaneous rate exceeds
// cfg.BurstFactor times the rolling mean over the trailing window.
func DetectBursts(cellID int, symbols []types.SymbolSample, cfg *config.Config) types.BurstStatistics {
	bs := types.BurstStatistics{
		CellID:        cellID,
		WindowSymbols: cfg.BurstWindowSymbols,
	}
	if len(symbols) == 0 {
		return bs
	}

	rates := make([]float64, len(symbols))
	for i, s := range symbols {
		rates[i] = s.Bits / cfg.SymbolDurationSec / 1e9
	}

	peak, _ := stats.Max(rates)
	avg, _ := stats.Mean(rates)
	bs.PeakGbps = peak
	bs.AvgGbps = avg
	if avg > 0 {
		bs.PAPR = peak / avg
	}

	// Rolling mean over the trailing window, shorter at the series head.
	window := cfg.BurstWindowSymbols
	var sum float64
	for i, r := range rates {
		sum += r
		if i >= window {
			sum -= rates[i-window]
		}
		n := window
		if i+1 < window {
			n = i + 1
		}
		rollingMean := sum / float64(n)
		if r > cfg.BurstFactor*rollingMean {
			bs.BurstCount++
		}
	}
	bs.BurstRatio = float64(bs.BurstCount) / float64(len(rates))
	return bs
}
