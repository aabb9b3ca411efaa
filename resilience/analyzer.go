package resilience

import (
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/xhaul-labs/fronthaul-analyzer-backend/config"
	"github.com/xhaul-labs/fronthaul-analyzer-backend/telemetry"
	"github.com/xhaul-labs/fronthaul-analyzer-backend/types"
)

// Analyze runs the three failure-mode detectors for one link and aggregates
// their severities. It consumes the optimization result for that link, so it
// must run after optimization completes.
func Analyze(linkID int, cellTraffic map[int][]float64, opt types.OptimizationResult, cfg *config.Config) types.ResilienceAssessment {
	a := types.ResilienceAssessment{
		LinkID:             linkID,
		SynchronizedBursts: DetectSynchronizedBursts(cellTraffic, cfg),
		LatencyBudget:      DetectLatencyBudget(opt.BufferUs, cfg),
		BufferSizing:       DetectBufferSizing(opt.BufferUs, opt.Stats.MaxOccupancyPct, cfg),
	}

	a.OverallRisk = types.MaxSeverity(
		a.SynchronizedBursts.Risk,
		a.LatencyBudget.Risk,
		a.BufferSizing.Risk,
	)
	for _, detected := range []bool{
		a.SynchronizedBursts.Detected,
		a.LatencyBudget.Detected,
		a.BufferSizing.Detected,
	} {
		if detected {
			a.FailureModesDetected++
		}
	}
	return a
}

// DetectSynchronizedBursts flags links whose member cells burst at the same
// time. Each cell's slot traffic is binarized against twice its own mean;
// any pair of burst indicators correlating at or above the configured
// threshold means simultaneous bursts can overrun a shared buffer even when
// each cell individually looks shapeable.
func DetectSynchronizedBursts(cellTraffic map[int][]float64, cfg *config.Config) types.SyncBurstDetection {
	if len(cellTraffic) < 2 {
		return types.SyncBurstDetection{
			FailureDetection: types.FailureDetection{Risk: types.SeverityNone},
		}
	}

	cells := make([]int, 0, len(cellTraffic))
	for id := range cellTraffic {
		cells = append(cells, id)
	}
	sort.Ints(cells)

	maxLen := 0
	for _, id := range cells {
		if n := len(cellTraffic[id]); n > maxLen {
			maxLen = n
		}
	}

	indicators := make([][]float64, len(cells))
	for i, id := range cells {
		traffic := cellTraffic[id]
		mean, _ := stats.Mean(traffic)
		row := make([]float64, maxLen)
		for j, v := range traffic {
			if v > 2*mean {
				row[j] = 1
			}
		}
		indicators[i] = row
	}

	var pairs []types.BurstPair
	for i := 0; i < len(cells); i++ {
		for j := i + 1; j < len(cells); j++ {
			corr := telemetry.Pearson(indicators[i], indicators[j])
			if corr >= cfg.CorrelationThreshold {
				pairs = append(pairs, types.BurstPair{
					CellA:       cells[i],
					CellB:       cells[j],
					Correlation: corr,
				})
			}
		}
	}

	if len(pairs) == 0 {
		return types.SyncBurstDetection{
			FailureDetection: types.FailureDetection{
				Risk:        types.SeverityLow,
				Explanation: "Cell bursts are not synchronized - shaping should be effective",
			},
		}
	}

	return types.SyncBurstDetection{
		FailureDetection: types.FailureDetection{
			Detected: true,
			Risk:     types.SeverityHigh,
			Explanation: fmt.Sprintf(
				"Detected %d cell pairs with synchronized bursts. When multiple cells burst "+
					"simultaneously, aggregate traffic can exceed buffer capacity even with shaping.",
				len(pairs)),
			Mitigation: []string{
				fmt.Sprintf("Increase buffer size to maximum (%.0f µs)", cfg.MaxBufferUs),
				"Consider load balancing across multiple physical links",
				"If synchronization persists, upgrade link capacity",
			},
		},
		SynchronizedPairs: pairs,
	}
}

// DetectLatencyBudget flags buffer depths that would violate the
// ultra-low-latency traffic class budget. Buffering delay is additive, so a
// buffer above the budget cannot be deployed on URLLC-carrying links.
func DetectLatencyBudget(bufferUs float64, cfg *config.Config) types.LatencyBudgetDetection {
	d := types.LatencyBudgetDetection{
		BufferLatencyUs: bufferUs,
		LatencyBudgetUs: cfg.LatencyBudgetUs,
	}

	if bufferUs > cfg.LatencyBudgetUs {
		d.Detected = true
		d.Risk = types.SeverityCritical
		d.Explanation = fmt.Sprintf(
			"Buffer delay (%.0f µs) exceeds URLLC latency budget (%.0f µs). Shaping will violate QoS requirements.",
			bufferUs, cfg.LatencyBudgetUs)
		d.Mitigation = []string{
			"BYPASS shaping for URLLC traffic (requires DPI or QoS tagging)",
			"Upgrade link capacity to avoid buffering",
			"Implement priority queuing with separate URLLC path",
		}
		return d
	}

	d.Risk = types.SeverityLow
	d.Explanation = fmt.Sprintf("Buffer latency (%.0f µs) within URLLC budget", bufferUs)
	return d
}

// DetectBufferSizing inspects the simulated operating point for sizing
// problems: near-full occupancy means the buffer is too small, low occupancy
// above the minimum means it is oversized, and a depth outside the
// configured range is flagged regardless of occupancy. Severity is the
// maximum across the issues found.
func DetectBufferSizing(bufferUs, maxOccupancyPct float64, cfg *config.Config) types.BufferSizingDetection {
	var issues []types.BufferIssue

	if maxOccupancyPct > cfg.OccupancyHighPct {
		issues = append(issues, types.BufferIssue{
			Type: types.BufferTooSmall,
			Risk: types.SeverityHigh,
			Explanation: fmt.Sprintf(
				"Buffer occupancy reaches %.1f%%, indicating frequent overflows. Packet loss may exceed target.",
				maxOccupancyPct),
			Mitigation: []string{
				fmt.Sprintf("Increase buffer from %.0f µs to %.0f µs", bufferUs,
					math.Min(bufferUs*1.5, cfg.MaxBufferUs)),
				"Re-run capacity optimization with larger buffer",
			},
		})
	}

	if maxOccupancyPct < cfg.OccupancyLowPct && bufferUs > cfg.MinBufferUs {
		issues = append(issues, types.BufferIssue{
			Type: types.BufferOversized,
			Risk: types.SeverityLow,
			Explanation: fmt.Sprintf(
				"Buffer occupancy only %.1f%%, buffer is oversized. This wastes memory and adds unnecessary latency.",
				maxOccupancyPct),
			Mitigation: []string{
				fmt.Sprintf("Reduce buffer from %.0f µs to %.0f µs", bufferUs,
					math.Max(bufferUs*0.7, cfg.MinBufferUs)),
				"Lower latency improves QoS for latency-sensitive traffic",
			},
		})
	}

	if bufferUs < cfg.MinBufferUs || bufferUs > cfg.MaxBufferUs {
		issues = append(issues, types.BufferIssue{
			Type: types.BufferOutOfRange,
			Risk: types.SeverityMedium,
			Explanation: fmt.Sprintf(
				"Buffer size (%.0f µs) outside recommended range [%.0f-%.0f µs]",
				bufferUs, cfg.MinBufferUs, cfg.MaxBufferUs),
			Mitigation: []string{
				fmt.Sprintf("Adjust buffer to recommended range [%.0f-%.0f µs]",
					cfg.MinBufferUs, cfg.MaxBufferUs),
			},
		})
	}

	if len(issues) == 0 {
		return types.BufferSizingDetection{
			FailureDetection: types.FailureDetection{
				Risk:        types.SeverityNone,
				Explanation: "Buffer configuration is optimal",
			},
		}
	}

	levels := make([]types.Severity, len(issues))
	for i, issue := range issues {
		levels[i] = issue.Risk
	}
	return types.BufferSizingDetection{
		FailureDetection: types.FailureDetection{
			Detected: true,
			Risk:     types.MaxSeverity(levels...),
		},
		Issues: issues,
	}
}
