package telemetry

import (
	"sort"

	"github.com/xhaul-labs/fronthaul-analyzer-backend/config"
)

// TopologyMap maps a link id to its member cell ids, sorted ascending.
// Every cell appears in exactly one link.
type TopologyMap map[int][]int

// LinkIDs returns the link ids sorted ascending.
func (t TopologyMap) LinkIDs() []int {
	ids := make([]int, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// DiscoverTopology infers which cells share a physical link from the timing
// of their packet-loss events. Loss counts are binarized (loss occurred ⇔
// count > 0) and cells whose loss indicators correlate at or above the
// configured threshold are grouped greedily, first come first served, in
// ascending cell-id order. Link ids start at 1 in cluster-formation order.
//
// The greedy grouping is deliberately not a transitive closure: if A
// correlates with B and B with C but A does not correlate with C, C still
// lands wherever the iteration order puts it first. Consumers depend on
// this partition.
func DiscoverTopology(loss map[int][]float64, cfg *config.Config) TopologyMap {
	cells := make([]int, 0, len(loss))
	for id := range loss {
		cells = append(cells, id)
	}
	sort.Ints(cells)

	topology := make(TopologyMap)
	if len(cells) == 0 {
		return topology
	}

	// Binarize onto a common length, absent tail intervals count as no loss.
	maxLen := 0
	for _, series := range loss {
		if len(series) > maxLen {
			maxLen = len(series)
		}
	}
	binary := make([][]float64, len(cells))
	anyLoss := false
	for i, id := range cells {
		row := make([]float64, maxLen)
		for j, v := range loss[id] {
			if v > 0 {
				row[j] = 1
				anyLoss = true
			}
		}
		binary[i] = row
	}

	// No loss anywhere: every cell is its own link, no correlation computed.
	if !anyLoss {
		for i, id := range cells {
			topology[i+1] = []int{id}
		}
		return topology
	}

	corr := make([][]float64, len(cells))
	for i := range cells {
		corr[i] = make([]float64, len(cells))
		for j := range cells {
			if j < i {
				corr[i][j] = corr[j][i]
				continue
			}
			corr[i][j] = Pearson(binary[i], binary[j])
		}
	}

	processed := make(map[int]bool)
	linkID := 1
	for i, cell := range cells {
		if processed[cell] {
			continue
		}

		var correlated []int
		for j, other := range cells {
			if corr[i][j] >= cfg.CorrelationThreshold {
				correlated = append(correlated, other)
			}
		}

		if len(correlated) > 1 {
			sort.Ints(correlated)
			topology[linkID] = correlated
			for _, c := range correlated {
				processed[c] = true
			}
		} else {
			topology[linkID] = []int{cell}
			processed[cell] = true
		}
		linkID++
	}

	return topology
}
