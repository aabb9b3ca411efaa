package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xhaul-labs/fronthaul-analyzer-backend/config"
)

// writeThroughput emits a symbol series of base-rate traffic with spikes at
// the given indices.
func writeThroughput(t *testing.T, dir string, cellID, symbols int, spikes ...int) {
	t.Helper()
	cfg := config.Default()

	spiked := make(map[int]bool, len(spikes))
	for _, i := range spikes {
		spiked[i] = true
	}

	var b strings.Builder
	for i := 0; i < symbols; i++ {
		bits := 1000.0
		if spiked[i] {
			bits = 50000.0
		}
		fmt.Fprintf(&b, "%.7f %.0f\n", float64(i)*cfg.SymbolDurationSec, bits)
	}

	name := fmt.Sprintf("throughput-cell-%d.dat", cellID)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(b.String()), 0644))
}

// writePacketStats emits a counter file whose loss pattern follows lossAt.
func writePacketStats(t *testing.T, dir string, cellID, intervals int, lossAt func(int) bool) {
	t.Helper()

	var b strings.Builder
	b.WriteString("time tx rx too_late\n")
	for i := 0; i < intervals; i++ {
		rx := 100
		if lossAt(i) {
			rx = 98
		}
		fmt.Fprintf(&b, "%.1f 100 %d 0\n", float64(i), rx)
	}

	name := fmt.Sprintf("pkt-stats-cell-%d.dat", cellID)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(b.String()), 0644))
}

func writeBatchFixture(t *testing.T, dir string) {
	t.Helper()
	even := func(i int) bool { return i%2 == 0 }
	odd := func(i int) bool { return i%2 == 1 }

	// Cells 1 and 2 lose packets in the same intervals; cell 3 in the
	// opposite ones.
	writeThroughput(t, dir, 1, 56, 10, 40)
	writeThroughput(t, dir, 2, 56, 10, 40)
	writeThroughput(t, dir, 3, 56, 25)
	writePacketStats(t, dir, 1, 8, even)
	writePacketStats(t, dir, 2, 8, even)
	writePacketStats(t, dir, 3, 8, odd)
}

func TestPipelineRun(t *testing.T) {
	cfg := config.Default()

	t.Run("full batch", func(t *testing.T) {
		dir := t.TempDir()
		writeBatchFixture(t, dir)

		res, err := New(cfg).Run(context.Background(), dir)
		require.NoError(t, err)

		assert.Equal(t, 3, res.CellsLoaded)
		assert.Zero(t, res.CellsSkipped)
		assert.Greater(t, res.Elapsed.Nanoseconds(), int64(0))

		// Loss-correlated cells 1 and 2 share a link; cell 3 stands alone.
		require.Len(t, res.Topology, 2)
		assert.Equal(t, []int{1, 2}, res.Topology[1])
		assert.Equal(t, []int{3}, res.Topology[2])

		require.Len(t, res.Links, 2)
		for _, link := range res.Links {
			assert.Greater(t, link.Traffic.PeakGbps, 0.0)
			assert.Equal(t, link.LinkID, link.Optimization.LinkID)
			assert.Equal(t, link.LinkID, link.Resilience.LinkID)
			assert.Equal(t, link.LinkID, link.Recommendation.LinkID)
			assert.LessOrEqual(t, link.Optimization.Stats.LossRatio, cfg.PacketLossLimit)
			assert.NotEmpty(t, link.Recommendation.Action)
		}

		assert.Equal(t, 2, res.Network.NumLinks)
		assert.Len(t, res.BurstStats, 3)
	})

	t.Run("empty directory fails with the sentinel", func(t *testing.T) {
		_, err := New(cfg).Run(context.Background(), t.TempDir())
		assert.ErrorIs(t, err, ErrEmptyBatch)
	})

	t.Run("directory without usable cells fails with the sentinel", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(
			filepath.Join(dir, "throughput-cell-1.dat"), []byte("not numbers\n"), 0644))

		_, err := New(cfg).Run(context.Background(), dir)
		assert.ErrorIs(t, err, ErrEmptyBatch)
	})
}

func TestPipelineDeterminism(t *testing.T) {
	cfg := config.Default()
	dir := t.TempDir()
	writeBatchFixture(t, dir)

	first, err := New(cfg).Run(context.Background(), dir)
	require.NoError(t, err)
	second, err := New(cfg).Run(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, first.Topology, second.Topology)
	assert.Equal(t, first.BurstStats, second.BurstStats)
	assert.Equal(t, first.Links, second.Links)
	assert.Equal(t, first.Network, second.Network)
}

func TestResultEntries(t *testing.T) {
	cfg := config.Default()
	dir := t.TempDir()
	writeBatchFixture(t, dir)

	res, err := New(cfg).Run(context.Background(), dir)
	require.NoError(t, err)

	topo := res.TopologyEntries()
	require.Len(t, topo, 2)
	assert.Equal(t, 1, topo[0].LinkID)
	assert.Equal(t, []int{1, 2}, topo[0].CellIDs)
	assert.Equal(t, 2, topo[1].LinkID)

	bursts := res.BurstStatEntries()
	require.Len(t, bursts, 3)
	for i, bs := range bursts {
		assert.Equal(t, i+1, bs.CellID)
		assert.Greater(t, bs.PAPR, 1.0)
	}
}
