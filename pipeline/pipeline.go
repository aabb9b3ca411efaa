package pipeline

import (
	"context"
	"errors"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/xhaul-labs/fronthaul-analyzer-backend/config"
	"github.com/xhaul-labs/fronthaul-analyzer-backend/decision"
	"github.com/xhaul-labs/fronthaul-analyzer-backend/resilience"
	"github.com/xhaul-labs/fronthaul-analyzer-backend/shaping"
	"github.com/xhaul-labs/fronthaul-analyzer-backend/sustainability"
	"github.com/xhaul-labs/fronthaul-analyzer-backend/telemetry"
	"github.com/xhaul-labs/fronthaul-analyzer-backend/types"
)

// ErrEmptyBatch is returned when a telemetry directory yields no usable
// cells at all. Partial batches are fine; a completely empty one is not.
var ErrEmptyBatch = errors.New("telemetry batch contains no usable cells")

// Result is the merged output of one analysis run.
type Result struct {
	Topology     telemetry.TopologyMap
	BurstStats   map[int]types.BurstStatistics
	Links        []types.LinkReport
	Network      types.NetworkImpact
	CellsLoaded  int
	CellsSkipped int
	Elapsed      time.Duration
}

// Pipeline runs the full deterministic analysis over one telemetry batch.
// All state is owned by the run; nothing is shared across runs.
type Pipeline struct {
	cfg *config.Config
}

// New returns a pipeline bound to the given configuration.
func New(cfg *config.Config) *Pipeline {
	return &Pipeline{cfg: cfg}
}

// Run loads the telemetry directory and executes the three analysis stages:
// slot aggregation + burst detection + topology discovery first (the
// synchronization barrier), then one task per link running optimization,
// resilience, decision and sustainability against read-only inputs. Each
// task writes its own result slot; a final merge assembles the report.
func (p *Pipeline) Run(ctx context.Context, dir string) (*Result, error) {
	started := time.Now()

	ds, err := telemetry.LoadDirectory(dir)
	if err != nil {
		return nil, err
	}
	if ds.CellCount() == 0 {
		return nil, ErrEmptyBatch
	}

	res := p.Analyze(ctx, ds)
	res.Elapsed = time.Since(started)
	return res, nil
}

// Analyze runs the pipeline over an already-loaded dataset.
func (p *Pipeline) Analyze(ctx context.Context, ds *telemetry.Dataset) *Result {
	res := &Result{
		BurstStats:   make(map[int]types.BurstStatistics),
		CellsLoaded:  ds.CellCount(),
		CellsSkipped: len(ds.Skipped),
	}

	// Barrier phase: per-cell slot aggregation and burst statistics, then
	// topology. Everything after this point is read-only.
	slotData := make(map[int][]types.SlotSample, len(ds.Symbols))
	for cellID, symbols := range ds.Symbols {
		slotData[cellID] = telemetry.AggregateSlots(symbols, p.cfg)
		res.BurstStats[cellID] = telemetry.DetectBursts(cellID, symbols, p.cfg)
	}
	res.Topology = telemetry.DiscoverTopology(ds.Loss, p.cfg)

	// One task per link with data; disjoint slots, merged afterwards.
	linkIDs := res.Topology.LinkIDs()
	reports := make([]*types.LinkReport, len(linkIDs))

	g, _ := errgroup.WithContext(ctx)
	workers := p.cfg.MaxWorkers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(workers)

	for i, linkID := range linkIDs {
		i, linkID := i, linkID
		g.Go(func() error {
			members := res.Topology[linkID]
			traffic := telemetry.AggregateLinkTraffic(members, slotData)
			if len(traffic) == 0 {
				return nil // link has no usable traffic, skip downstream
			}

			summary := telemetry.SummarizeLinkTraffic(linkID, traffic)
			opt := shaping.Optimize(traffic, summary.PAPR, linkID, p.cfg)

			cellTraffic := make(map[int][]float64, len(members))
			for _, cell := range members {
				if slots := slotData[cell]; len(slots) > 0 {
					cellTraffic[cell] = telemetry.SlotThroughput(slots)
				}
			}
			resil := resilience.Analyze(linkID, cellTraffic, opt, p.cfg)

			reports[i] = &types.LinkReport{
				LinkID:         linkID,
				Traffic:        summary,
				Optimization:   opt,
				Resilience:     resil,
				Recommendation: decision.Recommend(opt, resil, p.cfg),
				Sustainability: sustainability.AnalyzeLink(opt, p.cfg),
			}
			return nil
		})
	}
	_ = g.Wait() // link tasks never return errors; the group provides the limit and join

	// Merge phase, sequential by construction.
	var impacts []types.LinkSustainability
	for _, r := range reports {
		if r == nil {
			continue
		}
		res.Links = append(res.Links, *r)
		impacts = append(impacts, r.Sustainability)
	}
	res.Network = sustainability.AggregateNetwork(impacts)
	return res
}

// TopologyEntries converts the topology map into its persisted form,
// ordered by link id.
func (r *Result) TopologyEntries() []types.LinkTopology {
	entries := make([]types.LinkTopology, 0, len(r.Topology))
	for _, id := range r.Topology.LinkIDs() {
		entries = append(entries, types.LinkTopology{LinkID: id, CellIDs: r.Topology[id]})
	}
	return entries
}

// BurstStatEntries returns the per-cell burst statistics ordered by cell id.
func (r *Result) BurstStatEntries() []types.BurstStatistics {
	cellIDs := make([]int, 0, len(r.BurstStats))
	for id := range r.BurstStats {
		cellIDs = append(cellIDs, id)
	}
	sort.Ints(cellIDs)
	entries := make([]types.BurstStatistics, 0, len(cellIDs))
	for _, id := range cellIDs {
		entries = append(entries, r.BurstStats[id])
	}
	return entries
}
