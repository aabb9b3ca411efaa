package telemetry

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xhaul-labs/fronthaul-analyzer-backend/types"
)

// Dataset holds the raw per-cell measurements loaded from one telemetry
// directory. Immutable once loaded.
type Dataset struct {
	Symbols map[int][]types.SymbolSample // cell id -> symbol throughput series
	Loss    map[int][]float64            // cell id -> lost packets per interval
	Skipped []int                        // cells whose files could not be used
}

// CellCount returns the number of cells with usable throughput data.
func (d *Dataset) CellCount() int {
	return len(d.Symbols)
}

// LoadDirectory loads every throughput-cell-<id>.dat and
// pkt-stats-cell-<id>.dat file found in dir. A cell whose file is missing or
// unparsable is skipped; it never fails the batch.
func LoadDirectory(dir string) (*Dataset, error) {
	throughputFiles, err := filepath.Glob(filepath.Join(dir, "throughput-cell-*.dat"))
	if err != nil {
		return nil, fmt.Errorf("globbing throughput files: %w", err)
	}
	statFiles, err := filepath.Glob(filepath.Join(dir, "pkt-stats-cell-*.dat"))
	if err != nil {
		return nil, fmt.Errorf("globbing packet stat files: %w", err)
	}

	ds := &Dataset{
		Symbols: make(map[int][]types.SymbolSample),
		Loss:    make(map[int][]float64),
	}

	for _, path := range throughputFiles {
		cellID, ok := cellIDFromFilename(path, "throughput-cell-")
		if !ok {
			continue
		}
		samples, err := LoadThroughputFile(path)
		if err != nil || len(samples) == 0 {
			log.Printf("skipping cell %d throughput: %v", cellID, err)
			ds.Skipped = append(ds.Skipped, cellID)
			continue
		}
		ds.Symbols[cellID] = samples
	}

	for _, path := range statFiles {
		cellID, ok := cellIDFromFilename(path, "pkt-stats-cell-")
		if !ok {
			continue
		}
		stats, err := LoadPacketStatsFile(path)
		if err != nil || len(stats) == 0 {
			log.Printf("skipping cell %d packet stats: %v", cellID, err)
			continue
		}
		loss := make([]float64, len(stats))
		for i, s := range stats {
			loss[i] = s.Loss()
		}
		ds.Loss[cellID] = loss
	}

	return ds, nil
}

// LoadThroughputFile parses a whitespace-separated "timestamp bits" file.
// Malformed rows are dropped, matching the fail-soft ingestion contract.
func LoadThroughputFile(path string) ([]types.SymbolSample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var samples []types.SymbolSample
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		ts, err1 := strconv.ParseFloat(fields[0], 64)
		bits, err2 := strconv.ParseFloat(fields[1], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		samples = append(samples, types.SymbolSample{Timestamp: ts, Bits: bits})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return samples, nil
}

// LoadPacketStatsFile parses a packet counter file: one header line, then
// whitespace-separated "timestamp tx rx too_late" rows.
func LoadPacketStatsFile(path string) ([]types.PacketStat, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var stats []types.PacketStat
	scanner := bufio.NewScanner(f)
	first := true
	for scanner.Scan() {
		if first {
			first = false // header row
			continue
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 {
			continue
		}
		ts, err1 := strconv.ParseFloat(fields[0], 64)
		tx, err2 := strconv.ParseFloat(fields[1], 64)
		rx, err3 := strconv.ParseFloat(fields[2], 64)
		late, err4 := strconv.ParseFloat(fields[3], 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			continue
		}
		stats = append(stats, types.PacketStat{Timestamp: ts, Tx: tx, Rx: rx, TooLate: late})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return stats, nil
}

func cellIDFromFilename(path, prefix string) (int, bool) {
	base := filepath.Base(path)
	base = strings.TrimPrefix(base, prefix)
	base = strings.TrimSuffix(base, ".dat")
	id, err := strconv.Atoi(base)
	if err != nil {
		return 0, false
	}
	return id, true
}
