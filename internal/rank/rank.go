// Package rank selects the top-N processes for each display category.
package rank

import (
	"sort"

	"spmon/internal/model"
)

// Key is one of the three process orderings used per cycle.
type Key int

const (
	ByCPU Key = iota
	ByMemory
	ByDiskIO
)

// Top returns at most n snapshots ordered descending by key. The sort is
// stable, so ties keep their original enumeration order. The input slice
// is not modified.
func Top(snaps []model.ProcessSnapshot, key Key, n int) []model.ProcessSnapshot {
	if n <= 0 {
		return nil
	}
	out := make([]model.ProcessSnapshot, len(snaps))
	copy(out, snaps)

	sort.SliceStable(out, func(i, j int) bool {
		switch key {
		case ByMemory:
			return out[i].MemRSS > out[j].MemRSS
		case ByDiskIO:
			return out[i].DiskIOTotal() > out[j].DiskIOTotal()
		default:
			return out[i].CPUPercent > out[j].CPUPercent
		}
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// All runs the three rankings for one cycle.
func All(snaps []model.ProcessSnapshot, n int) model.TopN {
	return model.TopN{
		CPU:    Top(snaps, ByCPU, n),
		Memory: Top(snaps, ByMemory, n),
		DiskIO: Top(snaps, ByDiskIO, n),
	}
}
