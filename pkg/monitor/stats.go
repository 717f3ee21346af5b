package monitor

import (
	"sync/atomic"
)

type WorkloadStats struct {
	WriteCount  uint64
	SortCount   uint64
	SearchCount uint64
	HitCount    uint64
}

func NewWorkloadStats() *WorkloadStats {
	return &WorkloadStats{}
}

func (ws *WorkloadStats) RecordWrite() {
	atomic.AddUint64(&ws.WriteCount, 1)
}

func (ws *WorkloadStats) RecordSort() {
	atomic.AddUint64(&ws.SortCount, 1)
}

// RecordSearch counts a search and, when found is true, a hit.
func (ws *WorkloadStats) RecordSearch(found bool) {
	atomic.AddUint64(&ws.SearchCount, 1)
	if found {
		atomic.AddUint64(&ws.HitCount, 1)
	}
}

func (ws *WorkloadStats) GetHitRatio() float64 {
	searches := atomic.LoadUint64(&ws.SearchCount)
	if searches == 0 {
		return 0.0
	}
	return float64(atomic.LoadUint64(&ws.HitCount)) / float64(searches)
}

// Snapshot is a consistent-enough copy for reporting.
type Snapshot struct {
	Writes   uint64  `json:"writes"`
	Sorts    uint64  `json:"sorts"`
	Searches uint64  `json:"searches"`
	Hits     uint64  `json:"hits"`
	HitRatio float64 `json:"hit_ratio"`
}

func (ws *WorkloadStats) Snapshot() Snapshot {
	return Snapshot{
		Writes:   atomic.LoadUint64(&ws.WriteCount),
		Sorts:    atomic.LoadUint64(&ws.SortCount),
		Searches: atomic.LoadUint64(&ws.SearchCount),
		Hits:     atomic.LoadUint64(&ws.HitCount),
		HitRatio: ws.GetHitRatio(),
	}
}
