package monitor

import (
	"sync"
	"testing"
)

func TestWorkloadStatsCounts(t *testing.T) {
	ws := NewWorkloadStats()
	if ws.GetHitRatio() != 0 {
		t.Fatalf("empty hit ratio: %v", ws.GetHitRatio())
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ws.RecordWrite()
			ws.RecordSort()
			ws.RecordSearch(i%2 == 0)
		}(i)
	}
	wg.Wait()

	s := ws.Snapshot()
	if s.Writes != 8 || s.Sorts != 8 || s.Searches != 8 || s.Hits != 4 {
		t.Fatalf("unexpected snapshot %+v", s)
	}
	if s.HitRatio != 0.5 {
		t.Fatalf("hit ratio: got %v", s.HitRatio)
	}
}
