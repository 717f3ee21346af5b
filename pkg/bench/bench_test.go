package bench

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"studentdb/pkg/algo"
	"studentdb/pkg/common"
)

func TestMeasureRaisesIterationsToOne(t *testing.T) {
	calls := 0
	m := Measure(0, func() { calls++ })
	if calls != 1 || m.Iterations != 1 {
		t.Fatalf("expected one call, got calls=%d iterations=%d", calls, m.Iterations)
	}
	if m.Average() < 0 {
		t.Fatalf("negative average %v", m.Average())
	}
}

func TestFormatMillis(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0.0000"},
		{1500 * time.Microsecond, "1.5000"},
		{123456 * time.Nanosecond, "0.1235"},
		{2 * time.Second, "2000.0000"},
	}
	for _, tt := range tests {
		if got := FormatMillis(tt.d); got != tt.want {
			t.Errorf("FormatMillis(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestBenchmarkSingleRecordIsNonNegative(t *testing.T) {
	records := []common.Record{{ID: "1", Name: "Solo"}}
	for _, n := range []int{1, 10, 2000} {
		got := Benchmark(n, func() { algo.BubbleSort(records, algo.KeyID, algo.Ascending) })
		v, err := strconv.ParseFloat(got, 64)
		if err != nil {
			t.Fatalf("unparseable elapsed %q: %v", got, err)
		}
		if v < 0 {
			t.Fatalf("negative elapsed %v", v)
		}
		if i := strings.IndexByte(got, '.'); i < 0 || len(got)-i-1 != 4 {
			t.Fatalf("expected four decimals, got %q", got)
		}
	}
}

func TestSortBundleKeepsFunctionalResult(t *testing.T) {
	records := []common.Record{{ID: "3", Name: "C"}, {ID: "1", Name: "A"}, {ID: "2", Name: "B"}}
	b, err := Sort(algo.Shell, records, algo.KeyID, algo.Ascending, 50)
	if err != nil {
		t.Fatalf("sort: %v", err)
	}
	if b.Iterations != 50 || b.Algorithm != "shell" || b.ComplexityLabel != "O(n (log n)²)" {
		t.Fatalf("unexpected bundle metadata: %+v", b)
	}
	if b.Data[0].ID != "1" || b.Data[2].ID != "3" {
		t.Fatalf("unexpected data: %v", b.Data)
	}
	if records[0].ID != "3" {
		t.Fatalf("caller slice mutated: %v", records)
	}
}

func TestSearchBundle(t *testing.T) {
	records := []common.Record{{ID: "103"}, {ID: "101"}, {ID: "102"}}
	b, err := Search(algo.Binary, records, algo.KeyID, "102", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !b.Found || len(b.Data) != 1 || b.Data[0].ID != "102" {
		t.Fatalf("unexpected bundle: %+v", b)
	}

	b, err = Search(algo.Binary, records, algo.KeyScore, "0", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !b.FellBack || b.Algorithm != "linear" || b.ComplexityLabel != "O(n)" {
		t.Fatalf("expected linear fallback, got %+v", b)
	}

	b, err = Search(algo.Linear, nil, algo.KeyName, "x", 1)
	if err != nil || b.Found || len(b.Data) != 0 {
		t.Fatalf("empty search: %+v %v", b, err)
	}
}
