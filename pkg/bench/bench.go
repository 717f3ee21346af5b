// Package bench times algorithm runs. The functional run that produces the
// returned data always happens first and separately from the timing loop.
package bench

import (
	"strconv"
	"time"

	"studentdb/pkg/algo"
	"studentdb/pkg/common"
)

const DefaultIterations = 2000

// Measurement is the wall-clock cost of a benchmark loop.
type Measurement struct {
	Iterations int
	Total      time.Duration
}

func (m Measurement) Average() time.Duration {
	if m.Iterations <= 0 {
		return 0
	}
	return m.Total / time.Duration(m.Iterations)
}

// Measure runs fn iterations times. Counts below one are raised to one.
func Measure(iterations int, fn func()) Measurement {
	if iterations < 1 {
		iterations = 1
	}
	start := time.Now()
	for i := 0; i < iterations; i++ {
		fn()
	}
	return Measurement{Iterations: iterations, Total: time.Since(start)}
}

// FormatMillis renders d in milliseconds with four decimal places.
func FormatMillis(d time.Duration) string {
	return strconv.FormatFloat(float64(d)/float64(time.Millisecond), 'f', 4, 64)
}

// Benchmark returns the average cost of fn formatted by FormatMillis.
func Benchmark(iterations int, fn func()) string {
	return FormatMillis(Measure(iterations, fn).Average())
}

// Bundle is the result handed to presentation layers.
type Bundle struct {
	Data            []common.Record `json:"data"`
	Found           bool            `json:"found"`
	ElapsedTimeMs   string          `json:"elapsedTimeMs"`
	ComplexityLabel string          `json:"complexityLabel"`
	Algorithm       string          `json:"algorithm"`
	Iterations      int             `json:"iterations"`
	FellBack        bool            `json:"fellBack,omitempty"`
}

// Sort performs one functional sort, then times the same call over a fresh
// shallow copy of records on every iteration.
func Sort(a algo.SortAlgorithm, records []common.Record, key algo.Key, order algo.Order, iterations int) (Bundle, error) {
	res, err := algo.Sort(a, records, key, order)
	if err != nil {
		return Bundle{}, err
	}
	m := Measure(iterations, func() {
		algo.Sort(a, common.CloneRecords(records), key, order)
	})
	return Bundle{
		Data:            res.Records,
		Found:           len(res.Records) > 0,
		ElapsedTimeMs:   FormatMillis(m.Average()),
		ComplexityLabel: res.Complexity,
		Algorithm:       a.String(),
		Iterations:      m.Iterations,
	}, nil
}

// Search is the search counterpart of Sort.
func Search(a algo.SearchAlgorithm, records []common.Record, key algo.Key, query string, iterations int) (Bundle, error) {
	res, err := algo.Search(a, records, key, query)
	if err != nil {
		return Bundle{}, err
	}
	// The fallback diagnostic was logged by the functional run; the loop
	// below would repeat it on every iteration.
	if res.FellBack {
		a = algo.Linear
	}
	m := Measure(iterations, func() {
		algo.Search(a, common.CloneRecords(records), key, query)
	})
	return Bundle{
		Data:            res.Records,
		Found:           res.Found,
		ElapsedTimeMs:   FormatMillis(m.Average()),
		ComplexityLabel: res.Complexity,
		Algorithm:       a.String(),
		Iterations:      m.Iterations,
		FellBack:        res.FellBack,
	}, nil
}
