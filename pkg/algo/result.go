package algo

import "studentdb/pkg/common"

const (
	ComplexityLinear       = "O(n)"
	ComplexityLog          = "O(log n)"
	ComplexityLogPlusSort  = "O(log n) + Sort"
	ComplexityQuadratic    = "O(n²)"
	ComplexityLinearithmic = "O(n log n)"
	ComplexityShell        = "O(n (log n)²)"
)

// Result is what a single algorithm run produces. Binary searches return at
// most one record; linear search and sorts may return many.
type Result struct {
	Records    []common.Record
	Found      bool
	Complexity string
	// FellBack is set when a binary search was asked for a key it cannot
	// order and linear search ran instead.
	FellBack bool
}
