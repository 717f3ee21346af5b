package algo

import (
	"errors"
	"fmt"
	"strings"

	"studentdb/pkg/common"
)

var ErrUnknownAlgorithm = errors.New("unknown algorithm")

type SortAlgorithm int

const (
	Bubble SortAlgorithm = iota
	Selection
	Insertion
	Merge
	Shell
)

type SearchAlgorithm int

const (
	Linear SearchAlgorithm = iota
	Binary
)

type sortFunc func([]common.Record, Key, Order) Result

type searchFunc func([]common.Record, Key, string) Result

var sortTable = []struct {
	name       string
	complexity string
	run        sortFunc
}{
	Bubble:    {"bubble", ComplexityQuadratic, BubbleSort},
	Selection: {"selection", ComplexityQuadratic, SelectionSort},
	Insertion: {"insertion", ComplexityQuadratic, InsertionSort},
	Merge:     {"merge", ComplexityLinearithmic, MergeSort},
	Shell:     {"shell", ComplexityShell, ShellSort},
}

var searchTable = []struct {
	name string
	run  searchFunc
}{
	Linear: {"linear", LinearSearch},
	Binary: {"binary", BinarySearch},
}

func SortAlgorithms() []SortAlgorithm {
	return []SortAlgorithm{Bubble, Selection, Insertion, Merge, Shell}
}

func SearchAlgorithms() []SearchAlgorithm {
	return []SearchAlgorithm{Linear, Binary}
}

func (a SortAlgorithm) valid() bool {
	return a >= 0 && int(a) < len(sortTable)
}

func (a SortAlgorithm) String() string {
	if !a.valid() {
		return fmt.Sprintf("SortAlgorithm(%d)", int(a))
	}
	return sortTable[a].name
}

// Complexity is the fixed label reported for a, without running it.
func (a SortAlgorithm) Complexity() string {
	if !a.valid() {
		return ""
	}
	return sortTable[a].complexity
}

func ParseSortAlgorithm(name string) (SortAlgorithm, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.TrimSuffix(n, "sort")
	for i, e := range sortTable {
		if e.name == n {
			return SortAlgorithm(i), nil
		}
	}
	return 0, fmt.Errorf("%w: sort %q", ErrUnknownAlgorithm, name)
}

func (a SearchAlgorithm) valid() bool {
	return a >= 0 && int(a) < len(searchTable)
}

func (a SearchAlgorithm) String() string {
	if !a.valid() {
		return fmt.Sprintf("SearchAlgorithm(%d)", int(a))
	}
	return searchTable[a].name
}

func ParseSearchAlgorithm(name string) (SearchAlgorithm, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "sequential" {
		n = "linear"
	}
	for i, e := range searchTable {
		if e.name == n {
			return SearchAlgorithm(i), nil
		}
	}
	return 0, fmt.Errorf("%w: search %q", ErrUnknownAlgorithm, name)
}

// Sort runs a once over a copy of records.
func Sort(a SortAlgorithm, records []common.Record, key Key, order Order) (Result, error) {
	if !a.valid() {
		return Result{}, fmt.Errorf("%w: %v", ErrUnknownAlgorithm, a)
	}
	if !key.Valid() {
		return Result{}, fmt.Errorf("sort: unknown key %q", key)
	}
	return sortTable[a].run(records, key, order), nil
}

// Search runs a once. records is only read.
func Search(a SearchAlgorithm, records []common.Record, key Key, query string) (Result, error) {
	if !a.valid() {
		return Result{}, fmt.Errorf("%w: %v", ErrUnknownAlgorithm, a)
	}
	if !key.Valid() {
		return Result{}, fmt.Errorf("search: unknown key %q", key)
	}
	return searchTable[a].run(records, key, query), nil
}
