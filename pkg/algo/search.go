package algo

import (
	"log"
	"math"
	"strconv"
	"strings"

	"studentdb/pkg/common"
)

// LinearSearch collects every record whose key text contains query,
// case-insensitively.
func LinearSearch(records []common.Record, key Key, query string) Result {
	q := strings.ToLower(query)
	matches := make([]common.Record, 0)
	for _, r := range records {
		if strings.Contains(text(r, key), q) {
			matches = append(matches, r)
		}
	}
	return Result{Records: matches, Found: len(matches) > 0, Complexity: ComplexityLinear}
}

// BinarySearch routes by key. Only id and name have a binary variant; any
// other key is answered by LinearSearch and the result is marked FellBack.
func BinarySearch(records []common.Record, key Key, query string) Result {
	switch key {
	case KeyID:
		return BinarySearchByID(records, query)
	case KeyName:
		return BinarySearchByName(records, query)
	}
	log.Printf("[ALGO] binary search supports id or name only, falling back to linear search for key %q", key)
	res := LinearSearch(records, key, query)
	res.FellBack = true
	return res
}

// BinarySearchByID sorts its own copy ascending by id and looks for an exact
// integer match. The sort is not counted in the reported complexity.
func BinarySearchByID(records []common.Record, query string) Result {
	sorted := MergeSort(records, KeyID, Ascending).Records
	target := parseIntPrefix(query)

	left, right := 0, len(sorted)-1
	for left <= right {
		mid := (left + right) / 2
		current := parseIntPrefix(string(sorted[mid].ID))
		if current == target {
			return Result{Records: []common.Record{sorted[mid]}, Found: true, Complexity: ComplexityLog}
		} else if current < target {
			left = mid + 1
		} else {
			right = mid - 1
		}
	}
	return Result{Records: []common.Record{}, Complexity: ComplexityLog}
}

// BinarySearchByName sorts its own copy ascending by lower-cased name, then
// descends checking for a prefix match before comparing. The first prefix
// hit on the descent is returned, which is not necessarily the
// lexicographically smallest match.
func BinarySearchByName(records []common.Record, query string) Result {
	sorted := MergeSort(records, KeyName, Ascending).Records
	target := strings.ToLower(query)

	left, right := 0, len(sorted)-1
	for left <= right {
		mid := (left + right) / 2
		current := strings.ToLower(sorted[mid].Name)
		if strings.HasPrefix(current, target) {
			return Result{Records: []common.Record{sorted[mid]}, Found: true, Complexity: ComplexityLogPlusSort}
		} else if current < target {
			left = mid + 1
		} else {
			right = mid - 1
		}
	}
	return Result{Records: []common.Record{}, Complexity: ComplexityLogPlusSort}
}

// parseIntPrefix reads an optional sign and the leading run of digits,
// ignoring whatever follows. Input without leading digits yields NaN.
func parseIntPrefix(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
