package algo

import "studentdb/pkg/common"

// All sorts copy their input first; the caller's slice is never reordered.

// BubbleSort makes adjacent-swap passes, shrinking the unsorted suffix by one
// per pass, and stops after a pass with no swaps.
func BubbleSort(records []common.Record, key Key, order Order) Result {
	data := common.CloneRecords(records)
	n := len(data)
	for {
		swapped := false
		for i := 0; i < n-1; i++ {
			if ShouldSwap(Extract(data[i], key), Extract(data[i+1], key), order) {
				data[i], data[i+1] = data[i+1], data[i]
				swapped = true
			}
		}
		n--
		if !swapped {
			break
		}
	}
	return Result{Records: data, Complexity: ComplexityQuadratic}
}

// SelectionSort moves the extreme remaining element (min for ascending, max
// for descending) into each position in turn.
func SelectionSort(records []common.Record, key Key, order Order) Result {
	data := common.CloneRecords(records)
	n := len(data)
	for i := 0; i < n-1; i++ {
		extreme := i
		for j := i + 1; j < n; j++ {
			if ShouldSwap(Extract(data[extreme], key), Extract(data[j], key), order) {
				extreme = j
			}
		}
		if extreme != i {
			data[i], data[extreme] = data[extreme], data[i]
		}
	}
	return Result{Records: data, Complexity: ComplexityQuadratic}
}

func InsertionSort(records []common.Record, key Key, order Order) Result {
	data := common.CloneRecords(records)
	for i := 1; i < len(data); i++ {
		current := data[i]
		cv := Extract(current, key)
		j := i - 1
		for j >= 0 && ShouldSwap(Extract(data[j], key), cv, order) {
			data[j+1] = data[j]
			j--
		}
		data[j+1] = current
	}
	return Result{Records: data, Complexity: ComplexityQuadratic}
}

// MergeSort splits at floor(n/2). When neither side must come first the
// right element is taken, so equal keys emit the right half's record first.
func MergeSort(records []common.Record, key Key, order Order) Result {
	data := mergeSortRecursive(common.CloneRecords(records), key, order)
	return Result{Records: data, Complexity: ComplexityLinearithmic}
}

func mergeSortRecursive(data []common.Record, key Key, order Order) []common.Record {
	if len(data) <= 1 {
		return data
	}
	mid := len(data) / 2
	left := mergeSortRecursive(data[:mid], key, order)
	right := mergeSortRecursive(data[mid:], key, order)
	return merge(left, right, key, order)
}

func merge(left, right []common.Record, key Key, order Order) []common.Record {
	out := make([]common.Record, 0, len(left)+len(right))
	li, ri := 0, 0
	for li < len(left) && ri < len(right) {
		// Left goes first only when the right value would have to swap past it.
		if ShouldSwap(Extract(right[ri], key), Extract(left[li], key), order) {
			out = append(out, left[li])
			li++
		} else {
			out = append(out, right[ri])
			ri++
		}
	}
	out = append(out, left[li:]...)
	return append(out, right[ri:]...)
}

// ShellSort runs gapped insertion sort over the gaps n/2, n/4, ..., 1.
func ShellSort(records []common.Record, key Key, order Order) Result {
	data := common.CloneRecords(records)
	n := len(data)
	for gap := n / 2; gap > 0; gap /= 2 {
		for i := gap; i < n; i++ {
			temp := data[i]
			tv := Extract(temp, key)
			j := i
			for ; j >= gap && ShouldSwap(Extract(data[j-gap], key), tv, order); j -= gap {
				data[j] = data[j-gap]
			}
			data[j] = temp
		}
	}
	return Result{Records: data, Complexity: ComplexityShell}
}
