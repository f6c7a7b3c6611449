package mem

// Cmp is a three-way comparator: negative if a < b, zero if equal,
// positive if a > b.
type Cmp[T any] func(a, b T) int

// StableSort performs an adaptive, in-place, natural-merge stable sort
// over data using cmp: ascending/descending runs are detected and
// extended in place, short runs are grown with a binary insertion sort,
// and adjacent runs are merged bottom-up using one scratch buffer of
// len(data) elements reused across merges. Natural runs make it the fast
// O(n) path on already-sorted or reverse-sorted input.
//
// It is used in place of sort.SliceStable because TLSF's fragmentation
// diagnostic (mem/tlsf.go) sorts a slice of a value type directly,
// without the allocation and interface dispatch overhead sort.Interface
// requires.
func StableSort[T any](data []T, cmp Cmp[T]) {
	n := len(data)
	if n < 2 {
		return
	}

	const minRun = 32
	scratch := make([]T, n)

	runStarts := make([]int, 0, n/minRun+1)
	i := 0
	for i < n {
		start := i
		i++
		if i < n {
			if cmp(data[i], data[i-1]) < 0 {
				// Descending run: extend then reverse in place.
				for i < n && cmp(data[i], data[i-1]) < 0 {
					i++
				}
				reverseStable(data[start:i], cmp)
			} else {
				// Ascending (or equal) run: extend.
				for i < n && cmp(data[i], data[i-1]) >= 0 {
					i++
				}
			}
		}
		// Grow short runs with binary insertion sort for adaptivity on
		// nearly-sorted input with small perturbations.
		end := start + minRun
		if end > n {
			end = n
		}
		if end > i {
			binaryInsertionSort(data[start:end], cmp)
			i = end
		}
		runStarts = append(runStarts, start)
	}
	runStarts = append(runStarts, n)

	// Bottom-up merge of adjacent runs until one remains. runStarts holds
	// k+1 boundaries for k runs (the last entry is the sentinel n).
	for len(runStarts) > 2 {
		next := make([]int, 0, len(runStarts)/2+1)
		next = append(next, runStarts[0])
		k := len(runStarts) - 1
		i := 0
		for i < k {
			if i+1 < k {
				lo, mid, hi := runStarts[i], runStarts[i+1], runStarts[i+2]
				mergeStable(data[lo:hi], mid-lo, scratch, cmp)
				next = append(next, hi)
				i += 2
			} else {
				next = append(next, runStarts[i+1])
				i++
			}
		}
		runStarts = next
	}
}

func reverseStable[T any](s []T, _ Cmp[T]) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func binaryInsertionSort[T any](s []T, cmp Cmp[T]) {
	for i := 1; i < len(s); i++ {
		key := s[i]
		lo, hi := 0, i
		for lo < hi {
			m := (lo + hi) / 2
			if cmp(key, s[m]) < 0 {
				hi = m
			} else {
				lo = m + 1
			}
		}
		copy(s[lo+1:i+1], s[lo:i])
		s[lo] = key
	}
}

// mergeStable merges s[:mid] and s[mid:] into s, using scratch (at least
// len(s) long) as working space, preserving stability (elements from the
// left run win ties).
func mergeStable[T any](s []T, mid int, scratch []T, cmp Cmp[T]) {
	left := scratch[:mid]
	copy(left, s[:mid])
	right := s[mid:]

	li, ri, out := 0, 0, 0
	for li < len(left) && ri < len(right) {
		if cmp(right[ri], left[li]) < 0 {
			s[out] = right[ri]
			ri++
		} else {
			s[out] = left[li]
			li++
		}
		out++
	}
	for li < len(left) {
		s[out] = left[li]
		li++
		out++
	}
	// Remaining right-side elements are already in place.
}
