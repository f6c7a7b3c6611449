package mem

import (
	"math/rand"
	"sort"
	"testing"
)

func intCmp(a, b int) int { return a - b }

func TestStableSortRandom(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for trial := 0; trial < 20; trial++ {
		n := r.Intn(500)
		data := make([]int, n)
		for i := range data {
			data[i] = r.Intn(50)
		}
		want := append([]int(nil), data...)
		sort.Ints(want)

		StableSort(data, intCmp)
		for i := range data {
			if data[i] != want[i] {
				t.Fatalf("trial %d: mismatch at %d: got %v want %v", trial, i, data, want)
			}
		}
	}
}

func TestStableSortPreservesOrderOfEquals(t *testing.T) {
	type pair struct{ key, seq int }
	data := []pair{
		{1, 0}, {1, 1}, {0, 2}, {1, 3}, {0, 4}, {1, 5},
	}
	StableSort(data, func(a, b pair) int { return a.key - b.key })

	var prevKey, prevSeq = -1, -1
	for _, p := range data {
		if p.key < prevKey {
			t.Fatalf("not sorted: %v", data)
		}
		if p.key == prevKey && p.seq < prevSeq {
			t.Fatalf("not stable: %v", data)
		}
		prevKey, prevSeq = p.key, p.seq
	}
}

func TestStableSortAlreadySorted(t *testing.T) {
	data := make([]int, 1000)
	for i := range data {
		data[i] = i
	}
	StableSort(data, intCmp)
	for i := range data {
		if data[i] != i {
			t.Fatalf("already-sorted input corrupted at %d", i)
		}
	}
}

func TestStableSortDescending(t *testing.T) {
	n := 200
	data := make([]int, n)
	for i := range data {
		data[i] = n - i
	}
	StableSort(data, intCmp)
	for i := 1; i < n; i++ {
		if data[i-1] > data[i] {
			t.Fatalf("descending input not sorted: %v", data)
		}
	}
}

func TestStableSortEmptyAndSingle(t *testing.T) {
	var empty []int
	StableSort(empty, intCmp)

	single := []int{42}
	StableSort(single, intCmp)
	if single[0] != 42 {
		t.Fatalf("single-element sort mutated value")
	}
}
