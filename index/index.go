// Package index answers k-nearest-neighbor queries over a feature matrix
// using Euclidean distance.
package index

import (
	"container/heap"
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// DefaultK is the neighbor count every recommendation mode uses.
const DefaultK = 10

var (
	// ErrNotBuilt is returned when querying an index that has no data.
	ErrNotBuilt = errors.New("index: not built")
	// ErrDimension is returned for query vectors of the wrong length.
	ErrDimension = errors.New("index: dimension mismatch")
)

// Neighbor is one query result. Row is a catalog row position.
type Neighbor struct {
	Row      int     `json:"row"`
	Distance float64 `json:"distance"`
}

// Index is a brute-force exact index. It never changes after New, so it is
// safe to query from many goroutines.
type Index struct {
	data *mat.Dense
	k    int
}

// New indexes the rows of data. k is clamped to [1, rows].
func New(data *mat.Dense, k int) *Index {
	if data == nil || data.IsEmpty() {
		return &Index{}
	}
	rows, _ := data.Dims()
	if k <= 0 {
		k = DefaultK
	}
	if k > rows {
		k = rows
	}
	return &Index{data: data, k: k}
}

func (ix *Index) K() int {
	if ix == nil {
		return 0
	}
	return ix.k
}

func (ix *Index) Len() int {
	if ix == nil || ix.data == nil {
		return 0
	}
	r, _ := ix.data.Dims()
	return r
}

// Query returns the k rows closest to vec, nearest first. Equal distances
// are ordered by row. A vector equal to an indexed row comes back first at
// distance 0, so callers that query with a catalog row must drop it themselves.
func (ix *Index) Query(vec []float64) ([]Neighbor, error) {
	if ix == nil || ix.data == nil {
		return nil, ErrNotBuilt
	}
	rows, cols := ix.data.Dims()
	if len(vec) != cols {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDimension, len(vec), cols)
	}

	h := make(maxHeap, 0, ix.k+1)
	for i := 0; i < rows; i++ {
		d := floats.Distance(ix.data.RawRowView(i), vec, 2)
		if len(h) < ix.k {
			heap.Push(&h, Neighbor{Row: i, Distance: d})
			continue
		}
		if closer(Neighbor{Row: i, Distance: d}, h[0]) {
			h[0] = Neighbor{Row: i, Distance: d}
			heap.Fix(&h, 0)
		}
	}

	out := []Neighbor(h)
	sort.Slice(out, func(a, b int) bool { return closer(out[a], out[b]) })
	return out, nil
}

func closer(a, b Neighbor) bool {
	if a.Distance != b.Distance {
		return a.Distance < b.Distance
	}
	return a.Row < b.Row
}

// maxHeap keeps the current k best with the worst on top.
type maxHeap []Neighbor

func (h maxHeap) Len() int           { return len(h) }
func (h maxHeap) Less(i, j int) bool { return closer(h[j], h[i]) }
func (h maxHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *maxHeap) Push(x any)        { *h = append(*h, x.(Neighbor)) }
func (h *maxHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
