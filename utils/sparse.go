package utils

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"github.com/james-bowman/sparse/blas"
	"gonum.org/v1/gonum/mat"
)

/*
Triplets accumulates coordinate-format (row, column, value) entries bound for
a sparse matrix. Duplicate coordinates are allowed and are summed during the
conversion to CSR, so callers can scatter-add without merging.

The fixed form preallocates every slot up front so that concurrent writers can
fill disjoint slot ranges without coordination.
*/
type Triplets struct {
	rows, cols []int
	vals       []float64
}

func NewTriplets(capacity int) (t *Triplets) {
	t = &Triplets{
		rows: make([]int, 0, capacity),
		cols: make([]int, 0, capacity),
		vals: make([]float64, 0, capacity),
	}
	return
}

func NewTripletsFixed(n int) (t *Triplets) {
	t = &Triplets{
		rows: make([]int, n),
		cols: make([]int, n),
		vals: make([]float64, n),
	}
	return
}

func (t *Triplets) Append(i, j int, val float64) {
	t.rows = append(t.rows, i)
	t.cols = append(t.cols, j)
	t.vals = append(t.vals, val)
}

// Put writes one entry into a preallocated slot of a fixed Triplets.
func (t *Triplets) Put(slot, i, j int, val float64) {
	t.rows[slot] = i
	t.cols[slot] = j
	t.vals[slot] = val
}

func (t *Triplets) Len() int { return len(t.vals) }

func (t *Triplets) ToCSR(nr, nc int) (R CSR) {
	if len(t.rows) != len(t.cols) || len(t.rows) != len(t.vals) {
		err := fmt.Errorf("mismatched triplet storage: rows, cols, vals = %v, %v, %v",
			len(t.rows), len(t.cols), len(t.vals))
		panic(err)
	}
	coo := sparse.NewCOO(nr, nc, t.rows, t.cols, t.vals)
	R = CSR{M: coo.ToCSR()}
	return
}

type CSR struct {
	M *sparse.CSR
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m CSR) Dims() (r, c int)              { return m.M.Dims() }
func (m CSR) At(i, j int) float64           { return m.M.At(i, j) }
func (m CSR) T() mat.Matrix                 { return m.M.T() }
func (m CSR) RawMatrix() *blas.SparseMatrix { return m.M.RawMatrix() }
func (m CSR) Data() []float64 {
	return m.RawMatrix().Data
}

func (m CSR) NNZ() int { return m.M.NNZ() }

// DoNonZero visits stored entries in row-major order.
func (m CSR) DoNonZero(fn func(i, j int, v float64)) {
	m.M.DoNonZero(fn)
}
