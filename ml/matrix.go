package ml

import (
	"fmt"
	"math"

	"github.com/b0tShaman/neuro-bench/data"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Matrix represents a dense row-major matrix with a flat data slice.
// dense is a gonum view over the same backing array.
type Matrix struct {
	rows, cols int
	data       []float64
	dense      *mat.Dense
}

// -------- CONSTRUCTORS ------- //
func NewMatrix(rows, cols int) *Matrix {
	data := make([]float64, rows*cols)
	return &Matrix{
		rows:  rows,
		cols:  cols,
		data:  data,
		dense: mat.NewDense(rows, cols, data),
	}
}

func NewMatrixFromSlice(rows, cols int, data []float64) *Matrix {
	if len(data) != rows*cols {
		panic("Slice length mismatch")
	}

	return &Matrix{
		rows:  rows,
		cols:  cols,
		data:  data,
		dense: mat.NewDense(rows, cols, data),
	}
}

// ------- MATRIX METHODS ------ //
func (m *Matrix) Rows() int { return m.rows }
func (m *Matrix) Cols() int { return m.cols }

// Data returns the backing slice, not a copy.
func (m *Matrix) Data() []float64 { return m.data }

// Dense returns the gonum view sharing m's storage.
func (m *Matrix) Dense() *mat.Dense { return m.dense }

func (m *Matrix) At(r, c int) float64 {
	return m.data[r*m.cols+c]
}

func (m *Matrix) Reset() {
	for i := range m.data {
		m.data[i] = 0.0
	}
}

// FillShared writes one draw per linear index into both a and b, so the two
// matrices end up element-wise identical.
func FillShared(a, b *Matrix, u data.Uniform) {
	if len(a.data) != len(b.data) {
		panic("Shape mismatch in FillShared")
	}
	data.FillUniform(a.data, u)
	copy(b.data, a.data)
}

// ------ UTILITY FUNCTIONS ------

// MatMul computes out = a*b with the textbook i/j/k loop: row i of a against
// column j of b, accumulated into a scalar and stored once per cell.
// No blocking or transposition. The float64 conversion rounds each product
// before the add, so the result is identical on platforms with FMA.
func MatMul(a, b, out *Matrix) {
	if a.cols != b.rows || out.rows != a.rows || out.cols != b.cols {
		panic("Shape mismatch in MatMul")
	}
	n, m, p := a.rows, a.cols, b.cols
	for i := 0; i < n; i++ {
		row := i * m
		for j := 0; j < p; j++ {
			sum := 0.0
			for k := 0; k < m; k++ {
				sum += float64(a.data[row+k] * b.data[k*p+j])
			}
			out.data[i*p+j] = sum
		}
	}
}

// MatMulBLAS computes out = a*b through gonum. Used as an independent
// reference for MatMul.
func MatMulBLAS(a, b, out *Matrix) {
	out.dense.Mul(a.dense, b.dense)
}

// MaxAbsDiff returns the largest element-wise |a-b|.
func MaxAbsDiff(a, b *Matrix) float64 {
	if len(a.data) != len(b.data) {
		panic("Shape mismatch in MaxAbsDiff")
	}
	return floats.Distance(a.data, b.data, math.Inf(1))
}

// VerifyMatMul recomputes a*b with gonum and compares it against out.
// It returns the maximum deviation found.
func VerifyMatMul(a, b, out *Matrix, tol float64) (float64, error) {
	ref := NewMatrix(out.rows, out.cols)
	MatMulBLAS(a, b, ref)
	dev := MaxAbsDiff(out, ref)
	if dev > tol || math.IsNaN(dev) {
		return dev, fmt.Errorf("matmul deviates from reference by %g (tolerance %g)", dev, tol)
	}
	return dev, nil
}
