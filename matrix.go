package main

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSize indicates a non-positive or absurdly large matrix
	// dimension. Rejected before any allocation happens.
	ErrInvalidSize = errors.New("matrix: invalid size")

	// ErrAllocationFailure indicates a buffer request the runtime could
	// not satisfy.
	ErrAllocationFailure = errors.New("matrix: allocation failure")
)

// maxDim caps the matrix dimension so n*n can never overflow and a single
// mistyped size cannot request petabytes. 3 matrices at the cap are already
// ~48 TB, far beyond anything this benchmark is meant to measure.
const maxDim = 1 << 21

// Matrix is a dense square n×n matrix of float32 values stored in row-major
// order: element (i, j) lives at data[i*n+j].
//
// Matrix is not safe for concurrent use. The benchmark kernels coordinate
// their own access (disjoint output rows per worker).
type Matrix struct {
	n    int
	data []float32
}

// NewMatrix allocates a zeroed n×n matrix. It returns ErrInvalidSize for
// n <= 0 (or beyond maxDim) before allocating anything, and
// ErrAllocationFailure when the buffer request cannot be satisfied. Nothing
// downstream ever sees a nil or short buffer.
func NewMatrix(n int) (*Matrix, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: dimension must be positive, got %d", ErrInvalidSize, n)
	}
	if n > maxDim {
		return nil, fmt.Errorf("%w: dimension %d exceeds maximum %d", ErrInvalidSize, n, maxDim)
	}

	data, err := allocFloat32(n * n)
	if err != nil {
		return nil, fmt.Errorf("%w: %d x %d float32 buffer", ErrAllocationFailure, n, n)
	}

	return &Matrix{n: n, data: data}, nil
}

// allocFloat32 allocates a float32 slice, converting the runtime's
// allocation panic into an error. A hard OOM kill by the host cannot be
// intercepted; this catches the cases Go reports (len out of range,
// out of memory panics from makeslice).
func allocFloat32(size int) (data []float32, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = ErrAllocationFailure
		}
	}()
	return make([]float32, size), nil
}

// N returns the matrix dimension.
func (m *Matrix) N() int {
	return m.n
}

// Data returns the backing slice. Kernels index it directly; the row-major
// invariant (element (i,j) at i*n+j) is part of the contract.
func (m *Matrix) Data() []float32 {
	return m.data
}

// At returns element (i, j).
func (m *Matrix) At(i, j int) float32 {
	return m.data[i*m.n+j]
}

// Set stores v at element (i, j).
func (m *Matrix) Set(v float32, i, j int) {
	m.data[i*m.n+j] = v
}

// Fill sets every element to v.
func (m *Matrix) Fill(v float32) {
	for i := range m.data {
		m.data[i] = v
	}
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	data := make([]float32, len(m.data))
	copy(data, m.data)
	return &Matrix{n: m.n, data: data}
}

// Equal reports whether two matrices have the same dimension and bitwise
// identical elements.
func (m *Matrix) Equal(o *Matrix) bool {
	if m.n != o.n {
		return false
	}
	for i := range m.data {
		if m.data[i] != o.data[i] {
			return false
		}
	}
	return true
}

// MemoryMB returns the estimated working-set size in MB for a full benchmark
// run at dimension n: three n×n matrices, 4 bytes per float32.
func MemoryMB(n int) float64 {
	return (3.0 * float64(n) * float64(n) * 4.0) / (1024 * 1024)
}
