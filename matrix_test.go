package main

import (
	"errors"
	"math"
	"testing"
)

func TestNewMatrix(t *testing.T) {
	m, err := NewMatrix(3)
	if err != nil {
		t.Fatalf("NewMatrix(3): %v", err)
	}

	if m.N() != 3 {
		t.Errorf("expected dimension 3, got %d", m.N())
	}
	if len(m.Data()) != 9 {
		t.Errorf("expected 9 elements, got %d", len(m.Data()))
	}

	// Zero-initialized
	for i, v := range m.Data() {
		if v != 0 {
			t.Errorf("element %d: expected 0, got %f", i, v)
		}
	}

	// Row-major layout: (i,j) at i*n+j
	m.Set(1.5, 1, 2)
	if m.Data()[1*3+2] != 1.5 {
		t.Error("Set(1,2) did not write linear offset 5")
	}
	if v := m.At(1, 2); v != 1.5 {
		t.Errorf("At(1,2): expected 1.5, got %f", v)
	}
}

// TestNewMatrixInvalidSize verifies that non-positive dimensions are
// rejected with ErrInvalidSize before any allocation.
func TestNewMatrixInvalidSize(t *testing.T) {
	for _, n := range []int{0, -1, -512, maxDim + 1} {
		if _, err := NewMatrix(n); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("NewMatrix(%d): expected ErrInvalidSize, got %v", n, err)
		}
	}
}

func TestMatrixFill(t *testing.T) {
	m, err := NewMatrix(4)
	if err != nil {
		t.Fatal(err)
	}

	m.Fill(2.0)
	for i, v := range m.Data() {
		if v != 2.0 {
			t.Fatalf("element %d: expected 2.0, got %f", i, v)
		}
	}
}

func TestMatrixCloneEqual(t *testing.T) {
	m, err := NewMatrix(2)
	if err != nil {
		t.Fatal(err)
	}
	m.Set(1, 0, 0)
	m.Set(2, 0, 1)
	m.Set(3, 1, 0)
	m.Set(4, 1, 1)

	clone := m.Clone()
	if !m.Equal(clone) {
		t.Error("clone differs from original")
	}

	clone.Set(9, 1, 1)
	if m.Equal(clone) {
		t.Error("mutating clone affected original")
	}
	if m.At(1, 1) != 4 {
		t.Error("clone shares backing storage with original")
	}
}

// TestMemoryMB verifies the footprint formula: three n×n float32 matrices.
func TestMemoryMB(t *testing.T) {
	tests := []struct {
		n    int
		want float64
	}{
		{512, 3.0}, // (3*512*512*4)/(1024*1024)
		{1024, 12.0},
		{64, 3.0 * 64 * 64 * 4 / (1024 * 1024)},
	}

	for _, tt := range tests {
		if got := MemoryMB(tt.n); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("MemoryMB(%d): expected %f, got %f", tt.n, tt.want, got)
		}
	}
}
