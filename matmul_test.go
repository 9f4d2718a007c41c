package main

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// newRandMatrix builds an n×n matrix with deterministic pseudo-random values
// in [0, 1).
func newRandMatrix(t testing.TB, n int, seed int64) *Matrix {
	t.Helper()

	m, err := NewMatrix(n)
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(seed))
	data := m.Data()
	for i := range data {
		data[i] = rng.Float32()
	}
	return m
}

// newBenchMatrices builds the benchmark's constant inputs: A all ones,
// B all twos, C zeroed.
func newBenchMatrices(t testing.TB, n int) (a, b, c *Matrix) {
	t.Helper()

	a, b, c, err := allocBenchMatrices(n)
	if err != nil {
		t.Fatal(err)
	}
	a.Fill(1.0)
	b.Fill(2.0)
	c.Fill(0.0)
	return a, b, c
}

// matricesEqualApprox compares element-wise with a relative tolerance.
func matricesEqualApprox(a, b *Matrix, tol float64) bool {
	if a.N() != b.N() {
		return false
	}
	ad, bd := a.Data(), b.Data()
	for i := range ad {
		x, y := float64(ad[i]), float64(bd[i])
		diff := math.Abs(x - y)
		scale := math.Max(math.Abs(x), math.Abs(y))
		if scale < 1 {
			scale = 1
		}
		if diff/scale > tol {
			return false
		}
	}
	return true
}

// TestMatMulKnownValues checks the naive kernel against hand-computed
// products.
func TestMatMulKnownValues(t *testing.T) {
	a, err := NewMatrix(2)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewMatrix(2)
	if err != nil {
		t.Fatal(err)
	}
	c, err := NewMatrix(2)
	if err != nil {
		t.Fatal(err)
	}

	// A = [1 2; 3 4], B = [5 6; 7 8]
	a.Set(1, 0, 0)
	a.Set(2, 0, 1)
	a.Set(3, 1, 0)
	a.Set(4, 1, 1)
	b.Set(5, 0, 0)
	b.Set(6, 0, 1)
	b.Set(7, 1, 0)
	b.Set(8, 1, 1)

	MatMul(a, b, c)

	// C[0,0] = 1*5 + 2*7 = 19
	// C[0,1] = 1*6 + 2*8 = 22
	// C[1,0] = 3*5 + 4*7 = 43
	// C[1,1] = 3*6 + 4*8 = 50
	expected := [2][2]float32{{19, 22}, {43, 50}}

	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if v := c.At(i, j); v != expected[i][j] {
				t.Errorf("C[%d,%d]: expected %f, got %f", i, j, expected[i][j], v)
			}
		}
	}
}

// TestMatMulBenchmarkInputs verifies the benchmark's correctness property:
// with A all 1.0 and B all 2.0, every element of C is exactly 2n. Each
// product is exactly 2.0 and the running sums are small even integers, so
// no rounding ever occurs in float32 at these sizes and exact equality is
// safe for every kernel regardless of its summation order.
func TestMatMulBenchmarkInputs(t *testing.T) {
	sizes := []int{1, 7, 16, 64, 100}

	for _, size := range sizes {
		for _, s := range AllStrategies {
			t.Run(fmt.Sprintf("%s_n%d", s, size), func(t *testing.T) {
				a, b, c := newBenchMatrices(t, size)

				MatMulWithStrategy(a, b, c, s, DefaultComputeConfig())

				want := float32(size) * 2.0
				for i, v := range c.Data() {
					if v != want {
						t.Fatalf("C[%d]: expected exactly %f, got %f", i, want, v)
					}
				}
			})
		}
	}
}

// TestMatMulStrategiesAgree cross-checks every kernel against the naive
// baseline on random inputs. The parallel kernel preserves the naive
// per-element accumulation order, so it must match bitwise; blocked and
// blas reassociate the sum and get a tolerance.
func TestMatMulStrategiesAgree(t *testing.T) {
	sizes := []int{16, 33, 64, 128}

	for _, size := range sizes {
		a := newRandMatrix(t, size, 1)
		b := newRandMatrix(t, size, 2)

		want, err := NewMatrix(size)
		if err != nil {
			t.Fatal(err)
		}
		MatMul(a, b, want)

		t.Run(fmt.Sprintf("parallel_n%d", size), func(t *testing.T) {
			got, err := NewMatrix(size)
			if err != nil {
				t.Fatal(err)
			}
			MatMulWithStrategy(a, b, got, StrategyParallel, DefaultComputeConfig())
			if !want.Equal(got) {
				t.Error("parallel result is not bitwise identical to naive")
			}
		})

		for _, s := range []Strategy{StrategyBlocked, StrategyBLAS} {
			t.Run(fmt.Sprintf("%s_n%d", s, size), func(t *testing.T) {
				got, err := NewMatrix(size)
				if err != nil {
					t.Fatal(err)
				}
				MatMulWithStrategy(a, b, got, s, DefaultComputeConfig())
				if !matricesEqualApprox(want, got, 1e-4) {
					t.Errorf("%s result differs from naive beyond tolerance", s)
				}
			})
		}
	}
}

// TestMatMulAgainstReference checks the naive kernel against gonum's float64
// mat.Dense as an independent oracle.
func TestMatMulAgainstReference(t *testing.T) {
	size := 48
	a := newRandMatrix(t, size, 3)
	b := newRandMatrix(t, size, 4)

	c, err := NewMatrix(size)
	if err != nil {
		t.Fatal(err)
	}
	MatMul(a, b, c)

	da := mat.NewDense(size, size, nil)
	db := mat.NewDense(size, size, nil)
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			da.Set(i, j, float64(a.At(i, j)))
			db.Set(i, j, float64(b.At(i, j)))
		}
	}

	var ref mat.Dense
	ref.Mul(da, db)

	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			got := float64(c.At(i, j))
			want := ref.At(i, j)
			if math.Abs(got-want) > 1e-3 {
				t.Fatalf("C[%d,%d]: float64 reference %f, got %f", i, j, want, got)
			}
		}
	}
}

// TestMatMulIdempotent verifies the kernel is a pure function of its inputs:
// running it twice into separate outputs yields identical results, and the
// inputs are untouched.
func TestMatMulIdempotent(t *testing.T) {
	size := 32
	a := newRandMatrix(t, size, 5)
	b := newRandMatrix(t, size, 6)
	aCopy := a.Clone()
	bCopy := b.Clone()

	c1, err := NewMatrix(size)
	if err != nil {
		t.Fatal(err)
	}
	c2, err := NewMatrix(size)
	if err != nil {
		t.Fatal(err)
	}

	MatMul(a, b, c1)
	MatMul(a, b, c2)

	if !c1.Equal(c2) {
		t.Error("two runs on the same inputs produced different outputs")
	}
	if !a.Equal(aCopy) || !b.Equal(bCopy) {
		t.Error("multiply modified its inputs")
	}
}

// TestMatMulOverwritesOutput verifies the benchmark's buffer-reuse pattern:
// a warm-up result left in C is fully overwritten by the next multiply.
func TestMatMulOverwritesOutput(t *testing.T) {
	size := 16
	a := newRandMatrix(t, size, 7)
	b := newRandMatrix(t, size, 8)

	fresh, err := NewMatrix(size)
	if err != nil {
		t.Fatal(err)
	}
	MatMul(a, b, fresh)

	dirty, err := NewMatrix(size)
	if err != nil {
		t.Fatal(err)
	}
	dirty.Fill(999)
	MatMul(a, b, dirty)

	if !fresh.Equal(dirty) {
		t.Error("stale output values leaked into the result")
	}
}

func TestParseStrategy(t *testing.T) {
	for _, s := range AllStrategies {
		got, err := ParseStrategy(s.String())
		if err != nil {
			t.Errorf("ParseStrategy(%q): %v", s.String(), err)
		}
		if got != s {
			t.Errorf("ParseStrategy(%q): expected %v, got %v", s.String(), s, got)
		}
	}

	if _, err := ParseStrategy("simd"); err == nil {
		t.Error("expected error for unknown strategy name")
	}
}

func BenchmarkMatMulStrategies(b *testing.B) {
	sizes := []int{128, 256, 512}

	for _, size := range sizes {
		x := newRandMatrix(b, size, 10)
		y := newRandMatrix(b, size, 11)
		out, err := NewMatrix(size)
		if err != nil {
			b.Fatal(err)
		}

		for _, s := range AllStrategies {
			b.Run(fmt.Sprintf("%s_%d", s, size), func(b *testing.B) {
				cfg := DefaultComputeConfig()
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					MatMulWithStrategy(x, y, out, s, cfg)
				}
			})
		}
	}
}
