// Package summator computes the sumset {a+b : a in A, b in B} of two sets
// of non-negative integers.
//
// Merging two distributions in the Berend-Zacker algorithm reduces to many
// sumset computations over small integer sets. [FFT] multiplies the
// indicator polynomials of both sets with a real FFT, which keeps the cost
// near-linear in the largest element. [Direct] enumerates all pairs and is
// used for small operands and as a test oracle.
package summator

import (
	"math"
	"math/bits"
	"slices"
	"sync"

	"gonum.org/v1/gonum/dsp/fourier"
)

// PairwiseSummer computes sumsets.
//
// Inputs must be non-negative; they need not be sorted or unique. The
// result is sorted ascending without duplicates. Empty input on either
// side yields an empty result. Implementations are safe for concurrent use.
type PairwiseSummer interface {
	Sums(a, b []int) []int
}

// Direct enumerates every pair.
type Direct struct{}

// Sums implements [PairwiseSummer].
func (Direct) Sums(a, b []int) []int {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	maxA, maxB := slices.Max(a), slices.Max(b)
	seen := make([]bool, maxA+maxB+1)
	for _, x := range a {
		for _, y := range b {
			seen[x+y] = true
		}
	}
	return collect(seen)
}

// DefaultDirectThreshold is the pair count at or below which [FFT] falls
// back to direct enumeration.
const DefaultDirectThreshold = 1024

// FFT computes sumsets by convolving indicator vectors.
type FFT struct {
	// DirectThreshold overrides DefaultDirectThreshold when positive. A
	// negative value disables the fallback.
	DirectThreshold int

	mu    sync.Mutex
	plans map[int]*sync.Pool
}

// NewFFT returns an FFT summer with the default direct-enumeration
// threshold.
func NewFFT() *FFT {
	return &FFT{}
}

// Sums implements [PairwiseSummer].
func (f *FFT) Sums(a, b []int) []int {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	if len(a)*len(b) <= f.threshold() {
		return Direct{}.Sums(a, b)
	}

	maxA, maxB := slices.Max(a), slices.Max(b)
	n := nextPow2(maxA + maxB + 1)

	pool := f.pool(n)
	plan := pool.Get().(*fourier.FFT)
	defer pool.Put(plan)

	seqA := make([]float64, n)
	for _, x := range a {
		seqA[x] = 1
	}
	seqB := make([]float64, n)
	for _, y := range b {
		seqB[y] = 1
	}

	ca := plan.Coefficients(nil, seqA)
	cb := plan.Coefficients(nil, seqB)
	for i := range ca {
		ca[i] *= cb[i]
	}
	product := plan.Sequence(seqA, ca)

	seen := make([]bool, maxA+maxB+1)
	scale := float64(n)
	for i := range seen {
		// Coefficients count the pairs summing to i.
		seen[i] = math.Round(product[i]/scale) >= 1
	}
	return collect(seen)
}

func (f *FFT) threshold() int {
	switch {
	case f.DirectThreshold > 0:
		return f.DirectThreshold
	case f.DirectThreshold < 0:
		return 0
	default:
		return DefaultDirectThreshold
	}
}

// pool returns the plan pool for length n. A fourier.FFT holds scratch
// space and is not safe for concurrent use, so plans are pooled per length.
func (f *FFT) pool(n int) *sync.Pool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.plans == nil {
		f.plans = make(map[int]*sync.Pool)
	}
	p, ok := f.plans[n]
	if !ok {
		p = &sync.Pool{New: func() any { return fourier.NewFFT(n) }}
		f.plans[n] = p
	}
	return p
}

func nextPow2(n int) int {
	if n <= 1 {
		return 2
	}
	return 1 << bits.Len(uint(n-1))
}

func collect(seen []bool) []int {
	var out []int
	for i, ok := range seen {
		if ok {
			out = append(out, i)
		}
	}
	return out
}
