package summator

import (
	"math/rand/v2"
	"slices"
	"sync"
	"testing"
)

func TestSums(t *testing.T) {
	tests := []struct {
		name string
		a, b []int
		want []int
	}{
		{"empty left", nil, []int{1}, nil},
		{"empty right", []int{1}, nil, nil},
		{"singletons", []int{2}, []int{3}, []int{5}},
		{"zero", []int{0}, []int{0, 4}, []int{0, 4}},
		{"overlapping", []int{0, 1, 2}, []int{0, 1}, []int{0, 1, 2, 3}},
		{"gaps", []int{0, 10}, []int{0, 100}, []int{0, 10, 100, 110}},
		{"unsorted duplicates", []int{3, 1, 3}, []int{2, 2}, []int{3, 5}},
	}

	summers := map[string]PairwiseSummer{
		"direct":  Direct{},
		"fft":     &FFT{DirectThreshold: -1},
		"default": NewFFT(),
	}

	for name, s := range summers {
		for _, tt := range tests {
			t.Run(name+"/"+tt.name, func(t *testing.T) {
				got := s.Sums(tt.a, tt.b)
				if !slices.Equal(got, tt.want) {
					t.Errorf("Sums(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
				}
			})
		}
	}
}

func TestFFTMatchesDirect(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	fft := &FFT{DirectThreshold: -1}

	for i := 0; i < 200; i++ {
		a := randomSet(rng, 1+rng.IntN(40), 1+rng.IntN(300))
		b := randomSet(rng, 1+rng.IntN(40), 1+rng.IntN(300))
		want := Direct{}.Sums(a, b)
		if got := fft.Sums(a, b); !slices.Equal(got, want) {
			t.Fatalf("FFT.Sums(%v, %v) = %v, want %v", a, b, got, want)
		}
	}
}

func TestFFTConcurrent(t *testing.T) {
	fft := &FFT{DirectThreshold: -1}
	a := []int{0, 3, 7, 8}
	b := []int{1, 2, 30}
	want := Direct{}.Sums(a, b)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := fft.Sums(a, b); !slices.Equal(got, want) {
				t.Errorf("Sums() = %v, want %v", got, want)
			}
		}()
	}
	wg.Wait()
}

func TestNextPow2(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 2}, {1, 2}, {2, 2}, {3, 4}, {4, 4}, {5, 8}, {1000, 1024},
	}
	for _, tt := range tests {
		if got := nextPow2(tt.in); got != tt.want {
			t.Errorf("nextPow2(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func randomSet(rng *rand.Rand, k, limit int) []int {
	out := make([]int, k)
	for i := range out {
		out[i] = rng.IntN(limit)
	}
	return out
}

func BenchmarkSums(b *testing.B) {
	rng := rand.New(rand.NewPCG(3, 4))
	x := randomSet(rng, 200, 4000)
	y := randomSet(rng, 200, 4000)

	b.Run("direct", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			Direct{}.Sums(x, y)
		}
	})
	b.Run("fft", func(b *testing.B) {
		fft := NewFFT()
		for i := 0; i < b.N; i++ {
			fft.Sums(x, y)
		}
	})
}
