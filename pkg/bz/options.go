package bz

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bwcolor/pkg/summator"
)

// DefaultParallelThreshold is the smallest subtree whose children are
// solved concurrently when parallel solving is enabled.
const DefaultParallelThreshold = 2048

// Option configures [Solve].
type Option func(*options)

type options struct {
	summer            summator.PairwiseSummer
	observer          Observer
	logger            *log.Logger
	parallel          bool
	parallelThreshold int
}

func defaultOptions() options {
	return options{
		summer:            summator.NewFFT(),
		observer:          NopObserver{},
		logger:            log.NewWithOptions(io.Discard, log.Options{}),
		parallelThreshold: DefaultParallelThreshold,
	}
}

// WithSummer replaces the FFT sumset computation.
func WithSummer(s summator.PairwiseSummer) Option {
	return func(o *options) {
		if s != nil {
			o.summer = s
		}
	}
}

// WithObserver installs an observer for separator, reduce and merge events.
// The observer must be safe for concurrent use when combined with
// [WithParallel].
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// WithParallel solves sibling subtrees concurrently.
func WithParallel(enabled bool) Option { return func(o *options) { o.parallel = enabled } }

// WithParallelThreshold sets the minimum subtree size for concurrent
// solving. Values below 1 keep the default.
func WithParallelThreshold(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.parallelThreshold = n
		}
	}
}

// WithLogger sets the logger that receives a debug summary of each solve.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
