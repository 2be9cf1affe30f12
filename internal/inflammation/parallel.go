package inflammation

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultParallelThreshold is the cell count below which work stays on the
// calling goroutine.
const DefaultParallelThreshold = 1 << 16

// Option tunes how an operation schedules its work. Options never change results.
type Option func(*options)

type options struct {
	workers   int
	threshold int
}

// WithWorkers caps the number of goroutines used for large matrices.
// Zero or a negative value means runtime.GOMAXPROCS(0); one disables fan-out.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithParallelThreshold sets the minimum number of cells before work fans out.
func WithParallelThreshold(cells int) Option {
	return func(o *options) { o.threshold = cells }
}

func buildOptions(opts []Option) options {
	o := options{threshold: DefaultParallelThreshold}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	if o.workers <= 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	return o
}

// forEach runs fn(i) for i in [0, n). Each index is handled by exactly one
// call, so per-index results do not depend on scheduling.
func (o options) forEach(n, cells int, fn func(i int)) {
	if o.workers <= 1 || cells < o.threshold || n < 2 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	var g errgroup.Group
	g.SetLimit(o.workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	_ = g.Wait()
}
