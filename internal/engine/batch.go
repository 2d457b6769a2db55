package engine

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/unsei/internal/ir"
)

// DefaultWorkers is the batch concurrency when Batch.Workers is unset.
const DefaultWorkers = 4

// chunkPerWorker sets how many dates each worker computes before the
// batch flushes results to the caller in date order.
const chunkPerWorker = 64

// Observer receives one callback per computed date.
// Implementations must be safe for concurrent use.
type Observer interface {
	Computed(r ir.FortuneResult, elapsed time.Duration)
	Failed(date ir.CalendarDate, err error)
}

// ComputeFunc computes a single date. Compute is the default.
type ComputeFunc func(ir.CalendarDate) (ir.FortuneResult, error)

// Batch precomputes a range of dates concurrently.
//
// Dates are computed by up to Workers goroutines, but results reach the
// caller's callback strictly in date order and from a single goroutine.
// The first failure cancels the remaining work and is returned.
type Batch struct {
	Workers  int
	Observer Observer

	// Compute overrides the per-date computation (tests).
	Compute ComputeFunc
}

// Run computes every date in [from, to] and passes each result to fn.
func (b *Batch) Run(ctx context.Context, from, to ir.CalendarDate, fn func(ir.FortuneResult) error) error {
	if to.Compare(from) < 0 {
		return fmt.Errorf("batch: range end %s is before start %s", to, from)
	}

	workers := b.Workers
	if workers < 1 {
		workers = DefaultWorkers
	}
	compute := b.Compute
	if compute == nil {
		compute = Compute
	}

	total := from.DaysUntil(to) + 1
	size := min(workers*chunkPerWorker, total)
	results := make([]ir.FortuneResult, size)

	for start := 0; start < total; start += size {
		if err := ctx.Err(); err != nil {
			return err
		}
		n := min(size, total-start)

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for i := 0; i < n; i++ {
			i := i
			date := from.AddDays(start + i)
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				began := time.Now()
				r, err := compute(date)
				if err != nil {
					b.failed(date, err)
					return err
				}
				b.computed(r, time.Since(began))
				results[i] = r
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		for _, r := range results[:n] {
			if err := fn(r); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *Batch) computed(r ir.FortuneResult, d time.Duration) {
	if b.Observer != nil {
		b.Observer.Computed(r, d)
	}
}

func (b *Batch) failed(date ir.CalendarDate, err error) {
	if b.Observer != nil {
		b.Observer.Failed(date, err)
	}
}
