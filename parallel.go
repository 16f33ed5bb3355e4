package goswitch

import (
	"context"
	"slices"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// AggregateTasks awaits all tasks concurrently and aggregates their results in
// input order.
func AggregateTasks[T, E any](tasks []Task[Result[T, E]], merge MergeFunc[E]) Task[Result[[]T, E]] {
	return AggregateParallel(tasks, len(tasks), merge)
}

// AggregateParallel awaits tasks with at most maxConcurrency of them in flight
// and aggregates their results. The aggregated successes keep input order
// regardless of completion order. maxConcurrency < 1 is treated as 1.
//
// The context bounds the whole run: once it is done no further task is
// admitted and the returned Task fails with the context error. A task failing
// with a (non-domain) error cancels the others and that error is returned.
func AggregateParallel[T, E any](tasks []Task[Result[T, E]], maxConcurrency int, merge MergeFunc[E]) Task[Result[[]T, E]] {
	return func(ctx context.Context) (Result[[]T, E], error) {
		results, err := AwaitAll(ctx, tasks, maxConcurrency)
		if err != nil {
			return Result[[]T, E]{}, err
		}
		return Aggregate(results, merge), nil
	}
}

// AggregateMany awaits tasks that each produce several results, flattens them
// in input order and aggregates.
func AggregateMany[T, E any](tasks []Task[[]Result[T, E]], merge MergeFunc[E]) Task[Result[[]T, E]] {
	return AggregateManyParallel(tasks, len(tasks), merge)
}

// AggregateManyParallel is AggregateMany with bounded concurrency.
func AggregateManyParallel[T, E any](tasks []Task[[]Result[T, E]], maxConcurrency int, merge MergeFunc[E]) Task[Result[[]T, E]] {
	return func(ctx context.Context) (Result[[]T, E], error) {
		batches, err := AwaitAll(ctx, tasks, maxConcurrency)
		if err != nil {
			return Result[[]T, E]{}, err
		}
		return Aggregate(slices.Concat(batches...), merge), nil
	}
}

// AwaitAll awaits tasks with at most limit of them in flight and returns their
// values in input order. limit < 1 is treated as 1. It fails with the first
// task error or with the context error once ctx is done; no task is started
// after that.
func AwaitAll[T any](ctx context.Context, tasks []Task[T], limit int) ([]T, error) {
	if limit < 1 {
		limit = 1
	}
	out := make([]T, len(tasks))
	gate := semaphore.NewWeighted(int64(limit))
	g, gctx := errgroup.WithContext(ctx)
	for i, t := range tasks {
		if err := gate.Acquire(gctx, 1); err != nil {
			break
		}
		g.Go(func() error {
			defer gate.Release(1)
			v, err := t.Await(gctx)
			if err != nil {
				return err
			}
			out[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
