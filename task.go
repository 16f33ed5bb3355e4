package goswitch

import (
	"context"
	"sync"
)

// Task is a pending computation of a T. The error return carries
// infrastructure failures (cancellation, deadlines); domain failures belong in
// a Result payload.
type Task[T any] func(ctx context.Context) (T, error)

// Action is a pending side effect.
type Action func(ctx context.Context) error

// Await runs the computation unless ctx is already done.
func (t Task[T]) Await(ctx context.Context) (T, error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, err
	}
	return t(ctx)
}

// Run performs the effect unless ctx is already done.
func (a Action) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return a(ctx)
}

// Completed returns a Task that yields v.
func Completed[T any](v T) Task[T] {
	return func(context.Context) (T, error) { return v, nil }
}

// Failed returns a Task that fails with err.
func Failed[T any](err error) Task[T] {
	return func(context.Context) (T, error) {
		var zero T
		return zero, err
	}
}

// Done is the Action that does nothing.
func Done() Action {
	return func(context.Context) error { return nil }
}

// FailedAction returns an Action that fails with err.
func FailedAction(err error) Action {
	return func(context.Context) error { return err }
}

// Start runs f on its own goroutine right away. The returned Task waits for
// that single run; awaiting it more than once yields the same outcome.
func Start[T any](ctx context.Context, f func(ctx context.Context) (T, error)) Task[T] {
	var (
		done = make(chan struct{})
		v    T
		err  error
	)
	go func() {
		defer close(done)
		v, err = f(ctx)
	}()
	return func(waitCtx context.Context) (T, error) {
		select {
		case <-done:
			return v, err
		case <-waitCtx.Done():
			var zero T
			return zero, waitCtx.Err()
		}
	}
}

// Memoize returns a Task that runs t at most once.
func Memoize[T any](t Task[T]) Task[T] {
	var (
		once sync.Once
		v    T
		err  error
	)
	return func(ctx context.Context) (T, error) {
		once.Do(func() { v, err = t.Await(ctx) })
		return v, err
	}
}

// Then awaits t and applies f to its value.
func Then[T, R any](t Task[T], f func(T) R) Task[R] {
	return func(ctx context.Context) (R, error) {
		v, err := t.Await(ctx)
		if err != nil {
			var zero R
			return zero, err
		}
		return f(v), nil
	}
}

// ThenAsync awaits t, then awaits the Task produced by f.
func ThenAsync[T, R any](t Task[T], f func(T) Task[R]) Task[R] {
	return func(ctx context.Context) (R, error) {
		v, err := t.Await(ctx)
		if err != nil {
			var zero R
			return zero, err
		}
		return f(v).Await(ctx)
	}
}

// ThenDo awaits t and passes its value to f.
func ThenDo[T any](t Task[T], f func(T)) Action {
	return func(ctx context.Context) error {
		v, err := t.Await(ctx)
		if err != nil {
			return err
		}
		f(v)
		return nil
	}
}

// ThenDoAsync awaits t, then runs the Action produced by f.
func ThenDoAsync[T any](t Task[T], f func(T) Action) Action {
	return func(ctx context.Context) error {
		v, err := t.Await(ctx)
		if err != nil {
			return err
		}
		return f(v).Run(ctx)
	}
}
