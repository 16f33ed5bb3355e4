package goswitch

import (
	"context"
	"fmt"
)

// PanicError wraps a value recovered by Try or TryTask.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string { return fmt.Sprintf("goswitch: recovered panic: %v", e.Value) }

// Try runs f and converts a returned error, or a panic, into an Error result
// using formatError.
func Try[T, E any](f func() (T, error), formatError func(error) E) (res Result[T, E]) {
	defer func() {
		if p := recover(); p != nil {
			res = Error[T](formatError(panicErr(p)))
		}
	}()
	v, err := f()
	if err != nil {
		return Error[T](formatError(err))
	}
	return Ok[T, E](v)
}

// TryTask is the asynchronous Try: failures of t become Error payloads, so
// the returned Task itself never fails.
func TryTask[T, E any](t Task[T], formatError func(error) E) Task[Result[T, E]] {
	return func(ctx context.Context) (Result[T, E], error) {
		return Try(func() (T, error) { return t.Await(ctx) }, formatError), nil
	}
}

// ErrorMessage is a formatError for string payloads.
func ErrorMessage(err error) string { return err.Error() }

func panicErr(p any) error {
	if err, ok := p.(error); ok {
		return err
	}
	return &PanicError{Value: p}
}
