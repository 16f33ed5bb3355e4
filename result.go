package goswitch

import (
	"fmt"
	"iter"
)

// Result is the outcome of an operation: either Ok with a value of type T or
// Error with an error payload of type E.
//
// The field belonging to the other state is always the zero value, so two
// results of comparable T and E compare equal with == exactly when they are in
// the same state with equal payloads.
type Result[T, E any] struct {
	ok    bool
	value T
	err   E
}

// Ok creates a successful result.
func Ok[T, E any](v T) Result[T, E] {
	return Result[T, E]{ok: true, value: v}
}

// Error creates a failed result.
func Error[T, E any](e E) Result[T, E] {
	return Result[T, E]{err: e}
}

// IsOk reports whether r holds a value.
func (r Result[T, E]) IsOk() bool { return r.ok }

// IsError reports whether r holds an error payload.
func (r Result[T, E]) IsError() bool { return !r.ok }

// Value returns the success payload and true, or zero and false.
func (r Result[T, E]) Value() (T, bool) { return r.value, r.ok }

// Err returns the error payload and true, or zero and false.
func (r Result[T, E]) Err() (E, bool) { return r.err, !r.ok }

// Switch runs onOk or onError depending on the state of r. A nil onError
// ignores errors.
func (r Result[T, E]) Switch(onOk func(T), onError func(E)) {
	if r.ok {
		onOk(r.value)
		return
	}
	if onError != nil {
		onError(r.err)
	}
}

// ValueOrDefault returns the value, or def when r is an Error.
func (r Result[T, E]) ValueOrDefault(def T) T {
	if r.ok {
		return r.value
	}
	return def
}

// ValueOrElse returns the value, or the result of def when r is an Error.
func (r Result[T, E]) ValueOrElse(def func() T) T {
	if r.ok {
		return r.value
	}
	return def()
}

// ValueOrZero returns the value, or the zero value of T.
func (r Result[T, E]) ValueOrZero() T { return r.value }

// MustValue returns the value. It panics with *InvalidStateError when r is an
// Error.
func (r Result[T, E]) MustValue() T {
	if !r.ok {
		panic(&InvalidStateError{Err: r.err})
	}
	return r.value
}

// ErrorOrDefault returns the error payload, or def when r is Ok.
func (r Result[T, E]) ErrorOrDefault(def E) E {
	if r.ok {
		return def
	}
	return r.err
}

// ErrorOrElse returns the error payload, or the result of def when r is Ok.
func (r Result[T, E]) ErrorOrElse(def func() E) E {
	if r.ok {
		return def()
	}
	return r.err
}

// All yields the value once for Ok and nothing for Error.
func (r Result[T, E]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		if r.ok {
			yield(r.value)
		}
	}
}

func (r Result[T, E]) String() string {
	if r.ok {
		return fmt.Sprintf("Ok %v", r.value)
	}
	return fmt.Sprintf("Error %v", r.err)
}

// Match eliminates r: exactly one of onOk and onError runs.
func Match[T, E, R any](r Result[T, E], onOk func(T) R, onError func(E) R) R {
	if r.ok {
		return onOk(r.value)
	}
	return onError(r.err)
}

// Bind yields f(v) for Ok(v) and carries the error payload of an Error through
// unchanged.
func Bind[T, T1, E any](r Result[T, E], f func(T) Result[T1, E]) Result[T1, E] {
	if r.ok {
		return f(r.value)
	}
	return Error[T1](r.err)
}

// Map is Bind with a continuation that always succeeds.
func Map[T, T1, E any](r Result[T, E], f func(T) T1) Result[T1, E] {
	return Bind(r, func(v T) Result[T1, E] { return Ok[T1, E](f(v)) })
}

// MapError transforms the error payload of an Error.
func MapError[T, E, E1 any](r Result[T, E], f func(E) E1) Result[T, E1] {
	if r.ok {
		return Ok[T, E1](r.value)
	}
	return Error[T](f(r.err))
}

// Flatten removes one level of nesting.
func Flatten[T, E any](r Result[Result[T, E], E]) Result[T, E] {
	return Bind(r, func(inner Result[T, E]) Result[T, E] { return inner })
}

// Equal reports whether a and b are in the same state with equal payloads.
func Equal[T, E comparable](a, b Result[T, E]) bool {
	return a == b
}

// EqualFunc is Equal for payloads that are not comparable with ==.
func EqualFunc[T, E any](a, b Result[T, E], eqValue func(T, T) bool, eqError func(E, E) bool) bool {
	if a.ok != b.ok {
		return false
	}
	if a.ok {
		return eqValue(a.value, b.value)
	}
	return eqError(a.err, b.err)
}

// ToOption keeps the value of an Ok and drops the payload of an Error.
func ToOption[T, E any](r Result[T, E]) Option[T] {
	if r.ok {
		return Some(r.value)
	}
	return None[T]()
}
