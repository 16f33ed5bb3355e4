package goswitch

import "fmt"

// Option represents an optional value.
type Option[T any] struct {
	value T
	some  bool
}

// Some creates an Option containing a value.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, some: true}
}

// None creates an empty Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// IsSome returns true if the Option contains a value.
func (o Option[T]) IsSome() bool { return o.some }

// IsNone returns true if the Option is empty.
func (o Option[T]) IsNone() bool { return !o.some }

// Value returns the contained value and true, or zero and false.
func (o Option[T]) Value() (T, bool) { return o.value, o.some }

// ValueOrDefault returns the contained value or the provided default.
func (o Option[T]) ValueOrDefault(def T) T {
	if o.some {
		return o.value
	}
	return def
}

func (o Option[T]) String() string {
	if o.some {
		return fmt.Sprintf("Some %v", o.value)
	}
	return "None"
}

// MapOption applies a function to the contained value if present.
func MapOption[T, U any](o Option[T], f func(T) U) Option[U] {
	if o.some {
		return Some(f(o.value))
	}
	return None[U]()
}

// OkOr converts an Option into a Result, using e for None.
func OkOr[T, E any](o Option[T], e E) Result[T, E] {
	if o.some {
		return Ok[T, E](o.value)
	}
	return Error[T](e)
}
