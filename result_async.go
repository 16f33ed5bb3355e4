package goswitch

// Asynchronous combinators. The naming follows the generated dispatch code:
//   - XAsync: the subject is ready, the continuation is asynchronous
//   - XTask: the subject is pending, the continuation is synchronous
//   - XTaskAsync: both are asynchronous
//
// Subjects are always resolved before any continuation runs.

// FromResult lifts a ready result into a Task.
func FromResult[T, E any](r Result[T, E]) Task[Result[T, E]] {
	return Completed(r)
}

// BindAsync binds r to an asynchronous continuation.
func BindAsync[T, T1, E any](r Result[T, E], f func(T) Task[Result[T1, E]]) Task[Result[T1, E]] {
	if r.ok {
		return f(r.value)
	}
	return Completed(Error[T1](r.err))
}

// BindTask awaits t and binds it to f.
func BindTask[T, T1, E any](t Task[Result[T, E]], f func(T) Result[T1, E]) Task[Result[T1, E]] {
	return Then(t, func(r Result[T, E]) Result[T1, E] { return Bind(r, f) })
}

// BindTaskAsync awaits t, binds it to f and awaits the continuation's result.
func BindTaskAsync[T, T1, E any](t Task[Result[T, E]], f func(T) Task[Result[T1, E]]) Task[Result[T1, E]] {
	return ThenAsync(t, func(r Result[T, E]) Task[Result[T1, E]] { return BindAsync(r, f) })
}

// MapAsync maps the value of r with an asynchronous function.
func MapAsync[T, T1, E any](r Result[T, E], f func(T) Task[T1]) Task[Result[T1, E]] {
	return BindAsync(r, func(v T) Task[Result[T1, E]] {
		return Then(f(v), Ok[T1, E])
	})
}

// MapTask awaits t and maps its value.
func MapTask[T, T1, E any](t Task[Result[T, E]], f func(T) T1) Task[Result[T1, E]] {
	return Then(t, func(r Result[T, E]) Result[T1, E] { return Map(r, f) })
}

// MapTaskAsync awaits t and maps its value with an asynchronous function.
func MapTaskAsync[T, T1, E any](t Task[Result[T, E]], f func(T) Task[T1]) Task[Result[T1, E]] {
	return ThenAsync(t, func(r Result[T, E]) Task[Result[T1, E]] { return MapAsync(r, f) })
}

// MatchAsync eliminates r with asynchronous branches. Only the selected branch
// is invoked.
func MatchAsync[T, E, R any](r Result[T, E], onOk func(T) Task[R], onError func(E) Task[R]) Task[R] {
	if r.ok {
		return onOk(r.value)
	}
	return onError(r.err)
}

// MatchTask awaits t and eliminates it.
func MatchTask[T, E, R any](t Task[Result[T, E]], onOk func(T) R, onError func(E) R) Task[R] {
	return Then(t, func(r Result[T, E]) R { return Match(r, onOk, onError) })
}

// MatchTaskAsync awaits t and eliminates it with asynchronous branches.
func MatchTaskAsync[T, E, R any](t Task[Result[T, E]], onOk func(T) Task[R], onError func(E) Task[R]) Task[R] {
	return ThenAsync(t, func(r Result[T, E]) Task[R] { return MatchAsync(r, onOk, onError) })
}
