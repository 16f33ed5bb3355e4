package goswitch

// Aggregate partitions results into successes and failures. Without failures
// it returns Ok with the successes in input order; otherwise it returns Error
// with merge applied to the failures in input order. A nil merge selects
// DefaultMerge.
func Aggregate[T, E any](results []Result[T, E], merge MergeFunc[E]) Result[[]T, E] {
	oks := make([]T, 0, len(results))
	var errs []E
	for _, r := range results {
		if r.ok {
			oks = append(oks, r.value)
		} else {
			errs = append(errs, r.err)
		}
	}
	if len(errs) > 0 {
		return Error[[]T](mergeOrDefault(merge)(errs))
	}
	return Ok[[]T, E](oks)
}

// MapAll maps every result and aggregates.
func MapAll[T, T1, E any](results []Result[T, E], f func(T) T1, merge MergeFunc[E]) Result[[]T1, E] {
	mapped := make([]Result[T1, E], len(results))
	for i, r := range results {
		mapped[i] = Map(r, f)
	}
	return Aggregate(mapped, merge)
}

// BindAll binds every result and aggregates.
func BindAll[T, T1, E any](results []Result[T, E], f func(T) Result[T1, E], merge MergeFunc[E]) Result[[]T1, E] {
	bound := make([]Result[T1, E], len(results))
	for i, r := range results {
		bound[i] = Bind(r, f)
	}
	return Aggregate(bound, merge)
}

// Choose returns the successes in input order and reports every failure to
// onError, also in input order. A nil onError ignores failures.
func Choose[T, E any](results []Result[T, E], onError func(E)) []T {
	out := make([]T, 0, len(results))
	for _, r := range results {
		if r.ok {
			out = append(out, r.value)
		} else if onError != nil {
			onError(r.err)
		}
	}
	return out
}

// ChooseFunc applies choose to each item and keeps the successes.
func ChooseFunc[T, T1, E any](items []T, choose func(T) Result[T1, E], onError func(E)) []T1 {
	results := make([]Result[T1, E], len(items))
	for i, it := range items {
		results[i] = choose(it)
	}
	return Choose(results, onError)
}

// Validate runs validate on item. No errors yields Ok(item); otherwise the
// errors are merged into one Error.
func Validate[T, E any](item T, validate func(T) []E, merge MergeFunc[E]) Result[T, E] {
	errs := validate(item)
	if len(errs) > 0 {
		return Error[T](mergeOrDefault(merge)(errs))
	}
	return Ok[T, E](item)
}

// ValidateResult validates the value of an Ok result.
func ValidateResult[T, E any](r Result[T, E], validate func(T) []E, merge MergeFunc[E]) Result[T, E] {
	return Bind(r, func(v T) Result[T, E] { return Validate(v, validate, merge) })
}

// AllOk validates every item and aggregates.
func AllOk[T, E any](items []T, validate func(T) []E, merge MergeFunc[E]) Result[[]T, E] {
	results := make([]Result[T, E], len(items))
	for i, it := range items {
		results[i] = Validate(it, validate, merge)
	}
	return Aggregate(results, merge)
}

// FirstOk returns the first Ok in input order. When there is none, the
// collected errors are merged; for empty input the single error comes from
// onEmpty.
func FirstOk[T, E any](results []Result[T, E], onEmpty func() E, merge MergeFunc[E]) Result[T, E] {
	var errs []E
	for _, r := range results {
		if r.ok {
			return r
		}
		errs = append(errs, r.err)
	}
	return firstOkFailure[T](errs, onEmpty, merge)
}

// FirstOkFunc validates candidates in order and returns the first one that
// passes. Candidates after it are not validated.
func FirstOkFunc[T, E any](items []T, validate func(T) []E, onEmpty func() E, merge MergeFunc[E]) Result[T, E] {
	var errs []E
	for _, it := range items {
		r := Validate(it, validate, merge)
		if r.ok {
			return r
		}
		errs = append(errs, r.err)
	}
	return firstOkFailure[T](errs, onEmpty, merge)
}

func firstOkFailure[T, E any](errs []E, onEmpty func() E, merge MergeFunc[E]) Result[T, E] {
	if len(errs) == 0 {
		errs = append(errs, onEmpty())
	}
	return Error[T](mergeOrDefault(merge)(errs))
}

// collectErrors returns the error payloads of the failed inputs in order.
func collectErrors[E any](failed []bool, errs []E) []E {
	var out []E
	for i, f := range failed {
		if f {
			out = append(out, errs[i])
		}
	}
	return out
}

// Aggregate2 combines 2 results positionally. If any input is an Error the
// result is the merge of every Error payload in positional order; otherwise
// combine receives all values.
func Aggregate2[T1, T2, R, E any](r1 Result[T1, E], r2 Result[T2, E], combine func(T1, T2) R, merge MergeFunc[E]) Result[R, E] {
	if r1.ok && r2.ok {
		return Ok[R, E](combine(r1.value, r2.value))
	}
	errs := collectErrors([]bool{!r1.ok, !r2.ok}, []E{r1.err, r2.err})
	return Error[R](mergeOrDefault(merge)(errs))
}

// Aggregate3 is Aggregate2 for 3 results.
func Aggregate3[T1, T2, T3, R, E any](r1 Result[T1, E], r2 Result[T2, E], r3 Result[T3, E], combine func(T1, T2, T3) R, merge MergeFunc[E]) Result[R, E] {
	if r1.ok && r2.ok && r3.ok {
		return Ok[R, E](combine(r1.value, r2.value, r3.value))
	}
	errs := collectErrors([]bool{!r1.ok, !r2.ok, !r3.ok}, []E{r1.err, r2.err, r3.err})
	return Error[R](mergeOrDefault(merge)(errs))
}

// Aggregate4 is Aggregate2 for 4 results.
func Aggregate4[T1, T2, T3, T4, R, E any](r1 Result[T1, E], r2 Result[T2, E], r3 Result[T3, E], r4 Result[T4, E], combine func(T1, T2, T3, T4) R, merge MergeFunc[E]) Result[R, E] {
	if r1.ok && r2.ok && r3.ok && r4.ok {
		return Ok[R, E](combine(r1.value, r2.value, r3.value, r4.value))
	}
	errs := collectErrors([]bool{!r1.ok, !r2.ok, !r3.ok, !r4.ok}, []E{r1.err, r2.err, r3.err, r4.err})
	return Error[R](mergeOrDefault(merge)(errs))
}

// Aggregate5 is Aggregate2 for 5 results.
func Aggregate5[T1, T2, T3, T4, T5, R, E any](r1 Result[T1, E], r2 Result[T2, E], r3 Result[T3, E], r4 Result[T4, E], r5 Result[T5, E], combine func(T1, T2, T3, T4, T5) R, merge MergeFunc[E]) Result[R, E] {
	if r1.ok && r2.ok && r3.ok && r4.ok && r5.ok {
		return Ok[R, E](combine(r1.value, r2.value, r3.value, r4.value, r5.value))
	}
	errs := collectErrors([]bool{!r1.ok, !r2.ok, !r3.ok, !r4.ok, !r5.ok}, []E{r1.err, r2.err, r3.err, r4.err, r5.err})
	return Error[R](mergeOrDefault(merge)(errs))
}

// Aggregate6 is Aggregate2 for 6 results.
func Aggregate6[T1, T2, T3, T4, T5, T6, R, E any](r1 Result[T1, E], r2 Result[T2, E], r3 Result[T3, E], r4 Result[T4, E], r5 Result[T5, E], r6 Result[T6, E], combine func(T1, T2, T3, T4, T5, T6) R, merge MergeFunc[E]) Result[R, E] {
	if r1.ok && r2.ok && r3.ok && r4.ok && r5.ok && r6.ok {
		return Ok[R, E](combine(r1.value, r2.value, r3.value, r4.value, r5.value, r6.value))
	}
	errs := collectErrors([]bool{!r1.ok, !r2.ok, !r3.ok, !r4.ok, !r5.ok, !r6.ok}, []E{r1.err, r2.err, r3.err, r4.err, r5.err, r6.err})
	return Error[R](mergeOrDefault(merge)(errs))
}

// Aggregate7 is Aggregate2 for 7 results.
func Aggregate7[T1, T2, T3, T4, T5, T6, T7, R, E any](r1 Result[T1, E], r2 Result[T2, E], r3 Result[T3, E], r4 Result[T4, E], r5 Result[T5, E], r6 Result[T6, E], r7 Result[T7, E], combine func(T1, T2, T3, T4, T5, T6, T7) R, merge MergeFunc[E]) Result[R, E] {
	if r1.ok && r2.ok && r3.ok && r4.ok && r5.ok && r6.ok && r7.ok {
		return Ok[R, E](combine(r1.value, r2.value, r3.value, r4.value, r5.value, r6.value, r7.value))
	}
	errs := collectErrors([]bool{!r1.ok, !r2.ok, !r3.ok, !r4.ok, !r5.ok, !r6.ok, !r7.ok}, []E{r1.err, r2.err, r3.err, r4.err, r5.err, r6.err, r7.err})
	return Error[R](mergeOrDefault(merge)(errs))
}

// Aggregate8 is Aggregate2 for 8 results.
func Aggregate8[T1, T2, T3, T4, T5, T6, T7, T8, R, E any](r1 Result[T1, E], r2 Result[T2, E], r3 Result[T3, E], r4 Result[T4, E], r5 Result[T5, E], r6 Result[T6, E], r7 Result[T7, E], r8 Result[T8, E], combine func(T1, T2, T3, T4, T5, T6, T7, T8) R, merge MergeFunc[E]) Result[R, E] {
	if r1.ok && r2.ok && r3.ok && r4.ok && r5.ok && r6.ok && r7.ok && r8.ok {
		return Ok[R, E](combine(r1.value, r2.value, r3.value, r4.value, r5.value, r6.value, r7.value, r8.value))
	}
	errs := collectErrors([]bool{!r1.ok, !r2.ok, !r3.ok, !r4.ok, !r5.ok, !r6.ok, !r7.ok, !r8.ok}, []E{r1.err, r2.err, r3.err, r4.err, r5.err, r6.err, r7.err, r8.err})
	return Error[R](mergeOrDefault(merge)(errs))
}

// Aggregate9 is Aggregate2 for 9 results.
func Aggregate9[T1, T2, T3, T4, T5, T6, T7, T8, T9, R, E any](r1 Result[T1, E], r2 Result[T2, E], r3 Result[T3, E], r4 Result[T4, E], r5 Result[T5, E], r6 Result[T6, E], r7 Result[T7, E], r8 Result[T8, E], r9 Result[T9, E], combine func(T1, T2, T3, T4, T5, T6, T7, T8, T9) R, merge MergeFunc[E]) Result[R, E] {
	if r1.ok && r2.ok && r3.ok && r4.ok && r5.ok && r6.ok && r7.ok && r8.ok && r9.ok {
		return Ok[R, E](combine(r1.value, r2.value, r3.value, r4.value, r5.value, r6.value, r7.value, r8.value, r9.value))
	}
	errs := collectErrors([]bool{!r1.ok, !r2.ok, !r3.ok, !r4.ok, !r5.ok, !r6.ok, !r7.ok, !r8.ok, !r9.ok}, []E{r1.err, r2.err, r3.err, r4.err, r5.err, r6.err, r7.err, r8.err, r9.err})
	return Error[R](mergeOrDefault(merge)(errs))
}
