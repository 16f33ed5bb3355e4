package goswitch

import (
	"errors"
	"strings"
)

// DefaultSeparator separates messages joined by JoinLines.
const DefaultSeparator = "\n"

// MergeFunc reduces one or more error payloads into one. Aggregation never
// calls it with an empty slice.
type MergeFunc[E any] func(errs []E) E

// JoinMessages joins string payloads with sep.
func JoinMessages(sep string) MergeFunc[string] {
	return func(errs []string) string { return strings.Join(errs, sep) }
}

// JoinLines joins string payloads with DefaultSeparator.
func JoinLines(errs []string) string { return strings.Join(errs, DefaultSeparator) }

// MergeErrors combines error payloads with errors.Join.
func MergeErrors(errs []error) error {
	if len(errs) == 1 {
		return errs[0]
	}
	return errors.Join(errs...)
}

// MergeIssues concatenates Issues payloads in order.
func MergeIssues(errs []Issues) Issues {
	var out Issues
	for _, e := range errs {
		out = AppendIssues(out, e...)
	}
	return out
}

// DefaultMerge picks the merge used when a nil MergeFunc is supplied: strings
// are joined with DefaultSeparator, errors with errors.Join and Issues are
// concatenated. Any other payload type keeps the first error.
func DefaultMerge[E any]() MergeFunc[E] {
	var zero E
	switch any(zero).(type) {
	case string:
		return func(errs []E) E { return any(JoinLines(any(errs).([]string))).(E) }
	case Issues:
		return func(errs []E) E { return any(MergeIssues(any(errs).([]Issues))).(E) }
	}
	if _, ok := any(&zero).(*error); ok {
		return func(errs []E) E {
			merged, _ := any(MergeErrors(any(errs).([]error))).(E)
			return merged
		}
	}
	return func(errs []E) E { return errs[0] }
}

func mergeOrDefault[E any](merge MergeFunc[E]) MergeFunc[E] {
	if merge != nil {
		return merge
	}
	return DefaultMerge[E]()
}
