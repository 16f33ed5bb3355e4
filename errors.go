package goswitch

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeEmptyCases          = "empty_cases"
	CodeDuplicateCase       = "duplicate_case"
	CodeUnresolvedTypeParam = "unresolved_type_param"
	CodeInvalidIdentifier   = "invalid_identifier"
	CodeMissingPackage      = "missing_package"
	CodeValidation          = "validation"
	CodeNotFound            = "not_found"
	CodeConfig              = "config"
	CodeGenerate            = "generate"
)

// Issue represents a single failure entry.
type Issue struct {
	Path    string // Location of the problem (type name, file, config key).
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional: underlying error.
}

// Issues is a collection of failures that implements error. It is the
// composite error payload used by MergeIssues.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. duplicate_case at Shape: case Circle declared twice
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		if it.Message != "" {
			b.WriteString(": ")
			b.WriteString(it.Message)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Unwrap exposes the causes so errors.Is/As can see through the collection.
func (iss Issues) Unwrap() []error {
	var out []error
	for _, it := range iss {
		if it.Cause != nil {
			out = append(out, it.Cause)
		}
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// ErrUnhandledVariant is matched by errors.Is for every *UnhandledVariantError.
var ErrUnhandledVariant = errors.New("goswitch: unhandled variant")

// UnhandledVariantError reports a dispatched value whose concrete case is not
// among the cases the dispatcher was generated for.
type UnhandledVariantError struct {
	Union string
	Value any
}

func (e *UnhandledVariantError) Error() string {
	return fmt.Sprintf("goswitch: unknown case of %s: %T", e.Union, e.Value)
}

func (e *UnhandledVariantError) Is(target error) bool { return target == ErrUnhandledVariant }

// UnhandledVariant builds the error raised by the default branch of generated
// dispatch functions.
func UnhandledVariant(union string, v any) error {
	return &UnhandledVariantError{Union: union, Value: v}
}

// ErrInvalidState is matched by errors.Is for every *InvalidStateError.
var ErrInvalidState = errors.New("goswitch: invalid state")

// InvalidStateError is the panic value of MustValue on an Error result.
type InvalidStateError struct {
	Err any
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("goswitch: cannot access error result value. Error: %v", e.Err)
}

func (e *InvalidStateError) Is(target error) bool { return target == ErrInvalidState }
