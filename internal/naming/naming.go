package naming

// Package naming derives the identifiers used in generated dispatch code:
// continuation parameter names, the subject parameter and the result type
// parameter. All functions are pure.

import (
	"go/token"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// OrdinalPrefix is the stem of fallback continuation names (case1, case2, ...).
const OrdinalPrefix = "case"

// DeriveParameterName maps a case type's simple name to a continuation
// parameter name: trailing underscores are stripped and the first letter is
// lower-cased. A name made only of underscores is kept as is.
//
//	Circle   -> circle
//	Generic_ -> generic
//	__       -> __
func DeriveParameterName(simpleName string) string {
	trimmed := strings.TrimRight(simpleName, "_")
	if trimmed == "" {
		return simpleName
	}
	return lowerFirst(trimmed)
}

// Ordinal returns the fallback name of the i-th case (zero based).
func Ordinal(i int) string { return OrdinalPrefix + strconv.Itoa(i+1) }

// IsValid reports whether name can be used as a parameter name: a Go
// identifier that is neither a keyword nor the blank identifier.
func IsValid(name string) bool {
	return name != "_" && token.IsIdentifier(name)
}

// Assign derives one parameter name per case, in order. When the derived
// names are not all usable, every case falls back to its ordinal name.
// Unusable means two cases derive the same name, a name collides with one of
// reserved, or a name is not a valid identifier.
func Assign(simpleNames []string, reserved ...string) []string {
	taken := make(map[string]struct{}, len(simpleNames)+len(reserved))
	for _, r := range reserved {
		taken[r] = struct{}{}
	}
	out := make([]string, len(simpleNames))
	ok := true
	for i, n := range simpleNames {
		d := DeriveParameterName(n)
		if _, dup := taken[d]; dup || !IsValid(d) {
			ok = false
			break
		}
		taken[d] = struct{}{}
		out[i] = d
	}
	if ok {
		return out
	}
	for i := range out {
		out[i] = Ordinal(i)
	}
	return out
}

// SubjectName returns the parameter name of the dispatched value for a union
// named typeName, avoiding keywords and the reserved names.
func SubjectName(typeName string, reserved ...string) string {
	name := DeriveParameterName(typeName)
	for !IsValid(name) || contains(reserved, name) {
		name += "Value"
	}
	return name
}

// TypeParamName returns the first of R, R1, R2, ... not present in taken.
func TypeParamName(taken ...string) string {
	name := "R"
	for i := 1; contains(taken, name); i++ {
		name = "R" + strconv.Itoa(i)
	}
	return name
}

// SnakeCase converts a Go identifier into a file name stem (ShapeKind ->
// shape_kind, HTTPCode -> http_code).
func SnakeCase(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && runes[i-1] != '_' {
				prevLower := unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if prevLower || (nextLower && unicode.IsUpper(runes[i-1])) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
