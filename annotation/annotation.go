package annotation

import (
	"fmt"
	"slices"
)

type Severity uint8

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return fmt.Sprintf("severity(%d)", uint8(s))
	}
}

// Annotation is a single lint finding.
type Annotation struct {
	Severity Severity
	Message  string
	Range    Range
}

// ErrorSet is an ordered list of error-severity annotations.
type ErrorSet []Annotation

// Errors returns the error-severity annotations of all, in input order.
// The result never aliases all.
func Errors(all []Annotation) ErrorSet {
	var out ErrorSet
	for _, a := range all {
		if a.Severity == SeverityError {
			out = append(out, a)
		}
	}
	return out
}

// Equal reports whether a and b hold structurally equal annotations in the
// same order. Nil and empty sets are equal.
func Equal(a, b ErrorSet) bool {
	return slices.Equal(a, b)
}

// Sorted returns a copy of all ordered by start position, then severity.
// Annotations that tie keep their input order.
func Sorted(all []Annotation) []Annotation {
	out := Clone(all)
	slices.SortStableFunc(out, func(a, b Annotation) int {
		if c := ComparePos(NormalizeRange(a.Range).Start, NormalizeRange(b.Range).Start); c != 0 {
			return c
		}
		return int(a.Severity) - int(b.Severity)
	})
	return out
}

func Clone[S ~[]Annotation](s S) S {
	if len(s) == 0 {
		return nil
	}
	return slices.Clone(s)
}
