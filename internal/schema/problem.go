package schema

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/harrison/conform/internal/value"
)

// Problem describes why a value was rejected by a validator. Problems are
// value objects; they are created on rejection and never mutated.
type Problem interface {
	error
	problem() // Sealed - only the types below implement it
}

// DisallowedType reports a value whose type tag is outside the allowed set.
type DisallowedType struct {
	Allowed []value.Type
	Actual  value.Type
}

func (DisallowedType) problem() {}

func (p DisallowedType) Error() string {
	names := make([]string, len(p.Allowed))
	for i, t := range p.Allowed {
		names[i] = t.String()
	}
	return fmt.Sprintf("value has allowed types [%s] but was found to be %s", strings.Join(names, ", "), p.Actual)
}

// WrongValue reports a value that is not structurally equal to the
// expected literal.
type WrongValue struct {
	Expected value.Value
	Actual   value.Value
}

func (WrongValue) problem() {}

func (p WrongValue) Error() string {
	return fmt.Sprintf("expected %s, found %s", value.Render(p.Expected), value.Render(p.Actual))
}

// NoRegexMatch reports a value that is not a string matching the pattern.
type NoRegexMatch struct {
	Pattern *regexp.Regexp
	Actual  value.Value
}

func (NoRegexMatch) problem() {}

func (p NoRegexMatch) Error() string {
	return fmt.Sprintf("value %s doesn't match %s", value.Render(p.Actual), p.Pattern)
}

// NoArrayContains reports that the value is not an array, or that some
// expected member was matched by no element. Intentionally coarse: which
// member came closest is not tracked.
type NoArrayContains struct{}

func (NoArrayContains) problem() {}

func (NoArrayContains) Error() string {
	return "not an array, or array member not matched"
}

// MissingKey reports an object lacking a required key.
type MissingKey struct {
	Key string
}

func (MissingKey) problem() {}

func (p MissingKey) Error() string {
	return fmt.Sprintf("%q is a required property", p.Key)
}

// ForbiddenKey reports an object carrying a key it must not have.
type ForbiddenKey struct {
	Key string
}

func (ForbiddenKey) problem() {}

func (p ForbiddenKey) Error() string {
	return fmt.Sprintf("%q is a forbidden property", p.Key)
}

// KeyMismatch wraps a nested problem with the object key it occurred at,
// so a deep failure reports its path.
type KeyMismatch struct {
	Key   string
	Cause Problem
}

func (KeyMismatch) problem() {}

func (p KeyMismatch) Error() string {
	return fmt.Sprintf("%q: %s", p.Key, p.Cause.Error())
}

func (p KeyMismatch) Unwrap() error {
	return p.Cause
}
