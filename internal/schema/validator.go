// Package schema implements structural value matching for conform.
//
// A Validator is an acceptance predicate over the shared value model. It
// can be hand-authored or inferred from an example value (see Infer).
// Matching is structural containment: objects are open to extra keys and
// arrays match by membership, not position.
package schema

import (
	"regexp"

	"github.com/harrison/conform/internal/value"
)

// Validator is a sealed interface over acceptance predicates.
type Validator interface {
	validator() // Sealed - only the types below implement it
}

// AnyValue accepts every value.
type AnyValue struct{}

func (AnyValue) validator() {}

// TypeSet accepts values whose type tag is in the allowed set.
type TypeSet struct {
	Allowed []value.Type
}

func (TypeSet) validator() {}

// Types builds a TypeSet from type tags.
func Types(allowed ...value.Type) TypeSet {
	return TypeSet{Allowed: allowed}
}

// Bool accepts exactly the given boolean.
type Bool bool

func (Bool) validator() {}

// ExactNumber accepts exactly the given number.
type ExactNumber struct {
	N value.Number
}

func (ExactNumber) validator() {}

// NumericRange accepts numbers between Lo and Hi, inclusive on both ends.
type NumericRange struct {
	Lo value.Number
	Hi value.Number
}

func (NumericRange) validator() {}

// ExactString accepts exactly the given string.
type ExactString string

func (ExactString) validator() {}

// RegexString accepts strings the compiled pattern matches anywhere.
type RegexString struct {
	Pattern *regexp.Regexp
}

func (RegexString) validator() {}

// ExactArray accepts an array structurally equal to the expected literal,
// including length and element order.
type ExactArray struct {
	Elements []value.Value
}

func (ExactArray) validator() {}

// ArrayContains accepts an array in which every member validator is
// satisfied by at least one element. Extra or reordered elements are
// irrelevant.
type ArrayContains struct {
	Members []Validator
}

func (ArrayContains) validator() {}

// ObjectContains accepts an object in which every listed key is present
// and its value matches. Keys not listed are unconstrained.
type ObjectContains struct {
	Fields map[string]Validator
}

func (ObjectContains) validator() {}

// ObjectLacksKey accepts an object that does not carry the given key.
type ObjectLacksKey struct {
	Key string
}

func (ObjectLacksKey) validator() {}

// ExactObject accepts an object with exactly the expected key set, every
// value structurally equal to its expected counterpart.
type ExactObject struct {
	Fields map[string]value.Value
}

func (ExactObject) validator() {}

// Infer derives a Validator from a literal example value.
//
// Scalars require exact equality. Arrays require that every example
// element is matched by some element of the candidate (containment, not
// positional equality). Objects require every example key to be present
// with a matching value; extra keys are permitted.
func Infer(example value.Value) Validator {
	switch v := example.(type) {
	case value.Null:
		return Types(value.TypeNull)
	case value.Bool:
		return Bool(v)
	case value.Number:
		return ExactNumber{N: v}
	case value.String:
		return ExactString(v)
	case value.Array:
		members := make([]Validator, len(v))
		for i, elem := range v {
			members[i] = Infer(elem)
		}
		return ArrayContains{Members: members}
	case value.Object:
		fields := make(map[string]Validator, len(v))
		for k, elem := range v {
			fields[k] = Infer(elem)
		}
		return ObjectContains{Fields: fields}
	default:
		return AnyValue{}
	}
}
