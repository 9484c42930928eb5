// Package value provides the shared document model for conform checks.
//
// JSON, TOML, and YAML inputs are all normalized into a single tagged
// union (Null, Bool, Number, String, Array, Object) at parse time, so
// schema inference and matching never need to know which format a file
// was written in.
package value

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Value is a sealed interface over the parsed document model.
// Only Null, Bool, Number, String, Array, and Object implement it.
type Value interface {
	value() // Sealed - only these types implement it
}

// Null represents a null document value.
type Null struct{}

func (Null) value() {}

// Bool represents a boolean document value.
type Bool bool

func (Bool) value() {}

// String represents a string document value.
type String string

func (String) value() {}

// Array represents an ordered sequence of values.
type Array []Value

func (Array) value() {}

// Object represents a mapping of string keys to values.
// Insertion order is irrelevant; SortedKeys gives deterministic iteration.
type Object map[string]Value

func (Object) value() {}

// Number represents a numeric document value. It carries either an int64
// or a float64, depending on how the source document spelled the number.
// Equality never bridges the two representations: 1 and 1.0 are distinct,
// which keeps matching deterministic across formats.
type Number struct {
	isInt bool
	i     int64
	f     float64
}

func (Number) value() {}

// Int creates a Number holding an integer.
func Int(i int64) Number {
	return Number{isInt: true, i: i}
}

// Float creates a Number holding a float.
func Float(f float64) Number {
	return Number{f: f}
}

// IsInt reports whether the number carries an integer representation.
func (n Number) IsInt() bool { return n.isInt }

// Int64 returns the integer representation. Valid only when IsInt is true.
func (n Number) Int64() int64 { return n.i }

// Float64 returns the number as a float64 regardless of representation.
func (n Number) Float64() float64 {
	if n.isInt {
		return float64(n.i)
	}
	return n.f
}

// Equal reports exact equality. Representations never mix: an integer
// Number is never equal to a float Number, even for the same magnitude.
func (n Number) Equal(other Number) bool {
	if n.isInt != other.isInt {
		return false
	}
	if n.isInt {
		return n.i == other.i
	}
	return n.f == other.f
}

// Compare orders two numbers, returning -1, 0, or 1. When both sides are
// integers the comparison stays in int64; otherwise it happens in float64.
// Used by range validators, where total ordering matters more than the
// representation split that Equal preserves.
func (n Number) Compare(other Number) int {
	if n.isInt && other.isInt {
		switch {
		case n.i < other.i:
			return -1
		case n.i > other.i:
			return 1
		default:
			return 0
		}
	}
	a, b := n.Float64(), other.Float64()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// String renders the number the way the source document spelled it.
func (n Number) String() string {
	if n.isInt {
		return strconv.FormatInt(n.i, 10)
	}
	return strconv.FormatFloat(n.f, 'g', -1, 64)
}

// Type identifies the variant of a Value.
type Type int

const (
	TypeNull Type = iota
	TypeBool
	TypeNumber
	TypeString
	TypeArray
	TypeObject
)

// String returns the lowercase name of the type.
func (t Type) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeBool:
		return "bool"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeArray:
		return "array"
	case TypeObject:
		return "object"
	default:
		return "unknown"
	}
}

// TypeOf returns the type tag of a value.
func TypeOf(v Value) Type {
	switch v.(type) {
	case Null:
		return TypeNull
	case Bool:
		return TypeBool
	case Number:
		return TypeNumber
	case String:
		return TypeString
	case Array:
		return TypeArray
	case Object:
		return TypeObject
	default:
		panic(fmt.Sprintf("value: unknown Value type %T", v))
	}
}

// SortedKeys returns the object's keys in sorted order for deterministic
// iteration.
func (o Object) SortedKeys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Equal reports deep structural equality of two values.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Number:
		bv, ok := b.(Number)
		return ok && av.Equal(bv)
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Array:
		bv, ok := b.(Array)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case Object:
		bv, ok := b.(Object)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			other, present := bv[k]
			if !present || !Equal(v, other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Render formats a value as a compact JSON-style literal for problem
// messages. Object keys are sorted so messages are stable.
func Render(v Value) string {
	var b strings.Builder
	render(&b, v)
	return b.String()
}

func render(b *strings.Builder, v Value) {
	switch val := v.(type) {
	case Null:
		b.WriteString("null")
	case Bool:
		b.WriteString(strconv.FormatBool(bool(val)))
	case Number:
		b.WriteString(val.String())
	case String:
		b.WriteString(strconv.Quote(string(val)))
	case Array:
		b.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				b.WriteByte(',')
			}
			render(b, elem)
		}
		b.WriteByte(']')
	case Object:
		b.WriteByte('{')
		for i, k := range val.SortedKeys() {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Quote(k))
			b.WriteByte(':')
			render(b, val[k])
		}
		b.WriteByte('}')
	}
}
