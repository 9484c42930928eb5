package schema

import (
	"errors"
	"regexp"
	"testing"

	"github.com/harrison/conform/internal/value"
)

// TestInferRoundTrip verifies an example always validates against its own
// inferred schema
func TestInferRoundTrip(t *testing.T) {
	examples := []value.Value{
		value.Null{},
		value.Bool(true),
		value.Int(42),
		value.Float(1.5),
		value.String("hello"),
		value.Array{value.Int(1), value.String("two")},
		value.Object{
			"name": value.String("cart"),
			"nested": value.Object{
				"deep": value.Array{value.Bool(false)},
			},
		},
	}
	for _, example := range examples {
		if p := Validate(Infer(example), example); p != nil {
			t.Errorf("example %s rejected by its own schema: %v", value.Render(example), p)
		}
	}
}

// TestArrayContainment verifies containment is neither order- nor
// length-sensitive
func TestArrayContainment(t *testing.T) {
	a, b, c := value.String("a"), value.String("b"), value.String("c")
	schema := Infer(value.Array{a, b})

	if p := Validate(schema, value.Array{b, a, c}); p != nil {
		t.Errorf("reordered superset should match, got %v", p)
	}

	p := Validate(schema, value.Array{a})
	if p == nil {
		t.Fatal("missing member should be rejected")
	}
	if _, ok := p.(NoArrayContains); !ok {
		t.Errorf("expected NoArrayContains, got %T", p)
	}

	if p := Validate(schema, value.String("not an array")); p == nil {
		t.Error("non-array should be rejected")
	}
}

// TestObjectOpenness verifies extra keys pass and missing keys fail
func TestObjectOpenness(t *testing.T) {
	schema := Infer(value.Object{"k": value.Int(1)})

	if p := Validate(schema, value.Object{"k": value.Int(1), "extra": value.Int(2)}); p != nil {
		t.Errorf("extra keys should be permitted, got %v", p)
	}

	p := Validate(schema, value.Object{"other": value.Int(1)})
	if p == nil {
		t.Fatal("missing key should be rejected")
	}
	missing, ok := p.(MissingKey)
	if !ok {
		t.Fatalf("expected MissingKey, got %T", p)
	}
	if missing.Key != "k" {
		t.Errorf("MissingKey.Key = %q, want %q", missing.Key, "k")
	}
}

// TestNestedMismatchCarriesPath verifies deep failures report their key path
func TestNestedMismatchCarriesPath(t *testing.T) {
	schema := Infer(value.Object{"hello": value.Object{"world": value.Bool(false)}})
	actual := value.Object{"hello": value.Object{"world": value.Bool(true)}}

	p := Validate(schema, actual)
	if p == nil {
		t.Fatal("mismatched nested value should be rejected")
	}
	want := `"hello": "world": expected false, found true`
	if p.Error() != want {
		t.Errorf("Error() = %q, want %q", p.Error(), want)
	}

	var wrong WrongValue
	if !errors.As(p, &wrong) {
		t.Errorf("expected a wrapped WrongValue, got %v", p)
	}
}

// TestTypeSet verifies type tag matching
func TestTypeSet(t *testing.T) {
	schema := Types(value.TypeString, value.TypeNumber)

	if p := Validate(schema, value.String("ok")); p != nil {
		t.Errorf("string should be allowed, got %v", p)
	}
	if p := Validate(schema, value.Int(1)); p != nil {
		t.Errorf("number should be allowed, got %v", p)
	}

	p := Validate(schema, value.Bool(true))
	if p == nil {
		t.Fatal("bool should be rejected")
	}
	disallowed, ok := p.(DisallowedType)
	if !ok {
		t.Fatalf("expected DisallowedType, got %T", p)
	}
	if disallowed.Actual != value.TypeBool {
		t.Errorf("Actual = %v, want %v", disallowed.Actual, value.TypeBool)
	}
}

// TestScalarExactMatch verifies the exact-equality validators
func TestScalarExactMatch(t *testing.T) {
	if p := Validate(Bool(true), value.Bool(true)); p != nil {
		t.Errorf("Bool: %v", p)
	}
	if p := Validate(Bool(true), value.Bool(false)); p == nil {
		t.Error("Bool should reject false")
	}
	if p := Validate(Bool(true), value.Int(1)); p == nil {
		t.Error("Bool should reject non-bool")
	}

	if p := Validate(ExactNumber{N: value.Int(5)}, value.Int(5)); p != nil {
		t.Errorf("ExactNumber: %v", p)
	}
	// Representation matters: an integer schema never matches a float value
	if p := Validate(ExactNumber{N: value.Int(1)}, value.Float(1.0)); p == nil {
		t.Error("ExactNumber should not bridge int and float")
	}

	if p := Validate(ExactString("x"), value.String("x")); p != nil {
		t.Errorf("ExactString: %v", p)
	}
	if p := Validate(ExactString("x"), value.String("y")); p == nil {
		t.Error("ExactString should reject a different string")
	}
}

// TestNumericRangeInclusive verifies both bounds are inclusive
func TestNumericRangeInclusive(t *testing.T) {
	schema := NumericRange{Lo: value.Int(1), Hi: value.Int(5)}

	for _, n := range []value.Number{value.Int(1), value.Int(3), value.Int(5), value.Float(2.5)} {
		if p := Validate(schema, n); p != nil {
			t.Errorf("range should accept %s, got %v", n, p)
		}
	}
	for _, n := range []value.Number{value.Int(0), value.Int(6), value.Float(5.1)} {
		if p := Validate(schema, n); p == nil {
			t.Errorf("range should reject %s", n)
		}
	}
	if p := Validate(schema, value.String("3")); p == nil {
		t.Error("range should reject non-number")
	}

	// Equal bounds accept exactly that number
	point := NumericRange{Lo: value.Int(2), Hi: value.Int(2)}
	if p := Validate(point, value.Int(2)); p != nil {
		t.Errorf("degenerate range should accept its bound, got %v", p)
	}
	if p := Validate(point, value.Int(3)); p == nil {
		t.Error("degenerate range should reject everything else")
	}
}

// TestRegexString verifies pattern matching anywhere in the string
func TestRegexString(t *testing.T) {
	schema := RegexString{Pattern: regexp.MustCompile(`^v\d+`)}

	if p := Validate(schema, value.String("v12-release")); p != nil {
		t.Errorf("RegexString: %v", p)
	}
	p := Validate(schema, value.String("release-v12"))
	if p == nil {
		t.Fatal("anchored pattern should reject")
	}
	if _, ok := p.(NoRegexMatch); !ok {
		t.Errorf("expected NoRegexMatch, got %T", p)
	}
	if p := Validate(schema, value.Int(12)); p == nil {
		t.Error("RegexString should reject non-string")
	}
}

// TestExactArray verifies positional literal equality
func TestExactArray(t *testing.T) {
	schema := ExactArray{Elements: []value.Value{value.Int(1), value.Int(2)}}

	if p := Validate(schema, value.Array{value.Int(1), value.Int(2)}); p != nil {
		t.Errorf("ExactArray: %v", p)
	}
	if p := Validate(schema, value.Array{value.Int(2), value.Int(1)}); p == nil {
		t.Error("ExactArray should be order-sensitive")
	}
	if p := Validate(schema, value.Array{value.Int(1), value.Int(2), value.Int(3)}); p == nil {
		t.Error("ExactArray should be length-sensitive")
	}
}

// TestExactObject verifies the exact key set is required
func TestExactObject(t *testing.T) {
	schema := ExactObject{Fields: map[string]value.Value{"k": value.Int(1)}}

	if p := Validate(schema, value.Object{"k": value.Int(1)}); p != nil {
		t.Errorf("ExactObject: %v", p)
	}
	if p := Validate(schema, value.Object{"k": value.Int(1), "extra": value.Int(2)}); p == nil {
		t.Error("ExactObject should reject extra keys")
	}
	if p := Validate(schema, value.Object{}); p == nil {
		t.Error("ExactObject should reject missing keys")
	}
}

// TestObjectLacksKey verifies key absence checks
func TestObjectLacksKey(t *testing.T) {
	schema := ObjectLacksKey{Key: "forbidden"}

	if p := Validate(schema, value.Object{"ok": value.Int(1)}); p != nil {
		t.Errorf("ObjectLacksKey: %v", p)
	}
	p := Validate(schema, value.Object{"forbidden": value.Null{}})
	if p == nil {
		t.Fatal("present key should be rejected")
	}
	if _, ok := p.(ForbiddenKey); !ok {
		t.Errorf("expected ForbiddenKey, got %T", p)
	}
}

// TestAnyValue verifies the always-accepting validator
func TestAnyValue(t *testing.T) {
	for _, v := range []value.Value{value.Null{}, value.Bool(true), value.Int(1), value.String("s")} {
		if p := Validate(AnyValue{}, v); p != nil {
			t.Errorf("AnyValue rejected %s: %v", value.Render(v), p)
		}
	}
}

// TestDeterministicFailure verifies the reported key is stable when
// several keys are missing
func TestDeterministicFailure(t *testing.T) {
	schema := Infer(value.Object{"b": value.Int(1), "a": value.Int(2), "c": value.Int(3)})
	for i := 0; i < 10; i++ {
		p := Validate(schema, value.Object{})
		missing, ok := p.(MissingKey)
		if !ok {
			t.Fatalf("expected MissingKey, got %T", p)
		}
		if missing.Key != "a" {
			t.Fatalf("expected first missing key to be %q, got %q", "a", missing.Key)
		}
	}
}
