package value

import (
	"testing"
)

// TestParseFormat verifies format name mapping
func TestParseFormat(t *testing.T) {
	for name, want := range map[string]Format{
		"json": FormatJSON,
		"toml": FormatTOML,
		"yaml": FormatYAML,
		"yml":  FormatYAML,
		"JSON": FormatJSON,
	} {
		got, err := ParseFormat(name)
		if err != nil {
			t.Fatalf("ParseFormat(%q) error = %v", name, err)
		}
		if got != want {
			t.Errorf("ParseFormat(%q) = %v, want %v", name, got, want)
		}
	}

	if _, err := ParseFormat("ini"); err == nil {
		t.Error("ParseFormat(\"ini\") should fail")
	}
}

// TestParseAllFormatsNormalize verifies the same document parses to the
// same Value regardless of source format
func TestParseAllFormatsNormalize(t *testing.T) {
	want := Object{
		"hello": Object{
			"world": Bool(true),
			"count": Int(3),
		},
	}

	inputs := map[Format]string{
		FormatJSON: `{"hello": {"world": true, "count": 3}}`,
		FormatTOML: "[hello]\nworld = true\ncount = 3",
		FormatYAML: "hello:\n  world: true\n  count: 3",
	}
	for format, input := range inputs {
		got, err := Parse(format, []byte(input))
		if err != nil {
			t.Fatalf("Parse(%v) error = %v", format, err)
		}
		if !Equal(got, want) {
			t.Errorf("Parse(%v) = %s, want %s", format, Render(got), Render(want))
		}
	}
}

// TestParseNumbers verifies integer/float representation is preserved
func TestParseNumbers(t *testing.T) {
	v, err := Parse(FormatJSON, []byte(`{"i": 42, "f": 1.5}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	obj := v.(Object)

	i := obj["i"].(Number)
	if !i.IsInt() || i.Int64() != 42 {
		t.Errorf("expected integer 42, got %s", i)
	}
	f := obj["f"].(Number)
	if f.IsInt() || f.Float64() != 1.5 {
		t.Errorf("expected float 1.5, got %s", f)
	}
}

// TestParseScalarsAndArrays covers the remaining variants
func TestParseScalarsAndArrays(t *testing.T) {
	v, err := Parse(FormatYAML, []byte("- null\n- false\n- text\n- [1, 2]"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := Array{Null{}, Bool(false), String("text"), Array{Int(1), Int(2)}}
	if !Equal(v, want) {
		t.Errorf("Parse() = %s, want %s", Render(v), Render(want))
	}
}

// TestParseMalformed verifies parse errors propagate
func TestParseMalformed(t *testing.T) {
	if _, err := Parse(FormatJSON, []byte(`{"unclosed": `)); err == nil {
		t.Error("malformed JSON should fail")
	}
	if _, err := Parse(FormatTOML, []byte("= nonsense")); err == nil {
		t.Error("malformed TOML should fail")
	}
	if _, err := Parse(FormatYAML, []byte("a: [unclosed")); err == nil {
		t.Error("malformed YAML should fail")
	}
}

// TestParseJSONTrailingData verifies content after the first JSON value is
// rejected
func TestParseJSONTrailingData(t *testing.T) {
	if _, err := Parse(FormatJSON, []byte(`{"a": 1} garbage`)); err == nil {
		t.Error("trailing garbage should fail")
	}
	if _, err := Parse(FormatJSON, []byte(`{"a": 1} {"b": 2}`)); err == nil {
		t.Error("a second top-level value should fail")
	}

	// Trailing whitespace is not trailing data
	if _, err := Parse(FormatJSON, []byte("{\"a\": 1}\n  \n")); err != nil {
		t.Errorf("trailing whitespace should parse, got %v", err)
	}
}

// TestFromAnyRejectsNonStringKeys verifies object keys must be strings
func TestFromAnyRejectsNonStringKeys(t *testing.T) {
	if _, err := FromAny(map[any]any{1: "x"}); err == nil {
		t.Error("non-string object keys should fail")
	}
}
