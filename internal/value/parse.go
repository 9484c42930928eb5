package value

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format represents a structured file format a value can be parsed from.
type Format int

const (
	// FormatUnknown represents an unrecognized format name.
	FormatUnknown Format = iota
	// FormatJSON represents JSON input.
	FormatJSON
	// FormatTOML represents TOML input.
	FormatTOML
	// FormatYAML represents YAML input.
	FormatYAML
)

// String returns the lowercase format name.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// ParseFormat maps a format name from a specification document to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return FormatUnknown, fmt.Errorf("unsupported format %q (supported: json, toml, yaml)", name)
	}
}

// Parse decodes data in the given format and normalizes it into the
// shared Value model.
func Parse(format Format, data []byte) (Value, error) {
	var raw any
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		// One value per document; anything after it is malformed.
		var trailing any
		if err := dec.Decode(&trailing); err != io.EOF {
			return nil, fmt.Errorf("unexpected data after top-level value")
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format: %v", format)
	}
	return FromAny(raw)
}

// FromAny normalizes a decoded Go value into the Value model. It accepts
// the shapes the JSON, TOML, and YAML decoders produce.
func FromAny(raw any) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return Null{}, nil
	case bool:
		return Bool(v), nil
	case string:
		return String(v), nil
	case int:
		return Int(int64(v)), nil
	case int64:
		return Int(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return nil, fmt.Errorf("integer out of range: %d", v)
		}
		return Int(int64(v)), nil
	case float64:
		return Float(v), nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", string(v), err)
		}
		return Float(f), nil
	case time.Time:
		// TOML date/time values have no counterpart in the model; their
		// canonical text form keeps them comparable.
		return String(v.Format(time.RFC3339)), nil
	case toml.LocalDate:
		return String(v.String()), nil
	case toml.LocalTime:
		return String(v.String()), nil
	case toml.LocalDateTime:
		return String(v.String()), nil
	case []any:
		arr := make(Array, len(v))
		for i, elem := range v {
			val, err := FromAny(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			arr[i] = val
		}
		return arr, nil
	case map[string]any:
		obj := make(Object, len(v))
		for k, elem := range v {
			val, err := FromAny(elem)
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", k, err)
			}
			obj[k] = val
		}
		return obj, nil
	case map[any]any:
		obj := make(Object, len(v))
		for k, elem := range v {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("object key must be a string, got %T", k)
			}
			val, err := FromAny(elem)
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", key, err)
			}
			obj[key] = val
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", raw)
	}
}
