package schema

import (
	"fmt"
	"sort"

	"github.com/harrison/conform/internal/value"
)

// Validate decides whether v is accepted by the validator. It returns nil
// on acceptance and a typed Problem on rejection. A failing nested clause
// short-circuits its branch; accumulation across independent checks is
// the caller's concern.
func Validate(validator Validator, v value.Value) Problem {
	switch val := validator.(type) {
	case AnyValue:
		return nil

	case TypeSet:
		actual := value.TypeOf(v)
		for _, allowed := range val.Allowed {
			if actual == allowed {
				return nil
			}
		}
		return DisallowedType{Allowed: val.Allowed, Actual: actual}

	case Bool:
		if actual, ok := v.(value.Bool); ok && actual == value.Bool(val) {
			return nil
		}
		return WrongValue{Expected: value.Bool(val), Actual: v}

	case ExactNumber:
		if actual, ok := v.(value.Number); ok && actual.Equal(val.N) {
			return nil
		}
		return WrongValue{Expected: val.N, Actual: v}

	case NumericRange:
		actual, ok := v.(value.Number)
		if !ok {
			return DisallowedType{Allowed: []value.Type{value.TypeNumber}, Actual: value.TypeOf(v)}
		}
		// Bounds are inclusive on both ends.
		if actual.Compare(val.Lo) >= 0 && actual.Compare(val.Hi) <= 0 {
			return nil
		}
		return WrongValue{Expected: value.String(fmt.Sprintf("number in [%s, %s]", val.Lo, val.Hi)), Actual: v}

	case ExactString:
		if actual, ok := v.(value.String); ok && actual == value.String(val) {
			return nil
		}
		return WrongValue{Expected: value.String(val), Actual: v}

	case RegexString:
		if actual, ok := v.(value.String); ok && val.Pattern.MatchString(string(actual)) {
			return nil
		}
		return NoRegexMatch{Pattern: val.Pattern, Actual: v}

	case ExactArray:
		if actual, ok := v.(value.Array); ok && value.Equal(actual, value.Array(val.Elements)) {
			return nil
		}
		return WrongValue{Expected: value.Array(val.Elements), Actual: v}

	case ArrayContains:
		actual, ok := v.(value.Array)
		if !ok {
			return NoArrayContains{}
		}
		for _, member := range val.Members {
			if !anyElementMatches(member, actual) {
				return NoArrayContains{}
			}
		}
		return nil

	case ObjectContains:
		actual, ok := v.(value.Object)
		if !ok {
			return DisallowedType{Allowed: []value.Type{value.TypeObject}, Actual: value.TypeOf(v)}
		}
		// Sorted keys keep the reported failure deterministic.
		for _, key := range sortedFieldKeys(val.Fields) {
			inner, present := actual[key]
			if !present {
				return MissingKey{Key: key}
			}
			if p := Validate(val.Fields[key], inner); p != nil {
				return KeyMismatch{Key: key, Cause: p}
			}
		}
		return nil

	case ObjectLacksKey:
		actual, ok := v.(value.Object)
		if !ok {
			return DisallowedType{Allowed: []value.Type{value.TypeObject}, Actual: value.TypeOf(v)}
		}
		if _, present := actual[val.Key]; present {
			return ForbiddenKey{Key: val.Key}
		}
		return nil

	case ExactObject:
		if actual, ok := v.(value.Object); ok && value.Equal(actual, value.Object(val.Fields)) {
			return nil
		}
		return WrongValue{Expected: value.Object(val.Fields), Actual: v}

	default:
		panic(fmt.Sprintf("schema: unknown Validator type %T", validator))
	}
}

func anyElementMatches(member Validator, arr value.Array) bool {
	for _, elem := range arr {
		if Validate(member, elem) == nil {
			return true
		}
	}
	return false
}

func sortedFieldKeys(fields map[string]Validator) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
