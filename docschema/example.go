package docschema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ExampleKind identifies which value an [Example] holds.
type ExampleKind int

// Example kinds.
const (
	ExampleString ExampleKind = iota
	ExampleNumber
	ExampleBoolean
	ExampleArray
)

// Example is the typed example value declared with a "name=value" default
// on a parameter. Exactly one of the value fields is meaningful, chosen by
// Kind.
type Example struct {
	Array  []any
	String string
	Number float64
	Kind   ExampleKind
	Bool   bool
}

// Value returns the example as a plain Go value: string, float64, bool or
// []any.
func (e *Example) Value() any {
	switch e.Kind {
	case ExampleNumber:
		return e.Number
	case ExampleBoolean:
		return e.Bool
	case ExampleArray:
		return e.Array
	case ExampleString:
	}

	return e.String
}

// MarshalJSON implements [json.Marshaler].
func (e *Example) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Value())
}

// CoerceExample converts a raw example literal to the value type implied by
// typ. Numbers must parse as finite floats, booleans are true only for the
// literal "true", and arrays must be JSON arrays. Every other type keeps the
// raw string. A literal wrapped in double quotes is unquoted first.
func CoerceExample(typ, raw string) (*Example, error) {
	raw = unquote(raw)

	switch typ {
	case TypeNumber:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return nil, fmt.Errorf("%w: %q is not a number", ErrMalformedExampleLiteral, raw)
		}

		return &Example{Kind: ExampleNumber, Number: n}, nil

	case TypeBoolean:
		return &Example{Kind: ExampleBoolean, Bool: raw == "true"}, nil

	case TypeArray:
		arr, err := parseJSONArray(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrMalformedExampleLiteral, raw, err)
		}

		return &Example{Kind: ExampleArray, Array: arr}, nil
	}

	return &Example{Kind: ExampleString, String: raw}, nil
}

func parseJSONArray(raw string) ([]any, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))

	var arr []any

	err := dec.Decode(&arr)
	if err != nil {
		return nil, err
	}

	if dec.More() {
		return nil, fmt.Errorf("unexpected data after array")
	}

	if arr == nil {
		return nil, fmt.Errorf("not an array")
	}

	return arr, nil
}

func unquote(raw string) string {
	if len(raw) >= 2 && strings.HasPrefix(raw, `"`) && strings.HasSuffix(raw, `"`) {
		return raw[1 : len(raw)-1]
	}

	return raw
}
