package docschema

import (
	"fmt"
	"slices"
	"strings"
)

// JSON Schema type names accepted in annotation type expressions. "file" is
// not a JSON Schema type; it marks binary uploads.
const (
	TypeNull    = "null"
	TypeBoolean = "boolean"
	TypeObject  = "object"
	TypeArray   = "array"
	TypeNumber  = "number"
	TypeString  = "string"
	TypeFile    = "file"
)

const arraySuffix = "[]"

var primitiveTypes = []string{
	TypeNull, TypeBoolean, TypeObject, TypeArray, TypeNumber, TypeString, TypeFile,
}

// Field is a typed schema node: a parameter, a nested property, the items of
// an array, or a return value.
//
// Items is set iff Type is "array". Properties is only set on object-shaped
// nodes that received nested children.
type Field struct {
	Type        string      `json:"type"`
	Description string      `json:"description,omitempty"`
	Items       *Field      `json:"items,omitempty"`
	Properties  *Properties `json:"properties,omitempty"`
	Example     *Example    `json:"exampleData,omitempty"`
}

// NormalizeType parses an annotation type token such as "string", "Object"
// or "number[]" into a [Field] holding the canonical lower-case type. A
// single trailing "[]" yields an array whose items carry the base type.
func NormalizeType(raw string) (Field, error) {
	t := strings.ToLower(strings.TrimSpace(raw))

	if base, ok := strings.CutSuffix(t, arraySuffix); ok {
		if !isPrimitive(base) {
			return Field{}, invalidTypeError(raw)
		}

		return Field{Type: TypeArray, Items: &Field{Type: base}}, nil
	}

	if !isPrimitive(t) {
		return Field{}, invalidTypeError(raw)
	}

	return Field{Type: t}, nil
}

func isPrimitive(t string) bool {
	return slices.Contains(primitiveTypes, t)
}

func invalidTypeError(raw string) error {
	return fmt.Errorf("%w %q: type must be one of: %s",
		ErrInvalidType, raw, strings.Join(primitiveTypes, ", "))
}

// isObjectShaped reports whether f is an object, or an array of objects.
func (f *Field) isObjectShaped() bool {
	return f.Type == TypeObject ||
		(f.Type == TypeArray && f.Items != nil && f.Items.Type == TypeObject)
}
