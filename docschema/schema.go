package docschema

import (
	"github.com/google/jsonschema-go/jsonschema"
)

// Draft7 is the JSON Schema draft 7 meta-schema URI.
const Draft7 = "http://json-schema.org/draft-07/schema#"

const formatBinary = "binary"

// Schema converts f to a JSON Schema. The "file" type becomes a binary
// string, and example data becomes the single entry of examples.
func (f *Field) Schema() *jsonschema.Schema {
	if f == nil {
		return nil
	}

	s := &jsonschema.Schema{
		Type:        f.Type,
		Description: f.Description,
	}

	if f.Type == TypeFile {
		s.Type = TypeString
		s.Format = formatBinary
	}

	if f.Items != nil {
		s.Items = f.Items.Schema()
	}

	if f.Properties.Len() > 0 {
		s.Properties = make(map[string]*jsonschema.Schema, f.Properties.Len())

		for _, name := range f.Properties.Keys() {
			child, _ := f.Properties.Get(name)
			s.Properties[name] = child.Schema()
			s.PropertyOrder = append(s.PropertyOrder, name)
		}
	}

	if f.Example != nil {
		s.Examples = []any{f.Example.Value()}
	}

	return s
}

// Schema converts p to a JSON Schema titled with the parameter name.
func (p *Param) Schema() *jsonschema.Schema {
	s := p.Field.Schema()
	s.Title = p.Title

	return s
}

// InputSchema returns an object schema describing the document's
// parameters, in declaration order.
func (d *Document) InputSchema() *jsonschema.Schema {
	s := &jsonschema.Schema{
		Type:        TypeObject,
		Title:       d.Name,
		Description: d.Description,
	}

	if len(d.Params) == 0 {
		return s
	}

	s.Properties = make(map[string]*jsonschema.Schema, len(d.Params))

	for _, p := range d.Params {
		s.Properties[p.Title] = p.Schema()
		s.PropertyOrder = append(s.PropertyOrder, p.Title)
	}

	return s
}

// ReturnsSchema returns the schema of the document's return value, or nil
// when it declares none.
func (d *Document) ReturnsSchema() *jsonschema.Schema {
	return d.Returns.Schema()
}
