package docschema

import (
	"bytes"
	"encoding/json"
)

// Properties is an insertion-ordered map of property name to [Field]. It
// marshals to a JSON object whose keys keep declaration order. The zero
// value is ready to use; a nil *Properties behaves as empty for reads.
type Properties struct {
	fields map[string]*Field
	keys   []string
}

// Set adds or replaces the named property. Replacing keeps the original
// position.
func (p *Properties) Set(name string, f *Field) {
	if p.fields == nil {
		p.fields = make(map[string]*Field)
	}

	if _, exists := p.fields[name]; !exists {
		p.keys = append(p.keys, name)
	}

	p.fields[name] = f
}

// Get returns the named property.
func (p *Properties) Get(name string) (*Field, bool) {
	if p == nil {
		return nil, false
	}

	f, ok := p.fields[name]

	return f, ok
}

// Keys returns property names in declaration order.
func (p *Properties) Keys() []string {
	if p == nil {
		return nil
	}

	return p.keys
}

// Len returns the number of properties.
func (p *Properties) Len() int {
	if p == nil {
		return 0
	}

	return len(p.keys)
}

// MarshalJSON implements [json.Marshaler].
func (p *Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, k := range p.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}

		val, err := json.Marshal(p.fields[k])
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}
