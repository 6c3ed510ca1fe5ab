package docschema

import (
	"encoding/json"
)

type docKind int

const (
	docFull docKind = iota
	// docEmpty is produced for a source with no comment blocks.
	docEmpty
	// docStub is injected for an expected name with no matching block.
	docStub
)

// Document is the structured documentation of one annotated function.
//
// Params holds root parameters only; nested parameters live in their
// ancestors' properties. Returns is nil when no @returns tag is present.
type Document struct {
	Returns         *Field   `json:"returns"`
	Errors          Errors   `json:"errors"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	FullDescription string   `json:"fullDescription"`
	Params          []*Param `json:"params"`
	Throws          []Throws `json:"throws"`
	Secrets         []Secret `json:"secrets"`
	kind            docKind
}

// IsStub reports whether d was injected for an expected name that had no
// matching comment block, or produced from a source with no blocks.
func (d *Document) IsStub() bool {
	return d.kind != docFull
}

// Param returns the root parameter with the given title.
func (d *Document) Param(title string) (*Param, bool) {
	for _, p := range d.Params {
		if p.Title == title {
			return p, true
		}
	}

	return nil, false
}

// MarshalJSON implements [json.Marshaler]. Empty documents render only
// their name, and stubs their name and an empty description.
func (d Document) MarshalJSON() ([]byte, error) {
	switch d.kind {
	case docEmpty:
		return json.Marshal(struct {
			Name string `json:"name"`
		}{d.Name})

	case docStub:
		return json.Marshal(struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}{d.Name, ""})

	case docFull:
	}

	type document struct {
		Name            string   `json:"name"`
		Description     string   `json:"description"`
		FullDescription string   `json:"fullDescription"`
		Params          []*Param `json:"params"`
		Throws          []Throws `json:"throws"`
		Errors          Errors   `json:"errors"`
		Secrets         []Secret `json:"secrets"`
		Returns         *Field   `json:"returns"`
	}

	return json.Marshal(document{
		Name:            d.Name,
		Description:     d.Description,
		FullDescription: d.FullDescription,
		Params:          nonNil(d.Params),
		Throws:          nonNil(d.Throws),
		Errors:          nonNilMap(d.Errors),
		Secrets:         nonNil(d.Secrets),
		Returns:         d.Returns,
	})
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}

	return s
}

func nonNilMap(e Errors) Errors {
	if e == nil {
		return Errors{}
	}

	return e
}
