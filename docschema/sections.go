package docschema

import (
	"fmt"

	"go.jacobcolvin.com/builddocs/jsdoc"
)

// Throws is one @throws or @error entry. At least one of Type and
// Description is set.
type Throws struct {
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`

	raw  string
	kind TagKind
}

// Secret is one @secret entry.
type Secret struct {
	Key         string `json:"key"`
	Description string `json:"description"`
}

// resolveReturns validates every @returns tag and keeps the first. It
// returns nil when there is none.
func resolveReturns(tags []jsdoc.Tag) (*Field, error) {
	var returns *Field

	for _, tag := range tags {
		rt, err := parseReturnsTag(tag.Value)
		if err != nil {
			return nil, err
		}

		field, err := NormalizeType(rt.Type)
		if err != nil {
			return nil, fmt.Errorf("returns: %w", err)
		}

		if returns != nil {
			continue
		}

		field.Description = rt.Description
		returns = &field
	}

	return returns, nil
}

// resolveThrows parses @throws tags followed by @error tags, each group in
// declaration order.
func resolveThrows(block jsdoc.Block) ([]Throws, error) {
	throws := []Throws{}

	for _, kind := range []TagKind{TagThrows, TagErrorAlias} {
		for _, tag := range block.TagsNamed(kind.String()) {
			th, err := parseThrowsTag(kind, tag.Value)
			if err != nil {
				return nil, err
			}

			th.raw = tag.Value
			th.kind = kind
			throws = append(throws, th)
		}
	}

	return throws, nil
}

func resolveSecrets(tags []jsdoc.Tag) ([]Secret, error) {
	secrets := make([]Secret, 0, len(tags))

	for _, tag := range tags {
		s, err := parseSecretTag(tag.Value)
		if err != nil {
			return nil, err
		}

		secrets = append(secrets, s)
	}

	return secrets, nil
}
