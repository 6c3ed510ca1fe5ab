package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/google/jsonschema-go/jsonschema"

	"go.jacobcolvin.com/builddocs/docschema"
)

// render encodes docs in the given format. When single is set the first
// document is rendered as an object, otherwise all documents as an array.
func render(docs []*docschema.Document, single bool, format string, indent int) ([]byte, error) {
	if docs == nil {
		docs = []*docschema.Document{}
	}

	var v any = docs

	if format == docschema.FormatSchema {
		schemas := make([]*jsonschema.Schema, len(docs))
		for i, d := range docs {
			schemas[i] = d.InputSchema()
			schemas[i].Schema = docschema.Draft7
		}

		v = schemas

		if single && len(schemas) > 0 {
			v = schemas[0]
		}
	} else if single && len(docs) > 0 {
		v = docs[0]
	}

	out, err := marshalJSON(v, indent)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", docschema.ErrWriteOutput, err)
	}

	if format == docschema.FormatYAML {
		out, err = yaml.JSONToYAML(out)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", docschema.ErrWriteOutput, err)
		}

		return out, nil
	}

	return append(out, '\n'), nil
}

func marshalJSON(v any, indent int) ([]byte, error) {
	if indent == 0 {
		return json.Marshal(v)
	}

	return json.MarshalIndent(v, "", strings.Repeat(" ", indent))
}
