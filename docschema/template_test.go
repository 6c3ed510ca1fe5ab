package docschema_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/builddocs/docschema"
	"go.jacobcolvin.com/builddocs/jsdoc"
)

func TestTemplateExecute(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		vars     map[string]any
		source   string
		want     string
		wantVars []string
	}{
		"interpolates identifiers": {
			source:   "Will throw an ${test} error if x is ${x}",
			vars:     map[string]any{"test": "a", "x": "b"},
			want:     "Will throw an a error if x is b",
			wantVars: []string{"test", "x"},
		},
		"no placeholders": {
			source: "Must provide all required fields",
			want:   "Must provide all required fields",
		},
		"repeated identifier": {
			source:   "${id} then ${id}",
			vars:     map[string]any{"id": 7},
			want:     "7 then 7",
			wantVars: []string{"id"},
		},
		"non-string values": {
			source:   "limit ${limit}, strict ${strict}",
			vars:     map[string]any{"limit": 2.5, "strict": true},
			want:     "limit 2.5, strict true",
			wantVars: []string{"limit", "strict"},
		},
		"nil renders empty": {
			source:   "[${v}]",
			vars:     map[string]any{"v": nil},
			want:     "[]",
			wantVars: []string{"v"},
		},
		"expressions": {
			source:   "${upper(name)} has ${len(items)} items",
			vars:     map[string]any{"name": "cart", "items": []any{1, 2}},
			want:     "CART has 2 items",
			wantVars: []string{"name", "items"},
		},
		"member access": {
			source:   "user ${user.id} is locked",
			vars:     map[string]any{"user": map[string]any{"id": "u1"}},
			want:     "user u1 is locked",
			wantVars: []string{"user"},
		},
		"whitespace inside placeholder": {
			source:   "${ field } is required",
			vars:     map[string]any{"field": "email"},
			want:     "email is required",
			wantVars: []string{"field"},
		},
		"identifiers that are expr operators": {
			source:   "No ${contains} found, ${startsWith} or ${and}",
			vars:     map[string]any{"contains": "needle", "startsWith": "prefix", "and": 1},
			want:     "No needle found, prefix or 1",
			wantVars: []string{"contains", "startsWith", "and"},
		},
		"dollar identifiers": {
			source:   "${$ref} missing",
			vars:     map[string]any{"$ref": "#/a"},
			want:     "#/a missing",
			wantVars: []string{"$ref"},
		},
		"extra variables are ignored": {
			source:   "${a}",
			vars:     map[string]any{"a": "x", "b": "y"},
			want:     "x",
			wantVars: []string{"a"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			tmpl, err := docschema.CompileTemplate(tc.source)
			require.NoError(t, err)
			assert.Equal(t, tc.source, tmpl.Source())
			assert.Equal(t, tc.wantVars, tmpl.Variables())

			got, err := tmpl.Execute(tc.vars)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTemplateMissingVariable(t *testing.T) {
	t.Parallel()

	tmpl, err := docschema.CompileTemplate("Will throw an ${test} error if x is ${x}")
	require.NoError(t, err)

	_, err = tmpl.Execute(map[string]any{"test": "a"})
	require.ErrorIs(t, err, docschema.ErrMissingTemplateVariable)
	assert.Contains(t, err.Error(), `"x"`)

	_, err = tmpl.Execute(nil)
	require.ErrorIs(t, err, docschema.ErrMissingTemplateVariable)
}

func TestCompileTemplateError(t *testing.T) {
	t.Parallel()

	_, err := docschema.CompileTemplate("bad ${a +} placeholder")
	require.Error(t, err)
}

func TestErrorsFormat(t *testing.T) {
	t.Parallel()

	validation, err := docschema.CompileTemplate("${field} is required")
	require.NoError(t, err)

	errs := docschema.Errors{"ValidationError": validation}

	msg, err := errs.Format("ValidationError", map[string]any{"field": "email"})
	require.NoError(t, err)
	assert.Equal(t, "email is required", msg)

	_, err = errs.Format("NotFound", nil)
	require.ErrorIs(t, err, docschema.ErrUnknownErrorType)

	out, err := json.Marshal(errs)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ValidationError":"${field} is required"}`, string(out))
}

func TestExtractErrorsOperatorIdentifier(t *testing.T) {
	t.Parallel()

	block := jsdoc.Block{
		Lines: []string{"find: Finds a value"},
		Tags:  []jsdoc.Tag{{Name: "throws", Value: "{NotFound} No ${contains} found"}},
	}

	doc, err := docschema.New().ExtractBlock(block, "")
	require.NoError(t, err)

	msg, err := doc.Errors.Format("NotFound", map[string]any{"contains": "key"})
	require.NoError(t, err)
	assert.Equal(t, "No key found", msg)
}
