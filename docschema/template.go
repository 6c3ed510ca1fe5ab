package docschema

import (
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
	"github.com/expr-lang/expr/vm"
)

var (
	placeholderRegex = regexp.MustCompile(`\$\{([\s\S]+?)\}`)
	identRegex       = regexp.MustCompile(`^[A-Za-z_$][\w$]*$`)
)

// Template is an error description compiled into a reusable formatter.
// Each ${...} placeholder holds a bare identifier, which is looked up
// directly, or an expression evaluated against the variables passed to
// [Template.Execute].
type Template struct {
	source string
	parts  []templatePart
	vars   []string
}

// templatePart is literal text, a variable lookup or a compiled expression.
type templatePart struct {
	program *vm.Program
	text    string
	ident   string
}

// CompileTemplate compiles source. It fails when a placeholder expression
// does not parse.
func CompileTemplate(source string) (*Template, error) {
	t := &Template{source: source}

	last := 0

	for _, loc := range placeholderRegex.FindAllStringSubmatchIndex(source, -1) {
		if loc[0] > last {
			t.parts = append(t.parts, templatePart{text: source[last:loc[0]]})
		}

		code := strings.TrimSpace(source[loc[2]:loc[3]])

		// Identifiers such as "contains" are operators to expr.
		if identRegex.MatchString(code) {
			if !slices.Contains(t.vars, code) {
				t.vars = append(t.vars, code)
			}

			t.parts = append(t.parts, templatePart{ident: code})
			last = loc[1]

			continue
		}

		tree, err := parser.Parse(code)
		if err != nil {
			return nil, fmt.Errorf("placeholder %q: %w", code, err)
		}

		program, err := expr.Compile(code)
		if err != nil {
			return nil, fmt.Errorf("placeholder %q: %w", code, err)
		}

		for _, name := range freeIdentifiers(tree.Node) {
			if !slices.Contains(t.vars, name) {
				t.vars = append(t.vars, name)
			}
		}

		t.parts = append(t.parts, templatePart{program: program})
		last = loc[1]
	}

	if last < len(source) {
		t.parts = append(t.parts, templatePart{text: source[last:]})
	}

	return t, nil
}

// Execute renders the template. Every variable named by a placeholder must
// be present in vars, otherwise [ErrMissingTemplateVariable] is returned.
// Values are formatted with [fmt.Sprint]; nil renders as "".
func (t *Template) Execute(vars map[string]any) (string, error) {
	for _, name := range t.vars {
		if _, ok := vars[name]; !ok {
			return "", fmt.Errorf("%w: %q", ErrMissingTemplateVariable, name)
		}
	}

	var sb strings.Builder

	for _, p := range t.parts {
		var out any

		switch {
		case p.ident != "":
			out = vars[p.ident]
		case p.program != nil:
			v, err := expr.Run(p.program, vars)
			if err != nil {
				return "", fmt.Errorf("evaluate placeholder: %w", err)
			}

			out = v
		default:
			sb.WriteString(p.text)

			continue
		}

		if out != nil {
			sb.WriteString(fmt.Sprint(out))
		}
	}

	return sb.String(), nil
}

// Source returns the uncompiled template text.
func (t *Template) Source() string { return t.source }

// Variables returns the variable names referenced by placeholders, in order
// of first use.
func (t *Template) Variables() []string { return t.vars }

func (t *Template) String() string { return t.source }

// MarshalJSON renders the template as its source text.
func (t *Template) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.source)
}

// identVisitor collects identifiers that are not function names.
type identVisitor struct {
	callees map[ast.Node]bool
	names   []string
}

func (v *identVisitor) Visit(node *ast.Node) {
	switch n := (*node).(type) {
	case *ast.CallNode:
		v.callees[n.Callee] = true
	case *ast.IdentifierNode:
		if v.callees[n] || strings.HasPrefix(n.Value, "$") {
			return
		}

		if !slices.Contains(v.names, n.Value) {
			v.names = append(v.names, n.Value)
		}
	}
}

// freeIdentifiers returns the variables an expression reads. Walk visits
// children before parents, so callees are collected from a first pass.
func freeIdentifiers(node ast.Node) []string {
	callees := &identVisitor{callees: make(map[ast.Node]bool)}
	ast.Walk(&node, callees)

	v := &identVisitor{callees: callees.callees}
	ast.Walk(&node, v)

	return v.names
}

// Errors maps declared error types to their compiled description templates.
type Errors map[string]*Template

// Format renders the template registered for typ.
func (e Errors) Format(typ string, vars map[string]any) (string, error) {
	t, ok := e[typ]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownErrorType, typ)
	}

	return t.Execute(vars)
}

// compileErrors builds [Errors] from throws entries. Entries without a type
// are skipped; a later entry for the same type replaces an earlier one.
func compileErrors(throws []Throws) (Errors, error) {
	errs := make(Errors)

	for _, th := range throws {
		if th.Type == "" {
			continue
		}

		t, err := CompileTemplate(th.Description)
		if err != nil {
			return nil, &TagError{Kind: th.kind, Value: th.raw, Err: err}
		}

		errs[th.Type] = t
	}

	return errs, nil
}
