package docschema

import (
	"fmt"
	"strings"

	"go.jacobcolvin.com/builddocs/jsdoc"
)

// Param is a top-level parameter. Nested parameters declared with path
// notation are folded into Properties of their root, at any depth.
type Param struct {
	Title string `json:"title"`
	Field
}

// flatParam is a parsed @param tag before folding.
type flatParam struct {
	field *Field
	raw   string
	path  []pathSegment
}

// pathSegment is one step of a parameter path such as "items[].name". Arrays
// counts the "[]" markers that follow the segment name.
type pathSegment struct {
	name   string
	arrays int
}

func parsePath(path string) []pathSegment {
	parts := strings.Split(path, ".")
	segs := make([]pathSegment, 0, len(parts))

	for _, part := range parts {
		name := strings.TrimRight(part, "[]")
		segs = append(segs, pathSegment{
			name:   name,
			arrays: strings.Count(part[len(name):], arraySuffix),
		})
	}

	return segs
}

// resolveParams parses every @param tag and folds nested paths into their
// root parameters. Roots must be declared before their children.
func resolveParams(tags []jsdoc.Tag) ([]*Param, error) {
	flat := make([]flatParam, 0, len(tags))

	for _, tag := range tags {
		fp, err := parseParam(tag.Value)
		if err != nil {
			return nil, err
		}

		flat = append(flat, fp)
	}

	var (
		params []*Param
		roots  = make(map[string]*Param)
	)

	for _, fp := range flat {
		if len(fp.path) == 1 {
			name := fp.path[0].name
			if _, dup := roots[name]; dup {
				return nil, &TagError{
					Kind:  TagParam,
					Value: fp.raw,
					Err:   fmt.Errorf("duplicate param %q", name),
				}
			}

			p := &Param{Title: name, Field: *fp.field}
			roots[name] = p
			params = append(params, p)

			continue
		}

		err := attachNested(roots, fp)
		if err != nil {
			return nil, err
		}
	}

	for _, p := range params {
		err := checkBareObjects(p.Title, &p.Field)
		if err != nil {
			return nil, err
		}
	}

	return params, nil
}

func parseParam(value string) (flatParam, error) {
	tag, err := parseParamTag(value)
	if err != nil {
		return flatParam{}, err
	}

	field, err := NormalizeType(tag.Type)
	if err != nil {
		return flatParam{}, fmt.Errorf("param %q: %w", tag.Path, err)
	}

	field.Description = tag.Description

	if tag.HasDefault {
		field.Example, err = CoerceExample(field.Type, tag.Default)
		if err != nil {
			return flatParam{}, fmt.Errorf("param %q: %w", tag.Path, err)
		}
	}

	return flatParam{field: &field, raw: value, path: parsePath(tag.Path)}, nil
}

// attachNested walks fp's path from its root through the already-built tree
// and stores the field as a property of the final parent.
func attachNested(roots map[string]*Param, fp flatParam) error {
	root, ok := roots[fp.path[0].name]
	if !ok {
		return orphanError(fp, "root param is not declared")
	}

	parent := &root.Field
	parentSeg := fp.path[0]

	for i, seg := range fp.path[1:] {
		container, err := childContainer(parent, parentSeg)
		if err != nil {
			return orphanError(fp, err.Error())
		}

		if i == len(fp.path)-2 {
			if _, exists := container.Properties.Get(seg.name); exists {
				return &TagError{
					Kind:  TagParam,
					Value: fp.raw,
					Err:   fmt.Errorf("duplicate property %q", seg.name),
				}
			}

			if container.Properties == nil {
				container.Properties = &Properties{}
			}

			container.Properties.Set(seg.name, fp.field)

			return nil
		}

		next, ok := container.Properties.Get(seg.name)
		if !ok {
			return orphanError(fp, fmt.Sprintf("%q is not declared", seg.name))
		}

		parent = next
		parentSeg = seg
	}

	return nil
}

// childContainer returns the object field that receives children of parent.
// A plain segment requires an object parent, a "name[]" segment requires an
// array of objects.
func childContainer(parent *Field, seg pathSegment) (*Field, error) {
	switch seg.arrays {
	case 0:
		if parent.Type != TypeObject {
			return nil, fmt.Errorf("%q is %s, not object", seg.name, parent.Type)
		}

		return parent, nil

	case 1:
		if parent.Type != TypeArray || parent.Items == nil || parent.Items.Type != TypeObject {
			return nil, fmt.Errorf("%q is %s, not an array of objects", seg.name, parent.Type)
		}

		return parent.Items, nil
	}

	return nil, fmt.Errorf("%q: nested arrays are not supported", seg.name)
}

func orphanError(fp flatParam, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrOrphanedNestedParam, joinPath(fp.path), reason)
}

func joinPath(segs []pathSegment) string {
	parts := make([]string, len(segs))
	for i, s := range segs {
		parts[i] = s.name + strings.Repeat(arraySuffix, s.arrays)
	}

	return strings.Join(parts, ".")
}

// checkBareObjects fails when an object-shaped field, at any depth, never
// received nested properties.
func checkBareObjects(path string, f *Field) error {
	if !f.isObjectShaped() {
		return nil
	}

	container := f
	if f.Type == TypeArray {
		container = f.Items
	}

	if container.Properties.Len() == 0 {
		return fmt.Errorf("%w: %s", ErrUnsupportedBareObject, path)
	}

	for _, name := range container.Properties.Keys() {
		child, _ := container.Properties.Get(name)

		sep := "."
		if f.Type == TypeArray {
			sep = "[]."
		}

		err := checkBareObjects(path+sep+name, child)
		if err != nil {
			return err
		}
	}

	return nil
}
