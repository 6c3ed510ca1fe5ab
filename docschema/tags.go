package docschema

import (
	"regexp"
	"strings"
)

// TagKind identifies an annotation tag recognized by the extractor.
type TagKind int

// Tag kinds. @error is an alias of @throws and shares its grammar.
const (
	TagUnknown TagKind = iota
	TagParam
	TagReturns
	TagThrows
	TagErrorAlias
	TagSecret
	TagName
)

var tagNames = map[TagKind]string{
	TagUnknown:    "unknown",
	TagParam:      "param",
	TagReturns:    "returns",
	TagThrows:     "throws",
	TagErrorAlias: "error",
	TagSecret:     "secret",
	TagName:       "name",
}

// KindOf returns the [TagKind] for a tag name as written after "@". It
// returns [TagUnknown] for unrecognized names.
func KindOf(name string) TagKind {
	for kind, n := range tagNames {
		if kind != TagUnknown && n == name {
			return kind
		}
	}

	return TagUnknown
}

func (k TagKind) String() string {
	if n, ok := tagNames[k]; ok {
		return n
	}

	return tagNames[TagUnknown]
}

var (
	// {type} path[=default] - description
	paramRegex = regexp.MustCompile(
		`^\{(.*)\}\s+(\w+(?:(?:\[\])*\.\w+)*)(?:=("[\s\S]+"|\S+)?)?[\s-]+([\s\S]+)$`)
	// {type} description
	returnsRegex = regexp.MustCompile(`^\{(.*)\}\s+([\s\S]+)$`)
	// [{type}] [description]
	throwsRegex = regexp.MustCompile(`^(?:\{(.*?)\})?\s*([\s\S]+)?$`)
	// key description
	secretRegex = regexp.MustCompile(`^(\w+)\s+([\s\S]+)$`)
	nameRegex   = regexp.MustCompile(`^\S+$`)
	// [name: ]description
	headlineRegex = regexp.MustCompile(`^(?:(\w+):\W+)?([\s\S]+)`)
)

// paramTag is the flat result of the param grammar.
type paramTag struct {
	Type        string
	Path        string
	Default     string
	Description string
	HasDefault  bool
}

func parseParamTag(value string) (paramTag, error) {
	m := paramRegex.FindStringSubmatch(value)
	if m == nil {
		return paramTag{}, &TagError{Kind: TagParam, Value: value}
	}

	return paramTag{
		Type:        m[1],
		Path:        m[2],
		Default:     m[3],
		HasDefault:  m[3] != "",
		Description: m[4],
	}, nil
}

type returnsTag struct {
	Type        string
	Description string
}

func parseReturnsTag(value string) (returnsTag, error) {
	m := returnsRegex.FindStringSubmatch(value)
	if m == nil {
		return returnsTag{}, &TagError{Kind: TagReturns, Value: value}
	}

	return returnsTag{Type: m[1], Description: m[2]}, nil
}

func parseThrowsTag(kind TagKind, value string) (Throws, error) {
	m := throwsRegex.FindStringSubmatch(value)
	if m == nil || (m[1] == "" && m[2] == "") {
		return Throws{}, &TagError{Kind: kind, Value: value}
	}

	return Throws{Type: m[1], Description: m[2]}, nil
}

func parseSecretTag(value string) (Secret, error) {
	m := secretRegex.FindStringSubmatch(value)
	if m == nil {
		return Secret{}, &TagError{Kind: TagSecret, Value: value}
	}

	return Secret{Key: m[1], Description: m[2]}, nil
}

func parseNameTag(value string) (string, error) {
	if !nameRegex.MatchString(value) {
		return "", &TagError{Kind: TagName, Value: value}
	}

	return value, nil
}

// parseHeadline splits the first comment line into an optional "name:"
// prefix and the description.
func parseHeadline(line string) (name, description string) {
	m := headlineRegex.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", ""
	}

	return m[1], m[2]
}
