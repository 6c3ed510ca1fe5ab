// Package jsdoc splits JavaScript source into annotation comment blocks.
//
// Source is parsed with the tree-sitter JavaScript grammar, so comment-like
// text inside string or template literals is never mistaken for a comment.
// Every /* ... */ comment becomes a [Block] holding its free-text lines and
// its "@tag value" lines, in source order. Line comments are ignored.
//
//	blocks, err := jsdoc.Parse(src)
//	for _, b := range blocks {
//	    for _, tag := range b.TagsNamed("param") {
//	        fmt.Println(tag.Value)
//	    }
//	}
package jsdoc

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

// ErrParse is returned when the source cannot be parsed.
var ErrParse = errors.New("parse source")

const nodeComment = "comment"

var tagLineRegex = regexp.MustCompile(`^@(\w+)(.*)$`)

// Tag is a single "@name value" line. Lines following a tag that do not
// start a new tag are folded into its Value.
type Tag struct {
	Name  string
	Value string
}

// Block is one block comment.
type Block struct {
	// Lines holds the text before the first tag, without leading or
	// trailing blank lines. Interior blank lines are kept as "".
	Lines []string
	// Tags holds every tag line in declaration order.
	Tags []Tag
}

// TagsNamed returns the tags whose name is any of names, preserving their
// order within the block.
func (b Block) TagsNamed(names ...string) []Tag {
	var tags []Tag

	for _, tag := range b.Tags {
		if slices.Contains(names, tag.Name) {
			tags = append(tags, tag)
		}
	}

	return tags
}

// Parse returns the block comments in src, in source order.
func Parse(src []byte) ([]Block, error) {
	return ParseContext(context.Background(), src)
}

// ParseContext is like [Parse] but stops when ctx is done.
func ParseContext(ctx context.Context, src []byte) ([]Block, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	defer tree.Close()

	var blocks []Block

	collectBlocks(tree.RootNode(), src, &blocks)

	return blocks, nil
}

// collectBlocks walks the syntax tree depth-first and appends a Block for
// every block comment node.
func collectBlocks(node *sitter.Node, src []byte, blocks *[]Block) {
	if node == nil {
		return
	}

	if node.Type() == nodeComment {
		text := node.Content(src)
		if strings.HasPrefix(text, "/*") {
			if b, ok := ParseComment(text); ok {
				*blocks = append(*blocks, b)
			}
		}

		return
	}

	for i := range int(node.ChildCount()) {
		collectBlocks(node.Child(i), src, blocks)
	}
}

// ParseComment splits the raw text of one block comment (including its
// delimiters) into a [Block]. It reports false when the comment holds
// neither text nor tags.
func ParseComment(text string) (Block, bool) {
	text = strings.TrimPrefix(text, "/*")
	text = strings.TrimSuffix(text, "*/")
	text = strings.TrimPrefix(text, "*")

	var b Block

	for _, line := range strings.Split(text, "\n") {
		line = cleanLine(line)

		if m := tagLineRegex.FindStringSubmatch(strings.TrimLeft(line, " \t")); m != nil {
			b.Tags = append(b.Tags, Tag{Name: m[1], Value: strings.TrimSpace(m[2])})

			continue
		}

		if len(b.Tags) > 0 {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}

			last := &b.Tags[len(b.Tags)-1]
			if last.Value == "" {
				last.Value = line
			} else {
				last.Value += " " + line
			}

			continue
		}

		b.Lines = append(b.Lines, line)
	}

	b.Lines = trimBlankLines(b.Lines)

	return b, len(b.Lines) > 0 || len(b.Tags) > 0
}

// cleanLine strips the leading " * " decoration and trailing whitespace.
func cleanLine(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "*")
	line = strings.TrimPrefix(line, " ")

	return strings.TrimRight(line, " \t\r")
}

func trimBlankLines(lines []string) []string {
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}

	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	if len(lines) == 0 {
		return nil
	}

	return lines
}
