// Package stringtest provides helpers for writing multi-line test inputs
// and expectations.
package stringtest

import "strings"

// Input dedents a raw string literal so test fixtures can be indented with
// the surrounding code. One leading newline is removed, as is the final line
// when it holds only the indentation before the closing backtick.
// Whitespace-only lines become empty, and the indentation common to all
// non-empty lines is stripped.
//
// Example:
//
//	src := stringtest.Input(`
//		/*
//		 * createUser: Creates a user
//		 */
//	`) // -> "/*\n * createUser: Creates a user\n */"
func Input(s string) string {
	s = strings.TrimPrefix(s, "\n")
	if i := strings.LastIndexByte(s, '\n'); i >= 0 && strings.TrimSpace(s[i:]) == "" {
		s = s[:i]
	}

	lines := strings.Split(s, "\n")
	indent := -1

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""

			continue
		}

		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}

	if indent > 0 {
		for i, line := range lines {
			if line != "" {
				lines[i] = line[indent:]
			}
		}
	}

	return strings.Join(lines, "\n")
}

// JoinLF joins lines with LF endings, for fixtures whose line breaks must
// be explicit.
//
//	src := stringtest.JoinLF("/*", " * hello: Says hello", " */")
func JoinLF(lines ...string) string {
	return strings.Join(lines, "\n")
}

// JoinCRLF joins lines with CRLF endings, for sources saved on Windows.
func JoinCRLF(lines ...string) string {
	return strings.Join(lines, "\r\n")
}
