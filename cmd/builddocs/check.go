package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"golang.org/x/term"

	"go.jacobcolvin.com/builddocs/docschema"
)

// errDrift is returned by --check when the output file is out of date. The
// diff has already been printed, so main exits without repeating it.
var errDrift = errors.New("output is out of date")

func (r *runner) check(out []byte) error {
	if r.cfg.Output == "" || r.cfg.Output == "-" {
		return fmt.Errorf("%w: --%s requires --%s", docschema.ErrInvalidOption,
			r.cfg.Flags.Check, r.cfg.Flags.Output)
	}

	current, err := os.ReadFile(r.cfg.Output)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", docschema.ErrReadInput, err)
	}

	if string(current) == string(out) {
		return nil
	}

	_, err = io.WriteString(r.stdout, diffLines(string(current), string(out), useColor(r.stdout)))
	if err != nil {
		return fmt.Errorf("%w: %w", docschema.ErrWriteOutput, err)
	}

	return fmt.Errorf("%w: %s", errDrift, r.cfg.Output)
}

// diffLines renders a line diff from want to got. Removed lines start with
// "-", added lines with "+", and unchanged lines with a space.
func diffLines(want, got string, colored bool) string {
	dmp := diffmatchpatch.New()

	a, b, lines := dmp.DiffLinesToChars(want, got)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	added := color.New(color.FgGreen)
	removed := color.New(color.FgRed)

	for _, c := range []*color.Color{added, removed} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	var sb strings.Builder

	for _, d := range diffs {
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}

			if !strings.HasSuffix(line, "\n") {
				line += "\n"
			}

			switch d.Type {
			case diffmatchpatch.DiffInsert:
				sb.WriteString(added.Sprint("+" + line))
			case diffmatchpatch.DiffDelete:
				sb.WriteString(removed.Sprint("-" + line))
			case diffmatchpatch.DiffEqual:
				sb.WriteString(" " + line)
			}
		}
	}

	return sb.String()
}

// useColor reports whether w is a terminal.
func useColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd())) //nolint:gosec // File descriptors fit in int.
}
