package editor

import (
	"aled/internal/buffer"
	"aled/internal/operations"
	"aled/internal/process"
	"aled/internal/selection"

	"fmt"
	"strconv"
	"strings"
)

// OnInsert runs the p, a and e verbs. Flags are consumed left to right: the
// verb letters first, then the anchor token for s, then the source token for
// b, and whatever is left is the literal first line (or the shell command for x).
func (e *Editor) OnInsert(verb string, args string) (string, error) {
	flags, err := operations.ParseInsert(verb)
	if err != nil { return "", err }
	if flags.Move && !flags.FromRange { return "", &AssertionError{"m needs b"} }
	if flags.Sources() > 1 { return "", &AssertionError{"only one of b, c, x"} }

	rest := args
	anchor := e.Selection
	if flags.Anchor {
		var token string
		token, rest = nextToken(rest)
		if anchor, err = e.parse(token); err != nil { return "", err }
		if flags.Quiet { defer anchor.Release() }
	}
	if anchor == nil { return "", selection.ErrNoSelection }

	var source *selection.Range
	var lines []string
	switch {
	case flags.FromRange:
		var token string
		token, rest = nextToken(rest)
		if source, err = e.parse(token); err != nil { return "", err }
		defer source.Release()
		lines, err = source.Text()
	case flags.Clipboard:
		var text string
		text, err = e.Clipboard.ReadAll()
		if err != nil { err = fmt.Errorf("clipboard: %w", err) }
		lines = strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	case flags.Command:
		lines, err = process.RunLines(e.ctx, rest)
	default:
		lines, err = e.readContinuation(rest)
	}
	if err != nil { return "", err }
	if len(lines) == 0 { return "0", nil }

	first, last, err := anchor.Bounds()
	if err != nil { return "", err }
	b := anchor.Buffer()

	insertAt := first - 1
	switch flags.Mode {
	case operations.Append:
		insertAt = last
	case operations.Replace:
		if err := anchor.Delete(); err != nil { return "", err }
	}

	newFirst, newLast, err := insertSpan(b, insertAt, lines)
	if err != nil { return "", err }

	if flags.Move {
		if err := source.Delete(); err != nil { return "", err }
	}

	if !flags.Quiet {
		var sel *selection.Range
		switch flags.Mode {
		case operations.Prepend:
			sel, err = selection.FromMarkers(newFirst, anchor.Last, anchor.Buf)
		case operations.Append:
			sel, err = selection.FromMarkers(anchor.First, newLast, anchor.Buf)
		case operations.Replace:
			sel, err = selection.FromMarkers(newFirst, newLast, anchor.Buf)
		}
		if err != nil { return "", err }
		e.Selection = sel
	}

	return strconv.Itoa(len(lines)), nil
}

// insertSpan inserts lines after line `after` and returns markers on the
// first and last inserted line.
func insertSpan(b *buffer.Buffer, after int, lines []string) (*buffer.Marker, *buffer.Marker, error) {
	if err := b.InsertMany(after, lines); err != nil { return nil, nil, err }
	first, err := b.Marker(after + 1)
	if err != nil { return nil, nil, err }
	last, err := b.Marker(after + len(lines))
	if err != nil { return nil, nil, err }
	return first, last, nil
}
