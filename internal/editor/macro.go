package editor

import "strings"

// Expand replaces every top level {...} of text by the result of running its
// content as a command line in macro mode, with output muted. Nested braces
// are expanded by that inner run. An unclosed brace swallows the rest of the
// text, which is then run as the substitution.
func (e *Editor) Expand(text string) (string, error) {
	var out, inner strings.Builder
	depth := 0

	for _, c := range text {
		switch {
		case c == '{':
			if depth > 0 { inner.WriteRune(c) }
			depth++
		case c == '}' && depth > 0:
			depth--
			if depth > 0 { inner.WriteRune(c); continue }
			value, err := e.substitute(inner.String())
			if err != nil { return "", err }
			out.WriteString(value)
			inner.Reset()
		case depth > 0:
			inner.WriteRune(c)
		default:
			out.WriteRune(c)
		}
	}

	if depth > 0 {
		value, err := e.substitute(inner.String())
		if err != nil { return "", err }
		out.WriteString(value)
	}
	return out.String(), nil
}

func (e *Editor) substitute(command string) (string, error) {
	e.Out.Mute()
	defer e.Out.Unmute()
	return e.ExecuteLine(command, true)
}
