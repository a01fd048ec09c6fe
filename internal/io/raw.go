package io

import (
	"bufio"
	"io"
)

// RawReader reads operator input one line at a time with no editing of its own.
type RawReader struct {
	reader *bufio.Reader
}

func NewRawReader(r io.Reader) *RawReader {
	return &RawReader{reader: bufio.NewReader(r)}
}

// ReadRawLine blocks until a CR or LF and returns the text before it.
// A CR immediately followed by an already buffered LF consumes both.
// io.EOF is returned only when the input ends before any character.
func (rr *RawReader) ReadRawLine() (string, error) {
	out := make([]byte, 0, 80)
	for {
		ch, err := rr.reader.ReadByte()
		if err != nil {
			if err == io.EOF && len(out) > 0 { return string(out), nil }
			return string(out), err
		}

		if ch == '\n' { return string(out), nil }
		if ch == '\r' {
			// only peek at what is already buffered, a tty would block here
			if rr.reader.Buffered() > 0 {
				if next, _ := rr.reader.Peek(1); len(next) == 1 && next[0] == '\n' {
					rr.reader.ReadByte()
				}
			}
			return string(out), nil
		}
		out = append(out, ch)
	}
}
