package buffer

import (
	"errors"
	"fmt"
)

// ErrStaleMarker is returned when a marker whose line was deleted is dereferenced.
var ErrStaleMarker = errors.New("stale marker: referenced line was deleted")

// RangeError reports a line number outside [1, Length].
type RangeError struct {
	Line   int
	Length int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("line %d out of range [1, %d]", e.Line, e.Length)
}

// A Marker references one line of a Buffer and follows it across inserts and
// deletes. When the referenced line is deleted the marker becomes invalid.
type Marker struct {
	buf      *Buffer
	line     int // 0 once invalidated
	released bool
}

// Line returns the current 1-indexed line number.
func (m *Marker) Line() (int, error) {
	if m.line == 0 { return 0, ErrStaleMarker }
	return m.line, nil
}

func (m *Marker) Valid() bool { return m.line != 0 }

func (m *Marker) Buffer() *Buffer { return m.buf }

// Release detaches the marker from its buffer. The marker keeps reporting its
// last line but no longer follows edits.
func (m *Marker) Release() { m.released = true }

func (m *Marker) String() string {
	if m.line == 0 { return "invalid" }
	return fmt.Sprint(m.line)
}
