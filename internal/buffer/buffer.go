package buffer

import (
	edio "aled/internal/io"
	"fmt"
	"weak"
)

// Buffer is an in-memory line collection backed by one file. It tracks every
// marker created through it without keeping the markers alive.
type Buffer struct {
	Path      string
	Lines     []string
	IsChanged bool // unsaved edits

	markers   []weak.Pointer[Marker]
	compactAt int // registry size that triggers pruning on registration
}

const minCompact = 16

// Load reads path into a new buffer. Unreadable files give a single empty line.
func Load(path string) *Buffer {
	return New(path, edio.ReadLines(path))
}

func New(path string, lines []string) *Buffer {
	return &Buffer{Path: path, Lines: lines}
}

func (b *Buffer) Len() int { return len(b.Lines) }

// Marker registers and returns a marker for line (1-indexed).
func (b *Buffer) Marker(line int) (*Marker, error) {
	if line < 1 || line > len(b.Lines) { return nil, &RangeError{line, len(b.Lines)} }
	if len(b.markers) >= b.compactAt {
		b.eachLive(func(*Marker) {})
		b.compactAt = max(minCompact, 2*len(b.markers))
	}
	m := &Marker{buf: b, line: line}
	b.markers = append(b.markers, weak.Make(m))
	return m, nil
}

// Line returns the text of line n (1-indexed).
func (b *Buffer) Line(n int) (string, error) {
	if n < 1 || n > len(b.Lines) { return "", &RangeError{n, len(b.Lines)} }
	return b.Lines[n-1], nil
}

// Delete removes line n. A marker on n is invalidated, markers below shift up.
func (b *Buffer) Delete(line int) error {
	if line < 1 || line > len(b.Lines) { return &RangeError{line, len(b.Lines)} }

	b.eachLive(func(m *Marker) {
		if m.line == line {
			m.line = 0
		} else if m.line > line {
			m.line--
		}
	})

	b.Lines = append(b.Lines[:line-1], b.Lines[line:]...)
	b.IsChanged = true
	return nil
}

// InsertMany splices lines right after line `after`; 0 prepends. Markers on
// lines past the insertion point move down by len(lines).
//
// A marker on `after` itself stays put: only lines inserted before a marker
// move it, and appending after a range keeps its last line in place.
func (b *Buffer) InsertMany(after int, lines []string) error {
	if after < 0 || after > len(b.Lines) { return &RangeError{after, len(b.Lines)} }
	if len(lines) == 0 { return nil }

	n := len(lines)
	b.eachLive(func(m *Marker) {
		if m.line > after { m.line += n } // strictly greater, see above
	})

	spliced := make([]string, 0, len(b.Lines)+n)
	spliced = append(spliced, b.Lines[:after]...)
	spliced = append(spliced, lines...)
	spliced = append(spliced, b.Lines[after:]...)
	b.Lines = spliced
	b.IsChanged = true
	return nil
}

// Save writes the buffer back to its file.
func (b *Buffer) Save() error {
	if err := edio.WriteLines(b.Path, b.Lines); err != nil {
		return fmt.Errorf("save %s: %w", b.Path, err)
	}
	b.IsChanged = false
	return nil
}

// LiveMarkers counts the markers still following edits.
func (b *Buffer) LiveMarkers() int {
	count := 0
	b.eachLive(func(*Marker) { count++ })
	return count
}

// eachLive calls f for every reachable, valid, attached marker and drops the
// registry entries of all others.
func (b *Buffer) eachLive(f func(m *Marker)) {
	live := b.markers[:0]
	for _, wp := range b.markers {
		m := wp.Value()
		if m == nil || m.released || m.line == 0 { continue }
		f(m)
		live = append(live, wp)
	}
	clear(b.markers[len(live):])
	b.markers = live
}
