package selection

import (
	"aled/internal/buffer"
	"errors"
	"fmt"
	"iter"
)

var ErrNoSelection = errors.New("no selection")

// Range is an inclusive span of lines between two markers of one buffer.
// Its bounds follow the buffer through the markers until one of them is
// invalidated, then the range is invalid.
type Range struct {
	First *buffer.Marker
	Last  *buffer.Marker
	Buf   int // index into the editor buffers, 0 based

	buffer *buffer.Buffer
}

// New builds a range over buffers[buf]. Bounds below 1 are clamped to 1 and
// swapped when given in reverse order.
func New(buffers []*buffer.Buffer, first, last, buf int) (*Range, error) {
	if buf < 0 || buf >= len(buffers) { return nil, fmt.Errorf("no buffer %d", buf+1) }
	b := buffers[buf]

	first = max(first, 1)
	last = max(last, 1)
	if last < first { first, last = last, first }

	fm, err := b.Marker(first)
	if err != nil { return nil, err }
	lm, err := b.Marker(last)
	if err != nil { fm.Release(); return nil, err }

	return &Range{First: fm, Last: lm, Buf: buf, buffer: b}, nil
}

// FromMarkers builds a range from existing markers of the same buffer.
func FromMarkers(first, last *buffer.Marker, buf int) (*Range, error) {
	if first.Buffer() != last.Buffer() { return nil, errors.New("markers belong to different buffers") }
	f, err := first.Line()
	if err != nil { return nil, err }
	l, err := last.Line()
	if err != nil { return nil, err }
	if l < f { first, last = last, first }
	return &Range{First: first, Last: last, Buf: buf, buffer: first.Buffer()}, nil
}

// Whole selects every line of buffers[buf].
func Whole(buffers []*buffer.Buffer, buf int) (*Range, error) {
	if buf < 0 || buf >= len(buffers) { return nil, fmt.Errorf("no buffer %d", buf+1) }
	return New(buffers, 1, buffers[buf].Len(), buf)
}

func (r *Range) Buffer() *buffer.Buffer { return r.buffer }

func (r *Range) Valid() bool { return r.First.Valid() && r.Last.Valid() }

// Bounds returns the current first and last line.
func (r *Range) Bounds() (int, int, error) {
	f, err := r.First.Line()
	if err != nil { return 0, 0, err }
	l, err := r.Last.Line()
	if err != nil { return 0, 0, err }
	return f, l, nil
}

func (r *Range) Len() (int, error) {
	f, l, err := r.Bounds()
	if err != nil { return 0, err }
	return l - f + 1, nil
}

// Contains reports whether line lies within the current bounds.
// An invalid range contains nothing.
func (r *Range) Contains(line int) bool {
	f, l, err := r.Bounds()
	if err != nil { return false }
	return line >= f && line <= l
}

// All yields (line number, text) for the lines the markers point at when the
// iteration starts. It can be ranged over repeatedly and always reflects the
// current buffer content.
func (r *Range) All() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		f, l, err := r.Bounds()
		if err != nil { return }
		for n := f; n <= l && n <= r.buffer.Len(); n++ {
			if !yield(n, r.buffer.Lines[n-1]) { return }
		}
	}
}

// Iterate is All but fails up front when the range is invalid.
func (r *Range) Iterate() (iter.Seq2[int, string], error) {
	if _, _, err := r.Bounds(); err != nil { return nil, err }
	return r.All(), nil
}

// Text copies the current lines of the range.
func (r *Range) Text() ([]string, error) {
	seq, err := r.Iterate()
	if err != nil { return nil, err }
	lines := make([]string, 0)
	for _, text := range seq { lines = append(lines, text) }
	return lines, nil
}

// Delete removes every line of the range from its buffer.
func (r *Range) Delete() error {
	f, _, err := r.Bounds()
	if err != nil { return err }
	num, _ := r.Len()
	for range num {
		if err := r.buffer.Delete(f); err != nil { return err }
	}
	return nil
}

// Release detaches both markers from the buffer.
func (r *Range) Release() {
	r.First.Release()
	r.Last.Release()
}

// String renders the range as "first-last@buffer". The buffer is printed
// 1-indexed, as the range grammar reads it, while Buf itself counts from 0.
func (r *Range) String() string {
	f, l, err := r.Bounds()
	if err != nil { return "invalid" }
	return fmt.Sprintf("%d-%d@%d", f, l, r.Buf+1)
}
