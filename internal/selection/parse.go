package selection

import (
	"aled/internal/buffer"
	"fmt"
)

// DefaultWindow is the ~ window size when no number follows it.
const DefaultWindow = 10

// Parse resolves a range expression:
//
//	[*][first][-[last] | +count | ~[window]][@buffer]
//
// Missing parts default to the current selection, or to the whole buffer
// after a leading '*'. A single given first line selects just that line.
// sel may be nil when nothing is selected yet.
func Parse(expr string, sel *Range, buffers []*buffer.Buffer) (*Range, error) {
	p := scanner{s: expr}

	first, last := 1, 0
	toEnd := true

	if !p.accept('*') {
		if sel == nil { return nil, ErrNoSelection }
		f, l, err := sel.Bounds()
		if err != nil { return nil, err }
		first, last, toEnd = f, l, false
	}

	if n, ok := p.takeInt(); ok {
		first, last, toEnd = n, n, false
	}

	switch {
	case p.accept('-'):
		if n, ok := p.takeInt(); ok {
			last, toEnd = n, false
		} else {
			toEnd = true
		}
	case p.accept('+'):
		n, _ := p.takeInt()
		last, toEnd = first+n, false
	case p.accept('~'):
		n, ok := p.takeInt()
		if !ok { n = DefaultWindow }
		half := n / 2
		last, toEnd = first+half, false
		first -= half
	}

	bufid := 0
	if sel != nil { bufid = sel.Buf }
	if p.accept('@') {
		d := p.peek()
		if d < '1' || d > '9' { return nil, fmt.Errorf("bad buffer in range %q", expr) }
		bufid = int(d-'0') - 1
	}
	if bufid >= len(buffers) { return nil, fmt.Errorf("no buffer %d", bufid+1) }

	if toEnd { last = buffers[bufid].Len() }
	return New(buffers, first, last, bufid)
}

type scanner struct {
	s string
}

func (p *scanner) peek() byte {
	if len(p.s) == 0 { return 0 }
	return p.s[0]
}

func (p *scanner) accept(c byte) bool {
	if p.peek() != c { return false }
	p.s = p.s[1:]
	return true
}

func (p *scanner) takeInt() (int, bool) {
	i := 0
	for i < len(p.s) && p.s[i] >= '0' && p.s[i] <= '9' { i++ }
	if i == 0 { return 0, false }

	n := 0
	for _, c := range p.s[:i] {
		if n > (1<<31)/10 { n = 1 << 31; break } // absurd line numbers fail later as out of range
		n = n*10 + int(c-'0')
	}
	p.s = p.s[i:]
	return n, true
}
