package operations

import "fmt"

type Verb int

const (
	Unknown Verb = iota
	Buf          // buf
	Cfg          // cfg
	List         // l
	Select       // s
	SelectListed // sl
	SelectAll    // sa
	Write        // w
	WriteAll     // wa
	Delete       // d
	Next         // n
	Insert       // p, a, e with flags
	Length       // #l
	SelLength    // #s
	Macro        // mm
	Script       // script
	Comment      // :
	Quit         // q
	LineText     // lt
	Find         // f
	Yank         // y
	Shell        // !
	Diff         // diff
	Changes      // chg
)

var verbs = map[string]Verb{
	"buf":    Buf,
	"cfg":    Cfg,
	"l":      List,
	"s":      Select,
	"sl":     SelectListed,
	"sa":     SelectAll,
	"w":      Write,
	"wa":     WriteAll,
	"d":      Delete,
	"n":      Next,
	"#l":     Length,
	"#s":     SelLength,
	"mm":     Macro,
	"script": Script,
	":":      Comment,
	"q":      Quit,
	"lt":     LineText,
	"f":      Find,
	"y":      Yank,
	"!":      Shell,
	"diff":   Diff,
	"chg":    Changes,
}

// ParseVerb maps a verb name to its tag. A name is an insert verb only when
// all of its letters parse as a mode followed by flags.
func ParseVerb(name string) Verb {
	if v, ok := verbs[name]; ok { return v }
	if _, err := ParseInsert(name); err == nil { return Insert }
	return Unknown
}

// Mode is where the insert family places its lines relative to the anchor.
type Mode byte

const (
	Prepend Mode = 'p' // before anchor.first
	Append  Mode = 'a' // after anchor.last
	Replace Mode = 'e' // in place of the anchor
)

// InsertFlags are the suffix letters of an insert family verb.
type InsertFlags struct {
	Mode      Mode
	Anchor    bool // s: first argument token is the anchor range
	FromRange bool // b: next argument token is the source range
	Move      bool // m: delete the source range afterwards, needs b
	Quiet     bool // q: leave the selection alone
	Clipboard bool // c: lines come from the clipboard
	Command   bool // x: lines are the output of the remaining argument run as a shell command
}

// ParseInsert reads the verb letters left to right. The first letter is the
// mode, every following letter must be a known flag.
func ParseInsert(name string) (InsertFlags, error) {
	flags := InsertFlags{}
	if len(name) == 0 { return flags, fmt.Errorf("empty insert verb") }

	switch Mode(name[0]) {
	case Prepend, Append, Replace:
		flags.Mode = Mode(name[0])
	default:
		return flags, fmt.Errorf("unknown insert mode %q", name[0])
	}

	for _, c := range name[1:] {
		switch c {
		case 's': flags.Anchor = true
		case 'b': flags.FromRange = true
		case 'm': flags.Move = true
		case 'q': flags.Quiet = true
		case 'c': flags.Clipboard = true
		case 'x': flags.Command = true
		default:
			return flags, fmt.Errorf("unknown flag %q in %s", c, name)
		}
	}
	return flags, nil
}

// Sources counts how many line sources the flags ask for.
func (f InsertFlags) Sources() int {
	n := 0
	for _, set := range []bool{f.FromRange, f.Clipboard, f.Command} {
		if set { n++ }
	}
	return n
}
