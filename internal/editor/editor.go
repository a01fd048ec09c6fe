package editor

import (
	"aled/internal/buffer"
	"aled/internal/config"
	"aled/internal/highlighter"
	edio "aled/internal/io"
	. "aled/internal/logger"
	"aled/internal/selection"
	"aled/internal/ui"

	"context"
	"errors"
	"github.com/atotto/clipboard"
	"io"
	"strings"
)

// ErrQuit is returned once the operator confirmed q.
var ErrQuit = errors.New("quit")

// Editor is the whole session state shared by every command.
type Editor struct {
	Buffers    []*buffer.Buffer // loaded files, addressed 1-indexed by the operator
	Selection  *selection.Range // current selection, nil until a buffer exists
	LastListed *selection.Range // range of the last l command
	Config     *config.Config   // tablesep, endline, echo, ...

	Out *ui.Output       // command output
	In  *edio.RawReader  // operator input

	Clipboard   Clipboard      // y verb and c insert flag
	Watcher     *edio.Watcher  // optional, marks files changed on disk
	Highlighter highlighter.Highlighter

	ctx context.Context // shell commands
}

// Clipboard is the system clipboard as seen by the editor.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type SystemClipboard struct{}

func (SystemClipboard) ReadAll() (string, error)   { return clipboard.ReadAll() }
func (SystemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

func New(conf *config.Config, in io.Reader, out io.Writer) *Editor {
	return &Editor{
		Config:    conf,
		Out:       ui.NewOutput(out, conf),
		In:        edio.NewRawReader(in),
		Clipboard: SystemClipboard{},
		ctx:       context.Background(),
	}
}

// Open loads every path as a buffer and selects the whole first one.
func (e *Editor) Open(paths ...string) error {
	for _, path := range paths {
		Log.Info("open", path)
		e.Buffers = append(e.Buffers, buffer.Load(path))
		if e.Watcher != nil {
			if err := e.Watcher.Watch(path); err != nil { Log.Error("watch", path, err.Error()) }
		}
	}

	if e.Selection == nil && len(e.Buffers) > 0 {
		sel, err := selection.Whole(e.Buffers, 0)
		if err != nil { return err }
		e.Selection = sel
	}
	return nil
}

func (e *Editor) Close() {
	if e.Watcher != nil { e.Watcher.Stop() }
}

// Start runs the read loop until q is confirmed or the input ends. A failing
// command is reported and the loop goes on.
func (e *Editor) Start() error {
	Log.Info("starting aled")

	for {
		e.Out.Prompt(e.Config.Value("echo"))
		line, err := e.In.ReadRawLine()
		if err == io.EOF { return nil }
		if err != nil { return err }

		macro, err := e.Config.Bool("macro")
		if err != nil { e.report(err); macro = false }

		if _, err := e.ExecuteLine(line, macro); err != nil {
			if errors.Is(err, ErrQuit) { return nil }
			e.report(err)
		}
	}
}

func (e *Editor) report(err error) {
	Log.Error(err.Error())
	e.Out.EmitLine(err.Error())
}

// ExecuteLine runs one command line. In macro mode {...} parts are replaced
// by their results first. The first word is the verb, the rest its argument.
func (e *Editor) ExecuteLine(line string, macro bool) (string, error) {
	if macro {
		expanded, err := e.Expand(line)
		if err != nil { return "", err }
		line = expanded
	}

	verb, args := splitCommand(line)
	if verb == "" { return "", nil }
	return e.Execute(verb, args)
}

func splitCommand(line string) (string, string) {
	line = strings.TrimSpace(line)
	i := strings.IndexAny(line, " \t")
	if i < 0 { return line, "" }
	return line[:i], line[i+1:]
}

// nextToken splits off the first whitespace delimited word of s.
func nextToken(s string) (string, string) {
	s = strings.TrimLeft(s, " \t")
	i := strings.IndexAny(s, " \t")
	if i < 0 { return s, "" }
	return s[:i], s[i+1:]
}
