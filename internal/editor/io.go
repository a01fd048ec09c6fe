package editor

import (
	"aled/internal/buffer"
	edio "aled/internal/io"
	. "aled/internal/logger"

	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// readContinuation collects the lines of an insert: first, then one line per
// read until an empty one. The first character of each read line is a
// continuation marker and is dropped.
func (e *Editor) readContinuation(first string) ([]string, error) {
	lines := []string{first}
	for {
		e.Out.Prompt(e.Config.Value("echo") + ".")
		line, err := e.In.ReadRawLine()
		if err != nil && err != io.EOF { return nil, err }
		if len(line) == 0 { break }

		_, size := utf8.DecodeRuneInString(line)
		lines = append(lines, line[size:])
	}
	return lines, e.Out.Done()
}

func (e *Editor) save(b *buffer.Buffer) error {
	Log.Info("save", b.Path)
	if err := b.Save(); err != nil { return err }
	if e.Watcher != nil { e.Watcher.Sync(b.Path) }
	return nil
}

// RunScript executes the lines of a file as commands, without macro
// expansion. The first failure is reported with its location and stops the
// script; the error is returned so an enclosing script stops as well.
func (e *Editor) RunScript(path string) error {
	lines, err := edio.ReadScript(path)
	if err != nil { return fmt.Errorf("script %s: %w", path, err) }

	for idx, line := range lines {
		if _, err := e.ExecuteLine(line, false); err != nil {
			if errors.Is(err, ErrQuit) { return err }

			scriptErr := &ScriptError{Path: path, Line: idx + 1, Err: err}
			Log.Error(scriptErr.Error())
			e.Out.EmitLine(scriptErr.Error())
			return scriptErr
		}
	}
	return nil
}
