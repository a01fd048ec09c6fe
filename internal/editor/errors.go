package editor

import "fmt"

// AssertionError reports a command used against its own preconditions.
type AssertionError struct {
	Msg string
}

func (e *AssertionError) Error() string { return "assertion failed: " + e.Msg }

// ScriptError locates a failure inside a script. Nested scripts wrap each other.
type ScriptError struct {
	Path string
	Line int
	Err  error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("in %s:%d   %v", e.Path, e.Line, e.Err)
}

func (e *ScriptError) Unwrap() error { return e.Err }
