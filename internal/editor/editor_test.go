package editor

import (
	"aled/internal/buffer"
	"aled/internal/config"
	"aled/internal/selection"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClipboard struct {
	text string
}

func (c *fakeClipboard) ReadAll() (string, error)   { return c.text, nil }
func (c *fakeClipboard) WriteAll(text string) error { c.text = text; return nil }

// newEditor opens one temp file per content slice, with endline and the
// prompt turned off so output is easy to compare.
func newEditor(t *testing.T, input string, contents ...[]string) (*Editor, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()

	conf := config.New()
	conf.Set("endline", "0")
	conf.Set("echo", "")

	var out bytes.Buffer
	e := New(conf, strings.NewReader(input), &out)
	e.Clipboard = &fakeClipboard{}

	paths := []string{}
	for i, lines := range contents {
		path := filepath.Join(dir, "f"+string(rune('1'+i))+".txt")
		data := ""
		for _, l := range lines { data += l + "\n" }
		require.NoError(t, os.WriteFile(path, []byte(data), 0644))
		paths = append(paths, path)
	}
	require.NoError(t, e.Open(paths...))
	return e, &out
}

func run(t *testing.T, e *Editor, line string) string {
	t.Helper()
	result, err := e.ExecuteLine(line, false)
	require.NoError(t, err, line)
	return result
}

func lines(e *Editor, buf int) []string { return e.Buffers[buf].Lines }

func five() []string { return []string{"a", "b", "c", "d", "e"} }

func TestOpenSelectsFirstBuffer(t *testing.T) {
	e, _ := newEditor(t, "", five(), []string{"x"})
	assert.Equal(t, "1-5@1", e.Selection.String())
	assert.Len(t, e.Buffers, 2)
}

func TestDeleteKeepsMarkersInPlace(t *testing.T) {
	e, _ := newEditor(t, "", []string{"a", "b", "c"})
	m, err := e.Buffers[0].Marker(3)
	require.NoError(t, err)

	run(t, e, "d 2")

	assert.Equal(t, []string{"a", "c"}, lines(e, 0))
	line, _ := m.Line()
	assert.Equal(t, 2, line)
}

func TestCompoundSelectAndList(t *testing.T) {
	e, out := newEditor(t, "", five())

	run(t, e, "s.l 2-4")

	assert.Equal(t, "2-4@1", e.Selection.String())
	assert.Equal(t, "2 b\n3 c\n4 d\n", out.String())
	assert.Equal(t, "2-4@1", e.LastListed.String())
}

func TestListWithEndline(t *testing.T) {
	e, out := newEditor(t, "", five())
	e.Config.Set("endline", "yes")

	run(t, e, "l 4")
	assert.Equal(t, "4 d\n\n", out.String())
}

func TestListReportsBadRange(t *testing.T) {
	e, _ := newEditor(t, "", five())
	_, err := e.ExecuteLine("l 9~2", false)
	var rangeErr *buffer.RangeError
	assert.True(t, errors.As(err, &rangeErr))
}

func TestSelectReport(t *testing.T) {
	e, out := newEditor(t, "", five())
	run(t, e, "s 2+1")
	assert.Equal(t, "2-3@1", run(t, e, "s"))
	assert.Equal(t, "2-3@1\n", out.String())
}

func TestSelectListed(t *testing.T) {
	e, _ := newEditor(t, "", five())

	_, err := e.ExecuteLine("sl", false)
	var assertion *AssertionError
	require.True(t, errors.As(err, &assertion))

	run(t, e, "l 3-4")
	run(t, e, "sa")
	run(t, e, "sl")
	assert.Equal(t, "3-4@1", e.Selection.String())
}

func TestSelectAllAndBuf(t *testing.T) {
	e, out := newEditor(t, "", five(), []string{"x", "y"})

	run(t, e, "buf 2")
	assert.Equal(t, "1-2@2", e.Selection.String())

	run(t, e, "s 1")
	run(t, e, "sa")
	assert.Equal(t, "1-2@2", e.Selection.String())

	run(t, e, "sa 1")
	assert.Equal(t, "1-5@1", e.Selection.String())

	run(t, e, "d 1")
	assert.Equal(t, "1", run(t, e, "buf"))
	table := out.String()
	assert.Contains(t, table, "1<")
	assert.Contains(t, table, "#lines")
	assert.Contains(t, strings.Split(table, "\n")[1], "*")

	_, err := e.ExecuteLine("buf 3", false)
	assert.Error(t, err)
}

func TestBufFlagsMissingFile(t *testing.T) {
	e, out := newEditor(t, "", five())
	require.NoError(t, e.Open(filepath.Join(t.TempDir(), "new.txt")))

	run(t, e, "buf")
	rows := strings.Split(out.String(), "\n")
	assert.NotContains(t, rows[1], "?")
	assert.Contains(t, rows[2], "?")

	run(t, e, "buf 2")
	run(t, e, "w")
	out.Reset()
	run(t, e, "buf")
	assert.NotContains(t, out.String(), "?")
}

func TestTemporaryRangesDoNotStayRegistered(t *testing.T) {
	e, _ := newEditor(t, "", five())
	b := e.Buffers[0]
	live := b.LiveMarkers()

	run(t, e, "#l 2-3")
	run(t, e, "lt 4")
	run(t, e, "y 1-2")
	run(t, e, "d 4")
	run(t, e, "aqb 2-3")
	assert.Equal(t, live, b.LiveMarkers())
}

func TestNext(t *testing.T) {
	e, _ := newEditor(t, "", five())
	run(t, e, "s 1-2")

	run(t, e, "n")
	assert.Equal(t, "3-4@1", e.Selection.String())

	_, err := e.ExecuteLine("n", false)
	assert.Error(t, err)
}

func TestLength(t *testing.T) {
	e, out := newEditor(t, "", five())
	assert.Equal(t, "3", run(t, e, "#l 2-4"))
	assert.Equal(t, "5", run(t, e, "#s"))
	assert.Equal(t, "3\n5\n", out.String())
}

func TestCfg(t *testing.T) {
	e, out := newEditor(t, "", five())

	run(t, e, "cfg tablesep= | $")
	assert.Equal(t, " | ", e.Config.Value("tablesep"))
	assert.Equal(t, "", out.String())

	run(t, e, "cfg tablesep=:")
	assert.Equal(t, "was ' | '\n", out.String())

	out.Reset()
	assert.Equal(t, ":", run(t, e, "cfg tablesep"))
	assert.Equal(t, "':'\n", out.String())

	out.Reset()
	run(t, e, "cfg nothing")
	assert.Equal(t, "unset\n", out.String())

	out.Reset()
	run(t, e, "cfg")
	assert.Contains(t, out.String(), "tablesep :':'")
}

func TestInvalidBooleanConfig(t *testing.T) {
	e, _ := newEditor(t, "", five())
	run(t, e, "cfg endline=maybe$")

	_, err := e.ExecuteLine("#l 1", false)
	var invalid *config.InvalidConfigError
	assert.True(t, errors.As(err, &invalid))
}

func TestUnknownVerb(t *testing.T) {
	e, out := newEditor(t, "", five())
	run(t, e, "frobnicate 1 2")
	assert.Equal(t, "unknown\n", out.String())
}

func TestUnknownVerbStartingWithModeLetter(t *testing.T) {
	e, out := newEditor(t, "", five())
	for _, line := range []string{"echo hi", "print 1", "abort", "exit"} {
		out.Reset()
		run(t, e, line)
		assert.Equal(t, "unknown\n", out.String(), line)
	}
	assert.Equal(t, five(), lines(e, 0))
}

func TestCommentAndEmpty(t *testing.T) {
	e, out := newEditor(t, "", five())
	run(t, e, ": anything {goes} here")
	run(t, e, "   ")
	assert.Equal(t, "", out.String())
}

func TestWriteAndWriteAll(t *testing.T) {
	e, _ := newEditor(t, "", five(), []string{"x"})
	run(t, e, "d 1-4")
	run(t, e, "w")

	data, err := os.ReadFile(e.Buffers[0].Path)
	require.NoError(t, err)
	assert.Equal(t, "e\n", string(data))
	assert.False(t, e.Buffers[0].IsChanged)

	e.Buffers[0].Path = filepath.Join(t.TempDir(), "missing", "f.txt")
	e.Buffers[1].Lines = []string{"changed"}

	_, err = e.ExecuteLine("wa", false)
	assert.Error(t, err)
	data, _ = os.ReadFile(e.Buffers[1].Path)
	assert.Equal(t, "x\n", string(data))
}

func TestQuit(t *testing.T) {
	e, _ := newEditor(t, "no\nYes\n", five())

	_, err := e.ExecuteLine("q", false)
	assert.NoError(t, err)

	_, err = e.ExecuteLine("q", false)
	assert.ErrorIs(t, err, ErrQuit)
}

func TestStartSurvivesErrors(t *testing.T) {
	e, out := newEditor(t, "d 99\ns 2\nd 2\nl\n", five())

	require.NoError(t, e.Start())

	assert.Equal(t, []string{"a", "c", "d", "e"}, lines(e, 0))
	assert.Contains(t, out.String(), "line 99 out of range")
	assert.Equal(t, "invalid", e.Selection.String())
}

func TestStartStopsOnQuit(t *testing.T) {
	e, _ := newEditor(t, "q\ny\nd 1\n", five())
	require.NoError(t, e.Start())
	assert.Equal(t, five(), lines(e, 0))
}

func TestStartInMacroMode(t *testing.T) {
	e, out := newEditor(t, "#l 1-{#l 2-3}\n", five())
	e.Config.Set("macro", "1")

	require.NoError(t, e.Start())
	assert.Equal(t, "2\n", out.String())
}

func TestFind(t *testing.T) {
	e, out := newEditor(t, "", []string{"apple", "banana", "cherry", "grape"})
	run(t, e, "s 2-4")

	assert.Equal(t, "1", run(t, e, "f ap"))
	assert.Equal(t, "4 grape\n", out.String())
}

func TestLineText(t *testing.T) {
	e, _ := newEditor(t, "", five())
	assert.Equal(t, "b\nc", run(t, e, "lt 2-3"))
}

func TestShell(t *testing.T) {
	e, out := newEditor(t, "", five())
	assert.Equal(t, "1", run(t, e, "! echo hi"))
	assert.Equal(t, "hi\n", out.String())
}

func TestNoBuffers(t *testing.T) {
	e, _ := newEditor(t, "")
	for _, cmd := range []string{"l", "w", "n", "#s", "p x", "d 1"} {
		_, err := e.ExecuteLine(cmd, false)
		assert.Error(t, err, cmd)
	}
	_, err := e.ExecuteLine("l", false)
	assert.ErrorIs(t, err, selection.ErrNoSelection)
}
