package ui

import (
	"aled/internal/config"
	"fmt"
	"github.com/acarl005/stripansi"
	"github.com/goccy/go-json"
	"io"
	"strings"
	"unicode/utf8"
)

// Output is the sink for everything commands print. While muted, command
// output is dropped; prompts are always written.
type Output struct {
	w     io.Writer
	conf  *config.Config
	muted int
}

func NewOutput(w io.Writer, conf *config.Config) *Output {
	return &Output{w: w, conf: conf}
}

func (o *Output) Mute()   { o.muted++ }
func (o *Output) Unmute() { if o.muted > 0 { o.muted-- } }
func (o *Output) IsMuted() bool { return o.muted > 0 }

func (o *Output) Emit(text string) {
	if o.muted > 0 { return }
	io.WriteString(o.w, text)
}

func (o *Output) EmitLine(text string) {
	o.Emit(text + "\n")
}

func (o *Output) Prompt(text string) {
	io.WriteString(o.w, text)
}

// Done prints the blank line closing a command's output when endline is set.
func (o *Output) Done() error {
	endline, err := o.conf.Bool("endline")
	if err != nil { return err }
	if endline { o.Emit("\n") }
	return nil
}

// Table prints rows as aligned columns separated by tablesep. aligns holds one
// 'l' or 'r' per column, missing ones are left aligned. With tablefmt=json the
// rows are written as a json array instead.
func (o *Output) Table(aligns string, rows [][]string) error {
	if o.muted > 0 { return nil }

	if o.conf.Value("tablefmt") == "json" {
		if rows == nil { rows = [][]string{} }
		data, err := json.Marshal(rows)
		if err != nil { return err }
		o.EmitLine(string(data))
		return nil
	}

	widths := []int{}
	for _, row := range rows {
		for len(widths) < len(row) { widths = append(widths, 0) }
		for i, col := range row {
			widths[i] = max(widths[i], Width(col))
		}
	}

	sep := o.conf.Value("tablesep")
	var sb strings.Builder
	for _, row := range rows {
		for i, col := range row {
			if i != 0 { sb.WriteString(sep) }
			pad := strings.Repeat(" ", widths[i]-Width(col))
			if i < len(aligns) && aligns[i] == 'r' {
				sb.WriteString(pad + col)
			} else {
				sb.WriteString(col + pad)
			}
		}
		sb.WriteByte('\n')
	}
	o.Emit(sb.String())
	return nil
}

// Width is the printed width of s, ignoring ANSI escape sequences.
func Width(s string) int {
	return utf8.RuneCountInString(stripansi.Strip(s))
}

func Row(cols ...any) []string {
	row := make([]string, len(cols))
	for i, c := range cols { row[i] = fmt.Sprint(c) }
	return row
}
