package editor

import (
	"aled/internal/buffer"
	"aled/internal/git"
	edio "aled/internal/io"
	. "aled/internal/logger"
	. "aled/internal/operations"
	"aled/internal/process"
	"aled/internal/search"
	"aled/internal/selection"
	. "aled/internal/ui"

	"fmt"
	"strconv"
	"strings"
)

// Execute runs one verb against the session. A verb made of dot separated
// names runs each of them in turn with the same argument. The returned string
// is the command's scalar result, empty when it has none.
func (e *Editor) Execute(verb string, args string) (string, error) {
	if strings.Contains(verb, ".") {
		result := ""
		for _, name := range strings.Split(verb, ".") {
			if name == "" { continue }
			r, err := e.Execute(name, args)
			if err != nil { return "", err }
			result = r
		}
		return result, nil
	}

	Log.Info("exec", verb, args)

	switch ParseVerb(verb) {
	case Buf:
		return e.OnBuf(args)
	case Cfg:
		return e.OnCfg(args)
	case List:
		return e.OnList(args)
	case Select:
		return e.OnSelect(args)
	case SelectListed:
		if e.LastListed == nil { return "", &AssertionError{"nothing listed yet"} }
		e.Selection = e.LastListed
		return "", nil
	case SelectAll:
		return e.OnSelectAll(args)
	case Write:
		if e.Selection == nil { return "", selection.ErrNoSelection }
		return "", e.save(e.Selection.Buffer())
	case WriteAll:
		for _, b := range e.Buffers {
			if err := e.save(b); err != nil { return "", err }
		}
		return "", nil
	case Delete:
		r, err := e.parse(args)
		if err != nil { return "", err }
		defer r.Release()
		return "", r.Delete()
	case Next:
		return e.OnNext()
	case Insert:
		return e.OnInsert(verb, args)
	case Length:
		r, err := e.parse(args)
		if err != nil { return "", err }
		defer r.Release()
		return e.reportLen(r)
	case SelLength:
		if e.Selection == nil { return "", selection.ErrNoSelection }
		return e.reportLen(e.Selection)
	case Macro:
		result, err := e.ExecuteLine(args, true)
		if err != nil { return "", err }
		e.Out.EmitLine(result)
		return result, e.Out.Done()
	case Script:
		return "", e.RunScript(strings.TrimSpace(args))
	case Comment:
		return "", nil
	case Quit:
		return e.OnQuit()
	case LineText:
		return e.OnLineText(args)
	case Find:
		return e.OnFind(args)
	case Yank:
		return e.OnYank(args)
	case Shell:
		return e.OnShell(args)
	case Diff:
		return e.OnDiff(args)
	case Changes:
		return e.OnChanges(args)
	}

	Log.Info("unknown verb", verb)
	e.Out.EmitLine("unknown")
	return "", e.Out.Done()
}

func (e *Editor) parse(expr string) (*selection.Range, error) {
	return selection.Parse(strings.TrimSpace(expr), e.Selection, e.Buffers)
}

func (e *Editor) OnBuf(args string) (string, error) {
	args = strings.TrimSpace(args)
	if args != "" {
		idx, err := strconv.Atoi(args)
		if err != nil { return "", fmt.Errorf("bad buffer %q", args) }
		sel, err := selection.Whole(e.Buffers, idx-1)
		if err != nil { return "", err }
		e.Selection = sel
		return "", nil
	}

	rows := [][]string{Row("id", "path", "#lines", "")}
	for idx, b := range e.Buffers {
		id := strconv.Itoa(idx + 1)
		if e.Selection != nil && idx == e.Selection.Buf { id += "<" }
		rows = append(rows, Row(id, b.Path, b.Len(), e.bufferFlags(b)))
	}
	if err := e.Out.Table("rlrl", rows); err != nil { return "", err }

	current := ""
	if e.Selection != nil { current = strconv.Itoa(e.Selection.Buf + 1) }
	return current, e.Out.Done()
}

// bufferFlags marks unsaved edits with *, files changed on disk with ! and
// buffers without a file behind them with ?.
func (e *Editor) bufferFlags(b *buffer.Buffer) string {
	flags := ""
	if b.IsChanged { flags += "*" }
	if e.Watcher != nil && e.Watcher.IsChanged(b.Path) { flags += "!" }
	if !edio.IsFileExists(b.Path) { flags += "?" }
	return flags
}

// OnCfg dumps, reads or sets config entries. A trailing $ ends the argument,
// keeping any whitespace before it, and silences the previous value report.
func (e *Editor) OnCfg(args string) (string, error) {
	quiet := strings.HasSuffix(args, "$")
	if quiet { args = args[:len(args)-1] }

	if strings.TrimSpace(args) == "" {
		rows := [][]string{}
		for _, k := range e.Config.Keys() {
			rows = append(rows, Row(k, "'"+e.Config.Value(k)+"'"))
		}
		if err := e.Out.Table("ll", rows); err != nil { return "", err }
		return "", e.Out.Done()
	}

	key, value, isSet := strings.Cut(args, "=")
	key = strings.TrimSpace(key)

	if !isSet {
		v, ok := e.Config.Get(key)
		if !ok {
			e.Out.EmitLine("unset")
			return "", e.Out.Done()
		}
		e.Out.EmitLine("'" + v + "'")
		return v, e.Out.Done()
	}

	old, existed := e.Config.Set(key, value)
	if existed && !quiet {
		e.Out.EmitLine("was '" + old + "'")
		return "", e.Out.Done()
	}
	return "", nil
}

func (e *Editor) OnList(args string) (string, error) {
	r, err := e.parse(args)
	if err != nil { return "", err }
	e.LastListed = r

	highlight, err := e.Config.Bool("highlight")
	if err != nil { return "", err }

	path := r.Buffer().Path
	theme := e.Config.Value("theme")
	rows := [][]string{}
	for n, text := range r.All() {
		if highlight { text = e.Highlighter.Line(path, text, theme) }
		rows = append(rows, Row(n, text))
	}

	if err := e.Out.Table("rl", rows); err != nil { return "", err }
	return "", e.Out.Done()
}

func (e *Editor) OnSelect(args string) (string, error) {
	if strings.TrimSpace(args) == "" {
		current := "none"
		if e.Selection != nil { current = e.Selection.String() }
		e.Out.EmitLine(current)
		return current, e.Out.Done()
	}

	r, err := e.parse(args)
	if err != nil { return "", err }
	e.Selection = r
	return "", nil
}

func (e *Editor) OnSelectAll(args string) (string, error) {
	buf := 0
	if e.Selection != nil { buf = e.Selection.Buf }

	if args = strings.TrimSpace(args); args != "" {
		idx, err := strconv.Atoi(args)
		if err != nil { return "", fmt.Errorf("bad buffer %q", args) }
		buf = idx - 1
	}

	sel, err := selection.Whole(e.Buffers, buf)
	if err != nil { return "", err }
	e.Selection = sel
	return "", nil
}

// OnNext moves the selection to the span of the same length right after it.
func (e *Editor) OnNext() (string, error) {
	if e.Selection == nil { return "", selection.ErrNoSelection }

	_, last, err := e.Selection.Bounds()
	if err != nil { return "", err }
	num, _ := e.Selection.Len()

	sel, err := selection.New(e.Buffers, last+1, last+num, e.Selection.Buf)
	if err != nil { return "", err }
	e.Selection = sel
	return "", nil
}

func (e *Editor) reportLen(r *selection.Range) (string, error) {
	n, err := r.Len()
	if err != nil { return "", err }
	result := strconv.Itoa(n)
	e.Out.EmitLine(result)
	return result, e.Out.Done()
}

func (e *Editor) OnQuit() (string, error) {
	e.Out.Prompt("really quit? (y/n) ")
	yn, err := e.In.ReadRawLine()
	if err != nil { return "", nil }

	yn = strings.ToLower(strings.TrimSpace(yn))
	if yn == "y" || yn == "yes" { return "", ErrQuit }
	return "", nil
}

// OnLineText prints the lines of a range and returns them joined by newlines.
func (e *Editor) OnLineText(args string) (string, error) {
	r, err := e.parse(args)
	if err != nil { return "", err }
	defer r.Release()
	lines, err := r.Text()
	if err != nil { return "", err }

	for _, line := range lines { e.Out.EmitLine(line) }
	return strings.Join(lines, "\n"), e.Out.Done()
}

// OnFind lists the selected lines containing the argument and returns their count.
func (e *Editor) OnFind(args string) (string, error) {
	if e.Selection == nil { return "", selection.ErrNoSelection }
	seq, err := e.Selection.Iterate()
	if err != nil { return "", err }

	b := e.Selection.Buffer()
	rows := [][]string{}
	found := search.SearchLines(seq, args)
	for _, n := range found {
		text, _ := b.Line(n)
		rows = append(rows, Row(n, text))
	}

	if err := e.Out.Table("rl", rows); err != nil { return "", err }
	return strconv.Itoa(len(found)), e.Out.Done()
}

func (e *Editor) OnYank(args string) (string, error) {
	r, err := e.parse(args)
	if err != nil { return "", err }
	defer r.Release()
	lines, err := r.Text()
	if err != nil { return "", err }

	if err := e.Clipboard.WriteAll(strings.Join(lines, "\n")); err != nil {
		return "", fmt.Errorf("clipboard: %w", err)
	}
	return strconv.Itoa(len(lines)), nil
}

func (e *Editor) OnShell(args string) (string, error) {
	lines, err := process.RunLines(e.ctx, args)
	for _, line := range lines { e.Out.EmitLine(line) }
	if err != nil { return "", err }
	return strconv.Itoa(len(lines)), e.Out.Done()
}

// baseline returns what the current buffer is compared with: the file on
// disk, or its last committed version when args is "head".
func (e *Editor) baseline(args string) (*buffer.Buffer, []string, string, error) {
	if e.Selection == nil { return nil, nil, "", selection.ErrNoSelection }
	b := e.Selection.Buffer()

	switch strings.TrimSpace(args) {
	case "":
		return b, edio.ReadLines(b.Path), b.Path, nil
	case "head":
		content, err := git.GetLastCommitFileContent(b.Path)
		if err != nil { return nil, nil, "", err }
		return b, strings.Split(strings.TrimSuffix(content, "\n"), "\n"), b.Path + " (HEAD)", nil
	}
	return nil, nil, "", fmt.Errorf("bad diff base %q", args)
}

func (e *Editor) OnDiff(args string) (string, error) {
	b, old, name, err := e.baseline(args)
	if err != nil { return "", err }

	out, err := git.UnifiedDiff(name, b.Path+" (buffer)", old, b.Lines)
	if err != nil { return "", err }
	if out == "" {
		e.Out.EmitLine("no changes")
	} else {
		e.Out.Emit(out)
	}
	return "", e.Out.Done()
}

// OnChanges reports how many lines were added and removed, as "+added -removed".
func (e *Editor) OnChanges(args string) (string, error) {
	b, old, _, err := e.baseline(args)
	if err != nil { return "", err }

	added, removed := git.Diff(joinLines(old), joinLines(b.Lines))
	result := fmt.Sprintf("+%d -%d", len(added), len(removed))
	e.Out.EmitLine(result)
	return result, e.Out.Done()
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n") + "\n"
}
