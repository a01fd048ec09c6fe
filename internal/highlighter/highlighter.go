package highlighter

import (
	. "aled/internal/logger"

	"github.com/alecthomas/chroma"
	"github.com/alecthomas/chroma/formatters"
	"github.com/alecthomas/chroma/lexers"
	"github.com/alecthomas/chroma/styles"
	"strings"
)

// Highlighter colours single lines for terminal output.
type Highlighter struct {
	lexers map[string]chroma.Lexer // by filename, nil when nothing matches
}

// Line returns text wrapped in 256 colour escape codes according to the
// language guessed from filename. Unknown languages come back unchanged.
func (h *Highlighter) Line(filename string, text string, theme string) string {
	lexer := h.lexer(filename)
	if lexer == nil || text == "" { return text }

	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		Log.Error("tokenization error:", err.Error())
		return text
	}

	formatter := formatters.Get("terminal256")
	var sb strings.Builder
	if err := formatter.Format(&sb, styles.Get(theme), iterator); err != nil {
		Log.Error("format error:", err.Error())
		return text
	}

	// lexers append a newline token, the line has none of its own
	return strings.ReplaceAll(sb.String(), "\n", "")
}

func (h *Highlighter) lexer(filename string) chroma.Lexer {
	if h.lexers == nil { h.lexers = make(map[string]chroma.Lexer) }
	if lexer, ok := h.lexers[filename]; ok { return lexer }

	lexer := lexers.Match(filename)
	if lexer != nil { lexer = chroma.Coalesce(lexer) }
	h.lexers[filename] = lexer
	return lexer
}
