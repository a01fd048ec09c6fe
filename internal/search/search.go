package search

import (
	. "aled/internal/logger"
	"iter"
	"strings"
	"time"
)

type SearchResult struct {
	Line     int
	Position int
}

// Search finds every occurrence of pattern, numbering lines as the sequence does.
func Search(lines iter.Seq2[int, string], pattern string) []SearchResult {
	start := time.Now()
	defer Log.Info("search end, elapsed:", time.Since(start).String())

	results := []SearchResult{}
	if len(pattern) == 0 { return results }

	for n, line := range lines {
		from := 0
		for {
			pos := strings.Index(line[from:], pattern)
			if pos == -1 { break }
			pos = from + pos
			results = append(results, SearchResult{n, pos})
			from = pos + 1
		}
	}
	return results
}

// SearchLines returns the numbers of the lines containing pattern.
func SearchLines(lines iter.Seq2[int, string], pattern string) []int {
	found := []int{}
	for _, r := range Search(lines, pattern) {
		if len(found) > 0 && found[len(found)-1] == r.Line { continue }
		found = append(found, r.Line)
	}
	return found
}
