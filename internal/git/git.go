package git

import (
	. "aled/internal/utils"
	"fmt"
	gogit "github.com/go-git/go-git/v5"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/sergi/go-diff/diffmatchpatch"
	"path/filepath"
	"strings"
)

// GetLastCommitFileContent returns filePath as stored in the HEAD commit of
// the repository containing it.
func GetLastCommitFileContent(filePath string) (string, error) {
	abs, err := filepath.Abs(filePath)
	if err != nil { return "", fmt.Errorf("error resolving %s: %w", filePath, err) }

	r, err := gogit.PlainOpenWithOptions(filepath.Dir(abs), &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil { return "", fmt.Errorf("error opening git repository: %w", err) }

	wt, err := r.Worktree()
	if err != nil { return "", fmt.Errorf("error getting worktree: %w", err) }

	root, err := filepath.EvalSymlinks(wt.Filesystem.Root())
	if err != nil { return "", fmt.Errorf("error resolving worktree root: %w", err) }
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil { resolved = abs }
	rel, err := filepath.Rel(root, resolved)
	if err != nil { return "", fmt.Errorf("error locating file in worktree: %w", err) }

	ref, err := r.Head()
	if err != nil { return "", fmt.Errorf("error getting repository HEAD: %w", err) }

	commit, err := r.CommitObject(ref.Hash())
	if err != nil { return "", fmt.Errorf("error getting commit object: %w", err) }

	tree, err := commit.Tree()
	if err != nil { return "", fmt.Errorf("error getting commit tree: %w", err) }

	file, err := tree.File(filepath.ToSlash(rel))
	if err != nil { return "", fmt.Errorf("error getting file from tree: %w", err) }

	content, err := file.Contents()
	if err != nil { return "", fmt.Errorf("error getting file contents: %w", err) }

	return content, nil
}

// UnifiedDiff renders the change from oldLines to newLines.
func UnifiedDiff(oldName, newName string, oldLines, newLines []string) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        terminated(oldLines),
		B:        terminated(newLines),
		FromFile: oldName,
		ToFile:   newName,
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(diff)
}

func terminated(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines { out[i] = l + "\n" }
	return out
}

// Diff compares two texts line by line and returns the added line numbers
// (in newText) and removed line numbers (in oldText), both 1-indexed.
func Diff(oldText string, newText string) (Set, Set) {
	added := make(Set)
	removed := make(Set)

	for _, block := range calcBlockDiff(oldText, newText) {
		count := strings.Count(block.Text, "\n")
		if !strings.HasSuffix(block.Text, "\n") { count++ }
		switch block.Ope {
		case Insert:
			for i := 0; i < count; i++ { added.Add(block.NewLineNumber + i) }
		case Remove:
			for i := 0; i < count; i++ { removed.Add(block.OldLineNumber + i) }
		}
	}
	return added, removed
}

type Ope int8

const (
	Remove Ope = -1
	Equal  Ope = 0
	Insert Ope = 1
)

type blockDiff struct {
	Ope           Ope
	Text          string
	NewLineNumber int
	OldLineNumber int
}

var dmp = diffmatchpatch.New()

func calcBlockDiff(oldText, newText string) []blockDiff {
	a, b, c := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffMain(a, b, false)
	diffByLines := dmp.DiffCharsToLines(diffs, c)
	result := make([]blockDiff, len(diffByLines))
	newLineNum := 1
	oldLineNum := 1
	for i, diff := range diffByLines {
		f := blockDiff{
			Ope:           Ope(diff.Type),
			Text:          diff.Text,
			NewLineNumber: -1,
			OldLineNumber: -1,
		}
		inc := strings.Count(diff.Text, "\n")
		switch f.Ope {
		case Insert:
			f.NewLineNumber = newLineNum
			newLineNum += inc
		case Remove:
			f.OldLineNumber = oldLineNum
			oldLineNum += inc
		case Equal:
			f.NewLineNumber = newLineNum
			f.OldLineNumber = oldLineNum
			newLineNum += inc
			oldLineNum += inc
		}
		result[i] = f
	}
	return result
}
