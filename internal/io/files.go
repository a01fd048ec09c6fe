package io

import (
	"bufio"
	"os"
)

const maxLineSize = 64 * 1024 * 1024

// ReadLines reads a file into lines without terminators. Any read failure
// gives a single empty line, as does an empty file.
func ReadLines(path string) []string {
	lines, err := readAll(path)
	if err != nil || len(lines) == 0 { return []string{""} }
	return lines
}

// ReadScript reads a command script. Unlike ReadLines, failures are reported.
func ReadScript(path string) ([]string, error) {
	return readAll(path)
}

func readAll(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil { return nil, err }
	defer file.Close()

	lines := make([]string, 0)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil { return nil, err }
	return lines, nil
}

// WriteLines writes every line followed by '\n'.
func WriteLines(path string, lines []string) error {
	f, err := os.Create(path)
	if err != nil { return err }

	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := w.WriteString(line); err != nil { f.Close(); return err }
		if err := w.WriteByte('\n'); err != nil { f.Close(); return err }
	}

	if err := w.Flush(); err != nil { f.Close(); return err }
	return f.Close()
}

func IsFileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) { return false }
	return err == nil && !info.IsDir()
}
