package process

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"github.com/acarl005/stripansi"
	"os/exec"
	"time"
)

// Process runs one shell command to completion and keeps its output lines.
type Process struct {
	Cmd   *exec.Cmd // command to run
	Lines []string  // stdout and stderr lines, colour codes stripped
}

// NewShell prepares `sh -c command`.
func NewShell(ctx context.Context, command string) *Process {
	return NewProcess(ctx, "sh", "-c", command)
}

func NewProcess(ctx context.Context, command string, args ...string) *Process {
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.WaitDelay = time.Second // children of a killed shell may hold the pipe open

	return &Process{
		Cmd:   cmd,
		Lines: []string{},
	}
}

// Run blocks until the command exits. Output collected so far is kept even
// when the command fails.
func (p *Process) Run() error {
	var out bytes.Buffer
	p.Cmd.Stdout = &out
	p.Cmd.Stderr = &out

	err := p.Cmd.Run()

	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		p.Lines = append(p.Lines, stripansi.Strip(scanner.Text()))
	}

	if err != nil { return fmt.Errorf("%s: %w", p.Cmd.String(), err) }
	return nil
}

// RunLines runs a shell command and returns its output lines.
func RunLines(ctx context.Context, command string) ([]string, error) {
	p := NewShell(ctx, command)
	err := p.Run()
	return p.Lines, err
}
