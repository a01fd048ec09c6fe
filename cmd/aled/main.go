package main

import . "aled/internal/logger"
import . "aled/internal/config"
import "aled/internal/editor"
import edio "aled/internal/io"

import (
	"fmt"
	"github.com/mattn/go-isatty"
	"os"
)

func main() {
	os.Exit(run())
}

func run() int {
	Log.Start()
	defer Log.Stop()

	config := GetConfig()
	// no prompts when commands are piped in
	if fd := os.Stdin.Fd(); !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		config.Set("echo", "")
	}

	e := editor.New(config, os.Stdin, os.Stdout)
	e.Watcher = edio.NewWatcher()
	defer e.Close()

	if err := e.Open(os.Args[1:]...); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := e.Start(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
