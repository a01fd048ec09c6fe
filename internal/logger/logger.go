package logger

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

var Log = Logger{ }

type Logger struct {
	isEnabled bool
	file   *os.File
	stream chan string
	done   chan struct{}
	logger *log.Logger
	layout string
	once   sync.Once
	mu     sync.RWMutex // guards isEnabled against a concurrent Stop
}

// Start enables logging when ALED_LOG names a writable file.
func (this *Logger) Start() {
	logfilename, exists := os.LookupEnv("ALED_LOG")
	if !exists || logfilename == "" { return }

	file, err := os.OpenFile(logfilename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil { fmt.Fprintln(os.Stderr, "log disabled:", err); return }
	this.file = file

	this.logger = log.New(file, "", 0)
	this.layout = "2006-01-02 15:04:05.000"

	this.stream = make(chan string, 64)
	this.done = make(chan struct{})

	go func() {
		for message := range this.stream {
			this.log(message)
		}
		close(this.done)
	}()

	this.mu.Lock()
	this.isEnabled = true
	this.mu.Unlock()
}

func (this *Logger) log(message string) {
	now := time.Now().Format(this.layout)
	this.logger.Printf("%s %s", now, message)
}

func (this *Logger) Info(args ...string) {
	this.send(strings.Join(args, " "))
}

func (this *Logger) Error(args ...string) {
	this.send("[error] " + strings.Join(args, " "))
}

// send drops the message once Stop has run, goroutines may still log then.
func (this *Logger) send(message string) {
	this.mu.RLock()
	defer this.mu.RUnlock()
	if !this.isEnabled { return }
	this.stream <- message
}

// Stop flushes pending messages and closes the log file.
func (this *Logger) Stop() {
	this.mu.Lock()
	enabled := this.isEnabled
	this.isEnabled = false
	this.mu.Unlock()
	if !enabled { return }

	this.once.Do(func() {
		close(this.stream)
		<-this.done
		this.file.Close()
	})
}
