package logger

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerInfo(t *testing.T) {
	logfile := filepath.Join(t.TempDir(), "aled.log")
	t.Setenv("ALED_LOG", logfile)

	var logger = Logger{ }
	logger.Start()

	logger.Info("async")
	logger.Info("hello")
	logger.Error("world")
	logger.Stop()

	bytes, err := os.ReadFile(logfile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(bytes), "\n"), "\n")

	assert.Len(t, lines, 3)
	assert.True(t, strings.HasSuffix(lines[2], "[error] world"))
}

func TestLoggerDisabled(t *testing.T) {
	t.Setenv("ALED_LOG", "")

	var logger = Logger{ }
	logger.Start()
	logger.Info("dropped")
	logger.Stop()

	assert.False(t, logger.isEnabled)
}

func TestLoggerStopWhileLogging(t *testing.T) {
	t.Setenv("ALED_LOG", filepath.Join(t.TempDir(), "aled.log"))

	var logger = Logger{ }
	logger.Start()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 200 { logger.Info("busy") }
		}()
	}
	logger.Stop()
	wg.Wait()

	logger.Error("after stop")
	assert.False(t, logger.isEnabled)
}
