package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBool(t *testing.T) {
	for value, want := range map[string]bool{
		"Yes": true, "1": true, "TRUE": true, " yes ": true,
		"0": false, "false": false, "No": false,
	} {
		got, err := ParseBool("k", value)
		require.NoError(t, err, value)
		assert.Equal(t, want, got, value)
	}

	_, err := ParseBool("k", "maybe")
	var invalid *InvalidConfigError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "k", invalid.Key)
	assert.Equal(t, "maybe", invalid.Value)
}

func TestDefaults(t *testing.T) {
	conf := New()

	endline, err := conf.Bool("endline")
	require.NoError(t, err)
	assert.True(t, endline)
	assert.Equal(t, " ", conf.Value("tablesep"))
	assert.Equal(t, "  ", conf.Value("echo"))

	_, ok := conf.Get("nope")
	assert.False(t, ok)
}

func TestSetReportsPrevious(t *testing.T) {
	conf := New()

	old, existed := conf.Set("tablesep", "|")
	assert.True(t, existed)
	assert.Equal(t, " ", old)

	_, existed = conf.Set("fresh", "x")
	assert.False(t, existed)
	assert.Contains(t, conf.Keys(), "fresh")
}

func TestKeysSorted(t *testing.T) {
	keys := New().Keys()
	assert.IsIncreasing(t, keys)
}

func TestReadConfig(t *testing.T) {
	file := filepath.Join(t.TempDir(), "aled.yaml")
	require.NoError(t, os.WriteFile(file, []byte("settings:\n  tablesep: \" | \"\n  prompt: x\n"), 0644))
	t.Setenv("ALED_CONF", file)

	conf := GetConfig()

	assert.Equal(t, " | ", conf.Value("tablesep"))
	assert.Equal(t, "x", conf.Value("prompt"))
	assert.Equal(t, "1", conf.Value("endline"))
}

func TestReadBrokenConfig(t *testing.T) {
	file := filepath.Join(t.TempDir(), "aled.yaml")
	require.NoError(t, os.WriteFile(file, []byte("settings: [\n"), 0644))
	t.Setenv("ALED_CONF", file)

	assert.Equal(t, New().Keys(), GetConfig().Keys())
}
