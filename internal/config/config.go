package config

import (
	"fmt"
	"gopkg.in/yaml.v3"
	"os"
	"sort"
	"strings"
)

// InvalidConfigError is returned when a value does not follow the boolean convention.
type InvalidConfigError struct {
	Key   string
	Value string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config value %s for %s", e.Value, e.Key)
}

// Config is the editor wide key/value settings map. There is no schema, only
// the convention used by Bool.
type Config struct {
	values map[string]string
}

// file layout of ALED_CONF
type fileConfig struct {
	Settings map[string]string `yaml:"settings"`
}

var DefaultSettings = map[string]string{
	"tablesep":  " ",
	"endline":   "1",
	"echo":      "  ",
	"highlight": "0",
	"theme":     "monokai",
	"tablefmt":  "text",
	"macro":     "0",
}

func New() *Config {
	c := &Config{values: make(map[string]string, len(DefaultSettings))}
	for k, v := range DefaultSettings { c.values[k] = v }
	return c
}

// GetConfig returns the defaults overridden by the yaml file named by
// ALED_CONF (aled.yaml when unset). A missing or broken file keeps the defaults.
func GetConfig() *Config {
	conf := New()

	conffilename, exists := os.LookupEnv("ALED_CONF")
	if !exists { conffilename = "aled.yaml" }

	data, err := os.ReadFile(conffilename)
	if err != nil { return conf }

	var yamlConfig fileConfig
	err = yaml.Unmarshal(data, &yamlConfig)
	if err != nil { return conf }

	for k, v := range yamlConfig.Settings { conf.values[k] = v }
	return conf
}

func (c *Config) Get(key string) (string, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Value returns the value for key or "" when unset.
func (c *Config) Value(key string) string { return c.values[key] }

// Set stores value and returns the previous one, if any.
func (c *Config) Set(key, value string) (old string, existed bool) {
	old, existed = c.values[key]
	c.values[key] = value
	return old, existed
}

func (c *Config) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for k := range c.values { keys = append(keys, k) }
	sort.Strings(keys)
	return keys
}

// Bool interprets key as a boolean: 0/false/no and 1/true/yes, case insensitive.
func (c *Config) Bool(key string) (bool, error) {
	return ParseBool(key, c.values[key])
}

func ParseBool(key, value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "0", "false", "no":
		return false, nil
	case "1", "true", "yes":
		return true, nil
	}
	return false, &InvalidConfigError{Key: key, Value: value}
}
