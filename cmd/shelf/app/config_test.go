package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "> ", config.Prompt)
	assert.Equal(t, "auto", config.LogFormat)
	assert.Equal(t, "stderr", config.LogOutput)
	assert.Empty(t, config.DataFiles)
	assert.Empty(t, config.ConfigFile)
	assert.Equal(t, ".shelf_history", filepath.Base(config.HistoryFile))
}

func TestLoadConfig_File(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	content := "prompt: \"shelf> \"\n" +
		"history_file: ~/hist\n" +
		"format: yaml\n" +
		"data:\n  - a.csv\n  - ~/b.csv\n"
	configFile := filepath.Join(home, ".shelf.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0o644))

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, configFile, config.ConfigFile)
	assert.Equal(t, "shelf> ", config.Prompt)
	assert.Equal(t, filepath.Join(home, "hist"), config.HistoryFile)
	assert.Equal(t, "yaml", config.Format)
	assert.Equal(t, []string{"a.csv", filepath.Join(home, "b.csv")}, config.DataFiles)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	t.Setenv("SHELF_PROMPT", "$ ")
	t.Setenv("SHELF_DATA", "one.csv, two.csv")
	t.Setenv("SHELF_VERBOSE", "true")
	t.Setenv("LOG_LEVEL", "debug")

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "$ ", config.Prompt)
	assert.Equal(t, []string{"one.csv", "two.csv"}, config.DataFiles)
	assert.True(t, config.Verbose)
	assert.Equal(t, "debug", config.LogLevel)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile(".env", []byte("SHELF_FORMAT=json\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("SHELF_FORMAT") })

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "json", config.Format)
}

func TestLoadConfig_ExplicitFileErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("data: [unterminated\n"), 0o644))
	_, err = LoadConfig(bad)
	require.Error(t, err)
}

func TestConfig_UpdateFromFlags(t *testing.T) {
	config := &Config{Quiet: true, LogLevel: "info"}

	config.UpdateFromFlags(true, false, true, "")
	assert.True(t, config.Verbose)
	assert.True(t, config.Quiet, "unset flags keep loaded values")
	assert.True(t, config.NoColor)
	assert.Equal(t, "info", config.LogLevel)

	config.UpdateFromFlags(false, false, false, "trace")
	assert.Equal(t, "trace", config.LogLevel)
}
