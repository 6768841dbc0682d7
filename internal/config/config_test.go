package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/ticktype/internal/model"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Practice.Lang)
	assert.Nil(t, cfg.Practice.Seconds)
}

func TestLoadConfigPractice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "[practice]\nlang = \"fi\"\ntime = 60\nwords = 300\nlog-level = \"debug\"\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Practice.Lang)
	assert.Equal(t, "fi", *cfg.Practice.Lang)
	require.NotNil(t, cfg.Practice.Seconds)
	assert.Equal(t, 60, *cfg.Practice.Seconds)
	require.NotNil(t, cfg.Practice.Words)
	assert.Equal(t, 300, *cfg.Practice.Words)
	assert.Nil(t, cfg.Practice.WordlistDir)
	require.NotNil(t, cfg.Practice.LogLevel)
	assert.Equal(t, "debug", *cfg.Practice.LogLevel)
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[practice]\ncaps = 0.5\n"), 0o644))
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "practice.caps")
}

func TestLoadConfigEmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	require.Error(t, err)
}

func TestDefaultPathsFollowXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv("XDG_STATE_HOME", "/state")
	t.Setenv("XDG_CACHE_HOME", "/cache")
	assert.Equal(t, filepath.Join("/cfg", "ticktype", "config.toml"), DefaultConfigPath())
	assert.Equal(t, filepath.Join("/cfg", "ticktype", "wordlists"), DefaultWordListDir())
	assert.Equal(t, filepath.Join("/data", "ticktype", "ticktype.db"), DefaultDBPath())
	assert.Equal(t, filepath.Join("/state", "ticktype", "ticktype.log"), DefaultLogPath())
	assert.Equal(t, filepath.Join("/cache", "ticktype", "wordfreq"), DefaultWordfreqCacheDir())
}

func TestValidate(t *testing.T) {
	valid := model.Config{Lang: "en", Seconds: 30, Words: 200, LogLevel: "info"}
	require.NoError(t, Validate(valid))

	for _, tc := range []struct {
		name   string
		mutate func(*model.Config)
		want   string
	}{
		{"empty lang", func(c *model.Config) { c.Lang = "" }, "--lang must not be empty"},
		{"odd duration", func(c *model.Config) { c.Seconds = 45 }, "--time must be one of 15, 30, 60, 120"},
		{"no words", func(c *model.Config) { c.Words = 0 }, "--words must be >= 1"},
		{"bad level", func(c *model.Config) { c.LogLevel = "loud" }, "--log-level must be one of"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			err := Validate(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
