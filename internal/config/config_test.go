package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate moves the working directory and home into an empty temp dir so
// that no real config file is picked up
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultHost, cfg.Host)
	assert.Equal(t, 30*time.Second, cfg.Poll.Index)
	assert.Equal(t, 5*time.Second, cfg.Poll.Search)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, 4*time.Second, cfg.Toast.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, DefaultRetention, cfg.Journal.Retention)
	assert.Empty(t, cfg.Source)
}

func TestLoad_File(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
host: https://search.example.com/
api_key: secret
index: movies
poll:
  search: 2s
log:
  level: debug
`), 0644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "https://search.example.com", cfg.Host)
	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, "movies", cfg.Index)
	assert.Equal(t, 2*time.Second, cfg.Poll.Search)
	assert.Equal(t, 30*time.Second, cfg.Poll.Index)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, path, cfg.Source)
}

func TestLoad_SearchPath(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "indexdesk.yaml"), []byte("index: books\n"), 0644))

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "books", cfg.Index)
	assert.NotEmpty(t, cfg.Source)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)

	_, err := Load("/does/not/exist.yaml", nil)
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "indexdesk.yaml")
	require.NoError(t, os.WriteFile(path, []byte("host: http://file:7700\nlog:\n  level: warn\n"), 0644))

	t.Setenv("INDEXDESK_HOST", "http://env:7700")
	t.Setenv("INDEXDESK_LOG_LEVEL", "error")
	t.Setenv("INDEXDESK_API_KEY", "from-env")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "http://env:7700", cfg.Host)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, "from-env", cfg.APIKey)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	isolate(t)
	t.Setenv("INDEXDESK_HOST", "http://env:7700")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	fs.String("index", "", "")
	require.NoError(t, fs.Parse([]string{"--host", "http://flag:7700", "--index", "movies"}))

	cfg, err := Load("", fs)
	require.NoError(t, err)
	assert.Equal(t, "http://flag:7700", cfg.Host)
	assert.Equal(t, "movies", cfg.Index)
}

func TestLoad_UnsetFlagsKeepDefaults(t *testing.T) {
	isolate(t)

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(nil))

	cfg, err := Load("", fs)
	require.NoError(t, err)
	assert.Equal(t, DefaultHost, cfg.Host)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Host:    DefaultHost,
		Timeout: time.Second,
		Poll:    PollConfig{Index: time.Second, Search: time.Second},
		Journal: JournalConfig{Retention: 10},
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"empty host", func(c *Config) { c.Host = "" }, true},
		{"host without scheme", func(c *Config) { c.Host = "localhost:7700" }, true},
		{"zero poll", func(c *Config) { c.Poll.Search = 0 }, true},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, true},
		{"zero retention", func(c *Config) { c.Journal.Retention = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLogPath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/tmp/state")

	c := Config{}
	assert.Equal(t, "/tmp/state/indexdesk/indexdesk.log", c.LogPath())

	c.Log.File = "/var/log/indexdesk.log"
	assert.Equal(t, "/var/log/indexdesk.log", c.LogPath())
}
