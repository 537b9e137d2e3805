package config

import (
	"log/slog"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv() []string { return nil }

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", WithFS(fstest.MapFS{}), WithEnviron(noEnv))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

func TestLoad_Layers(t *testing.T) {
	fsys := fstest.MapFS{
		"mediator.toml": {Data: []byte(`
[log]
level = "debug"
format = "json"

[output]
format = "json"

[keys]
cacheSize = 64

[watch]
debounce = "1s"
`)},
		".env": {Data: []byte("MEDIATOR_LOG_LEVEL=warn\nMEDIATOR_METRICS=true\n")},
	}
	environ := func() []string {
		return []string{"MEDIATOR_KEY_CACHE_SIZE=32", "HOME=/root", "MEDIATOR_WATCH_DEBOUNCE=50ms"}
	}

	cfg, err := Load("mediator.toml", WithFS(fsys), WithEnviron(environ))
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level, ".env overrides the file")
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, 32, cfg.Keys.CacheSize, "environment overrides everything")
	assert.Equal(t, 50*time.Millisecond, cfg.Watch.Debounce, "unmapped variables are converted by name")
}

func TestLoad_EnvOverridesDotEnv(t *testing.T) {
	fsys := fstest.MapFS{
		"custom.env": {Data: []byte("MEDIATOR_OUTPUT=json\nMEDIATOR_LOG_LEVEL=debug\n")},
	}
	environ := func() []string { return []string{"MEDIATOR_LOG_LEVEL=error"} }

	cfg, err := Load("", WithFS(fsys), WithEnvFile("custom.env"), WithEnviron(environ))
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoad_DisabledEnvFile(t *testing.T) {
	fsys := fstest.MapFS{".env": {Data: []byte("MEDIATOR_OUTPUT=json\n")}}

	cfg, err := Load("", WithFS(fsys), WithEnvFile(""), WithEnviron(noEnv))
	require.NoError(t, err)

	assert.Equal(t, "text", cfg.Output.Format)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load("missing.toml", WithFS(fstest.MapFS{}), WithEnviron(noEnv))

	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestLoad_ParseError(t *testing.T) {
	fsys := fstest.MapFS{"bad.toml": {Data: []byte("[log\nlevel = 1\n")}}

	_, err := Load("bad.toml", WithFS(fsys), WithEnviron(noEnv))

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "bad.toml", pe.Path)
	assert.Positive(t, pe.Line)
}

func TestLoad_TypeMismatch(t *testing.T) {
	fsys := fstest.MapFS{"c.toml": {Data: []byte("[keys]\ncacheSize = \"many\"\n")}}

	_, err := Load("c.toml", WithFS(fsys), WithEnviron(noEnv))

	assert.ErrorIs(t, err, ErrTypeMismatch)
	var se *SettingError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, PathKeyCacheSize, se.Path)
}

func TestLoad_InvalidValues(t *testing.T) {
	environ := func() []string {
		return []string{"MEDIATOR_LOG_LEVEL=loud", "MEDIATOR_OUTPUT=xml"}
	}

	_, err := Load("", WithFS(fstest.MapFS{}), WithEnviron(environ))

	assert.ErrorIs(t, err, ErrInvalidLogLevel)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Keys.CacheSize = -1
	cfg.Watch.Debounce = -time.Second
	cfg.Log.Format = "yaml"

	err := cfg.Validate()
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLogLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLogLevel("trace")
	assert.ErrorIs(t, err, ErrInvalidLogLevel)
}
