package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/dshills/mediator/internal/config/loader"
)

// EnvPrefix prefixes every environment variable the configuration reads.
const EnvPrefix = "MEDIATOR_"

// DefaultEnvFile is the .env file read when no other is given.
const DefaultEnvFile = ".env"

// Setting paths.
const (
	PathLogLevel      = "log.level"
	PathLogFormat     = "log.format"
	PathOutputFormat  = "output.format"
	PathMetrics       = "metrics.enabled"
	PathKeyCacheSize  = "keys.cacheSize"
	PathWatchDebounce = "watch.debounce"
)

// envMapping maps the documented variables to setting paths. Other
// MEDIATOR_ variables are converted by name.
var envMapping = map[string]string{
	"MEDIATOR_LOG_LEVEL":      PathLogLevel,
	"MEDIATOR_LOG_FORMAT":     PathLogFormat,
	"MEDIATOR_OUTPUT":         PathOutputFormat,
	"MEDIATOR_METRICS":        PathMetrics,
	"MEDIATOR_KEY_CACHE_SIZE": PathKeyCacheSize,
}

// Config is the resolved configuration.
type Config struct {
	Log     LogConfig
	Output  OutputConfig
	Metrics MetricsConfig
	Keys    KeysConfig
	Watch   WatchConfig
}

// LogConfig configures the process logger.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string
	// Format is auto, text or json. Auto picks text on a terminal.
	Format string
}

// OutputConfig configures scenario reports.
type OutputConfig struct {
	// Format is text or json.
	Format string
}

// MetricsConfig configures the Prometheus observer.
type MetricsConfig struct {
	Enabled bool
}

// KeysConfig configures key parsing.
type KeysConfig struct {
	// CacheSize is the number of parsed keys kept in the LRU cache.
	CacheSize int
}

// WatchConfig configures the scenario file watcher.
type WatchConfig struct {
	// Debounce is how long writes must settle before a re-run.
	Debounce time.Duration
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Log:    LogConfig{Level: "info", Format: "auto"},
		Output: OutputConfig{Format: "text"},
		Keys:   KeysConfig{CacheSize: 256},
		Watch:  WatchConfig{Debounce: 200 * time.Millisecond},
	}
}

// defaultMap renders the defaults as the lowest configuration layer.
func defaultMap() map[string]any {
	d := Default()
	m := make(map[string]any)
	loader.SetByPath(m, PathLogLevel, d.Log.Level)
	loader.SetByPath(m, PathLogFormat, d.Log.Format)
	loader.SetByPath(m, PathOutputFormat, d.Output.Format)
	loader.SetByPath(m, PathMetrics, d.Metrics.Enabled)
	loader.SetByPath(m, PathKeyCacheSize, int64(d.Keys.CacheSize))
	loader.SetByPath(m, PathWatchDebounce, d.Watch.Debounce)
	return m
}

// Option configures Load.
type Option func(*options)

type options struct {
	fs      loader.FileSystem
	envFile string
	environ func() []string
}

// WithFS reads files from fsys instead of the OS.
func WithFS(fsys loader.FileSystem) Option {
	return func(o *options) {
		o.fs = fsys
	}
}

// WithEnvFile reads .env variables from path. An empty path disables the
// .env layer.
func WithEnvFile(path string) Option {
	return func(o *options) {
		o.envFile = path
	}
}

// WithEnviron replaces os.Environ as the environment layer.
func WithEnviron(environ func() []string) Option {
	return func(o *options) {
		o.environ = environ
	}
}

// Load resolves the configuration from, lowest priority first: defaults,
// the TOML file at path (skipped when path is empty), the .env file, and
// MEDIATOR_* environment variables. The result is validated.
func Load(path string, opts ...Option) (*Config, error) {
	o := options{
		fs:      loader.DefaultFS(),
		envFile: DefaultEnvFile,
	}
	for _, opt := range opts {
		opt(&o)
	}

	env := loader.NewEnvLoader(EnvPrefix, envMapping)
	if o.environ != nil {
		env.WithEnviron(o.environ)
	}

	merged := defaultMap()

	if path != "" {
		file, err := loader.NewTOMLLoaderWithFS(o.fs, path).Load()
		if err != nil {
			return nil, err
		}
		if file == nil {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		merged = loader.DeepMerge(merged, file)
	}

	if o.envFile != "" {
		dotenv, err := loader.NewDotEnvLoader(o.fs, o.envFile, env).Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, dotenv)
	}

	vars, err := env.Load()
	if err != nil {
		return nil, err
	}
	merged = loader.DeepMerge(merged, vars)

	cfg, err := fromMap(merged)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// fromMap reads every known setting out of a merged map.
func fromMap(m map[string]any) (*Config, error) {
	cfg := Default()
	var errs []error

	get := func(path string, apply func(v any) error) {
		v, ok := loader.GetByPath(m, path)
		if !ok {
			return
		}
		if err := apply(v); err != nil {
			errs = append(errs, &SettingError{Path: path, Value: v, Err: err})
		}
	}

	get(PathLogLevel, func(v any) (err error) { cfg.Log.Level, err = asString(v); return })
	get(PathLogFormat, func(v any) (err error) { cfg.Log.Format, err = asString(v); return })
	get(PathOutputFormat, func(v any) (err error) { cfg.Output.Format, err = asString(v); return })
	get(PathMetrics, func(v any) (err error) { cfg.Metrics.Enabled, err = asBool(v); return })
	get(PathKeyCacheSize, func(v any) (err error) { cfg.Keys.CacheSize, err = asInt(v); return })
	get(PathWatchDebounce, func(v any) (err error) { cfg.Watch.Debounce, err = asDuration(v); return })

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

func asString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: want string, got %T", ErrTypeMismatch, v)
	}
	return strings.ToLower(strings.TrimSpace(s)), nil
}

func asBool(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "yes", "on", "1":
			return true, nil
		case "false", "no", "off", "0", "":
			return false, nil
		}
	}
	return false, fmt.Errorf("%w: want bool, got %v", ErrTypeMismatch, v)
}

func asInt(v any) (int, error) {
	switch n := v.(type) {
	case int64:
		return int(n), nil
	case int:
		return n, nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrTypeMismatch, err)
		}
		return i, nil
	}
	return 0, fmt.Errorf("%w: want integer, got %T", ErrTypeMismatch, v)
}

func asDuration(v any) (time.Duration, error) {
	switch d := v.(type) {
	case time.Duration:
		return d, nil
	case string:
		parsed, err := time.ParseDuration(strings.TrimSpace(d))
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrTypeMismatch, err)
		}
		return parsed, nil
	}
	return 0, fmt.Errorf("%w: want duration string, got %T", ErrTypeMismatch, v)
}

// Validate checks every setting's range.
func (c *Config) Validate() error {
	var errs []error

	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		errs = append(errs, &SettingError{Path: PathLogLevel, Value: c.Log.Level, Err: err})
	}
	switch c.Log.Format {
	case "auto", "text", "json":
	default:
		errs = append(errs, &SettingError{Path: PathLogFormat, Value: c.Log.Format, Err: ErrInvalidFormat})
	}
	switch c.Output.Format {
	case "text", "json":
	default:
		errs = append(errs, &SettingError{Path: PathOutputFormat, Value: c.Output.Format, Err: ErrInvalidFormat})
	}
	if c.Keys.CacheSize < 0 {
		errs = append(errs, &SettingError{Path: PathKeyCacheSize, Value: c.Keys.CacheSize, Err: ErrValidationFailed})
	}
	if c.Watch.Debounce < 0 {
		errs = append(errs, &SettingError{Path: PathWatchDebounce, Value: c.Watch.Debounce, Err: ErrValidationFailed})
	}

	return errors.Join(errs...)
}

// ParseLogLevel converts a level name to a slog.Level.
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, level)
	}
}
