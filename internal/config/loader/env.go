package loader

import (
	"os"
	"strings"
)

// EnvLoader loads configuration from environment variables.
// Values are kept as strings; typed access parses them.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "MEDIATOR_")
	mapping map[string]string // Env var -> config path
	environ func() []string
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "MEDIATOR_").
func NewEnvLoader(prefix string, mapping map[string]string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: mapping,
		environ: os.Environ,
	}
}

// WithEnviron replaces the source of KEY=value pairs, os.Environ by default.
func (l *EnvLoader) WithEnviron(environ func() []string) *EnvLoader {
	l.environ = environ
	return l
}

// Load reads the process environment.
func (l *EnvLoader) Load() (map[string]any, error) {
	vars := make(map[string]string)
	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if ok {
			vars[name] = value
		}
	}
	return l.FromVars(vars), nil
}

// FromVars converts variables to a configuration map. Mapped variables go
// to their configured path; other prefixed variables are converted by
// name, so MEDIATOR_WATCH_DEBOUNCE becomes watch.debounce.
// Empty values are kept, not treated as unset.
func (l *EnvLoader) FromVars(vars map[string]string) map[string]any {
	config := make(map[string]any)

	for name, value := range vars {
		if !strings.HasPrefix(name, l.prefix) {
			continue
		}
		path, ok := l.mapping[name]
		if !ok {
			path = l.envToPath(name)
		}
		SetByPath(config, path, value)
	}

	return config
}

// envToPath converts MEDIATOR_KEYS_CACHE_SIZE to keys.cacheSize.
func (l *EnvLoader) envToPath(env string) string {
	parts := strings.Split(strings.TrimPrefix(env, l.prefix), "_")

	section := strings.ToLower(parts[0])
	if len(parts) == 1 {
		return section
	}

	setting := strings.ToLower(parts[1])
	for _, part := range parts[2:] {
		if len(part) > 0 {
			setting += strings.ToUpper(part[:1]) + strings.ToLower(part[1:])
		}
	}
	return section + "." + setting
}
