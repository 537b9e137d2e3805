package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// DotEnvLoader loads configuration from a .env file, converting its
// variables the way an EnvLoader converts the process environment.
type DotEnvLoader struct {
	fs   FileSystem
	path string
	env  *EnvLoader
}

// NewDotEnvLoader creates a loader for the .env file at path.
func NewDotEnvLoader(fsys FileSystem, path string, env *EnvLoader) *DotEnvLoader {
	return &DotEnvLoader{fs: fsys, path: path, env: env}
}

// Load reads and converts the file. A missing file yields nil, nil.
func (l *DotEnvLoader) Load() (map[string]any, error) {
	data, err := l.fs.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading env file %s: %w", l.path, err)
	}

	vars, err := godotenv.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{Path: l.path, Err: err}
	}
	return l.env.FromVars(vars), nil
}
