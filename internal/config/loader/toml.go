package loader

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/pelletier/go-toml/v2"
)

// TOMLLoader reads a TOML configuration file.
type TOMLLoader struct {
	fs   FileSystem
	path string
}

// NewTOMLLoader returns a loader for the TOML file at path on the OS.
func NewTOMLLoader(path string) *TOMLLoader {
	return NewTOMLLoaderWithFS(DefaultFS(), path)
}

// NewTOMLLoaderWithFS returns a loader for the TOML file at path in fsys.
func NewTOMLLoaderWithFS(fsys FileSystem, path string) *TOMLLoader {
	return &TOMLLoader{fs: fsys, path: path}
}

// Load implements Loader. A missing file yields nil, nil.
func (l *TOMLLoader) Load() (map[string]any, error) {
	data, err := l.fs.ReadFile(l.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("reading config file %s: %w", l.path, err)
	}
	return ParseTOML(l.path, data)
}

// ParseTOML decodes TOML data into a map. source names the data in errors.
func ParseTOML(source string, data []byte) (map[string]any, error) {
	config := make(map[string]any)
	if err := DecodeTOML(source, data, &config); err != nil {
		return nil, err
	}
	return config, nil
}

// DecodeTOML decodes TOML data into v. Syntax errors are reported as a
// *ParseError carrying the position.
func DecodeTOML(source string, data []byte, v any) error {
	err := toml.Unmarshal(data, v)
	if err == nil {
		return nil
	}

	pe := &ParseError{Path: source, Err: err}
	var de *toml.DecodeError
	if errors.As(err, &de) {
		pe.Line, pe.Column = de.Position()
	}
	return pe
}

// ParseError is a syntax error in a configuration or scenario file.
type ParseError struct {
	Path string

	// Line and Column are 1-based, or zero when unknown.
	Line   int
	Column int

	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	loc := e.Path
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", loc, e.Line)
		if e.Column > 0 {
			loc = fmt.Sprintf("%s:%d", loc, e.Column)
		}
	}
	return fmt.Sprintf("parse error in %s: %v", loc, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
