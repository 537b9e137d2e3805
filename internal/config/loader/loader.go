// Package loader reads configuration sources into nested maps.
//
// Each source (a TOML file, a .env file, the process environment) yields
// a map[string]any keyed by section, which callers layer with DeepMerge.
package loader

import (
	"io/fs"
	"os"
	"strings"
)

// Loader reads one configuration source.
type Loader interface {
	// Load returns the source as a nested map, or nil, nil when the
	// source does not exist.
	Load() (map[string]any, error)
}

var (
	_ Loader = (*TOMLLoader)(nil)
	_ Loader = (*DotEnvLoader)(nil)
	_ Loader = (*EnvLoader)(nil)
)

// FileSystem is what file-backed loaders read from.
// fstest.MapFS satisfies it.
type FileSystem interface {
	fs.ReadFileFS
}

// OSFS reads from the operating system. Unlike os.DirFS it accepts
// absolute and parent-relative paths.
type OSFS struct{}

// Open implements fs.FS.
func (OSFS) Open(name string) (fs.File, error) { return os.Open(name) }

// ReadFile implements fs.ReadFileFS.
func (OSFS) ReadFile(name string) ([]byte, error) { return os.ReadFile(name) }

// DefaultFS returns the OS file system.
func DefaultFS() FileSystem {
	return OSFS{}
}

// DeepMerge layers src over dst and returns dst. Nested maps merge key by
// key; any other src value replaces what dst holds.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for key, sv := range src {
		sm, srcNested := sv.(map[string]any)
		dm, dstNested := dst[key].(map[string]any)
		if srcNested && dstNested {
			dst[key] = DeepMerge(dm, sm)
			continue
		}
		dst[key] = sv
	}
	return dst
}

// GetByPath looks up a dotted path such as "log.level".
func GetByPath(data map[string]any, path string) (any, bool) {
	parent, leaf := walk(data, path, false)
	if parent == nil {
		return nil, false
	}
	v, ok := parent[leaf]
	return v, ok
}

// SetByPath stores value at a dotted path, creating sections as needed.
func SetByPath(data map[string]any, path string, value any) {
	parent, leaf := walk(data, path, true)
	parent[leaf] = value
}

// walk descends to the map holding the last path element. With create
// set, missing or non-map sections are replaced by empty maps.
func walk(data map[string]any, path string, create bool) (map[string]any, string) {
	sections := strings.Split(path, ".")
	leaf := sections[len(sections)-1]

	m := data
	for _, name := range sections[:len(sections)-1] {
		next, ok := m[name].(map[string]any)
		if !ok {
			if !create {
				return nil, ""
			}
			next = make(map[string]any)
			m[name] = next
		}
		m = next
	}
	return m, leaf
}
