// Package watcher re-runs work when a file changes.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is used when Watch is given a non-positive debounce.
const DefaultDebounce = 100 * time.Millisecond

// ErrPathNotExist is returned when the watched file does not exist.
var ErrPathNotExist = errors.New("path does not exist")

// Option configures Watch.
type Option func(*options)

type options struct {
	logger *slog.Logger
	ready  func()
}

// WithLogger sets the logger for watch errors.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithReady sets a hook called once the file is being watched.
func WithReady(fn func()) Option {
	return func(o *options) {
		o.ready = fn
	}
}

// Watch calls fn each time path changes, once writes have settled for
// debounce. It blocks until ctx is canceled and then returns nil.
//
// The parent directory is watched rather than the file, so editors that
// save by renaming a new file over the old one are still seen.
func Watch(ctx context.Context, path string, debounce time.Duration, fn func(), opts ...Option) error {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(absPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrPathNotExist, path)
		}
		return err
	}
	if resolved, err := filepath.EvalSymlinks(absPath); err == nil {
		absPath = resolved
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}
	if o.ready != nil {
		o.ready()
	}

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != absPath || !isChange(ev.Op) {
				continue
			}
			timer.Reset(debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			o.logger.Warn("file watch error", "path", path, "error", err)

		case <-timer.C:
			fn()
		}
	}
}

// isChange reports whether op can alter the file's contents.
func isChange(op fsnotify.Op) bool {
	return op.Has(fsnotify.Create) || op.Has(fsnotify.Write) || op.Has(fsnotify.Rename)
}
