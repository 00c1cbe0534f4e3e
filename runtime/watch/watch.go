// Package watch re-runs a callback whenever a file changes on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/opal-lang/idfilter/pkgs/errors"
)

// Handler receives the full contents of the watched file.
type Handler func(src []byte) error

// File calls handle with the current contents of path, then again after
// every write to it, until ctx is cancelled. The parent directory is
// watched rather than the file itself so that editors that save by
// renaming a temporary file are still followed.
//
// A read or handler error stops the watch and is returned; read failures are
// errors.NewInputError values. Cancellation returns nil.
func File(ctx context.Context, path string, logger *slog.Logger, handle Handler) error {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	path = filepath.Clean(path)

	if err := load(path, handle); err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	logger.Info("watching for changes", "path", path)

	for {
		select {
		case <-ctx.Done():
			logger.Debug("watch stopped", "path", path)
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			logger.Debug("file event", "path", path, "op", ev.Op.String())

			switch {
			case ev.Has(fsnotify.Write), ev.Has(fsnotify.Create):
				if err := load(path, handle); err != nil {
					return err
				}
			case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
				logger.Info("file removed, waiting for it to reappear", "path", path)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch %s: %w", path, err)
		}
	}
}

func load(path string, handle Handler) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return errors.NewInputError(path, err)
	}
	return handle(src)
}
