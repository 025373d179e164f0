package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/bryanwahyu/marineiq/internal/domain/catalog"
)

// File is a catalog backed by a YAML file. Watch keeps it in sync with disk.
type File struct {
	*Memory
	path   string
	logger *zap.Logger
}

// OpenFile loads path. The file must exist and hold a valid catalog.
func OpenFile(path string, logger *zap.Logger) (*File, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c, err := readFile(path)
	if err != nil {
		return nil, err
	}
	mem, err := NewMemory(c)
	if err != nil {
		return nil, err
	}
	return &File{Memory: mem, path: path, logger: logger}, nil
}

func readFile(path string) (catalog.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return catalog.Catalog{}, err
	}
	defer f.Close()
	c, err := Decode(f)
	if err != nil {
		return catalog.Catalog{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func (f *File) Path() string { return f.path }

// Reload re-reads the file. A broken file leaves the current catalog active.
func (f *File) Reload() error {
	c, err := readFile(f.path)
	if err != nil {
		return err
	}
	return f.Replace(c)
}

// Watch reloads the catalog whenever the file changes, until ctx is done.
// The parent directory is watched because editors often replace files by rename.
func (f *File) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	dir := filepath.Dir(f.path)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	target := filepath.Clean(f.path)
	f.logger.Info("watching catalog file", zap.String("path", f.path))

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			if err := f.Reload(); err != nil {
				f.logger.Warn("catalog reload rejected", zap.String("path", f.path), zap.Error(err))
				continue
			}
			f.logger.Info("catalog reloaded", zap.String("path", f.path))
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			f.logger.Warn("catalog watcher error", zap.Error(err))
		}
	}
}
