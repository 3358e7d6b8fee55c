package pagecache

import (
	"log"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Watcher invalidates Cache (and, if set, Store) entries whenever their
// backing .fml source file changes on disk, grounded on
// github.com/0xcro3dile/localrag-go's fsnotify-based file watcher adapter.
// The mapping from source file to cache key is supplied by the caller
// since it depends on how the server maps request paths to files on disk.
type Watcher struct {
	fsw         *fsnotify.Watcher
	cache       *Cache
	store       *Store
	pathForFile func(file string) string
}

// NewWatcher builds a Watcher rooted at dir, invalidating cache (and,
// optionally, store) entries via pathForFile, the server's file-to-request-path
// mapping. Pass a nil store to run without persistent invalidation.
func NewWatcher(dir string, cache *Cache, store *Store, pathForFile func(file string) string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{fsw: fsw, cache: cache, store: store, pathForFile: pathForFile}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !strings.HasSuffix(event.Name, ".fml") {
				continue
			}
			switch {
			case event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0:
				w.invalidate(event.Name)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("pagecache: watcher error: %v", err)
		}
	}
}

func (w *Watcher) invalidate(file string) {
	path := w.pathForFile(filepath.Clean(file))
	w.cache.Invalidate(path)
	if w.store != nil {
		if err := w.store.Delete(path); err != nil {
			log.Printf("pagecache: failed to invalidate persisted entry for %s: %v", path, err)
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
