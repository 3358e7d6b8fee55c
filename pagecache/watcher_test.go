package pagecache

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func pathForTestFile(dir string) func(string) string {
	return func(file string) string {
		rel, err := filepath.Rel(dir, file)
		if err != nil {
			return file
		}
		return "/" + rel
	}
}

func TestWatcherInvalidatesCacheOnWrite(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "page.fml")
	if err := os.WriteFile(file, []byte("(* \"v1\")"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cache := New()
	cache.GetOrBuild("/page.fml", func() ([]byte, error) { return []byte("v1"), nil })

	w, err := NewWatcher(dir, cache, nil, pathForTestFile(dir))
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(file, []byte("(* \"v2\")"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		sh := cache.shardFor("/page.fml")
		sh.mu.Lock()
		_, found := sh.entries["/page.fml"]
		sh.mu.Unlock()
		if !found {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Error("expected cache entry to be invalidated after file write")
}

func TestWatcherIgnoresNonFMLFiles(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "page.png")
	if err := os.WriteFile(file, []byte("binary"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cache := New()
	cache.GetOrBuild("/page.png", func() ([]byte, error) { return []byte("v1"), nil })

	w, err := NewWatcher(dir, cache, nil, pathForTestFile(dir))
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	os.WriteFile(file, []byte("binary2"), 0o644)
	time.Sleep(100 * time.Millisecond)

	sh := cache.shardFor("/page.png")
	sh.mu.Lock()
	_, found := sh.entries["/page.png"]
	sh.mu.Unlock()
	if !found {
		t.Error("expected non-.fml file change to leave cache entry intact")
	}
}
