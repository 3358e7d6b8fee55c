package pagecache

import (
	"path/filepath"
	"testing"
)

func TestStorePutGetRoundTrip(t *testing.T) {
	store, err := OpenStore(t.TempDir())
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	defer store.Close()

	if err := store.Put("/a", []byte("response bytes"), 42); err != nil {
		t.Fatalf("Put: %v", err)
	}

	data, modTime, ok, err := store.Get("/a")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("expected entry to be found")
	}
	if string(data) != "response bytes" {
		t.Errorf("got %q, want %q", data, "response bytes")
	}
	if modTime != 42 {
		t.Errorf("got modTime %d, want 42", modTime)
	}
}

func TestStoreGetMissingIsNotFoundNotError(t *testing.T) {
	store, err := OpenStore(t.TempDir())
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	defer store.Close()

	_, _, ok, err := store.Get("/nope")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("expected ok=false for missing entry")
	}
}

func TestStorePutUpsertsOnConflict(t *testing.T) {
	store, err := OpenStore(t.TempDir())
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	defer store.Close()

	store.Put("/a", []byte("first"), 1)
	store.Put("/a", []byte("second"), 2)

	data, modTime, ok, err := store.Get("/a")
	if err != nil || !ok {
		t.Fatalf("Get: data=%q ok=%v err=%v", data, ok, err)
	}
	if string(data) != "second" || modTime != 2 {
		t.Errorf("got (%q, %d), want (%q, %d)", data, modTime, "second", 2)
	}
}

func TestStoreDeleteRemovesEntry(t *testing.T) {
	store, err := OpenStore(t.TempDir())
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	defer store.Close()

	store.Put("/a", []byte("x"), 1)
	if err := store.Delete("/a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	_, _, ok, err := store.Get("/a")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("expected entry to be gone after Delete")
	}
}

func TestOpenStoreCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	store, err := OpenStore(dir)
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	defer store.Close()
}
