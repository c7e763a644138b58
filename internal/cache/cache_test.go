package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/Fuabioo/gzjson"
)

func writeDoc(t *testing.T, path string, doc any) {
	t.Helper()

	if err := gzjson.Write(path, doc); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestRead_CachesUnchangedFile(t *testing.T) {
	store, err := New(&gzjson.Codec{}, 8)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	path := filepath.Join(t.TempDir(), "doc.json.gz")
	want := map[string]any{"a": float64(1)}
	writeDoc(t, path, want)

	first, err := store.Read(path)
	if err != nil {
		t.Fatalf("first Read() error: %v", err)
	}
	second, err := store.Read(path)
	if err != nil {
		t.Fatalf("second Read() error: %v", err)
	}

	if !reflect.DeepEqual(first, want) || !reflect.DeepEqual(second, want) {
		t.Errorf("Read() = %#v / %#v, want %#v", first, second, want)
	}
	if store.Len() != 1 {
		t.Errorf("Len() = %d, want 1", store.Len())
	}
}

func TestRead_InvalidatesOnFileChange(t *testing.T) {
	store, err := New(&gzjson.Codec{}, 8)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	path := filepath.Join(t.TempDir(), "doc.json.gz")
	writeDoc(t, path, map[string]any{"v": float64(1)})

	if _, err := store.Read(path); err != nil {
		t.Fatalf("Read() error: %v", err)
	}

	writeDoc(t, path, map[string]any{"v": float64(2)})
	// Force a different mtime; coarse filesystem timestamp granularity
	// could otherwise leave the two writes indistinguishable.
	later := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatalf("failed to chtimes: %v", err)
	}

	got, err := store.Read(path)
	if err != nil {
		t.Fatalf("Read() after rewrite error: %v", err)
	}
	want := map[string]any{"v": float64(2)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Read() = %#v, want %#v", got, want)
	}
}

func TestRead_MissingFile(t *testing.T) {
	store, err := New(&gzjson.Codec{}, 8)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	path := filepath.Join(t.TempDir(), "absent.json.gz")
	_, err = store.Read(path)
	if !gzjson.IsCode(err, gzjson.CodeFileNotFound) {
		t.Errorf("ErrorCode() = %q, want %q", gzjson.ErrorCode(err), gzjson.CodeFileNotFound)
	}
}

func TestRead_DeletedFileDropsEntry(t *testing.T) {
	store, err := New(&gzjson.Codec{}, 8)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	path := filepath.Join(t.TempDir(), "doc.json.gz")
	writeDoc(t, path, map[string]any{"a": float64(1)})

	if _, err := store.Read(path); err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if err := os.Remove(path); err != nil {
		t.Fatalf("failed to remove file: %v", err)
	}

	if _, err := store.Read(path); !gzjson.IsCode(err, gzjson.CodeFileNotFound) {
		t.Errorf("ErrorCode() = %q, want %q", gzjson.ErrorCode(err), gzjson.CodeFileNotFound)
	}
	if store.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after deletion", store.Len())
	}
}

func TestEviction(t *testing.T) {
	store, err := New(&gzjson.Codec{}, 2)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	dir := t.TempDir()
	for i := 0; i < 3; i++ {
		path := filepath.Join(dir, fmt.Sprintf("doc%d.json.gz", i))
		writeDoc(t, path, map[string]any{"i": float64(i)})
		if _, err := store.Read(path); err != nil {
			t.Fatalf("Read() error: %v", err)
		}
	}

	if store.Len() != 2 {
		t.Errorf("Len() = %d, want 2 after eviction", store.Len())
	}
}

func TestInvalidate(t *testing.T) {
	store, err := New(&gzjson.Codec{}, 8)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	path := filepath.Join(t.TempDir(), "doc.json.gz")
	writeDoc(t, path, map[string]any{"a": float64(1)})

	if _, err := store.Read(path); err != nil {
		t.Fatalf("Read() error: %v", err)
	}

	store.Invalidate(path)
	if store.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after Invalidate", store.Len())
	}
}
