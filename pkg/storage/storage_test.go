package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	fs := NewFileStore(dir, "positions.json")

	if err := fs.SetItem("a", "1"); err != nil {
		t.Fatalf("SetItem: %v", err)
	}
	v, ok, err := fs.GetItem("a")
	if err != nil || !ok || v != "1" {
		t.Fatalf("GetItem = %q, %v, %v; want \"1\", true, nil", v, ok, err)
	}

	// A fresh store over the same file must see the persisted value.
	fs2 := NewFileStore(dir, "positions.json")
	v, ok, err = fs2.GetItem("a")
	if err != nil || !ok || v != "1" {
		t.Fatalf("reload GetItem = %q, %v, %v; want \"1\", true, nil", v, ok, err)
	}
}

func TestFileStoreMissingFile(t *testing.T) {
	fs := NewFileStore(t.TempDir(), "nope.json")
	_, ok, err := fs.GetItem("missing")
	if err != nil {
		t.Fatalf("missing file should not error, got %v", err)
	}
	if ok {
		t.Fatalf("missing key reported present")
	}
}

func TestFileStoreRemove(t *testing.T) {
	fs := NewFileStore(t.TempDir(), "positions.json")
	if err := fs.SetItem("k", "v"); err != nil {
		t.Fatalf("SetItem: %v", err)
	}
	if err := fs.RemoveItem("k"); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if _, ok, _ := fs.GetItem("k"); ok {
		t.Fatalf("key survived removal")
	}
	// Removing again is a no-op.
	if err := fs.RemoveItem("k"); err != nil {
		t.Fatalf("second RemoveItem: %v", err)
	}
}

func TestFileStoreCorruptFileRecovers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "positions.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	fs := NewFileStore(dir, "positions.json")
	if _, _, err := fs.GetItem("a"); err == nil {
		t.Fatalf("corrupt file should surface a read error")
	}
	// Writes reset the store rather than failing forever.
	if err := fs.SetItem("a", "1"); err != nil {
		t.Fatalf("SetItem after corruption: %v", err)
	}
	if v, ok, err := fs.GetItem("a"); err != nil || !ok || v != "1" {
		t.Fatalf("GetItem after recovery = %q, %v, %v", v, ok, err)
	}
}

func TestMemStore(t *testing.T) {
	ms := NewMemStore()
	if err := ms.SetItem("x", "y"); err != nil {
		t.Fatalf("SetItem: %v", err)
	}
	if v, ok, _ := ms.GetItem("x"); !ok || v != "y" {
		t.Fatalf("GetItem = %q, %v", v, ok)
	}
	if err := ms.RemoveItem("x"); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if _, ok, _ := ms.GetItem("x"); ok {
		t.Fatalf("key survived removal")
	}
}
