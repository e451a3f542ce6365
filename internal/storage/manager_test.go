// manager_test.go - Tests for storage layer
package storage

import (
	"os"
	"strings"
	"testing"
	"time"
)

func createTestStore(t *testing.T) *LocalStore {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	return store
}

func TestSaveAndGet(t *testing.T) {
	store := createTestStore(t)

	info, err := store.Save("schema.json", strings.NewReader(`{"orders":{}}`))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if info.ID == "" {
		t.Error("Expected generated ID")
	}
	if info.Name != "schema.json" {
		t.Errorf("Expected name schema.json, got %s", info.Name)
	}
	if info.Size != int64(len(`{"orders":{}}`)) {
		t.Errorf("Unexpected size: %d", info.Size)
	}
	if len(info.Digest) != 64 {
		t.Errorf("Expected hex SHA-256 digest, got %q", info.Digest)
	}
	if info.Status != "uploaded" {
		t.Errorf("Expected status uploaded, got %s", info.Status)
	}

	got, err := store.Get(info.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.ID != info.ID {
		t.Errorf("Get returned wrong file")
	}
}

func TestSave_SameContentSameDigest(t *testing.T) {
	store := createTestStore(t)

	a, _ := store.Save("a.json", strings.NewReader(`{"users":{}}`))
	b, _ := store.Save("b.json", strings.NewReader(`{"users":{}}`))

	if a.Digest != b.Digest {
		t.Error("Identical content must produce identical digests")
	}
	if a.ID == b.ID {
		t.Error("Each save must get its own ID")
	}
}

func TestSave_ContentOnDisk(t *testing.T) {
	store := createTestStore(t)

	info, err := store.Save("schema.yaml", strings.NewReader("orders:\n  columns: []\n"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	path, err := store.GetFilePath(info.ID)
	if err != nil {
		t.Fatalf("GetFilePath failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Reading stored file failed: %v", err)
	}
	if string(data) != "orders:\n  columns: []\n" {
		t.Errorf("Stored content mismatch: %q", data)
	}
}

func TestList_OrderAndLimit(t *testing.T) {
	store := createTestStore(t)

	first, _ := store.Save("first.json", strings.NewReader("{}"))
	time.Sleep(2 * time.Millisecond)
	second, _ := store.Save("second.json", strings.NewReader("{}"))
	time.Sleep(2 * time.Millisecond)
	third, _ := store.Save("third.json", strings.NewReader("{}"))

	list, err := store.List(2)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("Expected 2 files, got %d", len(list))
	}
	if list[0].ID != third.ID || list[1].ID != second.ID {
		t.Error("Expected newest-first ordering")
	}
	_ = first
}

func TestDelete(t *testing.T) {
	store := createTestStore(t)

	info, _ := store.Save("schema.json", strings.NewReader("{}"))
	path, _ := store.GetFilePath(info.ID)

	if err := store.Delete(info.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := store.Get(info.ID); err == nil {
		t.Error("Expected Get to fail after delete")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Expected file removed from disk")
	}

	if err := store.Delete("nonexistent"); err == nil {
		t.Error("Expected error deleting unknown id")
	}
}

func TestSetStatus(t *testing.T) {
	store := createTestStore(t)

	info, _ := store.Save("schema.json", strings.NewReader("{}"))
	store.SetStatus(info.ID, "processed")

	got, _ := store.Get(info.ID)
	if got.Status != "processed" {
		t.Errorf("Expected status processed, got %s", got.Status)
	}

	// Unknown ids are ignored.
	store.SetStatus("nonexistent", "processed")
}
