package sqlite

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T, path string) *KVStore {
	t.Helper()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestKVStoreRoundTrip(t *testing.T) {
	s := openTestStore(t, filepath.Join(t.TempDir(), "test.db"))

	if _, ok, err := s.Get("missing"); ok || err != nil {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	if err := s.Set("k", "v1"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := s.Set("k", "v2"); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	v, ok, err := s.Get("k")
	if err != nil || !ok || v != "v2" {
		t.Fatalf("got %q ok=%v err=%v", v, ok, err)
	}

	if err := s.Remove("k"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if _, ok, _ := s.Get("k"); ok {
		t.Fatal("key survived removal")
	}
}

func TestKVStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s := openTestStore(t, path)
	if err := s.Set("persisted", "yes"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	reopened := openTestStore(t, path)
	v, ok, err := reopened.Get("persisted")
	if err != nil || !ok || v != "yes" {
		t.Fatalf("value lost across reopen: %q ok=%v err=%v", v, ok, err)
	}
}
