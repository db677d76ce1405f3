package memory

import "testing"

func TestKVStoreRoundTrip(t *testing.T) {
	s := NewKVStore()

	if _, ok, err := s.Get("missing"); ok || err != nil {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	if err := s.Set("k", "v1"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := s.Set("k", "v2"); err != nil {
		t.Fatalf("overwrite failed: %v", err)
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

	// removing an absent key is not an error
	if err := s.Remove("k"); err != nil {
		t.Fatalf("remove of absent key failed: %v", err)
	}
}
