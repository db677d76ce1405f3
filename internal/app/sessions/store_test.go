package sessions

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aipify/aipify-local/internal/adapters/storage/memory"
	"github.com/aipify/aipify-local/internal/domain"
)

func newTestStore(t *testing.T, kv domain.KeyValueStore) *Store {
	t.Helper()

	var seq int
	s := NewStore(kv)
	s.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	s.newID = func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}
	if err := s.Load(); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	return s
}

func TestLoadCreatesPlaceholderSession(t *testing.T) {
	s := newTestStore(t, memory.NewKVStore())

	sess, err := s.Active()
	if err != nil {
		t.Fatalf("no active session: %v", err)
	}
	if sess.Title != domain.PlaceholderTitle {
		t.Fatalf("expected placeholder title, got %q", sess.Title)
	}
	if sess.ModelID == "" {
		t.Fatal("expected a default model to be selected")
	}
	if len(s.List()) != 1 {
		t.Fatalf("expected exactly one session, got %d", len(s.List()))
	}
}

func TestAppendPreservesOrder(t *testing.T) {
	s := newTestStore(t, memory.NewKVStore())
	sess, _ := s.Active()

	contents := []string{"first", "second", "third"}
	for _, c := range contents {
		if _, err := s.Append(sess.ID, domain.RoleUser, c); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	got, err := s.Get(sess.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(got.Messages) != len(contents) {
		t.Fatalf("expected %d messages, got %d", len(contents), len(got.Messages))
	}
	for i, c := range contents {
		if got.Messages[i].Content != c {
			t.Fatalf("message %d out of order: got %q want %q", i, got.Messages[i].Content, c)
		}
	}
}

func TestCreatePrependsAndActivates(t *testing.T) {
	s := newTestStore(t, memory.NewKVStore())

	sess, err := s.Create("mistral-7b-instruct")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	list := s.List()
	if list[0].ID != sess.ID {
		t.Fatalf("new session not first in list")
	}
	active, _ := s.Active()
	if active.ID != sess.ID {
		t.Fatalf("new session not active")
	}
}

func TestDeleteActiveSwitchesToNext(t *testing.T) {
	s := newTestStore(t, memory.NewKVStore())
	first, _ := s.Active()
	second, _ := s.Create("llama3-8b-instruct")

	if err := s.Delete(second.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	active, _ := s.Active()
	if active.ID != first.ID {
		t.Fatalf("expected %s active, got %s", first.ID, active.ID)
	}
}

func TestDeleteLastSessionCreatesPlaceholder(t *testing.T) {
	s := newTestStore(t, memory.NewKVStore())
	sess, _ := s.Active()
	if _, err := s.Append(sess.ID, domain.RoleUser, "hello"); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	if err := s.Delete(sess.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	list := s.List()
	if len(list) != 1 {
		t.Fatalf("expected one fresh session, got %d", len(list))
	}
	if list[0].ID == sess.ID {
		t.Fatal("deleted session still present")
	}
	if list[0].Title != domain.PlaceholderTitle || len(list[0].Messages) != 0 {
		t.Fatalf("replacement is not a fresh placeholder: %+v", list[0])
	}
}

func TestDeleteUnknownSession(t *testing.T) {
	s := newTestStore(t, memory.NewKVStore())

	if err := s.Delete("nope"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	kv := memory.NewKVStore()

	s := newTestStore(t, kv)
	sess, _ := s.Active()
	if _, err := s.Append(sess.ID, domain.RoleUser, "remember me"); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := s.Rename(sess.ID, "Memorable"); err != nil {
		t.Fatalf("rename failed: %v", err)
	}

	reloaded := NewStore(kv)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("reload failed: %v", err)
	}

	got, err := reloaded.Get(sess.ID)
	if err != nil {
		t.Fatalf("session lost across reload: %v", err)
	}
	if got.Title != "Memorable" || len(got.Messages) != 1 || got.Messages[0].Content != "remember me" {
		t.Fatalf("state lost across reload: %+v", got)
	}
}

func TestLoadDiscardsCorruptPayload(t *testing.T) {
	kv := memory.NewKVStore()
	if err := kv.Set(StorageKey, "{not json"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	s := newTestStore(t, kv)

	if len(s.List()) != 1 {
		t.Fatalf("expected fresh session after corrupt load, got %d", len(s.List()))
	}

	raw, ok, err := kv.Get(StorageKey)
	if err != nil || !ok {
		t.Fatalf("store not rewritten: ok=%v err=%v", ok, err)
	}
	if raw == "{not json" {
		t.Fatal("corrupt payload survived")
	}
}

func TestEnsureModelForModeKeepsHistory(t *testing.T) {
	s := newTestStore(t, memory.NewKVStore())
	sess, _ := s.Active()

	if err := s.SetModel(sess.ID, "gemini-1.5-flash"); err != nil {
		t.Fatalf("set model failed: %v", err)
	}
	if _, err := s.Append(sess.ID, domain.RoleUser, "kept across switch"); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	if err := s.EnsureModelForMode(domain.ModeOffline); err != nil {
		t.Fatalf("ensure failed: %v", err)
	}

	got, _ := s.Get(sess.ID)
	if got.ModelID == "gemini-1.5-flash" {
		t.Fatal("gemini model survived switch to offline")
	}
	if len(got.Messages) != 1 || got.Messages[0].Content != "kept across switch" {
		t.Fatalf("history lost on mode switch: %+v", got.Messages)
	}

	// already valid for the mode, nothing changes
	before := got.ModelID
	if err := s.EnsureModelForMode(domain.ModeOffline); err != nil {
		t.Fatalf("ensure failed: %v", err)
	}
	after, _ := s.Get(sess.ID)
	if after.ModelID != before {
		t.Fatalf("model changed needlessly: %s -> %s", before, after.ModelID)
	}
}
