// Package sessions manages the chat session collection: ordered message
// lists, titles, the active-session pointer, and persistence through the
// keyed store.
package sessions

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aipify/aipify-local/internal/domain"
	"github.com/aipify/aipify-local/internal/models"
	"github.com/aipify/aipify-local/internal/observability"
)

// StorageKey is where the serialized session collection lives.
const StorageKey = "aipify-local-chats"

// Store keeps the session collection in memory and writes it through to
// the keyed store after every mutation.
//
// Invariants: at most one session is active; after Load the collection is
// never empty; message order within a session is append order.
type Store struct {
	kv    domain.KeyValueStore
	now   func() time.Time
	newID func() string

	mu       sync.Mutex
	sessions []*domain.ChatSession
	activeID domain.SessionID
}

func NewStore(kv domain.KeyValueStore) *Store {
	return &Store{
		kv:    kv,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Load reads the persisted collection. A corrupt payload is discarded
// rather than propagated: the key is removed and the store starts fresh.
// Afterwards the collection is guaranteed non-empty and has an active
// session (the most recent one).
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := observability.Component("sessions")

	raw, ok, err := s.kv.Get(StorageKey)
	if err != nil {
		return fmt.Errorf("reading sessions: %w", err)
	}

	if ok {
		var loaded []*domain.ChatSession
		if err := json.Unmarshal([]byte(raw), &loaded); err != nil {
			log.Warn("discarding corrupt session data", "error", err)
			_ = s.kv.Remove(StorageKey)
		} else {
			s.sessions = loaded
		}
	}

	if len(s.sessions) == 0 {
		s.createLocked(models.DefaultModel(domain.ModeOffline))
		return s.persistLocked()
	}

	s.activeID = s.sessions[0].ID
	return nil
}

// List returns the sessions in display order (newest first).
func (s *Store) List() []*domain.ChatSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.ChatSession, len(s.sessions))
	copy(out, s.sessions)
	return out
}

// Get returns the session with the given id.
func (s *Store) Get(id domain.SessionID) (*domain.ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(id)
}

// Active returns the currently active session.
func (s *Store) Active() (*domain.ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(s.activeID)
}

// SetActive switches the active session.
func (s *Store) SetActive(id domain.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.getLocked(id); err != nil {
		return err
	}
	s.activeID = id
	return nil
}

// Create starts a new placeholder-titled session, makes it active, and
// persists.
func (s *Store) Create(modelID domain.ModelID) (*domain.ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.createLocked(modelID)
	if err := s.persistLocked(); err != nil {
		return nil, err
	}
	return sess, nil
}

// Delete removes a session. When the active session is deleted the next
// remaining one becomes active; deleting the last session creates a fresh
// placeholder so the collection never ends up empty.
func (s *Store) Delete(id domain.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, sess := range s.sessions {
		if sess.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ErrSessionNotFound
	}

	s.sessions = append(s.sessions[:idx], s.sessions[idx+1:]...)

	if len(s.sessions) == 0 {
		s.createLocked(models.DefaultModel(domain.ModeOffline))
	} else if s.activeID == id {
		s.activeID = s.sessions[0].ID
	}

	return s.persistLocked()
}

// Append adds a message to a session. Prior entries are never reordered or
// dropped.
func (s *Store) Append(id domain.SessionID, role domain.Role, content string) (domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getLocked(id)
	if err != nil {
		return domain.Message{}, err
	}

	msg := domain.Message{
		ID:        domain.MessageID(s.newID()),
		Role:      role,
		Content:   content,
		Timestamp: s.now(),
	}
	sess.Messages = append(sess.Messages, msg)

	if err := s.persistLocked(); err != nil {
		return domain.Message{}, err
	}
	return msg, nil
}

// Rename sets a session's title.
func (s *Store) Rename(id domain.SessionID, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getLocked(id)
	if err != nil {
		return err
	}
	sess.Title = title
	return s.persistLocked()
}

// SetModel changes a session's selected model.
func (s *Store) SetModel(id domain.SessionID, modelID domain.ModelID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getLocked(id)
	if err != nil {
		return err
	}
	sess.ModelID = modelID
	return s.persistLocked()
}

// EnsureModelForMode re-selects the catalog default for the active session
// when its model does not belong to the catalog of the given mode. Message
// history is untouched.
func (s *Store) EnsureModelForMode(mode domain.Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getLocked(s.activeID)
	if err != nil {
		return err
	}
	if models.InCatalog(mode, sess.ModelID) {
		return nil
	}
	sess.ModelID = models.DefaultModel(mode)
	return s.persistLocked()
}

func (s *Store) getLocked(id domain.SessionID) (*domain.ChatSession, error) {
	for _, sess := range s.sessions {
		if sess.ID == id {
			return sess, nil
		}
	}
	return nil, domain.ErrSessionNotFound
}

func (s *Store) createLocked(modelID domain.ModelID) *domain.ChatSession {
	sess := &domain.ChatSession{
		ID:        domain.SessionID(s.newID()),
		Title:     domain.PlaceholderTitle,
		Messages:  []domain.Message{},
		CreatedAt: s.now(),
		ModelID:   modelID,
	}
	// newest first, matching display order
	s.sessions = append([]*domain.ChatSession{sess}, s.sessions...)
	s.activeID = sess.ID
	return sess
}

func (s *Store) persistLocked() error {
	raw, err := json.Marshal(s.sessions)
	if err != nil {
		return fmt.Errorf("serializing sessions: %w", err)
	}
	if err := s.kv.Set(StorageKey, string(raw)); err != nil {
		return fmt.Errorf("persisting sessions: %w", err)
	}
	return nil
}
