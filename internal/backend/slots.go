package backend

import (
	"sync"

	"github.com/aipify/aipify-local/internal/domain"
)

// SlotState tracks one model slot. Transitions run
// unloaded -> loading -> ready exactly once, at process start; a slot whose
// backing file is missing stays unloaded for the life of the process.
type SlotState int

const (
	SlotUnloaded SlotState = iota
	SlotLoading
	SlotReady
)

// String renders the state the way the health endpoint reports it.
func (s SlotState) String() string {
	switch s {
	case SlotReady:
		return "loaded"
	case SlotLoading:
		return "loading"
	default:
		return "not loaded"
	}
}

// slot pairs a state with the host it guards. Only the server mutates a
// slot, and only during load; request handlers read it.
type slot struct {
	mu    sync.RWMutex
	state SlotState
	host  domain.ModelHost
}

func (s *slot) setLoading() {
	s.mu.Lock()
	s.state = SlotLoading
	s.mu.Unlock()
}

func (s *slot) setReady(host domain.ModelHost) {
	s.mu.Lock()
	s.state = SlotReady
	s.host = host
	s.mu.Unlock()
}

func (s *slot) setUnloaded() {
	s.mu.Lock()
	s.state = SlotUnloaded
	s.host = nil
	s.mu.Unlock()
}

func (s *slot) State() SlotState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Ready returns the host when the slot is serving.
func (s *slot) Ready() (domain.ModelHost, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != SlotReady {
		return nil, false
	}
	return s.host, true
}
