// Package settings resolves the mode, credential, and theme preferences
// persisted in the keyed store, and enforces the mode/credential invariant.
package settings

import (
	"fmt"
	"strings"

	"github.com/aipify/aipify-local/internal/domain"
)

const (
	keyMode   = "aipify-local-mode"
	keyAPIKey = "aipify-local-api-key"
	keyTheme  = "aipify-local-theme"

	// sample value shipped in env templates, never a usable credential
	envKeyPlaceholder = "your_api_key_here"
)

// KeySource reports where the effective credential came from.
type KeySource string

const (
	KeySourceStored      KeySource = "stored"
	KeySourceEnvironment KeySource = "environment"
	KeySourceNone        KeySource = "none"
)

// Service reads and writes user preferences. The invariant
// "online implies a credential is present" is enforced on every read and
// every transition: if the credential disappears, the effective mode
// reverts to offline.
type Service struct {
	kv     domain.KeyValueStore
	envKey string
}

// NewService wires the keyed store and the environment-supplied credential
// default (consulted only when no user-entered key exists).
func NewService(kv domain.KeyValueStore, envKey string) *Service {
	return &Service{kv: kv, envKey: envKey}
}

// Mode returns the effective mode. A stored "online" preference without a
// resolvable credential degrades to offline.
func (s *Service) Mode() domain.Mode {
	raw, ok, err := s.kv.Get(keyMode)
	if err != nil || !ok {
		return domain.ModeOffline
	}
	if domain.Mode(raw) == domain.ModeOnline && s.APIKey() != "" {
		return domain.ModeOnline
	}
	return domain.ModeOffline
}

// SetMode stores the mode preference. Switching to online without a
// credential is rejected rather than silently ignored.
func (s *Service) SetMode(mode domain.Mode) error {
	if mode != domain.ModeOffline && mode != domain.ModeOnline {
		return fmt.Errorf("unknown mode %q", mode)
	}
	if mode == domain.ModeOnline && s.APIKey() == "" {
		return domain.ErrCredentialRequired
	}
	return s.kv.Set(keyMode, string(mode))
}

// APIKey resolves the effective credential: the user-entered key wins over
// the environment default; the well-known placeholder value never counts.
func (s *Service) APIKey() string {
	raw, ok, err := s.kv.Get(keyAPIKey)
	if err == nil && ok {
		if key := strings.TrimSpace(raw); key != "" {
			return key
		}
	}
	if key := strings.TrimSpace(s.envKey); key != "" && key != envKeyPlaceholder {
		return key
	}
	return ""
}

// APIKeySource reports where APIKey would be resolved from.
func (s *Service) APIKeySource() KeySource {
	raw, ok, err := s.kv.Get(keyAPIKey)
	if err == nil && ok && strings.TrimSpace(raw) != "" {
		return KeySourceStored
	}
	if key := strings.TrimSpace(s.envKey); key != "" && key != envKeyPlaceholder {
		return KeySourceEnvironment
	}
	return KeySourceNone
}

// SetAPIKey stores a user-entered credential. An empty key clears instead.
func (s *Service) SetAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return s.ClearAPIKey()
	}
	return s.kv.Set(keyAPIKey, key)
}

// ClearAPIKey removes the user-entered credential and, when no environment
// default remains, reverts the mode to offline.
func (s *Service) ClearAPIKey() error {
	if err := s.kv.Remove(keyAPIKey); err != nil {
		return err
	}
	if s.APIKey() == "" {
		return s.kv.Set(keyMode, string(domain.ModeOffline))
	}
	return nil
}

// Theme returns the stored theme preference, defaulting to light.
func (s *Service) Theme() domain.Theme {
	raw, ok, err := s.kv.Get(keyTheme)
	if err != nil || !ok || domain.Theme(raw) != domain.ThemeDark {
		return domain.ThemeLight
	}
	return domain.ThemeDark
}

// SetTheme stores the theme preference.
func (s *Service) SetTheme(theme domain.Theme) error {
	if theme != domain.ThemeLight && theme != domain.ThemeDark {
		return fmt.Errorf("unknown theme %q", theme)
	}
	return s.kv.Set(keyTheme, string(theme))
}
