package domain

import "time"

type SessionID string
type MessageID string
type ModelID string

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Mode selects where text-generation requests are dispatched.
type Mode string

const (
	ModeOffline Mode = "offline" // local inference backend
	ModeOnline  Mode = "online"  // cloud provider, requires an API key
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

type Timestamp = time.Time
