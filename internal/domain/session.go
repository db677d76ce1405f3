package domain

// Message is a single turn in a conversation. Immutable once created.
type Message struct {
	ID        MessageID `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp Timestamp `json:"timestamp"`
}

// ChatSession is one conversation: an ordered message list plus display
// metadata. Messages keep insertion order; appending is the only mutation.
type ChatSession struct {
	ID        SessionID `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt Timestamp `json:"createdAt"`
	ModelID   ModelID   `json:"modelId,omitempty"`
}

// PlaceholderTitle is the title every new session starts with until a real
// one is generated after the first exchange.
const PlaceholderTitle = "New Chat"

// FirstUserMessage returns the first user-authored message, if any.
func (s *ChatSession) FirstUserMessage() (Message, bool) {
	for _, m := range s.Messages {
		if m.Role == RoleUser {
			return m, true
		}
	}
	return Message{}, false
}

// LLMModel describes one entry of a static model catalog.
type LLMModel struct {
	ID          ModelID `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
}
