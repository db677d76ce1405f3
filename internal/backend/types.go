package backend

import (
	"time"

	"github.com/aipify/aipify-local/internal/domain"
)

// Wire types of the backend's JSON surface, shared by server and client.

type HealthModels struct {
	Chat      string `json:"chat"`
	Embedding string `json:"embedding"`
}

type HealthResponse struct {
	Status    string       `json:"status"`
	Models    HealthModels `json:"models"`
	Timestamp time.Time    `json:"timestamp"`
}

type ModelInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Loaded bool   `json:"loaded"`
}

type ModelsResponse struct {
	Available []ModelInfo `json:"available"`
}

// ChatTurn is one history entry on the wire.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Message             string     `json:"message"`
	ConversationHistory []ChatTurn `json:"conversationHistory,omitempty"`
	ModelID             string     `json:"modelId,omitempty"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

type EmbeddingsRequest struct {
	Text string `json:"text"`
}

type EmbeddingsResponse struct {
	Embeddings []float32 `json:"embeddings"`
}

type SummarizeRequest struct {
	Conversation []ChatTurn `json:"conversation"`
}

type SummarizeResponse struct {
	Summary string `json:"summary"`
}

type TitleRequest struct {
	Conversation []ChatTurn `json:"conversation"`
}

type TitleResponse struct {
	Title string `json:"title"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toTurns(msgs []domain.Message) []ChatTurn {
	out := make([]ChatTurn, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, ChatTurn{Role: string(m.Role), Content: m.Content})
	}
	return out
}

func fromTurns(turns []ChatTurn) []domain.Message {
	out := make([]domain.Message, 0, len(turns))
	for _, t := range turns {
		role := domain.Role(t.Role)
		if role != domain.RoleUser && role != domain.RoleSystem {
			role = domain.RoleAssistant
		}
		out = append(out, domain.Message{Role: role, Content: t.Content})
	}
	return out
}
