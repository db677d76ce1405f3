package llm

import (
	"context"
	"fmt"

	"github.com/aipify/aipify-local/internal/domain"
)

// Mock is the canned text generator. It is the degraded chat reply when no
// real backend can answer, and a development stand-in for the cloud client.
type Mock struct{}

func NewMock() *Mock {
	return &Mock{}
}

// GenerateText implements domain.LLMClient.
func (m *Mock) GenerateText(_ context.Context, req domain.GenerateRequest) (string, error) {
	name := string(req.ModelID)
	if name == "" {
		name = "Local LLM"
	}
	return fmt.Sprintf("As %s (Offline Mode), I received: %q. This is a mock response.", name, req.Prompt), nil
}
