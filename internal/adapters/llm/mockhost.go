package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/aipify/aipify-local/internal/domain"
)

// MockHost implements domain.ModelHost without loading anything. Lets the
// backend run end to end before any multi-gigabyte download.
type MockHost struct {
	Label string
}

func NewMockHost(label string) *MockHost {
	return &MockHost{Label: label}
}

// Complete implements domain.ModelHost.
func (m *MockHost) Complete(_ context.Context, prompt string, _ domain.GenerateOptions) (string, error) {
	last := prompt
	if i := strings.LastIndex(prompt, HumanTag); i >= 0 {
		last = strings.TrimSpace(strings.TrimSuffix(prompt[i+len(HumanTag):], AssistantTag))
	}
	return fmt.Sprintf("[%s] mock completion for: %s", m.Label, last), nil
}

// Embed implements domain.ModelHost. Returns a fixed-size vector derived
// from the input so distinct texts embed differently.
func (m *MockHost) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, 8)
	for i, r := range text {
		vec[i%len(vec)] += float32(r) / 1000
	}
	return vec, nil
}

func (m *MockHost) Close() error { return nil }
