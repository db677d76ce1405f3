package router

import (
	"strings"
	"testing"

	"github.com/aipify/aipify-local/internal/domain"
)

func TestHeuristicTitleUsesFirstUserTurn(t *testing.T) {
	got := HeuristicTitle([]domain.Message{
		{Role: domain.RoleAssistant, Content: "Hello!"},
		{Role: domain.RoleUser, Content: "Tell me about oceans"},
	})
	if got != "Tell me about oceans" {
		t.Fatalf("got %q", got)
	}
}

func TestHeuristicTitleTruncatesLongMessages(t *testing.T) {
	long := strings.Repeat("a", 80)
	got := HeuristicTitle([]domain.Message{{Role: domain.RoleUser, Content: long}})

	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis, got %q", got)
	}
	if n := len([]rune(got)); n != titleMaxChars+3 {
		t.Fatalf("expected %d runes, got %d (%q)", titleMaxChars+3, n, got)
	}
}

func TestHeuristicTitleDefaultsWithoutUserTurn(t *testing.T) {
	got := HeuristicTitle([]domain.Message{{Role: domain.RoleAssistant, Content: "Hi"}})
	if got != "New Conversation" {
		t.Fatalf("got %q", got)
	}
}

func TestHeuristicSummaryCountsTurns(t *testing.T) {
	got := HeuristicSummary([]domain.Message{
		{Role: domain.RoleUser, Content: "a"},
		{Role: domain.RoleAssistant, Content: "b"},
		{Role: domain.RoleUser, Content: "c"},
	})
	if !strings.Contains(got, "2 user messages and 1 AI responses") {
		t.Fatalf("got %q", got)
	}
}
