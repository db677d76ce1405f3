package llm

import (
	"strings"
	"testing"

	"github.com/aipify/aipify-local/internal/domain"
)

func history() []domain.Message {
	return []domain.Message{
		{Role: domain.RoleUser, Content: "What is Go?"},
		{Role: domain.RoleAssistant, Content: "A programming language."},
	}
}

func TestTranscriptTagsRoles(t *testing.T) {
	got := Transcript(history())
	want := "User: What is Go?\nAssistant: A programming language."
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestChatSystemWithoutHistory(t *testing.T) {
	got := ChatSystem(nil)
	if strings.Contains(got, "Previous conversation") {
		t.Fatalf("empty history must use the plain persona: %q", got)
	}
}

func TestChatSystemCarriesTranscript(t *testing.T) {
	got := ChatSystem(history())
	if !strings.HasPrefix(got, "Previous conversation:\n") {
		t.Fatalf("got %q", got)
	}
	if !strings.Contains(got, "User: What is Go?") {
		t.Fatalf("transcript missing: %q", got)
	}
}

func TestLocalChatPromptFirstTurn(t *testing.T) {
	got := LocalChatPrompt("hello", nil)
	want := "Human: hello\n\nAssistant:"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestLocalChatPromptWithHistory(t *testing.T) {
	got := LocalChatPrompt("and now?", history())

	if !strings.HasPrefix(got, "Previous conversation:\n") {
		t.Fatalf("got %q", got)
	}
	if !strings.Contains(got, "Human: What is Go?") {
		t.Fatalf("history missing local tags: %q", got)
	}
	if !strings.HasSuffix(got, "Human: and now?\n\nAssistant:") {
		t.Fatalf("prompt must end at the assistant turn: %q", got)
	}
}

func TestLocalTitlePromptQuotesOpener(t *testing.T) {
	got := LocalTitlePrompt(`say "hi"`)
	if !strings.Contains(got, `"say \"hi\""`) {
		t.Fatalf("opener not quoted: %q", got)
	}
}

func TestStripTitleQuotes(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{`"Ocean Facts"`, "Ocean Facts"},
		{`'Ocean Facts'`, "Ocean Facts"},
		{`Ocean Facts`, "Ocean Facts"},
		{`"Unbalanced`, "Unbalanced"},
		{`""`, ""},
	}
	for _, c := range cases {
		if got := StripTitleQuotes(c.in); got != c.want {
			t.Fatalf("StripTitleQuotes(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
