package router

import (
	"fmt"
	"strings"

	"github.com/aipify/aipify-local/internal/adapters/llm"
	"github.com/aipify/aipify-local/internal/domain"
)

// titleMaxChars bounds heuristic titles; longer ones get an ellipsis.
const titleMaxChars = 50

// HeuristicTitle derives a label without calling any model: the first
// transcript line resembling a user turn, tag stripped, truncated.
func HeuristicTitle(conversation []domain.Message) string {
	lines := strings.Split(llm.Transcript(conversation), "\n")

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		if !strings.Contains(lower, "user:") && !strings.Contains(lower, "human:") {
			continue
		}

		content := line
		for _, tag := range []string{"user:", "human:", "User:", "Human:", "USER:", "HUMAN:"} {
			if strings.HasPrefix(content, tag) {
				content = strings.TrimSpace(content[len(tag):])
				break
			}
		}

		if runes := []rune(content); len(runes) > titleMaxChars {
			return string(runes[:titleMaxChars]) + "..."
		}
		return content
	}

	return "New Conversation"
}

// HeuristicSummary counts the turns per side and emits the canned offline
// synopsis.
func HeuristicSummary(conversation []domain.Message) string {
	var userCount, aiCount int
	for _, m := range conversation {
		if m.Role == domain.RoleUser {
			userCount++
		} else {
			aiCount++
		}
	}
	return fmt.Sprintf("This conversation contains %d user messages and %d AI responses. "+
		"The discussion covers various topics exchanged between the user and the AI assistant. "+
		"(This is a mock summary generated in offline mode - actual local LLM summarization would be implemented here.)",
		userCount, aiCount)
}
