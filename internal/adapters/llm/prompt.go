package llm

import (
	"fmt"
	"strings"

	"github.com/aipify/aipify-local/internal/domain"
)

const defaultChatSystem = "You are a helpful AI assistant. Respond naturally and helpfully to the user's message."

// SummarizeSystem is the online-mode summary persona.
const SummarizeSystem = "You are an expert at summarizing conversations. Provide a concise and informative summary that captures the main points and topics discussed."

// Transcript serializes a conversation as role-tagged lines, one per turn.
func Transcript(history []domain.Message) string {
	var b strings.Builder
	for i, m := range history {
		if i > 0 {
			b.WriteString("\n")
		}
		role := "User"
		if m.Role != domain.RoleUser {
			role = "Assistant"
		}
		b.WriteString(role + ": " + m.Content)
	}
	return b.String()
}

// ChatSystem builds the online-mode system instruction. With history it
// carries the transcript; without, it is the plain assistant persona.
func ChatSystem(history []domain.Message) string {
	if len(history) == 0 {
		return defaultChatSystem
	}
	return "Previous conversation:\n" + Transcript(history) +
		"\n\nPlease respond naturally to the user's current message."
}

// SummarizeUserPrompt is the online-mode summary request body.
func SummarizeUserPrompt(conversation []domain.Message) string {
	return "Please summarize the following chat conversation:\n\n" + Transcript(conversation)
}

// TitleUserPrompt is the online-mode title request body.
func TitleUserPrompt(conversation []domain.Message) string {
	return `You are an expert at generating concise and descriptive titles for conversations.
Given the following conversation history, generate a title that accurately reflects the main topic of the conversation.
The title should be no more than 10 words.

Conversation History: ` + Transcript(conversation) + `

Please respond with just the title, nothing else.`
}

// The builders below frame prompts for the local chat model. The role tags
// double as stop words so generation halts before the model invents the
// next turn.

const (
	HumanTag     = "Human:"
	AssistantTag = "Assistant:"
)

// LocalTranscript serializes history with the local model's role tags.
func LocalTranscript(history []domain.Message) string {
	var b strings.Builder
	for i, m := range history {
		if i > 0 {
			b.WriteString("\n")
		}
		tag := HumanTag
		if m.Role != domain.RoleUser {
			tag = AssistantTag
		}
		b.WriteString(tag + " " + m.Content)
	}
	return b.String()
}

// LocalChatPrompt frames a chat completion for the local model.
func LocalChatPrompt(message string, history []domain.Message) string {
	if len(history) == 0 {
		return fmt.Sprintf("%s %s\n\n%s", HumanTag, message, AssistantTag)
	}
	return fmt.Sprintf("Previous conversation:\n%s\n\n%s %s\n\n%s",
		LocalTranscript(history), HumanTag, message, AssistantTag)
}

// LocalSummarizePrompt frames a summary request for the local model.
func LocalSummarizePrompt(conversation []domain.Message) string {
	return fmt.Sprintf("Please provide a brief, concise summary of the following conversation:\n\n%s\n\nSummary:",
		LocalTranscript(conversation))
}

// LocalTitlePrompt frames a title request from the conversation opener.
func LocalTitlePrompt(firstMessage string) string {
	return fmt.Sprintf("Generate a short, descriptive title (3-6 words) for a conversation that starts with: %q\n\nTitle:", firstMessage)
}

// StripTitleQuotes removes one layer of wrapping quote characters that
// models like to put around generated titles.
func StripTitleQuotes(s string) string {
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimPrefix(s, `'`)
	s = strings.TrimSuffix(s, `"`)
	s = strings.TrimSuffix(s, `'`)
	return s
}
