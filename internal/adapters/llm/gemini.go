package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/aipify/aipify-local/internal/domain"
)

const defaultGeminiModel = "gemini-2.0-flash-exp"

// GeminiClient implements domain.LLMClient against the Gemini API. A genai
// client is built per call because the key arrives with the request: it is
// the user's own, not a process credential.
type GeminiClient struct{}

func NewGeminiClient() *GeminiClient {
	return &GeminiClient{}
}

// GenerateText implements domain.LLMClient.
func (g *GeminiClient) GenerateText(ctx context.Context, req domain.GenerateRequest) (string, error) {
	if req.APIKey == "" {
		return "", domain.ErrCredentialRequired
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  req.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", ClassifyCloudError(fmt.Errorf("creating gemini client: %w", err))
	}

	var contents []*genai.Content
	for _, m := range req.History {
		role := genai.Role(genai.RoleUser)
		if m.Role == domain.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}
	contents = append(contents, genai.NewContentFromText(req.Prompt, genai.RoleUser))

	temp := float32(0.7)
	topP := float32(0.9)

	cfg := &genai.GenerateContentConfig{
		Temperature:     &temp,
		TopP:            &topP,
		MaxOutputTokens: 8192,
	}
	if req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	model := string(req.ModelID)
	if model == "" {
		model = defaultGeminiModel
	}

	res, err := client.Models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		return "", ClassifyCloudError(err)
	}

	text := strings.TrimSpace(res.Text())
	if text == "" {
		return "", fmt.Errorf("gemini returned empty text; the response may be blocked")
	}

	return text, nil
}

// ClassifyCloudError maps a cloud provider failure onto the error taxonomy
// by message content: credential rejections and quota exhaustion get
// distinct errors, everything else stays generic with the cause attached.
func ClassifyCloudError(err error) error {
	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "api key not valid"),
		strings.Contains(msg, "api_key_invalid"),
		strings.Contains(msg, "invalid api key"),
		strings.Contains(msg, "unauthorized"),
		strings.Contains(msg, "unauthenticated"),
		strings.Contains(msg, "permission"):
		return fmt.Errorf("%w: %v", domain.ErrInvalidCredential, err)

	case strings.Contains(msg, "quota"),
		strings.Contains(msg, "rate limit"),
		strings.Contains(msg, "resource_exhausted"):
		return fmt.Errorf("%w: %v", domain.ErrQuotaExceeded, err)

	default:
		return fmt.Errorf("gemini generate content: %w", err)
	}
}
