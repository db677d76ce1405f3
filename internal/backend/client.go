package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/aipify/aipify-local/internal/domain"
)

// Client talks to a running inference server. It implements
// domain.InferenceClient. A transport-level failure maps to
// domain.ErrBackendUnavailable and is never retried.
type Client struct {
	baseURL string
	httpc   *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
	}
}

// Health fetches the slot-state snapshot.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.get(ctx, "/api/health", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Models fetches the catalog with per-entry loaded flags.
func (c *Client) Models(ctx context.Context) (*ModelsResponse, error) {
	var out ModelsResponse
	if err := c.get(ctx, "/api/models", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChatCompletion implements domain.InferenceClient.
func (c *Client) ChatCompletion(ctx context.Context, message string, history []domain.Message, modelID domain.ModelID) (string, error) {
	req := ChatRequest{
		Message:             message,
		ConversationHistory: toTurns(history),
		ModelID:             string(modelID),
	}
	var out ChatResponse
	if err := c.post(ctx, "/api/chat", req, &out); err != nil {
		return "", err
	}
	return out.Response, nil
}

// Embeddings computes an embedding vector for the given text.
func (c *Client) Embeddings(ctx context.Context, text string) ([]float32, error) {
	var out EmbeddingsResponse
	if err := c.post(ctx, "/api/embeddings", EmbeddingsRequest{Text: text}, &out); err != nil {
		return nil, err
	}
	return out.Embeddings, nil
}

// Summarize implements domain.InferenceClient.
func (c *Client) Summarize(ctx context.Context, conversation []domain.Message) (string, error) {
	var out SummarizeResponse
	if err := c.post(ctx, "/api/summarize", SummarizeRequest{Conversation: toTurns(conversation)}, &out); err != nil {
		return "", err
	}
	return out.Summary, nil
}

// GenerateTitle implements domain.InferenceClient.
func (c *Client) GenerateTitle(ctx context.Context, conversation []domain.Message) (string, error) {
	var out TitleResponse
	if err := c.post(ctx, "/api/generate-title", TitleRequest{Conversation: toTurns(conversation)}, &out); err != nil {
		return "", err
	}
	return out.Title, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	res, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		var e errorResponse
		_ = json.NewDecoder(res.Body).Decode(&e)
		if e.Error == "" {
			e.Error = res.Status
		}
		if res.StatusCode == http.StatusServiceUnavailable {
			return fmt.Errorf("%w: %s", domain.ErrModelNotLoaded, e.Error)
		}
		return fmt.Errorf("backend returned %d: %s", res.StatusCode, e.Error)
	}

	return json.NewDecoder(res.Body).Decode(out)
}
