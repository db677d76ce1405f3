package domain

import "context"

// GenerateRequest is one cloud text-generation call. The API key travels
// with the request because it is resolved per user, not per process.
type GenerateRequest struct {
	APIKey  string
	ModelID ModelID
	System  string
	Prompt  string
	History []Message
}

// LLMClient defines how the application talks to a cloud LLM service.
type LLMClient interface {
	GenerateText(ctx context.Context, req GenerateRequest) (string, error)
}

// GenerateOptions are the fixed sampling constraints passed to a loaded
// model. Stop words halt generation before the model invents a new turn.
type GenerateOptions struct {
	MaxTokens   int
	Temperature float64
	TopP        float64
	StopWords   []string
}

// ModelHost wraps one loaded model of the native inference engine. The
// engine internals (tokenizer, sampling, GPU offload) are behind this
// contract and nothing else.
type ModelHost interface {
	Complete(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
	Embed(ctx context.Context, text string) ([]float32, error)
	Close() error
}

// InferenceClient is the consumer-side view of the local inference backend.
type InferenceClient interface {
	ChatCompletion(ctx context.Context, message string, history []Message, modelID ModelID) (string, error)
	Summarize(ctx context.Context, conversation []Message) (string, error)
	GenerateTitle(ctx context.Context, conversation []Message) (string, error)
}

// KeyValueStore is the keyed persistence surface the client state lives
// behind: sessions, mode, credential and theme preferences. Get reports
// whether the key existed so an empty value stays distinguishable.
type KeyValueStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}
