package llamacpp

import (
	"context"
	"fmt"
	"sync"

	llama "github.com/go-skynet/go-llama.cpp"

	"github.com/aipify/aipify-local/internal/domain"
)

// Host implements domain.ModelHost over llama.cpp. One Host owns one loaded
// GGUF model for the lifetime of the process; there is no reload.
type Host struct {
	// llama.cpp contexts are not safe for concurrent prediction, so all
	// inference through one model is serialized here.
	mu    sync.Mutex
	model *llama.LLama
}

// Load opens a GGUF file. gpuLayers -1 offloads every layer to the GPU,
// 0 keeps inference on the CPU.
func Load(path string, contextSize, gpuLayers int, embedding bool) (*Host, error) {
	opts := []llama.ModelOption{
		llama.SetContext(contextSize),
		llama.SetGPULayers(gpuLayers),
		llama.SetMMap(true),
	}
	if embedding {
		opts = append(opts, llama.EnableEmbeddings)
	}

	model, err := llama.New(path, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading model %s: %w", path, err)
	}

	return &Host{model: model}, nil
}

// Complete implements domain.ModelHost. The call runs to completion; the
// engine offers no mid-generation cancellation.
func (h *Host) Complete(_ context.Context, prompt string, opts domain.GenerateOptions) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	po := []llama.PredictOption{
		llama.SetTokens(opts.MaxTokens),
		llama.SetTemperature(float32(opts.Temperature)),
		llama.SetTopP(float32(opts.TopP)),
	}
	if len(opts.StopWords) > 0 {
		po = append(po, llama.SetStopWords(opts.StopWords...))
	}

	out, err := h.model.Predict(prompt, po...)
	if err != nil {
		return "", fmt.Errorf("predict: %w", err)
	}
	return out, nil
}

// Embed implements domain.ModelHost.
func (h *Host) Embed(_ context.Context, text string) ([]float32, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	vec, err := h.model.Embeddings(text)
	if err != nil {
		return nil, fmt.Errorf("embeddings: %w", err)
	}
	return vec, nil
}

func (h *Host) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.model.Free()
	return nil
}
