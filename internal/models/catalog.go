package models

import (
	"os"
	"path/filepath"

	"github.com/aipify/aipify-local/internal/config"
	"github.com/aipify/aipify-local/internal/domain"
)

// ModelFile describes one GGUF artifact the backend may load: where it
// comes from, where it lives on disk, and how it should be opened.
type ModelFile struct {
	ID          string
	File        string
	Name        string
	URL         string
	ContextSize int
	// GPULayers -1 offloads all layers to the GPU, 0 keeps inference on CPU.
	GPULayers int
	Embedding bool
	SizeHint  string
}

// Files returns the three expected artifacts. The chat and embedding files
// back the two server slots; gemma is a lightweight alternative for small
// machines and is downloadable but never auto-loaded.
func Files() []ModelFile {
	return []ModelFile{
		{
			ID:          "chat",
			File:        "magistral-small-2506.gguf",
			Name:        "mistralai/Magistral-Small-2506_gguf",
			URL:         "https://huggingface.co/mistralai/Magistral-Small-2506_gguf/resolve/main/magistral-small-2506.Q4_K_M.gguf",
			ContextSize: 8192,
			GPULayers:   -1,
			SizeHint:    "~14GB",
		},
		{
			ID:          "embedding",
			File:        "qwen3-embedding-4b.gguf",
			Name:        "Qwen/Qwen3-Embedding-4B-GGUF",
			URL:         "https://huggingface.co/Qwen/Qwen3-Embedding-4B-GGUF/resolve/main/qwen3-embedding-4b.Q4_K_M.gguf",
			ContextSize: 512,
			GPULayers:   -1,
			Embedding:   true,
			SizeHint:    "~2.3GB",
		},
		{
			ID:          "gemma",
			File:        "gemma-3-1b-it-qat-q4_0.gguf",
			Name:        "google/gemma-3-1b-it-qat-q4_0-gguf",
			URL:         "https://huggingface.co/google/gemma-3-1b-it-qat-q4_0-gguf/resolve/main/gemma-3-1b-it-qat-q4_0.gguf",
			ContextSize: 4096,
			GPULayers:   -1,
			SizeHint:    "~700MB",
		},
	}
}

// FileByID looks an artifact up by its catalog id.
func FileByID(id string) (ModelFile, bool) {
	for _, f := range Files() {
		if f.ID == id {
			return f, true
		}
	}
	return ModelFile{}, false
}

// ApplyOverrides rewrites artifact settings from the config file overlay.
func ApplyOverrides(files []ModelFile, overrides map[string]config.ModelOverride) []ModelFile {
	if len(overrides) == 0 {
		return files
	}
	out := make([]ModelFile, len(files))
	copy(out, files)
	for i, f := range out {
		ov, ok := overrides[f.ID]
		if !ok {
			continue
		}
		if ov.File != "" {
			out[i].File = ov.File
		}
		if ov.ContextSize > 0 {
			out[i].ContextSize = ov.ContextSize
		}
		if ov.GPULayers != 0 {
			out[i].GPULayers = ov.GPULayers
		}
	}
	return out
}

// Path returns the artifact's location under the models directory.
func (m ModelFile) Path(dir string) string {
	return filepath.Join(dir, m.File)
}

// Exists reports whether the artifact is already on disk.
func (m ModelFile) Exists(dir string) bool {
	_, err := os.Stat(m.Path(dir))
	return err == nil
}

// LocalCatalog is the static offline-mode model list shown to the user.
func LocalCatalog() []domain.LLMModel {
	return []domain.LLMModel{
		{
			ID:          "llama3-8b-instruct",
			Name:        "Llama 3 8B Instruct",
			Description: "A capable and efficient instruction-tuned model from Meta.",
		},
		{
			ID:          "mistral-7b-instruct",
			Name:        "Mistral 7B Instruct",
			Description: "A powerful 7B parameter model by Mistral AI, instruction-tuned.",
		},
		{
			ID:          "phi3-mini-instruct",
			Name:        "Phi-3 Mini Instruct",
			Description: "A lightweight, high-performance model by Microsoft, instruction-tuned.",
		},
	}
}

// GeminiCatalog is the static online-mode model list.
func GeminiCatalog() []domain.LLMModel {
	return []domain.LLMModel{
		{
			ID:          "gemini-2.0-flash-exp",
			Name:        "Gemini 2.0 Flash (Latest)",
			Description: "Google's latest experimental model with enhanced performance and capabilities.",
		},
		{
			ID:          "gemini-1.5-flash",
			Name:        "Gemini 1.5 Flash",
			Description: "Google's fast and efficient model with multimodal capabilities.",
		},
	}
}

// CatalogFor returns the catalog matching a mode.
func CatalogFor(mode domain.Mode) []domain.LLMModel {
	if mode == domain.ModeOnline {
		return GeminiCatalog()
	}
	return LocalCatalog()
}

// DefaultModel is the first catalog entry of the given mode.
func DefaultModel(mode domain.Mode) domain.ModelID {
	return CatalogFor(mode)[0].ID
}

// InCatalog reports whether id belongs to the catalog of the given mode.
func InCatalog(mode domain.Mode, id domain.ModelID) bool {
	for _, m := range CatalogFor(mode) {
		if m.ID == id {
			return true
		}
	}
	return false
}
