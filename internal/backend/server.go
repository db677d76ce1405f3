// Package backend implements the local inference server and its HTTP
// client. The server owns the only handles to loaded models; requests are
// served first come, first served, with inference serialized per slot.
package backend

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aipify/aipify-local/internal/adapters/llm"
	"github.com/aipify/aipify-local/internal/domain"
	"github.com/aipify/aipify-local/internal/models"
	"github.com/aipify/aipify-local/internal/observability"
)

// Fixed generation constraints per operation. The chat stop words are the
// role tags themselves so generation halts before inventing a new turn.
var (
	chatOptions = domain.GenerateOptions{
		MaxTokens:   1024,
		Temperature: 0.7,
		TopP:        0.9,
		StopWords:   []string{llm.HumanTag, llm.AssistantTag},
	}
	summarizeOptions = domain.GenerateOptions{
		MaxTokens:   256,
		Temperature: 0.3,
		TopP:        0.8,
	}
	titleOptions = domain.GenerateOptions{
		MaxTokens:   20,
		Temperature: 0.5,
		TopP:        0.8,
	}
)

// HostLoader opens one model artifact and returns its host. Injected so
// the server itself stays free of engine bindings.
type HostLoader func(mf models.ModelFile, dir string) (domain.ModelHost, error)

// Server is the long-lived inference process state: two model slots plus
// the artifact catalog.
type Server struct {
	chat      slot
	embedding slot

	files []models.ModelFile
	dir   string
	log   *slog.Logger

	skipFileChecks bool
}

func NewServer(modelsDir string, files []models.ModelFile) *Server {
	return &Server{
		files: files,
		dir:   modelsDir,
		log:   observability.Component("backend"),
	}
}

// AllowMissingFiles disables the on-disk existence check before load.
// Only meaningful with hosts that do not read model files.
func (s *Server) AllowMissingFiles() {
	s.skipFileChecks = true
}

// LoadModels brings the chat and embedding slots up, sequentially, once.
// A missing or unloadable file leaves its slot unloaded and the process
// alive: the server keeps serving whichever slots did load.
func (s *Server) LoadModels(loader HostLoader) {
	s.log.Info("initializing models", "dir", s.dir)

	for _, mf := range s.files {
		var sl *slot
		switch mf.ID {
		case "chat":
			sl = &s.chat
		case "embedding":
			sl = &s.embedding
		default:
			// downloadable but not served from a slot
			continue
		}

		log := s.log.With("model", mf.ID, "file", mf.File)

		if !s.skipFileChecks && !mf.Exists(s.dir) {
			log.Warn("model file not found, slot stays unloaded",
				"expected_path", mf.Path(s.dir))
			continue
		}

		log.Info("loading model")
		sl.setLoading()

		host, err := loader(mf, s.dir)
		if err != nil {
			log.Error("model load failed, slot stays unloaded", "error", err)
			sl.setUnloaded()
			continue
		}

		sl.setReady(host)
		log.Info("model loaded")
	}

	s.log.Info("model initialization completed",
		"chat", s.chat.State().String(),
		"embedding", s.embedding.State().String(),
	)
}

// Handler builds the HTTP surface.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/models", s.handleModels)
	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("POST /api/embeddings", s.handleEmbeddings)
	mux.HandleFunc("POST /api/summarize", s.handleSummarize)
	mux.HandleFunc("POST /api/generate-title", s.handleTitle)

	return chainMiddlewares(mux, withLogging, withCORS)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Models: HealthModels{
			Chat:      s.chat.State().String(),
			Embedding: s.embedding.State().String(),
		},
		Timestamp: time.Now().UTC(),
	})
}

func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	available := make([]ModelInfo, 0, len(s.files))
	for _, mf := range s.files {
		loaded := false
		switch mf.ID {
		case "chat":
			loaded = s.chat.State() == SlotReady
		case "embedding":
			loaded = s.embedding.State() == SlotReady
		}
		available = append(available, ModelInfo{ID: mf.ID, Name: mf.Name, Loaded: loaded})
	}
	writeJSON(w, http.StatusOK, ModelsResponse{Available: available})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	if req.Message == "" {
		badRequest(w, "Message is required")
		return
	}

	host, ok := s.chat.Ready()
	if !ok {
		notLoaded(w, "Chat model not loaded. Please ensure models are downloaded and initialized.")
		return
	}

	prompt := llm.LocalChatPrompt(req.Message, fromTurns(req.ConversationHistory))

	out, err := host.Complete(r.Context(), prompt, chatOptions)
	if err != nil {
		internalError(w, "chat generation", err)
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{Response: strings.TrimSpace(out)})
}

func (s *Server) handleEmbeddings(w http.ResponseWriter, r *http.Request) {
	var req EmbeddingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	if req.Text == "" {
		badRequest(w, "Text is required")
		return
	}

	host, ok := s.embedding.Ready()
	if !ok {
		notLoaded(w, "Embedding model not loaded. Please ensure models are downloaded and initialized.")
		return
	}

	vec, err := host.Embed(r.Context(), req.Text)
	if err != nil {
		internalError(w, "embedding generation", err)
		return
	}

	writeJSON(w, http.StatusOK, EmbeddingsResponse{Embeddings: vec})
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	var req SummarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	if len(req.Conversation) == 0 {
		badRequest(w, "Conversation array is required")
		return
	}

	host, ok := s.chat.Ready()
	if !ok {
		notLoaded(w, "Chat model not loaded. Please ensure models are downloaded and initialized.")
		return
	}

	prompt := llm.LocalSummarizePrompt(fromTurns(req.Conversation))

	out, err := host.Complete(r.Context(), prompt, summarizeOptions)
	if err != nil {
		internalError(w, "summarization", err)
		return
	}

	writeJSON(w, http.StatusOK, SummarizeResponse{Summary: strings.TrimSpace(out)})
}

func (s *Server) handleTitle(w http.ResponseWriter, r *http.Request) {
	var req TitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	if len(req.Conversation) == 0 {
		badRequest(w, "Conversation array is required")
		return
	}

	host, ok := s.chat.Ready()
	if !ok {
		notLoaded(w, "Chat model not loaded. Please ensure models are downloaded and initialized.")
		return
	}

	prompt := llm.LocalTitlePrompt(req.Conversation[0].Content)

	out, err := host.Complete(r.Context(), prompt, titleOptions)
	if err != nil {
		internalError(w, "title generation", err)
		return
	}

	title := llm.StripTitleQuotes(strings.TrimSpace(out))
	writeJSON(w, http.StatusOK, TitleResponse{Title: title})
}

// ─────────────────────────────────────────────
// HTTP helpers
// ─────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

func notLoaded(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: msg})
}

func internalError(w http.ResponseWriter, op string, err error) {
	observability.Component("backend").Error("request failed", "op", op, "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Error: fmt.Sprintf("internal server error during %s: %v", op, err),
	})
}
