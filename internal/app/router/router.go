// Package router dispatches text-generation requests to the cloud provider
// or the local inference backend, depending on the current mode, and
// applies the single-level fallback policy.
//
// The fallback is deliberately asymmetric, matching observed behavior:
// chat fails hard (missing credential online, unreachable backend offline)
// while summarize and title degrade to locally computed heuristics.
package router

import (
	"context"
	"errors"
	"strings"

	"github.com/aipify/aipify-local/internal/adapters/llm"
	"github.com/aipify/aipify-local/internal/domain"
	"github.com/aipify/aipify-local/internal/observability"
)

// ErrEmptyConversation rejects summarize/title calls with nothing to work
// on. Validation error: the caller must supply a non-empty conversation.
var ErrEmptyConversation = errors.New("conversation is required")

// Request carries the per-call routing state. The router itself is
// stateless between calls.
type Request struct {
	Mode    domain.Mode
	APIKey  string
	ModelID domain.ModelID
}

// Router owns no state beyond its two outbound ports.
type Router struct {
	cloud   domain.LLMClient
	backend domain.InferenceClient
}

func New(cloud domain.LLMClient, backend domain.InferenceClient) *Router {
	return &Router{cloud: cloud, backend: backend}
}

// Chat routes one chat turn. Online mode requires a credential and never
// silently falls back to offline; offline mode surfaces an unreachable
// backend as an availability error without retrying.
func (r *Router) Chat(ctx context.Context, req Request, message string, history []domain.Message) (string, error) {
	log := observability.LoggerFromContext(ctx).With("op", "chat", "mode", req.Mode)

	if req.Mode == domain.ModeOnline {
		if req.APIKey == "" {
			return "", domain.ErrCredentialRequired
		}
		text, err := r.cloud.GenerateText(ctx, domain.GenerateRequest{
			APIKey:  req.APIKey,
			ModelID: req.ModelID,
			System:  llm.ChatSystem(history),
			Prompt:  message,
			History: history,
		})
		if err != nil {
			log.Error("cloud chat failed", "error", err)
			return "", err
		}
		return strings.TrimSpace(text), nil
	}

	text, err := r.backend.ChatCompletion(ctx, message, history, req.ModelID)
	if err != nil {
		log.Error("local chat failed", "error", err)
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// Summarize produces a synopsis of the full conversation. Missing
// credential (online) and unreachable backend (offline) degrade to the
// heuristic summary instead of failing.
func (r *Router) Summarize(ctx context.Context, req Request, conversation []domain.Message) (string, error) {
	if len(conversation) == 0 {
		return "", ErrEmptyConversation
	}

	log := observability.LoggerFromContext(ctx).With("op", "summarize", "mode", req.Mode)

	if req.Mode == domain.ModeOnline {
		if req.APIKey == "" {
			log.Warn("no credential, using heuristic summary")
			return HeuristicSummary(conversation), nil
		}
		text, err := r.cloud.GenerateText(ctx, domain.GenerateRequest{
			APIKey:  req.APIKey,
			ModelID: req.ModelID,
			System:  llm.SummarizeSystem,
			Prompt:  llm.SummarizeUserPrompt(conversation),
		})
		if err != nil {
			log.Error("cloud summarize failed", "error", err)
			return "", err
		}
		return strings.TrimSpace(text), nil
	}

	text, err := r.backend.Summarize(ctx, conversation)
	if errors.Is(err, domain.ErrBackendUnavailable) {
		log.Warn("backend unreachable, using heuristic summary")
		return HeuristicSummary(conversation), nil
	}
	if err != nil {
		log.Error("local summarize failed", "error", err)
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// Title produces a short session label. Degrades exactly like Summarize;
// wrapping quote characters are stripped from generated titles.
func (r *Router) Title(ctx context.Context, req Request, conversation []domain.Message) (string, error) {
	if len(conversation) == 0 {
		return "", ErrEmptyConversation
	}

	log := observability.LoggerFromContext(ctx).With("op", "title", "mode", req.Mode)

	if req.Mode == domain.ModeOnline {
		if req.APIKey == "" {
			log.Warn("no credential, using heuristic title")
			return HeuristicTitle(conversation), nil
		}
		text, err := r.cloud.GenerateText(ctx, domain.GenerateRequest{
			APIKey:  req.APIKey,
			ModelID: req.ModelID,
			Prompt:  llm.TitleUserPrompt(conversation),
		})
		if err != nil {
			log.Error("cloud title failed", "error", err)
			return "", err
		}
		return llm.StripTitleQuotes(strings.TrimSpace(text)), nil
	}

	text, err := r.backend.GenerateTitle(ctx, conversation)
	if errors.Is(err, domain.ErrBackendUnavailable) {
		log.Warn("backend unreachable, using heuristic title")
		return HeuristicTitle(conversation), nil
	}
	if err != nil {
		log.Error("local title failed", "error", err)
		return "", err
	}
	return llm.StripTitleQuotes(strings.TrimSpace(text)), nil
}
