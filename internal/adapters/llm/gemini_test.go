package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aipify/aipify-local/internal/domain"
)

func TestGenerateTextRequiresKey(t *testing.T) {
	_, err := NewGeminiClient().GenerateText(context.Background(), domain.GenerateRequest{Prompt: "hi"})
	if !errors.Is(err, domain.ErrCredentialRequired) {
		t.Fatalf("expected ErrCredentialRequired, got %v", err)
	}
}

func TestClassifyCloudError(t *testing.T) {
	cases := []struct {
		msg  string
		want error
	}{
		{"googleapi: Error 400: API key not valid. Please pass a valid API key.", domain.ErrInvalidCredential},
		{"rpc error: code = Unauthenticated desc = bad things", domain.ErrInvalidCredential},
		{"API_KEY_INVALID", domain.ErrInvalidCredential},
		{"permission denied on resource", domain.ErrInvalidCredential},
		{"googleapi: Error 429: Quota exceeded for metric", domain.ErrQuotaExceeded},
		{"RESOURCE_EXHAUSTED: rate limit hit", domain.ErrQuotaExceeded},
		{"connection reset by peer", nil},
	}

	for _, c := range cases {
		got := ClassifyCloudError(errors.New(c.msg))
		if c.want == nil {
			if errors.Is(got, domain.ErrInvalidCredential) || errors.Is(got, domain.ErrQuotaExceeded) {
				t.Fatalf("%q misclassified as %v", c.msg, got)
			}
			continue
		}
		if !errors.Is(got, c.want) {
			t.Fatalf("%q classified as %v, want %v", c.msg, got, c.want)
		}
	}
}

func TestMockMentionsModel(t *testing.T) {
	out, err := NewMock().GenerateText(context.Background(), domain.GenerateRequest{
		ModelID: "llama3-8b-instruct",
		Prompt:  "hello",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"llama3-8b-instruct", `"hello"`, "Offline Mode"} {
		if !strings.Contains(out, want) {
			t.Fatalf("mock reply missing %q: %q", want, out)
		}
	}
}

func TestMockDefaultsModelName(t *testing.T) {
	out, _ := NewMock().GenerateText(context.Background(), domain.GenerateRequest{Prompt: "hi"})
	if !strings.Contains(out, "Local LLM") {
		t.Fatalf("expected default model name, got %q", out)
	}
}
