package models

import (
	"testing"

	"github.com/aipify/aipify-local/internal/config"
	"github.com/aipify/aipify-local/internal/domain"
)

func TestCatalogsAreModeDisjoint(t *testing.T) {
	for _, m := range LocalCatalog() {
		if InCatalog(domain.ModeOnline, m.ID) {
			t.Fatalf("local model %s leaked into the online catalog", m.ID)
		}
	}
	for _, m := range GeminiCatalog() {
		if InCatalog(domain.ModeOffline, m.ID) {
			t.Fatalf("gemini model %s leaked into the offline catalog", m.ID)
		}
	}
}

func TestDefaultModelBelongsToItsCatalog(t *testing.T) {
	for _, mode := range []domain.Mode{domain.ModeOffline, domain.ModeOnline} {
		if id := DefaultModel(mode); !InCatalog(mode, id) {
			t.Fatalf("default %s for %s not in catalog", id, mode)
		}
	}
}

func TestFileByID(t *testing.T) {
	mf, ok := FileByID("embedding")
	if !ok {
		t.Fatal("embedding artifact missing")
	}
	if !mf.Embedding {
		t.Fatal("embedding artifact must open in embedding mode")
	}

	if _, ok := FileByID("nope"); ok {
		t.Fatal("unknown id resolved")
	}
}

func TestApplyOverrides(t *testing.T) {
	files := ApplyOverrides(Files(), map[string]config.ModelOverride{
		"chat": {File: "custom.gguf", ContextSize: 2048},
	})

	for _, f := range files {
		if f.ID != "chat" {
			continue
		}
		if f.File != "custom.gguf" || f.ContextSize != 2048 {
			t.Fatalf("override not applied: %+v", f)
		}
		if f.GPULayers != -1 {
			t.Fatalf("untouched field changed: %+v", f)
		}
		return
	}
	t.Fatal("chat artifact missing")
}

func TestApplyOverridesLeavesInputUntouched(t *testing.T) {
	orig := Files()
	ApplyOverrides(orig, map[string]config.ModelOverride{"chat": {File: "x.gguf"}})
	if orig[0].File == "x.gguf" {
		t.Fatal("ApplyOverrides mutated its input")
	}
}
