package main

import (
	"net/http"
	"os"

	"github.com/aipify/aipify-local/internal/adapters/llamacpp"
	"github.com/aipify/aipify-local/internal/adapters/llm"
	"github.com/aipify/aipify-local/internal/backend"
	"github.com/aipify/aipify-local/internal/config"
	"github.com/aipify/aipify-local/internal/domain"
	"github.com/aipify/aipify-local/internal/models"
	"github.com/aipify/aipify-local/internal/observability"
)

func main() {
	log := observability.Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	files := models.ApplyOverrides(models.Files(), cfg.ModelOverrides)
	srv := backend.NewServer(cfg.ModelsDir, files)

	var loader backend.HostLoader
	if cfg.UseMockHost {
		log.Warn("serving mock completions, no model files will be loaded")
		srv.AllowMissingFiles()
		loader = func(mf models.ModelFile, _ string) (domain.ModelHost, error) {
			return llm.NewMockHost(mf.ID), nil
		}
	} else {
		loader = func(mf models.ModelFile, dir string) (domain.ModelHost, error) {
			return llamacpp.Load(mf.Path(dir), mf.ContextSize, mf.GPULayers, mf.Embedding)
		}
	}

	srv.LoadModels(loader)

	addr := ":" + cfg.BackendPort
	log.Info("starting inference server", "addr", addr, "models_dir", cfg.ModelsDir)

	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
