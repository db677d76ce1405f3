// Command aipify is the terminal client: it keeps chat sessions in a local
// database and routes requests either to the Gemini API or to the local
// inference server started by aipify-backend.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aipify/aipify-local/internal/adapters/llm"
	"github.com/aipify/aipify-local/internal/adapters/storage/memory"
	"github.com/aipify/aipify-local/internal/adapters/storage/sqlite"
	"github.com/aipify/aipify-local/internal/app/router"
	"github.com/aipify/aipify-local/internal/app/sessions"
	"github.com/aipify/aipify-local/internal/app/settings"
	"github.com/aipify/aipify-local/internal/backend"
	"github.com/aipify/aipify-local/internal/config"
	"github.com/aipify/aipify-local/internal/domain"
	"github.com/aipify/aipify-local/internal/observability"
)

// app is the assembled client, built once in the root PersistentPreRunE and
// shared by every subcommand.
type app struct {
	cfg      *config.Config
	kv       domain.KeyValueStore
	settings *settings.Service
	sessions *sessions.Store
	router   *router.Router
	client   *backend.Client
	styles   styles

	closeKV func() error
}

var cli app

var rootCmd = &cobra.Command{
	Use:           "aipify",
	Short:         "Chat with a cloud or local language model",
	Long:          "Aipify keeps chat sessions locally and answers either through the Gemini API (online mode, your own key) or through a local GGUF inference server (offline mode).",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return cli.init()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		cli.close()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func (a *app) init() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.kv, a.closeKV = openStore(cfg.DataDir)
	a.settings = settings.NewService(a.kv, cfg.GeminiAPIKey)
	a.styles = newStyles(a.settings.Theme())

	a.sessions = sessions.NewStore(a.kv)
	if err := a.sessions.Load(); err != nil {
		return fmt.Errorf("loading sessions: %w", err)
	}

	a.client = backend.NewClient(cfg.BackendURL)
	a.router = router.New(llm.NewGeminiClient(), a.client)
	return nil
}

func (a *app) close() {
	if a.closeKV != nil {
		_ = a.closeKV()
	}
}

// openStore opens the on-disk store, falling back to an in-memory one when
// the database cannot be opened. The fallback keeps the client usable but
// nothing done in that run survives it.
func openStore(dataDir string) (domain.KeyValueStore, func() error) {
	log := observability.Component("cli")

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Warn("cannot create data dir, preferences will not persist", "dir", dataDir, "error", err)
		return memory.NewKVStore(), nil
	}

	store, err := sqlite.Open(filepath.Join(dataDir, "aipify.db"))
	if err != nil {
		log.Warn("cannot open database, preferences will not persist", "error", err)
		return memory.NewKVStore(), nil
	}
	return store, store.Close
}

// routeRequest snapshots the per-call routing state from settings and the
// active session.
func (a *app) routeRequest(sess *domain.ChatSession) router.Request {
	return router.Request{
		Mode:    a.settings.Mode(),
		APIKey:  a.settings.APIKey(),
		ModelID: sess.ModelID,
	}
}

func init() {
	rootCmd.AddCommand(
		chatCmd,
		sessionsCmd,
		summarizeCmd,
		modeCmd,
		keyCmd,
		themeCmd,
		modelsCmd,
		healthCmd,
		embedCmd,
	)
}
