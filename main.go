package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/kazisaheb/Gemini-Lens/api"
	"github.com/kazisaheb/Gemini-Lens/auth"
	"github.com/kazisaheb/Gemini-Lens/gemini"
	"github.com/kazisaheb/Gemini-Lens/preset"
	"github.com/kazisaheb/Gemini-Lens/session"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck
	log := logger.Sugar()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	pm, err := preset.NewManager(os.Getenv("PRESET_FILE"))
	if err != nil {
		log.Fatalw("failed to load preset catalog", "err", err)
	}

	ctx := context.Background()
	apiKey := os.Getenv("GEMINI_API_KEY")

	gate := auth.NewGate(nil)
	gate.Probe(ctx, apiKey)

	var editor session.Editor
	if apiKey != "" {
		client, err := gemini.NewClient(ctx, apiKey, os.Getenv("GEMINI_MODEL"), log)
		if err != nil {
			log.Fatalw("failed to create gemini client", "err", err)
		}
		editor = client
		log.Infow("gemini client ready", "model", client.Model())
	} else {
		editor = gemini.Disabled{}
		log.Warnw("GEMINI_API_KEY not set; edits are rejected until a key is available")
	}

	sessions := session.NewManager()
	wf := session.NewWorkflow(editor, pm, gate, log)
	router := api.RegisterRoutes(sessions, pm, wf, gate, log, staticFiles)

	addr := fmt.Sprintf(":%s", port)
	log.Infow("gemini-lens listening", "addr", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalw("server error", "err", err)
	}
}
