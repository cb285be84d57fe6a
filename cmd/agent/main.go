// File path: cmd/agent/main.go
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/bioailab/zotero-agent/internal/api"
	"github.com/bioailab/zotero-agent/internal/common"
	"github.com/bioailab/zotero-agent/internal/config"
	"github.com/bioailab/zotero-agent/internal/llm"
	"github.com/bioailab/zotero-agent/internal/zotero"
)

func main() {
	logger := common.Logger()

	if err := godotenv.Load(); err != nil {
		logger.Warn("agent: .env file not loaded", "error", err)
	} else {
		logger.Info("agent: environment loaded from .env")
	}

	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("agent: configuration invalid", "error", err)
		fmt.Println("configuration error:", err)
		os.Exit(1)
	}
	logger.Info("agent: startup initiated", "addr", *addr, "library", cfg.LibraryID, "library_type", cfg.LibraryType)

	store := zotero.New(cfg)
	provider := llm.NewProvider()
	logger.Info("agent: llm provider ready", "provider", provider.Name())

	server, err := api.NewServer(store, provider, cfg.AgentKey)
	if err != nil {
		logger.Error("agent: server construction failed", "error", err)
		fmt.Println("server error:", err)
		os.Exit(1)
	}

	logger.Info("agent: server listening", "addr", *addr, "health", "/health")
	fmt.Printf("Serving on %s\n", *addr)
	if err := http.ListenAndServe(*addr, server); err != nil {
		logger.Error("agent: server stopped", "error", err)
		fmt.Println("server stopped:", err)
	}
}
