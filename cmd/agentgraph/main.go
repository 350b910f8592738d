// Command agentgraph runs the invocation server for the two-agent
// retrieval/summarization pipeline.
package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"

	sdk "github.com/anthropics/anthropic-sdk-go"

	"github.com/agentgraph/agentgraph"
	"github.com/agentgraph/agentgraph/config"
	"github.com/agentgraph/agentgraph/logging"
	"github.com/agentgraph/agentgraph/runtime/anthropic"
	"github.com/agentgraph/agentgraph/server"
)

func main() {
	logger := logging.NewPipelineLogger(&logging.Config{
		Level:     slog.LevelInfo,
		Format:    "json",
		Output:    os.Stdout,
		Component: "server",
	})

	cfg, err := config.Load()
	if err != nil {
		fatal(err)
	}

	rt := anthropic.New(func(o *anthropic.Options) {
		o.Model = sdk.Model(cfg.ModelID)
	})

	pipeline, err := agentgraph.New(cfg, rt, nil, func(o *agentgraph.Options) {
		o.Logger = logger
	})
	if err != nil {
		fatal(err)
	}

	srv := server.New(pipeline, logger)

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	logger.Info("invocation server listening", "addr", addr)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		fatal(err)
	}
}

// fatal emits exactly one structured error object and exits. No further
// work happens after an unrecoverable setup error.
func fatal(err error) {
	_ = json.NewEncoder(os.Stderr).Encode(map[string]string{
		"error":    err.Error(),
		"category": server.Categorize(err),
	})
	os.Exit(1)
}
