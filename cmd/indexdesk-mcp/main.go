package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	mcpadapter "indexdesk/internal/adapters/mcp"
	"indexdesk/internal/adapters/meili"
	"indexdesk/internal/adapters/sqlite"
	"indexdesk/internal/config"
	"indexdesk/internal/logger"
	"indexdesk/internal/ports"
)

func main() {
	flags := pflag.NewFlagSet("indexdesk-mcp", pflag.ExitOnError)
	config.RegisterFlags(flags)
	_ = flags.Parse(os.Args[1:])

	cfgPath, _ := flags.GetString("config")
	cfg, err := config.Load(cfgPath, flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "indexdesk-mcp: %v\n", err)
		os.Exit(1)
	}

	// stdout carries the protocol, so logs go to stderr unless a file is set
	log, err := logger.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "indexdesk-mcp: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	engine := meili.New(cfg.Host,
		meili.WithAPIKey(cfg.APIKey),
		meili.WithTimeout(cfg.Timeout),
		meili.WithLogger(log),
	)

	var journal ports.TaskJournal
	if !cfg.Journal.Disabled {
		path := cfg.Journal.Path
		if path == "" {
			path = sqlite.DefaultPath(cfg.Host)
		}
		if j, err := sqlite.Open(path); err != nil {
			log.Warn("task journal unavailable", zap.String("path", path), zap.Error(err))
		} else {
			j.SetRetention(cfg.Journal.Retention)
			defer j.Close()
			journal = j
		}
	}

	mcpServer := server.NewMCPServer(
		"indexdesk-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, engine)
	mcpadapter.RegisterWriteTools(mcpServer, engine, journal)
	mcpadapter.RegisterTaskTools(mcpServer, engine, journal)

	log.Info("serving MCP on stdio", zap.String("host", cfg.Host))
	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatal("indexdesk-mcp stopped", zap.Error(err))
	}
}
