package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/weekgrid/internal/app"
	"github.com/rpggio/weekgrid/internal/config"
	"github.com/rpggio/weekgrid/internal/logging"
	"github.com/rpggio/weekgrid/internal/mcp"
	"github.com/rpggio/weekgrid/internal/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := io.Writer(os.Stdout)
	if cfg.Transport.Mode == "stdio" {
		logWriter = os.Stderr
	}
	logger, closeLog, err := logging.New(cfg.Log.Level, cfg.Log.Path, logWriter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	a, err := app.Open(cfg.DB.Path, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Workspaces: a.Workspaces,
			TimeBlocks: a.TimeBlocks,
			Tasks:      a.Tasks,
			Activity:   a.Activity,
		},
		Resolver:      a.APIKeys,
		AuthEnabled:   cfg.Auth.Enabled,
		TransportMode: cfg.Transport.Mode,
		DefaultUser:   cfg.Auth.DefaultUser,
		Logger:        logger,
	})

	var authMiddleware func(http.Handler) http.Handler
	if cfg.Auth.Enabled {
		authMiddleware = transport.AuthMiddleware(a.APIKeys)
	}

	if cfg.Transport.Mode == "stdio" {
		err = runStdioMode(logger, mcpServer)
	} else {
		err = runHTTPMode(logger, mcpServer, authMiddleware, cfg.Server.Host, cfg.Server.Port)
	}
	if err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func runStdioMode(logger *slog.Logger, mcpServer *sdkmcp.Server) error {
	logger.Info("starting stdio transport", "auth", "disabled")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Run blocks until stdin closes or context is canceled
	return mcpServer.Run(ctx, &sdkmcp.StdioTransport{})
}

func runHTTPMode(logger *slog.Logger, mcpServer *sdkmcp.Server, authMiddleware func(http.Handler) http.Handler, host string, port int) error {
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{
			SessionTimeout: 30 * time.Minute,
		},
	)

	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           transport.NewServer(mcpHandler, authMiddleware, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr, "auth", authMiddleware != nil)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	return httpServer.Shutdown(shutdownCtx)
}
