package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"data-qc/internal/app"
	"data-qc/internal/ingestmock"
)

const shutdownTimeout = 5 * time.Second

func main() {
	deps, err := app.BuildServer()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := fmt.Sprintf("127.0.0.1:%d", deps.Config.MCPPort)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		deps.Log.Error("listen failed", "addr", addr, "err", err)
		os.Exit(1)
	}
	deps.Log.Info("MCP mock server listening", "addr", "http://"+addr)
	if err := serve(ctx, newServer(deps), ln); err != nil {
		deps.Log.Error("server failed", "err", err)
		os.Exit(1)
	}
}

func newServer(deps app.Deps) *http.Server {
	return &http.Server{
		Handler:           ingestmock.NewRouter(deps.Log, ingestmock.Options{Token: deps.Config.MCPAPIKey}),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// serve runs srv on ln until ctx is cancelled, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server, ln net.Listener) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
