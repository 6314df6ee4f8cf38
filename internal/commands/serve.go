package commands

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	"ghactions/internal/config"
	"ghactions/internal/logger"
	mcpserver "ghactions/internal/mcp"
)

// RunServe is the entry point for `ghactions serve`.
//
// Stdio MCP always runs when stdin is a pipe (i.e. we were spawned by an MCP
// client). With --http, the SSE MCP handler is additionally mounted at /mcp/.
func RunServe(httpAddr string) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// All logging goes to stderr: stdout belongs to the JSON-RPC stream.
	logger.Configure(cfg.LogLevel, os.Stderr)
	log := logger.Named("serve")

	if term.IsTerminal(int(os.Stdin.Fd())) && httpAddr == "" {
		fmt.Fprintln(os.Stderr, "Serving MCP on stdio. This command is meant to be launched by an MCP client;")
		fmt.Fprintln(os.Stderr, "add it to your client's server configuration, or pass --http for SSE.")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if httpAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/mcp/", mcpserver.NewSSEHandler(Version))
		srv := &http.Server{Addr: httpAddr, Handler: mux}

		log.Infof("MCP SSE server listening on %s", httpAddr)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Errorf("http: %v", err)
			}
		}()
		go func() {
			<-ctx.Done()
			shutCtx, c := context.WithTimeout(context.Background(), 5*time.Second)
			defer c()
			_ = srv.Shutdown(shutCtx)
		}()
	}

	if isStdinPipe() {
		// Stdout is now exclusively for the MCP JSON-RPC protocol.
		if err := mcpserver.RunServer(ctx, Version); err != nil && ctx.Err() == nil {
			log.Errorf("mcp-stdio: %v", err)
			os.Exit(1)
		}
		return
	}

	<-ctx.Done()
	fmt.Fprintln(os.Stderr, "\nShutting down...")
}

// isStdinPipe returns true when stdin is a pipe or file (not a terminal),
// i.e. ghactions was spawned by another process feeding it data.
func isStdinPipe() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) == 0
}
