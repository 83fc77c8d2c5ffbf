package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ironsheep/png-tools-mcp/internal/config"
	"github.com/ironsheep/png-tools-mcp/internal/logging"
	"github.com/ironsheep/png-tools-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout))
}

// run serves MCP on stdin/stdout and returns the process exit code. It
// returns instead of exiting so deferred cleanup, including flushing the log
// file, always happens.
func run(args []string, stdin io.Reader, stdout io.Writer) int {
	// Handle --version and -v flags
	if len(args) > 0 {
		switch args[0] {
		case "--version", "-v", "version":
			fmt.Fprintf(stdout, "png-tools-mcp %s\n", Version)
			fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
			return 0
		case "--help", "-h", "help":
			fmt.Fprintln(stdout, "png-tools-mcp - MCP server for PNG resizing, luminance and brightness analysis")
			fmt.Fprintln(stdout)
			fmt.Fprintln(stdout, "Usage: png-tools-mcp [options]")
			fmt.Fprintln(stdout)
			fmt.Fprintln(stdout, "Options:")
			fmt.Fprintln(stdout, "  --version, -v    Print version information")
			fmt.Fprintln(stdout, "  --help, -h       Print this help message")
			fmt.Fprintln(stdout)
			fmt.Fprintln(stdout, "Environment variables (also read from ./.env):")
			fmt.Fprintln(stdout, "  PNG_TOOLS_LOG_LEVEL=debug          Enable debug logging")
			fmt.Fprintln(stdout, "  PNG_TOOLS_LOG_FILE=path            Log to a rotating file instead of stderr")
			fmt.Fprintln(stdout, "  PNG_TOOLS_FETCH_URLS=url,...       Sample image URLs for image_fetch")
			fmt.Fprintln(stdout, "  PNG_TOOLS_FETCH_TIMEOUT=10s        Download timeout")
			fmt.Fprintln(stdout, "  PNG_TOOLS_USER_AGENT=...           User-Agent for downloads")
			fmt.Fprintln(stdout, "  PNG_TOOLS_MAX_DOWNLOAD_BYTES=n     Download size limit")
			fmt.Fprintln(stdout, "  PNG_TOOLS_THRESHOLD=200            Default brightness threshold")
			fmt.Fprintln(stdout)
			fmt.Fprintln(stdout, "This server communicates via MCP protocol over stdin/stdout.")
			fmt.Fprintln(stdout, "Configure it in your MCP client (e.g., Claude Desktop).")
			return 0
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "png-tools-mcp: %v\n", err)
		return 2
	}

	// stdout is for MCP protocol
	closer := logging.Setup(logging.Options{Debug: cfg.Debug, File: cfg.LogFile})
	defer closer.Close()

	logging.Debugf("PNG Tools MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg)
	if err := srv.Serve(ctx, stdin, stdout); err != nil && ctx.Err() == nil {
		logging.Printf("Server error: %v", err)
		return 1
	}
	logging.Println("PNG Tools MCP Server stopped")
	return 0
}
