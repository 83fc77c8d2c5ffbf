// Command png-tools resizes PNG images, extracts luminance images and
// reports brightness statistics from the command line.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ironsheep/png-tools-mcp/internal/config"
	"github.com/ironsheep/png-tools-mcp/internal/imaging"
	"github.com/ironsheep/png-tools-mcp/internal/logging"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// app holds state shared by the subcommands.
type app struct {
	cfg    *config.Config
	cache  *imaging.ImageCache
	logs   io.Closer
	dotenv string
	debug  bool
}

func newRootCmd() *cobra.Command {
	a := &app{cache: imaging.NewImageCache()}

	root := &cobra.Command{
		Use:           "png-tools",
		Short:         "Resize PNG images, extract luminance and analyse brightness",
		Version:       fmt.Sprintf("%s (built %s, commit %s)", Version, BuildTime, GitCommit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var files []string
			if a.dotenv != "" {
				files = append(files, a.dotenv)
			}
			cfg, err := config.Load(files...)
			if err != nil {
				return err
			}
			if a.debug {
				cfg.Debug = true
			}
			a.cfg = cfg
			a.logs = logging.Setup(logging.Options{Debug: cfg.Debug, File: cfg.LogFile})
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.logs != nil {
				return a.logs.Close()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.dotenv, "env-file", "", "read settings from this .env file (default ./.env)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newResizeCmd(a),
		newLuminanceCmd(a),
		newBrightnessCmd(a),
		newPlaceholderCmd(a),
	)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "png-tools: %v\n", err)
		os.Exit(1)
	}
}
