package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/png-tools-mcp/internal/source"
	"github.com/ironsheep/png-tools-mcp/internal/workflow"
)

func newLuminanceCmd(a *app) *cobra.Command {
	var (
		urls       []string
		noDownload bool
		outDir     string
		kind       string
		keepSource bool
	)

	cmd := &cobra.Command{
		Use:   "luminance [FILE]",
		Short: "Extract weighted and average luminance images and a comparison strip",
		Long: `Extract luminance images from FILE (default example.png).

When FILE cannot be read a sample image is downloaded, and when that fails a
placeholder is drawn. The image used is saved as FILE unless --keep-source is
set. Writes luminance_weighted.png, luminance_average.png and
comparison_result.png.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := workflow.Options{OutputDir: outDir, KeepSource: keepSource}
			if len(args) == 1 {
				opts.SourcePath = args[0]
			}

			if !noDownload {
				if len(urls) == 0 {
					urls = a.cfg.FetchURLs
				}
				fetcher := source.NewFetcher(source.FetcherOptions{
					Timeout:   a.cfg.FetchTimeout,
					UserAgent: a.cfg.UserAgent,
					MaxBytes:  a.cfg.MaxDownloadBytes,
				})
				opts.Fallbacks = append(opts.Fallbacks, &source.HTTPProvider{Fetcher: fetcher, URLs: urls})
			}
			opts.Fallbacks = append(opts.Fallbacks, source.PlaceholderProvider{Kind: kind})

			result, err := workflow.Run(cmd.Context(), opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Source: %s (%dx%d)", result.Source, result.Width, result.Height)
			if result.SourcePath != "" {
				fmt.Fprintf(out, " %s", result.SourcePath)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Generated files:")
			for _, o := range result.Outputs {
				fmt.Fprintf(out, "  - %s (%d bytes)\n", o.Path, o.SizeBytes)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&urls, "url", nil, "sample image URL to download when FILE is missing (repeatable)")
	f.BoolVar(&noDownload, "no-download", false, "skip the download and go straight to the placeholder")
	f.StringVar(&outDir, "out-dir", ".", "directory for the generated files")
	f.StringVar(&kind, "placeholder", source.KindShapes, "placeholder kind: shapes or test")
	f.BoolVar(&keepSource, "keep-source", false, "do not save a downloaded or drawn source image")
	return cmd
}
