package main

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/png-tools-mcp/internal/imaging"
	"github.com/ironsheep/png-tools-mcp/internal/logging"
)

func newResizeCmd(a *app) *cobra.Command {
	var (
		opts   imaging.ResizeOptions
		mode   string
		outDir string
		jobs   int
	)

	cmd := &cobra.Command{
		Use:   "resize FILE...",
		Short: "Resize images and save them as PNG",
		Long: `Resize one or more images. Give --scale, or --width and/or --height.
With only one side given the other follows the aspect ratio unless
--keep-aspect=false. Output is written as resized_<name>, next to the input
or in --out-dir.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := imaging.ParseResizeMode(mode)
			if err != nil {
				return err
			}
			opts.Mode = m
			if _, err := imaging.ParseFilter(opts.Filter); err != nil {
				return err
			}
			if jobs <= 0 {
				jobs = runtime.NumCPU()
			}

			outputs, err := resizeOutputs(args, outDir)
			if err != nil {
				return err
			}

			results := make([]*imaging.ResizeResult, len(args))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(jobs)

			for i, input := range args {
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					res, err := imaging.ResizeFile(a.cache, input, outputs[i], opts)
					if err != nil {
						return fmt.Errorf("%s: %w", input, err)
					}
					logging.Debugf("resized %s -> %s", input, res.OutputPath)
					results[i] = res
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, res := range results {
				fmt.Fprintf(out, "%s: %dx%d -> %dx%d (%s) %s (%d bytes)\n",
					args[i], res.OriginalWidth, res.OriginalHeight, res.Width, res.Height,
					res.Mode, res.OutputPath, res.FileSizeBytes)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.Width, "width", 0, "target width in pixels")
	f.IntVar(&opts.Height, "height", 0, "target height in pixels")
	f.Float64Var(&opts.Scale, "scale", 0, "scale factor for both sides (takes precedence)")
	f.BoolVar(&opts.KeepAspect, "keep-aspect", true, "derive the missing side from the aspect ratio")
	f.StringVar(&mode, "mode", "stretch", "box handling when width and height are both set: stretch, fit or fill")
	f.StringVar(&opts.Filter, "filter", "lanczos", "resampling filter: lanczos, catmullrom, linear, nearest or box")
	f.StringVar(&outDir, "out-dir", "", "directory for the resized files")
	f.IntVarP(&jobs, "jobs", "j", 0, "files resized in parallel (default: number of CPUs)")
	return cmd
}

// resizeOutputs maps each input to its output path ("" keeps the default next
// to the input). Two inputs that would write the same file are rejected, since
// they are resized concurrently.
func resizeOutputs(inputs []string, outDir string) ([]string, error) {
	outputs := make([]string, len(inputs))
	seen := make(map[string]string, len(inputs))
	for i, input := range inputs {
		key := filepath.Clean(input)
		if outDir != "" {
			outputs[i] = filepath.Join(outDir, "resized_"+filepath.Base(input))
			key = outputs[i]
		}
		if prev, ok := seen[key]; ok {
			return nil, fmt.Errorf("%s and %s would both be written to the same output; resize them separately", prev, input)
		}
		seen[key] = input
	}
	return outputs, nil
}
