package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ironsheep/png-tools-mcp/internal/brightness"
)

func newBrightnessCmd(a *app) *cobra.Command {
	var (
		threshold int
		csvPath   string
		report    string
		compress  bool
	)

	cmd := &cobra.Command{
		Use:   "brightness FILE",
		Short: "Report the brightness distribution of an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("threshold") {
				threshold = a.cfg.Threshold
			}

			img, err := a.cache.Load(args[0])
			if err != nil {
				return err
			}
			stats, err := brightness.Analyze(img, threshold)
			if err != nil {
				return err
			}

			now := time.Now()
			out := cmd.OutOrStdout()
			fmt.Fprint(out, stats.Report(args[0], now))

			exports := []struct {
				path   string
				format string
			}{
				{csvPath, brightness.FormatCSV},
				{report, brightness.FormatText},
			}
			for _, e := range exports {
				if e.path == "" {
					continue
				}
				res, err := brightness.ExportFile(stats, e.path, brightness.ExportOptions{
					Format:   e.format,
					Compress: compress,
					Source:   args[0],
					Now:      now,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Exported %s (%d bytes)\n", res.OutputPath, res.FileSizeBytes)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVarP(&threshold, "threshold", "t", brightness.DefaultThreshold, "pixels above this level count as bright (0-255)")
	f.StringVar(&csvPath, "csv", "", "export the statistics as CSV to this path")
	f.StringVar(&report, "report", "", "save the text report to this path")
	f.BoolVar(&compress, "gzip", false, "gzip the exports")
	return cmd
}
