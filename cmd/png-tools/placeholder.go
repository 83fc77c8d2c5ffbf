package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/png-tools-mcp/internal/imaging"
	"github.com/ironsheep/png-tools-mcp/internal/source"
)

func newPlaceholderCmd(a *app) *cobra.Command {
	var (
		kind          string
		width, height int
		out           string
	)

	cmd := &cobra.Command{
		Use:   "placeholder",
		Short: "Draw a synthetic test image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := source.Placeholder(kind, width, height)
			if err != nil {
				return err
			}
			if out == "" {
				out = kind + ".png"
			}
			size, err := imaging.SavePNG(img, out)
			if err != nil {
				return err
			}
			a.cache.Evict(out)
			b := img.Bounds()
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%dx%d, %d bytes)\n", out, b.Dx(), b.Dy(), size)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&kind, "kind", source.KindTest, "image kind: shapes or test")
	f.IntVar(&width, "width", 0, "width in pixels (default depends on kind)")
	f.IntVar(&height, "height", 0, "height in pixels (default depends on kind)")
	f.StringVarP(&out, "out", "o", "", "output path (default <kind>.png)")
	return cmd
}
