package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nightcss/darkcss"
	"nightcss/internal/preview"
)

func newPreviewCmd(c *cli) *cobra.Command {
	var output string
	var width, thumb int
	cmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "Screenshot the repainted message in headless Chrome",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := c.readInput(cmd, args)
			if err != nil {
				return err
			}
			out := c.engine().Render(in)
			page, err := darkcss.InjectStyle(in.HTML, out.OverrideCSS)
			if err != nil {
				return err
			}
			if width <= 0 {
				width = c.cfg.Preview.Width
			}
			timeout, _ := c.cfg.PreviewTimeout()
			r := preview.New(preview.Options{
				ChromePath:     c.cfg.Preview.ChromePath,
				ThumbnailWidth: thumb,
				Timeout:        timeout,
				Logger:         c.logger,
			})
			defer r.Close()
			png, err := r.Screenshot(cmd.Context(), page, width)
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, png, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s, %d bytes\n", output, out.SupportLevel, len(png))
			return nil
		},
	}
	c.addInputFlags(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "preview.png", "PNG file to write")
	cmd.Flags().IntVar(&width, "width", 0, "viewport width in CSS pixels (default from config)")
	cmd.Flags().IntVar(&thumb, "thumbnail", 0, "scale the screenshot down to this width")
	return cmd
}
