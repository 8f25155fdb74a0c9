package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"nightcss/darkcss"
)

func newClassifyCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify [file]",
		Short: "Print the dark-mode support level of a message",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := c.readInput(cmd, args)
			if err != nil {
				return err
			}
			level := c.engine().Classify(in.HTML, in.IsNewsletter, in.IsPlainText, in.Preference)
			fmt.Fprintln(cmd.OutOrStdout(), level)
			return nil
		},
	}
	c.addInputFlags(cmd)
	return cmd
}

func newGenerateCmd(c *cli) *cobra.Command {
	var force, inject bool
	cmd := &cobra.Command{
		Use:   "generate [file]",
		Short: "Print the override stylesheet for a message",
		Long: `Print the dark-mode override stylesheet. Nothing is printed unless the
message classifies as engine-supported; --force skips classification.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := c.readInput(cmd, args)
			if err != nil {
				return err
			}
			e := c.engine()
			var css string
			if force {
				css = e.Generate(in.HTML)
			} else {
				out := e.Render(in)
				c.logger.Printf("support level %s", out.SupportLevel)
				css = out.OverrideCSS
			}
			if inject {
				page, err := darkcss.InjectStyle(in.HTML, css)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), page)
				return nil
			}
			if css != "" {
				fmt.Fprintln(cmd.OutOrStdout(), css)
			}
			return nil
		},
	}
	c.addInputFlags(cmd)
	cmd.Flags().BoolVar(&force, "force", false, "generate even when the message is not engine-supported")
	cmd.Flags().BoolVar(&inject, "inject", false, "print the message with the stylesheet injected")
	return cmd
}

func newInspectCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Print every color override as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := c.readInput(cmd, args)
			if err != nil {
				return err
			}
			e := c.engine()
			report := struct {
				SupportLevel string             `json:"supportLevel"`
				Overrides    []darkcss.Override `json:"overrides"`
			}{
				SupportLevel: e.Classify(in.HTML, in.IsNewsletter, in.IsPlainText, in.Preference).String(),
				Overrides:    e.Inspect(in.HTML),
			}
			if report.Overrides == nil {
				report.Overrides = []darkcss.Override{}
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			return enc.Encode(report)
		},
	}
	c.addInputFlags(cmd)
	return cmd
}
