package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"nightcss/darkcss"
	"nightcss/internal/config"
	"nightcss/internal/mailmsg"
)

// cli holds state shared by every subcommand.
type cli struct {
	cfgFile    string
	verbose    bool
	eml        bool
	newsletter bool
	plainText  bool
	preference string

	cfg    *config.Config
	logger *log.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "nightcss",
		Short: "Dark-mode stylesheet generator for HTML mail",
		Long: `nightcss decides whether an HTML mail body can be shown in dark mode and
generates the override stylesheet that repaints its colors.

Input is read from the file named on the command line, or stdin when the
argument is missing or "-". With --eml the input is a raw RFC 5322 message.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			out := io.Discard
			if c.verbose {
				out = cmd.ErrOrStderr()
			}
			c.logger = log.New(out, "nightcss ", log.LstdFlags|log.Lmicroseconds)
			cfg, err := config.Load(c.cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			c.cfg = cfg
			return nil
		},
	}
	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "TOML config file (default $NIGHTCSS_CONFIG)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		newClassifyCmd(c),
		newGenerateCmd(c),
		newInspectCmd(c),
		newServeCmd(c),
		newPreviewCmd(c),
	)
	return root
}

// addInputFlags registers the flags describing how to read a message.
func (c *cli) addInputFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&c.eml, "eml", false, "input is a raw RFC 5322 message")
	cmd.Flags().BoolVar(&c.newsletter, "newsletter", false, "treat the message as a newsletter")
	cmd.Flags().BoolVar(&c.plainText, "plain-text", false, "treat the message as plain text")
	cmd.Flags().StringVar(&c.preference, "preference", "follow-system", "user preference: follow-system or force-off")
}

func (c *cli) engine() *darkcss.Engine {
	return darkcss.NewEngine(c.cfg.EngineOptions(c.logger))
}

// readInput loads the message named by args into an engine input.
func (c *cli) readInput(cmd *cobra.Command, args []string) (darkcss.Input, error) {
	var r io.Reader = cmd.InOrStdin()
	if len(args) > 0 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return darkcss.Input{}, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}
	pref := darkcss.ParsePreference(c.preference)
	if c.eml {
		msg, err := mailmsg.Load(r)
		if err != nil {
			return darkcss.Input{}, err
		}
		for _, w := range msg.Warnings {
			c.logger.Printf("mime: %s", w)
		}
		in := msg.Input(pref)
		in.IsNewsletter = in.IsNewsletter || c.newsletter
		return in, nil
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return darkcss.Input{}, fmt.Errorf("read input: %w", err)
	}
	html := string(raw)
	if c.plainText {
		html = mailmsg.PlainTextBody(html)
	}
	return darkcss.Input{
		HTML:         html,
		IsNewsletter: c.newsletter,
		IsPlainText:  c.plainText,
		Preference:   pref,
	}, nil
}
