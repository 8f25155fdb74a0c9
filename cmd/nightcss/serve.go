package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"nightcss/internal/preview"
	"nightcss/internal/server"
)

func newServeCmd(c *cli) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.cfg.Server.Addr
			}
			logger := log.New(os.Stdout, "", log.LstdFlags|log.Lmicroseconds)
			scfg := server.Config{
				Engine:       c.engine(),
				PreviewWidth: c.cfg.Preview.Width,
				MaxBodyBytes: c.cfg.Server.MaxBodyBytes,
				Logger:       logger,
			}
			if c.cfg.Preview.Enabled {
				timeout, _ := c.cfg.PreviewTimeout()
				r := preview.New(preview.Options{
					ChromePath: c.cfg.Preview.ChromePath,
					Timeout:    timeout,
					Logger:     logger,
				})
				defer r.Close()
				scfg.Previewer = r
			}
			srv := &http.Server{
				Addr:              addr,
				Handler:           server.New(scfg),
				ReadHeaderTimeout: 5 * time.Second,
				ReadTimeout:       30 * time.Second,
				WriteTimeout:      2 * time.Minute,
				IdleTimeout:       60 * time.Second,
				ErrorLog:          log.New(os.Stdout, "HTTPERR ", log.LstdFlags|log.Lmicroseconds),
			}
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listen on %s: %w", addr, err)
			}

			ctx := cmd.Context()
			errc := make(chan error, 1)
			go func() { errc <- srv.Serve(ln) }()
			logger.Println("Listening on", ln.Addr())

			select {
			case err := <-errc:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}
			logger.Println("Shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, e.g. :8081 (default from config)")
	return cmd
}
