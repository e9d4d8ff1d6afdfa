package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"modelrouter/internal/httpapi"
	"modelrouter/pkg/types"
)

const shutdownGrace = 5 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var (
		addr        string
		corsOrigins string
		httpLog     string
		swagger     bool
	)
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Run the HTTP API",
		Example: "  modelrouter serve --addr :8080\n  modelrouter serve --cors-origins http://localhost:3000,http://127.0.0.1:3000",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Addr = addr
			}
			if cmd.Flags().Changed("cors-origins") {
				a.cfg.CORS.Enabled = true
				a.cfg.CORS.Origins = splitCSV(corsOrigins)
			}
			if cmd.Flags().Changed("swagger") {
				a.cfg.Swagger = swagger
			}
			m, err := a.manager()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			httpapi.SetLogger(a.log)
			httpapi.SetMaxBodyBytes(a.cfg.MaxBodyBytes)
			httpapi.SetCORSOptions(a.cfg.CORS.Enabled, a.cfg.CORS.Origins, a.cfg.CORS.Methods, a.cfg.CORS.Headers)
			httpapi.SetSwaggerEnabled(a.cfg.Swagger)
			httpapi.SetBaseContext(ctx)
			if cmd.Flags().Changed("http-log") {
				httpapi.SetDefaultLogLevel(httpLog)
			}

			srv := &http.Server{
				Addr:              a.cfg.Addr,
				Handler:           httpapi.NewMux(m),
				ReadHeaderTimeout: 10 * time.Second,
				BaseContext:       func(net.Listener) context.Context { return ctx },
			}
			errCh := make(chan error, 1)
			go func() {
				a.log.Info().Str("addr", a.cfg.Addr).Strs("backends", backendNames(m.Backends())).
					Int("models", len(m.ListModels())).Msg("modelrouter listening")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}
			a.log.Info().Msg("shutting down")
			sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
			defer cancel()
			if err := srv.Shutdown(sctx); err != nil {
				a.log.Warn().Err(err).Msg("graceful shutdown error")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")
	cmd.Flags().StringVar(&corsOrigins, "cors-origins", "", "Comma-separated allowed CORS origins; enables CORS")
	cmd.Flags().StringVar(&httpLog, "http-log", "", "Per-request logging: off|error|info|debug")
	cmd.Flags().BoolVar(&swagger, "swagger", false, "Serve Swagger UI at /swagger/")
	return cmd
}

func backendNames(kinds []types.BackendKind) []string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}
