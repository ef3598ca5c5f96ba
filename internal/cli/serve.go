package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	countyhandler "njgeo/internal/county/handler"
	municipalityhandler "njgeo/internal/municipality/handler"
	"njgeo/internal/platform/httpserver"
	httptransport "njgeo/internal/transport/http"
)

func serveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the reference data HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()
			return a.serve(ctx)
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	cfg := a.cfg.Server
	if cfg.WarmOnStart {
		if err := a.catalog.Warm(ctx); err != nil {
			return fmt.Errorf("warm catalog: %w", err)
		}
	}

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:   a.logger,
		Gatherer: a.registry,
		Health:   a.health,
		Handlers: []httptransport.Registrar{
			countyhandler.New(a.counties, a.logger, cfg.BaseURL),
			municipalityhandler.New(a.municipalities, a.logger, cfg.BaseURL),
		},
	})
	srv := httpserver.New(cfg.Addr, router)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server listening",
			"addr", cfg.Addr,
			"data_source", a.cfg.Data.Source,
			"default_year", cfg.DefaultYear,
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("shutting down", "timeout", cfg.ShutdownTimeout.String())
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
