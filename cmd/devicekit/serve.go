package main

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/devicekit/pkg/clientip"
	"github.com/dmitrymomot/devicekit/pkg/environment"
	"github.com/dmitrymomot/devicekit/pkg/httpserver"
	"github.com/dmitrymomot/devicekit/pkg/logger"
	"github.com/dmitrymomot/devicekit/pkg/negotiate"
	"github.com/dmitrymomot/devicekit/pkg/requestid"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve views negotiated for the requesting device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadSettings()
			if err != nil {
				return err
			}
			if addr != "" {
				s.HTTP.Addr = addr
			}
			return serve(cmd.Context(), s, cmd.ErrOrStderr())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides HTTP_ADDR")
	return cmd
}

func serve(ctx context.Context, s settings, logOutput io.Writer) error {
	env := s.Env.Environment()
	log := logger.NewFromConfig(s.Log, env,
		logger.WithOutput(logOutput),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			clientip.LoggerExtractor(),
			environment.LoggerExtractor(),
			negotiate.LoggerExtractor(),
		),
	)

	a, err := newApp(ctx, s, log)
	if err != nil {
		return err
	}

	srv := httpserver.NewFromConfig(s.HTTP,
		httpserver.WithLogger(log),
		httpserver.WithOnShutdown(a.Close),
	)
	err = srv.Run(ctx, a.routes())
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	// no-op when the shutdown hook already ran
	return errors.Join(err, a.Close())
}
