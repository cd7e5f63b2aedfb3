/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Command routes runs the GraphQL route service.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/botobag/routes/config"
	"github.com/botobag/routes/route"
	"github.com/botobag/routes/schema"
	"github.com/botobag/routes/server"
)

type options struct {
	configPath string
	addr       string
	logLevel   string
	logFormat  string
}

func main() {
	if err := newRootCommand(run).Execute(); err != nil {
		log.Fatal().Err(err).Msg("routes exited")
	}
}

// newRootCommand creates the command that calls runFunc with the resolved configuration.
func newRootCommand(runFunc func(ctx context.Context, cfg config.Config) error) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "routes",
		Short:         "Serve the route GraphQL API",
		Long:          "Serve a GraphQL API for creating routes and reading them back by id. Routes are kept in memory.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			return runFunc(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "path to a YAML configuration file")
	flags.StringVar(&opts.addr, "addr", "", "address to listen on (default 0.0.0.0:8080)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: trace, debug, info, warn or error")
	flags.StringVar(&opts.logFormat, "log-format", "", "log format: json or console")

	return cmd
}

// load builds the configuration from defaults, the configuration file and the flags that were set,
// in increasing order of precedence.
func (opts *options) load(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if len(opts.configPath) > 0 {
		var err error
		cfg, err = config.Load(opts.configPath)
		if err != nil {
			return config.Config{}, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("addr") {
		cfg.Addr = opts.addr
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = opts.logFormat
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

func run(ctx context.Context, cfg config.Config) error {
	logger, err := cfg.Log.NewLogger(os.Stderr)
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(cfg, logger, &schema.State{
		Routes: route.NewStore(),
	})
	if err != nil {
		return errors.Wrap(err, "create server")
	}

	if err := srv.Run(ctx); err != nil {
		return errors.Wrap(err, "run server")
	}
	logger.Info().Msg("server stopped")
	return nil
}
