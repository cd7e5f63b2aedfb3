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

// Package server exposes the route schema over HTTP.
package server

import (
	"context"
	stdlog "log"
	"net"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"golang.org/x/sync/errgroup"

	"github.com/botobag/routes/config"
	"github.com/botobag/routes/graphql/handler"
	"github.com/botobag/routes/schema"
)

// Paths served by the router
const (
	GraphQLPath  = "/graphql"
	GraphiQLPath = "/graphiql"
)

// Server serves the route schema.
type Server struct {
	config config.Config
	logger zerolog.Logger
	router http.Handler
}

// New creates a server whose operations act on state.
func New(cfg config.Config, logger zerolog.Logger, state *schema.State) (*Server, error) {
	s, err := schema.New()
	if err != nil {
		return nil, errors.Wrap(err, "create schema")
	}

	graphqlHandler, err := handler.New(s,
		handler.MaxBodySize(cfg.MaxBodySize),
		handler.MaxConcurrency(cfg.MaxConcurrency),
		handler.OperationCacheSize(cfg.OperationCacheSize),
		handler.Middlewares(handler.AppContext(state)),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create GraphQL handler")
	}

	router, err := newRouter(logger, graphqlHandler)
	if err != nil {
		return nil, err
	}

	return &Server{
		config: cfg,
		logger: logger,
		router: router,
	}, nil
}

func newRouter(logger zerolog.Logger, graphqlHandler http.Handler) (*chi.Mux, error) {
	graphiql, err := graphiqlHandler(GraphQLPath)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(hlog.NewHandler(logger))
	r.Use(hlog.RequestIDHandler("req_id", "X-Request-Id"))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	}))
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, GraphiQLPath, http.StatusPermanentRedirect)
	})
	r.Method(http.MethodPost, GraphQLPath, graphqlHandler)
	r.Get(GraphiQLPath, graphiql)

	return r, nil
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", s.config.Addr)
	}
	return s.Serve(ctx, listener)
}

// Serve accepts connections on listener until ctx is cancelled. In-flight requests are given
// ShutdownTimeout to finish. listener is closed on return.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          stdlog.New(s.logger.With().Str("component", "http").Logger(), "", 0),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info().Str("addr", listener.Addr().String()).Msg("server started")
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "serve")
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info().Msg("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "shutdown")
		}
		return nil
	})

	return g.Wait()
}
