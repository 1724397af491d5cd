package main

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/guess/internal/httpserver"
	"github.com/robalobadob/guess/internal/results"
	"github.com/robalobadob/guess/internal/secret"
	"github.com/robalobadob/guess/internal/store"
)

// serve exposes the game over HTTP until the listener fails.
func (a *app) serve(ctx context.Context) error {
	opts := httpserver.Options{
		Range:        secret.Default,
		Source:       a.source,
		Mode:         a.cfg.Mode,
		JWTSecret:    a.cfg.JWTSecret,
		ClientOrigin: a.cfg.ClientOrigin,
		Now:          a.now,
	}
	if a.cfg.DBPath != "" {
		st, err := results.Open(a.cfg.DBPath)
		if err != nil {
			return err
		}
		defer st.Close()
		opts.Results = st
	}

	srv, err := httpserver.New(store.NewMemoryStore(), opts)
	if err != nil {
		return err
	}
	log.Info().Str("port", a.cfg.Port).Str("mode", a.cfg.Mode).Bool("results", opts.Results != nil).Msg("starting guess server")
	return srv.Start(":" + a.cfg.Port)
}
