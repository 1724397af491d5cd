package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/guess/internal/config"
	"github.com/robalobadob/guess/internal/daily"
	"github.com/robalobadob/guess/internal/game"
	"github.com/robalobadob/guess/internal/results"
	"github.com/robalobadob/guess/internal/secret"
)

// app carries what a single invocation needs.
type app struct {
	cfg    *config.Config
	in     io.Reader
	out    io.Writer
	source secret.Source
	now    func() time.Time
}

// play runs one interactive game on the terminal.
// The target is drawn once here and lives only as long as the game.
func (a *app) play(ctx context.Context) error {
	g := game.New(a.source.Draw(secret.Default))
	g.Started = a.now()
	log.Debug().Str("game", g.ID).Str("mode", a.cfg.Mode).Msg("game started")

	fmt.Fprintln(a.out, "Guess the number!")
	if err := game.Play(ctx, a.in, a.out, g); err != nil {
		return err
	}
	log.Info().Str("game", g.ID).Int("attempts", g.Attempts).Int("invalid", g.Invalid).Msg("game won")

	a.record(ctx, g)
	return nil
}

// record stores a won game when a results database is configured.
// Failures are logged only; they never change the outcome of the game.
func (a *app) record(ctx context.Context, g *game.Game) {
	if a.cfg.DBPath == "" {
		return
	}
	st, err := results.Open(a.cfg.DBPath)
	if err != nil {
		log.Warn().Err(err).Str("db", a.cfg.DBPath).Msg("open results db")
		return
	}
	defer st.Close()

	now := a.now()
	err = st.Insert(ctx, results.Result{
		GameID:    g.ID,
		Player:    a.cfg.Player,
		Mode:      a.cfg.Mode,
		Date:      daily.DateKey(g.Started),
		Target:    g.Target,
		Attempts:  g.Attempts,
		Invalid:   g.Invalid,
		ElapsedMs: now.Sub(g.Started).Milliseconds(),
	})
	if err != nil {
		log.Warn().Err(err).Str("game", g.ID).Msg("insert result")
	}
}
