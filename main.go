package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/guess/internal/config"
	"github.com/robalobadob/guess/internal/daily"
	"github.com/robalobadob/guess/internal/secret"
)

func main() {
	if err := run(context.Background(), os.Stdin, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("guess exited")
	}
}

// run loads configuration, sets up logging and dispatches to the game or the server.
func run(ctx context.Context, in io.Reader, out, errOut io.Writer, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	setupLogger(cfg, errOut)

	a := &app{
		cfg: cfg,
		in:  in,
		out: out,
		now: time.Now,
	}
	a.source = targetSource(cfg, a.now)

	switch {
	case len(args) == 0:
		return a.play(ctx)
	case args[0] == "serve" && len(args) == 1:
		return a.serve(ctx)
	default:
		return fmt.Errorf("unexpected arguments %q (usage: guess [serve])", strings.Join(args, " "))
	}
}

// setupLogger points the global zerolog logger at errOut, keeping stdout for the game.
func setupLogger(cfg *config.Config, errOut io.Writer) {
	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	var w io.Writer = errOut
	if cfg.LogFormat == "console" {
		w = zerolog.ConsoleWriter{Out: errOut, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}

// targetSource picks the target source for the configured mode.
// Daily targets follow the same clock the game is timed and dated with.
func targetSource(cfg *config.Config, now func() time.Time) secret.Source {
	if cfg.Mode == config.ModeDaily {
		return daily.Source(cfg.DailySalt, now)
	}
	return secret.Random
}
