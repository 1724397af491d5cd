package game

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
)

// Prompt is written before every read.
const Prompt = "Type your guess: "

// Play runs the interactive loop on r and w until the game reaches Done.
//
// Each iteration prompts, reads one line and applies it. Lines that do not
// parse are dropped without any output to the player. A failed read
// (including a stream closed before a full line arrives) ends the loop with
// an error wrapping ErrInput. A last line terminated by EOF instead of a
// newline is still applied.
func Play(ctx context.Context, r io.Reader, w io.Writer, g *Game) error {
	br := bufio.NewReader(r)
	for !g.Finished() {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprintln(w, Prompt)

		line, err := br.ReadString('\n')
		if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return fmt.Errorf("%w: %w", ErrInput, err)
		}

		guess, out, aerr := g.ApplyGuess(line)
		if errors.Is(aerr, ErrParse) {
			log.Debug().Str("game", g.ID).Int("invalid", g.Invalid).Msg("attempt discarded")
			continue
		}
		if aerr != nil {
			return aerr
		}

		fmt.Fprintf(w, "You guessed %d\n", guess)
		fmt.Fprintln(w, out.Message())
		log.Debug().Str("game", g.ID).Uint32("guess", guess).Str("outcome", string(out)).Int("attempts", g.Attempts).Msg("guess compared")
	}
	return nil
}
