// internal/game/engine.go
//
// Core game engine for a single guessing session.
// Responsibilities:
//   - Create new games around an already drawn target.
//   - Parse raw attempts into guesses (trimmed, non-negative, 32-bit).
//   - Compare guesses against the target.
//   - Track state transitions: awaiting_input → comparing → awaiting_input | done.
//
// Notes:
//   - Targets are drawn by the secret package (or daily for daily mode).
//   - randomID() is a compact hex identifier for correlating server state.
package game

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// New constructs a game for the given target.
// The target is fixed for the lifetime of the game.
func New(target uint32) *Game {
	return &Game{
		ID:      randomID(),
		Target:  target,
		State:   AwaitingInput,
		Started: time.Now(),
	}
}

// ApplyGuess parses a raw attempt and compares it with the target, mutating the game state.
// Returns: the parsed guess, its outcome, or an error.
//
// Rules:
//   - Game must not be finished (ErrFinished).
//   - An attempt that does not parse is counted in Invalid and returns ErrParse;
//     the state stays AwaitingInput.
//   - Otherwise Attempts grows by one and the state becomes Done on Correct,
//     AwaitingInput on any other outcome.
func (g *Game) ApplyGuess(attempt string) (uint32, Outcome, error) {
	if g.Finished() {
		return 0, "", ErrFinished
	}
	guess, err := ParseGuess(attempt)
	if err != nil {
		g.Invalid++
		return 0, "", err
	}

	g.State = Comparing
	g.Attempts++
	out := Compare(guess, g.Target)
	if out == Correct {
		g.State = Done
	} else {
		g.State = AwaitingInput
	}
	return guess, out, nil
}

// ParseGuess trims surrounding whitespace and parses the rest as an unsigned
// 32-bit decimal integer. A single leading '+' is accepted.
func ParseGuess(attempt string) (uint32, error) {
	s := strings.TrimSpace(attempt)
	if strings.HasPrefix(s, "+") {
		s = s[1:]
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrParse, strings.TrimSpace(attempt))
	}
	return uint32(n), nil
}

// Compare orders a guess against the target.
func Compare(guess, target uint32) Outcome {
	switch {
	case guess < target:
		return TooSmall
	case guess > target:
		return TooBig
	default:
		return Correct
	}
}

// randomID returns a compact 16‑hex‑char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
