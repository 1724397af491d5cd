// internal/game/types.go
//
// Core type definitions for the guessing game engine.
// Defines:
//   - Outcome: result of comparing a guess against the target.
//   - State:   where a game sits in its input/compare cycle.
//   - Game:    state for a single in-progress or finished game.

package game

import (
	"errors"
	"time"
)

// Outcome represents the evaluation result for a single parsed guess.
// Possible values:
//   - "too_small": guess is below the target.
//   - "too_big":   guess is above the target.
//   - "correct":   guess equals the target.
type Outcome string

const (
	TooSmall Outcome = "too_small"
	TooBig   Outcome = "too_big"
	Correct  Outcome = "correct"
)

// Message returns the line printed to the player for an outcome.
func (o Outcome) Message() string {
	switch o {
	case TooSmall:
		return "Too small"
	case TooBig:
		return "Too big"
	case Correct:
		return "Got it!"
	}
	return ""
}

// State is a position in the game state machine.
//
//	AwaitingInput --parse ok--> Comparing --equal--> Done
//	      ^                         |
//	      +-------not equal---------+
//
// A parse failure keeps the game in AwaitingInput.
type State string

const (
	AwaitingInput State = "awaiting_input"
	Comparing     State = "comparing"
	Done          State = "done"
)

var (
	// ErrParse marks an attempt that is not a valid non-negative integer.
	ErrParse = errors.New("not a non-negative integer")
	// ErrInput marks an input stream that can no longer be read.
	ErrInput = errors.New("failed to read line")
	// ErrFinished is returned when guessing on a game that is already done.
	ErrFinished = errors.New("game finished")
)

// Game holds the state of a single guessing game.
type Game struct {
	ID       string // Unique game identifier (random hex string).
	Target   uint32 // The secret number; never changes after New.
	State    State  // Current position in the state machine.
	Attempts int    // Guesses that parsed and were compared.
	Invalid  int    // Attempts discarded because they did not parse.
	Started  time.Time
}

// Finished reports whether the target has been guessed.
func (g *Game) Finished() bool { return g.State == Done }
