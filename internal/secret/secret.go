// internal/secret/secret.go
//
// Provides target selection for the game engine.
//
// Responsibilities:
//   - Describe the closed range targets are drawn from (Default is 1..100).
//   - Draw a uniformly random target with crypto/rand.
//   - Offer a Source abstraction so callers and tests can fix the target.
//
// Constraints:
//   • Ranges are inclusive on both ends and must satisfy Min <= Max.
//   • A target is drawn once per game and never redrawn.

package secret

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/rs/zerolog/log"
)

// Range is a closed interval [Min, Max].
type Range struct {
	Min uint32
	Max uint32
}

// Default is the range used by the interactive game.
var Default = Range{Min: 1, Max: 100}

// Size returns the number of values in the range.
func (r Range) Size() uint64 { return uint64(r.Max) - uint64(r.Min) + 1 }

// Contains reports whether n lies in the range.
func (r Range) Contains(n uint32) bool { return n >= r.Min && n <= r.Max }

// Validate reports a range whose bounds are inverted.
func (r Range) Validate() error {
	if r.Min > r.Max {
		return fmt.Errorf("secret: invalid range %d..%d", r.Min, r.Max)
	}
	return nil
}

// Source draws targets.
type Source interface {
	Draw(r Range) uint32
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func(r Range) uint32

// Draw calls f(r).
func (f SourceFunc) Draw(r Range) uint32 { return f(r) }

// Random is the crypto/rand backed Source.
var Random Source = SourceFunc(Draw)

// entropy feeds Draw; tests swap it for a failing reader.
var entropy io.Reader = rand.Reader

// Draw returns a cryptographically random value from r.
// If the system entropy source fails, it logs a warning and falls back to r.Min.
func Draw(r Range) uint32 {
	nBig, err := rand.Int(entropy, new(big.Int).SetUint64(r.Size()))
	if err != nil {
		log.Warn().Err(err).Uint32("min", r.Min).Uint32("max", r.Max).Msg("entropy source failed, using range minimum")
		return r.Min
	}
	return r.Min + uint32(nBig.Uint64())
}

// Fixed returns a Source that always yields n, clamped into the requested range.
func Fixed(n uint32) Source {
	return SourceFunc(func(r Range) uint32 {
		switch {
		case n < r.Min:
			return r.Min
		case n > r.Max:
			return r.Max
		}
		return n
	})
}
