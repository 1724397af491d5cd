package secret

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func TestDraw_StaysInDefaultRange(t *testing.T) {
	seen := make(map[uint32]bool)
	for i := 0; i < 5000; i++ {
		n := Draw(Default)
		require.True(t, Default.Contains(n), "drew %d", n)
		seen[n] = true
	}
	// 5000 draws over 100 values: both ends show up with overwhelming probability.
	require.True(t, seen[1], "never drew 1")
	require.True(t, seen[100], "never drew 100")
}

func TestDraw_SingleValueRange(t *testing.T) {
	r := Range{Min: 7, Max: 7}
	require.Equal(t, uint64(1), r.Size())
	for i := 0; i < 10; i++ {
		require.Equal(t, uint32(7), Draw(r))
	}
}

func TestRange(t *testing.T) {
	require.Equal(t, uint64(100), Default.Size())
	require.True(t, Default.Contains(1))
	require.True(t, Default.Contains(100))
	require.False(t, Default.Contains(0))
	require.False(t, Default.Contains(101))

	require.NoError(t, Default.Validate())
	require.Error(t, Range{Min: 5, Max: 4}.Validate())

	full := Range{Min: 0, Max: ^uint32(0)}
	require.Equal(t, uint64(1)<<32, full.Size())
}

func TestFixed(t *testing.T) {
	require.Equal(t, uint32(42), Fixed(42).Draw(Default))
	require.Equal(t, uint32(1), Fixed(0).Draw(Default))
	require.Equal(t, uint32(100), Fixed(500).Draw(Default))
}

func TestRandomSource(t *testing.T) {
	require.True(t, Default.Contains(Random.Draw(Default)))
}

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) { return 0, errors.New("no entropy") }

func TestDraw_EntropyFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	prevLog, prevEntropy := log.Logger, entropy
	log.Logger = zerolog.New(&buf)
	entropy = brokenReader{}
	t.Cleanup(func() { log.Logger, entropy = prevLog, prevEntropy })

	require.Equal(t, uint32(1), Draw(Default))
	require.Contains(t, buf.String(), `"level":"warn"`)
	require.Contains(t, buf.String(), "no entropy")
}
