package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robalobadob/guess/internal/game"
)

func TestMemoryStore_SaveGet(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	g := game.New(12)

	require.NoError(t, st.Save(ctx, g))

	got, err := st.Get(ctx, g.ID)
	require.NoError(t, err)
	require.Equal(t, *g, *got)

	// Mutating the returned copy must not leak into the store.
	_, _, err = got.ApplyGuess("12")
	require.NoError(t, err)
	again, err := st.Get(ctx, g.ID)
	require.NoError(t, err)
	require.Equal(t, game.AwaitingInput, again.State)

	require.NoError(t, st.Save(ctx, got))
	again, err = st.Get(ctx, g.ID)
	require.NoError(t, err)
	require.Equal(t, game.Done, again.State)
}

func TestMemoryStore_NotFoundAndDelete(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	_, err := st.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	g := game.New(3)
	require.NoError(t, st.Save(ctx, g))
	require.NoError(t, st.Delete(ctx, g.ID))
	require.NoError(t, st.Delete(ctx, g.ID))

	_, err = st.Get(ctx, g.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_Expire(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	cutoff := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

	old := game.New(1)
	old.Started = cutoff.Add(-time.Second)
	fresh := game.New(2)
	fresh.Started = cutoff
	require.NoError(t, st.Save(ctx, old))
	require.NoError(t, st.Save(ctx, fresh))

	n, err := st.Expire(ctx, cutoff)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	_, err = st.Get(ctx, old.ID)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = st.Get(ctx, fresh.ID)
	require.NoError(t, err)
}
