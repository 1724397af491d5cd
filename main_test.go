package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robalobadob/guess/internal/config"
	"github.com/robalobadob/guess/internal/daily"
	"github.com/robalobadob/guess/internal/game"
	"github.com/robalobadob/guess/internal/results"
	"github.com/robalobadob/guess/internal/secret"
)

func testApp(t *testing.T, target uint32, input string, cfg config.Config) (*app, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	if cfg.Mode == "" {
		cfg.Mode = config.ModeRandom
	}
	if cfg.Player == "" {
		cfg.Player = "tester"
	}
	now := time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)
	return &app{
		cfg:    &cfg,
		in:     strings.NewReader(input),
		out:    out,
		source: secret.Fixed(target),
		now:    func() time.Time { return now },
	}, out
}

func TestPlay_Scenario(t *testing.T) {
	a, out := testApp(t, 50, "abc\n10\n75\n50\n", config.Config{})

	require.NoError(t, a.play(context.Background()))

	got := out.String()
	require.True(t, strings.HasPrefix(got, "Guess the number!\n"))
	require.NotContains(t, got, "abc")
	require.Contains(t, got, "You guessed 10\nToo small\n")
	require.Contains(t, got, "You guessed 75\nToo big\n")
	require.True(t, strings.HasSuffix(got, "You guessed 50\nGot it!\n"))
}

func TestPlay_ClosedInput(t *testing.T) {
	a, out := testApp(t, 50, "", config.Config{})

	err := a.play(context.Background())
	require.ErrorIs(t, err, game.ErrInput)
	require.NotContains(t, out.String(), "Got it!")
}

func TestPlay_RecordsResult(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "guess.db")
	a, _ := testApp(t, 1, "0\nx\n1\n", config.Config{DBPath: dbPath, Player: "ana"})

	require.NoError(t, a.play(context.Background()))

	st, err := results.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()
	rows, err := st.Leaderboard(context.Background(), "random", "2026-10-17", 10)
	require.NoError(t, err)
	require.Equal(t, []results.LBRow{{Player: "ana", Attempts: 2, ElapsedMs: 0}}, rows)
}

func TestPlay_ResultDatedByStart(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "guess.db")
	a, _ := testApp(t, 7, "3\n7\n", config.Config{DBPath: dbPath, Player: "owl"})
	start := time.Date(2026, 10, 17, 23, 59, 0, 0, time.UTC)
	calls := 0
	a.now = func() time.Time {
		calls++
		if calls == 1 {
			return start
		}
		return start.Add(2 * time.Minute)
	}

	require.NoError(t, a.play(context.Background()))

	st, err := results.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()
	rows, err := st.Leaderboard(context.Background(), "random", "2026-10-17", 10)
	require.NoError(t, err)
	require.Equal(t, []results.LBRow{{Player: "owl", Attempts: 2, ElapsedMs: 120000}}, rows)

	rows, err = st.Leaderboard(context.Background(), "random", "2026-10-18", 10)
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestTargetSource_DailyUsesAppClock(t *testing.T) {
	day := time.Date(2031, 2, 3, 4, 5, 0, 0, time.UTC)
	cfg := &config.Config{Mode: config.ModeDaily, DailySalt: "s"}

	src := targetSource(cfg, func() time.Time { return day })

	require.Equal(t, daily.Target(day, "s", secret.Default), src.Draw(secret.Default))
}

func TestPlay_UnusableDatabaseDoesNotFailGame(t *testing.T) {
	dir := t.TempDir()
	a, out := testApp(t, 5, "5\n", config.Config{DBPath: dir})

	require.NoError(t, a.play(context.Background()))
	require.Contains(t, out.String(), "Got it!")
}

func TestRun(t *testing.T) {
	t.Setenv("GUESS_MODE", "daily")
	t.Setenv("DAILY_SALT", "run-test")
	t.Setenv("GUESS_DB_PATH", "")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_LEVEL", "info")

	// Walk the whole range; the loop stops at the daily target.
	var in strings.Builder
	for n := secret.Default.Min; n <= secret.Default.Max; n++ {
		in.WriteString(" " + strconv.Itoa(int(n)) + "\n")
	}

	var out, errOut bytes.Buffer
	require.NoError(t, run(context.Background(), strings.NewReader(in.String()), &out, &errOut, nil))
	require.True(t, strings.HasSuffix(out.String(), "Got it!\n"))
	require.Contains(t, errOut.String(), `"message":"game won"`)
}

func TestRun_RejectsArguments(t *testing.T) {
	var out, errOut bytes.Buffer
	err := run(context.Background(), strings.NewReader(""), &out, &errOut, []string{"--bogus"})
	require.ErrorContains(t, err, "unexpected arguments")
	require.Empty(t, out.String())
}

func TestRun_ClosedStdin(t *testing.T) {
	t.Setenv("GUESS_MODE", "random")
	t.Setenv("GUESS_DB_PATH", "")

	var out, errOut bytes.Buffer
	err := run(context.Background(), strings.NewReader(""), &out, &errOut, nil)
	require.ErrorIs(t, err, game.ErrInput)
	require.NotContains(t, out.String(), "Got it!")
}

func TestRun_InvalidConfig(t *testing.T) {
	t.Setenv("GUESS_MODE", "hourly")

	var out, errOut bytes.Buffer
	err := run(context.Background(), strings.NewReader(""), &out, &errOut, nil)
	require.ErrorContains(t, err, "GUESS_MODE")
}
