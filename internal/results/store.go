package results

import (
	"context"
	"database/sql"
)

// Result is one finished game. Date is the UTC day the game started, so a
// game that runs past midnight stays on the board of the day it was drawn for.
type Result struct {
	GameID    string `json:"gameId"`
	Player    string `json:"player"`
	Mode      string `json:"mode"`
	Date      string `json:"date"`
	Target    uint32 `json:"target"`
	Attempts  int    `json:"attempts"`
	Invalid   int    `json:"invalid"`
	ElapsedMs int64  `json:"elapsedMs"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// Insert records a result. A second insert for the same game is ignored.
func (s *Store) Insert(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO results(game_id, player, mode, date, target, attempts, invalid, elapsed_ms)
		VALUES(?,?,?,?,?,?,?,?)`,
		r.GameID, r.Player, r.Mode, r.Date, r.Target, r.Attempts, r.Invalid, r.ElapsedMs,
	)
	return err
}

type LBRow struct {
	Player    string `json:"player"`
	Attempts  int    `json:"attempts"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// Leaderboard returns the best results of one mode on a date: fewest attempts
// first, then fastest. A non-positive limit defaults to 20.
func (s *Store) Leaderboard(ctx context.Context, mode, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT player, attempts, elapsed_ms
		FROM results
		WHERE mode=? AND date=?
		ORDER BY attempts ASC, elapsed_ms ASC, created_at ASC
		LIMIT ?`, mode, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.Player, &r.Attempts, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// PlayerStats summarises a player's history.
type PlayerStats struct {
	Player       string  `json:"player"`
	GamesPlayed  int     `json:"gamesPlayed"`
	BestAttempts int     `json:"bestAttempts"`
	AvgAttempts  float64 `json:"avgAttempts"`
}

// Stats aggregates every result recorded for player.
// A player with no history gets zero values and no error.
func (s *Store) Stats(ctx context.Context, player string) (PlayerStats, error) {
	st := PlayerStats{Player: player}
	var best sql.NullInt64
	var avg sql.NullFloat64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1), MIN(attempts), AVG(attempts) FROM results WHERE player=?`, player,
	).Scan(&st.GamesPlayed, &best, &avg)
	if err != nil {
		return st, err
	}
	st.BestAttempts = int(best.Int64)
	st.AvgAttempts = avg.Float64
	return st, nil
}
