// internal/httpserver/routes_results.go
//
// HTTP routes for the results history.
// Exposes two endpoints under /results:
//   - GET /results/leaderboard?mode=&date=&limit= → best games of one mode on a day
//                                                   (server mode and today by default)
//   - GET /results/players/{player}                → aggregate stats for one player
//
// Only mounted when the server has a results store.

package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/guess/internal/daily"
)

// mountResults registers all /results routes.
func (s *Server) mountResults(r chi.Router) {
	r.Route("/results", func(r chi.Router) {
		r.Get("/leaderboard", s.handleLeaderboard)
		r.Get("/players/{player}", s.handlePlayerStats)
	})
}

type leaderboardRes struct {
	Mode string `json:"mode"`
	Date string `json:"date"`
	Rows any    `json:"rows"`
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = s.opts.Mode
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(s.opts.Now())
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 100 {
			writeError(w, http.StatusBadRequest, "bad_limit")
			return
		}
		limit = n
	}
	rows, err := s.opts.Results.Leaderboard(r.Context(), mode, date, limit)
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("leaderboard")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	_ = json.NewEncoder(w).Encode(leaderboardRes{Mode: mode, Date: date, Rows: rows})
}

func (s *Server) handlePlayerStats(w http.ResponseWriter, r *http.Request) {
	player := chi.URLParam(r, "player")
	st, err := s.opts.Results.Stats(r.Context(), player)
	if err != nil {
		log.Error().Err(err).Str("player", player).Msg("player stats")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	_ = json.NewEncoder(w).Encode(st)
}
