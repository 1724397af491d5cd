// internal/httpserver/server.go
//
// HTTP server wiring for the guessing game.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Game endpoints: POST /game/new, POST /game/guess.
//   - Results endpoints (when a results DB is configured): mounted under /results.
//   - Game tokens: every new game comes with an HS256 JWT bound to its ID.
//
// Notes:
//   - A guess that does not parse is answered with outcome "ignored" and leaves
//     the game untouched apart from its invalid counter, like the terminal loop.
//   - CORS is origin‑aware and credentials‑enabled.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/guess/internal/daily"
	"github.com/robalobadob/guess/internal/game"
	"github.com/robalobadob/guess/internal/results"
	"github.com/robalobadob/guess/internal/secret"
	"github.com/robalobadob/guess/internal/store"
)

// Options configures a Server. Zero values fall back to sensible defaults.
type Options struct {
	Range        secret.Range
	Source       secret.Source
	Mode         string         // recorded with results ("random" | "daily")
	Results      *results.Store // nil disables history
	JWTSecret    string
	TokenTTL     time.Duration
	ClientOrigin string
	Now          func() time.Time
}

// Server bundles router, in-memory game store, and results DB.
type Server struct {
	r       *chi.Mux
	store   store.Store
	opts    Options
	guessMu sync.Mutex // serialises get/apply/save of a game
}

// New constructs a Server, installs middleware, and registers routes.
// It rejects an inverted target range.
func New(st store.Store, opts Options) (*Server, error) {
	if opts.Range == (secret.Range{}) {
		opts.Range = secret.Default
	}
	if err := opts.Range.Validate(); err != nil {
		return nil, err
	}
	if opts.Source == nil {
		opts.Source = secret.Random
	}
	if opts.Mode == "" {
		opts.Mode = "random"
	}
	if opts.JWTSecret == "" {
		opts.JWTSecret = "dev_secret_change_me"
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "http://localhost:5173"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &Server{r: chi.NewRouter(), store: st, opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(opts.ClientOrigin))         // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"guess","endpoints":["/health","POST /game/new","POST /game/guess","/results/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Post("/game/new", s.handleNewGame)
	s.r.With(s.requireGameToken()).Post("/game/guess", s.handleGuess)

	if opts.Results != nil {
		s.mountResults(s.r)
	}

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s, nil
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------ GAME ---------------------------------------

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Player string  `json:"player"`
	Answer *uint32 `json:"answer"` // optional fixed target (testing); such games are not recorded
}
type newGameRes struct {
	GameID    string    `json:"gameId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Min       uint32    `json:"min"`
	Max       uint32    `json:"max"`
}

// handleNewGame draws a target, stores the game and returns a token for it.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	// An empty body starts a default game.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	src := s.opts.Source
	if req.Answer != nil {
		if !s.opts.Range.Contains(*req.Answer) {
			writeError(w, http.StatusBadRequest, "answer_out_of_range")
			return
		}
		src = secret.Fixed(*req.Answer)
	}
	now := s.opts.Now()
	if n, err := s.store.Expire(r.Context(), now.Add(-s.opts.TokenTTL)); err != nil {
		log.Warn().Err(err).Msg("expire games")
	} else if n > 0 {
		log.Debug().Int("expired", n).Msg("dropped stale games")
	}

	g := game.New(src.Draw(s.opts.Range))
	g.Started = now
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}

	player := strings.TrimSpace(req.Player)
	if player == "" {
		player = "guest"
	}
	tok, exp, err := s.signGameToken(g.ID, player, req.Answer != nil)
	if err != nil {
		log.Error().Err(err).Msg("sign game token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	log.Debug().Str("gameId", g.ID).Str("player", player).Msg("game started")

	_ = json.NewEncoder(w).Encode(newGameRes{
		GameID:    g.ID,
		Token:     tok,
		ExpiresAt: exp,
		Min:       s.opts.Range.Min,
		Max:       s.opts.Range.Max,
	})
}

// guessReq/Res payloads for POST /game/guess.
type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}
type guessRes struct {
	Guess    *uint32    `json:"guess,omitempty"`
	Outcome  string     `json:"outcome"` // "too_small" | "too_big" | "correct" | "ignored"
	Message  string     `json:"message,omitempty"`
	State    game.State `json:"state"`
	Attempts int        `json:"attempts"`
}

// handleGuess applies a guess to a stored game and records the result once it is won.
// Won games are removed from the store; a valid token for a game that is no
// longer stored therefore means the game is over.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	claims := tokenClaims(r)
	if claims == nil || claims.GameID != req.GameID {
		writeError(w, http.StatusUnauthorized, "invalid_token")
		return
	}

	s.guessMu.Lock()
	g, err := s.store.Get(r.Context(), req.GameID)
	if errors.Is(err, store.ErrNotFound) {
		s.guessMu.Unlock()
		writeError(w, http.StatusConflict, "game_finished")
		return
	}
	if err != nil {
		s.guessMu.Unlock()
		log.Error().Err(err).Str("gameId", req.GameID).Msg("load game")
		writeError(w, http.StatusInternalServerError, "load_failed")
		return
	}
	guess, out, applyErr := g.ApplyGuess(req.Guess)
	switch {
	case applyErr == nil && g.Finished():
		if err := s.store.Delete(r.Context(), g.ID); err != nil {
			log.Warn().Err(err).Str("gameId", g.ID).Msg("delete finished game")
		}
	case applyErr == nil || errors.Is(applyErr, game.ErrParse):
		if err := s.store.Save(r.Context(), g); err != nil {
			s.guessMu.Unlock()
			log.Error().Err(err).Str("gameId", g.ID).Msg("save game")
			writeError(w, http.StatusInternalServerError, "save_failed")
			return
		}
	}
	s.guessMu.Unlock()

	switch {
	case errors.Is(applyErr, game.ErrFinished):
		writeError(w, http.StatusConflict, "game_finished")
		return
	case errors.Is(applyErr, game.ErrParse):
		_ = json.NewEncoder(w).Encode(guessRes{Outcome: "ignored", State: g.State, Attempts: g.Attempts})
		return
	case applyErr != nil:
		writeError(w, http.StatusInternalServerError, "guess_failed")
		return
	}

	if out == game.Correct && !claims.Fixed {
		s.recordResult(r, g, claims.Player)
	}
	_ = json.NewEncoder(w).Encode(guessRes{
		Guess:    &guess,
		Outcome:  string(out),
		Message:  out.Message(),
		State:    g.State,
		Attempts: g.Attempts,
	})
}

// recordResult persists a won game (best effort, non-fatal if it fails).
func (s *Server) recordResult(r *http.Request, g *game.Game, player string) {
	if s.opts.Results == nil {
		return
	}
	now := s.opts.Now()
	err := s.opts.Results.Insert(r.Context(), results.Result{
		GameID:    g.ID,
		Player:    player,
		Mode:      s.opts.Mode,
		Date:      daily.DateKey(g.Started),
		Target:    g.Target,
		Attempts:  g.Attempts,
		Invalid:   g.Invalid,
		ElapsedMs: now.Sub(g.Started).Milliseconds(),
	})
	if err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("insert result")
	}
}

// ------------------------------- util --------------------------------------

// writeError writes a JSON error body with the given status.
func writeError(w http.ResponseWriter, status int, code string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}

// bearer extracts a bearer token from the Authorization header.
func bearer(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}
