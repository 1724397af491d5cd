package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// gameClaims bind a bearer to one game.
type gameClaims struct {
	GameID string `json:"gid"`
	Player string `json:"player"`
	Fixed  bool   `json:"fixed,omitempty"` // target chosen by the client; never recorded
	jwt.RegisteredClaims
}

// ctxClaimsKey is the context key type for storing gameClaims.
type ctxClaimsKey struct{}

// signGameToken creates an HS256 JWT for a game, valid for opts.TokenTTL.
func (s *Server) signGameToken(gameID, player string, fixed bool) (string, time.Time, error) {
	now := s.opts.Now()
	exp := now.Add(s.opts.TokenTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, gameClaims{
		GameID: gameID,
		Player: player,
		Fixed:  fixed,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   player,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	ss, err := t.SignedString([]byte(s.opts.JWTSecret))
	return ss, exp, err
}

// parseGameToken verifies signature, algorithm and expiry.
func (s *Server) parseGameToken(tok string) (*gameClaims, error) {
	claims := &gameClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.opts.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.opts.Now),
	)
	if err != nil {
		return nil, fmt.Errorf("parse game token: %w", err)
	}
	if !t.Valid || claims.GameID == "" {
		return nil, errors.New("invalid game token")
	}
	return claims, nil
}

// requireGameToken enforces a valid game JWT and injects its claims into request context.
func (s *Server) requireGameToken() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := bearer(r)
			if tok == "" {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			claims, err := s.parseGameToken(tok)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid_token")
				return
			}
			ctx := context.WithValue(r.Context(), ctxClaimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// tokenClaims returns the claims stored by requireGameToken, or nil.
func tokenClaims(r *http.Request) *gameClaims {
	c, _ := r.Context().Value(ctxClaimsKey{}).(*gameClaims)
	return c
}
