package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/updeals/retailer-portal/identity"
	"github.com/updeals/retailer-portal/session"
)

type sessionCreateRequest struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type sessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}

type sessionResponse struct {
	Success bool         `json:"success"`
	User    *sessionUser `json:"user,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// SessionCreateHandler accepts the credential pair obtained by
// client-side sign-in and persists it as the cookie pair.
// POST /api/auth/session
func (s *Server) SessionCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sessionCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, sessionResponse{Error: "Invalid JSON body"})
			return
		}

		if req.AccessToken == "" || req.RefreshToken == "" {
			writeJSON(w, http.StatusBadRequest, sessionResponse{Error: "Missing tokens"})
			return
		}

		sess, err := s.sessions.Create(r.Context(), w, req.AccessToken, req.RefreshToken)
		if err != nil {
			s.metrics.IncrementSessionCreateFailures()
			if errors.Is(err, identity.ErrProviderUnavailable) {
				log.Error().Err(err).Msg("session creation failed: provider unavailable")
				writeJSON(w, http.StatusInternalServerError, sessionResponse{Error: "Internal server error"})
				return
			}
			writeJSON(w, http.StatusUnauthorized, sessionResponse{Error: "Failed to create session"})
			return
		}

		s.metrics.IncrementSessionCreations()
		log.Info().Str("subject_id", sess.SubjectID).Msg("session created")
		writeJSON(w, http.StatusOK, sessionResponse{
			Success: true,
			User:    &sessionUser{ID: sess.SubjectID, Email: sess.Email},
		})
	}
}

// SessionDeleteHandler clears the cookie pair. Idempotent: deleting an
// absent session still answers 200.
// DELETE /api/auth/session
func (s *Server) SessionDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if token := session.AccessToken(r); token != "" {
			// Best effort: tell the provider to revoke. Local cookies are
			// cleared regardless of the outcome.
			if err := s.identity.SignOut(r.Context(), token); err != nil {
				log.Warn().Err(err).Msg("provider sign-out failed")
			}
		}

		s.sessions.Destroy(w)
		writeJSON(w, http.StatusOK, sessionResponse{Success: true})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
