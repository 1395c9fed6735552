package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/cardforge/server/internal/apperr"
)

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, s.logs, apperr.ValidationFailed("body", "malformed JSON body"))
		return
	}

	if _, err := s.auth.Register(r.Context(), req.Email, req.Password, req.DisplayName); err != nil {
		writeError(w, s.logs, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Account created successfully.",
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, s.logs, apperr.ValidationFailed("body", "malformed JSON body"))
		return
	}

	token, _, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, s.logs, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Login successful.",
		"token":   token,
	})
}
