package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/cardforge/server/internal/apperr"
	"github.com/cardforge/server/internal/gamelogic"
)

func (s *Server) handleListFriends(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())
	player, ok, err := s.data.FindPlayerByID(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, s.logs, err)
		return
	}
	if !ok {
		writeError(w, s.logs, apperr.NotFound("player"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"friends":          nonNil(player.Friends),
		"incomingRequests": nonNil(player.FriendRequestsReceived),
		"outgoingRequests": nonNil(player.FriendRequestsSent),
	})
}

type friendRequestBody struct {
	RecipientID string `json:"recipientId"`
}

func (s *Server) handleFriendRequest(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())
	var req friendRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, s.logs, apperr.ValidationFailed("body", "malformed JSON body"))
		return
	}

	if err := gamelogic.SendFriendRequest(r.Context(), s.data, claims.UserID, req.RecipientID); err != nil {
		writeError(w, s.logs, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Friend request sent.",
	})
}

type friendResponseBody struct {
	OtherUserID string `json:"otherUserId"`
	Action      string `json:"action"`
}

func (s *Server) handleFriendResponse(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())
	var req friendResponseBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, s.logs, apperr.ValidationFailed("body", "malformed JSON body"))
		return
	}

	if err := gamelogic.RespondToFriendRequest(r.Context(), s.data, claims.UserID, req.OtherUserID, req.Action); err != nil {
		writeError(w, s.logs, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Friend request updated.",
	})
}

func (s *Server) handleRemoveFriend(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())
	friendID := r.PathValue("friendId")

	if err := gamelogic.RemoveFriend(r.Context(), s.data, claims.UserID, friendID); err != nil {
		writeError(w, s.logs, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Friend removed.",
	})
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
