package httpapi

import (
	"encoding/json"
	"net/http"
	"regexp"

	"github.com/cardforge/server/internal/apperr"
	"github.com/cardforge/server/internal/data"
	"github.com/cardforge/server/internal/docstore"
	"github.com/cardforge/server/internal/gamelogic"
)

const meAlias = "@me"

type cardSummary struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Number int32  `json:"number"`
	Image  string `json:"image"`
}

func (s *Server) cardObjectSummary(r *http.Request, obj *data.CardObject) (cardSummary, error) {
	ref, ok, err := s.data.CardReferences.FindOne(r.Context(), docstore.ByID(obj.CardReferenceID))
	if err != nil {
		return cardSummary{}, apperr.Backend(err)
	}
	if !ok {
		return cardSummary{ID: obj.ID, Number: obj.Number}, nil
	}
	return cardSummary{
		ID:     obj.ID,
		Name:   ref.Name,
		Number: obj.Number,
		Image:  s.cardImageBase + ref.CharacterID,
	}, nil
}

func (s *Server) handleOpenPack(w http.ResponseWriter, r *http.Request) {
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

	result, err := gamelogic.OpenPackForPlayer(r.Context(), s.data, player, 1)
	if err != nil {
		writeError(w, s.logs, err)
		return
	}
	if !result.Success {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": result.Message,
		})
		return
	}

	cards := make([]cardSummary, 0, len(result.OpenedObjects))
	for _, obj := range result.OpenedObjects {
		summary, err := s.cardObjectSummary(r, obj)
		if err != nil {
			writeError(w, s.logs, err)
			return
		}
		cards = append(cards, summary)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": result.Message,
		"cards":   cards,
	})
}

func (s *Server) handleGetCollection(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())
	userID := r.PathValue("userId")
	if userID == meAlias {
		userID = claims.UserID
	}
	isOwner := userID == claims.UserID

	player, ok, err := s.data.FindPlayerByID(r.Context(), userID)
	if err != nil {
		writeError(w, s.logs, err)
		return
	}
	if !ok {
		writeError(w, s.logs, apperr.NotFound("player"))
		return
	}

	if isOwner {
		if err := gamelogic.EnsureThreeDecks(r.Context(), s.data, player); err != nil {
			writeError(w, s.logs, err)
			return
		}
	}

	inventory := make([]cardSummary, 0, len(player.Cards))
	for _, cardID := range player.Cards {
		obj, ok, err := s.data.CardObjects.FindOne(r.Context(), docstore.ByID(cardID))
		if err != nil {
			writeError(w, s.logs, err)
			return
		}
		if !ok {
			continue
		}
		summary, err := s.cardObjectSummary(r, obj)
		if err != nil {
			writeError(w, s.logs, err)
			return
		}
		inventory = append(inventory, summary)
	}

	body := map[string]interface{}{
		"success":   true,
		"inventory": inventory,
	}
	if isOwner {
		body["decks"] = player.Decks
	}
	writeJSON(w, http.StatusOK, body)
}

type saveDeckRequest struct {
	DeckIndex int      `json:"deckIndex"`
	Cards     []string `json:"cards"`
}

func (s *Server) handleSaveDeck(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())
	var req saveDeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, s.logs, apperr.ValidationFailed("body", "malformed JSON body"))
		return
	}

	player, ok, err := s.data.FindPlayerByID(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, s.logs, err)
		return
	}
	if !ok {
		writeError(w, s.logs, apperr.NotFound("player"))
		return
	}
	if err := gamelogic.EnsureThreeDecks(r.Context(), s.data, player); err != nil {
		writeError(w, s.logs, err)
		return
	}

	result, err := gamelogic.SaveDeck(r.Context(), s.data, player, req.DeckIndex, req.Cards)
	if err != nil {
		writeError(w, s.logs, err)
		return
	}

	message := "Deck saved."
	if !result.Changed {
		message = "No changes detected."
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": message,
	})
}

func (s *Server) handleSearchUsers(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())
	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, s.logs, apperr.ValidationFailed("name", "query parameter is required"))
		return
	}

	caller, ok, err := s.data.FindPlayerByID(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, s.logs, err)
		return
	}
	if !ok {
		writeError(w, s.logs, apperr.NotFound("player"))
		return
	}

	matches, err := s.data.Players.Find(r.Context(), docstore.Regex("displayName", regexp.QuoteMeta(name), "i"))
	if err != nil {
		writeError(w, s.logs, err)
		return
	}

	type userResult struct {
		ID          string `json:"_id"`
		DisplayName string `json:"displayName"`
		Status      string `json:"status"`
	}
	results := make([]userResult, 0, len(matches))
	for _, m := range matches {
		if m.ID == caller.ID {
			continue
		}
		results = append(results, userResult{
			ID:          m.ID,
			DisplayName: m.DisplayName,
			Status:      string(gamelogic.ComputeStatus(caller, m.ID)),
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"users":   results,
	})
}
