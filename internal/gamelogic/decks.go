package gamelogic

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/cardforge/server/internal/apperr"
	"github.com/cardforge/server/internal/data"
	"github.com/cardforge/server/internal/docstore"
)

const deckCount = 3

// EnsureThreeDecks pads player.Decks to exactly three entries, both in the
// in-memory value and, for each missing deck, with a persisted
// push("decks", []) — idempotent on retry since each push only ever adds
// one more empty deck and callers re-check length before padding again.
func EnsureThreeDecks(ctx context.Context, svc *data.Service, player *data.Player) error {
	for len(player.Decks) < deckCount {
		if _, err := svc.Players.UpdateOne(ctx, docstore.ByID(player.ID), docstore.Push("decks", []string{})); err != nil {
			return apperr.Backend(fmt.Errorf("pad decks: %w", err))
		}
		player.Decks = append(player.Decks, []string{})
	}
	return nil
}

// SaveDeckResult reports whether a write actually happened.
type SaveDeckResult struct {
	Changed bool
}

// SaveDeck validates deckIndex against the player's current deck count,
// rejects any card id the player doesn't own, and, if the requested card
// set differs (order-insensitively) from what's stored, persists it.
// Returns Changed=false without touching the store when the sets are equal.
func SaveDeck(ctx context.Context, svc *data.Service, player *data.Player, deckIndex int, cards []string) (*SaveDeckResult, error) {
	if deckIndex < 0 || deckIndex >= len(player.Decks) {
		return nil, apperr.ValidationFailed("deckIndex", fmt.Sprintf("deckIndex must be between 0 and %d", len(player.Decks)-1))
	}

	if unowned := firstUnowned(player.Cards, cards); unowned != "" {
		return nil, apperr.ValidationFailed("cards", fmt.Sprintf("card %s is not owned by this player", unowned))
	}

	if sameSet(player.Decks[deckIndex], cards) {
		return &SaveDeckResult{Changed: false}, nil
	}

	field := "decks." + strconv.Itoa(deckIndex)
	if _, err := svc.Players.UpdateOne(ctx, docstore.ByID(player.ID), docstore.Set(field, cards)); err != nil {
		return nil, apperr.Backend(fmt.Errorf("save deck: %w", err))
	}
	return &SaveDeckResult{Changed: true}, nil
}

// firstUnowned returns the first id in cards that isn't present in owned,
// or "" if every id is owned.
func firstUnowned(owned, cards []string) string {
	ownedSet := make(map[string]struct{}, len(owned))
	for _, id := range owned {
		ownedSet[id] = struct{}{}
	}
	for _, id := range cards {
		if _, ok := ownedSet[id]; !ok {
			return id
		}
	}
	return ""
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	sa := append([]string{}, a...)
	sb := append([]string{}, b...)
	sort.Strings(sa)
	sort.Strings(sb)
	for i := range sa {
		if sa[i] != sb[i] {
			return false
		}
	}
	return true
}
