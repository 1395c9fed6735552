package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cardforge/server/internal/gamelogic"
	"github.com/cardforge/server/internal/tasks"
)

// RegisterDefaults wires the initial command registrations: drop (pack
// open), ping, and collection (an inventory summary, supplementing the
// original catalog's command set).
func RegisterDefaults(reg *Registry) {
	reg.Register("drop", dropHandler{})
	reg.Register("ping", pingHandler{})
	reg.Register("collection", collectionHandler{})
}

type pingHandler struct{}

func (pingHandler) Handle(ctx context.Context, t *tasks.DiscordCommandTask) {
	_ = t.Cluster.RespondToInteraction(t.InteractionToken, "Pong!")
}

type dropHandler struct{}

func (dropHandler) Handle(ctx context.Context, t *tasks.DiscordCommandTask) {
	discordID, err := strconv.ParseInt(t.UserID, 10, 64)
	if err != nil {
		_ = t.Cluster.RespondToInteraction(t.InteractionToken, "Could not resolve your account.")
		return
	}

	player, err := t.DataService.FindOrCreatePlayerByDiscordID(ctx, discordID)
	if err != nil {
		_ = t.Cluster.RespondToInteraction(t.InteractionToken, "Something went wrong opening your pack.")
		return
	}

	result, err := gamelogic.OpenPackForPlayer(ctx, t.DataService, player, 1)
	if err != nil {
		_ = t.Cluster.RespondToInteraction(t.InteractionToken, "Something went wrong opening your pack.")
		return
	}
	if !result.Success {
		_ = t.Cluster.RespondToInteraction(t.InteractionToken, result.Message)
		return
	}

	msg := "You opened:"
	for i, obj := range result.OpenedObjects {
		ref := result.OpenedReferences[i]
		msg += fmt.Sprintf("\n- %s (#%d)", ref.Name, obj.Number)
	}
	_ = t.Cluster.RespondToInteraction(t.InteractionToken, msg)
}

type collectionHandler struct{}

func (collectionHandler) Handle(ctx context.Context, t *tasks.DiscordCommandTask) {
	discordID, err := strconv.ParseInt(t.UserID, 10, 64)
	if err != nil {
		_ = t.Cluster.RespondToInteraction(t.InteractionToken, "Could not resolve your account.")
		return
	}

	player, err := t.DataService.FindOrCreatePlayerByDiscordID(ctx, discordID)
	if err != nil {
		_ = t.Cluster.RespondToInteraction(t.InteractionToken, "Something went wrong fetching your collection.")
		return
	}

	filledDecks := 0
	for _, d := range player.Decks {
		if len(d) > 0 {
			filledDecks++
		}
	}

	_ = t.Cluster.RespondToInteraction(t.InteractionToken, fmt.Sprintf(
		"Cards: %d | Decks filled: %d/%d | Essence: %d | Pity: %d",
		len(player.Cards), filledDecks, len(player.Decks), player.Essence, player.PityScore,
	))
}
