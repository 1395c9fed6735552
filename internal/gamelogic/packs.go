// Package gamelogic implements the pack-opening transaction, the one
// mutating operation of consequence in the core.
package gamelogic

import (
	"context"
	"fmt"
	"time"

	"github.com/cardforge/server/internal/apperr"
	"github.com/cardforge/server/internal/data"
	"github.com/cardforge/server/internal/docstore"
)

// PackOpeningResult is the outcome of OpenPackForPlayer.
type PackOpeningResult struct {
	Success           bool
	Message           string
	OpenedReferences  []*data.CardReference
	OpenedObjects     []*data.CardObject
}

// OpenPackForPlayer draws k random card references and mints one owned
// CardObject per reference for player.
//
// The increment on the reference's numAcquired happens via
// FindOneAndUpdate BEFORE the CardObject insert, and the returned
// post-image supplies the issue number. This is the corrected ordering the
// design calls for: incrementing after insertion (as the original source
// does) lets a crash between insert and increment leave the object's number
// stale, so a later draw can mint a second object with the same number for
// the same reference. Doing the increment first can only leave a "ghost"
// increment with no matching object if the insert subsequently fails,
// which is benign — numAcquired is documented as monotonic, not as an
// exact live count.
func OpenPackForPlayer(ctx context.Context, svc *data.Service, player *data.Player, k int) (*PackOpeningResult, error) {
	if k <= 0 {
		k = 1
	}

	drawn, err := svc.CardReferences.FindRandom(ctx, docstore.Empty(), k, false)
	if err != nil {
		return nil, apperr.Backend(fmt.Errorf("draw card references: %w", err))
	}
	if len(drawn) < k {
		return &PackOpeningResult{Success: false, Message: "Not enough unique cards"}, nil
	}

	result := &PackOpeningResult{
		Success:          true,
		OpenedReferences: make([]*data.CardReference, 0, len(drawn)),
		OpenedObjects:    make([]*data.CardObject, 0, len(drawn)),
	}

	for _, ref := range drawn {
		updated, ok, err := svc.CardReferences.FindOneAndUpdate(ctx, docstore.ByID(ref.ID), docstore.Inc("numAcquired", 1))
		if err != nil {
			return nil, apperr.Backend(fmt.Errorf("increment numAcquired for %s: %w", ref.ID, err))
		}
		if !ok {
			return nil, apperr.Backend(fmt.Errorf("card reference %s vanished mid-transaction", ref.ID))
		}

		obj := &data.CardObject{
			CardReferenceID:     updated.ID,
			OwnerID:             player.ID,
			Number:              updated.NumAcquired,
			AttackPoints:        0,
			HealthPoints:        0,
			OwnerHistory:        []string{player.ID},
			LastAcquisitionDate: time.Now(),
		}

		objID, err := svc.CardObjects.InsertOne(ctx, obj)
		if err != nil {
			return nil, apperr.Backend(fmt.Errorf("insert card object: %w", err))
		}
		obj.ID = objID

		if _, err := svc.Players.UpdateOne(ctx, docstore.ByID(player.ID), docstore.Push("cards", obj.ID)); err != nil {
			return nil, apperr.Backend(fmt.Errorf("append card to player inventory: %w", err))
		}

		result.OpenedReferences = append(result.OpenedReferences, updated)
		result.OpenedObjects = append(result.OpenedObjects, obj)
	}

	result.Message = "Pack opened successfully."
	return result, nil
}
