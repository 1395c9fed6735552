package gamelogic

import (
	"context"
	"fmt"

	"github.com/cardforge/server/internal/apperr"
	"github.com/cardforge/server/internal/data"
	"github.com/cardforge/server/internal/docstore"
)

// FriendStatus classifies the relationship between a caller and another
// player from the caller's own lists.
type FriendStatus string

const (
	StatusNone             FriendStatus = "none"
	StatusFriends          FriendStatus = "friends"
	StatusRequestSent      FriendStatus = "request_sent"
	StatusRequestReceived  FriendStatus = "request_received"
)

// ComputeStatus derives caller's relationship to otherID from caller's own
// friend-graph lists, never requiring a second document read.
func ComputeStatus(caller *data.Player, otherID string) FriendStatus {
	if contains(caller.Friends, otherID) {
		return StatusFriends
	}
	if contains(caller.FriendRequestsSent, otherID) {
		return StatusRequestSent
	}
	if contains(caller.FriendRequestsReceived, otherID) {
		return StatusRequestReceived
	}
	return StatusNone
}

// SendFriendRequest transitions (actor, target) from none to
// pendingFromActor.
func SendFriendRequest(ctx context.Context, svc *data.Service, actorID, targetID string) error {
	if actorID == targetID {
		return apperr.ValidationFailed("recipientId", "cannot send a friend request to yourself")
	}
	actor, ok, err := svc.FindPlayerByID(ctx, actorID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("player")
	}
	if _, ok, err := svc.FindPlayerByID(ctx, targetID); err != nil {
		return err
	} else if !ok {
		return apperr.NotFound("player")
	}

	if ComputeStatus(actor, targetID) != StatusNone {
		return apperr.Conflict("A friend relationship or pending request already exists with this user.")
	}

	if _, err := svc.Players.UpdateOne(ctx, docstore.ByID(actorID), docstore.AddToSet("friendRequestsSent", targetID)); err != nil {
		return apperr.Backend(fmt.Errorf("add sent request: %w", err))
	}
	if _, err := svc.Players.UpdateOne(ctx, docstore.ByID(targetID), docstore.AddToSet("friendRequestsReceived", actorID)); err != nil {
		return apperr.Backend(fmt.Errorf("add received request: %w", err))
	}
	return nil
}

// RespondToFriendRequest handles accept/decline (actor is the recipient,
// otherID the sender) and cancel (actor is the sender, otherID the
// recipient).
func RespondToFriendRequest(ctx context.Context, svc *data.Service, actorID, otherID, action string) error {
	actor, ok, err := svc.FindPlayerByID(ctx, actorID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("player")
	}

	switch action {
	case "accept":
		if !contains(actor.FriendRequestsReceived, otherID) {
			return apperr.ValidationFailed("otherUserId", "no pending request from this user")
		}
		if err := becomeFriends(ctx, svc, actorID, otherID); err != nil {
			return err
		}
		return clearPendingBothSides(ctx, svc, actorID, otherID)
	case "decline":
		if !contains(actor.FriendRequestsReceived, otherID) {
			return apperr.ValidationFailed("otherUserId", "no pending request from this user")
		}
		return clearPendingBothSides(ctx, svc, actorID, otherID)
	case "cancel":
		if !contains(actor.FriendRequestsSent, otherID) {
			return apperr.ValidationFailed("otherUserId", "no pending request to this user")
		}
		return clearPendingBothSides(ctx, svc, actorID, otherID)
	default:
		return apperr.ValidationFailed("action", `must be "accept", "decline", or "cancel"`)
	}
}

// RemoveFriend pulls each player from the other's friends list. Idempotent.
func RemoveFriend(ctx context.Context, svc *data.Service, actorID, friendID string) error {
	if _, err := svc.Players.UpdateOne(ctx, docstore.ByID(actorID), docstore.Pull("friends", friendID)); err != nil {
		return apperr.Backend(fmt.Errorf("remove friend: %w", err))
	}
	if _, err := svc.Players.UpdateOne(ctx, docstore.ByID(friendID), docstore.Pull("friends", actorID)); err != nil {
		return apperr.Backend(fmt.Errorf("remove friend (reverse): %w", err))
	}
	return nil
}

func becomeFriends(ctx context.Context, svc *data.Service, aID, bID string) error {
	if _, err := svc.Players.UpdateOne(ctx, docstore.ByID(aID), docstore.AddToSet("friends", bID)); err != nil {
		return apperr.Backend(fmt.Errorf("add friend: %w", err))
	}
	if _, err := svc.Players.UpdateOne(ctx, docstore.ByID(bID), docstore.AddToSet("friends", aID)); err != nil {
		return apperr.Backend(fmt.Errorf("add friend (reverse): %w", err))
	}
	return nil
}

// clearPendingBothSides pulls both request fields on both players,
// intentionally over-deleting so stale cross-state residue (e.g. a prior
// accept that only wrote one side) can't wedge the pair into a state no
// action can exit.
func clearPendingBothSides(ctx context.Context, svc *data.Service, aID, bID string) error {
	if _, err := svc.Players.UpdateOne(ctx, docstore.ByID(aID), docstore.Combine(
		docstore.Pull("friendRequestsSent", bID),
		docstore.Pull("friendRequestsReceived", bID),
	)); err != nil {
		return apperr.Backend(fmt.Errorf("clear pending: %w", err))
	}
	if _, err := svc.Players.UpdateOne(ctx, docstore.ByID(bID), docstore.Combine(
		docstore.Pull("friendRequestsSent", aID),
		docstore.Pull("friendRequestsReceived", aID),
	)); err != nil {
		return apperr.Backend(fmt.Errorf("clear pending (reverse): %w", err))
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
