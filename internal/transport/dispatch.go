package transport

import (
	"context"
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/cardforge/server/internal/corecrypto"
	"github.com/cardforge/server/internal/data"
	"github.com/cardforge/server/internal/gamelogic"
	"github.com/cardforge/server/internal/tasks"
)

// Dispatcher decodes deferred wire frames into WebRequestTasks and submits
// them to the TaskManager, LZ4-compressing structpb-encoded payloads in
// both directions the same way the fleet's federation link does for
// cross-server traffic.
type Dispatcher struct {
	manager *tasks.Manager
	data    *data.Service
}

func NewDispatcher(manager *tasks.Manager, svc *data.Service) *Dispatcher {
	return &Dispatcher{manager: manager, data: svc}
}

// HandleFrame decodes raw and, if it is a deferred frame type, submits the
// corresponding WebRequestTask. respond, if non-nil, is called with the
// encoded response frame once the task completes. Time-critical frames
// (high bit clear) are rejected — they belong to the fast path, which is
// out of scope for the core.
func (d *Dispatcher) HandleFrame(raw []byte, userID string, respond func(FrameType, []byte)) error {
	frame, err := DecodeFrame(raw)
	if err != nil {
		return err
	}
	if !frame.Type.IsDeferred() {
		return fmt.Errorf("transport: frame type %#x is time-critical, not handled by the core", byte(frame.Type))
	}

	payloadBytes, err := corecrypto.Decompress(frame.Payload)
	if err != nil {
		return fmt.Errorf("transport: decompress payload: %w", err)
	}

	var pb structpb.Struct
	if err := proto.Unmarshal(payloadBytes, &pb); err != nil {
		return fmt.Errorf("transport: decode payload: %w", err)
	}
	payload := pb.AsMap()

	switch frame.Type {
	case C2SRequestOpenPack:
		d.manager.Submit(tasks.High, &tasks.WebRequestTask{
			FrameType: byte(frame.Type),
			UserID:    userID,
			Payload:   payload,
			Handle:    d.handleOpenPack(userID),
			Respond:   respondWith(respond, S2CResponseOpenPack),
		})
	case C2SRequestInventory:
		d.manager.Submit(tasks.Standard, &tasks.WebRequestTask{
			FrameType: byte(frame.Type),
			UserID:    userID,
			Payload:   payload,
			Handle:    d.handleInventory(userID),
			Respond:   respondWith(respond, S2CResponseInventory),
		})
	default:
		return fmt.Errorf("transport: unrecognized deferred frame type %#x", byte(frame.Type))
	}

	return nil
}

func (d *Dispatcher) handleOpenPack(userID string) func(context.Context, map[string]interface{}) (map[string]interface{}, error) {
	return func(ctx context.Context, _ map[string]interface{}) (map[string]interface{}, error) {
		player, ok, err := d.data.FindPlayerByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("transport: unknown player %s", userID)
		}
		result, err := gamelogic.OpenPackForPlayer(ctx, d.data, player, 1)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"success": result.Success, "message": result.Message}, nil
	}
}

func (d *Dispatcher) handleInventory(userID string) func(context.Context, map[string]interface{}) (map[string]interface{}, error) {
	return func(ctx context.Context, _ map[string]interface{}) (map[string]interface{}, error) {
		player, ok, err := d.data.FindPlayerByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("transport: unknown player %s", userID)
		}
		cards := make([]interface{}, len(player.Cards))
		for i, c := range player.Cards {
			cards[i] = c
		}
		return map[string]interface{}{"cards": cards}, nil
	}
}

func respondWith(respond func(FrameType, []byte), okType FrameType) func(map[string]interface{}, error) {
	return func(result map[string]interface{}, handleErr error) {
		if respond == nil {
			return
		}
		if handleErr != nil {
			result = map[string]interface{}{"success": false, "message": handleErr.Error()}
		}
		out, err := encodePayload(result)
		if err != nil {
			return
		}
		respond(okType, out)
	}
}

func encodePayload(result map[string]interface{}) ([]byte, error) {
	pb, err := structpb.NewStruct(result)
	if err != nil {
		return nil, fmt.Errorf("transport: encode payload: %w", err)
	}
	raw, err := proto.Marshal(pb)
	if err != nil {
		return nil, fmt.Errorf("transport: marshal payload: %w", err)
	}
	return corecrypto.Compress(raw), nil
}
