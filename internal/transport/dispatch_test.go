package transport

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/cardforge/server/internal/corecrypto"
	"github.com/cardforge/server/internal/data"
	"github.com/cardforge/server/internal/docstore"
	"github.com/cardforge/server/internal/tasks"
)

func testContext() context.Context { return context.Background() }

func newTestDispatcher(t *testing.T) (*Dispatcher, *tasks.Manager, *data.Service) {
	t.Helper()
	store, err := docstore.Open(filepath.Join(t.TempDir(), "transport.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	svc, err := data.NewService(store)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	m := tasks.NewManager(1)
	m.Start(context.Background())
	t.Cleanup(m.Shutdown)

	return NewDispatcher(m, svc), m, svc
}

func encodeTestPayload(t *testing.T, fields map[string]interface{}) []byte {
	t.Helper()
	pb, err := structpb.NewStruct(fields)
	if err != nil {
		t.Fatalf("build struct: %v", err)
	}
	raw, err := proto.Marshal(pb)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return corecrypto.Compress(raw)
}

func TestHandleFrameRejectsTimeCriticalType(t *testing.T) {
	d, _, _ := newTestDispatcher(t)
	raw := EncodeFrame(C2SRequestInventory&0x7f, []byte{})
	err := d.HandleFrame(raw, "user-1", nil)
	if err == nil {
		t.Fatal("expected an error for a non-deferred frame type")
	}
}

func TestHandleFrameOpenPackDispatchesAndResponds(t *testing.T) {
	d, _, svc := newTestDispatcher(t)

	player := data.NewPlayer()
	player.Email = "transport@example.com"
	player.DisplayName = "transporter"
	id, err := svc.Players.InsertOne(testContext(), player)
	if err != nil {
		t.Fatalf("seed player: %v", err)
	}
	player.ID = id

	if _, err := svc.CardReferences.InsertOne(testContext(), &data.CardReference{Name: "card", Tier: data.TierChampion}); err != nil {
		t.Fatalf("seed card reference: %v", err)
	}

	payload := encodeTestPayload(t, map[string]interface{}{})
	raw := EncodeFrame(C2SRequestOpenPack, payload)

	responded := make(chan struct{}, 1)
	var gotType FrameType
	err = d.HandleFrame(raw, player.ID, func(ft FrameType, out []byte) {
		gotType = ft
		responded <- struct{}{}
	})
	if err != nil {
		t.Fatalf("handle frame: %v", err)
	}

	select {
	case <-responded:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for response callback")
	}
	if gotType != S2CResponseOpenPack {
		t.Fatalf("expected response type %#x, got %#x", S2CResponseOpenPack, gotType)
	}
}
