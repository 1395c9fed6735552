package gamelogic

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/cardforge/server/internal/data"
	"github.com/cardforge/server/internal/docstore"
)

func newTestService(t *testing.T) *data.Service {
	t.Helper()
	store, err := docstore.Open(filepath.Join(t.TempDir(), "packs.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	svc, err := data.NewService(store)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func seedCardReferences(t *testing.T, svc *data.Service, n int) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < n; i++ {
		ref := &data.CardReference{
			Name:  "card",
			Tier:  data.TierChampion,
			Image: "card.png",
		}
		if _, err := svc.CardReferences.InsertOne(ctx, ref); err != nil {
			t.Fatalf("seed card reference: %v", err)
		}
	}
}

func seedPlayer(t *testing.T, svc *data.Service) *data.Player {
	t.Helper()
	p := data.NewPlayer()
	p.Email = "pack-tester@example.com"
	p.DisplayName = "packtester"
	id, err := svc.Players.InsertOne(context.Background(), p)
	if err != nil {
		t.Fatalf("seed player: %v", err)
	}
	p.ID = id
	return p
}

func TestOpenPackForPlayerHappyPath(t *testing.T) {
	svc := newTestService(t)
	seedCardReferences(t, svc, 10)
	player := seedPlayer(t, svc)

	result, err := OpenPackForPlayer(context.Background(), svc, player, 3)
	if err != nil {
		t.Fatalf("open pack: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got message %q", result.Message)
	}
	if len(result.OpenedObjects) != 3 || len(result.OpenedReferences) != 3 {
		t.Fatalf("expected 3 opened cards, got %d objects, %d references", len(result.OpenedObjects), len(result.OpenedReferences))
	}

	updated, ok, err := svc.Players.FindOne(context.Background(), docstore.ByID(player.ID))
	if err != nil || !ok {
		t.Fatalf("reload player: ok=%v err=%v", ok, err)
	}
	if len(updated.Cards) != 3 {
		t.Fatalf("expected player to own 3 cards, got %d", len(updated.Cards))
	}
}

func TestOpenPackForPlayerNotEnoughUniqueCards(t *testing.T) {
	svc := newTestService(t)
	seedCardReferences(t, svc, 2)
	player := seedPlayer(t, svc)

	result, err := OpenPackForPlayer(context.Background(), svc, player, 5)
	if err != nil {
		t.Fatalf("open pack: %v", err)
	}
	if result.Success {
		t.Fatal("expected failure when catalog has fewer references than requested")
	}
	if result.Message != "Not enough unique cards" {
		t.Fatalf("unexpected message: %q", result.Message)
	}
}

func TestOpenPackForPlayerDefaultsKToOne(t *testing.T) {
	svc := newTestService(t)
	seedCardReferences(t, svc, 5)
	player := seedPlayer(t, svc)

	result, err := OpenPackForPlayer(context.Background(), svc, player, 0)
	if err != nil {
		t.Fatalf("open pack: %v", err)
	}
	if len(result.OpenedObjects) != 1 {
		t.Fatalf("expected k<=0 to default to 1, got %d objects", len(result.OpenedObjects))
	}
}

// TestOpenPackIssueNumbersAreMonotonicPerReference opens two packs in
// sequence against a single-reference catalog and checks that numAcquired
// strictly increases and each minted object's Number matches the post-image
// at the moment it was minted, rather than colliding on a stale value.
func TestOpenPackIssueNumbersAreMonotonicPerReference(t *testing.T) {
	svc := newTestService(t)
	seedCardReferences(t, svc, 1)
	player := seedPlayer(t, svc)

	first, err := OpenPackForPlayer(context.Background(), svc, player, 1)
	if err != nil {
		t.Fatalf("open pack 1: %v", err)
	}
	second, err := OpenPackForPlayer(context.Background(), svc, player, 1)
	if err != nil {
		t.Fatalf("open pack 2: %v", err)
	}

	n1 := first.OpenedObjects[0].Number
	n2 := second.OpenedObjects[0].Number
	if n2 <= n1 {
		t.Fatalf("expected strictly increasing issue numbers, got %d then %d", n1, n2)
	}
	if first.OpenedObjects[0].ID == second.OpenedObjects[0].ID {
		t.Fatal("expected distinct card object ids across two pack opens")
	}
}

func TestOpenPackForPlayerEmptyCatalogFails(t *testing.T) {
	svc := newTestService(t)
	player := seedPlayer(t, svc)

	result, err := OpenPackForPlayer(context.Background(), svc, player, 1)
	if err != nil {
		t.Fatalf("open pack: %v", err)
	}
	if result.Success {
		t.Fatal("expected failure for an empty catalog")
	}
}
