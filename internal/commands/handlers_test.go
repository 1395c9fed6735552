package commands

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/cardforge/server/internal/data"
	"github.com/cardforge/server/internal/docstore"
	"github.com/cardforge/server/internal/tasks"
)

type recordingCluster struct {
	mu       sync.Mutex
	messages []string
}

func (c *recordingCluster) RespondToInteraction(interactionToken, message string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, message)
	return nil
}

func (c *recordingCluster) last() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.messages) == 0 {
		return ""
	}
	return c.messages[len(c.messages)-1]
}

func newTestDataService(t *testing.T) *data.Service {
	t.Helper()
	store, err := docstore.Open(filepath.Join(t.TempDir(), "commands.db"))
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

func TestPingHandlerReplies(t *testing.T) {
	cluster := &recordingCluster{}
	task := &tasks.DiscordCommandTask{Cluster: cluster, InteractionToken: "tok-1"}
	pingHandler{}.Handle(context.Background(), task)
	if cluster.last() != "Pong!" {
		t.Fatalf("expected Pong!, got %q", cluster.last())
	}
}

func TestDropHandlerOpensPackAndReports(t *testing.T) {
	svc := newTestDataService(t)
	if _, err := svc.CardReferences.InsertOne(context.Background(), &data.CardReference{Name: "Volt Wyrm", Tier: data.TierChampion}); err != nil {
		t.Fatalf("seed card reference: %v", err)
	}

	cluster := &recordingCluster{}
	task := &tasks.DiscordCommandTask{
		Cluster:          cluster,
		InteractionToken: "tok-2",
		UserID:           "123456789",
		DataService:      svc,
	}
	dropHandler{}.Handle(context.Background(), task)

	msg := cluster.last()
	if !strings.Contains(msg, "Volt Wyrm") {
		t.Fatalf("expected response to mention the opened card, got %q", msg)
	}
}

func TestDropHandlerRejectsUnparsableUserID(t *testing.T) {
	cluster := &recordingCluster{}
	task := &tasks.DiscordCommandTask{Cluster: cluster, InteractionToken: "tok-3", UserID: "not-a-number"}
	dropHandler{}.Handle(context.Background(), task)
	if cluster.last() != "Could not resolve your account." {
		t.Fatalf("unexpected message: %q", cluster.last())
	}
}

func TestCollectionHandlerSummarizesState(t *testing.T) {
	svc := newTestDataService(t)
	discordID := int64(42)
	player, err := svc.FindOrCreatePlayerByDiscordID(context.Background(), discordID)
	if err != nil {
		t.Fatalf("find or create: %v", err)
	}
	player.Essence = 500
	if _, err := svc.Players.UpdateOne(context.Background(), docstore.ByID(player.ID), docstore.Set("essence", 500)); err != nil {
		t.Fatalf("set essence: %v", err)
	}

	cluster := &recordingCluster{}
	task := &tasks.DiscordCommandTask{
		Cluster:          cluster,
		InteractionToken: "tok-4",
		UserID:           strconv.FormatInt(discordID, 10),
		DataService:      svc,
	}
	collectionHandler{}.Handle(context.Background(), task)

	msg := cluster.last()
	if !strings.Contains(msg, "Essence: 500") {
		t.Fatalf("expected message to report essence, got %q", msg)
	}
}

func TestDiscordCommandTaskRespondsNotImplementedForUnknownCommand(t *testing.T) {
	cluster := &recordingCluster{}
	reg := NewRegistry()
	task := &tasks.DiscordCommandTask{
		CommandName:      "nonexistent",
		Cluster:          cluster,
		Registry:         reg,
		InteractionToken: "tok-5",
	}
	task.Process(context.Background())
	if !strings.Contains(cluster.last(), "not implemented") {
		t.Fatalf("expected a not-implemented message, got %q", cluster.last())
	}
}
