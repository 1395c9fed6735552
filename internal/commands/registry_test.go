package commands

import (
	"context"
	"testing"

	"github.com/cardforge/server/internal/tasks"
)

type fakeHandler struct{ called bool }

func (f *fakeHandler) Handle(ctx context.Context, t *tasks.DiscordCommandTask) { f.called = true }

func TestRegistryRegisterAndLookup(t *testing.T) {
	reg := NewRegistry()
	h := &fakeHandler{}
	reg.Register("drop", h)

	got, ok := reg.GetHandler("drop")
	if !ok {
		t.Fatal("expected drop to be registered")
	}
	if got != tasks.CommandHandler(h) {
		t.Fatal("expected the exact registered handler back")
	}
}

func TestRegistryLookupMissReturnsFalse(t *testing.T) {
	reg := NewRegistry()
	_, ok := reg.GetHandler("nonexistent")
	if ok {
		t.Fatal("expected lookup of an unregistered command to fail")
	}
}

func TestRegisterDefaultsWiresExpectedCommands(t *testing.T) {
	reg := NewRegistry()
	RegisterDefaults(reg)

	for _, name := range []string{"drop", "ping", "collection"} {
		if _, ok := reg.GetHandler(name); !ok {
			t.Errorf("expected default command %q to be registered", name)
		}
	}
}
