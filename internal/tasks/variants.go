package tasks

import (
	"context"
	"fmt"

	"github.com/cardforge/server/internal/data"
)

// MessageTask is a diagnostic echo: it writes the message text to the sink
// it carries. The processing worker's identity is not included.
type MessageTask struct {
	Text string
	Sink func(line string)
}

func (t *MessageTask) Process(ctx context.Context) {
	if t.Sink != nil {
		t.Sink(t.Text)
	}
}

// CommandHandler is the capability a registered chat-command handler
// implements. Defined here (rather than imported from the commands
// package) so DiscordCommandTask can carry a handler/registry/cluster
// reference without tasks depending on commands — commands depends on
// tasks to submit work, not the other way around.
type CommandHandler interface {
	Handle(ctx context.Context, t *DiscordCommandTask)
}

// CommandRegistry resolves a command name to its handler.
type CommandRegistry interface {
	GetHandler(name string) (CommandHandler, bool)
}

// ClusterHandle is the capability to respond to an outstanding chat
// interaction.
type ClusterHandle interface {
	RespondToInteraction(interactionToken, message string) error
}

// DiscordCommandTask carries everything a command handler needs: the
// command name and parameters, the invoking user, the interaction token to
// reply under, and references to the cluster handle, the command registry,
// and the data service. No global state is consulted during Process.
type DiscordCommandTask struct {
	CommandName      string
	Params           map[string]string
	UserID           string
	InteractionToken string
	Cluster          ClusterHandle
	Registry         CommandRegistry
	DataService      *data.Service
}

func (t *DiscordCommandTask) Process(ctx context.Context) {
	handler, ok := t.Registry.GetHandler(t.CommandName)
	if !ok {
		_ = t.Cluster.RespondToInteraction(t.InteractionToken, fmt.Sprintf("Command %q is not implemented.", t.CommandName))
		return
	}
	handler.Handle(ctx, t)
}

// WebRequestTask is the reserved extension point for deferred
// reliable-transport requests; the transport layer decodes a frame into one
// of these and submits it for processing off the connection's own
// goroutine.
type WebRequestTask struct {
	FrameType byte
	UserID    string
	Payload   map[string]interface{}
	Handle    func(ctx context.Context, payload map[string]interface{}) (map[string]interface{}, error)
	Respond   func(result map[string]interface{}, err error)
}

func (t *WebRequestTask) Process(ctx context.Context) {
	if t.Handle == nil {
		return
	}
	result, err := t.Handle(ctx, t.Payload)
	if t.Respond != nil {
		t.Respond(result, err)
	}
}
