package commands

import (
	"github.com/cardforge/server/internal/data"
	"github.com/cardforge/server/internal/tasks"
)

// Dispatcher turns an inbound slash-command event into a submitted
// DiscordCommandTask. It acknowledges the interaction first (the
// chat-tool's gateway requires a fast "thinking" response before the
// real work completes).
type Dispatcher struct {
	registry *Registry
	manager  *tasks.Manager
	cluster  tasks.ClusterHandle
	data     *data.Service
}

func NewDispatcher(registry *Registry, manager *tasks.Manager, cluster tasks.ClusterHandle, svc *data.Service) *Dispatcher {
	return &Dispatcher{registry: registry, manager: manager, cluster: cluster, data: svc}
}

// Dispatch acknowledges the interaction and submits a DiscordCommandTask at
// High priority; the gateway client that actually sent the slash-command
// event is responsible for calling this once it has parsed the event.
func (d *Dispatcher) Dispatch(commandName string, params map[string]string, userID, interactionToken string) {
	_ = d.cluster.RespondToInteraction(interactionToken, "Thinking...")

	d.manager.Submit(tasks.High, &tasks.DiscordCommandTask{
		CommandName:      commandName,
		Params:           params,
		UserID:           userID,
		InteractionToken: interactionToken,
		Cluster:          d.cluster,
		Registry:         d.registry,
		DataService:      d.data,
	})
}
