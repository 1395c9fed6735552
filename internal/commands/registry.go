// Package commands implements the chat-command dispatch table: resolving a
// slash-command name to a handler and building the DiscordCommandTask the
// TaskManager executes it as.
package commands

import (
	"sync"

	"github.com/cardforge/server/internal/tasks"
)

// Registry maps command names to handlers. Safe for concurrent registration
// and lookup.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]tasks.CommandHandler
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]tasks.CommandHandler)}
}

func (r *Registry) Register(name string, handler tasks.CommandHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = handler
}

func (r *Registry) GetHandler(name string) (tasks.CommandHandler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[name]
	return h, ok
}
