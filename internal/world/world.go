package world

import (
	"fmt"
	"sync"

	"github.com/akorchagin/mobd/internal/model"
)

// World is the live agent registry. Iteration follows insertion order so a
// fixed spawn sequence plus a fixed dt sequence replays the same tick
// outcomes; combat must stay deterministic.
type World struct {
	mu     sync.RWMutex
	agents map[uint32]*model.Agent
	order  []uint32
	ids    *ObjectIDGenerator
}

// New creates an empty world.
func New() *World {
	return &World{
		agents: make(map[uint32]*model.Agent),
		ids:    NewObjectIDGenerator(),
	}
}

// IDs returns the world's object ID generator.
func (w *World) IDs() *ObjectIDGenerator { return w.ids }

// AddAgent registers an agent. Fails on a duplicate object ID.
func (w *World) AddAgent(agent *model.Agent) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := agent.ObjectID()
	if _, exists := w.agents[id]; exists {
		return fmt.Errorf("agent %d already in world", id)
	}
	w.agents[id] = agent
	w.order = append(w.order, id)
	return nil
}

// Remove deletes an agent. Returns the removed agent and whether it existed.
func (w *World) Remove(objectID uint32) (*model.Agent, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	agent, ok := w.agents[objectID]
	if !ok {
		return nil, false
	}
	delete(w.agents, objectID)
	for i, id := range w.order {
		if id == objectID {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	return agent, true
}

// Get returns an agent by object ID.
func (w *World) Get(objectID uint32) (*model.Agent, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	agent, ok := w.agents[objectID]
	return agent, ok
}

// Player returns the player agent, if one is in the world.
func (w *World) Player() (*model.Agent, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, id := range w.order {
		if a := w.agents[id]; a.IsPlayer() {
			return a, true
		}
	}
	return nil, false
}

// ForEach calls fn for every agent in insertion order until fn returns
// false.
func (w *World) ForEach(fn func(*model.Agent) bool) {
	for _, agent := range w.Agents() {
		if !fn(agent) {
			return
		}
	}
}

// Agents returns a snapshot of all agents in insertion order.
func (w *World) Agents() []*model.Agent {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]*model.Agent, 0, len(w.order))
	for _, id := range w.order {
		out = append(out, w.agents[id])
	}
	return out
}

// Count returns the number of live agents.
func (w *World) Count() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.agents)
}
