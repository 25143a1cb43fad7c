package combat

import (
	"github.com/akorchagin/mobd/internal/bestiary"
	"github.com/akorchagin/mobd/internal/model"
	"github.com/akorchagin/mobd/internal/world"
)

// EligibleTargets returns the agents self is permitted to attack under its
// archetype's hostility mode, in world insertion order. Pure with respect
// to world state: recomputed from the live agent set on every call.
//
// An empty result is the normal "no eligible target" state: the caller
// skips the attack decision; it is never an error.
func EligibleTargets(self *model.Agent, w *world.World) []*model.Agent {
	arch := self.Archetype()
	if arch == nil {
		// The player agent has no hostility policy; its targets come from
		// player input.
		return nil
	}

	var targets []*model.Agent
	switch arch.Hostility() {
	case bestiary.HostileToEveryone:
		w.ForEach(func(candidate *model.Agent) bool {
			if candidate.ObjectID() != self.ObjectID() && !candidate.IsDead() {
				targets = append(targets, candidate)
			}
			return true
		})

	case bestiary.HostileToOtherSpecies:
		w.ForEach(func(candidate *model.Agent) bool {
			if candidate.ObjectID() != self.ObjectID() &&
				!candidate.IsDead() &&
				candidate.Species() != self.Species() {
				targets = append(targets, candidate)
			}
			return true
		})

	case bestiary.HostileToPlayer:
		if player, ok := w.Player(); ok && !player.IsDead() {
			targets = append(targets, player)
		}
	}
	return targets
}
