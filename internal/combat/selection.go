package combat

import (
	"fmt"
	"math/rand/v2"

	"github.com/akorchagin/mobd/internal/bestiary"
	"github.com/akorchagin/mobd/internal/model"
)

// TargetPolicy picks one target from a non-empty eligible set.
type TargetPolicy func(self *model.Agent, candidates []*model.Agent) *model.Agent

// NearestTarget picks the closest candidate. Ties go to the earlier-spawned
// agent (candidates arrive in world insertion order).
func NearestTarget(self *model.Agent, candidates []*model.Agent) *model.Agent {
	var best *model.Agent
	var bestDistSq float64
	from := self.Location()
	for _, c := range candidates {
		distSq := from.DistanceSquared(c.Location())
		if best == nil || distSq < bestDistSq {
			best = c
			bestDistSq = distSq
		}
	}
	return best
}

// RandomTarget picks a uniformly random candidate.
func RandomTarget(_ *model.Agent, candidates []*model.Agent) *model.Agent {
	return candidates[rand.IntN(len(candidates))]
}

// ParseTargetPolicy maps a config token to a TargetPolicy.
func ParseTargetPolicy(name string) (TargetPolicy, error) {
	switch name {
	case "", "nearest":
		return NearestTarget, nil
	case "random":
		return RandomTarget, nil
	default:
		return nil, fmt.Errorf("unknown target policy %q", name)
	}
}

// AttackPolicy picks an index into the archetype's ordered, non-empty
// attack animation list. Whatever the policy picks, the director honors the
// same two-threshold timing contract.
type AttackPolicy func(self *model.Agent, attacks []bestiary.AttackAnimation) int

// RandomAttack picks a uniformly random attack from the pool.
func RandomAttack(_ *model.Agent, attacks []bestiary.AttackAnimation) int {
	return rand.IntN(len(attacks))
}

// RoundRobinAttack cycles through the attack list in authored order, with a
// per-agent cursor.
func RoundRobinAttack(self *model.Agent, attacks []bestiary.AttackAnimation) int {
	return self.NextAttackIndex(len(attacks))
}

// ParseAttackPolicy maps a config token to an AttackPolicy.
func ParseAttackPolicy(name string) (AttackPolicy, error) {
	switch name {
	case "", "random":
		return RandomAttack, nil
	case "round_robin":
		return RoundRobinAttack, nil
	default:
		return nil, fmt.Errorf("unknown attack policy %q", name)
	}
}
