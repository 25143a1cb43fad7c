package model

import (
	"sync/atomic"

	"github.com/akorchagin/mobd/internal/bestiary"
)

// PlayerSpecies is the species name of the player agent. Archetype names
// come from the bestiary and never collide with it.
const PlayerSpecies = "player"

// Agent is the runtime state of one spawned creature. Created when an agent
// spawns from an archetype, destroyed when it dies or despawns.
//
// All mutable fields except the death latch are owned by the combat tick
// goroutine; there is no per-field locking.
type Agent struct {
	objectID  uint32
	archetype *bestiary.Archetype // nil for the player agent
	isPlayer  bool

	location  Location
	health    float64
	targetID  uint32
	frozen    bool
	lastHitBy uint32

	// nextAttack is the round-robin cursor over the archetype attack list.
	nextAttack int

	// dead latches exactly one death per agent: first caller wins.
	dead atomic.Bool
}

// NewAgent spawns an agent from an archetype at full health.
func NewAgent(objectID uint32, archetype *bestiary.Archetype) *Agent {
	return &Agent{
		objectID:  objectID,
		archetype: archetype,
		health:    archetype.Health(),
	}
}

// NewPlayerAgent creates the player-controlled agent. It has no archetype;
// its attacks are driven by input, not by the combat director.
func NewPlayerAgent(objectID uint32, health float64) *Agent {
	return &Agent{
		objectID: objectID,
		isPlayer: true,
		health:   health,
	}
}

// ObjectID returns the world-unique agent id.
func (a *Agent) ObjectID() uint32 { return a.objectID }

// Archetype returns the definition this agent was spawned from (nil for the
// player agent).
func (a *Agent) Archetype() *bestiary.Archetype { return a.archetype }

// IsPlayer reports whether this is the player-controlled agent.
func (a *Agent) IsPlayer() bool { return a.isPlayer }

// Species returns the archetype name, or PlayerSpecies for the player.
// Species identity drives OtherSpecies hostility resolution.
func (a *Agent) Species() string {
	if a.isPlayer {
		return PlayerSpecies
	}
	return a.archetype.Name()
}

// Location returns the current position.
func (a *Agent) Location() Location { return a.location }

// SetLocation moves the agent.
func (a *Agent) SetLocation(loc Location) { a.location = loc }

// Health returns current health.
func (a *Agent) Health() float64 { return a.health }

// SetHealth overrides current health (spawning, tests, external effects).
func (a *Agent) SetHealth(health float64) { a.health = health }

// ReduceHealth applies damage, flooring at zero.
func (a *Agent) ReduceHealth(damage float64) {
	a.health = max(a.health-damage, 0)
}

// IsDead reports whether the agent is out of health or already latched dead.
func (a *Agent) IsDead() bool {
	return a.health <= 0 || a.dead.Load()
}

// DoDie latches death. Returns true only for the first caller, so death
// side effects (events, kill log, despawn) run exactly once.
func (a *Agent) DoDie() bool {
	return a.dead.CompareAndSwap(false, true)
}

// Target returns the current target id (0 = none).
func (a *Agent) Target() uint32 { return a.targetID }

// SetTarget sets the current target.
func (a *Agent) SetTarget(objectID uint32) { a.targetID = objectID }

// ClearTarget drops the current target.
func (a *Agent) ClearTarget() { a.targetID = 0 }

// Frozen reports whether target and facing are locked (attack committed).
func (a *Agent) Frozen() bool { return a.frozen }

// SetFrozen locks or unlocks target/facing.
func (a *Agent) SetFrozen(frozen bool) { a.frozen = frozen }

// LastHitBy returns the id of the last agent that damaged this one
// (0 = never hit). Used for kill attribution.
func (a *Agent) LastHitBy() uint32 { return a.lastHitBy }

// SetLastHitBy records the most recent damage source.
func (a *Agent) SetLastHitBy(objectID uint32) { a.lastHitBy = objectID }

// NextAttackIndex advances the round-robin attack cursor and returns the
// index to use. n is the archetype attack list length.
func (a *Agent) NextAttackIndex(n int) int {
	if n <= 0 {
		return 0
	}
	idx := a.nextAttack % n
	a.nextAttack = (a.nextAttack + 1) % n
	return idx
}
