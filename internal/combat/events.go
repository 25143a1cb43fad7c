package combat

// EventKind identifies a combat event on the wire (journal, feed, kill log).
type EventKind string

const (
	// EventAttackStarted - an agent began an attack animation (windup)
	EventAttackStarted EventKind = "attack_started"
	// EventAttackCommitted - stick timestamp passed; target/facing locked
	EventAttackCommitted EventKind = "attack_committed"
	// EventHitLanded - hit timestamp passed with the target in range
	EventHitLanded EventKind = "hit_landed"
	// EventHitMissed - hit timestamp passed but the target was gone or out
	// of range; a designed no-damage outcome, not a failure
	EventHitMissed EventKind = "hit_missed"
	// EventAttackFinished - the attack clip played out
	EventAttackFinished EventKind = "attack_finished"
	// EventShotFired - a weapon-capable agent fired a shot; damage applied
	// with the shot (instant ray resolution)
	EventShotFired EventKind = "shot_fired"
	// EventAgentDied - an agent ran out of health and left the world
	EventAgentDied EventKind = "agent_died"
)

// Event is one combat occurrence, emitted by the director to all sinks.
// The animation and sound layers key off the attack state changes; the
// damage events carry everything needed for kill attribution.
type Event struct {
	Kind      EventKind `json:"kind"`
	Tick      uint64    `json:"tick"`
	AgentID   uint32    `json:"agent_id"`
	Archetype string    `json:"archetype,omitempty"`
	TargetID  uint32    `json:"target_id,omitempty"`
	Animation string    `json:"animation,omitempty"`
	Weapon    string    `json:"weapon,omitempty"`
	Sound     string    `json:"sound,omitempty"`
	Damage    float64   `json:"damage,omitempty"`
	Elapsed   float64   `json:"elapsed,omitempty"`

	// Kill attribution, set on EventAgentDied.
	KillerID        uint32 `json:"killer_id,omitempty"`
	KillerArchetype string `json:"killer_archetype,omitempty"`
}

// Sink consumes combat events. Called synchronously on the tick goroutine,
// so implementations must not block; hand off to a channel or goroutine
// for slow destinations.
type Sink interface {
	HandleEvent(Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event)

// HandleEvent calls f(event).
func (f SinkFunc) HandleEvent(event Event) { f(event) }
