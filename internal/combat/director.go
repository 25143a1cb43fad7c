package combat

import (
	"fmt"
	"log/slog"

	"github.com/akorchagin/mobd/internal/bestiary"
	"github.com/akorchagin/mobd/internal/model"
	"github.com/akorchagin/mobd/internal/world"
)

// ClipDurations resolves an animation path to its clip length in seconds.
// The real implementation lives with the animation loader; 0 means the clip
// could not be resolved and the timeline degrades to stop-on-signal.
type ClipDurations interface {
	ClipDuration(path string) float64
}

// StaticDurations is a fixed path-to-seconds table (config-fed default
// implementation of ClipDurations).
type StaticDurations map[string]float64

// ClipDuration returns the table entry, or 0 for unknown paths.
func (d StaticDurations) ClipDuration(path string) float64 { return d[path] }

// Config tunes the director.
type Config struct {
	// WeaponRange is the shot reach of weapon-capable archetypes, meters.
	WeaponRange float64
	// Weapon is the weapon kind wielded by weapon-capable archetypes.
	Weapon WeaponKind
	// TargetPolicy picks the victim from the eligible set (default nearest).
	TargetPolicy TargetPolicy
	// AttackPolicy picks the attack animation (default random).
	AttackPolicy AttackPolicy
}

const defaultWeaponRange = 10.0

// activeAttack binds one live timeline to its attacker and locked target.
type activeAttack struct {
	attackerID uint32
	targetID   uint32
	attack     bestiary.AttackAnimation
	timeline   *Timeline
}

// Director orchestrates combat for all agents, once per tick:
//
//  1. death sweep: health checks run before any timeline advances, so a
//     hit pending from an agent killed this tick is void;
//  2. target acquisition for idle agents (hostility resolution, policy
//     pick, range gate);
//  3. timeline advancement and transition handling (commit lock, damage
//     dispatch with an at-that-instant range check, cleanup).
//
// Single-threaded by contract: every method that mutates agents must be
// called from the tick goroutine.
type Director struct {
	world     *world.World
	durations ClipDurations
	cfg       Config

	tick    uint64
	clock   float64 // simulation seconds, gates weapon shot intervals
	active  map[uint32]*activeAttack
	order   []uint32 // attacker ids in start order, deterministic advancement
	weapons map[uint32]*Weapon
	sinks   []Sink
}

// NewDirector creates a Director over the given world. Missing config
// fields fall back to defaults (nearest target, random attack, 10m weapon
// range).
func NewDirector(w *world.World, durations ClipDurations, cfg Config) *Director {
	if cfg.WeaponRange <= 0 {
		cfg.WeaponRange = defaultWeaponRange
	}
	if cfg.TargetPolicy == nil {
		cfg.TargetPolicy = NearestTarget
	}
	if cfg.AttackPolicy == nil {
		cfg.AttackPolicy = RandomAttack
	}
	if durations == nil {
		durations = StaticDurations(nil)
	}
	return &Director{
		world:     w,
		durations: durations,
		cfg:       cfg,
		active:    make(map[uint32]*activeAttack),
		weapons:   make(map[uint32]*Weapon),
	}
}

// AddSink registers an event sink. Not safe once ticking has started.
func (d *Director) AddSink(sink Sink) {
	d.sinks = append(d.sinks, sink)
}

// TickCount returns the number of completed ticks.
func (d *Director) TickCount() uint64 { return d.tick }

// ActiveAttacks returns the number of in-progress attack timelines.
func (d *Director) ActiveAttacks() int { return len(d.active) }

// Tick advances the whole combat simulation by dt seconds of real time.
func (d *Director) Tick(dt float64) {
	d.tick++
	d.clock += dt
	d.sweepDead()
	d.acquireTargets()
	d.advanceTimelines(dt)
}

// sweepDead latches deaths and voids the dead agents' pending attacks.
// Runs before advancement: an attacker killed on this tick never lands a
// hit that was due on this tick.
func (d *Director) sweepDead() {
	for _, agent := range d.world.Agents() {
		if agent.Health() > 0 || !agent.DoDie() {
			continue
		}

		d.cancelAttack(agent.ObjectID())
		delete(d.weapons, agent.ObjectID())
		agent.SetFrozen(false)
		agent.ClearTarget()
		d.world.Remove(agent.ObjectID())

		event := Event{
			Kind:      EventAgentDied,
			Tick:      d.tick,
			AgentID:   agent.ObjectID(),
			Archetype: agent.Species(),
		}
		if killerID := agent.LastHitBy(); killerID != 0 {
			event.KillerID = killerID
			if killer, ok := d.world.Get(killerID); ok {
				event.KillerArchetype = killer.Species()
			}
		}
		d.emit(event)

		slog.Info("agent died",
			"objectID", agent.ObjectID(),
			"species", agent.Species(),
			"killerID", agent.LastHitBy())
	}
}

// acquireTargets runs the attack decision for every idle, live,
// director-driven agent with an eligible target: a melee attack when the
// archetype has attack animations and the target is in close-combat reach,
// otherwise a weapon shot when the archetype is weapon-capable and the
// target is inside weapon range. Agents with no eligible target simply
// skip the decision (normal state, no event).
func (d *Director) acquireTargets() {
	for _, agent := range d.world.Agents() {
		if agent.IsPlayer() || agent.IsDead() {
			continue
		}
		if _, busy := d.active[agent.ObjectID()]; busy {
			continue
		}

		candidates := EligibleTargets(agent, d.world)
		if len(candidates) == 0 {
			continue
		}
		target := d.cfg.TargetPolicy(agent, candidates)
		if target == nil {
			continue
		}

		// Closing the distance is the movement layer's job; out of reach
		// means no decision this tick.
		arch := agent.Archetype()
		dist := agent.Location().Distance(target.Location())
		switch {
		case len(arch.Attacks()) > 0 && dist <= arch.CloseCombatDistance():
			d.startAttack(agent, target)
		case arch.CanUseWeapons() && dist <= d.cfg.WeaponRange:
			d.tryShoot(agent, target)
		}
	}
}

// tryShoot fires the agent's weapon at the target if the per-kind shoot
// interval has elapsed and ammo remains. A shot resolves instantly (ray
// cast in the source collaborator) and the target is already known to be
// in range, so damage applies with the shot.
func (d *Director) tryShoot(attacker, target *model.Agent) {
	weapon, ok := d.weapons[attacker.ObjectID()]
	if !ok {
		weapon = NewWeapon(d.cfg.Weapon)
		d.weapons[attacker.ObjectID()] = weapon
	}
	if !weapon.TryShoot(d.clock) {
		return
	}

	damage := weapon.Definition().Damage()
	target.ReduceHealth(damage)
	target.SetLastHitBy(attacker.ObjectID())

	d.emit(Event{
		Kind:      EventShotFired,
		Tick:      d.tick,
		AgentID:   attacker.ObjectID(),
		Archetype: attacker.Species(),
		TargetID:  target.ObjectID(),
		Weapon:    weapon.Kind().String(),
		Damage:    damage,
		Sound:     weapon.Definition().ShotSound(),
	})

	slog.Debug("shot fired",
		"attacker", attacker.ObjectID(),
		"target", target.ObjectID(),
		"weapon", weapon.Kind(),
		"damage", damage,
		"ammo", weapon.Ammo(),
		"targetHealth", target.Health())
}

// StartAttack begins an attack on behalf of an external driver (player
// input, scripted encounters). The same timing contract applies as for
// director-acquired attacks.
func (d *Director) StartAttack(attackerID, targetID uint32) error {
	attacker, ok := d.world.Get(attackerID)
	if !ok {
		return fmt.Errorf("attacker %d not in world", attackerID)
	}
	if attacker.IsDead() {
		return fmt.Errorf("attacker %d is dead", attackerID)
	}
	if attacker.Archetype() == nil || len(attacker.Archetype().Attacks()) == 0 {
		return fmt.Errorf("attacker %d has no attack animations", attackerID)
	}
	if _, busy := d.active[attackerID]; busy {
		return fmt.Errorf("attacker %d already attacking", attackerID)
	}
	target, ok := d.world.Get(targetID)
	if !ok {
		return fmt.Errorf("target %d not in world", targetID)
	}
	d.startAttack(attacker, target)
	return nil
}

func (d *Director) startAttack(attacker, target *model.Agent) {
	attacks := attacker.Archetype().Attacks()
	attack := attacks[d.cfg.AttackPolicy(attacker, attacks)]

	duration := d.durations.ClipDuration(attack.Animation())
	timeline, err := NewTimeline(
		attack.StickTimestamp(),
		attack.HitTimestamp(),
		attack.Speed(),
		duration,
	)
	if err != nil {
		// Catalog validation guarantees speed > 0; reaching this means the
		// catalog was bypassed.
		slog.Error("cannot start attack",
			"attacker", attacker.ObjectID(),
			"animation", attack.Animation(),
			"error", err)
		return
	}
	if duration <= 0 {
		slog.Warn("unknown clip duration, attack finishes only on stop signal",
			"animation", attack.Animation())
	}

	attacker.SetTarget(target.ObjectID())
	d.active[attacker.ObjectID()] = &activeAttack{
		attackerID: attacker.ObjectID(),
		targetID:   target.ObjectID(),
		attack:     attack,
		timeline:   timeline,
	}
	d.order = append(d.order, attacker.ObjectID())

	// The audio layer keys off the started event; the cue comes from the
	// archetype's attack sound pool.
	sound, _ := attacker.Archetype().AttackSounds().Pick()

	d.emit(Event{
		Kind:      EventAttackStarted,
		Tick:      d.tick,
		AgentID:   attacker.ObjectID(),
		Archetype: attacker.Species(),
		TargetID:  target.ObjectID(),
		Animation: attack.Animation(),
		Sound:     sound,
	})
}

func (d *Director) advanceTimelines(dt float64) {
	// Snapshot: transition handlers mutate d.order.
	ids := make([]uint32, len(d.order))
	copy(ids, d.order)

	for _, id := range ids {
		aa, ok := d.active[id]
		if !ok {
			continue // cancelled by this tick's death sweep
		}
		attacker, ok := d.world.Get(id)
		if !ok {
			d.cancelAttack(id)
			continue
		}

		tr := aa.timeline.Advance(dt)
		if tr.Committed {
			attacker.SetFrozen(true)
			d.emit(Event{
				Kind:      EventAttackCommitted,
				Tick:      d.tick,
				AgentID:   id,
				Archetype: attacker.Species(),
				TargetID:  aa.targetID,
				Animation: aa.attack.Animation(),
				Elapsed:   aa.timeline.Elapsed(),
			})
		}
		if tr.Resolved {
			d.resolveHit(aa, attacker)
		}
		if tr.Finished {
			d.finishAttack(aa, attacker)
		}
	}
}

// resolveHit applies the attack's damage exactly once, and only if the
// target is still alive and in range at this instant. Anything else is a
// miss with no retry.
func (d *Director) resolveHit(aa *activeAttack, attacker *model.Agent) {
	event := Event{
		Kind:      EventHitMissed,
		Tick:      d.tick,
		AgentID:   aa.attackerID,
		Archetype: attacker.Species(),
		TargetID:  aa.targetID,
		Animation: aa.attack.Animation(),
		Elapsed:   aa.timeline.Elapsed(),
	}

	target, ok := d.world.Get(aa.targetID)
	if ok && !target.IsDead() &&
		attacker.Location().Distance(target.Location()) <= attacker.Archetype().CloseCombatDistance() {
		damage := aa.attack.Damage()
		target.ReduceHealth(damage)
		target.SetLastHitBy(aa.attackerID)

		event.Kind = EventHitLanded
		event.Damage = damage

		slog.Debug("hit landed",
			"attacker", aa.attackerID,
			"target", aa.targetID,
			"damage", damage,
			"targetHealth", target.Health())
	} else {
		slog.Debug("hit missed",
			"attacker", aa.attackerID,
			"target", aa.targetID)
	}

	d.emit(event)
}

func (d *Director) finishAttack(aa *activeAttack, attacker *model.Agent) {
	d.removeActive(aa.attackerID)
	attacker.SetFrozen(false)
	attacker.ClearTarget()

	d.emit(Event{
		Kind:      EventAttackFinished,
		Tick:      d.tick,
		AgentID:   aa.attackerID,
		Archetype: attacker.Species(),
		TargetID:  aa.targetID,
		Animation: aa.attack.Animation(),
		Elapsed:   aa.timeline.Elapsed(),
	})
}

// StopAttack delivers the animation player's explicit stop signal for an
// attack whose clip duration was unknown. Fires the normal Finished path.
func (d *Director) StopAttack(agentID uint32) {
	aa, ok := d.active[agentID]
	if !ok {
		return
	}
	if tr := aa.timeline.Stop(); tr.Finished {
		if attacker, ok := d.world.Get(agentID); ok {
			d.finishAttack(aa, attacker)
			return
		}
		d.removeActive(agentID)
	}
}

// Despawn removes an agent from the world mid-run. Its timeline is
// discarded deterministically with no damage side effect and no events.
func (d *Director) Despawn(agentID uint32) bool {
	d.cancelAttack(agentID)
	delete(d.weapons, agentID)
	agent, ok := d.world.Remove(agentID)
	if ok {
		agent.SetFrozen(false)
		agent.ClearTarget()
	}
	return ok
}

// cancelAttack silently discards an agent's active timeline.
func (d *Director) cancelAttack(agentID uint32) {
	if _, ok := d.active[agentID]; ok {
		d.removeActive(agentID)
	}
}

func (d *Director) removeActive(agentID uint32) {
	delete(d.active, agentID)
	for i, id := range d.order {
		if id == agentID {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

func (d *Director) emit(event Event) {
	for _, sink := range d.sinks {
		sink.HandleEvent(event)
	}
}
