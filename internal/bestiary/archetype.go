package bestiary

import "math/rand/v2"

// DamageKind classifies how an attack applies its magnitude.
type DamageKind int32

const (
	// DamagePoint - a flat amount applied once on the hit frame
	DamagePoint DamageKind = iota
)

// String returns the bestiary token for the damage kind.
func (k DamageKind) String() string {
	switch k {
	case DamagePoint:
		return "point"
	default:
		return "UNKNOWN"
	}
}

// AttackAnimation holds the timing triple of one attack clip. The stick
// timestamp (commitment point) and the hit timestamp (damage point) are
// independent values and may be authored in either order; they must never
// be reordered or clamped.
type AttackAnimation struct {
	animation string
	stick     float64
	hit       float64
	kind      DamageKind
	damage    float64
	speed     float64
}

// Animation returns the attack clip path.
func (a AttackAnimation) Animation() string { return a.animation }

// StickTimestamp returns the playback time (seconds) at which the attack
// commits: target and facing lock until the clip finishes.
func (a AttackAnimation) StickTimestamp() float64 { return a.stick }

// HitTimestamp returns the playback time (seconds) at which damage applies.
func (a AttackAnimation) HitTimestamp() float64 { return a.hit }

// DamageKind returns how the damage magnitude is applied.
func (a AttackAnimation) DamageKind() DamageKind { return a.kind }

// Damage returns the damage magnitude.
func (a AttackAnimation) Damage() float64 { return a.damage }

// Speed returns the playback-rate multiplier (1.0 = authored speed).
func (a AttackAnimation) Speed() float64 { return a.speed }

// SoundSet is an unordered pool of clip references for one cue.
type SoundSet []string

// Pick returns a random clip from the set, or false when the set is empty.
func (s SoundSet) Pick() (string, bool) {
	if len(s) == 0 {
		return "", false
	}
	return s[rand.IntN(len(s))], true
}

// Archetype is the immutable definition of one enemy kind. Built only by
// the catalog loader; agents hold a shared pointer to it for the rest of
// the run.
type Archetype struct {
	name  string
	model string

	idleAnimation   string
	walkAnimation   string
	screamAnimation string
	dyingAnimation  string
	aimAnimation    string
	hasAim          bool

	weaponHandBone string
	leftLegBone    string
	rightLegBone   string
	headBone       string
	hipsBone       string
	spineBone      string
	hasSpine       bool

	walkSpeed float64
	scale     float64

	health              float64
	closeCombatDistance float64
	canUseWeapons       bool
	weaponScale         float64
	vAimAngleHack       float64

	attacks []AttackAnimation

	painSounds   SoundSet
	screamSounds SoundSet
	idleSounds   SoundSet
	attackSounds SoundSet

	hostility Hostility
}

// Name returns the archetype name (unique key in the catalog).
func (a *Archetype) Name() string { return a.name }

// Model returns the skinned model path.
func (a *Archetype) Model() string { return a.model }

func (a *Archetype) IdleAnimation() string   { return a.idleAnimation }
func (a *Archetype) WalkAnimation() string   { return a.walkAnimation }
func (a *Archetype) ScreamAnimation() string { return a.screamAnimation }
func (a *Archetype) DyingAnimation() string  { return a.dyingAnimation }

// AimAnimation returns the aim clip path. ok is false for archetypes that
// cannot aim; the path is never an empty-string sentinel.
func (a *Archetype) AimAnimation() (path string, ok bool) {
	return a.aimAnimation, a.hasAim
}

func (a *Archetype) WeaponHandBone() string { return a.weaponHandBone }
func (a *Archetype) LeftLegBone() string    { return a.leftLegBone }
func (a *Archetype) RightLegBone() string   { return a.rightLegBone }
func (a *Archetype) HeadBone() string       { return a.headBone }
func (a *Archetype) HipsBone() string       { return a.hipsBone }

// SpineBone returns the spine bone binding. ok is false for archetypes
// without one; absence correlates with CanUseWeapons() == false.
func (a *Archetype) SpineBone() (bone string, ok bool) {
	return a.spineBone, a.hasSpine
}

// WalkSpeed returns movement speed in units/sec.
func (a *Archetype) WalkSpeed() float64 { return a.walkSpeed }

// Scale returns the uniform model scale.
func (a *Archetype) Scale() float64 { return a.scale }

// Health returns spawn health.
func (a *Archetype) Health() float64 { return a.health }

// CloseCombatDistance returns the melee reach in meters.
func (a *Archetype) CloseCombatDistance() float64 { return a.closeCombatDistance }

// CanUseWeapons reports whether agents of this archetype wield weapons.
func (a *Archetype) CanUseWeapons() bool { return a.canUseWeapons }

func (a *Archetype) WeaponScale() float64   { return a.weaponScale }
func (a *Archetype) VAimAngleHack() float64 { return a.vAimAngleHack }

// Attacks returns the ordered attack animation list. The order defines the
// selection pool; the slice is shared and must not be mutated.
func (a *Archetype) Attacks() []AttackAnimation { return a.attacks }

func (a *Archetype) PainSounds() SoundSet   { return a.painSounds }
func (a *Archetype) ScreamSounds() SoundSet { return a.screamSounds }
func (a *Archetype) IdleSounds() SoundSet   { return a.idleSounds }
func (a *Archetype) AttackSounds() SoundSet { return a.attackSounds }

// Hostility returns the archetype targeting policy.
func (a *Archetype) Hostility() Hostility { return a.hostility }
