package combat

import "fmt"

// WeaponKind identifies one weapon model.
type WeaponKind int32

const (
	WeaponM4 WeaponKind = iota
	WeaponAk47
	WeaponPlasmaRifle
)

// String returns the config token for the weapon kind.
func (k WeaponKind) String() string {
	switch k {
	case WeaponM4:
		return "m4"
	case WeaponAk47:
		return "ak47"
	case WeaponPlasmaRifle:
		return "plasma_rifle"
	default:
		return "UNKNOWN"
	}
}

// ParseWeaponKind maps a config token to a WeaponKind.
func ParseWeaponKind(name string) (WeaponKind, error) {
	switch name {
	case "", "m4":
		return WeaponM4, nil
	case "ak47":
		return WeaponAk47, nil
	case "plasma_rifle":
		return WeaponPlasmaRifle, nil
	default:
		return 0, fmt.Errorf("unknown weapon kind %q", name)
	}
}

// WeaponDefinition is the static per-kind weapon table entry: model and
// shot-sound paths for the presentation layers, ammo reserve, per-shot
// damage, and the minimum interval between shots.
type WeaponDefinition struct {
	model         string
	shotSound     string
	ammo          int
	damage        float64
	shootInterval float64
}

func (d WeaponDefinition) Model() string          { return d.model }
func (d WeaponDefinition) ShotSound() string      { return d.shotSound }
func (d WeaponDefinition) Ammo() int              { return d.ammo }
func (d WeaponDefinition) Damage() float64        { return d.damage }
func (d WeaponDefinition) ShootInterval() float64 { return d.shootInterval }

var weaponDefinitions = map[WeaponKind]WeaponDefinition{
	WeaponM4: {
		model:         "data/models/m4.FBX",
		shotSound:     "data/sounds/m4_shot.ogg",
		ammo:          200,
		damage:        15.0,
		shootInterval: 0.15,
	},
	WeaponAk47: {
		model:         "data/models/ak47.FBX",
		shotSound:     "data/sounds/ak47.ogg",
		ammo:          200,
		damage:        17.0,
		shootInterval: 0.15,
	},
	WeaponPlasmaRifle: {
		model:         "data/models/plasma_rifle.fbx",
		shotSound:     "data/sounds/plasma_shot.ogg",
		ammo:          100,
		damage:        30.0,
		shootInterval: 0.25,
	},
}

// GetDefinition returns the static definition for kind.
func GetDefinition(kind WeaponKind) WeaponDefinition {
	return weaponDefinitions[kind]
}

// Weapon is the runtime state of one wielded weapon: remaining ammo plus
// the last-shot time used for rate gating.
type Weapon struct {
	kind         WeaponKind
	definition   WeaponDefinition
	ammo         int
	lastShotTime float64
}

// NewWeapon creates a weapon of the given kind with a full ammo reserve.
func NewWeapon(kind WeaponKind) *Weapon {
	def := GetDefinition(kind)
	return &Weapon{
		kind:       kind,
		definition: def,
		ammo:       def.ammo,
	}
}

// Kind returns the weapon kind.
func (w *Weapon) Kind() WeaponKind { return w.kind }

// Definition returns the static definition.
func (w *Weapon) Definition() WeaponDefinition { return w.definition }

// Ammo returns the remaining ammo.
func (w *Weapon) Ammo() int { return w.ammo }

// TryShoot fires one shot if ammo remains and the shoot interval since the
// last shot has elapsed. now is the simulation clock in seconds.
func (w *Weapon) TryShoot(now float64) bool {
	if w.ammo == 0 || now-w.lastShotTime < w.definition.shootInterval {
		return false
	}
	w.ammo--
	w.lastShotTime = now
	return true
}
