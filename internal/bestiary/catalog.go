package bestiary

import (
	_ "embed"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"golang.org/x/crypto/blake2b"
	"gopkg.in/yaml.v3"
)

//go:embed default_bestiary.yaml
var defaultBestiary []byte

// ConfigError reports a malformed bestiary document. Any ConfigError is
// fatal at startup; there is no partial or degraded load.
type ConfigError struct {
	Archetype string
	Field     string
	Reason    string
}

func (e *ConfigError) Error() string {
	if e.Archetype == "" {
		return fmt.Sprintf("bestiary: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("bestiary: archetype %q: %s: %s", e.Archetype, e.Field, e.Reason)
}

// ErrNotFound is returned by Catalog.Lookup for an unknown archetype name.
var ErrNotFound = fmt.Errorf("archetype not found")

// Catalog is the immutable archetype registry. Loaded once at startup and
// read-only for the remainder of the run.
type Catalog struct {
	archetypes  map[string]*Archetype
	names       []string
	fingerprint string
}

// YAML document shapes. The document root is a mapping from archetype name
// to record, mirroring the source data table.

type damageDoc struct {
	Kind   string  `yaml:"kind"`
	Amount float64 `yaml:"amount"`
}

type attackDoc struct {
	Animation      string    `yaml:"animation"`
	StickTimestamp float64   `yaml:"stick_timestamp"`
	Timestamp      float64   `yaml:"timestamp"`
	Damage         damageDoc `yaml:"damage"`
	Speed          float64   `yaml:"speed"`
}

type bonesDoc struct {
	WeaponHand string  `yaml:"weapon_hand"`
	LeftLeg    string  `yaml:"left_leg"`
	RightLeg   string  `yaml:"right_leg"`
	Head       string  `yaml:"head"`
	Hips       string  `yaml:"hips"`
	Spine      *string `yaml:"spine"`
}

type archetypeDoc struct {
	Model               string      `yaml:"model"`
	AttackAnimations    []attackDoc `yaml:"attack_animations"`
	IdleAnimation       string      `yaml:"idle_animation"`
	WalkAnimation       string      `yaml:"walk_animation"`
	ScreamAnimation     string      `yaml:"scream_animation"`
	AimAnimation        *string     `yaml:"aim_animation"`
	DyingAnimation      string      `yaml:"dying_animation"`
	Bones               bonesDoc    `yaml:"bones"`
	WalkSpeed           float64     `yaml:"walk_speed"`
	Scale               float64     `yaml:"scale"`
	WeaponScale         float64     `yaml:"weapon_scale"`
	Health              float64     `yaml:"health"`
	VAimAngleHack       float64     `yaml:"v_aim_angle_hack"`
	CloseCombatDistance float64     `yaml:"close_combat_distance"`
	CanUseWeapons       bool        `yaml:"can_use_weapons"`
	PainSounds          []string    `yaml:"pain_sounds"`
	ScreamSounds        []string    `yaml:"scream_sounds"`
	IdleSounds          []string    `yaml:"idle_sounds"`
	AttackSounds        []string    `yaml:"attack_sounds"`
	Hostility           string      `yaml:"hostility"`
}

// Load reads and validates a bestiary document from disk.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading bestiary %s: %w", path, err)
	}
	return LoadBytes(data)
}

// LoadDefault builds the catalog from the bestiary embedded in the binary
// (the Mutant/Parasite/Zombie table from the source game data).
func LoadDefault() (*Catalog, error) {
	return LoadBytes(defaultBestiary)
}

// LoadBytes validates the raw document against the embedded schema, decodes
// it, and runs the semantic checks the schema cannot express. Fail-fast:
// the first error aborts the load.
func LoadBytes(data []byte) (*Catalog, error) {
	if err := validateSchema(data); err != nil {
		return nil, err
	}

	var docs map[string]archetypeDoc
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("parsing bestiary: %w", err)
	}
	if len(docs) == 0 {
		return nil, &ConfigError{Field: "document", Reason: "no archetypes defined"}
	}

	cat := &Catalog{
		archetypes:  make(map[string]*Archetype, len(docs)),
		fingerprint: fingerprint(data),
	}
	for name, doc := range docs {
		arch, err := buildArchetype(name, doc)
		if err != nil {
			return nil, err
		}
		cat.archetypes[name] = arch
		cat.names = append(cat.names, name)
	}
	sort.Strings(cat.names)

	slog.Info("loaded bestiary",
		"archetypes", len(cat.archetypes),
		"fingerprint", cat.fingerprint)
	return cat, nil
}

// Lookup returns the definition for name, or ErrNotFound.
func (c *Catalog) Lookup(name string) (*Archetype, error) {
	arch, ok := c.archetypes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return arch, nil
}

// Names returns all archetype names, sorted.
func (c *Catalog) Names() []string { return c.names }

// Count returns the number of archetypes.
func (c *Catalog) Count() int { return len(c.archetypes) }

// Fingerprint returns the hex BLAKE2b-256 digest of the source document.
// Logged at startup and stored with kill-log rows so recorded fights can be
// tied to the exact bestiary revision that produced them.
func (c *Catalog) Fingerprint() string { return c.fingerprint }

func fingerprint(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func buildArchetype(name string, doc archetypeDoc) (*Archetype, error) {
	fail := func(field, reason string) error {
		return &ConfigError{Archetype: name, Field: field, Reason: reason}
	}

	if name == "" {
		return nil, fail("name", "must not be empty")
	}
	if doc.Model == "" {
		return nil, fail("model", "must not be empty")
	}
	if doc.Health <= 0 {
		return nil, fail("health", fmt.Sprintf("must be > 0, got %v", doc.Health))
	}
	if doc.Scale <= 0 {
		return nil, fail("scale", fmt.Sprintf("must be > 0, got %v", doc.Scale))
	}
	if doc.WalkSpeed <= 0 {
		return nil, fail("walk_speed", fmt.Sprintf("must be > 0, got %v", doc.WalkSpeed))
	}
	if doc.CloseCombatDistance <= 0 {
		return nil, fail("close_combat_distance", fmt.Sprintf("must be > 0, got %v", doc.CloseCombatDistance))
	}
	// A melee-only archetype has no weapon fallback: it must be able to
	// fight in close combat.
	if !doc.CanUseWeapons && len(doc.AttackAnimations) == 0 {
		return nil, fail("attack_animations", "must not be empty when can_use_weapons is false")
	}

	hostility, err := ParseHostility(doc.Hostility)
	if err != nil {
		return nil, fail("hostility", err.Error())
	}

	attacks := make([]AttackAnimation, 0, len(doc.AttackAnimations))
	for i, ad := range doc.AttackAnimations {
		field := func(f string) string { return fmt.Sprintf("attack_animations[%d].%s", i, f) }
		if ad.Animation == "" {
			return nil, fail(field("animation"), "must not be empty")
		}
		if ad.Speed <= 0 {
			return nil, fail(field("speed"), fmt.Sprintf("must be > 0, got %v", ad.Speed))
		}
		if ad.StickTimestamp < 0 {
			return nil, fail(field("stick_timestamp"), fmt.Sprintf("must be >= 0, got %v", ad.StickTimestamp))
		}
		if ad.Timestamp < 0 {
			return nil, fail(field("timestamp"), fmt.Sprintf("must be >= 0, got %v", ad.Timestamp))
		}
		if ad.Damage.Amount < 0 {
			return nil, fail(field("damage.amount"), fmt.Sprintf("must be >= 0, got %v", ad.Damage.Amount))
		}
		kind, err := parseDamageKind(ad.Damage.Kind)
		if err != nil {
			return nil, fail(field("damage.kind"), err.Error())
		}
		// Note: stick_timestamp and timestamp are intentionally NOT
		// order-checked against each other. The source data has both
		// orderings (Zombie hits before it commits) as a tuning knob.
		attacks = append(attacks, AttackAnimation{
			animation: ad.Animation,
			stick:     ad.StickTimestamp,
			hit:       ad.Timestamp,
			kind:      kind,
			damage:    ad.Damage.Amount,
			speed:     ad.Speed,
		})
	}

	arch := &Archetype{
		name:                name,
		model:               doc.Model,
		idleAnimation:       doc.IdleAnimation,
		walkAnimation:       doc.WalkAnimation,
		screamAnimation:     doc.ScreamAnimation,
		dyingAnimation:      doc.DyingAnimation,
		weaponHandBone:      doc.Bones.WeaponHand,
		leftLegBone:         doc.Bones.LeftLeg,
		rightLegBone:        doc.Bones.RightLeg,
		headBone:            doc.Bones.Head,
		hipsBone:            doc.Bones.Hips,
		walkSpeed:           doc.WalkSpeed,
		scale:               doc.Scale,
		health:              doc.Health,
		closeCombatDistance: doc.CloseCombatDistance,
		canUseWeapons:       doc.CanUseWeapons,
		weaponScale:         doc.WeaponScale,
		vAimAngleHack:       doc.VAimAngleHack,
		attacks:             attacks,
		painSounds:          SoundSet(doc.PainSounds),
		screamSounds:        SoundSet(doc.ScreamSounds),
		idleSounds:          SoundSet(doc.IdleSounds),
		attackSounds:        SoundSet(doc.AttackSounds),
		hostility:           hostility,
	}

	// Optional values are "absent key means absent"; an empty string is a
	// config mistake, not a valid absent marker.
	if doc.AimAnimation != nil {
		if *doc.AimAnimation == "" {
			return nil, fail("aim_animation", "must not be an empty string (omit the key instead)")
		}
		arch.aimAnimation = *doc.AimAnimation
		arch.hasAim = true
	}
	if doc.Bones.Spine != nil {
		if *doc.Bones.Spine == "" {
			return nil, fail("bones.spine", "must not be an empty string (omit the key instead)")
		}
		arch.spineBone = *doc.Bones.Spine
		arch.hasSpine = true
	}

	return arch, nil
}

func parseDamageKind(token string) (DamageKind, error) {
	switch token {
	case "point":
		return DamagePoint, nil
	default:
		return 0, fmt.Errorf("unknown damage kind %q", token)
	}
}
