package bestiary

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const baseDoc = `
Ghoul:
  model: models/ghoul.glb
  attack_animations:
    - animation: animations/ghoul_bite.glb
      stick_timestamp: 0.3
      timestamp: 0.6
      damage: {kind: point, amount: 25}
      speed: 1.0
  idle_animation: animations/ghoul_idle.glb
  walk_animation: animations/ghoul_walk.glb
  scream_animation: animations/ghoul_scream.glb
  dying_animation: animations/ghoul_dying.glb
  bones:
    weapon_hand: hand.R
    left_leg: leg.L
    right_leg: leg.R
    head: head
    hips: hips
  walk_speed: 1.5
  scale: 1.0
  health: 100
  close_combat_distance: 0.8
  can_use_weapons: false
  hostility: Everyone
`

// minimalDoc renders the one-archetype base document with optional extra
// keys appended to the archetype body.
func minimalDoc(extra string) []byte {
	return []byte(baseDoc + extra)
}

// mutateDoc rewrites one line of the base document.
func mutateDoc(old, new string) []byte {
	return []byte(strings.Replace(baseDoc, old, new, 1))
}

func TestLoadDefault(t *testing.T) {
	catalog, err := LoadDefault()
	require.NoError(t, err)

	require.Equal(t, 3, catalog.Count())
	require.Equal(t, []string{"Mutant", "Parasite", "Zombie"}, catalog.Names())
	require.Len(t, catalog.Fingerprint(), 64, "hex BLAKE2b-256 digest")

	again, err := LoadDefault()
	require.NoError(t, err)
	require.Equal(t, catalog.Fingerprint(), again.Fingerprint(),
		"fingerprint is a pure function of the document")
}

func TestDefaultCatalogInvariants(t *testing.T) {
	catalog, err := LoadDefault()
	require.NoError(t, err)

	for _, name := range catalog.Names() {
		arch, err := catalog.Lookup(name)
		require.NoError(t, err)

		require.Equal(t, name, arch.Name())
		require.Positive(t, arch.Health(), "%s health", name)
		require.Positive(t, arch.Scale(), "%s scale", name)
		require.Positive(t, arch.WalkSpeed(), "%s walk_speed", name)
		require.Positive(t, arch.CloseCombatDistance(), "%s close_combat_distance", name)
		if !arch.CanUseWeapons() {
			require.NotEmpty(t, arch.Attacks(),
				"%s: melee-only archetypes must have attack animations", name)
		}
		for i, attack := range arch.Attacks() {
			require.NotEmpty(t, attack.Animation(), "%s attack %d", name, i)
			require.Positive(t, attack.Speed(), "%s attack %d speed", name, i)
			require.GreaterOrEqual(t, attack.StickTimestamp(), 0.0, "%s attack %d", name, i)
			require.GreaterOrEqual(t, attack.HitTimestamp(), 0.0, "%s attack %d", name, i)
			require.GreaterOrEqual(t, attack.Damage(), 0.0, "%s attack %d", name, i)
		}
	}
}

func TestDefaultCatalogKeepsAuthoredThresholdOrder(t *testing.T) {
	catalog, err := LoadDefault()
	require.NoError(t, err)

	zombie, err := catalog.Lookup("Zombie")
	require.NoError(t, err)
	for i, attack := range zombie.Attacks() {
		require.Greater(t, attack.StickTimestamp(), attack.HitTimestamp(),
			"Zombie attack %d: the authored hit-before-commit order must survive loading", i)
	}
}

func TestLookupUnknown(t *testing.T) {
	catalog, err := LoadDefault()
	require.NoError(t, err)

	_, err = catalog.Lookup("Basilisk")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLoadBytesValid(t *testing.T) {
	catalog, err := LoadBytes(minimalDoc(""))
	require.NoError(t, err)

	ghoul, err := catalog.Lookup("Ghoul")
	require.NoError(t, err)
	require.Equal(t, "Everyone", ghoul.Hostility().String())
	require.False(t, ghoul.CanUseWeapons())

	_, ok := ghoul.AimAnimation()
	require.False(t, ok, "aim animation was not authored")
	_, ok = ghoul.SpineBone()
	require.False(t, ok, "spine bone was not authored")
}

func TestLoadBytesOptionalFields(t *testing.T) {
	doc := minimalDoc("  aim_animation: animations/ghoul_aim.glb\n")
	catalog, err := LoadBytes(doc)
	require.NoError(t, err)

	ghoul, err := catalog.Lookup("Ghoul")
	require.NoError(t, err)
	aim, ok := ghoul.AimAnimation()
	require.True(t, ok)
	require.Equal(t, "animations/ghoul_aim.glb", aim)
}

func TestLoadBytesRejectsEmptyOptional(t *testing.T) {
	_, err := LoadBytes(minimalDoc(`  aim_animation: ""` + "\n"))
	require.Error(t, err, "an empty string is not a valid absent marker")

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	require.Equal(t, "aim_animation", cfgErr.Field)
}

func TestLoadBytesSemanticErrors(t *testing.T) {
	cases := []struct {
		name  string
		doc   []byte
		field string
	}{
		{
			name:  "zero health",
			doc:   mutateDoc("health: 100", "health: 0"),
			field: "health",
		},
		{
			name:  "negative walk speed",
			doc:   mutateDoc("walk_speed: 1.5", "walk_speed: -1"),
			field: "walk_speed",
		},
		{
			name:  "zero close combat distance",
			doc:   mutateDoc("close_combat_distance: 0.8", "close_combat_distance: 0"),
			field: "close_combat_distance",
		},
		{
			name:  "zero attack speed",
			doc:   mutateDoc("speed: 1.0", "speed: 0"),
			field: "attack_animations[0].speed",
		},
		{
			name:  "unknown damage kind",
			doc:   mutateDoc("kind: point", "kind: splash"),
			field: "attack_animations[0].damage.kind",
		},
		{
			name: "melee archetype without attacks",
			doc: []byte(`
Ghoul:
  model: models/ghoul.glb
  attack_animations: []
  idle_animation: animations/ghoul_idle.glb
  walk_animation: animations/ghoul_walk.glb
  scream_animation: animations/ghoul_scream.glb
  dying_animation: animations/ghoul_dying.glb
  bones:
    weapon_hand: hand.R
    left_leg: leg.L
    right_leg: leg.R
    head: head
    hips: hips
  walk_speed: 1.5
  scale: 1.0
  health: 100
  close_combat_distance: 0.8
  can_use_weapons: false
  hostility: Everyone
`),
			field: "attack_animations",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadBytes(tc.doc)
			require.Error(t, err)

			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			require.Equal(t, tc.field, cfgErr.Field)
			require.Equal(t, "Ghoul", cfgErr.Archetype)
		})
	}
}

func TestLoadBytesSchemaErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  []byte
	}{
		{
			name: "unknown hostility token",
			doc:  mutateDoc("hostility: Everyone", "hostility: Nobody"),
		},
		{
			name: "model is not a string",
			doc:  mutateDoc("model: models/ghoul.glb", "model: null"),
		},
		{
			name: "attack missing speed",
			doc: []byte(`
Ghoul:
  model: models/ghoul.glb
  attack_animations:
    - animation: animations/ghoul_bite.glb
      stick_timestamp: 0.3
      timestamp: 0.6
      damage: {kind: point, amount: 25}
  idle_animation: animations/ghoul_idle.glb
  walk_animation: animations/ghoul_walk.glb
  scream_animation: animations/ghoul_scream.glb
  dying_animation: animations/ghoul_dying.glb
  bones:
    weapon_hand: hand.R
    left_leg: leg.L
    right_leg: leg.R
    head: head
    hips: hips
  walk_speed: 1.5
  scale: 1.0
  health: 100
  close_combat_distance: 0.8
  can_use_weapons: false
  hostility: Everyone
`),
		},
		{
			name: "empty document",
			doc:  []byte("{}\n"),
		},
		{
			name: "not yaml",
			doc:  []byte(":\n:::"),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadBytes(tc.doc)
			require.Error(t, err)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bestiary.yaml")
	require.NoError(t, os.WriteFile(path, minimalDoc(""), 0o644))

	catalog, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 1, catalog.Count())

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}
