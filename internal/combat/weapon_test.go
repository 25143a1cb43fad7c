package combat

import "testing"

func TestWeaponDefinitions(t *testing.T) {
	cases := []struct {
		kind     WeaponKind
		damage   float64
		interval float64
		ammo     int
	}{
		{WeaponM4, 15.0, 0.15, 200},
		{WeaponAk47, 17.0, 0.15, 200},
		{WeaponPlasmaRifle, 30.0, 0.25, 100},
	}
	for _, tc := range cases {
		def := GetDefinition(tc.kind)
		if def.Damage() != tc.damage {
			t.Errorf("%v damage = %v, want %v", tc.kind, def.Damage(), tc.damage)
		}
		if def.ShootInterval() != tc.interval {
			t.Errorf("%v interval = %v, want %v", tc.kind, def.ShootInterval(), tc.interval)
		}
		if def.Ammo() != tc.ammo {
			t.Errorf("%v ammo = %d, want %d", tc.kind, def.Ammo(), tc.ammo)
		}
		if def.Model() == "" || def.ShotSound() == "" {
			t.Errorf("%v definition missing asset paths", tc.kind)
		}
	}
}

func TestWeaponShootIntervalGating(t *testing.T) {
	w := NewWeapon(WeaponM4) // interval 0.15

	if w.TryShoot(0.1) {
		t.Error("shot before the interval elapsed should be gated")
	}
	if !w.TryShoot(0.2) {
		t.Error("shot after the interval should fire")
	}
	if w.TryShoot(0.3) {
		t.Error("0.1s after the last shot is inside the interval")
	}
	if !w.TryShoot(0.35) {
		t.Error("0.15s after the last shot should fire")
	}
	if w.Ammo() != 198 {
		t.Errorf("ammo = %d, want 198 after two shots", w.Ammo())
	}
}

func TestWeaponAmmoExhaustion(t *testing.T) {
	w := NewWeapon(WeaponPlasmaRifle) // ammo 100, interval 0.25

	now := 0.0
	fired := 0
	for range 200 {
		now += 0.25
		if w.TryShoot(now) {
			fired++
		}
	}
	if fired != 100 {
		t.Errorf("fired %d shots, want exactly the ammo reserve", fired)
	}
	if w.Ammo() != 0 {
		t.Errorf("ammo = %d, want 0", w.Ammo())
	}
	if w.TryShoot(now + 100) {
		t.Error("empty weapon must not fire")
	}
}

func TestParseWeaponKind(t *testing.T) {
	cases := []struct {
		token string
		want  WeaponKind
	}{
		{"", WeaponM4},
		{"m4", WeaponM4},
		{"ak47", WeaponAk47},
		{"plasma_rifle", WeaponPlasmaRifle},
	}
	for _, tc := range cases {
		got, err := ParseWeaponKind(tc.token)
		if err != nil {
			t.Errorf("ParseWeaponKind(%q): %v", tc.token, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseWeaponKind(%q) = %v, want %v", tc.token, got, tc.want)
		}
	}
	if _, err := ParseWeaponKind("railgun"); err == nil {
		t.Error("unknown weapon kind should fail")
	}
}
