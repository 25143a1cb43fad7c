package bestiary

import "testing"

func TestParseHostility(t *testing.T) {
	cases := []struct {
		token string
		want  Hostility
	}{
		{"Everyone", HostileToEveryone},
		{"OtherSpecies", HostileToOtherSpecies},
		{"Player", HostileToPlayer},
	}
	for _, tc := range cases {
		got, err := ParseHostility(tc.token)
		if err != nil {
			t.Errorf("ParseHostility(%q): %v", tc.token, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseHostility(%q) = %v, want %v", tc.token, got, tc.want)
		}
		if got.String() != tc.token {
			t.Errorf("String() = %q, want %q", got.String(), tc.token)
		}
	}

	for _, bad := range []string{"", "everyone", "Nobody", "PLAYER"} {
		if _, err := ParseHostility(bad); err == nil {
			t.Errorf("ParseHostility(%q) should fail", bad)
		}
	}
}

func TestSoundSetPick(t *testing.T) {
	var empty SoundSet
	if _, ok := empty.Pick(); ok {
		t.Error("empty sound set should not pick")
	}

	set := SoundSet{"sounds/a.ogg", "sounds/b.ogg"}
	for range 20 {
		sound, ok := set.Pick()
		if !ok {
			t.Fatal("non-empty sound set must pick")
		}
		if sound != "sounds/a.ogg" && sound != "sounds/b.ogg" {
			t.Fatalf("picked %q, not in the set", sound)
		}
	}
}
