package bestiary

import "fmt"

// Hostility is the targeting policy of an archetype: whom its agents are
// permitted to attack. The set is closed; a new mode means a new constant
// and a matching resolver branch, not an extension point.
type Hostility int32

const (
	// HostileToEveryone - attacks every other agent, own species included
	HostileToEveryone Hostility = iota
	// HostileToOtherSpecies - attacks agents spawned from a different archetype
	HostileToOtherSpecies
	// HostileToPlayer - attacks only the player-controlled agent
	HostileToPlayer
)

// String returns the bestiary token for the hostility mode.
func (h Hostility) String() string {
	switch h {
	case HostileToEveryone:
		return "Everyone"
	case HostileToOtherSpecies:
		return "OtherSpecies"
	case HostileToPlayer:
		return "Player"
	default:
		return "UNKNOWN"
	}
}

// ParseHostility converts a bestiary document token to a Hostility value.
func ParseHostility(token string) (Hostility, error) {
	switch token {
	case "Everyone":
		return HostileToEveryone, nil
	case "OtherSpecies":
		return HostileToOtherSpecies, nil
	case "Player":
		return HostileToPlayer, nil
	default:
		return 0, fmt.Errorf("unknown hostility token %q", token)
	}
}
