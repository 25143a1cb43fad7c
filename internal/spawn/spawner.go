// Package spawn populates the world from the configured spawn table.
package spawn

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/akorchagin/mobd/internal/bestiary"
	"github.com/akorchagin/mobd/internal/config"
	"github.com/akorchagin/mobd/internal/model"
	"github.com/akorchagin/mobd/internal/world"
)

// Populate creates the initial agent population: the player (if enabled)
// and each configured archetype pack. Fails fast on an unknown archetype.
func Populate(w *world.World, catalog *bestiary.Catalog, spawns config.Spawns) error {
	if spawns.Player.Enabled {
		health := spawns.Player.Health
		if health <= 0 {
			health = 100
		}
		player := model.NewPlayerAgent(w.IDs().NextPlayerID(), health)
		player.SetLocation(model.NewLocation(spawns.Player.X, spawns.Player.Y, spawns.Player.Z))
		if err := w.AddAgent(player); err != nil {
			return fmt.Errorf("spawning player: %w", err)
		}
		slog.Info("spawned player",
			"objectID", player.ObjectID(),
			"location", player.Location())
	}

	for _, pack := range spawns.Packs {
		arch, err := catalog.Lookup(pack.Archetype)
		if err != nil {
			return fmt.Errorf("spawning pack: %w", err)
		}
		for i := 0; i < pack.Count; i++ {
			agent := model.NewAgent(w.IDs().NextAgentID(), arch)
			agent.SetLocation(model.NewLocation(
				pack.X+jitter(pack.Spread),
				pack.Y+jitter(pack.Spread),
				pack.Z,
			))
			if err := w.AddAgent(agent); err != nil {
				return fmt.Errorf("spawning %s: %w", pack.Archetype, err)
			}
		}
		slog.Info("spawned pack",
			"archetype", pack.Archetype,
			"count", pack.Count,
			"at", model.NewLocation(pack.X, pack.Y, pack.Z))
	}

	return nil
}

func jitter(spread float64) float64 {
	if spread <= 0 {
		return 0
	}
	return (rand.Float64()*2 - 1) * spread
}
