package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Server holds all configuration for the combat server.
type Server struct {
	LogLevel string `yaml:"log_level"` // debug|info|warn|error

	// Simulation
	TickMillis   int     `yaml:"tick_millis"`   // fixed tick length
	WeaponRange  float64 `yaml:"weapon_range"`  // meters, weapon-capable reach
	WeaponKind   string  `yaml:"weapon_kind"`   // m4|ak47|plasma_rifle
	TargetPolicy string  `yaml:"target_policy"` // nearest|random
	AttackPolicy string  `yaml:"attack_policy"` // random|round_robin

	// Bestiary
	BestiaryPath  string `yaml:"bestiary_path"` // empty = embedded default table
	WatchBestiary bool   `yaml:"watch_bestiary"`

	// Clip lengths in seconds per animation path, supplied here because
	// asset parsing is out of scope. Unlisted clips have unknown duration.
	ClipDurations map[string]float64 `yaml:"clip_durations"`

	// Outputs
	FeedBind   string `yaml:"feed_bind"`   // empty disables the websocket feed
	JournalDir string `yaml:"journal_dir"` // empty disables the event journal

	Database DatabaseConfig `yaml:"database"`

	Spawns Spawns `yaml:"spawns"`
}

// DatabaseConfig holds PostgreSQL connection parameters for the kill log.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Spawns describes the initial world population.
type Spawns struct {
	Player PlayerSpawn `yaml:"player"`
	Packs  []PackSpawn `yaml:"packs"`
}

// PlayerSpawn places the player-controlled agent.
type PlayerSpawn struct {
	Enabled bool    `yaml:"enabled"`
	Health  float64 `yaml:"health"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Z       float64 `yaml:"z"`
}

// PackSpawn places Count agents of one archetype around a point.
type PackSpawn struct {
	Archetype string  `yaml:"archetype"`
	Count     int     `yaml:"count"`
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Z         float64 `yaml:"z"`
	Spread    float64 `yaml:"spread"` // max random offset on X/Y, meters
}

// DefaultServer returns Server config with sensible defaults.
func DefaultServer() Server {
	return Server{
		LogLevel:    "info",
		TickMillis:  50,
		WeaponRange: 10.0,
		WeaponKind:  "m4",
		FeedBind:    "127.0.0.1:8666",
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "mobd",
			Password: "mobd",
			DBName:   "mobd",
			SSLMode:  "disable",
		},
		Spawns: Spawns{
			Player: PlayerSpawn{Enabled: true, Health: 100},
			Packs: []PackSpawn{
				{Archetype: "Zombie", Count: 3, X: 5, Spread: 2},
				{Archetype: "Mutant", Count: 1, X: -8, Spread: 1},
				{Archetype: "Parasite", Count: 2, Y: 6, Spread: 2},
			},
		},
	}
}

// LoadServer loads server config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadServer(path string) (Server, error) {
	cfg := DefaultServer()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}
