package utils

import (
	"math"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type PlayerConfig struct {
	Name  string
	Speed float64
}

type CombatConfig struct {
	MeleeDamage      int
	ProjectileDamage int
	PowerupHeal      int
	AttackCooldownMs int
	HitboxLifetimeMs int
	ProjectileTTLMs  int
	ProjectileSpeed  float64
}

type ArenaConfig struct {
	Width    float64
	Height   float64
	TileSize float64
}

type SyncConfig struct {
	PositionThrottleMs int
}

type ServerConfig struct {
	URL  string
	Room string
}

type ResolutionConfig struct {
	X, Y int
}

type UIConfig struct {
	Resolution ResolutionConfig
}

type MathConfig struct {
	Float64EqualityThreshold float64
}

type Config struct {
	Player PlayerConfig
	Combat CombatConfig
	Arena  ArenaConfig
	Sync   SyncConfig
	Server ServerConfig
	UI     UIConfig
	Math   MathConfig
}

func ReadTOML(fileName string) (*Config, error) {
	file, err := os.ReadFile(fileName)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := toml.Unmarshal(file, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

func AlmostEqual(a, b, threshold float64) bool {
	return math.Abs(a-b) <= threshold
}
