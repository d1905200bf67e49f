package utils

import (
	"os"
	"path/filepath"
	"testing"
)

const testConfig = `
[Player]
Name = "tester"
Speed = 3.5

[Combat]
MeleeDamage = 10
ProjectileDamage = 20
AttackCooldownMs = 500
HitboxLifetimeMs = 300
ProjectileTTLMs = 2000
ProjectileSpeed = 400.0

[Arena]
Width = 1024.0
Height = 768.0
TileSize = 32.0

[Sync]
PositionThrottleMs = 50

[Server]
URL = "ws://localhost:4242"
Room = "arena-1"

[UI.Resolution]
X = 1024
Y = 768
`

func TestReadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(testConfig), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := ReadTOML(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Player.Name != "tester" {
		t.Fatalf("Player.Name = %q, want tester", cfg.Player.Name)
	}
	if cfg.Combat.MeleeDamage != 10 {
		t.Fatalf("Combat.MeleeDamage = %d, want 10", cfg.Combat.MeleeDamage)
	}
	if cfg.Combat.HitboxLifetimeMs >= cfg.Combat.AttackCooldownMs {
		t.Fatal("hitbox lifetime must stay shorter than the attack cooldown")
	}
	if cfg.Sync.PositionThrottleMs != 50 {
		t.Fatalf("Sync.PositionThrottleMs = %d, want 50", cfg.Sync.PositionThrottleMs)
	}
	if cfg.UI.Resolution.X != 1024 || cfg.UI.Resolution.Y != 768 {
		t.Fatalf("UI.Resolution = %+v, want 1024x768", cfg.UI.Resolution)
	}
}

func TestReadTOMLMissingFile(t *testing.T) {
	if _, err := ReadTOML("does-not-exist.toml"); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestAlmostEqual(t *testing.T) {
	if !AlmostEqual(1.0, 1.0+1e-10, 1e-9) {
		t.Fatal("values within threshold should compare equal")
	}
	if AlmostEqual(1.0, 1.1, 1e-9) {
		t.Fatal("values beyond threshold should not compare equal")
	}
}
