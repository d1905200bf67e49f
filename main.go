package main

import (
	"context"
	"log"
	"os"
	"time"

	"arenagame/client"
	"arenagame/engine"
	"arenagame/geom"
	"arenagame/relay"
	"arenagame/session"
	"arenagame/utils"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/segmentio/ksuid"
)

func engineConfig(cfg *utils.Config) engine.Config {
	ec := engine.DefaultConfig()
	if cfg.Combat.MeleeDamage > 0 {
		ec.MeleeDamage = cfg.Combat.MeleeDamage
	}
	if cfg.Combat.ProjectileDamage > 0 {
		ec.ProjectileDamage = cfg.Combat.ProjectileDamage
	}
	if cfg.Combat.PowerupHeal > 0 {
		ec.PowerupHeal = cfg.Combat.PowerupHeal
	}
	if cfg.Combat.AttackCooldownMs > 0 {
		ec.AttackCooldown = time.Duration(cfg.Combat.AttackCooldownMs) * time.Millisecond
	}
	if cfg.Combat.HitboxLifetimeMs > 0 {
		ec.HitboxLifetime = time.Duration(cfg.Combat.HitboxLifetimeMs) * time.Millisecond
	}
	if cfg.Combat.ProjectileTTLMs > 0 {
		ec.ProjectileTTL = time.Duration(cfg.Combat.ProjectileTTLMs) * time.Millisecond
	}
	if cfg.Combat.ProjectileSpeed > 0 {
		ec.ProjectileSpeed = cfg.Combat.ProjectileSpeed
	}
	if cfg.Sync.PositionThrottleMs > 0 {
		ec.PositionInterval = time.Duration(cfg.Sync.PositionThrottleMs) * time.Millisecond
	}
	if cfg.Arena.Width > 0 {
		ec.ArenaWidth = cfg.Arena.Width
	}
	if cfg.Arena.Height > 0 {
		ec.ArenaHeight = cfg.Arena.Height
	}
	if cfg.Arena.TileSize > 0 {
		ec.TileSize = cfg.Arena.TileSize
	}
	return ec
}

func main() {
	log.SetFlags(log.LstdFlags | log.Llongfile)

	if len(os.Args) > 1 && os.Args[1] == "relay" {
		address := "localhost:4242"
		if len(os.Args) > 2 {
			address = os.Args[2]
		}
		if err := relay.Run(address); err != nil {
			log.Fatal(err)
		}
		return
	}

	cfg, err := utils.ReadTOML("config.toml")
	if err != nil {
		log.Fatal(err)
	}

	url := cfg.Server.URL
	if url == "" {
		url = "ws://localhost:4242"
	}
	room := cfg.Server.Room
	if room == "" {
		room = "arena-1"
	}
	name := cfg.Player.Name
	if name == "" {
		name = "anonymous"
	}
	speed := cfg.Player.Speed
	if speed == 0 {
		speed = 3
	}

	resolution := cfg.UI.Resolution
	if resolution.X == 0 || resolution.Y == 0 {
		resolution = utils.ResolutionConfig{X: 1024, Y: 768}
	}
	ebiten.SetWindowSize(resolution.X, resolution.Y)
	ebiten.SetWindowTitle("Arena")

	localID := ksuid.New().String()
	ctx := context.Background()

	sess, err := session.Dial(ctx, url, room, localID, name)
	if err != nil {
		log.Printf("dial %s failed: %v, spinning up a local relay", url, err)
		go func() {
			if err := relay.Run("localhost:4242"); err != nil {
				log.Fatal(err)
			}
			log.Fatal("relay shutdown")
		}()
		time.Sleep(50 * time.Millisecond)
		sess, err = session.Dial(ctx, "ws://localhost:4242", room, localID, name)
		if err != nil {
			log.Fatal(err)
		}
	}
	defer sess.Close()

	e := engine.New(engineConfig(cfg), geom.NewSpace(), sess, room, localID, name)
	defer e.Teardown()

	go func() {
		if err := sess.ReadMessages(ctx); err != nil {
			log.Fatal(err)
		}
	}()
	go func() {
		if err := sess.WriteMessages(ctx); err != nil {
			log.Fatal(err)
		}
	}()

	game := client.NewGame(e, sess, speed, resolution.X, resolution.Y)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
