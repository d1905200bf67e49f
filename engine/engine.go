// Package engine is the client-side reconciliation and combat engine: it
// merges locally applied combat effects with server roster snapshots,
// deduplicates hits, owns ephemeral entities, and bootstraps shared world
// geometry from whichever source delivers it first.
//
// Everything in here is mutated from a single goroutine: the game loop
// calls Tick, and inbound session messages are drained on that same loop
// before Tick runs. No locking, but handlers may fire between any two
// ticks, so nothing assumes a participant survives from one check to the
// next.
package engine

import (
	"time"

	"arenagame/geom"
	"arenagame/protocol"
)

// Session is the narrow slice of the session server the engine needs.
type Session interface {
	Subscribe(room, event string, handler func(data []byte))
	SubscribeState(room string, handler func(state protocol.RoomState))
	Call(name string, args any, opts *protocol.CallOptions)
}

type Config struct {
	MeleeDamage      int
	ProjectileDamage int
	PowerupHeal      int
	MaxHealth        int

	AttackCooldown  time.Duration
	HitboxLifetime  time.Duration
	ProjectileTTL   time.Duration
	ProjectileSpeed float64

	PositionInterval time.Duration

	ArenaWidth  float64
	ArenaHeight float64
	TileSize    float64

	BodyWidth    float64
	BodyHeight   float64
	HitboxWidth  float64
	HitboxHeight float64
}

func DefaultConfig() Config {
	return Config{
		MeleeDamage:      10,
		ProjectileDamage: 20,
		PowerupHeal:      25,
		MaxHealth:        100,
		AttackCooldown:   500 * time.Millisecond,
		HitboxLifetime:   300 * time.Millisecond,
		ProjectileTTL:    2000 * time.Millisecond,
		ProjectileSpeed:  400,
		PositionInterval: 50 * time.Millisecond,
		ArenaWidth:       1024,
		ArenaHeight:      768,
		TileSize:         32,
		BodyWidth:        24,
		BodyHeight:       24,
		HitboxWidth:      28,
		HitboxHeight:     24,
	}
}

// Engine is the per-session reconciliation context. One is constructed on
// session join and torn down on leave; all component operations hang off
// it.
type Engine struct {
	cfg     Config
	session Session
	room    string
	space   *geom.Space

	local   *Participant
	remotes map[string]*Participant
	colors  colorAllocator
	overlay healthOverlay

	attack        *AttackEvent
	attackCooling bool
	projectiles   map[string]*Projectile
	powerups      map[string]*Powerup
	consumed      map[string]struct{}

	tasks taskQueue

	bootstrapped bool
	worldReady   bool

	lastTick time.Time
	lastPush time.Time
}

func New(cfg Config, space *geom.Space, session Session, room, localID, name string) *Engine {
	e := &Engine{
		cfg:     cfg,
		session: session,
		room:    room,
		space:   space,
		local: &Participant{
			ID:     localID,
			Name:   name,
			Facing: 1,
			Health: cfg.MaxHealth,
			Pos:    geom.Vector{X: cfg.ArenaWidth / 2, Y: cfg.ArenaHeight / 2},
		},
		remotes:     make(map[string]*Participant),
		overlay:     make(healthOverlay),
		projectiles: make(map[string]*Projectile),
		powerups:    make(map[string]*Powerup),
		consumed:    make(map[string]struct{}),
	}
	space.AddBody(localID, e.rect(e.local))
	return e
}

func (e *Engine) Local() *Participant { return e.local }

// Space exposes the collision space for the render layer.
func (e *Engine) Space() *geom.Space { return e.space }

func (e *Engine) Remote(id string) *Participant { return e.remotes[id] }

func (e *Engine) ForEachRemote(callback func(*Participant)) {
	for _, p := range e.remotes {
		callback(p)
	}
}

func (e *Engine) Bootstrapped() bool { return e.bootstrapped }

// SetWorldReady marks the render/world resources as available; bootstrap
// attempts before this point are dropped, not queued.
func (e *Engine) SetWorldReady() { e.worldReady = true }

// MoveLocal shifts the local participant through the collision space and
// mirrors the resulting position back onto the participant.
func (e *Engine) MoveLocal(dx, dy float64) {
	if dx > 0 {
		e.local.Facing = 1
	} else if dx < 0 {
		e.local.Facing = -1
	}
	e.space.Move(e.local.ID, dx, dy)
	if body := e.space.Body(e.local.ID); body != nil {
		e.local.Pos = geom.Vector{X: body.X, Y: body.Y}
	}
}

func (e *Engine) SetAim(angle float64) { e.local.Angle = angle }

// Tick advances the engine by one frame: due scheduled actions, the melee
// sweep, projectile checks, powerup pickups, and the outbound sync.
func (e *Engine) Tick(now time.Time) {
	dt := 0.0
	if !e.lastTick.IsZero() {
		dt = now.Sub(e.lastTick).Seconds()
	}
	e.lastTick = now

	e.tasks.Drain(now)
	e.sweepMelee()
	e.tickProjectiles(now, dt)
	e.tickPowerups()
	e.maybePush(now)
}

// Teardown ends the session context. Pending delayed actions are
// discarded without firing.
func (e *Engine) Teardown() {
	e.tasks.Discard()
	e.attack = nil
	e.projectiles = make(map[string]*Projectile)
	for id := range e.remotes {
		e.space.RemoveBody(id)
		delete(e.remotes, id)
	}
	e.space.RemoveBody(e.local.ID)
}

func (e *Engine) rect(p *Participant) geom.Rect {
	return geom.Rect{X: p.Pos.X, Y: p.Pos.Y, W: e.cfg.BodyWidth, H: e.cfg.BodyHeight}
}

func (e *Engine) localRect() geom.Rect { return e.rect(e.local) }
