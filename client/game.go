package client

import (
	"math"
	"time"

	"arenagame/engine"
	"arenagame/session"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game is the thin ebiten shell around the engine: it polls input, drains
// the session, ticks the engine, and draws whatever the engine says the
// world looks like. All engine mutation happens here, on the update
// goroutine.
type Game struct {
	engine  *engine.Engine
	session *session.Client
	speed   float64
	width   int
	height  int
}

func NewGame(e *engine.Engine, s *session.Client, speed float64, width, height int) *Game {
	g := &Game{
		engine:  e,
		session: s,
		speed:   speed,
		width:   width,
		height:  height,
	}
	// Render resources exist from here on; obstacle bootstraps may land.
	e.SetWorldReady()
	e.Attach()
	return g
}

func (g *Game) Update() error {
	g.session.Dispatch()
	g.handleInput()
	g.engine.Tick(time.Now())
	return nil
}

func (g *Game) handleInput() {
	var dx, dy float64
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		dx -= g.speed
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		dx += g.speed
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		dy -= g.speed
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		dy += g.speed
	}
	if dx != 0 || dy != 0 {
		g.engine.MoveLocal(dx, dy)
	}

	x, y := ebiten.CursorPosition()
	local := g.engine.Local()
	g.engine.SetAim(math.Atan2(float64(y)-local.Pos.Y, float64(x)-local.Pos.X))

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.engine.SpawnAttack(time.Now())
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.engine.FireProjectile(time.Now(), float64(x), float64(y))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
