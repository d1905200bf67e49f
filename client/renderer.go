package client

import (
	"fmt"
	"image/color"

	"arenagame/engine"
	"arenagame/geom"

	"github.com/ebiten/emoji"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

var background = color.RGBA{164, 178, 191, 255}

var localColor = color.RGBA{218, 212, 94, 255}

// palette maps the engine's color indices [1,8] to tints for remote
// participants. Index 0 is unused.
var palette = [9]color.RGBA{
	{},
	{208, 70, 72, 255},
	{89, 125, 206, 255},
	{109, 170, 44, 255},
	{210, 125, 44, 255},
	{133, 76, 48, 255},
	{180, 32, 180, 255},
	{109, 194, 202, 255},
	{222, 238, 214, 255},
}

var obstacleColor = color.RGBA{78, 74, 78, 255}

const (
	bodySize    = 24
	powerupSize = 16
)

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	for _, obstacle := range g.engine.Space().Obstacles() {
		ebitenutil.DrawRect(screen, obstacle.X, obstacle.Y, obstacle.W, obstacle.H, obstacleColor)
	}

	g.engine.ForEachPowerup(func(p *engine.Powerup) {
		drawPowerup(screen, p)
	})

	g.engine.ForEachRemote(func(p *engine.Participant) {
		drawParticipant(screen, p, palette[p.Color])
	})
	local := g.engine.Local()
	drawParticipant(screen, local, localColor)

	if attack := g.engine.Attack(); attack != nil {
		hb := attack.Hitbox
		ebitenutil.DrawRect(screen, hb.X, hb.Y, hb.W, hb.H, color.RGBA{255, 255, 255, 120})
	}

	for _, p := range g.engine.Projectiles() {
		ebitenutil.DrawRect(screen, p.Pos.X-4, p.Pos.Y-4, 8, 8, color.RGBA{34, 32, 52, 255})
	}

	x, y := ebiten.CursorPosition()
	center := geom.Vector{X: local.Pos.X + bodySize/2, Y: local.Pos.Y + bodySize/2}
	ebitenutil.DrawLine(screen, center.X, center.Y, float64(x), float64(y), color.RGBA{255, 0, 0, 255})

	ebitenutil.DebugPrint(screen, fmt.Sprintf("TPS: %0.02f FPS: %0.02f", ebiten.ActualTPS(), ebiten.ActualFPS()))
}

func drawParticipant(screen *ebiten.Image, p *engine.Participant, tint color.RGBA) {
	ebitenutil.DrawRect(screen, p.Pos.X, p.Pos.Y, bodySize, bodySize, tint)
	label := fmt.Sprintf("%s\n%d", p.Name, p.Health)
	ebitenutil.DebugPrintAt(screen, label, int(p.Pos.X), int(p.Pos.Y)+bodySize)
}

func drawPowerup(screen *ebiten.Image, p *engine.Powerup) {
	image := emoji.Image("💊")
	if p.Type == engine.PowerupHealth {
		image = emoji.Image("❤️")
	}
	opt := &ebiten.DrawImageOptions{}
	width, _ := image.Size()
	scale := powerupSize / float64(width)
	opt.GeoM.Scale(scale, scale)
	opt.GeoM.Translate(p.Pos.X, p.Pos.Y)
	opt.Filter = ebiten.FilterLinear
	screen.DrawImage(image, opt)
}
