package engine

import (
	"log"

	"arenagame/geom"
	"arenagame/protocol"
)

// TryBootstrap materializes the static world geometry exactly once per
// session. Both the one-shot obstacles event and the recurring room-state
// subscription call this; whichever lands second is a no-op. The border
// is computed locally from the arena config so every client's border is
// identical regardless of server input.
func (e *Engine) TryBootstrap(obstacles []protocol.Obstacle) {
	if e.bootstrapped {
		return
	}
	if !e.worldReady {
		log.Printf("world resources not ready, dropping obstacle bootstrap (%d obstacles)", len(obstacles))
		return
	}

	e.space.ClearObstacles()
	e.addBorder()
	for _, o := range obstacles {
		e.space.AddObstacle(geom.Rect{X: o.X, Y: o.Y, W: e.cfg.TileSize, H: e.cfg.TileSize})
	}

	e.space.AddCollider(e.local.ID)
	for id := range e.remotes {
		e.space.AddCollider(id)
	}

	e.bootstrapped = true
}

// addBorder lays a fixed ring of tiles around the arena edge.
func (e *Engine) addBorder() {
	tile := e.cfg.TileSize
	cols := int(e.cfg.ArenaWidth / tile)
	rows := int(e.cfg.ArenaHeight / tile)

	for x := 0; x < cols; x++ {
		e.space.AddObstacle(geom.Rect{X: float64(x) * tile, Y: 0, W: tile, H: tile})
		e.space.AddObstacle(geom.Rect{X: float64(x) * tile, Y: float64(rows-1) * tile, W: tile, H: tile})
	}
	for y := 1; y < rows-1; y++ {
		e.space.AddObstacle(geom.Rect{X: 0, Y: float64(y) * tile, W: tile, H: tile})
		e.space.AddObstacle(geom.Rect{X: float64(cols-1) * tile, Y: float64(y) * tile, W: tile, H: tile})
	}
}
