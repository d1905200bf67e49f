package engine

import "arenagame/geom"

// Participant is one player in the arena. The local participant is a
// distinguished singleton on the Engine; remotes live in a keyed
// collection that never contains the local id.
type Participant struct {
	ID     string
	Name   string
	Pos    geom.Vector
	Facing int // -1 left, 1 right
	Angle  float64
	Health int
	Color  int // color index in [1,8]; 0 for the local participant
}

func clampHealth(health int) int {
	if health < 0 {
		return 0
	}
	return health
}
