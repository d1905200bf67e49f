// Package protocol holds the wire shapes exchanged with the session
// server. Everything is JSON; optional roster fields use pointers so a
// missing value is distinguishable from zero.
package protocol

import "encoding/json"

// Envelope wraps every websocket frame in both directions. Event names
// match the call/subscription names; Data carries the payload below.
type Envelope struct {
	Event  string          `json:"event"`
	Sender string          `json:"sender,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
}

type CallOptions struct {
	// ThrottleMs caps how often a call with the same name is sent.
	ThrottleMs int
}

type ProjectileFired struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	TargetX float64 `json:"targetX"`
	TargetY float64 `json:"targetY"`
	ID      string  `json:"id"`
	OwnerID string  `json:"ownerId"`
}

type PowerupSpawned struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	ID   string  `json:"id"`
	Type string  `json:"type"`
}

type PlayerAttack struct {
	ID        int64   `json:"id"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Direction int     `json:"direction"`
	OwnerID   string  `json:"ownerId"`
	OwnerName string  `json:"ownerName"`
}

type PlayerHit struct {
	TargetID     string `json:"targetId"`
	AttackerID   string `json:"attackerId"`
	ProjectileID string `json:"projectileId"`
	Damage       int    `json:"damage"`
}

type PlayerDied struct {
	PlayerID string `json:"playerId"`
	KillerID string `json:"killerId"`
}

// PlayerUpdate is the updatePlayerPosition payload, throttled to 50ms.
type PlayerUpdate struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Angle  float64 `json:"angle"`
	Health int     `json:"health"`
	Name   string  `json:"name"`
}

type Obstacle struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Powerup struct {
	ID   string  `json:"id"`
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

type RoomState struct {
	Obstacles []Obstacle `json:"obstacles,omitempty"`
	Powerups  []Powerup  `json:"powerups,omitempty"`
}

type RosterEntry struct {
	Account string  `json:"account"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Name    string  `json:"name,omitempty"`
	Health  *int    `json:"health,omitempty"`
}

// Join is sent once after connecting so the relay can seed its roster.
type Join struct {
	Account string  `json:"account"`
	Name    string  `json:"name"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

// Event and call names.
const (
	EventProjectileFired = "projectileFired"
	EventPowerupSpawned  = "powerupSpawned"
	EventObstacles       = "obstacles"
	EventRoster          = "roster"
	EventState           = "state"
	EventJoin            = "join"

	CallPlayerAttack   = "playerAttack"
	CallPlayerHit      = "playerHit"
	CallPlayerDied     = "playerDied"
	CallPlayerUpdate   = "updatePlayerPosition"
	CallProjectileFire = "projectileFired"
)
