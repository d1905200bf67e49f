// Package relay is the room infrastructure the clients talk to. It is a
// store-and-forward hub, not an authoritative simulation: it records what
// clients report (positions, damage, deaths), re-broadcasts combat events
// to the other subscribers, and pushes periodic roster snapshots and room
// state. Combat itself is resolved on the clients.
package relay

import (
	"context"
	"encoding/json"
	"log"
	"math/rand"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	"arenagame/protocol"

	"github.com/segmentio/ksuid"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const (
	rosterInterval  = 100 * time.Millisecond
	stateInterval   = 500 * time.Millisecond
	powerupInterval = 15 * time.Second

	arenaWidth  = 1024
	arenaHeight = 768
	tileSize    = 32

	maxHealth = 100
)

type subscriber struct {
	messages chan protocol.Envelope
	account  string
	conn     *websocket.Conn
}

type playerState struct {
	x, y   float64
	angle  float64
	health int
	name   string
}

type Relay struct {
	mu          sync.RWMutex
	subscribers map[*subscriber]struct{}
	players     map[string]*playerState
	obstacles   []protocol.Obstacle
	powerups    map[string]protocol.Powerup
	serveMux    http.ServeMux
}

func NewRelay() *Relay {
	r := &Relay{
		subscribers: make(map[*subscriber]struct{}),
		players:     make(map[string]*playerState),
		obstacles:   scatterObstacles(12),
		powerups:    make(map[string]protocol.Powerup),
	}
	r.serveMux.HandleFunc("/", r.onConnection)

	go func() {
		roster := time.NewTicker(rosterInterval)
		state := time.NewTicker(stateInterval)
		powerups := time.NewTicker(powerupInterval)
		for {
			select {
			case <-roster.C:
				r.publishRoster()
			case <-state.C:
				r.publishState()
			case <-powerups.C:
				r.spawnPowerup()
			}
		}
	}()
	return r
}

// scatterObstacles places interior blocks on the tile grid, away from the
// border ring the clients build themselves.
func scatterObstacles(count int) []protocol.Obstacle {
	cols := arenaWidth/tileSize - 2
	rows := arenaHeight/tileSize - 2
	obstacles := make([]protocol.Obstacle, 0, count)
	for i := 0; i < count; i++ {
		obstacles = append(obstacles, protocol.Obstacle{
			X: float64((1 + rand.Intn(cols)) * tileSize),
			Y: float64((1 + rand.Intn(rows)) * tileSize),
		})
	}
	return obstacles
}

func (r *Relay) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.serveMux.ServeHTTP(w, req)
}

func (r *Relay) onConnection(w http.ResponseWriter, req *http.Request) {
	conn, err := websocket.Accept(w, req, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		log.Println(err)
		return
	}
	defer conn.Close(websocket.StatusInternalError, "")

	if err := r.handleConnection(req.Context(), conn); err != nil {
		log.Println(err)
	}
}

func (r *Relay) handleConnection(ctx context.Context, conn *websocket.Conn) error {
	sub := &subscriber{
		messages: make(chan protocol.Envelope, 1024),
		conn:     conn,
	}
	r.addSubscriber(sub)
	defer r.removeSubscriber(sub)

	go func() {
		for {
			var envelope protocol.Envelope
			if err := wsjson.Read(ctx, conn, &envelope); err != nil {
				log.Println(err)
				return
			}
			r.onEnvelope(sub, envelope)
		}
	}()

	for {
		select {
		case msg := <-sub.messages:
			if err := wsjson.Write(ctx, conn, msg); err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (r *Relay) onEnvelope(sub *subscriber, envelope protocol.Envelope) {
	switch envelope.Event {
	case protocol.EventJoin:
		var join protocol.Join
		if err := json.Unmarshal(envelope.Data, &join); err != nil || join.Account == "" {
			log.Printf("bad join from %s: %v", envelope.Sender, err)
			return
		}
		r.mu.Lock()
		sub.account = join.Account
		r.players[join.Account] = &playerState{
			x:      arenaWidth / 2,
			y:      arenaHeight / 2,
			health: maxHealth,
			name:   join.Name,
		}
		obstacles := r.obstacles
		r.mu.Unlock()

		// One-shot obstacle delivery; the recurring state broadcast is
		// the second source.
		data, _ := json.Marshal(obstacles)
		sub.messages <- protocol.Envelope{Event: protocol.EventObstacles, Data: data}

	case protocol.CallPlayerUpdate:
		var update protocol.PlayerUpdate
		if err := json.Unmarshal(envelope.Data, &update); err != nil {
			return
		}
		r.mu.Lock()
		if player, ok := r.players[envelope.Sender]; ok {
			player.x = update.X
			player.y = update.Y
			player.angle = update.Angle
			player.health = update.Health
			if update.Name != "" {
				player.name = update.Name
			}
		}
		r.mu.Unlock()

	case protocol.CallPlayerHit:
		var hit protocol.PlayerHit
		if err := json.Unmarshal(envelope.Data, &hit); err != nil {
			return
		}
		r.mu.Lock()
		if target, ok := r.players[hit.TargetID]; ok {
			target.health -= hit.Damage
			if target.health < 0 {
				target.health = 0
			}
		}
		r.mu.Unlock()

	case protocol.CallPlayerDied:
		var died protocol.PlayerDied
		if err := json.Unmarshal(envelope.Data, &died); err != nil {
			return
		}
		r.mu.Lock()
		if player, ok := r.players[died.PlayerID]; ok {
			// Respawn with full health at the center.
			player.health = maxHealth
			player.x = arenaWidth / 2
			player.y = arenaHeight / 2
		}
		r.mu.Unlock()

	case protocol.CallPlayerAttack, protocol.CallProjectileFire:
		r.publishExcept(sub, envelope)

	default:
		log.Printf("unknown event %q from %s", envelope.Event, envelope.Sender)
	}
}

func (r *Relay) spawnPowerup() {
	powerup := protocol.Powerup{
		ID:   ksuid.New().String(),
		Type: "health",
		X:    float64((1 + rand.Intn(arenaWidth/tileSize-2)) * tileSize),
		Y:    float64((1 + rand.Intn(arenaHeight/tileSize-2)) * tileSize),
	}
	r.mu.Lock()
	r.powerups[powerup.ID] = powerup
	r.mu.Unlock()

	data, _ := json.Marshal(protocol.PowerupSpawned{
		ID: powerup.ID, Type: powerup.Type, X: powerup.X, Y: powerup.Y,
	})
	r.publish(protocol.Envelope{Event: protocol.EventPowerupSpawned, Data: data})
}

func (r *Relay) publishRoster() {
	r.mu.RLock()
	snapshot := make([]protocol.RosterEntry, 0, len(r.players))
	for account, player := range r.players {
		health := player.health
		snapshot = append(snapshot, protocol.RosterEntry{
			Account: account,
			X:       player.x,
			Y:       player.y,
			Name:    player.name,
			Health:  &health,
		})
	}
	r.mu.RUnlock()

	data, err := json.Marshal(snapshot)
	if err != nil {
		log.Println(err)
		return
	}
	r.publish(protocol.Envelope{Event: protocol.EventRoster, Data: data})
}

func (r *Relay) publishState() {
	r.mu.RLock()
	state := protocol.RoomState{Obstacles: r.obstacles}
	for _, powerup := range r.powerups {
		state.Powerups = append(state.Powerups, powerup)
	}
	r.mu.RUnlock()

	data, err := json.Marshal(state)
	if err != nil {
		log.Println(err)
		return
	}
	r.publish(protocol.Envelope{Event: protocol.EventState, Data: data})
}

func (r *Relay) publish(envelope protocol.Envelope) {
	r.publishExcept(nil, envelope)
}

func (r *Relay) publishExcept(skip *subscriber, envelope protocol.Envelope) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for sub := range r.subscribers {
		if sub == skip {
			continue
		}
		select {
		case sub.messages <- envelope:
		default:
			sub.conn.Close(websocket.StatusPolicyViolation, "write would block")
		}
	}
}

func (r *Relay) addSubscriber(sub *subscriber) {
	r.mu.Lock()
	r.subscribers[sub] = struct{}{}
	r.mu.Unlock()
}

func (r *Relay) removeSubscriber(sub *subscriber) {
	r.mu.Lock()
	delete(r.subscribers, sub)
	if sub.account != "" {
		delete(r.players, sub.account)
	}
	r.mu.Unlock()
}

func Run(address string) error {
	log.SetFlags(log.LstdFlags | log.Llongfile)
	l, err := net.Listen("tcp", address)
	if err != nil {
		return err
	}
	log.Printf("relay listening on http://%v", l.Addr())

	s := &http.Server{
		Handler:      NewRelay(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- s.Serve(l)
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	select {
	case err := <-errc:
		log.Println(err)
	case sig := <-sigs:
		log.Printf("terminating: %v", sig)
	}
	return s.Shutdown(context.Background())
}
