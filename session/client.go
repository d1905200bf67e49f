// Package session implements the capability contract the engine consumes:
// subscribe to room events, subscribe to room state, and fire-and-forget
// remote calls with optional throttling. The transport is a single
// websocket; inbound frames are buffered and drained on the game loop so
// handlers never race the tick.
package session

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"arenagame/protocol"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

type Client struct {
	conn *websocket.Conn
	id   string
	room string

	handlers      map[string][]func(data []byte)
	stateHandlers []func(state protocol.RoomState)

	inbound  chan protocol.Envelope
	outbound chan protocol.Envelope

	lastCall map[string]time.Time
	now      func() time.Time
}

func newClient(conn *websocket.Conn, room, id string) *Client {
	return &Client{
		conn:     conn,
		id:       id,
		room:     room,
		handlers: make(map[string][]func(data []byte)),
		inbound:  make(chan protocol.Envelope, 1024),
		outbound: make(chan protocol.Envelope, 1024),
		lastCall: make(map[string]time.Time),
		now:      time.Now,
	}
}

// Dial connects to the session server and joins a room.
func Dial(ctx context.Context, url, room, id, name string) (*Client, error) {
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	c := newClient(conn, room, id)
	c.Call(protocol.EventJoin, protocol.Join{Account: id, Name: name}, nil)
	return c, nil
}

func (c *Client) Subscribe(room, event string, handler func(data []byte)) {
	if room != c.room {
		log.Printf("subscribe for room %s on a client joined to %s, ignoring", room, c.room)
		return
	}
	c.handlers[event] = append(c.handlers[event], handler)
}

func (c *Client) SubscribeState(room string, handler func(state protocol.RoomState)) {
	if room != c.room {
		log.Printf("state subscribe for room %s on a client joined to %s, ignoring", room, c.room)
		return
	}
	c.stateHandlers = append(c.stateHandlers, handler)
}

// Call stages a fire-and-forget remote invocation. A throttle option caps
// how often calls with the same name leave the client; throttled and
// overflowing calls are dropped, never queued.
func (c *Client) Call(name string, args any, opts *protocol.CallOptions) {
	if opts != nil && opts.ThrottleMs > 0 {
		now := c.now()
		if last, ok := c.lastCall[name]; ok && now.Sub(last) < time.Duration(opts.ThrottleMs)*time.Millisecond {
			return
		}
		c.lastCall[name] = now
	}

	data, err := json.Marshal(args)
	if err != nil {
		log.Printf("cannot marshal %s args: %v", name, err)
		return
	}
	select {
	case c.outbound <- protocol.Envelope{Event: name, Sender: c.id, Data: data}:
	default:
		log.Printf("outbound queue full, dropping %s", name)
	}
}

// Pending reports how many staged calls have not been written yet.
func (c *Client) Pending() int { return len(c.outbound) }

// ReadMessages pumps server frames into the inbound buffer. Run it on its
// own goroutine; Dispatch drains the buffer on the game loop.
func (c *Client) ReadMessages(ctx context.Context) error {
	for {
		var envelope protocol.Envelope
		if err := wsjson.Read(ctx, c.conn, &envelope); err != nil {
			return err
		}
		select {
		case c.inbound <- envelope:
		default:
			log.Printf("inbound queue full, dropping %s", envelope.Event)
		}
	}
}

// WriteMessages drains staged calls onto the wire until ctx ends.
func (c *Client) WriteMessages(ctx context.Context) error {
	for {
		select {
		case envelope := <-c.outbound:
			if err := wsjson.Write(ctx, c.conn, envelope); err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Dispatch invokes handlers for every buffered inbound message. It is
// called from the game loop, so handler side effects happen on the same
// goroutine as the engine tick. Each handler runs to completion before
// the next message is looked at.
func (c *Client) Dispatch() {
	for {
		select {
		case envelope := <-c.inbound:
			c.dispatch(envelope)
		default:
			return
		}
	}
}

func (c *Client) dispatch(envelope protocol.Envelope) {
	if envelope.Event == protocol.EventState {
		var state protocol.RoomState
		if err := json.Unmarshal(envelope.Data, &state); err != nil {
			log.Printf("bad room state payload: %v", err)
			return
		}
		for _, handler := range c.stateHandlers {
			handler(state)
		}
		return
	}
	for _, handler := range c.handlers[envelope.Event] {
		handler(envelope.Data)
	}
}

func (c *Client) Close() {
	c.conn.Close(websocket.StatusNormalClosure, "")
}
