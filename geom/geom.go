package geom

import "fmt"

type Vector struct {
	X, Y float64
}

type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

func (r Rect) Center() Vector {
	return Vector{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

type Body struct {
	Rect
}

// Space is the collision service the engine consumes as a black box:
// a static obstacle set plus keyed movable bodies. Bodies only collide
// with obstacles once a collider has been registered for them.
type Space struct {
	obstacles []Rect
	bodies    map[string]*Body
	colliders map[string]struct{}
}

func NewSpace() *Space {
	return &Space{
		bodies:    make(map[string]*Body),
		colliders: make(map[string]struct{}),
	}
}

func (s *Space) AddObstacle(r Rect) {
	s.obstacles = append(s.obstacles, r)
}

func (s *Space) ClearObstacles() {
	s.obstacles = s.obstacles[:0]
}

func (s *Space) Obstacles() []Rect {
	return s.obstacles
}

func (s *Space) HitsObstacle(r Rect) bool {
	for _, obstacle := range s.obstacles {
		if obstacle.Overlaps(r) {
			return true
		}
	}
	return false
}

func (s *Space) AddBody(id string, r Rect) error {
	if _, ok := s.bodies[id]; ok {
		return fmt.Errorf("body %s already exists", id)
	}
	s.bodies[id] = &Body{Rect: r}
	return nil
}

func (s *Space) RemoveBody(id string) {
	delete(s.bodies, id)
	delete(s.colliders, id)
}

func (s *Space) Body(id string) *Body {
	return s.bodies[id]
}

// AddCollider makes future Move calls for id respect the obstacle set.
func (s *Space) AddCollider(id string) {
	if _, ok := s.bodies[id]; !ok {
		return
	}
	s.colliders[id] = struct{}{}
}

func (s *Space) SetPosition(id string, x, y float64) {
	body, ok := s.bodies[id]
	if !ok {
		return
	}
	body.X = x
	body.Y = y
}

// Move shifts a body by (dx, dy), scanning each axis separately so a
// collider slides along obstacles instead of sticking to them.
func (s *Space) Move(id string, dx, dy float64) {
	body, ok := s.bodies[id]
	if !ok {
		return
	}
	_, solid := s.colliders[id]

	if dx != 0 {
		moved := body.Rect
		moved.X += dx
		if !solid || !s.HitsObstacle(moved) {
			body.X = moved.X
		}
	}
	if dy != 0 {
		moved := body.Rect
		moved.Y += dy
		if !solid || !s.HitsObstacle(moved) {
			body.Y = moved.Y
		}
	}
}
