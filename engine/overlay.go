package engine

// healthOverlay shadows server-reported health with locally observed
// damage. Once an entry exists for an id, every later snapshot value for
// that id loses to it until the id leaves the roster — a sticky override,
// not a smoothing buffer. This avoids visible health snap-back under
// network lag at the cost of permanent divergence when the server's view
// differs (heals, third-party damage). Accepted trade-off; see DESIGN.md.
type healthOverlay map[string]int

func (o healthOverlay) Record(id string, health int) {
	o[id] = health
}

func (o healthOverlay) Resolve(id string, snapshotHealth int) int {
	if health, ok := o[id]; ok {
		return health
	}
	return snapshotHealth
}

// Clear drops the override for id. Called only when id departs the
// roster.
func (o healthOverlay) Clear(id string) {
	delete(o, id)
}
