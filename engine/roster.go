package engine

import (
	"arenagame/geom"
	"arenagame/protocol"
)

// ApplyRosterSnapshot reconciles the remote participant set against a
// server snapshot. Afterward, membership equals exactly the snapshot's
// non-local id set: unseen ids are created (color index, collision body,
// collider if geometry is already up), known ids take last-write-wins
// positions and overlay-resolved health, and departed ids release their
// color index, overlay entry, and body.
func (e *Engine) ApplyRosterSnapshot(snapshot []protocol.RosterEntry) {
	seen := make(map[string]struct{}, len(snapshot))
	for _, entry := range snapshot {
		if entry.Account == "" {
			// Malformed entry; skip it, keep the batch.
			continue
		}
		if entry.Account == e.local.ID {
			continue
		}
		seen[entry.Account] = struct{}{}

		snapshotHealth := e.cfg.MaxHealth
		if entry.Health != nil {
			snapshotHealth = *entry.Health
		}

		p, ok := e.remotes[entry.Account]
		if !ok {
			p = &Participant{
				ID:     entry.Account,
				Name:   entry.Name,
				Pos:    geom.Vector{X: entry.X, Y: entry.Y},
				Facing: 1,
				Health: e.overlay.Resolve(entry.Account, snapshotHealth),
				Color:  e.colors.Allocate(entry.Account),
			}
			e.remotes[entry.Account] = p
			e.space.AddBody(entry.Account, e.rect(p))
			if e.bootstrapped {
				e.space.AddCollider(entry.Account)
			}
			continue
		}

		p.Pos = geom.Vector{X: entry.X, Y: entry.Y}
		e.space.SetPosition(entry.Account, entry.X, entry.Y)
		if entry.Name != "" {
			p.Name = entry.Name
		}
		p.Health = e.overlay.Resolve(entry.Account, snapshotHealth)
	}

	for id := range e.remotes {
		if _, ok := seen[id]; ok {
			continue
		}
		e.colors.Release(id)
		e.overlay.Clear(id)
		e.space.RemoveBody(id)
		delete(e.remotes, id)
	}
}
