package engine

const colorSlots = 8

// colorAllocator hands out the small cosmetic indices remote participants
// are tinted with. At most eight live remotes get distinct indices; past
// that, ids fall back to a hash-derived index that is not guaranteed
// unique against currently assigned ones.
type colorAllocator struct {
	used [colorSlots + 1]bool // 1-based
}

func (c *colorAllocator) Allocate(id string) int {
	for i := 1; i <= colorSlots; i++ {
		if !c.used[i] {
			c.used[i] = true
			return i
		}
	}
	return colorHash(id)
}

// Release recomputes the slot from the id's hash instead of recalling the
// index that was actually assigned. For scan-allocated ids this can free
// a slot the id never held. Known inconsistency, kept on purpose — see
// DESIGN.md before touching this.
func (c *colorAllocator) Release(id string) {
	c.used[colorHash(id)] = false
}

func colorHash(id string) int {
	var h int32
	for i := 0; i < len(id); i++ {
		h = h*31 + int32(id[i])
	}
	v := int(h)
	if v < 0 {
		v = -v
	}
	return v%colorSlots + 1
}
