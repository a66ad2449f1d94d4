// pkg/entity/pool.go
package entity

// Pool is a fixed-capacity arena of actors keyed by the Spawned flag.
// Allocation is a linear scan for a free slot; capacity is a hard
// game-design bound, so a full pool drops the request rather than grow.
type Pool struct {
	actors []Actor
}

// NewPool creates a pool of capacity unspawned actors.
func NewPool(capacity int) *Pool {
	p := &Pool{actors: make([]Actor, capacity)}
	for i := range p.actors {
		p.actors[i] = NewActor()
	}
	return p
}

// Cap returns the fixed capacity of the pool.
func (p *Pool) Cap() int {
	return len(p.actors)
}

// At returns the actor in slot i.
func (p *Pool) At(i int) *Actor {
	return &p.actors[i]
}

// Acquire resets and returns the first free slot, or (nil, false) when
// the pool is full. A full pool is a designed capacity policy, not an
// error; callers drop the spawn request silently.
func (p *Pool) Acquire() (*Actor, bool) {
	for i := range p.actors {
		if p.actors[i].Spawned {
			continue
		}
		p.actors[i].Reset()
		return &p.actors[i], true
	}
	return nil, false
}

// Index returns the slot number of an actor obtained from this pool,
// or -1 for a foreign pointer.
func (p *Pool) Index(a *Actor) int {
	for i := range p.actors {
		if &p.actors[i] == a {
			return i
		}
	}
	return -1
}

// CountSpawned returns the number of live actors.
func (p *Pool) CountSpawned() int {
	n := 0
	for i := range p.actors {
		if p.actors[i].Spawned {
			n++
		}
	}
	return n
}

// Each calls fn for every spawned actor.
func (p *Pool) Each(fn func(*Actor)) {
	for i := range p.actors {
		if p.actors[i].Spawned {
			fn(&p.actors[i])
		}
	}
}

// DespawnAll clears the Spawned flag on every slot.
func (p *Pool) DespawnAll() {
	for i := range p.actors {
		p.actors[i].Spawned = false
	}
}
