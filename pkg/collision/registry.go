// Package collision tracks sphere proxies for live entities and reports
// overlapping ship/asteroid and bullet/asteroid pairs once per tick.
package collision

import (
	"cmp"
	"slices"

	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// PairKind tags which two kinds of entity collided
type PairKind int

const (
	ShipAsteroid PairKind = iota + 1
	BulletAsteroid
)

// String returns the pair kind name
func (k PairKind) String() string {
	switch k {
	case ShipAsteroid:
		return "ship_asteroid"
	case BulletAsteroid:
		return "bullet_asteroid"
	default:
		return "unknown"
	}
}

// Event is a detected overlap. A is the ship or bullet, B the asteroid.
// Contact points from A toward B.
type Event struct {
	A       entity.ID
	B       entity.ID
	Kind    PairKind
	Contact physics.CollisionResult
}

// Proxy is the collidable shape registered for one entity
type Proxy struct {
	ID     entity.ID
	Kind   entity.Kind
	Radius float64
}

// Body is a proxy resolved to its current center for one detection pass
type Body struct {
	Proxy
	Center physics.Vector3D
}

// Sphere returns the body's collision sphere
func (b Body) Sphere() physics.Sphere {
	return physics.Sphere{Center: b.Center, Radius: b.Radius}
}

// Resolver looks up the current position of an entity by identity. It
// returns false once the owner no longer holds the entity.
type Resolver interface {
	Locate(id entity.ID) (physics.Vector3D, bool)
}

// ResolverFunc adapts a function to the Resolver interface
type ResolverFunc func(id entity.ID) (physics.Vector3D, bool)

// Locate calls f(id)
func (f ResolverFunc) Locate(id entity.ID) (physics.Vector3D, bool) {
	return f(id)
}

// Stats describes the most recent detection pass
type Stats struct {
	Proxies int // proxies resolved
	Pruned  int // proxies dropped because their owner no longer holds them
	Tested  int // narrow-phase sphere tests
	Events  int
}

// Option configures a Registry
type Option func(*Registry)

// WithBroadPhase replaces the default brute-force candidate search
func WithBroadPhase(bp BroadPhase) Option {
	return func(r *Registry) {
		if bp != nil {
			r.broad = bp
		}
	}
}

// Registry holds weak references to collidable entities. It never owns the
// entities; positions are fetched through per-kind resolvers each pass.
type Registry struct {
	proxies   map[entity.ID]Proxy
	resolvers map[entity.Kind]Resolver
	broad     BroadPhase
	stats     Stats
}

// NewRegistry creates an empty registry
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		proxies:   make(map[entity.ID]Proxy),
		resolvers: make(map[entity.Kind]Resolver),
		broad:     BruteForce{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetResolver installs the position lookup for entities of kind
func (r *Registry) SetResolver(kind entity.Kind, resolver Resolver) {
	r.resolvers[kind] = resolver
}

// Register adds or replaces the proxy for id
func (r *Registry) Register(id entity.ID, kind entity.Kind, radius float64) {
	r.proxies[id] = Proxy{ID: id, Kind: kind, Radius: radius}
}

// RegisterEntity registers e with the radius of its collider
func (r *Registry) RegisterEntity(e entity.Entity) {
	r.Register(e.GetID(), e.GetKind(), e.GetCollider().Radius)
}

// Unregister removes the proxy for id. It reports false if none existed.
func (r *Registry) Unregister(id entity.ID) bool {
	if _, ok := r.proxies[id]; !ok {
		return false
	}
	delete(r.proxies, id)
	return true
}

// Contains reports whether id has a registered proxy
func (r *Registry) Contains(id entity.ID) bool {
	_, ok := r.proxies[id]
	return ok
}

// Len returns the number of registered proxies
func (r *Registry) Len() int {
	return len(r.proxies)
}

// Clear drops every proxy
func (r *Registry) Clear() {
	clear(r.proxies)
}

// LastStats returns counters from the most recent Detect call
func (r *Registry) LastStats() Stats {
	return r.stats
}

// Detect tests every ship and bullet against every asteroid and returns one
// event per intersecting pair. Ship events come first, then bullet events,
// each ordered by identity so results are reproducible.
func (r *Registry) Detect() []Event {
	r.stats = Stats{}
	movers, asteroids := r.resolve()
	r.stats.Proxies = len(movers) + len(asteroids)

	candidates := r.broad.Candidates(movers, asteroids)

	seen := make(map[[2]entity.ID]struct{}, len(candidates))
	events := make([]Event, 0)
	for _, c := range candidates {
		m, a := movers[c.Mover], asteroids[c.Asteroid]
		key := [2]entity.ID{min(m.ID, a.ID), max(m.ID, a.ID)}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		r.stats.Tested++
		contact := physics.CheckCollision(m.Sphere(), a.Sphere())
		if !contact.Collided {
			continue
		}

		kind := BulletAsteroid
		if m.Kind == entity.KindShip {
			kind = ShipAsteroid
		}
		events = append(events, Event{A: m.ID, B: a.ID, Kind: kind, Contact: contact})
	}

	slices.SortFunc(events, func(x, y Event) int {
		return cmp.Or(
			cmp.Compare(x.Kind, y.Kind),
			cmp.Compare(x.A, y.A),
			cmp.Compare(x.B, y.B),
		)
	})
	r.stats.Events = len(events)
	return events
}

// resolve looks up every proxy and prunes those whose owner has let go
func (r *Registry) resolve() (movers, asteroids []Body) {
	for id, p := range r.proxies {
		resolver, ok := r.resolvers[p.Kind]
		if !ok {
			continue
		}
		center, ok := resolver.Locate(id)
		if !ok {
			delete(r.proxies, id)
			r.stats.Pruned++
			continue
		}

		body := Body{Proxy: p, Center: center}
		switch p.Kind {
		case entity.KindShip, entity.KindBullet:
			movers = append(movers, body)
		case entity.KindAsteroid:
			asteroids = append(asteroids, body)
		}
	}

	byID := func(a, b Body) int { return cmp.Compare(a.ID, b.ID) }
	slices.SortFunc(movers, byID)
	slices.SortFunc(asteroids, byID)
	return movers, asteroids
}
