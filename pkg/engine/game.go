// pkg/engine/game.go
package engine

import (
	"context"
	"math/rand/v2"

	"github.com/opd-ai/go-asteroids/pkg/clock"
	"github.com/opd-ai/go-asteroids/pkg/collision"
	"github.com/opd-ai/go-asteroids/pkg/config"
	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/event"
	"github.com/opd-ai/go-asteroids/pkg/logging"
)

// State is the session's lifecycle state
type State int

const (
	StatePlaying State = iota
	StateGameOver
)

// String returns the state name
func (s State) String() string {
	if s == StateGameOver {
		return "game_over"
	}
	return "playing"
}

// Input is the player's intent for one tick
type Input struct {
	DeltaHeading float64 // raw pointer units, positive turns toward +X
	DeltaPitch   float64 // raw pointer units, positive raises the nose when inverted
	Accelerate   bool    // thrust key held
	Fire         bool    // fire pressed since the previous tick
	Quit         bool

	// debug controls, honoured only when frontend.debugControls is set
	Stop             bool
	ResetOrientation bool
}

// Option configures a Session
type Option func(*Session)

// WithLogger sets the session logger
func WithLogger(logger *logging.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithEventBus publishes lifecycle notifications on bus. Without it the
// session creates its own, reachable through Bus.
func WithEventBus(bus *event.Bus) Option {
	return func(s *Session) {
		if bus != nil {
			s.bus = bus
		}
	}
}

// WithRand sets the random source used for asteroid placement
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithBroadPhase overrides the configured collision broad phase
func WithBroadPhase(bp collision.BroadPhase) Option {
	return func(s *Session) {
		s.broadPhase = bp
	}
}

// WithMetrics sets the instruments the session records to
func WithMetrics(m *Metrics) Option {
	return func(s *Session) {
		s.metrics = m
	}
}

// WithContext sets the context used for logging and metrics, typically one
// carrying a correlation ID
func WithContext(ctx context.Context) Option {
	return func(s *Session) {
		if ctx != nil {
			s.ctx = ctx
		}
	}
}

// Session owns the scoreboard and drives every component once per tick
type Session struct {
	cfg        *config.GameConfig
	ctx        context.Context
	logger     *logging.Logger
	bus        *event.Bus
	rng        *rand.Rand
	broadPhase collision.BroadPhase
	metrics    *Metrics

	clock     *clock.Clock
	scheduler *clock.Scheduler
	registry  *collision.Registry
	ids       *entity.IDGenerator

	ship    *ShipController
	bullets *BulletManager
	field   *AsteroidField

	state      State
	score      int
	shots      int
	hits       int
	lifeLength float64
	finalScore int
	restart    clock.Token
	running    bool
	ticks      uint64
	stale      int
	pruned     int
}

// NewSession creates a session in the Playing state with a fresh ship and
// the initial asteroid field
func NewSession(cfg *config.GameConfig, opts ...Option) *Session {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	s := &Session{
		cfg:     cfg,
		ctx:     context.Background(),
		logger:  logging.NewNopLogger(),
		running: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.bus == nil {
		s.bus = event.NewEventBus()
	}
	if s.rng == nil {
		s.rng = newRand(cfg.Asteroid.Seed)
	}
	if s.broadPhase == nil {
		s.broadPhase = broadPhaseFor(cfg.Collision)
	}

	s.clock = clock.New()
	s.scheduler = clock.NewScheduler()
	s.registry = collision.NewRegistry(collision.WithBroadPhase(s.broadPhase))
	s.ids = entity.NewIDGenerator()

	s.bullets = NewBulletManager(cfg.Bullet, s.ids, s.scheduler, s.registry, s.bus, s.metrics)
	s.field = NewAsteroidField(cfg.Asteroid, s.ids, s.registry, s.bus, s.rng)
	s.ship = NewShipController(cfg, s.ids, s.bullets, s.registry, s.bus)

	s.field.SpawnInitial(cfg.Asteroid.StartCount)
	s.logger.Info(s.ctx, "session started",
		"asteroids", s.field.Len(),
		"broad_phase", cfg.Collision.BroadPhase,
	)
	return s
}

// newRand seeds a PCG source; seed zero draws a random seed
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// broadPhaseFor maps the configured strategy to an implementation
func broadPhaseFor(cfg config.CollisionConfig) collision.BroadPhase {
	if cfg.BroadPhase == "octree" {
		return collision.NewOctreeBroadPhase(cfg.OctreeCapacity)
	}
	return collision.BruteForce{}
}

// Tick advances the simulation to the frame timestamp now (seconds on a
// monotonic clock). The phases run in a fixed order: input, integration,
// collision detection, collision resolution and finally due timers.
func (s *Session) Tick(now float64, in Input) {
	if !s.running {
		return
	}
	if in.Quit {
		s.Quit()
		return
	}

	deltaTime := s.clock.Advance(now)
	s.ticks++
	if s.state == StatePlaying {
		s.lifeLength += deltaTime
	}

	s.applyInput(deltaTime, in)
	s.integrate(deltaTime)
	events := s.registry.Detect()
	s.resolveCollisions(events)
	s.scheduler.Advance(s.clock.Now())
}

// applyInput steers and fires the ship
func (s *Session) applyInput(deltaTime float64, in Input) {
	if s.ship.Ship().IsAlive() {
		s.ship.Rotate(in.DeltaHeading, in.DeltaPitch)
		if in.Accelerate {
			s.ship.Accelerate(deltaTime)
		}
		if s.cfg.Frontend.DebugControls {
			if in.Stop {
				s.ship.Stop()
			}
			if in.ResetOrientation {
				s.ship.ResetOrientation()
			}
		}
	}
	if in.Fire {
		s.Shoot()
	}
}

// integrate moves every entity by its velocity
func (s *Session) integrate(deltaTime float64) {
	s.ship.Integrate(deltaTime)
	s.bullets.Tick(deltaTime)
	s.field.Tick(deltaTime)
}

// resolveCollisions dispatches each event to its owner. Events are fully
// resolved one at a time; those whose entities are already gone are
// dropped as stale.
func (s *Session) resolveCollisions(events []collision.Event) {
	if pruned := s.registry.LastStats().Pruned; pruned > 0 {
		s.pruned += pruned
		s.logger.Debug(s.ctx, "pruned collision proxies", "count", pruned)
	}

	stale := 0
	for _, ev := range events {
		var handled bool
		switch ev.Kind {
		case collision.ShipAsteroid:
			handled = s.onShipAsteroidCollision(ev)
		case collision.BulletAsteroid:
			handled = s.OnBulletAsteroidCollision(ev.A, ev.B)
		}
		if !handled {
			stale++
			s.logger.Debug(s.ctx, "dropped stale collision",
				"kind", ev.Kind.String(), "a", uint64(ev.A), "b", uint64(ev.B))
		}
	}
	s.stale += stale
	s.metrics.staleEvents(s.ctx, stale)
}

// onShipAsteroidCollision kills the ship and ends the game
func (s *Session) onShipAsteroidCollision(ev collision.Event) bool {
	if _, ok := s.field.Get(ev.B); !ok {
		return false
	}
	if !s.ship.OnCollideWithAsteroid() {
		return false
	}
	s.logger.Debug(s.ctx, "ship hit asteroid",
		"asteroid", uint64(ev.B),
		"penetration", ev.Contact.Penetration,
		"contact_x", ev.Contact.ContactPoint.X,
		"contact_y", ev.Contact.ContactPoint.Y,
		"contact_z", ev.Contact.ContactPoint.Z,
	)
	s.gameOver()
	return true
}

// OnBulletAsteroidCollision removes the bullet, splits the asteroid and, while
// playing, awards ScorePerHit and counts the hit. It reports false when
// either entity is already gone.
func (s *Session) OnBulletAsteroidCollision(bullet, asteroid entity.ID) bool {
	if _, ok := s.bullets.Get(bullet); !ok {
		return false
	}
	if _, ok := s.field.Get(asteroid); !ok {
		return false
	}

	s.bullets.RemoveOnCollision(bullet)
	fragments := s.field.SplitOnHit(asteroid)

	if s.state != StatePlaying {
		return true
	}
	s.score += s.cfg.Session.ScorePerHit
	s.hits++
	s.metrics.hit(s.ctx, len(fragments) > 0)
	s.logger.Debug(s.ctx, "asteroid hit",
		"asteroid", uint64(asteroid), "fragments", len(fragments), "score", s.score)
	return true
}

// Shoot fires while playing, or restarts early when the game is over. It
// reports whether anything happened.
func (s *Session) Shoot() bool {
	if !s.running {
		return false
	}
	switch s.state {
	case StatePlaying:
		if _, ok := s.ship.Fire(s.clock.Now()); !ok {
			return false
		}
		s.shots++
		s.metrics.shot(s.ctx)
		return true
	case StateGameOver:
		if !s.cfg.Session.ShootToRestart {
			return false
		}
		return s.restartGame("shoot")
	}
	return false
}

// gameOver freezes the scoreboard and schedules the automatic restart
func (s *Session) gameOver() {
	if s.state == StateGameOver {
		return
	}
	s.state = StateGameOver
	s.finalScore = s.score
	s.restart = s.scheduler.Schedule(s.clock.Now()+s.cfg.Session.GameOverDelay, func() {
		s.restartGame("timer")
	})

	s.metrics.gameOver(s.ctx)
	s.logger.Info(s.ctx, "game over",
		"score", s.score, "shots", s.shots, "hits", s.hits, "life_length", s.lifeLength)
	publish(s.bus, event.NewSessionEvent(event.GameOver, s, s.score, s.shots, s.hits))
}

// restartGame leaves GameOver. Whichever of the timer or an early shoot
// arrives first wins; the other is then a no-op.
func (s *Session) restartGame(reason string) bool {
	if s.state != StateGameOver {
		return false
	}
	s.logger.Info(s.ctx, "restarting game", "reason", reason)
	s.ResetGame()
	return true
}

// ResetGame clears the scoreboard, resets the ship, clears bullets and
// respawns the initial asteroid field
func (s *Session) ResetGame() {
	if s.restart != 0 {
		s.scheduler.Cancel(s.restart)
		s.restart = 0
	}

	s.score, s.shots, s.hits = 0, 0, 0
	s.lifeLength = 0
	s.finalScore = 0

	s.ship.Reset()
	s.bullets.Clear()
	s.field.Clear()
	s.field.SpawnInitial(s.cfg.Asteroid.StartCount)
	s.state = StatePlaying

	publish(s.bus, event.NewSessionEvent(event.GameRestarted, s, 0, 0, 0))
}

// Quit halts the session and releases every owned entity. Further ticks
// are ignored.
func (s *Session) Quit() {
	if !s.running {
		return
	}
	s.running = false
	s.scheduler.Clear()
	s.restart = 0
	s.bullets.Clear()
	s.field.Clear()
	if err := s.metrics.Close(); err != nil {
		s.logger.Warn(s.ctx, "closing metrics", "error", err.Error())
	}
	s.logger.Info(s.ctx, "session quit", "ticks", s.ticks)
}

// Running reports whether the session still accepts ticks
func (s *Session) Running() bool {
	return s.running
}

// State returns the current lifecycle state
func (s *Session) State() State {
	return s.state
}

// Score returns the current score
func (s *Session) Score() int {
	return s.score
}

// Shots returns the number of bullets fired since the last reset
func (s *Session) Shots() int {
	return s.shots
}

// Hits returns the number of scoring hits since the last reset
func (s *Session) Hits() int {
	return s.hits
}

// LifeLength returns the seconds played since the last reset
func (s *Session) LifeLength() float64 {
	return s.lifeLength
}

// Accuracy returns hits over shots
func (s *Session) Accuracy() Accuracy {
	return Accuracy{Hits: s.hits, Shots: s.shots}
}

// Now returns the session clock time
func (s *Session) Now() float64 {
	return s.clock.Now()
}

// StaleCollisions returns the number of collision events dropped so far
func (s *Session) StaleCollisions() int {
	return s.stale
}

// PrunedProxies returns the number of collision proxies the registry
// dropped because their owner no longer held the entity
func (s *Session) PrunedProxies() int {
	return s.pruned
}

// Ship returns the ship controller
func (s *Session) Ship() *ShipController {
	return s.ship
}

// Bullets returns the bullet manager
func (s *Session) Bullets() *BulletManager {
	return s.bullets
}

// Field returns the asteroid field
func (s *Session) Field() *AsteroidField {
	return s.field
}

// Bus returns the lifecycle event bus
func (s *Session) Bus() *event.Bus {
	return s.bus
}

// RestartPending reports whether the automatic restart is scheduled
func (s *Session) RestartPending() bool {
	return s.restart != 0 && s.scheduler.Pending(s.restart)
}

// EntityCounts implements EntityCounter
func (s *Session) EntityCounts() (ships, bullets, asteroids int) {
	if s.ship.Ship().IsAlive() {
		ships = 1
	}
	return ships, s.bullets.Len(), s.field.Len()
}
