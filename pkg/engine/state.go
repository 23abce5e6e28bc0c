package engine

import (
	"fmt"

	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// Accuracy is derived from the scoreboard rather than stored
type Accuracy struct {
	Hits  int
	Shots int
}

// Ratio returns hits/shots. ok is false when nothing has been fired yet,
// which is distinct from a real ratio of zero.
func (a Accuracy) Ratio() (ratio float64, ok bool) {
	if a.Shots == 0 {
		return 0, false
	}
	return float64(a.Hits) / float64(a.Shots), true
}

// String formats as "hits/shots"
func (a Accuracy) String() string {
	return fmt.Sprintf("%d/%d", a.Hits, a.Shots)
}

// ShipState is the externally visible ship state, enough for camera
// attachment and the speed readout
type ShipState struct {
	ID          entity.ID
	Position    physics.Vector3D
	Velocity    physics.Vector3D
	Orientation physics.Orientation
	Forward     physics.Vector3D
	Up          physics.Vector3D
	Speed       float64
	Alive       bool
}

// BulletState is the externally visible bullet state
type BulletState struct {
	ID       entity.ID
	Position physics.Vector3D
	Radius   float64
}

// AsteroidState is the externally visible asteroid state
type AsteroidState struct {
	ID       entity.ID
	Position physics.Vector3D
	Size     int
	Spin     float64
}

// GameState is a read-only snapshot for presentation layers
type GameState struct {
	Tick       uint64
	Time       float64
	State      State
	Score      int
	Shots      int
	Hits       int
	Accuracy   Accuracy
	LifeLength float64
	GameOver   bool
	FinalScore int
	Ship       ShipState
	Bullets    []BulletState
	Asteroids  []AsteroidState
}

// Snapshot captures the current simulation state
func (s *Session) Snapshot() *GameState {
	return &GameState{
		Tick:       s.ticks,
		Time:       s.clock.Now(),
		State:      s.state,
		Score:      s.score,
		Shots:      s.shots,
		Hits:       s.hits,
		Accuracy:   s.Accuracy(),
		LifeLength: s.lifeLength,
		GameOver:   s.state == StateGameOver,
		FinalScore: s.finalScore,
		Ship:       s.getShipState(),
		Bullets:    s.getBulletStates(),
		Asteroids:  s.getAsteroidStates(),
	}
}

// getShipState captures the ship
func (s *Session) getShipState() ShipState {
	ship := s.ship.Ship()
	return ShipState{
		ID:          ship.ID,
		Position:    ship.Position,
		Velocity:    ship.Velocity,
		Orientation: ship.Orientation,
		Forward:     ship.Facing(),
		Up:          ship.Orientation.Up(),
		Speed:       ship.Speed(),
		Alive:       ship.IsAlive(),
	}
}

// getBulletStates captures every live bullet
func (s *Session) getBulletStates() []BulletState {
	bullets := s.bullets.Bullets()
	states := make([]BulletState, 0, len(bullets))
	for _, b := range bullets {
		states = append(states, BulletState{ID: b.ID, Position: b.Position, Radius: b.Radius})
	}
	return states
}

// getAsteroidStates captures every live asteroid
func (s *Session) getAsteroidStates() []AsteroidState {
	asteroids := s.field.Asteroids()
	states := make([]AsteroidState, 0, len(asteroids))
	for _, a := range asteroids {
		states = append(states, AsteroidState{ID: a.ID, Position: a.Position, Size: a.Size, Spin: a.Spin})
	}
	return states
}

// HUD holds the text overlay lines
type HUD struct {
	Score    string
	Accuracy string
	Speed    string
	Big      string // empty while playing
}

// Lines returns the small HUD rows top to bottom
func (h HUD) Lines() []string {
	return []string{h.Score, h.Accuracy, h.Speed}
}

// NewHUD formats the overlay for a snapshot
func NewHUD(state *GameState) HUD {
	hud := HUD{
		Score:    fmt.Sprintf("Score     : %d", state.Score),
		Accuracy: "Hit/Fired : " + state.Accuracy.String(),
		Speed:    fmt.Sprintf("Speed     : %.1f", state.Ship.Speed),
	}
	if state.GameOver {
		hud.Big = fmt.Sprintf("GAME OVER: %d", state.FinalScore)
	}
	return hud
}

// Render draws the live entities through r, ship first. A destroyed ship
// is not drawn.
func (s *Session) Render(r entity.Renderer) {
	r.Clear()
	if ship := s.ship.Ship(); ship.IsAlive() {
		ship.Render(r)
	}
	for _, b := range s.bullets.Bullets() {
		b.Render(r)
	}
	for _, a := range s.field.Asteroids() {
		a.Render(r)
	}
	r.Present()
}
