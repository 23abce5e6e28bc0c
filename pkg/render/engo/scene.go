// Package engo provides the windowed frontend built on the engo engine.
package engo

import (
	"context"
	"image/color"
	"time"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-asteroids/pkg/engine"
	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/input"
	"github.com/opd-ai/go-asteroids/pkg/logging"
)

// GameScene drives a simulation session from engo's frame loop
type GameScene struct {
	world *ecs.World

	session *engine.Session
	ctrl    *input.Controller
	logger  *logging.Logger

	renderer *EngoRenderer
	camera   *CameraSystem
	input    *InputSystem
	hud      *HUDSystem

	start time.Time
	now   func() time.Time
}

// NewGameScene creates a scene for session. Lifecycle events already
// published by the session are replayed from its snapshot on Setup.
func NewGameScene(session *engine.Session, ctrl *input.Controller, logger *logging.Logger) *GameScene {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &GameScene{
		session: session,
		ctrl:    ctrl,
		logger:  logger,
		world:   &ecs.World{},
		camera:  NewCameraSystem(),
		hud:     NewHUDSystem(),
		now:     time.Now,
	}
}

// Type returns the scene type (required by Engo)
func (scene *GameScene) Type() string {
	return "GameScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *GameScene) Preload() {}

// Setup is called when the scene starts (required by Engo)
func (scene *GameScene) Setup(u engo.Updater) {
	if w, ok := u.(*ecs.World); ok {
		scene.world = w
	}
	ctx := context.Background()

	common.SetBackground(color.Black)
	SetupInputBindings()

	renderSystem := &common.RenderSystem{}
	scene.world.AddSystem(renderSystem)

	assets := NewAssetManager()
	if err := assets.LoadAssets(); err != nil {
		scene.logger.Error(ctx, "loading sprites failed", err)
	}
	if err := scene.hud.LoadFont(); err != nil {
		scene.logger.Error(ctx, "loading HUD font failed", err)
	}

	scene.renderer = NewEngoRenderer(renderSystem, scene.camera, assets)
	scene.attach()
	scene.hud.Attach(renderSystem)

	scene.input = NewInputSystem(scene.ctrl)
	scene.world.AddSystem(scene.input)
	scene.world.AddSystem(&sessionSystem{scene: scene})
	scene.world.AddSystem(scene.camera)
	scene.world.AddSystem(scene.hud)

	scene.start = scene.now()
	scene.logger.Info(ctx, "engo scene ready", "sprites", scene.renderer.Len())
}

// attach subscribes the renderer to lifecycle events and creates sprites
// for the entities that already exist
func (scene *GameScene) attach() {
	scene.renderer.Attach(scene.session.Bus())

	state := scene.session.Snapshot()
	if state.Ship.Alive {
		scene.renderer.track(state.Ship.ID, entity.KindShip, 0)
	}
	for _, b := range state.Bullets {
		scene.renderer.track(b.ID, entity.KindBullet, 0)
	}
	for _, a := range state.Asteroids {
		scene.renderer.track(a.ID, entity.KindAsteroid, a.Size)
	}
}

// step runs one simulation tick and refreshes the presentation
func (scene *GameScene) step() {
	now := scene.now()
	scene.session.Tick(now.Sub(scene.start).Seconds(), scene.ctrl.Frame(now))
	if !scene.session.Running() {
		engo.Exit()
		return
	}

	state := scene.session.Snapshot()
	scene.camera.SetTarget(state.Ship.Position)
	scene.hud.UpdateGameState(state)
	scene.session.Render(scene.renderer)
}

// Exit is called when the scene is exiting (required by Engo)
func (scene *GameScene) Exit() {
	if scene.renderer != nil {
		scene.renderer.Detach()
	}
	scene.session.Quit()
}

// sessionSystem ticks the simulation inside the ecs update loop
type sessionSystem struct {
	scene *GameScene
}

func (s *sessionSystem) Update(dt float32) {
	s.scene.step()
}

func (s *sessionSystem) Remove(basic ecs.BasicEntity) {}
