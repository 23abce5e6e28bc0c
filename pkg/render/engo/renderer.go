package engo

import (
	"image/color"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/event"
)

// SpriteSystem is the subset of common.RenderSystem the renderer drives
type SpriteSystem interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
	Remove(basic ecs.BasicEntity)
}

var (
	colorShip     = color.RGBA{80, 255, 120, 255}
	colorBullet   = color.RGBA{255, 230, 60, 255}
	colorAsteroid = color.RGBA{190, 180, 170, 255}
)

// proxy is the render-side stand-in for one simulated entity
type proxy struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent

	kind entity.Kind
	seen bool
}

// EngoRenderer implements entity.Renderer by moving one sprite per live
// simulated entity. Sprites are created and destroyed from lifecycle
// events so their lifetime matches the simulation's.
type EngoRenderer struct {
	sprites SpriteSystem
	camera  *CameraSystem
	assets  *AssetManager

	proxies map[entity.ID]*proxy
	subs    []*event.Subscription
}

// NewEngoRenderer creates a renderer drawing into sprites through camera
func NewEngoRenderer(sprites SpriteSystem, camera *CameraSystem, assets *AssetManager) *EngoRenderer {
	return &EngoRenderer{
		sprites: sprites,
		camera:  camera,
		assets:  assets,
		proxies: make(map[entity.ID]*proxy),
	}
}

// Attach subscribes to spawn and removal events on bus
func (r *EngoRenderer) Attach(bus *event.Bus) {
	r.subs = append(r.subs,
		bus.Subscribe(event.EntitySpawned, r.onSpawned),
		bus.Subscribe(event.EntityRemoved, r.onRemoved),
	)
}

// Detach cancels the event subscriptions and drops every sprite
func (r *EngoRenderer) Detach() {
	for _, sub := range r.subs {
		sub.Cancel()
	}
	r.subs = nil
	for id := range r.proxies {
		r.drop(id)
	}
}

func (r *EngoRenderer) onSpawned(e event.Event) {
	if ev, ok := e.(*event.EntityEvent); ok {
		r.track(ev.EntityID, ev.Kind, ev.Size)
	}
}

func (r *EngoRenderer) onRemoved(e event.Event) {
	if ev, ok := e.(*event.EntityEvent); ok {
		r.drop(ev.EntityID)
	}
}

// Len returns the number of live sprites
func (r *EngoRenderer) Len() int {
	return len(r.proxies)
}

// track creates a sprite for a newly spawned entity
func (r *EngoRenderer) track(id entity.ID, kind entity.Kind, size int) *proxy {
	if p, ok := r.proxies[id]; ok {
		return p
	}

	p := &proxy{BasicEntity: ecs.NewBasic(), kind: kind}
	px := float32(shipSpriteSize)
	switch kind {
	case entity.KindShip:
		p.Drawable, p.Color = r.sprite(func(am *AssetManager) common.Drawable { return am.GetShipSprite() }), colorShip
	case entity.KindBullet:
		px = bulletSpriteSize
		p.Drawable, p.Color = r.sprite(func(am *AssetManager) common.Drawable { return am.GetBulletSprite() }), colorBullet
	case entity.KindAsteroid:
		px = float32(asteroidDiameter(size))
		p.Drawable, p.Color = r.sprite(func(am *AssetManager) common.Drawable { return am.GetAsteroidSprite(size) }), colorAsteroid
	}
	p.Width, p.Height = px, px
	p.Hidden = true

	r.proxies[id] = p
	if r.sprites != nil {
		r.sprites.Add(&p.BasicEntity, &p.RenderComponent, &p.SpaceComponent)
	}
	return p
}

func (r *EngoRenderer) sprite(get func(am *AssetManager) common.Drawable) common.Drawable {
	if r.assets == nil {
		return nil
	}
	return get(r.assets)
}

// drop removes the sprite for a departed entity
func (r *EngoRenderer) drop(id entity.ID) {
	p, ok := r.proxies[id]
	if !ok {
		return
	}
	delete(r.proxies, id)
	if r.sprites != nil {
		r.sprites.Remove(p.BasicEntity)
	}
}

// place centres a proxy's sprite on the projected position
func (r *EngoRenderer) place(e entity.Entity) *proxy {
	p, ok := r.proxies[e.GetID()]
	if !ok {
		return nil
	}
	pos := r.camera.WorldToScreen(e.GetPosition())
	p.Position = engo.Point{X: pos.X - p.Width/2, Y: pos.Y - p.Height/2}
	p.Hidden = false
	p.seen = true
	return p
}

// Clear implements entity.Renderer
func (r *EngoRenderer) Clear() {
	for _, p := range r.proxies {
		p.seen = false
	}
}

// Present implements entity.Renderer. Sprites not drawn this frame, such as
// a destroyed ship, are hidden.
func (r *EngoRenderer) Present() {
	for _, p := range r.proxies {
		if !p.seen {
			p.Hidden = true
		}
	}
}

// RenderShip implements entity.Renderer
func (r *EngoRenderer) RenderShip(ship *entity.Ship) {
	if p := r.place(ship); p != nil {
		forward := ship.Facing()
		p.Rotation = float32(headingDegrees(forward.X, forward.Z))
	}
}

// RenderBullet implements entity.Renderer
func (r *EngoRenderer) RenderBullet(bullet *entity.Bullet) {
	r.place(bullet)
}

// RenderAsteroid implements entity.Renderer
func (r *EngoRenderer) RenderAsteroid(asteroid *entity.Asteroid) {
	if p := r.place(asteroid); p != nil {
		p.Rotation = float32(asteroid.Spin)
	}
}

// headingDegrees returns the clockwise screen angle of a facing vector
// whose X/Z projection is (x, z); zero points up
func headingDegrees(x, z float64) float64 {
	if x == 0 && z == 0 {
		return 0
	}
	deg := math.Atan2(-x, z) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}
