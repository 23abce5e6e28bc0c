package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// CameraSystem follows the ship and projects the X/Z plane onto the
// window, looking along +Z with -X to the right
type CameraSystem struct {
	target    physics.Vector3D
	targetSet bool

	zoom    float32 // pixels per world unit
	minZoom float32
	maxZoom float32

	followSpeed float32
	smoothing   bool

	currentPos physics.Vector3D

	viewWidth  float32
	viewHeight float32
}

// NewCameraSystem creates a new camera system
func NewCameraSystem() *CameraSystem {
	return &CameraSystem{
		zoom:        8.0,
		minZoom:     1.0,
		maxZoom:     40.0,
		followSpeed: 4.0,
		smoothing:   true,
	}
}

// Remove satisfies the ecs.System interface
func (cs *CameraSystem) Remove(basic ecs.BasicEntity) {}

// Update tracks the window size, applies zoom input and eases toward the
// target
func (cs *CameraSystem) Update(dt float32) {
	cs.SetViewport(engo.GameWidth(), engo.GameHeight())
	cs.handleZoomInput()
	if cs.targetSet {
		cs.updateCameraPosition(dt)
	}
}

// handleZoomInput processes zoom-related input
func (cs *CameraSystem) handleZoomInput() {
	if scrollY := engo.Input.Mouse.ScrollY; scrollY != 0 {
		cs.SetZoom(cs.zoom * (1.0 + scrollY*0.1))
	}
}

// updateCameraPosition moves the camera toward the target
func (cs *CameraSystem) updateCameraPosition(dt float32) {
	if !cs.smoothing {
		cs.currentPos = cs.target
		return
	}
	step := float64(cs.followSpeed * dt)
	if step > 1 {
		step = 1
	}
	cs.currentPos = cs.currentPos.Add(cs.target.Sub(cs.currentPos).Scale(step))
}

// SetTarget sets the position for the camera to follow. The first target
// snaps immediately.
func (cs *CameraSystem) SetTarget(target physics.Vector3D) {
	first := !cs.targetSet
	cs.target = target
	cs.targetSet = true
	if first || !cs.smoothing {
		cs.currentPos = target
	}
}

// ClearTarget clears the camera target
func (cs *CameraSystem) ClearTarget() {
	cs.targetSet = false
}

// SetViewport sets the window size used for projection
func (cs *CameraSystem) SetViewport(width, height float32) {
	cs.viewWidth, cs.viewHeight = width, height
}

// SetZoom sets the camera zoom level
func (cs *CameraSystem) SetZoom(zoom float32) {
	cs.zoom = cs.clampZoom(zoom)
}

// GetZoom returns the current zoom level
func (cs *CameraSystem) GetZoom() float32 {
	return cs.zoom
}

func (cs *CameraSystem) clampZoom(zoom float32) float32 {
	if zoom < cs.minZoom {
		return cs.minZoom
	}
	if zoom > cs.maxZoom {
		return cs.maxZoom
	}
	return zoom
}

// EnableSmoothing enables or disables camera smoothing
func (cs *CameraSystem) EnableSmoothing(enabled bool) {
	cs.smoothing = enabled
}

// GetCurrentPosition returns the current camera position
func (cs *CameraSystem) GetCurrentPosition() physics.Vector3D {
	return cs.currentPos
}

// WorldToScreen converts a world position to window pixels
func (cs *CameraSystem) WorldToScreen(worldPos physics.Vector3D) engo.Point {
	rel := worldPos.Sub(cs.currentPos)
	return engo.Point{
		X: cs.viewWidth/2 - float32(rel.X)*cs.zoom,
		Y: cs.viewHeight/2 - float32(rel.Z)*cs.zoom,
	}
}

// ScreenToWorld converts window pixels back to a point on the camera's
// X/Z plane
func (cs *CameraSystem) ScreenToWorld(p engo.Point) physics.Vector3D {
	return physics.Vector3D{
		X: cs.currentPos.X - float64((p.X-cs.viewWidth/2)/cs.zoom),
		Y: cs.currentPos.Y,
		Z: cs.currentPos.Z - float64((p.Y-cs.viewHeight/2)/cs.zoom),
	}
}

// SetZoomLimits sets the minimum and maximum zoom levels
func (cs *CameraSystem) SetZoomLimits(min, max float32) {
	cs.minZoom = min
	cs.maxZoom = max
	cs.zoom = cs.clampZoom(cs.zoom)
}
