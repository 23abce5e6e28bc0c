package render

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-asteroids/pkg/engine"
	"github.com/opd-ai/go-asteroids/pkg/entity"
	"github.com/opd-ai/go-asteroids/pkg/physics"
)

// Terminal cells are roughly twice as tall as they are wide
const cellAspect = 2.0

var (
	styleShip     = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleBullet   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleAsteroid = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleHUD      = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleGameOver = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true).Reverse(true)
)

type cell struct {
	r     rune
	style tcell.Style
}

// TerminalRenderer draws a top-down view of the X/Z plane around a centre
// point onto a tcell screen. The view looks along +Z with -X to the right,
// matching the ship's rest frame.
type TerminalRenderer struct {
	screen    tcell.Screen
	width     int
	height    int
	buffer    [][]cell
	scale     float64
	centerPos physics.Vector3D
	hud       engine.HUD
}

// NewTerminalRenderer creates a renderer for screen with scale world units
// per column
func NewTerminalRenderer(screen tcell.Screen, scale float64) *TerminalRenderer {
	if scale <= 0 {
		scale = 1
	}
	r := &TerminalRenderer{screen: screen, scale: scale}
	r.resize()
	return r
}

// SetCenter sets the world position shown in the middle of the screen
func (r *TerminalRenderer) SetCenter(pos physics.Vector3D) {
	r.centerPos = pos
}

// SetHUD sets the overlay drawn on Present
func (r *TerminalRenderer) SetHUD(hud engine.HUD) {
	r.hud = hud
}

// Scale returns world units per column
func (r *TerminalRenderer) Scale() float64 {
	return r.scale
}

// SetScale changes the zoom; non-positive values are ignored
func (r *TerminalRenderer) SetScale(scale float64) {
	if scale > 0 {
		r.scale = scale
	}
}

// resize matches the buffer to the screen size
func (r *TerminalRenderer) resize() {
	w, h := r.screen.Size()
	if w == r.width && h == r.height && r.buffer != nil {
		return
	}
	r.width, r.height = w, h
	r.buffer = make([][]cell, h)
	for i := range r.buffer {
		r.buffer[i] = make([]cell, w)
	}
}

// worldToScreen projects a world position onto a screen cell
func (r *TerminalRenderer) worldToScreen(pos physics.Vector3D) (int, int) {
	rel := pos.Sub(r.centerPos)
	screenX := int(math.Floor(float64(r.width)/2 - rel.X/r.scale))
	screenY := int(math.Floor(float64(r.height)/2 - rel.Z/(r.scale*cellAspect)))
	return screenX, screenY
}

func (r *TerminalRenderer) plot(pos physics.Vector3D, ch rune, style tcell.Style) {
	x, y := r.worldToScreen(pos)
	if x >= 0 && x < r.width && y >= 0 && y < r.height {
		r.buffer[y][x] = cell{r: ch, style: style}
	}
}

// Clear implements entity.Renderer
func (r *TerminalRenderer) Clear() {
	r.resize()
	for y := range r.buffer {
		for x := range r.buffer[y] {
			r.buffer[y][x] = cell{r: ' ', style: tcell.StyleDefault}
		}
	}
}

// Present implements entity.Renderer
func (r *TerminalRenderer) Present() {
	for y := range r.buffer {
		for x, c := range r.buffer[y] {
			r.screen.SetContent(x, y, c.r, nil, c.style)
		}
	}

	for i, line := range r.hud.Lines() {
		r.drawText(1, i, line, styleHUD)
	}
	if r.hud.Big != "" {
		r.drawText((r.width-len(r.hud.Big))/2, r.height/2, r.hud.Big, styleGameOver)
	}

	r.screen.Show()
}

func (r *TerminalRenderer) drawText(x, y int, text string, style tcell.Style) {
	if y < 0 || y >= r.height {
		return
	}
	for i, ch := range []rune(text) {
		if col := x + i; col >= 0 && col < r.width {
			r.screen.SetContent(col, y, ch, nil, style)
		}
	}
}

// RenderShip implements entity.Renderer
func (r *TerminalRenderer) RenderShip(ship *entity.Ship) {
	r.plot(ship.Position, shipGlyph(ship.Facing()), styleShip)
}

// RenderBullet implements entity.Renderer
func (r *TerminalRenderer) RenderBullet(bullet *entity.Bullet) {
	r.plot(bullet.Position, '*', styleBullet)
}

// RenderAsteroid implements entity.Renderer
func (r *TerminalRenderer) RenderAsteroid(asteroid *entity.Asteroid) {
	r.plot(asteroid.Position, asteroidGlyph(asteroid.Size), styleAsteroid)
}

// shipGlyph picks an arrow for the facing direction projected on the
// screen plane. A nose pointing straight up or down shows as a dot.
func shipGlyph(forward physics.Vector3D) rune {
	x, z := -forward.X, forward.Z
	if math.Abs(x) < 1e-6 && math.Abs(z) < 1e-6 {
		return 'o'
	}
	if math.Abs(z) >= math.Abs(x) {
		if z > 0 {
			return '^'
		}
		return 'v'
	}
	if x > 0 {
		return '>'
	}
	return '<'
}

func asteroidGlyph(size int) rune {
	switch {
	case size <= 1:
		return '.'
	case size == 2:
		return 'o'
	case size == 3:
		return 'O'
	default:
		return '@'
	}
}
