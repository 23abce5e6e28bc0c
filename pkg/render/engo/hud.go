package engo

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/opd-ai/go-asteroids/pkg/engine"
)

const (
	hudFontURL  = "hud/gomono.ttf"
	hudFontSize = 16
	hudLineStep = 20
)

type hudText struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

// HUDSystem shows the score, accuracy and speed lines plus the game-over
// banner
type HUDSystem struct {
	hud engine.HUD

	font   *common.Font
	lines  []*hudText
	banner *hudText

	hudColor    color.Color
	bannerColor color.Color
}

// NewHUDSystem creates a new HUD system
func NewHUDSystem() *HUDSystem {
	return &HUDSystem{
		hudColor:    color.White,
		bannerColor: color.RGBA{255, 60, 60, 255},
	}
}

// LoadFont registers the embedded monospace font with engo and prepares it
// for text rendering. It needs a GL context.
func (hud *HUDSystem) LoadFont() error {
	if err := engo.Files.LoadReaderData(hudFontURL, bytes.NewReader(gomono.TTF)); err != nil {
		return fmt.Errorf("loading HUD font: %w", err)
	}
	font := &common.Font{URL: hudFontURL, FG: color.White, Size: hudFontSize}
	if err := font.CreatePreloaded(); err != nil {
		return fmt.Errorf("preparing HUD font: %w", err)
	}
	hud.font = font
	return nil
}

// Attach creates the text entities in sprites
func (hud *HUDSystem) Attach(sprites SpriteSystem) {
	for i := 0; i < 3; i++ {
		t := hud.newText(engo.Point{X: 10, Y: float32(10 + i*hudLineStep)}, hud.hudColor)
		hud.lines = append(hud.lines, t)
		sprites.Add(&t.BasicEntity, &t.RenderComponent, &t.SpaceComponent)
	}
	hud.banner = hud.newText(engo.Point{}, hud.bannerColor)
	sprites.Add(&hud.banner.BasicEntity, &hud.banner.RenderComponent, &hud.banner.SpaceComponent)
}

func (hud *HUDSystem) newText(pos engo.Point, c color.Color) *hudText {
	t := &hudText{BasicEntity: ecs.NewBasic()}
	t.Color = c
	t.Position = pos
	t.Hidden = true
	t.SetZIndex(10)
	t.SetShader(common.TextHUDShader)
	return t
}

// Remove satisfies the ecs.System interface
func (hud *HUDSystem) Remove(basic ecs.BasicEntity) {}

// Update pushes the latest text into the text entities
func (hud *HUDSystem) Update(dt float32) {
	if hud.font == nil {
		return
	}
	for i, line := range hud.hud.Lines() {
		if i < len(hud.lines) {
			hud.setText(hud.lines[i], line)
		}
	}
	if hud.banner != nil {
		hud.setText(hud.banner, hud.hud.Big)
		w, h, _ := hud.font.TextDimensions(hud.hud.Big)
		hud.banner.Position = engo.Point{
			X: float32(math.Max(0, float64(engo.GameWidth()-float32(w))/2)),
			Y: (engo.GameHeight() - float32(h)) / 2,
		}
	}
}

func (hud *HUDSystem) setText(t *hudText, text string) {
	t.Drawable = common.Text{Font: hud.font, Text: text}
	t.Hidden = text == ""
}

// UpdateGameState formats the HUD for a snapshot
func (hud *HUDSystem) UpdateGameState(state *engine.GameState) {
	hud.hud = engine.NewHUD(state)
}

// HUD returns the text currently shown
func (hud *HUDSystem) HUD() engine.HUD {
	return hud.hud
}
