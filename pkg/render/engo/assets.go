package engo

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/EngoEngine/engo/common"
)

// Sprite edge lengths in pixels
const (
	shipSpriteSize   = 16
	bulletSpriteSize = 4
	asteroidUnitPx   = 12 // pixels per unit of asteroid size
	maxAsteroidSize  = 6
)

// AssetManager builds the procedural sprites used by the GUI frontend
type AssetManager struct {
	shipSprite      common.Drawable
	bulletSprite    common.Drawable
	asteroidSprites map[int]common.Drawable

	backgroundTexture common.Drawable
}

// NewAssetManager creates an empty asset manager. LoadAssets needs a GL
// context.
func NewAssetManager() *AssetManager {
	return &AssetManager{
		asteroidSprites: make(map[int]common.Drawable),
	}
}

// LoadAssets rasterises every sprite
func (am *AssetManager) LoadAssets() error {
	am.shipSprite = am.createSprite(shipSpriteSize, shipPattern(shipSpriteSize))
	am.bulletSprite = am.createSprite(bulletSpriteSize, discPattern(bulletSpriteSize))
	for size := 1; size <= maxAsteroidSize; size++ {
		px := asteroidDiameter(size)
		am.asteroidSprites[size] = am.createSprite(px, discPattern(px))
	}
	am.backgroundTexture = am.createSprite(64, starPattern(64))
	return nil
}

// asteroidDiameter returns the sprite size for an asteroid tier
func asteroidDiameter(size int) int {
	if size < 1 {
		size = 1
	}
	return 2 * size * asteroidUnitPx
}

// shipPattern draws an arrowhead pointing up
func shipPattern(n int) [][]int {
	pattern := makePattern(n)
	half := n / 2
	for y := 0; y < n; y++ {
		reach := y / 2
		if y > 3*n/4 {
			reach = (n - y) / 2
		}
		for x := half - reach - 1; x <= half+reach; x++ {
			if x >= 0 && x < n {
				pattern[y][x] = 1
			}
		}
	}
	return pattern
}

// discPattern fills a circle inscribed in an n x n square
func discPattern(n int) [][]int {
	pattern := makePattern(n)
	r := float64(n) / 2
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			dx := float64(x) + 0.5 - r
			dy := float64(y) + 0.5 - r
			if dx*dx+dy*dy <= r*r {
				pattern[y][x] = 1
			}
		}
	}
	return pattern
}

// starPattern scatters a fixed set of stars
func starPattern(n int) [][]int {
	pattern := makePattern(n)
	for i := 0; i < n; i += 8 {
		if (i/8)%3 == 0 {
			pattern[i][(i*7)%n] = 1
		}
	}
	return pattern
}

func makePattern(n int) [][]int {
	pattern := make([][]int, n)
	for i := range pattern {
		pattern[i] = make([]int, n)
	}
	return pattern
}

// createSprite creates a sprite from a square pattern
func (am *AssetManager) createSprite(size int, pattern [][]int) common.Drawable {
	img := am.createBaseImage(size, size)
	am.drawPatternOnImage(img, pattern, size, size)
	return am.convertToEngoTexture(img)
}

// createBaseImage creates a transparent RGBA image with the specified dimensions.
func (am *AssetManager) createBaseImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.RGBA{0, 0, 0, 0}}, image.Point{}, draw.Src)
	return img
}

// drawPatternOnImage draws a 2D pixel pattern onto the provided RGBA image.
func (am *AssetManager) drawPatternOnImage(img *image.RGBA, pattern [][]int, width, height int) {
	for y, row := range pattern {
		if y >= height {
			break
		}
		for x, pixel := range row {
			if x >= width {
				break
			}
			if pixel == 1 {
				img.Set(x, y, color.RGBA{255, 255, 255, 255})
			}
		}
	}
}

// convertToEngoTexture uploads an RGBA image as an engo texture.
func (am *AssetManager) convertToEngoTexture(img *image.RGBA) common.Drawable {
	bounds := img.Bounds()
	nrgbaImg := image.NewNRGBA(bounds)
	draw.Draw(nrgbaImg, bounds, img, bounds.Min, draw.Src)

	texture := common.NewImageObject(nrgbaImg)
	return common.NewTextureSingle(texture)
}

// GetShipSprite returns the ship sprite
func (am *AssetManager) GetShipSprite() common.Drawable {
	return am.shipSprite
}

// GetBulletSprite returns the bullet sprite
func (am *AssetManager) GetBulletSprite() common.Drawable {
	return am.bulletSprite
}

// GetAsteroidSprite returns the sprite for an asteroid size, clamped to the
// largest prepared tier
func (am *AssetManager) GetAsteroidSprite(size int) common.Drawable {
	if size > maxAsteroidSize {
		size = maxAsteroidSize
	}
	if sprite, exists := am.asteroidSprites[size]; exists {
		return sprite
	}
	return am.asteroidSprites[1]
}

// GetBackgroundTexture returns the background texture
func (am *AssetManager) GetBackgroundTexture() common.Drawable {
	return am.backgroundTexture
}
