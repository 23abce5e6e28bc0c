// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment overrides, e.g. ASTEROIDS_SHIP_MAXSPEED
const EnvPrefix = "ASTEROIDS"

var (
	// ErrConfigNotFound is returned when an explicit config path doesn't exist
	ErrConfigNotFound = errors.New("config file not found")
	// ErrInvalidConfig wraps every validation failure
	ErrInvalidConfig = errors.New("invalid config")
)

// GameConfig contains every tunable of an Asteroids session
type GameConfig struct {
	Ship      ShipConfig      `json:"ship" mapstructure:"ship"`
	Bullet    BulletConfig    `json:"bullet" mapstructure:"bullet"`
	Asteroid  AsteroidConfig  `json:"asteroid" mapstructure:"asteroid"`
	Session   SessionConfig   `json:"session" mapstructure:"session"`
	Input     InputConfig     `json:"input" mapstructure:"input"`
	Collision CollisionConfig `json:"collision" mapstructure:"collision"`
	Logging   LoggingConfig   `json:"logging" mapstructure:"logging"`
	Metrics   MetricsConfig   `json:"metrics" mapstructure:"metrics"`
	Frontend  FrontendConfig  `json:"frontend" mapstructure:"frontend"`
}

// ShipConfig contains player ship tunables
type ShipConfig struct {
	MaxSpeed        float64 `json:"maxSpeed" mapstructure:"maxSpeed"`
	Acceleration    float64 `json:"acceleration" mapstructure:"acceleration"`
	Size            float64 `json:"size" mapstructure:"size"`
	CollisionRadius float64 `json:"collisionRadius" mapstructure:"collisionRadius"`
	MuzzleEpsilon   float64 `json:"muzzleEpsilon" mapstructure:"muzzleEpsilon"`
}

// BulletConfig contains projectile tunables
type BulletConfig struct {
	Speed      float64 `json:"speed" mapstructure:"speed"`
	TravelTime float64 `json:"travelTime" mapstructure:"travelTime"` // seconds
	Radius     float64 `json:"radius" mapstructure:"radius"`
}

// AsteroidConfig contains asteroid field tunables
type AsteroidConfig struct {
	DefaultSize       int     `json:"defaultSize" mapstructure:"defaultSize"`
	Multiply          int     `json:"multiply" mapstructure:"multiply"`
	Speed             float64 `json:"speed" mapstructure:"speed"`
	StartCount        int     `json:"startCount" mapstructure:"startCount"`
	SpawnMin          float64 `json:"spawnMin" mapstructure:"spawnMin"`
	SpawnMax          float64 `json:"spawnMax" mapstructure:"spawnMax"`
	SpinPeriod        float64 `json:"spinPeriod" mapstructure:"spinPeriod"` // seconds per revolution
	NormalizeVelocity bool    `json:"normalizeVelocity" mapstructure:"normalizeVelocity"`
	Seed              uint64  `json:"seed" mapstructure:"seed"` // 0 picks a random seed
}

// SessionConfig contains scoring and game-over tunables
type SessionConfig struct {
	GameOverDelay  float64 `json:"gameOverDelay" mapstructure:"gameOverDelay"` // seconds
	ScorePerHit    int     `json:"scorePerHit" mapstructure:"scorePerHit"`
	ShootToRestart bool    `json:"shootToRestart" mapstructure:"shootToRestart"`
}

// InputConfig contains pointer and keyboard handling tunables
type InputConfig struct {
	RotationRate  float64       `json:"rotationRate" mapstructure:"rotationRate"` // degrees per pixel
	InvertedMouse bool          `json:"invertedMouse" mapstructure:"invertedMouse"`
	MouseOffset   float64       `json:"mouseOffset" mapstructure:"mouseOffset"`
	HoldWindow    time.Duration `json:"holdWindow" mapstructure:"holdWindow"`
}

// CollisionConfig selects the broad-phase strategy
type CollisionConfig struct {
	BroadPhase     string `json:"broadPhase" mapstructure:"broadPhase"` // "brute" or "octree"
	OctreeCapacity int    `json:"octreeCapacity" mapstructure:"octreeCapacity"`
}

// LoggingConfig contains log output settings
type LoggingConfig struct {
	Level string `json:"level" mapstructure:"level"`
}

// MetricsConfig toggles instrumentation
type MetricsConfig struct {
	Enabled bool `json:"enabled" mapstructure:"enabled"`
}

// FrontendConfig contains presentation settings
type FrontendConfig struct {
	Renderer      string `json:"renderer" mapstructure:"renderer"` // "terminal", "engo" or "headless"
	Title         string `json:"title" mapstructure:"title"`
	Width         int    `json:"width" mapstructure:"width"`
	Height        int    `json:"height" mapstructure:"height"`
	FPS           int    `json:"fps" mapstructure:"fps"`
	DebugControls bool   `json:"debugControls" mapstructure:"debugControls"`
}

// DefaultConfig creates a default game configuration
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Ship: ShipConfig{
			MaxSpeed:        10,
			Acceleration:    5,
			Size:            1.5,
			CollisionRadius: 1,
			MuzzleEpsilon:   0.05,
		},
		Bullet: BulletConfig{
			Speed:      25,
			TravelTime: 10,
			Radius:     0.05,
		},
		Asteroid: AsteroidConfig{
			DefaultSize: 3,
			Multiply:    3,
			Speed:       2,
			StartCount:  10,
			SpawnMin:    20,
			SpawnMax:    100,
			SpinPeriod:  20,
		},
		Session: SessionConfig{
			GameOverDelay:  5,
			ScorePerHit:    100,
			ShootToRestart: true,
		},
		Input: InputConfig{
			RotationRate:  0.1,
			InvertedMouse: true,
			MouseOffset:   200,
			HoldWindow:    150 * time.Millisecond,
		},
		Collision: CollisionConfig{
			BroadPhase:     "brute",
			OctreeCapacity: 8,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
		Frontend: FrontendConfig{
			Renderer: "terminal",
			Title:    "Asteroids",
			Width:    800,
			Height:   600,
			FPS:      60,
		},
	}
}

// LoadConfig loads configuration from a JSON file layered over the
// defaults, then applies ASTEROIDS_* environment overrides. An empty path
// loads defaults and environment only.
func LoadConfig(path string) (*GameConfig, error) {
	v := newViper()

	if path != "" {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &GameConfig{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// newViper returns a viper instance with every default registered, so that
// AutomaticEnv can override any key.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := DefaultConfig()
	defaults := map[string]any{
		"ship.maxSpeed":              d.Ship.MaxSpeed,
		"ship.acceleration":          d.Ship.Acceleration,
		"ship.size":                  d.Ship.Size,
		"ship.collisionRadius":       d.Ship.CollisionRadius,
		"ship.muzzleEpsilon":         d.Ship.MuzzleEpsilon,
		"bullet.speed":               d.Bullet.Speed,
		"bullet.travelTime":          d.Bullet.TravelTime,
		"bullet.radius":              d.Bullet.Radius,
		"asteroid.defaultSize":       d.Asteroid.DefaultSize,
		"asteroid.multiply":          d.Asteroid.Multiply,
		"asteroid.speed":             d.Asteroid.Speed,
		"asteroid.startCount":        d.Asteroid.StartCount,
		"asteroid.spawnMin":          d.Asteroid.SpawnMin,
		"asteroid.spawnMax":          d.Asteroid.SpawnMax,
		"asteroid.spinPeriod":        d.Asteroid.SpinPeriod,
		"asteroid.normalizeVelocity": d.Asteroid.NormalizeVelocity,
		"asteroid.seed":              d.Asteroid.Seed,
		"session.gameOverDelay":      d.Session.GameOverDelay,
		"session.scorePerHit":        d.Session.ScorePerHit,
		"session.shootToRestart":     d.Session.ShootToRestart,
		"input.rotationRate":         d.Input.RotationRate,
		"input.invertedMouse":        d.Input.InvertedMouse,
		"input.mouseOffset":          d.Input.MouseOffset,
		"input.holdWindow":           d.Input.HoldWindow,
		"collision.broadPhase":       d.Collision.BroadPhase,
		"collision.octreeCapacity":   d.Collision.OctreeCapacity,
		"logging.level":              d.Logging.Level,
		"metrics.enabled":            d.Metrics.Enabled,
		"frontend.renderer":          d.Frontend.Renderer,
		"frontend.title":             d.Frontend.Title,
		"frontend.width":             d.Frontend.Width,
		"frontend.height":            d.Frontend.Height,
		"frontend.fps":               d.Frontend.FPS,
		"frontend.debugControls":     d.Frontend.DebugControls,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	return v
}

// SaveConfig saves configuration to a JSON file
func SaveConfig(config *GameConfig, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}

// Validate reports every out-of-range setting, joined into one error
// wrapping ErrInvalidConfig.
func (c *GameConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	check(c.Ship.MaxSpeed > 0, "ship.maxSpeed must be positive, got %v", c.Ship.MaxSpeed)
	check(c.Ship.Acceleration >= 0, "ship.acceleration must not be negative, got %v", c.Ship.Acceleration)
	check(c.Ship.Size >= 0, "ship.size must not be negative, got %v", c.Ship.Size)
	check(c.Ship.CollisionRadius > 0, "ship.collisionRadius must be positive, got %v", c.Ship.CollisionRadius)
	check(c.Bullet.Speed > 0, "bullet.speed must be positive, got %v", c.Bullet.Speed)
	check(c.Bullet.TravelTime > 0, "bullet.travelTime must be positive, got %v", c.Bullet.TravelTime)
	check(c.Bullet.Radius > 0, "bullet.radius must be positive, got %v", c.Bullet.Radius)
	check(c.Asteroid.DefaultSize >= 1, "asteroid.defaultSize must be at least 1, got %d", c.Asteroid.DefaultSize)
	check(c.Asteroid.Multiply >= 1, "asteroid.multiply must be at least 1, got %d", c.Asteroid.Multiply)
	check(c.Asteroid.Speed >= 0, "asteroid.speed must not be negative, got %v", c.Asteroid.Speed)
	check(c.Asteroid.StartCount >= 0, "asteroid.startCount must not be negative, got %d", c.Asteroid.StartCount)
	check(c.Asteroid.SpawnMin >= 0, "asteroid.spawnMin must not be negative, got %v", c.Asteroid.SpawnMin)
	check(c.Asteroid.SpawnMin <= c.Asteroid.SpawnMax, "asteroid.spawnMin %v exceeds spawnMax %v", c.Asteroid.SpawnMin, c.Asteroid.SpawnMax)
	check(c.Session.GameOverDelay >= 0, "session.gameOverDelay must not be negative, got %v", c.Session.GameOverDelay)
	check(c.Input.MouseOffset >= 0, "input.mouseOffset must not be negative, got %v", c.Input.MouseOffset)
	check(c.Collision.BroadPhase == "brute" || c.Collision.BroadPhase == "octree",
		"collision.broadPhase must be brute or octree, got %q", c.Collision.BroadPhase)
	check(c.Frontend.Renderer == "terminal" || c.Frontend.Renderer == "engo" || c.Frontend.Renderer == "headless",
		"frontend.renderer must be terminal, engo or headless, got %q", c.Frontend.Renderer)
	check(c.Frontend.FPS > 0, "frontend.fps must be positive, got %d", c.Frontend.FPS)

	return errors.Join(errs...)
}
