package game

import (
	"errors"
	"fmt"
	"image/color"
	"math"
)

// ErrInvalidConfig is returned by Config.Validate for unusable settings.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds every tunable of the simulation. Distances are pixels, times are ticks.
type Config struct {
	Width  int
	Height int

	LaunchX float64
	LaunchY float64

	Gravity         float64 // px/tick² applied to projectiles
	ParticleGravity float64 // lighter pull for burst particles
	Wind            float64 // px/tick added to projectile vx every tick

	PowerStep     int     // power gained per charging tick
	MaxPower      int     // power cap
	SpeedPerPower float64 // launch speed = power * SpeedPerPower

	ProjectileRadius float64
	TrailLength      int

	TargetWidth      float64
	TargetHeight     float64
	BaseTargets      int // targets per level = BaseTargets + level
	TargetStartX     float64
	TargetSpacing    float64
	TargetRowOffset  float64 // distance of the row above the bottom edge
	TargetRowStagger float64 // odd bottles sit this much lower

	InitialShots int
	ShotsBase    int // shots after a level clear = ShotsBase + new level

	BurstCount    int
	BurstSpeed    float64
	ParticleDecay float64
	SparkleChance float64

	Seed int64
}

// DefaultConfig returns the arcade tuning used by the windowed game.
func DefaultConfig() Config {
	return Config{
		Width:            1000,
		Height:           600,
		LaunchX:          50,
		LaunchY:          550,
		Gravity:          0.5,
		ParticleGravity:  0.1,
		Wind:             0,
		PowerStep:        2,
		MaxPower:         100,
		SpeedPerPower:    0.5,
		ProjectileRadius: 5,
		TrailLength:      10,
		TargetWidth:      40,
		TargetHeight:     80,
		BaseTargets:      6,
		TargetStartX:     200,
		TargetSpacing:    100,
		TargetRowOffset:  150,
		TargetRowStagger: 30,
		InitialShots:     10,
		ShotsBase:        10,
		BurstCount:       20,
		BurstSpeed:       2.5,
		ParticleDecay:    0.02,
		SparkleChance:    0.1,
	}
}

// Validate reports settings the simulation cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("config: playfield %dx%d: %w", c.Width, c.Height, ErrInvalidConfig)
	case c.TargetSpacing <= 0 || c.TargetWidth <= 0 || c.TargetHeight <= 0:
		return fmt.Errorf("config: target geometry: %w", ErrInvalidConfig)
	case c.LaunchX < 0 || c.LaunchX > float64(c.Width) || c.LaunchY < 0 || c.LaunchY > float64(c.Height):
		return fmt.Errorf("config: launch point (%.0f,%.0f) outside playfield: %w", c.LaunchX, c.LaunchY, ErrInvalidConfig)
	case c.MaxPower <= 0 || c.PowerStep <= 0:
		return fmt.Errorf("config: power step %d max %d: %w", c.PowerStep, c.MaxPower, ErrInvalidConfig)
	case c.InitialShots < 0 || c.ShotsBase < 0:
		return fmt.Errorf("config: negative shot count: %w", ErrInvalidConfig)
	case math.IsNaN(c.Gravity) || math.IsInf(c.Gravity, 0):
		return fmt.Errorf("config: gravity %v: %w", c.Gravity, ErrInvalidConfig)
	}
	return nil
}

// Palette.
var (
	skyTop      = color.RGBA{R: 24, G: 32, B: 58, A: 255}
	skyBottom   = color.RGBA{R: 58, G: 74, B: 110, A: 255}
	groundColor = color.RGBA{R: 52, G: 38, B: 26, A: 255}
	ballColor   = color.RGBA{R: 236, G: 236, B: 236, A: 255}
	aimColor    = color.RGBA{R: 110, G: 110, B: 110, A: 110}
	feedColor   = color.RGBA{R: 255, G: 230, B: 120, A: 255}
	sparkleTint = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	launcherCol = color.RGBA{R: 90, G: 90, B: 100, A: 255}

	// tintColors is indexed by Tint: body colour then neck colour.
	tintColors = [tintCount][2]color.RGBA{
		TintGreen: {{R: 0x4C, G: 0xAF, B: 0x50, A: 255}, {R: 0x38, G: 0x8E, B: 0x3C, A: 255}},
		TintBlue:  {{R: 0x21, G: 0x96, B: 0xF3, A: 255}, {R: 0x19, G: 0x76, B: 0xD2, A: 255}},
		TintRed:   {{R: 0xF4, G: 0x43, B: 0x36, A: 255}, {R: 0xD3, G: 0x2F, B: 0x2F, A: 255}},
		TintGold:  {{R: 0xFF, G: 0xD7, B: 0x00, A: 255}, {R: 0xFF, G: 0xA0, B: 0x00, A: 255}},
	}
)
