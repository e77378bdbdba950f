// Package config handles hexfield configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/Faultbox/hexfield/internal/engine/picking"
	"github.com/Faultbox/hexfield/pkg/hex"
)

// ErrInvalidConfig is returned by Validate for out-of-range settings.
var ErrInvalidConfig = errors.New("invalid config")

// MaxTiles is the largest field the viewer protocol can address: slots and
// the field tile count travel as u16.
const MaxTiles = 0xFFFF

// FileName is the config file name searched for by Load.
const FileName = "hexfield.yaml"

// Config holds all hexfield settings.
type Config struct {
	Field     FieldConfig     `yaml:"field"`
	Animation AnimationConfig `yaml:"animation"`
	Camera    CameraConfig    `yaml:"camera"`
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// FieldConfig describes the generated tile field.
type FieldConfig struct {
	Shape       string  `yaml:"shape"`       // spiral, ring or range
	Radius      int     `yaml:"radius"`      // Rings around the center
	Center      [2]int  `yaml:"center"`      // Axial q, r
	TileSize    float64 `yaml:"tile_size"`   // Hexagon circumradius
	TileHeight  float32 `yaml:"tile_height"` // Pick volume thickness
	Orientation string  `yaml:"orientation"` // pointy or flat
	PickMode    string  `yaml:"pick_mode"`   // tiles or plane
}

// AnimationConfig holds the tile selection animation settings.
type AnimationConfig struct {
	MinHeight float32 `yaml:"min_height"`
	MaxHeight float32 `yaml:"max_height"`
	Rate      float32 `yaml:"rate"`
}

// CameraConfig holds the orbit camera and look-at target settings.
type CameraConfig struct {
	TargetRate  float32 `yaml:"target_rate"`
	OrbitRadius float32 `yaml:"orbit_radius"`
	OrbitHeight float32 `yaml:"orbit_height"`
	OrbitRate   float32 `yaml:"orbit_rate"`
	ViewUnit    float32 `yaml:"view_unit"`
	Near        float32 `yaml:"near"`
	Far         float32 `yaml:"far"`
}

// ServerConfig holds the viewer server settings.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	TickRate     int           `yaml:"tick_rate"`   // Frames per second
	SendBuffer   int           `yaml:"send_buffer"` // Queued frames per viewer
	PingInterval time.Duration `yaml:"ping_interval"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Default returns a Config with the demo field: a radius 3 spiral of
// 37 unit tiles.
func Default() *Config {
	return &Config{
		Field: FieldConfig{
			Shape:       hex.ShapeSpiral.String(),
			Radius:      3,
			TileSize:    1,
			TileHeight:  0.2,
			Orientation: hex.PointyTop.String(),
			PickMode:    picking.ModeTiles.String(),
		},
		Animation: AnimationConfig{
			MinHeight: 0.0,
			MaxHeight: 0.3,
			Rate:      1.0,
		},
		Camera: CameraConfig{
			TargetRate:  1.0,
			OrbitRadius: 10,
			OrbitHeight: 6,
			OrbitRate:   0.1,
			ViewUnit:    6,
			Near:        1,
			Far:         20,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			TickRate:     60,
			SendBuffer:   16,
			PingInterval: 30 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:      "info",
			LogFile:    "",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
	}
}

// Validate checks every setting and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...)))
	}

	shape, err := hex.ParseShape(c.Field.Shape)
	if err != nil {
		bad("field.shape: %v", err)
	}
	if _, err := hex.ParseOrientation(c.Field.Orientation); err != nil {
		bad("field.orientation: %v", err)
	}
	if _, err := picking.ParseMode(c.Field.PickMode); err != nil {
		bad("field.pick_mode: %v", err)
	}
	if c.Field.Radius < 0 {
		bad("field.radius %d is negative", c.Field.Radius)
	} else if n := shape.CellCount(min(c.Field.Radius, MaxTiles)); n > MaxTiles {
		bad("field.radius %d gives %d tiles, more than %d", c.Field.Radius, n, MaxTiles)
	}
	if c.Field.TileSize <= 0 {
		bad("field.tile_size %v must be positive", c.Field.TileSize)
	}
	if c.Field.TileHeight <= 0 {
		bad("field.tile_height %v must be positive", c.Field.TileHeight)
	}

	if c.Animation.MaxHeight < c.Animation.MinHeight {
		bad("animation.max_height %v is below min_height %v", c.Animation.MaxHeight, c.Animation.MinHeight)
	}
	if c.Animation.Rate <= 0 {
		bad("animation.rate %v must be positive", c.Animation.Rate)
	}

	if c.Camera.TargetRate <= 0 {
		bad("camera.target_rate %v must be positive", c.Camera.TargetRate)
	}
	if c.Camera.ViewUnit <= 0 {
		bad("camera.view_unit %v must be positive", c.Camera.ViewUnit)
	}
	if c.Camera.Near >= c.Camera.Far {
		bad("camera.near %v must be below far %v", c.Camera.Near, c.Camera.Far)
	}

	if c.Server.TickRate <= 0 {
		bad("server.tick_rate %d must be positive", c.Server.TickRate)
	}
	if c.Server.SendBuffer <= 0 {
		bad("server.send_buffer %d must be positive", c.Server.SendBuffer)
	}

	return errors.Join(errs...)
}

// Layout returns the hex layout described by the field settings.
func (f FieldConfig) Layout() (hex.Layout, error) {
	o, err := hex.ParseOrientation(f.Orientation)
	if err != nil {
		return hex.Layout{}, err
	}
	return hex.Layout{Orientation: o, Size: f.TileSize}, nil
}

// Cells generates the ordered field cells.
func (f FieldConfig) Cells() ([]hex.Hexagon, error) {
	shape, err := hex.ParseShape(f.Shape)
	if err != nil {
		return nil, err
	}
	center := hex.New(float64(f.Center[0]), float64(f.Center[1]))
	return hex.GenerateField(shape, center, f.Radius)
}

// TickInterval returns the duration of one frame.
func (s ServerConfig) TickInterval() time.Duration {
	if s.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(s.TickRate)
}
