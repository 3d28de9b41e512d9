package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ErrInvalidConfig is wrapped by every validation failure returned from Load.
var ErrInvalidConfig = errors.New("invalid config")

// ShipClass tags a ship with its faction and stat line
type ShipClass string

const (
	PlayerLight ShipClass = "player-light"
	PlayerHeavy ShipClass = "player-heavy"
	Hostile     ShipClass = "hostile"
)

// Classes lists every ship class in a stable order
var Classes = []ShipClass{PlayerLight, PlayerHeavy, Hostile}

// IsHostile reports whether the class belongs to the AI faction
func (c ShipClass) IsHostile() bool { return c == Hostile }

// Weapon describes a ship's gun
type Weapon struct {
	FireRate float64 `mapstructure:"fireRate"` // shots per second
	Damage   int     `mapstructure:"damage"`
	Range    float64 `mapstructure:"range"`
}

// AI holds the per-type AI tunables
type AI struct {
	DetectionRange float64 `mapstructure:"detectionRange"`
}

// ShipType is the static stat line of one ship class
type ShipType struct {
	Speed         float64 `mapstructure:"speed"`        // px per second
	Acceleration  float64 `mapstructure:"acceleration"` // centiseconds to reach Speed from rest
	Size          float64 `mapstructure:"size"`         // hit diameter in px
	Color         string  `mapstructure:"color"`
	Health        int     `mapstructure:"health"`
	RotationSpeed float64 `mapstructure:"rotationSpeed"` // radians per second
	Weapon        Weapon  `mapstructure:"weapon"`
	AI            AI      `mapstructure:"ai"`
}

// Bullet holds projectile tunables shared by every weapon
type Bullet struct {
	Speed    float64 `mapstructure:"speed"`    // px per second
	Size     float64 `mapstructure:"size"`     // px
	Lifetime float64 `mapstructure:"lifetime"` // ms
}

// Separation controls the at-rest overlap nudge
type Separation struct {
	MinDistance     float64 `mapstructure:"minDistance"`
	SeparationForce float64 `mapstructure:"separationForce"` // px per second
}

// World is the playable rectangle, origin at (0, 0)
type World struct {
	Width  float64 `mapstructure:"width"`
	Height float64 `mapstructure:"height"`
}

// Config is the full configuration table. Everything except the
// player-light speed is fixed after load.
type Config struct {
	Types                 map[ShipClass]ShipType `mapstructure:"types"`
	Bullet                Bullet                 `mapstructure:"bullet"`
	ArriveThreshold       float64                `mapstructure:"arriveThreshold"`
	Separation            Separation             `mapstructure:"separation"`
	TargetingSnapRange    float64                `mapstructure:"targetingSnapRange"`
	TargetingReleaseRange float64                `mapstructure:"targetingReleaseRange"`
	World                 World                  `mapstructure:"world"`
}

// Default returns the built-in configuration table
func Default() *Config {
	return &Config{
		Types: map[ShipClass]ShipType{
			PlayerLight: {
				Speed: 60, Acceleration: 150, Size: 24, Color: "#4da6ff", Health: 100, RotationSpeed: 3,
				Weapon: Weapon{FireRate: 2, Damage: 8, Range: 220},
			},
			PlayerHeavy: {
				Speed: 35, Acceleration: 250, Size: 36, Color: "#2e6bd9", Health: 220, RotationSpeed: 1.5,
				Weapon: Weapon{FireRate: 1, Damage: 20, Range: 280},
			},
			Hostile: {
				Speed: 45, Acceleration: 200, Size: 28, Color: "#e04848", Health: 120, RotationSpeed: 2,
				Weapon: Weapon{FireRate: 1.2, Damage: 10, Range: 200},
				AI:     AI{DetectionRange: 350},
			},
		},
		Bullet:                Bullet{Speed: 320, Size: 4, Lifetime: 1500},
		ArriveThreshold:       3,
		Separation:            Separation{MinDistance: 40, SeparationForce: 30},
		TargetingSnapRange:    50,
		TargetingReleaseRange: 100,
		World:                 World{Width: 1600, Height: 1200},
	}
}

// Load reads configuration from path (JSON, YAML or TOML, chosen by
// extension) on top of the defaults. An empty path yields the defaults
// plus any SKIRMISH_* environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix("SKIRMISH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	for _, class := range Classes {
		t := d.Types[class]
		prefix := "types." + string(class) + "."
		v.SetDefault(prefix+"speed", t.Speed)
		v.SetDefault(prefix+"acceleration", t.Acceleration)
		v.SetDefault(prefix+"size", t.Size)
		v.SetDefault(prefix+"color", t.Color)
		v.SetDefault(prefix+"health", t.Health)
		v.SetDefault(prefix+"rotationSpeed", t.RotationSpeed)
		v.SetDefault(prefix+"weapon.fireRate", t.Weapon.FireRate)
		v.SetDefault(prefix+"weapon.damage", t.Weapon.Damage)
		v.SetDefault(prefix+"weapon.range", t.Weapon.Range)
		v.SetDefault(prefix+"ai.detectionRange", t.AI.DetectionRange)
	}

	v.SetDefault("bullet.speed", d.Bullet.Speed)
	v.SetDefault("bullet.size", d.Bullet.Size)
	v.SetDefault("bullet.lifetime", d.Bullet.Lifetime)

	v.SetDefault("arriveThreshold", d.ArriveThreshold)
	v.SetDefault("separation.minDistance", d.Separation.MinDistance)
	v.SetDefault("separation.separationForce", d.Separation.SeparationForce)
	v.SetDefault("targetingSnapRange", d.TargetingSnapRange)
	v.SetDefault("targetingReleaseRange", d.TargetingReleaseRange)

	v.SetDefault("world.width", d.World.Width)
	v.SetDefault("world.height", d.World.Height)
}

// Validate checks the invariants the simulation relies on
func (c *Config) Validate() error {
	for _, class := range Classes {
		t, ok := c.Types[class]
		if !ok {
			return fmt.Errorf("%w: missing ship type %q", ErrInvalidConfig, class)
		}
		switch {
		case t.Speed <= 0:
			return fmt.Errorf("%w: %s speed must be positive", ErrInvalidConfig, class)
		case t.Size <= 0:
			return fmt.Errorf("%w: %s size must be positive", ErrInvalidConfig, class)
		case t.Health <= 0:
			return fmt.Errorf("%w: %s health must be positive", ErrInvalidConfig, class)
		case t.Acceleration < 0 || t.RotationSpeed < 0 || t.Weapon.FireRate < 0:
			return fmt.Errorf("%w: %s has a negative rate", ErrInvalidConfig, class)
		}
	}
	if c.Bullet.Speed <= 0 || c.Bullet.Lifetime <= 0 {
		return fmt.Errorf("%w: bullet speed and lifetime must be positive", ErrInvalidConfig)
	}
	if c.TargetingSnapRange >= c.TargetingReleaseRange {
		return fmt.Errorf("%w: targetingSnapRange (%g) must be below targetingReleaseRange (%g)",
			ErrInvalidConfig, c.TargetingSnapRange, c.TargetingReleaseRange)
	}
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("%w: world bounds must be positive", ErrInvalidConfig)
	}
	return nil
}

// Type returns the stat line for a class. Unknown classes get a zero value.
func (c *Config) Type(class ShipClass) ShipType {
	return c.Types[class]
}

// SetSpeed is the live tuning hook. Values <= 0 are ignored.
func (c *Config) SetSpeed(class ShipClass, speed float64) {
	t, ok := c.Types[class]
	if !ok || speed <= 0 {
		return
	}
	t.Speed = speed
	c.Types[class] = t
}

// FireInterval returns the minimum time between shots in milliseconds.
// A zero fire rate never fires.
func (w Weapon) FireInterval() (ms float64, ok bool) {
	if w.FireRate <= 0 {
		return 0, false
	}
	return 1000 / w.FireRate, true
}
