// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/flock/vmath"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	World      WorldConfig      `yaml:"world"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Sheep      SheepConfig      `yaml:"sheep"`
	Human      HumanConfig      `yaml:"human"`
	Bleat      BleatConfig      `yaml:"bleat"`
	Wolf       WolfConfig       `yaml:"wolf"`
	Population PopulationConfig `yaml:"population"`
	Cabbage    CabbageConfig    `yaml:"cabbage"`
	Effects    EffectsConfig    `yaml:"effects"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds the in-bounds play area. The area is centered on the origin.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PhysicsConfig holds stepping parameters.
type PhysicsConfig struct {
	DT           float64 `yaml:"dt"`
	GridCellSize float64 `yaml:"grid_cell_size"` // raised to the largest interaction radius when smaller
}

// SheepConfig holds flock behavior parameters.
type SheepConfig struct {
	InitialCount      int     `yaml:"initial_count"`
	SpawnRadius       float64 `yaml:"spawn_radius"`
	CollisionDistance float64 `yaml:"collision_distance"`
	Range             float64 `yaml:"range"`       // observation and contagion radius
	AvoidRange        float64 `yaml:"avoid_range"` // neighbors closer than this repel
	AvoidWeight       float64 `yaml:"avoid_weight"`
	Awareness         int     `yaml:"awareness"` // nearest neighbors considered
	FleeSpeed         float64 `yaml:"flee_speed"`
	FlockSpeed        float64 `yaml:"flock_speed"`
	CycleMin          float64 `yaml:"cycle_min"`
	CycleMax          float64 `yaml:"cycle_max"`
	WrapMargin        float64 `yaml:"wrap_margin"`
}

// HumanConfig holds the player-controlled sheep parameters.
type HumanConfig struct {
	Speed       float64 `yaml:"speed"`
	JumpEnabled bool    `yaml:"jump_enabled"`
	JumpMin     float64 `yaml:"jump_min"`
	JumpMax     float64 `yaml:"jump_max"`
}

// BleatConfig holds the contagion parameters.
type BleatConfig struct {
	TickInterval      float64 `yaml:"tick_interval"`
	SpontaneousChance float64 `yaml:"spontaneous_chance"`
	SpreadChance      float64 `yaml:"spread_chance"`
	HumanCooldown     float64 `yaml:"human_cooldown"`
	AICooldown        float64 `yaml:"ai_cooldown"`
	SpreadWindow      float64 `yaml:"spread_window"`
}

// WolfConfig holds predator parameters and difficulty curves.
type WolfConfig struct {
	EatRange       float64 `yaml:"eat_range"`
	HungryInterval float64 `yaml:"hungry_interval"`
	SleepInitial   float64 `yaml:"sleep_initial"`
	SleepHalfTime  float64 `yaml:"sleep_half_time"`
	SpeedInitial   float64 `yaml:"speed_initial"`
	SpeedMax       float64 `yaml:"speed_max"`
	SpeedHalfTime  float64 `yaml:"speed_half_time"`
	SpawnInterval  float64 `yaml:"spawn_interval"`
	CapDivisor     float64 `yaml:"cap_divisor"`
	EdgeMargin     float64 `yaml:"edge_margin"`
}

// PopulationConfig holds sheep respawn parameters.
type PopulationConfig struct {
	TargetSheep     int     `yaml:"target_sheep"`
	RespawnInterval float64 `yaml:"respawn_interval"`
	EdgeMargin      float64 `yaml:"edge_margin"`
	WalkSpeed       float64 `yaml:"walk_speed"`
	Padding         float64 `yaml:"padding"` // promotion happens inside bounds shrunk by this
}

// CabbageConfig holds the food spawner and feeding rule.
type CabbageConfig struct {
	Interval float64 `yaml:"interval"`
	Chance   float64 `yaml:"chance"`
	Max      int     `yaml:"max"`
	Padding  float64 `yaml:"padding"`
	EatRange float64 `yaml:"eat_range"`
}

// EffectsConfig holds presentation side-effect lifetimes.
type EffectsConfig struct {
	BleatDuration  float64 `yaml:"bleat_duration"`
	EatDuration    float64 `yaml:"eat_duration"`
	BurstParticles int     `yaml:"burst_particles"`
	BurstSpeed     float64 `yaml:"burst_speed"`
	BurstLifetime  float64 `yaml:"burst_lifetime"`
	MaxParticles   int     `yaml:"max_particles"`
}

// TelemetryConfig holds telemetry and performance parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds per stats window
	PerfWindow  int     `yaml:"perf_window"`  // ticks in the rolling perf average
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32      float32    // Physics.DT as float32
	ScreenW32 float32    // Screen.Width as float32
	ScreenH32 float32    // Screen.Height as float32
	Bounds    vmath.Rect // in-bounds rectangle centered on the origin
	CellSize  float32    // effective spatial grid cell size
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()
	return cfg, nil
}

// Default returns the embedded defaults. Panics if they do not parse.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Validate rejects parameter combinations the simulation cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Physics.DT <= 0:
		return fmt.Errorf("physics.dt must be positive, got %v", c.Physics.DT)
	case c.World.Width <= 0 || c.World.Height <= 0:
		return fmt.Errorf("world size must be positive, got %vx%v", c.World.Width, c.World.Height)
	case c.Sheep.CycleMin <= 0 || c.Sheep.CycleMax < c.Sheep.CycleMin:
		return fmt.Errorf("sheep cycle range [%v,%v) is invalid", c.Sheep.CycleMin, c.Sheep.CycleMax)
	case c.Sheep.Awareness < 1:
		return fmt.Errorf("sheep.awareness must be at least 1, got %d", c.Sheep.Awareness)
	case c.Wolf.SleepHalfTime <= 0 || c.Wolf.SpeedHalfTime <= 0:
		return fmt.Errorf("wolf half times must be positive")
	case c.Wolf.SpeedMax < c.Wolf.SpeedInitial:
		return fmt.Errorf("wolf.speed_max (%v) below wolf.speed_initial (%v)", c.Wolf.SpeedMax, c.Wolf.SpeedInitial)
	case c.Wolf.CapDivisor <= 0:
		return fmt.Errorf("wolf.cap_divisor must be positive, got %v", c.Wolf.CapDivisor)
	case c.Human.JumpEnabled && (c.Human.JumpMin <= 0 || c.Human.JumpMax < c.Human.JumpMin):
		return fmt.Errorf("human jump range [%v,%v) is invalid", c.Human.JumpMin, c.Human.JumpMax)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.Bounds = vmath.CenteredRect(float32(c.World.Width), float32(c.World.Height))

	// The pair scanner visits only adjacent cells, so a cell must cover the
	// largest radius any consumer asks for.
	cell := c.Physics.GridCellSize
	for _, r := range []float64{c.Sheep.Range, c.Sheep.CollisionDistance, c.Sheep.AvoidRange} {
		if r > cell {
			cell = r
		}
	}
	c.Derived.CellSize = float32(cell)
}

// Recompute refreshes derived values after fields were changed in code.
func (c *Config) Recompute() {
	c.computeDerived()
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
