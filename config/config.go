// Package config provides configuration loading for the game.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/munch/components"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all game configuration parameters.
type Config struct {
	Screen      ScreenConfig      `yaml:"screen"`
	World       WorldConfig       `yaml:"world"`
	Physics     PhysicsConfig     `yaml:"physics"`
	Player      PlayerConfig      `yaml:"player"`
	Anger       AngerConfig       `yaml:"anger"`
	PowerUps    PowerUpsConfig    `yaml:"powerups"`
	Progression ProgressionConfig `yaml:"progression"`
	Rank        RankConfig        `yaml:"rank"`
	Pool        PoolConfig        `yaml:"pool"`
	Motion      MotionConfig      `yaml:"motion"`
	Foods       []FoodConfig      `yaml:"foods"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	TargetFPS     int     `yaml:"target_fps"`
	PixelsPerUnit float64 `yaml:"pixels_per_unit"`
}

// WorldConfig holds playfield geometry in world units.
// The world is centered on the origin with y pointing up.
type WorldConfig struct {
	LaneMinY    float64 `yaml:"lane_min_y"`
	LaneMaxY    float64 `yaml:"lane_max_y"`
	SpawnX      float64 `yaml:"spawn_x"`
	MissX       float64 `yaml:"miss_x"` // trailing boundary; crossing it is a miss
	PlayerX     float64 `yaml:"player_x"`
	PlayerMinY  float64 `yaml:"player_min_y"`
	PlayerMaxY  float64 `yaml:"player_max_y"`
	MouthReachX float64 `yaml:"mouth_reach_x"`
	MouthReachY float64 `yaml:"mouth_reach_y"`
}

// PhysicsConfig holds the fixed timestep.
type PhysicsConfig struct {
	DT float64 `yaml:"dt"`
}

// PlayerConfig holds player movement and mouth parameters.
type PlayerConfig struct {
	MoveSpeed         float64 `yaml:"move_speed"`
	MouthOpenDuration float64 `yaml:"mouth_open_duration"`
	JitterDuration    float64 `yaml:"jitter_duration"`
	JitterFrequency   float64 `yaml:"jitter_frequency"`
	JitterAmplitude   float64 `yaml:"jitter_amplitude"`
}

// AngerConfig holds anger meter parameters.
type AngerConfig struct {
	MissIncrement float64 `yaml:"miss_increment"`
	FillDuration  float64 `yaml:"fill_duration"` // smoothing time for the displayed fill
}

// PowerUpsConfig holds timed effect parameters.
type PowerUpsConfig struct {
	Duration   float64 `yaml:"duration"`
	SpeedBoost float64 `yaml:"speed_boost"` // player speed multiplier while Speed is active
	SlowFactor float64 `yaml:"slow_factor"` // global food speed multiplier while Slow is active
	SlowTempo  float64 `yaml:"slow_tempo"`  // music tempo while Slow is active
}

// ProgressionConfig holds scoring and leveling parameters.
type ProgressionConfig struct {
	BasePoints          int     `yaml:"base_points"`
	GrowthMin           float64 `yaml:"growth_min"`
	GrowthMax           float64 `yaml:"growth_max"`
	GrowthIncrement     float64 `yaml:"growth_increment"`
	MultiplierIncrement float64 `yaml:"multiplier_increment"`
	SpeedStep           float64 `yaml:"speed_step"` // spawn speed scale = step^(level-1)
	TempoIncrement      float64 `yaml:"tempo_increment"`
}

// RankConfig holds end-of-game rank parameters.
type RankConfig struct {
	Threshold      int     `yaml:"threshold"` // points per rank step
	Min            int     `yaml:"min"`
	Max            int     `yaml:"max"`
	RevealInterval float64 `yaml:"reveal_interval"`
	PitchIncrement float64 `yaml:"pitch_increment"`
}

// PoolConfig holds food pool behavior.
type PoolConfig struct {
	// GrowOnExhaust registers overflow instances into the pool instead of
	// destroying them when they return.
	GrowOnExhaust bool `yaml:"grow_on_exhaust"`
}

// MotionConfig holds movement pattern parameters.
type MotionConfig struct {
	WaveFrequency float64 `yaml:"wave_frequency"`
}

// FoodConfig defines one food type.
type FoodConfig struct {
	Name          string  `yaml:"name"`
	SpawnInterval float64 `yaml:"spawn_interval"`
	Speed         float64 `yaml:"speed"`
	Pattern       string  `yaml:"pattern"`
	HeadingDeg    float64 `yaml:"heading_deg"` // bounce launch angle from the horizontal
	PowerUp       string  `yaml:"power_up"`
	BasePoints    int     `yaml:"base_points"` // 0 = progression.base_points
	PoolSize      int     `yaml:"pool_size"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow          float64 `yaml:"stats_window"`
	HighlightHistorySize int     `yaml:"highlight_history_size"`
	PerfCollectorWindow  int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	FoodIndex map[string]uint8 // name -> index into Foods
	Foods     []FoodSpec
}

// FoodSpec is a FoodConfig with its enums parsed and defaults applied.
type FoodSpec struct {
	Name          string
	SpawnInterval float64
	Speed         float64
	Pattern       components.Pattern
	Heading       float64 // radians
	PowerUp       components.PowerUpKind
	BasePoints    int
	PoolSize      int
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults invalid: %v", err))
	}
	return cfg
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
		// Only overwrites fields present in file. A foods list replaces the defaults wholesale.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Refresh recomputes derived values after fields were changed in code.
func (c *Config) Refresh() error {
	if err := c.computeDerived(); err != nil {
		return err
	}
	return c.Validate()
}

func (c *Config) computeDerived() error {
	c.Derived.FoodIndex = make(map[string]uint8, len(c.Foods))
	c.Derived.Foods = make([]FoodSpec, 0, len(c.Foods))
	for i, f := range c.Foods {
		pattern, err := components.ParsePattern(f.Pattern)
		if err != nil {
			return fmt.Errorf("food %q: %w", f.Name, err)
		}
		kind, err := components.ParsePowerUp(f.PowerUp)
		if err != nil {
			return fmt.Errorf("food %q: %w", f.Name, err)
		}
		points := f.BasePoints
		if points == 0 {
			points = c.Progression.BasePoints
		}
		c.Derived.FoodIndex[f.Name] = uint8(i)
		c.Derived.Foods = append(c.Derived.Foods, FoodSpec{
			Name:          f.Name,
			SpawnInterval: f.SpawnInterval,
			Speed:         f.Speed,
			Pattern:       pattern,
			Heading:       f.HeadingDeg * math.Pi / 180,
			PowerUp:       kind,
			BasePoints:    points,
			PoolSize:      f.PoolSize,
		})
	}
	return nil
}

// Validate checks values the engines rely on.
func (c *Config) Validate() error {
	var errs []error
	if c.Physics.DT <= 0 {
		errs = append(errs, errors.New("physics.dt must be positive"))
	}
	if c.World.LaneMinY >= c.World.LaneMaxY {
		errs = append(errs, errors.New("world.lane_min_y must be below world.lane_max_y"))
	}
	if c.World.MissX >= c.World.SpawnX {
		errs = append(errs, errors.New("world.miss_x must be left of world.spawn_x"))
	}
	if c.Progression.GrowthMin >= c.Progression.GrowthMax {
		errs = append(errs, errors.New("progression.growth_min must be below growth_max"))
	}
	if c.Progression.GrowthIncrement <= 0 {
		errs = append(errs, errors.New("progression.growth_increment must be positive"))
	}
	if c.Rank.Threshold <= 0 {
		errs = append(errs, errors.New("rank.threshold must be positive"))
	}
	if c.Rank.Min > c.Rank.Max {
		errs = append(errs, errors.New("rank.min must not exceed rank.max"))
	}
	if len(c.Foods) == 0 {
		errs = append(errs, errors.New("at least one food type is required"))
	}
	if len(c.Foods) > math.MaxUint8+1 {
		errs = append(errs, fmt.Errorf("too many food types: %d", len(c.Foods)))
	}
	seen := make(map[string]bool, len(c.Foods))
	for _, f := range c.Foods {
		if f.Name == "" {
			errs = append(errs, errors.New("food name must not be empty"))
		} else if seen[f.Name] {
			errs = append(errs, fmt.Errorf("duplicate food %q", f.Name))
		}
		seen[f.Name] = true
		if f.SpawnInterval <= 0 {
			errs = append(errs, fmt.Errorf("food %q: spawn_interval must be positive", f.Name))
		}
		if f.Speed <= 0 {
			errs = append(errs, fmt.Errorf("food %q: speed must be positive", f.Name))
		}
		if f.PoolSize < 0 {
			errs = append(errs, fmt.Errorf("food %q: pool_size must not be negative", f.Name))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Food returns the parsed spec for a food type index.
func (c *Config) Food(idx uint8) FoodSpec {
	return c.Derived.Foods[idx]
}

// Clone returns a deep copy with derived values recomputed.
func (c *Config) Clone() *Config {
	out := *c
	out.Foods = append([]FoodConfig(nil), c.Foods...)
	out.Derived = DerivedConfig{}
	// A copy of a valid config stays valid.
	_ = out.computeDerived()
	return &out
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
