package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Carmen-Shannon/oxy-avatar/common"
	"github.com/Carmen-Shannon/oxy-avatar/engine/input"
	"github.com/Carmen-Shannon/oxy-avatar/engine/locomotion"
	"github.com/Carmen-Shannon/oxy-avatar/engine/motion"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var (
	errInvalidTickRate  = errors.New("tick rate must be positive")
	errInvalidBlend     = errors.New("blend duration must not be negative")
	errMissingClipName  = errors.New("clip name must not be empty")
	errInvalidLogFormat = errors.New("log format must be text or json")
)

// unbind is the control name that removes a default binding.
const unbind = "none"

type Config struct {
	Avatar    AvatarConfig      `yaml:"avatar"`
	Motion    MotionConfig      `yaml:"motion"`
	Bindings  map[string]string `yaml:"bindings"`
	Engine    EngineConfig      `yaml:"engine"`
	Window    WindowConfig      `yaml:"window"`
	Crowd     CrowdConfig       `yaml:"crowd"`
	Logging   LoggingConfig     `yaml:"logging"`
	Sentry    SentryConfig      `yaml:"sentry"`
	Statsview StatsviewConfig   `yaml:"statsview"`
}

type AvatarConfig struct {
	Name        string  `yaml:"name"`
	Model       string  `yaml:"model"`
	IdleClip    string  `yaml:"idle_clip"`
	WalkingClip string  `yaml:"walking_clip"`
	Blend       float32 `yaml:"blend"`
}

type MotionConfig struct {
	Acceleration     [3]float32 `yaml:"acceleration"`
	Deceleration     [3]float32 `yaml:"deceleration"`
	SprintMultiplier float32    `yaml:"sprint_multiplier"`
	TurnRate         float32    `yaml:"turn_rate"`
}

type EngineConfig struct {
	TickRate        int           `yaml:"tick_rate"`
	Profile         bool          `yaml:"profile"`
	ProfileInterval time.Duration `yaml:"profile_interval"`
	// how often the host logs the avatar transform; zero disables it
	TransformLogInterval time.Duration `yaml:"transform_log_interval"`
}

type WindowConfig struct {
	Enabled bool   `yaml:"enabled"`
	Title   string `yaml:"title"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
}

type CrowdConfig struct {
	// Extra is how many additional, uncontrolled avatars share the scene.
	Extra   int `yaml:"extra"`
	Workers int `yaml:"workers"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type SentryConfig struct {
	DSN         string `yaml:"dsn"`
	Environment string `yaml:"environment"`
}

type StatsviewConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	t := motion.DefaultTunables()
	return &Config{
		Avatar: AvatarConfig{
			Name:        "avatar",
			Model:       "assets/avatar.glb",
			IdleClip:    locomotion.Idle.String(),
			WalkingClip: locomotion.Walking.String(),
			Blend:       locomotion.BlendDuration,
		},
		Motion: MotionConfig{
			Acceleration:     t.Acceleration,
			Deceleration:     t.Deceleration,
			SprintMultiplier: t.SprintMultiplier,
			TurnRate:         t.TurnRate,
		},
		Engine: EngineConfig{
			TickRate:             60,
			ProfileInterval:      time.Second,
			TransformLogInterval: 2 * time.Second,
		},
		Window: WindowConfig{
			Enabled: true,
			Title:   "oxy-avatar",
			Width:   1280,
			Height:  720,
		},
		Crowd: CrowdConfig{
			Workers: 4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Statsview: StatsviewConfig{
			Addr: "localhost:18066",
		},
	}
}

// Load reads a YAML file over Default and validates the result.
//
// Parameters:
//   - path: the YAML file
//
// Returns:
//   - *Config: the merged configuration
//   - error: a read, decode or validation error
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML over Default and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field that has a constrained range and resolves the key bindings.
func (c *Config) Validate() error {
	if c.Engine.TickRate <= 0 {
		return fmt.Errorf("%w: %d", errInvalidTickRate, c.Engine.TickRate)
	}
	if c.Avatar.Blend < 0 {
		return fmt.Errorf("%w: %v", errInvalidBlend, c.Avatar.Blend)
	}
	if c.Avatar.IdleClip == "" || c.Avatar.WalkingClip == "" {
		return errMissingClipName
	}
	if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return fmt.Errorf("%w: %q", errInvalidLogFormat, c.Logging.Format)
	}
	_, err := c.KeyBindings()
	return err
}

// Tunables converts the motion section.
func (c *Config) Tunables() motion.Tunables {
	return motion.Tunables{
		Acceleration:     mgl32.Vec3(c.Motion.Acceleration),
		Deceleration:     mgl32.Vec3(c.Motion.Deceleration),
		SprintMultiplier: c.Motion.SprintMultiplier,
		TurnRate:         c.Motion.TurnRate,
	}
}

// TickInterval is the duration of one engine tick.
func (c *Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.Engine.TickRate)
}

// KeyBindings applies the bindings section on top of input.DefaultBindings.
// Each entry maps a key name to a control name; the control "none" removes the key.
//
// Returns:
//   - map[uint32]input.Control: the resolved binding table
//   - error: a *common.LookupError for an unknown key or control name
func (c *Config) KeyBindings() (map[uint32]input.Control, error) {
	bindings := input.DefaultBindings()
	for key, control := range c.Bindings {
		code, ok := common.KeyCode(key)
		if !ok {
			return nil, common.NewLookupError("key", key)
		}
		if control == unbind {
			delete(bindings, code)
			continue
		}
		ctl, ok := input.ParseControl(control)
		if !ok {
			return nil, common.NewLookupError("control", control)
		}
		bindings[code] = ctl
	}
	return bindings, nil
}

// Apply sets level and formatter on log.
func (l LoggingConfig) Apply(log *logrus.Logger) error {
	level, err := logrus.ParseLevel(l.Level)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	if l.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return nil
}
