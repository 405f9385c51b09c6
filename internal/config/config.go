// Package config holds the tunables for a match: court geometry, ball and
// paddle physics, AI behaviour, scoring and sound. Values are layered from
// built-in defaults, an optional YAML file and PONG_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "PONG_"

// Controller names accepted for a paddle.
const (
	ControllerHuman = "human"
	ControllerAI    = "ai"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Court is the playfield size in pixels.
type Court struct {
	Width  int `yaml:"width" env:"WIDTH"`
	Height int `yaml:"height" env:"HEIGHT"`
}

// Ball tunes the ball and its deflection model.
type Ball struct {
	Radius float64 `yaml:"radius" env:"BALL_RADIUS"`
	// DX, DY is the initial velocity in pixels per tick. Its magnitude is the
	// constant ball speed.
	DX float64 `yaml:"dx" env:"BALL_DX"`
	DY float64 `yaml:"dy" env:"BALL_DY"`
	// MaxBounceAngleDeg is the outgoing angle from horizontal at the clamped
	// paddle edge.
	MaxBounceAngleDeg float64 `yaml:"max_bounce_angle_deg" env:"BALL_MAX_BOUNCE_ANGLE_DEG"`
	// EdgeClamp caps |relative intersect| before it is turned into an angle.
	EdgeClamp float64 `yaml:"edge_clamp" env:"BALL_EDGE_CLAMP"`
	// MinHorizontalFrac is the minimum |dx| after a paddle bounce as a
	// fraction of the ball speed.
	MinHorizontalFrac float64 `yaml:"min_horizontal_frac" env:"BALL_MIN_HORIZONTAL_FRAC"`
	// SpeedUpPerHit is added to the ball speed on every paddle hit, capped by
	// MaxSpeed. Zero keeps the speed constant.
	SpeedUpPerHit float64 `yaml:"speed_up_per_hit" env:"BALL_SPEED_UP_PER_HIT"`
	MaxSpeed      float64 `yaml:"max_speed" env:"BALL_MAX_SPEED"`
	// ServeMaxAngleDeg randomises the serve direction by up to this many
	// degrees. Zero serves flat.
	ServeMaxAngleDeg float64 `yaml:"serve_max_angle_deg" env:"BALL_SERVE_MAX_ANGLE_DEG"`
}

// Paddle tunes both paddles.
type Paddle struct {
	Width  float64 `yaml:"width" env:"PADDLE_WIDTH"`
	Height float64 `yaml:"height" env:"PADDLE_HEIGHT"`
	// Inset is the gap between the court edge and the paddle's outer side.
	Inset float64 `yaml:"inset" env:"PADDLE_INSET"`
	Speed float64 `yaml:"speed" env:"PADDLE_SPEED"`
}

// AI tunes the computer-controlled paddle.
type AI struct {
	Speed float64 `yaml:"speed" env:"AI_SPEED"`
	// OffsetRange is the half-width of the random aim offset picked after
	// every paddle hit.
	OffsetRange float64 `yaml:"offset_range" env:"AI_OFFSET_RANGE"`
}

// Sound locates the optional sound effects.
type Sound struct {
	Dir    string  `yaml:"dir" env:"SOUND_DIR"`
	Volume float64 `yaml:"volume" env:"SOUND_VOLUME"`
	Mute   bool    `yaml:"mute" env:"SOUND_MUTE"`
}

// Config is the full match configuration.
type Config struct {
	Court  Court  `yaml:"court"`
	Ball   Ball   `yaml:"ball"`
	Paddle Paddle `yaml:"paddle"`
	AI     AI     `yaml:"ai"`
	Sound  Sound  `yaml:"sound"`

	TPS          int    `yaml:"tps" env:"TPS"`
	WinningScore int    `yaml:"winning_score" env:"WINNING_SCORE"`
	Left         string `yaml:"left" env:"LEFT"`
	Right        string `yaml:"right" env:"RIGHT"`
	Seed         int64  `yaml:"seed" env:"SEED"`
}

// Default returns the classic 800x600 human-vs-AI setup.
func Default() Config {
	return Config{
		Court: Court{Width: 800, Height: 600},
		Ball: Ball{
			Radius:            10,
			DX:                7,
			DY:                7,
			MaxBounceAngleDeg: 60,
			EdgeClamp:         0.8,
			MinHorizontalFrac: 0.5,
			MaxSpeed:          20,
		},
		Paddle: Paddle{Width: 10, Height: 100, Inset: 10, Speed: 10},
		AI:     AI{Speed: 6, OffsetRange: 25},
		Sound:  Sound{Dir: "sounds", Volume: 0.5},

		TPS:          60,
		WinningScore: 5,
		Left:         ControllerHuman,
		Right:        ControllerAI,
		Seed:         1,
	}
}

// Load builds a Config from defaults, then the YAML file at path (skipped
// when path is empty), then the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

// ParseEnv overlays PONG_* environment variables onto target.
func ParseEnv(target *Config) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate reports every out-of-range field at once.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if c.Court.Width <= 0 || c.Court.Height <= 0 {
		bad("court must be positive, got %dx%d", c.Court.Width, c.Court.Height)
	}
	if c.Ball.Radius <= 0 {
		bad("ball radius must be > 0")
	}
	if c.Ball.DX == 0 {
		bad("ball dx must be non-zero")
	}
	if c.Ball.MaxBounceAngleDeg <= 0 || c.Ball.MaxBounceAngleDeg >= 90 {
		bad("max bounce angle must be in (0, 90), got %.1f", c.Ball.MaxBounceAngleDeg)
	}
	if c.Ball.EdgeClamp <= 0 || c.Ball.EdgeClamp > 1 {
		bad("edge clamp must be in (0, 1], got %.2f", c.Ball.EdgeClamp)
	}
	if c.Ball.MinHorizontalFrac < 0 || c.Ball.MinHorizontalFrac >= 1 {
		bad("min horizontal fraction must be in [0, 1), got %.2f", c.Ball.MinHorizontalFrac)
	}
	if c.Ball.SpeedUpPerHit < 0 {
		bad("speed up per hit must be >= 0")
	}
	if c.Ball.ServeMaxAngleDeg < 0 || c.Ball.ServeMaxAngleDeg >= 90 {
		bad("serve angle must be in [0, 90), got %.1f", c.Ball.ServeMaxAngleDeg)
	}
	if c.Paddle.Width <= 0 || c.Paddle.Height <= 0 {
		bad("paddle must be positive")
	}
	if c.Court.Height > 0 && c.Paddle.Height > float64(c.Court.Height) {
		bad("paddle height %.0f exceeds court height %d", c.Paddle.Height, c.Court.Height)
	}
	if c.Paddle.Speed <= 0 || c.AI.Speed <= 0 {
		bad("paddle speeds must be > 0")
	}
	if c.Sound.Volume < 0 || c.Sound.Volume > 1 {
		bad("sound volume must be in [0, 1], got %.2f", c.Sound.Volume)
	}
	if c.TPS <= 0 {
		bad("tps must be > 0")
	}
	if c.WinningScore <= 0 {
		bad("winning score must be > 0, got %d", c.WinningScore)
	}
	for _, ctl := range []string{c.Left, c.Right} {
		if !ValidController(ctl) {
			bad("unknown controller %q (want %s or %s)", ctl, ControllerHuman, ControllerAI)
		}
	}
	return errors.Join(errs...)
}

// ValidController reports whether name is a known paddle controller.
func ValidController(name string) bool {
	switch strings.ToLower(name) {
	case ControllerHuman, ControllerAI:
		return true
	}
	return false
}
