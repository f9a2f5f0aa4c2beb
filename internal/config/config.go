package config

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "PARTICLES_"

const (
	WindowWidth  = 1024
	WindowHeight = 768

	// Share of the window height given to the hero section; the contact section gets the rest.
	HeroFraction = 0.6

	// Terminal hosts map each cell to this many surface pixels.
	CellWidth  = 8
	CellHeight = 16
	// terminals narrower than this run the field at the narrow frame rate
	TermNarrowColumns = 60

	FrameInterval = time.Second / 60
	FrameTapSize  = 120

	LogDir = "logs"

	// MaxCount caps a pool; links are quadratic in the pool size.
	MaxCount = 500
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Color is a packed 0xRRGGBB value.
type Color uint32

// ParseColor accepts "#rrggbb" or "rrggbb".
func ParseColor(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return 0, fmt.Errorf("color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color %q: %w", s, err)
	}
	return Color(v), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	v, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func (c Color) String() string {
	return fmt.Sprintf("#%06x", uint32(c))
}

// NRGBA returns the color with alpha taken from opacity in [0,1].
func (c Color) NRGBA(opacity float64) color.NRGBA {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	return color.NRGBA{
		R: uint8(c >> 16),
		G: uint8(c >> 8),
		B: uint8(c),
		A: uint8(opacity*255 + 0.5),
	}
}

// Field holds the tunables of one particle field.
type Field struct {
	Count int `env:"COUNT"`

	// Spawn ranges
	Speed         float64 `env:"SPEED"`
	MinRadius     float64 `env:"MIN_RADIUS"`
	RadiusJitter  float64 `env:"RADIUS_JITTER"`
	OpacityBase   float64 `env:"OPACITY_BASE"`
	OpacityJitter float64 `env:"OPACITY_JITTER"`

	// Pointer interaction
	InteractionRadius float64 `env:"INTERACTION_RADIUS"`
	RepelStrength     float64 `env:"REPEL_STRENGTH"`
	RadiusBoost       float64 `env:"RADIUS_BOOST"`
	MaxRadiusBoost    float64 `env:"MAX_RADIUS_BOOST"`
	OpacityBoost      float64 `env:"OPACITY_BOOST"`
	MinOpacity        float64 `env:"MIN_OPACITY"`
	MaxOpacity        float64 `env:"MAX_OPACITY"`
	RadiusDecay       float64 `env:"RADIUS_DECAY"`
	OpacityDecay      float64 `env:"OPACITY_DECAY"`

	// Connective lines; LinkDistance 0 disables them.
	LinkDistance float64 `env:"LINK_DISTANCE"`
	LinkOpacity  float64 `env:"LINK_OPACITY"`
	LinkWidth    float64 `env:"LINK_WIDTH"`

	Color Color `env:"COLOR"`

	ResizeDebounce  time.Duration `env:"RESIZE_DEBOUNCE"`
	PointerThrottle time.Duration `env:"POINTER_THROTTLE"`
	NarrowWidth     float64       `env:"NARROW_WIDTH"`
	NarrowFrameSkip int           `env:"NARROW_FRAME_SKIP"`
}

// Config is the full runtime configuration.
type Config struct {
	Debug  bool   `env:"DEBUG"`
	LogDir string `env:"LOG_DIR"`
	// Seed 0 picks a random seed at startup.
	Seed uint64 `env:"SEED"`

	Title        string  `env:"TITLE"`
	WindowWidth  int     `env:"WINDOW_WIDTH"`
	WindowHeight int     `env:"WINDOW_HEIGHT"`
	HeroFraction float64 `env:"HERO_FRACTION"`

	CellWidth     float64       `env:"CELL_WIDTH"`
	// TermNarrowColumns replaces the field's NarrowWidth on a terminal,
	// measured in columns.
	TermNarrowColumns int `env:"TERM_NARROW_COLUMNS"`
	CellHeight    float64       `env:"CELL_HEIGHT"`
	FrameInterval time.Duration `env:"FRAME_INTERVAL"`

	Hero    Field `envPrefix:"HERO_"`
	Contact Field `envPrefix:"CONTACT_"`
}

// DefaultField returns the shared field tunables.
func DefaultField() Field {
	return Field{
		Count:             30,
		Speed:             0.3,
		MinRadius:         1,
		RadiusJitter:      2,
		OpacityBase:       0.2,
		OpacityJitter:     0.5,
		InteractionRadius: 100,
		RepelStrength:     1.5,
		RadiusBoost:       2,
		MaxRadiusBoost:    2,
		OpacityBoost:      0.3,
		MinOpacity:        0.2,
		MaxOpacity:        0.8,
		RadiusDecay:       0.1,
		OpacityDecay:      0.01,
		LinkDistance:      60,
		LinkOpacity:       0.15,
		LinkWidth:         0.5,
		Color:             0x9ca3af,
		ResizeDebounce:    100 * time.Millisecond,
		PointerThrottle:   16 * time.Millisecond,
		NarrowWidth:       768,
		NarrowFrameSkip:   2,
	}
}

func Default() Config {
	hero := DefaultField()
	hero.Count = 60
	hero.Speed = 0.4
	hero.LinkDistance = 80

	return Config{
		LogDir:            LogDir,
		Title:             "Particle Field - D: HUD, Space: pause, Esc/Q: quit",
		WindowWidth:       WindowWidth,
		WindowHeight:      WindowHeight,
		HeroFraction:      HeroFraction,
		CellWidth:         CellWidth,
		CellHeight:        CellHeight,
		TermNarrowColumns: TermNarrowColumns,
		FrameInterval:     FrameInterval,
		Hero:              hero,
		Contact:           DefaultField(),
	}
}

// Load returns Default overlaid with PARTICLES_* environment variables.
func Load() (Config, error) {
	cfg := Default()
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Rand returns the root random source: seeded from Seed, or random when Seed is 0.
func (c Config) Rand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func (c Config) Validate() error {
	if !finite(c.HeroFraction, c.CellWidth, c.CellHeight) {
		return fmt.Errorf("%w: non-finite layout value", ErrInvalid)
	}
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.WindowWidth, c.WindowHeight)
	}
	if c.HeroFraction <= 0 || c.HeroFraction >= 1 {
		return fmt.Errorf("%w: hero fraction %v not in (0,1)", ErrInvalid, c.HeroFraction)
	}
	if c.CellWidth <= 0 || c.CellHeight <= 0 {
		return fmt.Errorf("%w: cell size %vx%v", ErrInvalid, c.CellWidth, c.CellHeight)
	}
	if c.TermNarrowColumns < 0 {
		return fmt.Errorf("%w: terminal narrow columns %d", ErrInvalid, c.TermNarrowColumns)
	}
	if c.FrameInterval <= 0 {
		return fmt.Errorf("%w: frame interval %v", ErrInvalid, c.FrameInterval)
	}
	if err := c.Hero.Validate(); err != nil {
		return fmt.Errorf("hero: %w", err)
	}
	if err := c.Contact.Validate(); err != nil {
		return fmt.Errorf("contact: %w", err)
	}
	return nil
}

func (f Field) Validate() error {
	switch {
	case !finite(f.Speed, f.MinRadius, f.RadiusJitter, f.OpacityBase, f.OpacityJitter,
		f.InteractionRadius, f.RepelStrength, f.RadiusBoost, f.MaxRadiusBoost, f.OpacityBoost,
		f.MinOpacity, f.MaxOpacity, f.RadiusDecay, f.OpacityDecay,
		f.LinkDistance, f.LinkOpacity, f.LinkWidth, f.NarrowWidth):
		return fmt.Errorf("%w: non-finite tunable", ErrInvalid)
	case f.Count <= 0 || f.Count > MaxCount:
		return fmt.Errorf("%w: count %d not in [1,%d]", ErrInvalid, f.Count, MaxCount)
	case f.Speed < 0:
		return fmt.Errorf("%w: speed %v", ErrInvalid, f.Speed)
	case f.MinRadius <= 0 || f.RadiusJitter < 0:
		return fmt.Errorf("%w: radius range %v+%v", ErrInvalid, f.MinRadius, f.RadiusJitter)
	case f.MinOpacity < 0 || f.MaxOpacity > 1 || f.MinOpacity > f.MaxOpacity:
		return fmt.Errorf("%w: opacity band [%v,%v]", ErrInvalid, f.MinOpacity, f.MaxOpacity)
	case f.OpacityJitter < 0 || f.OpacityBase < f.MinOpacity || f.OpacityBase+f.OpacityJitter > f.MaxOpacity:
		return fmt.Errorf("%w: spawn opacity %v+%v outside band", ErrInvalid, f.OpacityBase, f.OpacityJitter)
	case f.InteractionRadius < 0 || f.RepelStrength < 0:
		return fmt.Errorf("%w: interaction radius %v strength %v", ErrInvalid, f.InteractionRadius, f.RepelStrength)
	case f.RadiusBoost < 0 || f.MaxRadiusBoost < 0 || f.OpacityBoost < 0:
		return fmt.Errorf("%w: negative boost", ErrInvalid)
	case f.RadiusDecay <= 0 || f.OpacityDecay <= 0:
		return fmt.Errorf("%w: decay rates must be positive", ErrInvalid)
	case f.LinkDistance < 0 || f.LinkOpacity < 0 || f.LinkOpacity > 1 || f.LinkWidth < 0:
		return fmt.Errorf("%w: link %v/%v/%v", ErrInvalid, f.LinkDistance, f.LinkOpacity, f.LinkWidth)
	case f.Color > 0xffffff:
		return fmt.Errorf("%w: color %v", ErrInvalid, f.Color)
	case f.ResizeDebounce < 100*time.Millisecond:
		return fmt.Errorf("%w: resize debounce %v below 100ms", ErrInvalid, f.ResizeDebounce)
	case f.PointerThrottle < 0:
		return fmt.Errorf("%w: pointer throttle %v", ErrInvalid, f.PointerThrottle)
	case f.NarrowWidth < 0 || f.NarrowFrameSkip < 1:
		return fmt.Errorf("%w: narrow %v skip %d", ErrInvalid, f.NarrowWidth, f.NarrowFrameSkip)
	}
	return nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
