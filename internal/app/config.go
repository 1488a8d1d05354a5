package app

import (
	"errors"
	"fmt"
	"io/fs"

	"baackground/internal/quiz"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every environment key read into Config.
const EnvPrefix = "BAACK_"

// Config controls runtime behavior for the TUI app.
type Config struct {
	Dev          bool   `env:"DEV"`
	DevHTTP      string `env:"DEV_HTTP"`
	LogPath      string `env:"LOG_PATH"`
	Debug        bool   `env:"DEBUG"`
	ASCIIOnly    bool   `env:"ASCII_ONLY"`
	DemoScenario string `env:"DEMO"`
	// Seed fixes question sampling and mascot tips when non-zero.
	Seed int64      `env:"SEED"`
	Quiz QuizConfig `envPrefix:"QUIZ_"`
	UI   UIConfig   `envPrefix:"UI_"`
}

type QuizConfig struct {
	DefaultCount int `env:"DEFAULT_COUNT"`
}

type UIConfig struct {
	StyleVariant string `env:"STYLE_VARIANT"`
	MotionLevel  string `env:"MOTION_LEVEL"`
	MouseScope   string `env:"MOUSE_SCOPE"`
}

func DefaultConfig() Config {
	return Config{
		DevHTTP: "127.0.0.1:17321",
		Quiz: QuizConfig{
			DefaultCount: quiz.DefaultCount,
		},
		UI: UIConfig{
			StyleVariant: "meadow",
			MotionLevel:  "full",
			MouseScope:   "scoped",
		},
	}
}

func (c *Config) Validate() error {
	if c.Quiz.DefaultCount == 0 {
		c.Quiz.DefaultCount = quiz.DefaultCount
	}
	if !quiz.IsPreset(c.Quiz.DefaultCount) {
		return fmt.Errorf("invalid quiz default count %d (want one of %v)", c.Quiz.DefaultCount, quiz.Presets)
	}
	switch c.UI.StyleVariant {
	case "", "meadow", "dusk", "chalkboard":
	default:
		return fmt.Errorf("invalid ui style variant %q", c.UI.StyleVariant)
	}
	if c.UI.StyleVariant == "" {
		c.UI.StyleVariant = "meadow"
	}
	switch c.UI.MotionLevel {
	case "", "off", "reduced", "full":
	default:
		return fmt.Errorf("invalid ui motion level %q", c.UI.MotionLevel)
	}
	if c.UI.MotionLevel == "" {
		c.UI.MotionLevel = "full"
	}
	switch c.UI.MouseScope {
	case "", "off", "scoped", "full":
	default:
		return fmt.Errorf("invalid ui mouse scope %q", c.UI.MouseScope)
	}
	if c.UI.MouseScope == "" {
		c.UI.MouseScope = "scoped"
	}
	if c.Dev && c.DevHTTP == "" {
		c.DevHTTP = "127.0.0.1:17321"
	}
	return nil
}

// LoadEnv overlays environment settings onto cfg. Variables from dotenvPath
// are loaded first and never override the real environment; a missing file
// is not an error.
func LoadEnv(cfg *Config, dotenvPath string) error {
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", dotenvPath, err)
		}
	}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}
