package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port           int     `envconfig:"PORT" default:"8080"`
	DatabaseURL    string  `envconfig:"DATABASE_URL"`
	AssetDir       string  `envconfig:"ASSET_DIR" default:"./data/assets"`
	GlyphDir       string  `envconfig:"GLYPH_DIR" default:"./data/glyphs"`
	AllowedOrigins string  `envconfig:"ALLOWED_ORIGINS" default:"localhost:5173,localhost:3000"`
	LogLevel       string  `envconfig:"FLOWDRAW_LOG_LEVEL" default:"info"`
	ViewportWidth  float64 `envconfig:"VIEWPORT_WIDTH" default:"1200"`
	ViewportHeight float64 `envconfig:"VIEWPORT_HEIGHT" default:"800"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.ViewportWidth <= 0 || cfg.ViewportHeight <= 0 {
		return nil, fmt.Errorf("viewport must be positive, got %vx%v", cfg.ViewportWidth, cfg.ViewportHeight)
	}
	return &cfg, nil
}

// Origins splits ALLOWED_ORIGINS into websocket origin patterns.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		o = strings.TrimSpace(o)
		o = strings.TrimPrefix(o, "http://")
		o = strings.TrimPrefix(o, "https://")
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Level maps FLOWDRAW_LOG_LEVEL onto a slog level. Unknown names fall back
// to info.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
