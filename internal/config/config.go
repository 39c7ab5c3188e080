package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel        slog.Level    `env:"LOG_LEVEL" envDefault:"INFO"`
	DBPath          string        `env:"DB_PATH" envDefault:"data/geoguess.db"`
	CountriesFile   string        `env:"COUNTRIES_FILE"`
	AssetDir        string        `env:"ASSET_DIR" envDefault:"assets/silhouettes"`
	FlagURL         string        `env:"FLAG_URL" envDefault:"https://flagsapi.com/%s/shiny/64.png"`
	MaxPlayers      int           `env:"MAX_PLAYERS" envDefault:"8"`
	SuggestionLimit int           `env:"SUGGESTION_LIMIT" envDefault:"5"`
	SessionTTL      time.Duration `env:"SESSION_TTL" envDefault:"2h"`
	WebDir          string        `env:"WEB_DIR"`
}

// Load reads the configuration from the environment. Variables from the
// given .env files (default ".env") are applied first without overriding
// ones already set; missing files are ignored.
func Load(dotenv ...string) (*Config, error) {
	if len(dotenv) == 0 {
		dotenv = []string{".env"}
	}
	for _, f := range dotenv {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}
	if cfg.MaxPlayers <= 0 {
		return nil, fmt.Errorf("MAX_PLAYERS must be positive, got %d", cfg.MaxPlayers)
	}
	return &cfg, nil
}
