// Package config reads server settings from the environment, optionally seeded from .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every setting of the server
type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8001"`
	AllowedOrigins  []string      `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`

	// RedisAddr empty keeps rooms in memory
	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	RoomTTL       time.Duration `env:"ROOM_TTL" envDefault:"24h"`

	StartingMoney  int `env:"STARTING_MONEY" envDefault:"15000"`
	PassStartBonus int `env:"PASS_START_BONUS" envDefault:"2000"`
	JailFine       int `env:"JAIL_FINE" envDefault:"500"`
	MaxPlayers     int `env:"MAX_PLAYERS" envDefault:"6"`

	// DiceSeed zero seeds from the clock
	DiceSeed int64 `env:"DICE_SEED" envDefault:"0"`

	// DiscordToken empty disables the bot
	DiscordToken         string `env:"DISCORD_TOKEN"`
	DiscordApplicationID string `env:"DISCORD_APPLICATION_ID"`
	DiscordGuildID       string `env:"DISCORD_GUILD_ID"`
	DiscordChannelID     string `env:"DISCORD_CHANNEL_ID"`
}

// Load reads the given .env files (default ".env"), skipping missing ones, then parses the environment.
// Variables already set in the environment win over the files.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.StartingMoney <= 0:
		return fmt.Errorf("STARTING_MONEY must be positive, got %d", c.StartingMoney)
	case c.PassStartBonus < 0:
		return fmt.Errorf("PASS_START_BONUS cannot be negative, got %d", c.PassStartBonus)
	case c.JailFine < 0:
		return fmt.Errorf("JAIL_FINE cannot be negative, got %d", c.JailFine)
	case c.MaxPlayers < 2:
		return fmt.Errorf("MAX_PLAYERS must be at least 2, got %d", c.MaxPlayers)
	}
	return nil
}

// DiscordEnabled reports whether a bot token is configured
func (c *Config) DiscordEnabled() bool {
	return c.DiscordToken != ""
}
