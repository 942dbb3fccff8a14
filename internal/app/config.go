package app

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"

	"github.com/shrimpsizemoose/trekker/logger"
)

type Config struct {
	Scoring struct {
		Ruleset         string `toml:"ruleset" validate:"required,oneof=penalty best_score"`
		PenaltyMinutes  int64  `toml:"penalty_minutes" validate:"min=0"`
		CorrectStatusID int64  `toml:"correct_status_id" validate:"required"`
	} `toml:"scoring"`

	Database struct {
		DSN string `toml:"dsn" validate:"required"`
	} `toml:"database"`

	Display struct {
		TimestampFormat string `toml:"timestamp_format" validate:"required"`
	} `toml:"display"`

	Server struct {
		Port string `toml:"port"`
	} `toml:"server"`

	Cache struct {
		RedisURL   string `toml:"redis_url"`
		TTLSeconds int    `toml:"ttl_seconds" validate:"min=0"`
	} `toml:"cache"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf(
			"error reading config file %s\n> Error: %w\n> Content:\n%s",
			path,
			err,
			string(data),
		)
	}

	config.applyDefaults()

	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	logger.Debug.Printf("Loaded scoring config: %+v", config.Scoring)

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Scoring.Ruleset == "" {
		c.Scoring.Ruleset = "penalty"
	}
	if c.Scoring.PenaltyMinutes == 0 {
		c.Scoring.PenaltyMinutes = 20
	}
	if c.Scoring.CorrectStatusID == 0 {
		c.Scoring.CorrectStatusID = 15
	}
	if c.Database.DSN == "" {
		c.Database.DSN = ":memory:"
	}
	if c.Display.TimestampFormat == "" {
		c.Display.TimestampFormat = "2006-01-02 15:04:05"
	}
}
