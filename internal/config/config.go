package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	HttpServerPort uint16 `env:"HTTP_SERVER_PORT" envDefault:"8085" validate:"min=1000,max=65535"`

	// Round timing. The countdown shows CountdownStart seconds and ticks
	// once per TickIntervalMs; after a win (or a forced reset) the next
	// round is armed ResetDelaySeconds later.
	CountdownStart    int `env:"COUNTDOWN_START"     envDefault:"10"   validate:"min=1,max=300"`
	TickIntervalMs    int `env:"TICK_INTERVAL_MS"    envDefault:"1000" validate:"min=10,max=10000"`
	ResetDelaySeconds int `env:"RESET_DELAY_SECONDS" envDefault:"5"    validate:"min=1,max=300"`

	// ButtonCount of 1 is the classic single-button game; anything above
	// turns the round into a find-the-correct-button quiz.
	ButtonCount int `env:"BUTTON_COUNT" envDefault:"4" validate:"min=1,max=16"`

	DefaultMaxUsers int `env:"DEFAULT_MAX_USERS" envDefault:"4"   validate:"min=2,max=64"`
	MaxMessageLen   int `env:"MAX_MESSAGE_LEN"   envDefault:"500" validate:"min=1,max=4000"`
}

func LoadConfig() (*Config, error) {
	// Load environment variables from .env file
	err := godotenv.Load(".env")
	if err != nil {
		zap.L().Debug(".env file not found", zap.Error(err))
	}

	cfg := &Config{}
	// Parse config from environment variables
	if err = env.Parse(cfg); err != nil {
		zap.L().Error("config_load_failed", zap.Error(err))
		return nil, err
	}

	// Validate the config
	validate := validator.New()
	err = validate.Struct(cfg)
	if err != nil {
		zap.L().Error("config_validation_failed", zap.Error(err))
		return nil, err
	}
	return cfg, nil
}
