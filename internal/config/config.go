package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Rating   RatingConfig   `mapstructure:"rating"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// RatingConfig allows overriding the rating engine's parameters.
// Zero values keep the engine defaults (600 / 32 / 400 / 4).
type RatingConfig struct {
	DefaultStrength float64 `mapstructure:"default_strength" validate:"omitempty,gt=0"`
	KFactor         float64 `mapstructure:"k_factor"         validate:"omitempty,gt=0"`
	LogisticScale   float64 `mapstructure:"logistic_scale"   validate:"omitempty,gt=0"`
	IncubationLimit int     `mapstructure:"incubation_limit" validate:"omitempty,gt=0"`
}
