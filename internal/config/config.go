package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/phrazzld/studyplan/internal/domain/planner"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Planner  PlannerConfig  `mapstructure:"planner"`
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

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"gt=0"`
}

// RedisConfig configures the optional plan cache. An empty Addr disables it.
type RedisConfig struct {
	Addr           string `mapstructure:"addr" validate:"omitempty,hostname_port"`
	Password       string `mapstructure:"password"`
	DB             int    `mapstructure:"db" validate:"gte=0"`
	PlanTTLMinutes int    `mapstructure:"plan_ttl_minutes" validate:"gt=0"`
}

// PlannerConfig overrides the scheduling engine's tunables.
type PlannerConfig struct {
	MinSessionHours   float64 `mapstructure:"min_session_hours" validate:"gt=0"`
	DefaultDailyHours float64 `mapstructure:"default_daily_hours" validate:"gt=0,lte=24"`
	ReviewFraction    float64 `mapstructure:"review_fraction" validate:"gt=0,lte=1"`
	MinReviewHours    float64 `mapstructure:"min_review_hours" validate:"gt=0"`
	// ReviewOffsets is a comma separated list of day offsets, e.g. "1,3,7".
	ReviewOffsets string `mapstructure:"review_offsets" validate:"required"`
}

// Offsets parses ReviewOffsets into positive day counts.
func (p PlannerConfig) Offsets() ([]int, error) {
	parts := strings.Split(p.ReviewOffsets, ",")
	offsets := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid review offset %q", part)
		}
		offsets = append(offsets, n)
	}
	if len(offsets) == 0 {
		return nil, fmt.Errorf("no review offsets configured")
	}
	return offsets, nil
}

// Params builds planner parameters from the configuration.
func (p PlannerConfig) Params() (*planner.Params, error) {
	offsets, err := p.Offsets()
	if err != nil {
		return nil, err
	}
	return planner.NewParams(planner.ParamsConfig{
		MinSessionHours:   p.MinSessionHours,
		DefaultDailyHours: p.DefaultDailyHours,
		ReviewOffsets:     offsets,
		ReviewFraction:    p.ReviewFraction,
		MinReviewHours:    p.MinReviewHours,
	}), nil
}
