package config

import (
	"errors"
	"fmt"

	"github.com/defeedco/orbit-producthunt/pkg/lib"
	"github.com/defeedco/orbit-producthunt/pkg/lib/log"
	"github.com/defeedco/orbit-producthunt/pkg/sources/producthunt"
	"github.com/defeedco/orbit-producthunt/pkg/storage/orbit"
	"github.com/joeshaw/envdecode"
)

type Config struct {
	ProductHunt producthunt.Config `env:""`
	Orbit       orbit.Config       `env:""`
	Log         log.Config         `env:""`
}

// Overrides hold explicitly provided values, non-zero values win over the environment.
type Overrides struct {
	OrbitWorkspaceID     string
	OrbitAPIKey          string
	ProductHuntAPIKey    string
	ProductHuntAPISecret string
	MaxPages             int
}

// Load reads the environment, applies overrides and validates the result.
// Any failure is a *lib.ConfigurationError.
func Load(overrides Overrides) (*Config, error) {
	var cfg Config

	if err := envdecode.Decode(&cfg); err != nil {
		return nil, &lib.ConfigurationError{Err: fmt.Errorf("decode config: %w", err)}
	}

	overrides.apply(&cfg)

	if err := lib.ValidateStruct(&cfg); err != nil {
		var ve lib.ValidationErrors
		if errors.As(err, &ve) && len(ve.Missing) > 0 {
			return nil, &lib.ConfigurationError{Missing: ve.Missing, Err: err}
		}
		return nil, &lib.ConfigurationError{Err: fmt.Errorf("validate config: %w", err)}
	}

	return &cfg, nil
}

func (o Overrides) apply(cfg *Config) {
	setIfNotEmpty(&cfg.Orbit.WorkspaceID, o.OrbitWorkspaceID)
	setIfNotEmpty(&cfg.Orbit.APIKey, o.OrbitAPIKey)
	setIfNotEmpty(&cfg.ProductHunt.ClientID, o.ProductHuntAPIKey)
	setIfNotEmpty(&cfg.ProductHunt.ClientSecret, o.ProductHuntAPISecret)
	if o.MaxPages > 0 {
		cfg.ProductHunt.MaxPages = o.MaxPages
	}
}

func setIfNotEmpty(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
