// Package config loads the process configuration from the environment once
// at startup. The resulting value is passed explicitly to whatever needs it;
// there is no ambient global.
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port           string   `envconfig:"PORT" default:"3000"`
	DatabaseDSN    string   `envconfig:"DATABASE_DSN" required:"true"`
	JWTSecret      string   `envconfig:"JWT_SECRET" required:"true"`
	TokenTTL       int      `envconfig:"TOKEN_TTL_HOURS" default:"168"`
	CookieDomain   string   `envconfig:"COOKIE_DOMAIN"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

func Load() (Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	return c, err
}

// TokenDuration is the configured token lifetime.
func (c Config) TokenDuration() time.Duration {
	return time.Duration(c.TokenTTL) * time.Hour
}
