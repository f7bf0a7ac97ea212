// Package config loads application configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Env  string `env:"ENV" envDefault:"DEVELOPMENT"`
	Port string `env:"PORT" envDefault:"3001"`

	// ClientBaseURL is where the browser client lives; OAuth callbacks
	// redirect back to it with sessionId/loginSession/error query params.
	ClientBaseURL string `env:"CLIENT_BASE_URL" envDefault:"http://localhost:3000"`

	AdminID string `env:"ADMIN_ID"`

	RedisHost string `env:"REDIS_HOST" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASS"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	MongoURI  string `env:"DB_URI" envDefault:"mongodb://localhost:27017"`
	MongoName string `env:"DB_NAME" envDefault:"DEV"`

	SpotifyClientID     string `env:"SPOTIFY_CLIENTID"`
	SpotifyClientSecret string `env:"SPOTIFY_SECRETID"`
	SpotifyRedirectURI  string `env:"SPOTIFY_CALLBACK" envDefault:"http://localhost:3001/spotifyapi/callback/"`

	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"12h"`
	DeejayTTL  time.Duration `env:"DEEJAY_TTL" envDefault:"1h"`

	SSL      bool   `env:"SSL"`
	SSLCert  string `env:"SSL_CERT" envDefault:"./cert/myCA.cer"`
	SSLKey   string `env:"SSL_KEY" envDefault:"./cert/myCA.key"`
}

// Load reads .env when present, then parses the process environment.
func Load() (Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// IsProduction reports whether the server runs in release mode.
func (c Config) IsProduction() bool {
	return c.Env == "PRODUCTION"
}
