package config

import (
	"fmt"
	"net/url"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port      string `env:"PORT,default=8080"`
	APIPrefix string `env:"API_PREFIX,default=/api/v1"`

	PostgresHost     string `env:"POSTGRES_HOST,default=localhost"`
	PostgresPort     string `env:"POSTGRES_PORT,default=5432"`
	PostgresUser     string `env:"POSTGRES_USER,default=postgres"`
	PostgresPassword string `env:"POSTGRES_PASSWORD"`
	PostgresDB       string `env:"POSTGRES_DB,default=app"`
	PostgresSSLMode  string `env:"POSTGRES_SSLMODE,default=require"`
	DBConnectRetries int    `env:"DB_CONNECT_RETRIES,default=5"`

	JWTSecret   string   `env:"JWT_SECRET,required"`
	CORSOrigins []string `env:"CORS_ORIGINS,default=http://localhost:5173"`
	LogLevel    string   `env:"LOG_LEVEL,default=info"`
}

// Load reads an optional .env file and decodes the environment into a Config.
// It reports whether a .env file was found so the caller can log it once the
// logger is configured.
func Load() (*Config, bool, error) {
	envFound := godotenv.Load() == nil

	cfg := &Config{}
	if err := envdecode.Decode(cfg); err != nil {
		return nil, envFound, fmt.Errorf("decode environment: %w", err)
	}
	return cfg, envFound, nil
}

// DSN builds the lib/pq connection URL.
func (c *Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.PostgresUser, c.PostgresPassword),
		Host:     c.PostgresHost + ":" + c.PostgresPort,
		Path:     "/" + c.PostgresDB,
		RawQuery: "sslmode=" + url.QueryEscape(c.PostgresSSLMode),
	}
	return u.String()
}
