package config

import (
	"github.com/joho/godotenv"
	"os"
	"strconv"
	"time"
)

type ServerConfig struct {
	Env           string        `env:"ENV,required"` // local, dev, prod
	Address       string        `env:"ADDRESS,required"`
	Timeout       time.Duration `env:"TIMEOUT" envDefault:"5s"`
	AllowedOrigin string        `env:"ALLOWED_ORIGIN" envDefault:"http://localhost:5173"`
}

type DatabaseConfig struct {
	PostgresConn string `env:"POSTGRES_CONN,required"`
}

type SessionConfig struct {
	Secret   string `env:"SESSION_SECRET,required"`
	TTLHours int    `env:"SESSION_TTL_HOURS" envDefault:"24"`
}

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Session  SessionConfig
}

const (
	local = ".env.local"
	dev   = ".env.dev"
	prod  = ".env.prod"
)

func MustLoad() *Config {
	if err := godotenv.Load(local); err != nil {
		panic(err)
	}

	timeoutStr := os.Getenv("TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		panic("Invalid TIMEOUT format: " + err.Error())
	}

	ttlStr := os.Getenv("SESSION_TTL_HOURS")
	ttl, err := strconv.Atoi(ttlStr)
	if err != nil {
		panic("Invalid SESSION_TTL_HOURS format: " + err.Error())
	}

	allowedOrigin := os.Getenv("ALLOWED_ORIGIN")
	if allowedOrigin == "" {
		allowedOrigin = "http://localhost:5173"
	}

	return &Config{
		Server: ServerConfig{
			Env:           os.Getenv("ENV"),
			Address:       os.Getenv("ADDRESS"),
			Timeout:       timeout,
			AllowedOrigin: allowedOrigin,
		},
		Database: DatabaseConfig{
			PostgresConn: os.Getenv("POSTGRES_CONN"),
		},
		Session: SessionConfig{
			Secret:   os.Getenv("SESSION_SECRET"),
			TTLHours: ttl,
		},
	}
}
