package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath  = ".env"
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Env     string
	Storage storage
	Server  server
	Auth    auth
	Logger  logger
}

type storage struct {
	Driver      string `env:"STORAGE_DRIVER" envDefault:"memory"`
	DatabaseURI string `env:"DATABASE_URI"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"shelfkeeper.db"`
	Seed        bool   `env:"SEED" envDefault:"true"`
}

type server struct {
	RunAddress      string        `env:"RUN_ADDRESS" envDefault:":8080"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

type auth struct {
	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`
}

type logger struct {
	// LogLevel overrides the environment's default level when set.
	LogLevel string `env:"LOG_LEVEL"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", EnvLocal)
	v.SetDefault("run_address", ":8080")
	v.SetDefault("storage_driver", DriverMemory)
	v.SetDefault("sqlite_path", "shelfkeeper.db")
	v.SetDefault("seed", true)
	v.SetDefault("bcrypt_cost", 10)
	v.SetDefault("read_timeout", 10*time.Second)
	v.SetDefault("write_timeout", 10*time.Second)
	v.SetDefault("shutdown_timeout", 5*time.Second)
}

// MustLoad reads the optional .env file and the environment and panics on an invalid configuration.
func MustLoad() *Config {
	if err := godotenv.Load(envPath); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg, err := Load(viper.New())
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load builds the configuration from v with AutomaticEnv enabled.
func Load(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	config := Config{
		Env: v.GetString("app_env"),
		Storage: storage{
			Driver:      v.GetString("storage_driver"),
			DatabaseURI: v.GetString("database_uri"),
			SQLitePath:  v.GetString("sqlite_path"),
			Seed:        v.GetBool("seed"),
		},
		Server: server{
			RunAddress:      v.GetString("run_address"),
			ReadTimeout:     v.GetDuration("read_timeout"),
			WriteTimeout:    v.GetDuration("write_timeout"),
			ShutdownTimeout: v.GetDuration("shutdown_timeout"),
		},
		Auth:   auth{BcryptCost: v.GetInt("bcrypt_cost")},
		Logger: logger{LogLevel: v.GetString("log_level")},
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) validate() error {
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("unknown APP_ENV %q", c.Env)
	}

	switch c.Storage.Driver {
	case DriverMemory:
	case DriverSQLite:
		// Migrations and the store use separate connections, so a private
		// in-memory database would be empty for the store.
		if c.Storage.SQLitePath == "" || strings.Contains(c.Storage.SQLitePath, ":memory:") ||
			strings.Contains(c.Storage.SQLitePath, "mode=memory") {
			return fmt.Errorf("SQLITE_PATH must name a database file, got %q; use STORAGE_DRIVER=%s instead", c.Storage.SQLitePath, DriverMemory)
		}
	case DriverPostgres:
		if c.Storage.DatabaseURI == "" {
			return fmt.Errorf("DATABASE_URI is required for the %s driver", DriverPostgres)
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}
	return nil
}
