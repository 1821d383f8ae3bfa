package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Env  string `mapstructure:"env"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpiryHours int    `mapstructure:"expiry_hours"`
}

type GoogleAPIConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURL  string `mapstructure:"redirect_url"`
}

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	GoogleAPI GoogleAPIConfig `mapstructure:"google_api"`
}

var (
	instance *Config
	once     sync.Once
	loadErr  error
)

// Load reads configuration from environment variables (with .env support
// for local development) and caches the result for the process lifetime.
func Load() (*Config, error) {
	once.Do(func() {
		// .env is optional; real environments set variables directly
		_ = godotenv.Load()

		v := viper.New()
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()

		v.SetDefault("server.port", 7070)
		v.SetDefault("server.env", "development")
		v.SetDefault("database.host", "localhost")
		v.SetDefault("database.port", 5432)
		v.SetDefault("database.user", "postgres")
		v.SetDefault("database.password", "")
		v.SetDefault("database.name", "meetsync")
		v.SetDefault("redis.addr", "localhost:6379")
		v.SetDefault("redis.password", "")
		v.SetDefault("redis.db", 0)
		v.SetDefault("jwt.secret", "")
		v.SetDefault("jwt.expiry_hours", 24)
		v.SetDefault("google_api.client_id", "")
		v.SetDefault("google_api.client_secret", "")
		v.SetDefault("google_api.redirect_url", "")

		var cfg Config
		if err := v.Unmarshal(&cfg); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal config: %w", err)
			return
		}
		instance = &cfg
	})

	return instance, loadErr
}

// Get returns the loaded config, panicking if Load was never called
func Get() *Config {
	if instance == nil {
		panic("config: Load must be called before Get")
	}
	return instance
}

// GetSafe returns the loaded config without panicking
func GetSafe() (*Config, error) {
	if instance == nil {
		return Load()
	}
	return instance, nil
}
