package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env          string
	Port         string
	DatabaseURL  string // postgres:// DSN; empty means local sqlite
	DatabasePath string // sqlite file used when no DATABASE_URL is set
	RedisURL     string // optional, enables the request counters on /health

	// Default third-party keys. Keys stored through the settings API take
	// precedence; these only seed a fresh install from the environment.
	OCRAPIKey      string
	DeepSeekAPIKey string

	AllowedOrigins string
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}
	dbPath := viper.GetString("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "assetly.db"
	}
	origins := viper.GetString("ALLOWED_ORIGINS")
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	return &Config{
		Env:            env,
		Port:           port,
		DatabaseURL:    viper.GetString("DATABASE_URL"),
		DatabasePath:   dbPath,
		RedisURL:       viper.GetString("REDIS_URL"),
		OCRAPIKey:      viper.GetString("OCR_API_KEY"),
		DeepSeekAPIKey: viper.GetString("DEEPSEEK_API_KEY"),
		AllowedOrigins: origins,
	}, nil
}
