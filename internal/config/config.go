package config

import (
	"flag"
	"regexp"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config собирается один раз на старте процесса и передаётся по ссылке
// всем компонентам; чтение окружения по месту не допускается.
type Config struct {
	RunAddress  string `env:"RUN_ADDRESS"`
	DatabaseDSN string `env:"DATABASE_URI"`
	Environment string `env:"ENVIRONMENT"`

	// Креды внутреннего сервиса (второй класс принципалов)
	InternalUsername string `env:"INTERNAL_USERNAME"`
	InternalPassword string `env:"INTERNAL_PASSWORD"`

	// Внешний провайдер событий
	FotoowlBaseURL string        `env:"FOTOOWL_BASE_URL"`
	FotoowlTimeout time.Duration `env:"FOTOOWL_TIMEOUT"`
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags работают ТОЛЬКО если переменные из env не заданы
	flag.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "адрес и порт сервера (host:port)")
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД")
	flag.StringVar(&cfg.InternalUsername, "internal-user", cfg.InternalUsername, "логин внутреннего сервиса")
	flag.StringVar(&cfg.InternalPassword, "internal-password", cfg.InternalPassword, "пароль внутреннего сервиса")
	flag.StringVar(&cfg.FotoowlBaseURL, "fotoowl-url", cfg.FotoowlBaseURL, "базовый URL провайдера FotoOwl")
	flag.DurationVar(&cfg.FotoowlTimeout, "fotoowl-timeout", cfg.FotoowlTimeout, "таймаут вызовов провайдера")

	flag.Parse()

	// Defaults
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]*:\d{1,5}$`)
	if !hostPortRe.MatchString(cfg.RunAddress) {
		cfg.RunAddress = "localhost:8000"
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.InternalUsername == "" {
		cfg.InternalUsername = "internal_service"
	}
	if cfg.InternalPassword == "" {
		cfg.InternalPassword = "internal_secret_key_2024"
	}
	if cfg.FotoowlBaseURL == "" {
		cfg.FotoowlBaseURL = "https://dev-api.fotoowl.ai"
	}
	if cfg.FotoowlTimeout <= 0 {
		cfg.FotoowlTimeout = 60 * time.Second
	}

	return cfg
}
