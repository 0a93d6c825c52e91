// Package config предоставляет функциональность для управления конфигурацией экспортера.
// Поддерживает загрузку настроек из переменных окружения и флагов командной строки,
// с приоритетом переменных окружения над флагами.
package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config содержит все параметры конфигурации экспортера.
// Значения загружаются из флагов командной строки или из переменных
// окружения (указаны в тегах env), если те установлены.
type Config struct {
	// Host задает адрес или имя хоста счётчика HomeWizard P1. Обязательный параметр.
	Host string `env:"HOMEWIZARD_HOST"`

	// Port задает порт, на котором публикуются метрики.
	Port int `env:"METRICS_PORT"`

	// PollInterval определяет интервал опроса счётчика в секундах.
	PollInterval int `env:"POLL_INTERVAL"`

	// LogLevel задает уровень логирования: trace, debug, info, warn или error.
	LogLevel string `env:"LOG_LEVEL"`

	// APIToken содержит опциональный bearer-токен для API счётчика.
	// Пустое значение отключает заголовок Authorization.
	APIToken string `env:"HOMEWIZARD_API_TOKEN"`

	// HTTPTimeout задает таймаут одного запроса к счётчику в секундах.
	HTTPTimeout int `env:"HTTP_TIMEOUT"`
}

// GetConfig загружает и возвращает конфигурацию экспортера.
// Сначала обрабатываются флаги командной строки, затем переменные окружения.
// Переменные окружения имеют приоритет над флагами.
//
// Поддерживаемые флаги:
//
//	--host: адрес счётчика HomeWizard P1 (обязательный)
//	--port: порт для метрик (по умолчанию 9898)
//	--poll-interval: интервал опроса в секундах (по умолчанию 10)
//	--log-level: уровень логирования (по умолчанию "info")
//	--api-token: bearer-токен для API счётчика (по умолчанию пусто)
//	--http-timeout: таймаут запроса в секундах (по умолчанию 5)
//
// Соответствующие переменные окружения:
//
//	HOMEWIZARD_HOST, METRICS_PORT, POLL_INTERVAL,
//	LOG_LEVEL, HOMEWIZARD_API_TOKEN, HTTP_TIMEOUT
func GetConfig() (Config, error) {
	cfg := Config{}

	flag.StringVar(&cfg.Host, "host", "", "HomeWizard P1 meter IP address or hostname")
	flag.IntVar(&cfg.Port, "port", 9898, "port to expose metrics on")
	flag.IntVar(&cfg.PollInterval, "poll-interval", 10, "interval in seconds between polls")
	flag.StringVar(&cfg.LogLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	flag.StringVar(&cfg.APIToken, "api-token", "", "optional API token for HomeWizard API")
	flag.IntVar(&cfg.HTTPTimeout, "http-timeout", 5, "HTTP request timeout in seconds")

	flag.Parse()

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("ошибка парсинга ENV: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate проверяет, что конфигурация пригодна для запуска экспортера.
func (c Config) Validate() error {
	if c.Host == "" {
		return errors.New("host is required (flag --host or env HOMEWIZARD_HOST)")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %d", c.PollInterval)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be positive, got %d", c.HTTPTimeout)
	}
	return nil
}

// PollIntervalDuration возвращает интервал опроса как time.Duration.
func (c Config) PollIntervalDuration() time.Duration {
	return time.Duration(c.PollInterval) * time.Second
}

// HTTPTimeoutDuration возвращает таймаут запроса как time.Duration.
func (c Config) HTTPTimeoutDuration() time.Duration {
	return time.Duration(c.HTTPTimeout) * time.Second
}

// MetricsBindAddr возвращает адрес, на котором слушает HTTP-сервер метрик.
func (c Config) MetricsBindAddr() string {
	return fmt.Sprintf("0.0.0.0:%d", c.Port)
}

// HomeWizardURL возвращает полный URL эндпоинта данных счётчика.
func (c Config) HomeWizardURL() string {
	return fmt.Sprintf("http://%s/api/v1/data", c.Host)
}
