// Package service предоставляет основной функционал экспортера.
// Пакет управляет жизненным циклом HTTP-сервера и цикла опроса счётчика,
// а также корректным завершением работы при получении системных сигналов.
package service

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/levinOo/homewizard-p1-exporter/internal/config"
	"github.com/levinOo/homewizard-p1-exporter/internal/handler"
	"github.com/levinOo/homewizard-p1-exporter/internal/homewizard"
	"github.com/levinOo/homewizard-p1-exporter/internal/logger"
	"github.com/levinOo/homewizard-p1-exporter/internal/poller"
	"github.com/levinOo/homewizard-p1-exporter/internal/registry"
	"go.uber.org/zap"
)

// shutdownTimeout ограничивает время доотдачи незавершённых scrape-ответов.
const shutdownTimeout = 5 * time.Second

// ServerComponents содержит все компоненты, необходимые для работы экспортера.
type ServerComponents struct {
	server   *http.Server
	registry *registry.Registry
	poller   *poller.Poller
	logger   *zap.SugaredLogger
}

// Serve инициализирует и запускает экспортер с указанной конфигурацией:
// реестр метрик, клиент счётчика, цикл опроса и HTTP-сервер.
// Блокируется до SIGINT/SIGTERM или ошибки сервера.
//
// Возвращает ошибку, если запуск или завершение сервера завершились неудачей.
func Serve(cfg config.Config) error {
	sugar := logger.NewLogger(cfg.LogLevel)
	components := setupComponents(cfg, sugar)

	return runServerWithGracefulShutdown(components, cfg)
}

func setupComponents(cfg config.Config, sugar *zap.SugaredLogger) *ServerComponents {
	sugar.Infow("Starting exporter with config",
		"host", cfg.Host,
		"address", cfg.MetricsBindAddr(),
		"pollInterval", cfg.PollIntervalDuration(),
		"httpTimeout", cfg.HTTPTimeoutDuration(),
		"tokenSet", cfg.APIToken != "",
	)

	reg := registry.NewRegistry()
	client := homewizard.NewClient(cfg.HomeWizardURL(), cfg.HTTPTimeoutDuration(), cfg.APIToken)
	p := poller.NewPoller(client, reg, cfg.PollIntervalDuration(), sugar)

	router := handler.NewRouter(reg, sugar)

	srv := &http.Server{
		Addr:    cfg.MetricsBindAddr(),
		Handler: router,
	}

	return &ServerComponents{
		server:   srv,
		registry: reg,
		poller:   p,
		logger:   sugar,
	}
}

func runServerWithGracefulShutdown(components *ServerComponents, cfg config.Config) error {
	server := components.server
	sugar := components.logger

	components.poller.Start()

	serverErr := make(chan error, 1)

	go func() {
		sugar.Infow("HTTP server started", "address", cfg.MetricsBindAddr())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			sugar.Errorw("Server error", "error", err)
			components.poller.Stop()
			return fmt.Errorf("server error: %w", err)
		}
	case <-quit:
		sugar.Infoln("Shutting down exporter...")
	}

	return gracefulShutdown(components)
}

func gracefulShutdown(components *ServerComponents) error {
	sugar := components.logger

	components.poller.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := components.server.Shutdown(ctx); err != nil {
		sugar.Errorw("Server shutdown error", "error", err)
		return fmt.Errorf("server shutdown: %w", err)
	}

	sugar.Infoln("Exporter stopped gracefully")
	return nil
}
