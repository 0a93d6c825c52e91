// Package handler содержит HTTP-обработчики экспортера и их маршрутизацию.
package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/levinOo/homewizard-p1-exporter/internal/logger"
	"github.com/levinOo/homewizard-p1-exporter/internal/registry"
	"go.uber.org/zap"
)

// ContentTypeExposition — Content-Type ответа scrape-эндпоинта.
const ContentTypeExposition = "text/plain; version=0.0.4; charset=utf-8"

// NewRouter собирает маршруты экспортера: страница-заглушка на корне
// и документ экспозиции на /metrics. Остальные пути и методы — 404.
func NewRouter(reg *registry.Registry, sugar *zap.SugaredLogger) *chi.Mux {
	r := chi.NewRouter()
	r.MethodNotAllowed(http.NotFound)

	r.Get("/", LoggerFuncServer(RootHandler(), sugar))
	r.Get("/metrics", LoggerFuncServer(MetricsHandler(reg), sugar))

	return r
}

// LoggerFuncServer оборачивает обработчик логированием запроса:
// uri, метод, длительность, статус и размер ответа.
func LoggerFuncServer(h http.Handler, sugar *zap.SugaredLogger) http.HandlerFunc {
	logFn := func(rw http.ResponseWriter, r *http.Request) {
		start := time.Now()

		responseData := &logger.ResponseData{
			Size:   0,
			Status: 0,
		}
		lw := logger.LoggingRW{
			ResponseWriter: rw,
			ResponseData:   responseData,
		}

		h.ServeHTTP(&lw, r)

		dur := time.Since(start)

		sugar.Infoln(
			"uri", r.RequestURI,
			"method", r.Method,
			"duration", dur,
			"status", responseData.Status,
			"size", responseData.Size,
		)
	}
	return http.HandlerFunc(logFn)
}

// MetricsHandler отдаёт текущее состояние реестра в текстовом формате
// экспозиции. Ошибки счётчика сюда не доходят: scrape всегда возвращает
// последний успешно применённый снимок или начальные нули.
func MetricsHandler(reg *registry.Registry) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		body := reg.Render()

		rw.Header().Set("Content-Type", ContentTypeExposition)
		rw.WriteHeader(http.StatusOK)

		if _, err := rw.Write([]byte(body)); err != nil {
			log.Printf("write error: %v", err)
		}
	}
}

// RootHandler отдаёт минимальную страницу со ссылкой на /metrics.
func RootHandler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		rw.Header().Set("Content-Type", "text/html")
		rw.WriteHeader(http.StatusOK)

		_, err := rw.Write([]byte(`<html><body><h1>HomeWizard P1 Exporter</h1><p><a href="/metrics">Metrics</a></p></body></html>`))
		if err != nil {
			log.Printf("write html error: %v", err)
		}
	}
}
