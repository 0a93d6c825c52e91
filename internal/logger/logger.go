// Package logger предоставляет утилиты для логирования HTTP-запросов и ответов.
// Включает обертку ResponseWriter для захвата метаданных ответа и создание zap логгеров.
package logger

import (
	"log"
	"net/http"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ResponseData содержит метаданные HTTP-ответа для логирования.
// Используется совместно с LoggingRW для отслеживания характеристик ответа.
type ResponseData struct {
	// Status содержит HTTP-код ответа (например, 200, 404, 500).
	Status int

	// Size содержит общий размер тела ответа в байтах.
	Size int
}

// LoggingRW оборачивает стандартный http.ResponseWriter для захвата метрик ответа.
// Перехватывает вызовы Write и WriteHeader для сбора статистики без изменения поведения.
type LoggingRW struct {
	http.ResponseWriter
	// ResponseData указывает на структуру для накопления метаданных ответа.
	ResponseData *ResponseData
}

// Write записывает данные в ответ и обновляет накопленный размер в ResponseData.
func (r *LoggingRW) Write(b []byte) (int, error) {
	size, err := r.ResponseWriter.Write(b)
	r.ResponseData.Size += size
	return size, err
}

// WriteHeader устанавливает HTTP-код ответа и сохраняет его в ResponseData.
func (r *LoggingRW) WriteHeader(statusCode int) {
	r.ResponseWriter.WriteHeader(statusCode)
	r.ResponseData.Status = statusCode
}

// NewLogger создает и возвращает настроенный zap.SugaredLogger с заданным уровнем.
// Уровень "trace" отображается на debug: отдельного trace-уровня у zap нет.
// Нераспознанный уровень откатывается на info.
func NewLogger(level string) *zap.SugaredLogger {
	if level == "trace" {
		level = "debug"
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := cfg.Build()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	return logger.Sugar()
}
