// Package logger предоставляет утилиты для логирования HTTP-запросов и ответов.
// Включает обертку ResponseWriter для захвата метаданных ответа и создание zap логгеров.
package logger

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ResponseData содержит метаданные HTTP-ответа для логирования.
type ResponseData struct {
	// Status содержит HTTP-код ответа (например, 200, 400, 500).
	Status int

	// Size содержит общий размер тела ответа в байтах.
	Size int
}

// LoggingRW оборачивает http.ResponseWriter и накапливает код ответа и размер тела.
type LoggingRW struct {
	http.ResponseWriter
	ResponseData *ResponseData
}

// Write записывает данные в ответ и обновляет накопленный размер.
// Если WriteHeader не вызывался, код ответа считается равным 200.
func (r *LoggingRW) Write(b []byte) (int, error) {
	if r.ResponseData.Status == 0 {
		r.ResponseData.Status = http.StatusOK
	}
	size, err := r.ResponseWriter.Write(b)
	r.ResponseData.Size += size
	return size, err
}

// WriteHeader устанавливает HTTP-код ответа и сохраняет его в ResponseData.
func (r *LoggingRW) WriteHeader(statusCode int) {
	r.ResponseWriter.WriteHeader(statusCode)
	r.ResponseData.Status = statusCode
}

// Middleware пишет одну строку лога на каждый запрос.
func Middleware(sugar *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
			start := time.Now()

			responseData := &ResponseData{}
			lw := LoggingRW{
				ResponseWriter: rw,
				ResponseData:   responseData,
			}

			h.ServeHTTP(&lw, r)

			sugar.Infow("Request handled",
				"uri", r.RequestURI,
				"method", r.Method,
				"duration", time.Since(start),
				"status", responseData.Status,
				"size", responseData.Size,
			)
		})
	}
}

// ParseLevel переводит строку уровня в zapcore.Level. Неизвестные значения дают info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// NewLogger создает zap.SugaredLogger с консольным кодировщиком development-окружения
// и заданным уровнем.
func NewLogger(level string) *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(ParseLevel(level))
	cfg.DisableStacktrace = true

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}

	return logger.Sugar()
}
