// Package handler содержит HTTP-транспорт сервера: приём пакетов статистики от агентов,
// запрос на остановку сервера и проверку доступности хранилища.
package handler

import (
	"compress/gzip"
	"context"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/levinOo/fleet-stats-collector/internal/logger"
	"github.com/levinOo/fleet-stats-collector/internal/models"
	"github.com/levinOo/fleet-stats-collector/internal/pool"
	"github.com/mailru/easyjson"
	"go.uber.org/zap"
)

// MaxBodySize ограничивает размер тела запроса после распаковки.
const MaxBodySize = 8 << 20

// Authenticator проверяет пару "машина — ключ".
type Authenticator interface {
	IsAuthentic(machine, key string) bool
}

// Enqueuer принимает пакеты для последующей записи.
type Enqueuer interface {
	Enqueue(p *models.StatsPackage)
}

// ClosureRequester взводит сигнал остановки сервера.
type ClosureRequester interface {
	RequestClosure()
}

// Pinger проверяет доступность хранилища.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Notifier получает события аудита для принятых пакетов.
type Notifier interface {
	Notify(event models.AuditEvent)
}

// Services — зависимости обработчиков. Audit может быть nil.
type Services struct {
	Auth     Authenticator
	Queue    Enqueuer
	Packages *pool.Pool[*models.StatsPackage]
	Closer   ClosureRequester
	Storage  Pinger
	Audit    Notifier
}

// NewRouter собирает маршруты сервера.
func NewRouter(s Services, sugar *zap.SugaredLogger) *chi.Mux {
	if s.Packages == nil {
		s.Packages = pool.New(func() *models.StatsPackage { return &models.StatsPackage{} }, 0)
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(logger.Middleware(sugar))

	r.Get("/ping", PingHandler(s.Storage))
	r.Post("/stats", DecompressMiddleware(SendStatsHandler(s, sugar)))
	r.Post("/close", CloseHandler(s.Closer, sugar))

	return r
}

// DecompressMiddleware распаковывает тело запроса, если клиент прислал его в gzip.
func DecompressMiddleware(h http.Handler) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Encoding") == "gzip" {
			gz, err := gzip.NewReader(r.Body)
			if err != nil {
				http.Error(rw, "Failed to decompress gzip body", http.StatusBadRequest)
				return
			}
			defer gz.Close()

			r.Body = gz
			r.Header.Del("Content-Encoding")
			r.ContentLength = -1
		}
		h.ServeHTTP(rw, r)
	}
}

// SendStatsHandler принимает пакет статистики.
// Неверный ключ не является ошибкой транспорта: клиент получает {"status": false}.
func SendStatsHandler(s Services, sugar *zap.SugaredLogger) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		var req models.SendStatsSampleRequest

		body := http.MaxBytesReader(rw, r.Body, MaxBodySize)
		if err := easyjson.UnmarshalFromReader(body, &req); err != nil {
			http.Error(rw, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
		if err := req.Payload.Validate(); err != nil {
			http.Error(rw, err.Error(), http.StatusBadRequest)
			return
		}

		accepted := s.Auth.IsAuthentic(req.Payload.Machine, req.Key)
		switch {
		case accepted && req.Payload.Len() == 0:
			sugar.Debugw("Empty stats sample accepted", "machine", req.Payload.Machine)
		case accepted:
			pkg := s.Packages.Get()
			req.Payload.CopyTo(pkg)
			s.Queue.Enqueue(pkg)

			if s.Audit != nil {
				s.Audit.Notify(models.NewAuditEvent(time.Now().Unix(), &req.Payload, clientIP(r)))
			}
		default:
			sugar.Debugw("Stats sample rejected", "machine", req.Payload.Machine, "ip", clientIP(r))
		}

		writeStatus(rw, accepted, sugar)
	}
}

// CloseHandler взводит сигнал остановки. Сервер завершится на своём следующем цикле.
func CloseHandler(c ClosureRequester, sugar *zap.SugaredLogger) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		sugar.Infow("Closure requested", "ip", clientIP(r))
		c.RequestClosure()
		writeStatus(rw, true, sugar)
	}
}

// PingHandler проверяет доступность хранилища.
func PingHandler(p Pinger) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := p.Ping(ctx); err != nil {
			http.Error(rw, "No connection with storage", http.StatusInternalServerError)
			return
		}

		rw.WriteHeader(http.StatusOK)
		rw.Write([]byte("Storage is reachable"))
	}
}

func writeStatus(rw http.ResponseWriter, status bool, sugar *zap.SugaredLogger) {
	if _, _, err := easyjson.MarshalToHTTPResponseWriter(models.StatusResponse{Status: status}, rw); err != nil {
		sugar.Warnw("Failed to write response", "error", err)
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
