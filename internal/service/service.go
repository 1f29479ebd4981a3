// Package service собирает сервер сбора статистики из компонентов и управляет его жизненным циклом:
// HTTP-транспорт принимает пакеты, фоновый цикл сбрасывает их в хранилище,
// а сигнал остановки приходит от запроса /close или от SIGINT/SIGTERM.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/levinOo/fleet-stats-collector/internal/audit"
	"github.com/levinOo/fleet-stats-collector/internal/auth"
	"github.com/levinOo/fleet-stats-collector/internal/config"
	"github.com/levinOo/fleet-stats-collector/internal/config/db"
	"github.com/levinOo/fleet-stats-collector/internal/handler"
	"github.com/levinOo/fleet-stats-collector/internal/logger"
	"github.com/levinOo/fleet-stats-collector/internal/models"
	"github.com/levinOo/fleet-stats-collector/internal/pool"
	"github.com/levinOo/fleet-stats-collector/internal/queue"
	"github.com/levinOo/fleet-stats-collector/internal/repository"
	"github.com/levinOo/fleet-stats-collector/migrations"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	queueCapacity   = 256
	maxIdlePackages = 4096
)

// ServerComponents содержит все компоненты, необходимые для работы сервера.
type ServerComponents struct {
	server  *http.Server
	loop    *Loop
	closer  *Closer
	storage repository.Storage
	auth    *auth.Authenticator
	auditer *audit.Auditer
	dbConns []*sql.DB
	logger  *zap.SugaredLogger
}

// Serve инициализирует и запускает сервер с указанной конфигурацией.
// Возвращает управление после остановки по запросу /close или по SIGINT/SIGTERM.
func Serve(cfg config.Config) error {
	sugar := logger.NewLogger(cfg.LogLevel)
	defer sugar.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	components, err := Setup(ctx, cfg, sugar)
	if err != nil {
		return err
	}

	return components.Run(ctx)
}

// Setup создаёт хранилище, кэш учётных данных, очередь, транспорт и цикл сервера.
// Учётные данные загружаются сразу, ошибка загрузки прерывает запуск.
func Setup(ctx context.Context, cfg config.Config, sugar *zap.SugaredLogger) (*ServerComponents, error) {
	sugar.Infow("Starting server with config",
		"address", cfg.Addr,
		"flushInterval", cfg.FlushInterval,
		"cycleTimeout", cfg.CycleTimeout,
		"database", cfg.AddrDB != "",
		"auditFile", cfg.AuditFile,
		"auditURL", cfg.AuditURL,
	)

	c := &ServerComponents{logger: sugar, closer: NewCloser()}

	var (
		credSource auth.CredentialSource
		pinger     handler.Pinger
	)

	if cfg.AddrDB != "" {
		if err := migrations.RunMigrations(cfg.AddrDB); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}

		writerConn, err := db.ConnectDB(ctx, cfg.AddrDB, sugar)
		if err != nil {
			return nil, err
		}
		c.dbConns = append(c.dbConns, writerConn)

		authConn, err := db.ConnectDB(ctx, cfg.AddrDB, sugar)
		if err != nil {
			c.Close()
			return nil, err
		}
		c.dbConns = append(c.dbConns, authConn)

		ids := repository.NewBatchIDGenerator()
		c.storage = repository.NewDBStorage(writerConn, ids)
		credSource = repository.NewDBStorage(authConn, ids)
		pinger = db.DSNPinger{DSN: cfg.AddrDB}
	} else {
		creds, err := cfg.ParseCredentials()
		if err != nil {
			return nil, err
		}
		mem := repository.NewMemStorage(creds...)
		c.storage, credSource, pinger = mem, mem, mem
		sugar.Infow("Using in-memory storage", "credentials", len(creds))
	}

	c.auth = auth.New(credSource)
	if err := c.auth.Refresh(ctx); err != nil {
		c.Close()
		return nil, fmt.Errorf("initial credential load: %w", err)
	}
	sugar.Infow("Credentials loaded", "count", c.auth.Len())

	q := queue.New[*models.StatsPackage](queueCapacity)
	packages := pool.New(func() *models.StatsPackage { return &models.StatsPackage{} }, maxIdlePackages)

	services := handler.Services{
		Auth:     c.auth,
		Queue:    q,
		Packages: packages,
		Closer:   c.closer,
		Storage:  pinger,
	}
	if c.auditer = audit.FromConfig(cfg.AuditFile, cfg.AuditURL, sugar); c.auditer != nil {
		services.Audit = c.auditer
	}

	c.server = &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler.NewRouter(services, sugar),
		ReadHeaderTimeout: 10 * time.Second,
	}

	opts := []LoopOption{
		WithPackagePool(packages),
		WithShutdownHook(c.server.Shutdown),
	}
	if d := cfg.CycleDeadline(); d > 0 {
		opts = append(opts, WithCycleTimeout(d))
	}
	c.loop = NewLoop(q, c.storage, c.auth, c.closer, cfg.FlushCycle(), sugar, opts...)

	return c, nil
}

// Handler возвращает HTTP-обработчик сервера.
func (c *ServerComponents) Handler() http.Handler {
	return c.server.Handler
}

// Storage возвращает бэкенд, в который пишет цикл сервера.
func (c *ServerComponents) Storage() repository.Storage {
	return c.storage
}

// Closer возвращает сигнал остановки сервера.
func (c *ServerComponents) Closer() *Closer {
	return c.closer
}

// Loop возвращает цикл сервера.
func (c *ServerComponents) Loop() *Loop {
	return c.loop
}

// Run запускает HTTP-сервер и цикл сервера и ждёт их завершения.
// Отмена ctx равносильна запросу /close. Ресурсы освобождаются перед возвратом.
func (c *ServerComponents) Run(ctx context.Context) error {
	defer c.Close()

	ln, err := net.Listen("tcp", c.server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", c.server.Addr, err)
	}

	stopOnCancel := context.AfterFunc(ctx, c.closer.RequestClosure)
	defer stopOnCancel()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		c.logger.Infow("HTTP server started", "address", ln.Addr().String())
		if err := c.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return c.loop.Run(gctx)
	})

	err = g.Wait()
	c.logger.Infow("Server stopped")
	return err
}

// Close освобождает подключения к базе и останавливает аудит.
func (c *ServerComponents) Close() error {
	if c.auditer != nil {
		c.auditer.Stop()
	}

	var err error
	for _, conn := range c.dbConns {
		err = multierr.Append(err, conn.Close())
	}
	c.dbConns = nil

	if err != nil {
		c.logger.Errorw("Error closing database connections", "error", err)
	}
	return err
}
