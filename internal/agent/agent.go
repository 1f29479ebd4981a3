// Package agent реализует клиента, который периодически снимает показания счётчиков
// производительности хоста и отправляет их коллектору.
package agent

import (
	"context"
	"errors"
	"time"

	"github.com/levinOo/fleet-stats-collector/internal/agent/config"
	"github.com/levinOo/fleet-stats-collector/internal/agent/counters"
	"github.com/levinOo/fleet-stats-collector/internal/models"
	"go.uber.org/zap"
)

// Sender отправляет замер коллектору.
type Sender interface {
	SendStatsSample(ctx context.Context, key string, sample models.StatsSample) (bool, error)
}

// SampleReader снимает показания счётчиков.
type SampleReader interface {
	Read(ctx context.Context, machine string) models.StatsSample
}

// Agent — цикл сбора: замер, отправка, ожидание остатка интервала.
type Agent struct {
	sender   Sender
	reader   SampleReader
	machine  string
	key      string
	interval time.Duration
	lifetime time.Duration
	sugar    *zap.SugaredLogger

	sent     int
	rejected int
	failed   int
}

// New создаёт агента с параметрами из конфигурации.
func New(cfg config.Config, sender Sender, reader SampleReader, sugar *zap.SugaredLogger) *Agent {
	return &Agent{
		sender:   sender,
		reader:   reader,
		machine:  cfg.Machine,
		key:      cfg.Key,
		interval: cfg.CollectCycle(),
		lifetime: cfg.Lifetime(),
		sugar:    sugar,
	}
}

// Run выполняет циклы сбора до истечения времени работы или отмены ctx.
// Ошибка отправки не останавливает агента: замер теряется, цикл продолжается.
func (a *Agent) Run(ctx context.Context) error {
	if a.lifetime > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.lifetime)
		defer cancel()
	}

	a.sugar.Infow("Agent started",
		"machine", a.machine,
		"interval", a.interval,
		"lifetime", a.lifetime,
	)

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			a.stopped(ctx)
			return nil
		case <-timer.C:
		}

		start := time.Now()
		a.collect(ctx)

		wait := a.interval - time.Since(start)
		if wait < 0 {
			wait = 0
		}
		timer.Reset(wait)
	}
}

func (a *Agent) collect(ctx context.Context) {
	sample := a.reader.Read(ctx, a.machine)

	accepted, err := a.sender.SendStatsSample(ctx, a.key, sample)
	switch {
	case err != nil:
		if ctx.Err() != nil {
			return
		}
		a.failed++
		a.sugar.Errorw("Failed to send stats sample", "error", err)
	case !accepted:
		a.rejected++
		a.sugar.Warnw("Collector rejected stats sample, check machine name and key", "machine", a.machine)
	default:
		a.sent++
		a.sugar.Debugw("Stats sample sent",
			"floatStats", len(sample.StatsFloat32),
			"intStats", len(sample.StatsInt32),
		)
	}
}

func (a *Agent) stopped(ctx context.Context) {
	reason := "cancelled"
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		reason = "running time has expired"
	}
	a.sugar.Infow("Agent stopped",
		"reason", reason,
		"sent", a.sent,
		"rejected", a.rejected,
		"failed", a.failed,
	)
}

// Counts возвращает число принятых, отклонённых и неотправленных замеров.
func (a *Agent) Counts() (sent, rejected, failed int) {
	return a.sent, a.rejected, a.failed
}

// Run запускает агента с указанной конфигурацией. Если задан Shutdown, агент только
// отправляет запрос остановки сервера; результат возвращается в accepted.
func Run(ctx context.Context, cfg config.Config, sugar *zap.SugaredLogger) (accepted bool, err error) {
	client := NewClient(cfg.Addr, sugar)

	if cfg.Shutdown {
		return client.CloseService(ctx)
	}

	a := New(cfg, client, counters.NewReader(nil), sugar)
	return true, a.Run(ctx)
}
