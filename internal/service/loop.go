package service

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/levinOo/fleet-stats-collector/internal/models"
	"github.com/levinOo/fleet-stats-collector/internal/pool"
	"github.com/levinOo/fleet-stats-collector/internal/queue"
	"github.com/levinOo/fleet-stats-collector/internal/repository"
	"go.uber.org/zap"
)

// DefaultCloseDelay — пауза перед остановкой транспорта, чтобы клиент,
// приславший /close, успел получить ответ.
const DefaultCloseDelay = 250 * time.Millisecond

// DefaultCycleTimeout ограничивает запись партии и обновление кэша на одном цикле.
const DefaultCycleTimeout = 30 * time.Second

const shutdownTimeout = 30 * time.Second

// State — состояние цикла сервера.
type State int32

const (
	StateRunning State = iota
	StateDraining
	StateShuttingDown
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	case StateShuttingDown:
		return "shutting down"
	default:
		return "unknown"
	}
}

// StatsWriter сохраняет партию пакетов.
type StatsWriter interface {
	WriteStats(ctx context.Context, batch []*models.StatsPackage) error
}

// CredentialRefresher перечитывает учётные данные агентов.
type CredentialRefresher interface {
	Refresh(ctx context.Context) error
}

// Loop — фоновый цикл сервера. На каждой итерации он ждёт сигнала остановки не дольше
// интервала, затем выбирает всё из очереди, пишет партию в хранилище и обновляет кэш
// учётных данных. Ошибка записи приводит к потере партии, ошибка обновления оставляет
// прежний кэш; в обоих случаях цикл продолжается.
type Loop struct {
	queue    *queue.TasksQueue[*models.StatsPackage]
	writer   StatsWriter
	auth     CredentialRefresher
	closer   *Closer
	interval time.Duration
	sugar    *zap.SugaredLogger

	packages   *pool.Pool[*models.StatsPackage]
	onShutdown func(ctx context.Context) error
	closeDelay time.Duration
	ioTimeout  time.Duration

	state atomic.Int32
	batch []*models.StatsPackage

	written atomic.Uint64
	dropped atomic.Uint64
}

// LoopOption настраивает необязательные параметры цикла.
type LoopOption func(*Loop)

// WithPackagePool возвращает записанные пакеты в пул.
func WithPackagePool(p *pool.Pool[*models.StatsPackage]) LoopOption {
	return func(l *Loop) { l.packages = p }
}

// WithShutdownHook задаёт функцию остановки транспорта, вызываемую перед финальной записью.
func WithShutdownHook(fn func(ctx context.Context) error) LoopOption {
	return func(l *Loop) { l.onShutdown = fn }
}

// WithCloseDelay меняет паузу перед остановкой транспорта.
func WithCloseDelay(d time.Duration) LoopOption {
	return func(l *Loop) { l.closeDelay = d }
}

// WithCycleTimeout меняет предельное время записи и обновления кэша на одном цикле.
func WithCycleTimeout(d time.Duration) LoopOption {
	return func(l *Loop) { l.ioTimeout = d }
}

// NewLoop создаёт цикл сервера.
func NewLoop(
	q *queue.TasksQueue[*models.StatsPackage],
	writer StatsWriter,
	auth CredentialRefresher,
	closer *Closer,
	interval time.Duration,
	sugar *zap.SugaredLogger,
	opts ...LoopOption,
) *Loop {
	l := &Loop{
		queue:      q,
		writer:     writer,
		auth:       auth,
		closer:     closer,
		interval:   interval,
		sugar:      sugar,
		closeDelay: DefaultCloseDelay,
		ioTimeout:  DefaultCycleTimeout,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// State возвращает текущее состояние цикла.
func (l *Loop) State() State {
	return State(l.state.Load())
}

// Stats возвращает число записанных и потерянных пакетов.
func (l *Loop) Stats() (written, dropped uint64) {
	return l.written.Load(), l.dropped.Load()
}

// Run выполняет циклы до взведения сигнала остановки или отмены ctx.
// Начатая запись партии не прерывается отменой ctx, но ограничена сроком цикла,
// поэтому зависший бэкенд не мешает остановке дольше этого срока.
func (l *Loop) Run(ctx context.Context) error {
	l.state.Store(int32(StateRunning))
	l.sugar.Infow("Server loop started", "interval", l.interval)

	timer := time.NewTimer(l.interval)
	defer timer.Stop()

	for {
		select {
		case <-l.closer.Done():
			l.shutdown(ctx)
			return nil
		case <-ctx.Done():
			l.shutdown(ctx)
			return nil
		case <-timer.C:
		}

		l.cycle(ctx)
		timer.Reset(l.interval)
	}
}

func (l *Loop) cycle(parent context.Context) {
	l.state.Store(int32(StateDraining))
	defer l.state.Store(int32(StateRunning))

	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), l.ioTimeout)
	defer cancel()

	l.flush(ctx)

	if err := l.auth.Refresh(ctx); err != nil {
		l.sugar.Errorw("Failed to refresh credentials, keeping cached set", "error", err)
	}
}

func (l *Loop) shutdown(ctx context.Context) {
	l.state.Store(int32(StateShuttingDown))
	l.sugar.Infow("Shutting down server loop")

	if l.closeDelay > 0 {
		time.Sleep(l.closeDelay)
	}

	ioCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if l.onShutdown != nil {
		if err := l.onShutdown(ioCtx); err != nil {
			l.sugar.Errorw("Transport shutdown error", "error", err)
		}
	}

	l.flush(ioCtx)

	written, dropped := l.Stats()
	l.sugar.Infow("Server loop stopped", "writtenPackages", written, "droppedPackages", dropped)
}

// flush выбирает всё из очереди и пишет одной партией.
func (l *Loop) flush(ctx context.Context) {
	l.batch = l.queue.Dequeue(l.batch)
	if len(l.batch) == 0 {
		return
	}

	n := uint64(len(l.batch))
	floats, ints := repository.CountRows(l.batch)
	start := time.Now()

	if err := l.writer.WriteStats(ctx, l.batch); err != nil {
		l.dropped.Add(n)
		l.sugar.Errorw("Failed to write stats batch, batch dropped",
			"packages", n,
			"floatRows", floats,
			"intRows", ints,
			"error", err,
		)
	} else {
		l.written.Add(n)
		l.sugar.Debugw("Stats batch written",
			"packages", n,
			"floatRows", floats,
			"intRows", ints,
			"duration", time.Since(start),
		)
	}

	if l.packages != nil {
		for _, p := range l.batch {
			l.packages.Put(p)
		}
	}
	clear(l.batch)
	l.batch = l.batch[:0]
}
