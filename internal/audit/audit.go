// Package audit реализует журнал принятых пакетов статистики.
// Использует паттерн Observer: Auditer получает события от обработчика запросов
// и в фоновой горутине раздаёт их подписчикам (файл, внешний HTTP-сервис).
package audit

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/levinOo/fleet-stats-collector/internal/models"
	"go.uber.org/zap"
)

// DefaultBufferSize — ёмкость очереди событий по умолчанию.
const DefaultBufferSize = 1024

// Consumer обрабатывает событие аудита.
type Consumer interface {
	Update(event models.AuditEvent) error
}

// Auditer раздаёт события подписчикам асинхронно.
// Notify никогда не блокирует обработчик запроса: если буфер заполнен, событие отбрасывается.
type Auditer struct {
	clients []Consumer
	events  chan models.AuditEvent
	sugar   *zap.SugaredLogger

	mu      sync.RWMutex
	stopped bool

	dropped atomic.Uint64
	done    chan struct{}
	once    sync.Once
}

// NewAuditer создаёт Auditer с буфером на bufferSize событий.
func NewAuditer(bufferSize int, sugar *zap.SugaredLogger) *Auditer {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Auditer{
		events: make(chan models.AuditEvent, bufferSize),
		sugar:  sugar,
		done:   make(chan struct{}),
	}
}

// RegisterClient добавляет подписчика. Вызывается до Start.
func (a *Auditer) RegisterClient(c Consumer) {
	a.clients = append(a.clients, c)
}

// Start запускает фоновую доставку событий.
func (a *Auditer) Start() {
	go func() {
		defer close(a.done)
		for event := range a.events {
			for _, c := range a.clients {
				if err := c.Update(event); err != nil {
					a.sugar.Warnw("Audit delivery failed", "machine", event.Machine, "error", err)
				}
			}
		}
	}()
}

// Notify ставит событие в очередь доставки. Вызов на nil-Auditer ничего не делает.
func (a *Auditer) Notify(event models.AuditEvent) {
	if a == nil {
		return
	}

	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.stopped {
		return
	}

	select {
	case a.events <- event:
	default:
		if n := a.dropped.Add(1); n == 1 || n%100 == 0 {
			a.sugar.Warnw("Audit buffer is full, events dropped", "dropped", n)
		}
	}
}

// Stop прекращает приём событий и ждёт, пока уже принятые будут доставлены.
func (a *Auditer) Stop() {
	a.once.Do(func() {
		a.mu.Lock()
		a.stopped = true
		close(a.events)
		a.mu.Unlock()
		<-a.done
	})
}

// Dropped возвращает количество отброшенных событий.
func (a *Auditer) Dropped() uint64 {
	return a.dropped.Load()
}

// FileAuditer дописывает события в файл по одному JSON-объекту на строку.
type FileAuditer struct {
	mu   sync.Mutex
	path string
}

// NewFileAuditer создаёт подписчика, пишущего в указанный файл.
func NewFileAuditer(path string) *FileAuditer {
	return &FileAuditer{path: path}
}

// Update дописывает событие в конец файла.
func (a *FileAuditer) Update(event models.AuditEvent) error {
	data, err := event.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	data = append(data, '\n')

	a.mu.Lock()
	defer a.mu.Unlock()

	f, err := os.OpenFile(a.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open audit file: %w", err)
	}

	_, err = f.Write(data)
	return errors.Join(err, f.Close())
}

// URLAuditer отправляет события на внешний HTTP endpoint методом POST.
type URLAuditer struct {
	url    string
	client *resty.Client
}

// NewURLAuditer создаёт подписчика для указанного URL.
func NewURLAuditer(url string) *URLAuditer {
	return &URLAuditer{
		url:    url,
		client: resty.New().SetTimeout(5 * time.Second),
	}
}

// Update отправляет событие. Ответ с кодом 4xx/5xx считается ошибкой.
func (a *URLAuditer) Update(event models.AuditEvent) error {
	data, err := event.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}

	resp, err := a.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(data).
		Post(a.url)
	if err != nil {
		return fmt.Errorf("post audit event: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("audit endpoint responded with status %d", resp.StatusCode())
	}
	return nil
}

// FromConfig собирает и запускает Auditer для заданных приёмников.
// Если ни один приёмник не задан, возвращает nil.
func FromConfig(path, url string, sugar *zap.SugaredLogger) *Auditer {
	if path == "" && url == "" {
		return nil
	}

	a := NewAuditer(DefaultBufferSize, sugar)
	if path != "" {
		a.RegisterClient(NewFileAuditer(path))
	}
	if url != "" {
		a.RegisterClient(NewURLAuditer(url))
	}
	a.Start()

	sugar.Infow("Audit enabled", "file", path, "url", url)
	return a
}
