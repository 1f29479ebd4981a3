// Package repository содержит бэкенды хранения статистики.
//
// DBStorage пишет замеры в PostgreSQL через промежуточные таблицы и хранимые процедуры,
// MemStorage держит всё в памяти и используется для разработки и тестов.
// Обе реализации отдают учётные данные агентов для кэша аутентификации.
package repository

import (
	"context"
	"errors"

	"github.com/levinOo/fleet-stats-collector/internal/models"
)

// ErrBackendUnavailable возвращается, когда хранилище не ответило даже после повторной попытки.
var ErrBackendUnavailable = errors.New("storage backend unavailable")

// Storage — бэкенд, в который цикл сервера сбрасывает накопленные пакеты.
type Storage interface {
	// LoadCredentials возвращает все пары "машина — ключ", упорядоченные по имени машины.
	LoadCredentials(ctx context.Context) ([]models.Credential, error)

	// WriteStats атомарно сохраняет пакеты. Пустой пакет не приводит к обращению к хранилищу.
	WriteStats(ctx context.Context, batch []*models.StatsPackage) error

	Ping(ctx context.Context) error
}

// CountRows возвращает количество вещественных и целых строк, которые даст пакет.
func CountRows(batch []*models.StatsPackage) (floats, ints int) {
	for _, p := range batch {
		if p == nil {
			continue
		}
		floats += len(p.FloatSamples)
		ints += len(p.IntSamples)
	}
	return floats, ints
}
