package repository

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/levinOo/fleet-stats-collector/internal/models"
)

// RowKey идентифицирует строку нормализованной таблицы.
type RowKey struct {
	Machine  string
	StatName string
	Instant  int64
}

// StoredValue — значение и качество сохранённого замера.
type StoredValue[T models.Number] struct {
	Value   T
	Quality models.Quality
}

// MemStorage хранит учётные данные и замеры в памяти.
// Повторная запись того же ключа заменяет значение, как и процедуры финализации в PostgreSQL.
type MemStorage struct {
	mu     sync.RWMutex
	creds  map[string]string
	floats map[RowKey]StoredValue[float32]
	ints   map[RowKey]StoredValue[int32]
}

// NewMemStorage создаёт пустое хранилище с заданными учётными данными.
func NewMemStorage(creds ...models.Credential) *MemStorage {
	m := &MemStorage{
		creds:  make(map[string]string, len(creds)),
		floats: make(map[RowKey]StoredValue[float32]),
		ints:   make(map[RowKey]StoredValue[int32]),
	}
	for _, c := range creds {
		m.creds[c.Machine] = c.Key
	}
	return m
}

// AddCredential добавляет или заменяет ключ машины.
func (m *MemStorage) AddCredential(c models.Credential) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds[c.Machine] = c.Key
}

// RemoveCredential удаляет машину из списка допущенных.
func (m *MemStorage) RemoveCredential(machine string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.creds, machine)
}

// LoadCredentials возвращает копию учётных данных, отсортированную по имени машины.
func (m *MemStorage) LoadCredentials(_ context.Context) ([]models.Credential, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Credential, 0, len(m.creds))
	for machine, key := range m.creds {
		out = append(out, models.Credential{Machine: machine, Key: key})
	}
	slices.SortFunc(out, func(a, b models.Credential) int {
		return strings.Compare(a.Machine, b.Machine)
	})
	return out, nil
}

// WriteStats применяет всю партию под одной блокировкой.
func (m *MemStorage) WriteStats(_ context.Context, batch []*models.StatsPackage) error {
	floats, ints := CountRows(batch)
	if floats+ints == 0 {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range batch {
		if p == nil {
			continue
		}
		storeSamples(m.floats, p, p.FloatSamples)
		storeSamples(m.ints, p, p.IntSamples)
	}
	return nil
}

func storeSamples[T models.Number](dst map[RowKey]StoredValue[T], p *models.StatsPackage, samples []models.SampleValue[T]) {
	for _, s := range samples {
		dst[RowKey{Machine: p.Machine, StatName: s.Name, Instant: p.TimestampMillis}] = StoredValue[T]{
			Value:   s.Value,
			Quality: s.Quality,
		}
	}
}

// Ping всегда успешен.
func (m *MemStorage) Ping(_ context.Context) error {
	return nil
}

// FloatRows возвращает копию сохранённых вещественных замеров.
func (m *MemStorage) FloatRows() map[RowKey]StoredValue[float32] {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.floats)
}

// IntRows возвращает копию сохранённых целых замеров.
func (m *MemStorage) IntRows() map[RowKey]StoredValue[int32] {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.ints)
}
