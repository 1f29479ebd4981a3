// Package pool предоставляет обобщённый пул объектов T, ограниченных Reset().
// Сервер берёт из пула пакеты замеров для принятых запросов и возвращает их после записи партии.
//
//	packages := pool.New(func() *models.StatsPackage { return &models.StatsPackage{} }, 1024)
//	p := packages.Get()
//	// заполнить p и поставить в очередь
//	packages.Put(p)
package pool

import (
	"sync"
)

// Resettable ограничивает тип тем, у кого есть метод Reset()
type Resettable interface {
	Reset()
}

// Pool хранит объекты типа T, ограниченных Resettable.
// T обычно является указателем на структуру, например *models.StatsPackage.
type Pool[T Resettable] struct {
	mu      sync.Mutex
	items   []T
	maxIdle int

	Factory func() T
}

// New создаёт новый Pool[T]. Фабрика должна возвращать новый экземпляр T.
// maxIdle ограничивает число простаивающих объектов, ноль снимает ограничение.
func New[T Resettable](factory func() T, maxIdle int) *Pool[T] {
	return &Pool[T]{Factory: factory, maxIdle: maxIdle}
}

// Get возвращает объект из пула. Если пул пуст, создаёт новый через фабрику.
func (p *Pool[T]) Get() T {
	p.mu.Lock()
	if n := len(p.items); n > 0 {
		v := p.items[n-1]
		var zero T
		p.items[n-1] = zero
		p.items = p.items[:n-1]
		p.mu.Unlock()
		return v
	}
	p.mu.Unlock()

	if p.Factory != nil {
		return p.Factory()
	}
	var zero T
	return zero
}

// Put возвращает объект обратно в пул после вызова Reset().
// Если пул уже заполнен до maxIdle, объект отдаётся сборщику мусора.
func (p *Pool[T]) Put(v T) {
	v.Reset()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.maxIdle > 0 && len(p.items) >= p.maxIdle {
		return
	}
	p.items = append(p.items, v)
}

// Idle возвращает количество объектов, ожидающих повторного использования.
func (p *Pool[T]) Idle() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.items)
}
