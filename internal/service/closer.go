package service

import "sync"

// Closer — сигнал остановки сервера. Его взводит запрос /close или системный сигнал,
// а цикл сервера проверяет его между итерациями.
type Closer struct {
	once sync.Once
	ch   chan struct{}
}

// NewCloser создаёт невзведённый сигнал.
func NewCloser() *Closer {
	return &Closer{ch: make(chan struct{})}
}

// RequestClosure взводит сигнал. Повторные вызовы ничего не делают.
func (c *Closer) RequestClosure() {
	c.once.Do(func() { close(c.ch) })
}

// Done возвращает канал, закрывающийся при взведении сигнала.
func (c *Closer) Done() <-chan struct{} {
	return c.ch
}

// Requested сообщает, взведён ли сигнал.
func (c *Closer) Requested() bool {
	select {
	case <-c.ch:
		return true
	default:
		return false
	}
}
