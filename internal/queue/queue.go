// Package queue реализует очередь задач между обработчиками запросов и циклом сервера.
// Писателей может быть сколько угодно, читатель один. Очередь устроена как двойной буфер:
// Enqueue дописывает в текущий буфер под коротким мьютексом, а Dequeue подменяет буфер
// пустым и забирает накопленное целиком.
package queue

import (
	"sync"
	"sync/atomic"
)

// TasksQueue — очередь с несколькими производителями и одним потребителем.
// Порядок элементов между разными производителями не гарантируется.
type TasksQueue[T any] struct {
	mu    sync.Mutex
	items []T

	enqueued atomic.Uint64
	drained  atomic.Uint64
}

// New создаёт очередь с начальной ёмкостью буфера capacity.
func New[T any](capacity int) *TasksQueue[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &TasksQueue[T]{items: make([]T, 0, capacity)}
}

// Enqueue добавляет элемент. Никогда не блокируется на вводе-выводе.
func (q *TasksQueue[T]) Enqueue(item T) {
	q.mu.Lock()
	q.items = append(q.items, item)
	q.mu.Unlock()

	q.enqueued.Add(1)
}

// Dequeue атомарно забирает всё содержимое очереди.
// Срез dst очищается и становится новым внутренним буфером, поэтому
// потребитель может передавать сюда результат предыдущего вызова и
// обходиться без лишних аллокаций. Вызывающий не должен использовать dst после вызова.
func (q *TasksQueue[T]) Dequeue(dst []T) []T {
	clear(dst)
	dst = dst[:0]

	q.mu.Lock()
	out := q.items
	q.items = dst
	q.mu.Unlock()

	q.drained.Add(uint64(len(out)))
	return out
}

// Len возвращает количество элементов, ожидающих выборки.
func (q *TasksQueue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Stats возвращает общее число добавленных и выбранных элементов за время жизни очереди.
func (q *TasksQueue[T]) Stats() (enqueued, drained uint64) {
	return q.enqueued.Load(), q.drained.Load()
}
