package queue

import (
	"fmt"
	"sync"
	"testing"
)

func TestEnqueueDequeue(t *testing.T) {
	q := New[int](4)

	for i := 0; i < 10; i++ {
		q.Enqueue(i)
	}
	if got := q.Len(); got != 10 {
		t.Fatalf("Len() = %d, want 10", got)
	}

	items := q.Dequeue(nil)
	if len(items) != 10 {
		t.Fatalf("expected 10 items, got %d", len(items))
	}
	for i, v := range items {
		if v != i {
			t.Errorf("items[%d] = %d, want %d", i, v, i)
		}
	}

	if got := q.Len(); got != 0 {
		t.Errorf("queue must be empty after Dequeue, Len() = %d", got)
	}
	if again := q.Dequeue(nil); len(again) != 0 {
		t.Errorf("second Dequeue returned %d items", len(again))
	}
}

// TestDequeueReusesBuffer проверяет, что переданный буфер становится новым внутренним буфером
// и что старые данные из него не всплывают повторно.
func TestDequeueReusesBuffer(t *testing.T) {
	q := New[string](0)
	q.Enqueue("a")
	q.Enqueue("b")

	first := q.Dequeue(nil)
	if len(first) != 2 {
		t.Fatalf("expected 2 items, got %d", len(first))
	}

	q.Enqueue("c")
	second := q.Dequeue(first)
	if len(second) != 1 || second[0] != "c" {
		t.Fatalf("unexpected second batch: %v", second)
	}

	third := q.Dequeue(second)
	if len(third) != 0 {
		t.Fatalf("expected empty batch, got %v", third)
	}
}

// TestConcurrentProducers проверяет, что при параллельной записи и выборке
// ни один элемент не теряется и не дублируется.
func TestConcurrentProducers(t *testing.T) {
	const (
		producers = 16
		perWorker = 2000
	)

	q := New[string](64)

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				q.Enqueue(fmt.Sprintf("%d-%d", p, i))
			}
		}(p)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	seen := make(map[string]int, producers*perWorker)
	var buf []string
	collect := func() {
		buf = q.Dequeue(buf)
		for _, item := range buf {
			seen[item]++
		}
	}

loop:
	for {
		select {
		case <-done:
			break loop
		default:
			collect()
		}
	}
	collect()

	if len(seen) != producers*perWorker {
		t.Fatalf("expected %d distinct items, got %d", producers*perWorker, len(seen))
	}
	for item, n := range seen {
		if n != 1 {
			t.Errorf("item %s seen %d times", item, n)
		}
	}

	enqueued, drained := q.Stats()
	if enqueued != producers*perWorker || drained != producers*perWorker {
		t.Errorf("Stats() = (%d, %d), want both %d", enqueued, drained, producers*perWorker)
	}
}

func BenchmarkEnqueueParallel(b *testing.B) {
	q := New[int](1024)
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			q.Enqueue(i)
			i++
		}
	})
}
