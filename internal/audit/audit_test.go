package audit

import (
	"bufio"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/levinOo/fleet-stats-collector/internal/models"
	"go.uber.org/zap"
)

type recordingConsumer struct {
	mu     sync.Mutex
	events []models.AuditEvent
	block  chan struct{}
}

func (r *recordingConsumer) Update(event models.AuditEvent) error {
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recordingConsumer) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func TestAuditerDeliversBeforeStop(t *testing.T) {
	rec := &recordingConsumer{}
	a := NewAuditer(16, zap.NewNop().Sugar())
	a.RegisterClient(rec)
	a.Start()

	for i := 0; i < 10; i++ {
		a.Notify(models.AuditEvent{TS: int64(i), Machine: "m1"})
	}
	a.Stop()

	if got := rec.count(); got != 10 {
		t.Errorf("delivered %d events, want 10", got)
	}

	a.Notify(models.AuditEvent{Machine: "late"})
	a.Stop()
	if got := rec.count(); got != 10 {
		t.Errorf("events after Stop must be ignored, delivered %d", got)
	}
}

// TestAuditerDropsWhenFull проверяет, что переполнение буфера не блокирует отправителя.
func TestAuditerDropsWhenFull(t *testing.T) {
	rec := &recordingConsumer{block: make(chan struct{})}
	a := NewAuditer(2, zap.NewNop().Sugar())
	a.RegisterClient(rec)
	a.Start()

	for i := 0; i < 10; i++ {
		a.Notify(models.AuditEvent{TS: int64(i)})
	}

	// Доставщик держит одно событие, ещё два в буфере, остальные отброшены.
	if dropped := a.Dropped(); dropped < 7 {
		t.Errorf("Dropped() = %d, want at least 7", dropped)
	}

	close(rec.block)
	a.Stop()

	if got := uint64(rec.count()) + a.Dropped(); got != 10 {
		t.Errorf("delivered + dropped = %d, want 10", got)
	}
}

func TestFileAuditer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	fa := NewFileAuditer(path)

	events := []models.AuditEvent{
		{TS: 1, Machine: "m1", MetricNames: []string{"cpu"}, IP: "10.0.0.1"},
		{TS: 2, Machine: "m2", MetricNames: []string{"procs"}, IP: "10.0.0.2"},
	}
	for _, ev := range events {
		if err := fa.Update(ev); err != nil {
			t.Fatalf("Update() error = %v", err)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open audit file: %v", err)
	}
	defer f.Close()

	var got []models.AuditEvent
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var ev models.AuditEvent
		if err := ev.UnmarshalJSON(sc.Bytes()); err != nil {
			t.Fatalf("decode line %q: %v", sc.Text(), err)
		}
		got = append(got, ev)
	}

	if len(got) != 2 || got[0].Machine != "m1" || got[1].IP != "10.0.0.2" {
		t.Errorf("unexpected audit lines: %+v", got)
	}
}

func TestURLAuditer(t *testing.T) {
	var (
		mu   sync.Mutex
		body []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		body, _ = io.ReadAll(r.Body)
		if r.Header.Get("Content-Type") != "application/json" {
			w.WriteHeader(http.StatusUnsupportedMediaType)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ua := NewURLAuditer(srv.URL)
	if err := ua.Update(models.AuditEvent{TS: 5, Machine: "m1"}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	want := `{"ts":5,"machine":"m1","metrics":null,"ip_address":""}`
	if string(body) != want {
		t.Errorf("body = %s, want %s", body, want)
	}
}

func TestURLAuditerErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if err := NewURLAuditer(srv.URL).Update(models.AuditEvent{}); err == nil {
		t.Error("expected error for 500 response")
	}
}

func TestFromConfig(t *testing.T) {
	if a := FromConfig("", "", zap.NewNop().Sugar()); a != nil {
		t.Error("expected nil auditer without sinks")
	}

	a := FromConfig(filepath.Join(t.TempDir(), "a.log"), "", zap.NewNop().Sugar())
	if a == nil {
		t.Fatal("expected auditer for file sink")
	}
	a.Stop()
}
