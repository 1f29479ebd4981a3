package agent

import (
	"compress/gzip"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"syscall"
	"testing"
	"time"

	"github.com/levinOo/fleet-stats-collector/internal/auth"
	"github.com/levinOo/fleet-stats-collector/internal/handler"
	"github.com/levinOo/fleet-stats-collector/internal/models"
	"github.com/levinOo/fleet-stats-collector/internal/queue"
	"github.com/levinOo/fleet-stats-collector/internal/repository"
	"go.uber.org/zap"
)

func testSample() models.StatsSample {
	return models.StatsSample{
		Time:         1700000000000,
		Machine:      "m1",
		StatsFloat32: []models.StatEntryFloat32{{StatName: "cpu_usage_percentage", StatValue: 10}},
		StatsInt32:   []models.StatEntryInt32{{StatName: "process_count", StatValue: 99}},
	}
}

func shortRetries(t *testing.T) {
	t.Helper()
	saved := retryIntervals
	retryIntervals = []time.Duration{time.Millisecond, time.Millisecond, time.Millisecond}
	t.Cleanup(func() { retryIntervals = saved })
}

type closerFunc func()

func (f closerFunc) RequestClosure() { f() }

func TestClientAgainstCollector(t *testing.T) {
	storage := repository.NewMemStorage(models.Credential{Machine: "m1", Key: "k1"})
	a := auth.New(storage)
	if err := a.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	q := queue.New[*models.StatsPackage](4)
	closed := make(chan struct{}, 1)

	router := handler.NewRouter(handler.Services{
		Auth:    a,
		Queue:   q,
		Closer:  closerFunc(func() { closed <- struct{}{} }),
		Storage: storage,
	}, zap.NewNop().Sugar())
	ts := httptest.NewServer(router)
	defer ts.Close()

	c := NewClient(ts.URL, zap.NewNop().Sugar())

	ok, err := c.SendStatsSample(context.Background(), "k1", testSample())
	if err != nil || !ok {
		t.Fatalf("SendStatsSample() = %v, %v; want true, nil", ok, err)
	}
	ok, err = c.SendStatsSample(context.Background(), "wrong", testSample())
	if err != nil || ok {
		t.Fatalf("SendStatsSample() with wrong key = %v, %v; want false, nil", ok, err)
	}
	if q.Len() != 1 {
		t.Errorf("collector queued %d packages, want 1", q.Len())
	}

	ok, err = c.CloseService(context.Background())
	if err != nil || !ok {
		t.Fatalf("CloseService() = %v, %v", ok, err)
	}
	select {
	case <-closed:
	default:
		t.Error("collector did not receive closure request")
	}
}

func TestClientSendsGzip(t *testing.T) {
	var gotEncoding string
	var gotBody models.SendStatsSampleRequest

	ts := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		gotEncoding = r.Header.Get("Content-Encoding")
		zr, err := gzip.NewReader(r.Body)
		if err != nil {
			http.Error(rw, err.Error(), http.StatusBadRequest)
			return
		}
		data, _ := io.ReadAll(zr)
		if err := gotBody.UnmarshalJSON(data); err != nil {
			http.Error(rw, err.Error(), http.StatusBadRequest)
			return
		}
		rw.Write([]byte(`{"status":true}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, zap.NewNop().Sugar())
	if _, err := c.SendStatsSample(context.Background(), "k1", testSample()); err != nil {
		t.Fatalf("SendStatsSample() error = %v", err)
	}

	if gotEncoding != "gzip" {
		t.Errorf("Content-Encoding = %q, want gzip", gotEncoding)
	}
	if gotBody.Key != "k1" || gotBody.Payload.Machine != "m1" || len(gotBody.Payload.StatsInt32) != 1 {
		t.Errorf("unexpected request body %+v", gotBody)
	}
}

func TestClientErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(rw http.ResponseWriter, _ *http.Request) {
				http.Error(rw, "boom", http.StatusInternalServerError)
			},
		},
		{
			name: "bad request",
			handler: func(rw http.ResponseWriter, _ *http.Request) {
				http.Error(rw, "malformed", http.StatusBadRequest)
			},
		},
		{
			name: "broken response",
			handler: func(rw http.ResponseWriter, _ *http.Request) {
				rw.Write([]byte(`{"status":`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(tt.handler)
			defer ts.Close()

			c := NewClient(ts.URL, zap.NewNop().Sugar())
			ok, err := c.SendStatsSample(context.Background(), "k1", testSample())
			if err == nil || ok {
				t.Errorf("SendStatsSample() = %v, %v; want false and an error", ok, err)
			}
		})
	}
}

func freeAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()
	return addr
}

func TestClientRetriesRefusedConnection(t *testing.T) {
	shortRetries(t)

	c := NewClient(freeAddr(t), zap.NewNop().Sugar())
	_, err := c.CloseService(context.Background())
	if !errors.Is(err, syscall.ECONNREFUSED) {
		t.Fatalf("CloseService() error = %v, want ECONNREFUSED", err)
	}
}

func TestClientRetryStopsOnCancel(t *testing.T) {
	saved := retryIntervals
	retryIntervals = []time.Duration{time.Hour}
	defer func() { retryIntervals = saved }()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c := NewClient(freeAddr(t), zap.NewNop().Sugar())
	start := time.Now()
	_, err := c.CloseService(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("CloseService() error = %v, want deadline exceeded", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Error("retry did not stop on context cancel")
	}
}

func TestNewClientEndpoint(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{"localhost:8080", "http://localhost:8080"},
		{"http://collector:9000/", "http://collector:9000"},
		{"https://collector", "https://collector"},
	}

	for _, tt := range tests {
		if got := NewClient(tt.addr, zap.NewNop().Sugar()).endpoint; got != tt.want {
			t.Errorf("NewClient(%q).endpoint = %q, want %q", tt.addr, got, tt.want)
		}
	}
}
