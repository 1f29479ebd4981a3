package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/levinOo/fleet-stats-collector/internal/agent"
	"github.com/levinOo/fleet-stats-collector/internal/agent/counters"
	"github.com/levinOo/fleet-stats-collector/internal/config"
	"github.com/levinOo/fleet-stats-collector/internal/repository"
	"github.com/levinOo/fleet-stats-collector/internal/service"
	"go.uber.org/zap"
)

func TestServer(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		method string
		body   string
		code   int
	}{
		{name: "ping in-memory backend", url: "/ping", method: http.MethodGet, code: http.StatusOK},
		{name: "stats without body", url: "/stats", method: http.MethodPost, code: http.StatusBadRequest},
		{name: "stats with wrong method", url: "/stats", method: http.MethodGet, code: http.StatusMethodNotAllowed},
		{name: "unknown route", url: "/update/gauge/x/1", method: http.MethodPost, code: http.StatusNotFound},
		{
			name:   "stats rejected key",
			url:    "/stats",
			method: http.MethodPost,
			body:   `{"key":"bad","payload":{"time":1,"machine":"m1","statsInt32":[{"statName":"process_count","statValue":1,"quality":0}]}}`,
			code:   http.StatusOK,
		},
	}

	cfg, err := config.Parse([]string{"-a", "127.0.0.1:0", "-creds", "m1:k1"}, map[string]string{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	components, err := service.Setup(context.Background(), cfg, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	defer components.Close()

	ts := httptest.NewServer(components.Handler())
	defer ts.Close()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, ts.URL+tt.url, strings.NewReader(tt.body))
			if err != nil {
				t.Fatalf("new request: %v", err)
			}
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Fatalf("do request: %v", err)
			}
			resp.Body.Close()

			if resp.StatusCode != tt.code {
				t.Errorf("status code = %d, want %d", resp.StatusCode, tt.code)
			}
		})
	}
}

// TestAgentToCollector отправляет замер настоящих счётчиков хоста через сервер
// с хранилищем в памяти и проверяет, что замеры дошли до хранилища.
func TestAgentToCollector(t *testing.T) {
	cfg := config.Config{Addr: "127.0.0.1:0", FlushInterval: 1, Credentials: "m1:k1", LogLevel: "error"}
	components, err := service.Setup(context.Background(), cfg, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- components.Run(context.Background()) }()

	ts := httptest.NewServer(components.Handler())
	defer ts.Close()

	client := agent.NewClient(ts.URL, zap.NewNop().Sugar())
	sample := counters.NewReader(nil).Read(context.Background(), "m1")
	if ok, err := client.SendStatsSample(context.Background(), "k1", sample); err != nil || !ok {
		t.Fatalf("SendStatsSample() = %v, %v", ok, err)
	}

	if ok, err := client.CloseService(context.Background()); err != nil || !ok {
		t.Fatalf("CloseService() = %v, %v", ok, err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("server Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}

	mem := components.Storage().(*repository.MemStorage)
	names := make(map[string]bool)
	for k := range mem.FloatRows() {
		names[k.StatName] = true
	}
	for k := range mem.IntRows() {
		names[k.StatName] = true
	}
	for _, want := range []string{
		counters.CPUUsagePercentage, counters.AvailableMemoryMBytes,
		counters.DiskReadBPS, counters.DiskWriteBPS,
		counters.ProcessCount, counters.ThreadCount,
	} {
		if !names[want] {
			t.Errorf("stat %s was not stored", want)
		}
	}
}
