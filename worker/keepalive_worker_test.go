package worker

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestStartDisabledWithoutTarget(t *testing.T) {
	kw := NewKeepAliveWorker("", testLogger())

	done := make(chan struct{})
	go func() {
		kw.Start(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Start should return immediately when no target is set")
	}
}

func TestPingSuccess(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	kw := NewKeepAliveWorker(srv.URL, testLogger())
	if err := kw.ping(context.Background()); err != nil {
		t.Fatalf("ping failed: %v", err)
	}
	if atomic.LoadInt32(&hits) != 1 {
		t.Errorf("server hits = %d, want 1", hits)
	}
}

func TestPingRejectsNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	kw := NewKeepAliveWorker(srv.URL, testLogger())
	if err := kw.ping(context.Background()); err == nil {
		t.Error("ping should fail on non-200 response")
	}
}

func TestStartStopsOnContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	kw := NewKeepAliveWorker(srv.URL, testLogger())
	kw.Interval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		kw.Start(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}

func TestDefaults(t *testing.T) {
	kw := NewKeepAliveWorker("https://example.com/keep-alive", testLogger())
	if kw.Interval != 10*time.Minute {
		t.Errorf("Interval = %v, want 10m", kw.Interval)
	}
	if kw.ErrorBackoff != 60*time.Second {
		t.Errorf("ErrorBackoff = %v, want 60s", kw.ErrorBackoff)
	}
	if kw.Client.Timeout != 30*time.Second {
		t.Errorf("Client timeout = %v, want 30s", kw.Client.Timeout)
	}
}
