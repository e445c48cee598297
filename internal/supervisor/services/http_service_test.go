// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package services

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

// fakeServer blocks in ListenAndServe until Shutdown, or returns listenErr
// immediately when it is set.
type fakeServer struct {
	listenErr   error
	shutdownErr error

	started  chan struct{}
	released chan struct{}

	shutdownCalls    int
	shutdownDeadline time.Time
}

func newFakeServer() *fakeServer {
	return &fakeServer{
		started:  make(chan struct{}),
		released: make(chan struct{}),
	}
}

func (f *fakeServer) ListenAndServe() error {
	close(f.started)
	if f.listenErr != nil {
		return f.listenErr
	}
	<-f.released
	return http.ErrServerClosed
}

func (f *fakeServer) Shutdown(ctx context.Context) error {
	f.shutdownCalls++
	f.shutdownDeadline, _ = ctx.Deadline()
	close(f.released)
	return f.shutdownErr
}

// logMessages returns the "message" field of every JSON log line in buf.
func logMessages(t *testing.T, buf *bytes.Buffer) []string {
	t.Helper()

	var msgs []string
	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		var event map[string]interface{}
		if err := json.Unmarshal(scanner.Bytes(), &event); err != nil {
			t.Fatalf("decode log line %q: %v", scanner.Text(), err)
		}
		if event["service"] != "http-server" {
			t.Errorf("log line %q missing service=http-server", scanner.Text())
		}
		msg, _ := event["message"].(string)
		msgs = append(msgs, msg)
	}
	return msgs
}

// serveUntilCanceled starts svc, waits for the listener and cancels.
func serveUntilCanceled(t *testing.T, svc *HTTPServerService, server *fakeServer) error {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	select {
	case <-server.started:
	case <-time.After(time.Second):
		t.Fatal("ListenAndServe was not called")
	}
	cancel()

	select {
	case err := <-errCh:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancellation")
		return nil
	}
}

func TestHTTPServerService_Lifecycle(t *testing.T) {
	tests := []struct {
		name        string
		shutdownErr error
		wantErr     error
		wantLogs    []string
	}{
		{
			name:     "graceful",
			wantErr:  context.Canceled,
			wantLogs: []string{"HTTP server started", "HTTP server shutting down", "HTTP server stopped"},
		},
		{
			name:        "shutdown fails",
			shutdownErr: context.DeadlineExceeded,
			wantErr:     context.DeadlineExceeded,
			wantLogs:    []string{"HTTP server started", "HTTP server shutting down"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			server := newFakeServer()
			server.shutdownErr = tt.shutdownErr
			svc := NewHTTPServerService(server, 3*time.Second, zerolog.New(&buf))

			before := time.Now()
			err := serveUntilCanceled(t, svc, server)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Serve() = %v, want %v", err, tt.wantErr)
			}

			if server.shutdownCalls != 1 {
				t.Errorf("Shutdown calls = %d, want 1", server.shutdownCalls)
			}
			// Shutdown gets its own deadline; the canceled serve context has none.
			if server.shutdownDeadline.IsZero() || server.shutdownDeadline.Before(before.Add(2*time.Second)) {
				t.Errorf("shutdown deadline = %v, want about 3s after %v", server.shutdownDeadline, before)
			}

			got := logMessages(t, &buf)
			if len(got) != len(tt.wantLogs) {
				t.Fatalf("log messages = %q, want %q", got, tt.wantLogs)
			}
			for i := range got {
				if got[i] != tt.wantLogs[i] {
					t.Errorf("log[%d] = %q, want %q", i, got[i], tt.wantLogs[i])
				}
			}
		})
	}
}

func TestHTTPServerService_ListenerExit(t *testing.T) {
	bindErr := errors.New("listen tcp :8501: bind: address already in use")

	tests := []struct {
		name      string
		listenErr error
		wantErr   error
	}{
		{"bind failure is returned", bindErr, bindErr},
		{"closed elsewhere is clean", http.ErrServerClosed, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newFakeServer()
			server.listenErr = tt.listenErr
			svc := NewHTTPServerService(server, time.Second, zerolog.Nop())

			err := svc.Serve(context.Background())
			if tt.wantErr == nil && err != nil {
				t.Fatalf("Serve() = %v, want nil", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("Serve() = %v, want wrapping %v", err, tt.wantErr)
			}
			if server.shutdownCalls != 0 {
				t.Errorf("Shutdown calls = %d, want 0", server.shutdownCalls)
			}
		})
	}
}

func TestHTTPServerService_ShutdownTimeoutDefault(t *testing.T) {
	for _, timeout := range []time.Duration{0, -time.Second} {
		svc := NewHTTPServerService(newFakeServer(), timeout, zerolog.Nop())
		if svc.shutdownTimeout != 10*time.Second {
			t.Errorf("NewHTTPServerService(%v) timeout = %v, want 10s", timeout, svc.shutdownTimeout)
		}
	}
}

func TestHTTPServerService_RealServer(t *testing.T) {
	server := &http.Server{
		Addr:              "127.0.0.1:0",
		Handler:           http.NotFoundHandler(),
		ReadHeaderTimeout: time.Second,
	}
	svc := NewHTTPServerService(server, time.Second, zerolog.Nop())

	sup := suture.New("api-layer", suture.Spec{Timeout: 2 * time.Second})
	sup.Add(svc)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := sup.ServeBackground(ctx)

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-errCh:
	case <-time.After(3 * time.Second):
		t.Fatal("supervisor did not stop the HTTP service")
	}

	if report, err := sup.UnstoppedServiceReport(); err != nil || len(report) != 0 {
		t.Errorf("unstopped services = %v, err = %v", report, err)
	}
}
