package main

import (
	"context"
	"errors"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type fakeServer struct {
	listenErr   error
	listenDelay time.Duration

	shutdownErr    error
	shutdownCalled bool
	closeCalled    bool
}

func (f *fakeServer) ListenAndServe() error {
	if f.listenDelay > 0 {
		time.Sleep(f.listenDelay)
	}
	if f.listenErr != nil {
		return f.listenErr
	}
	select {} // block like a real server
}

func (f *fakeServer) Shutdown(ctx context.Context) error {
	f.shutdownCalled = true
	return f.shutdownErr
}

func (f *fakeServer) Close() error {
	f.closeCalled = true
	return nil
}

func (f *fakeServer) Addr() string { return ":0" }

func TestRun_BootstrapFailure(t *testing.T) {
	build := func() (httpServer, func(), error) {
		return nil, nil, errors.New("boom")
	}

	code := Run(build, make(chan os.Signal), zerolog.Nop())
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
}

func TestRun_GracefulShutdownOnSignal(t *testing.T) {
	srv := &fakeServer{}
	cleanupCalled := false
	build := func() (httpServer, func(), error) {
		return srv, func() { cleanupCalled = true }, nil
	}

	sigCh := make(chan os.Signal, 1)
	go func() {
		time.Sleep(50 * time.Millisecond)
		sigCh <- syscall.SIGTERM
	}()

	code := Run(build, sigCh, zerolog.Nop())
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !srv.shutdownCalled {
		t.Fatalf("expected Shutdown to be called")
	}
	if !cleanupCalled {
		t.Fatalf("expected cleanup to run")
	}
}

func TestRun_ServerCrash(t *testing.T) {
	srv := &fakeServer{listenErr: errors.New("bind failed"), listenDelay: 10 * time.Millisecond}
	build := func() (httpServer, func(), error) {
		return srv, func() {}, nil
	}

	code := Run(build, make(chan os.Signal), zerolog.Nop())
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
}

func TestRun_ForcedCloseWhenShutdownFails(t *testing.T) {
	srv := &fakeServer{shutdownErr: errors.New("hung connections")}
	build := func() (httpServer, func(), error) {
		return srv, func() {}, nil
	}

	sigCh := make(chan os.Signal, 1)
	go func() {
		time.Sleep(50 * time.Millisecond)
		sigCh <- syscall.SIGTERM
	}()

	code := Run(build, sigCh, zerolog.Nop())
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !srv.closeCalled {
		t.Fatalf("expected Close after failed shutdown")
	}
}
