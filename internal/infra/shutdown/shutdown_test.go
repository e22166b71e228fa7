package shutdown

import (
	"context"
	"errors"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"
)

func TestHandler_HooksRunInReverse(t *testing.T) {
	h := NewHandler(time.Second)

	var (
		mu    sync.Mutex
		order []string
	)
	for _, name := range []string{"storage", "sweeper", "http"} {
		name := name
		h.OnShutdown(name, func(context.Context) error {
			mu.Lock()
			order = append(order, name)
			mu.Unlock()
			return nil
		})
	}

	h.Trigger()
	h.Trigger()
	if err := h.Wait(context.Background()); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}

	want := "http,sweeper,storage"
	if got := strings.Join(order, ","); got != want {
		t.Errorf("hook order = %s, want %s", got, want)
	}

	select {
	case <-h.Done():
	default:
		t.Error("Done() not closed after Wait")
	}
}

func TestHandler_HookErrorsJoined(t *testing.T) {
	h := NewHandler(time.Second)
	errA := errors.New("a failed")
	errB := errors.New("b failed")
	ran := 0

	h.OnShutdown("a", func(context.Context) error { ran++; return errA })
	h.OnShutdown("ok", func(context.Context) error { ran++; return nil })
	h.OnShutdown("b", func(context.Context) error { ran++; return errB })

	h.Trigger()
	err := h.Wait(context.Background())
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("Wait() error = %v, want both hook errors", err)
	}
	if ran != 3 {
		t.Errorf("ran %d hooks, want 3", ran)
	}
}

func TestHandler_ContextCancel(t *testing.T) {
	h := NewHandler(time.Second, WithSignals())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := h.Wait(ctx); err != nil {
		t.Errorf("Wait() error = %v", err)
	}
}

func TestHandler_HookDeadline(t *testing.T) {
	h := NewHandler(20 * time.Millisecond)
	h.OnShutdown("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	h.Trigger()
	err := h.Wait(context.Background())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Wait() error = %v, want deadline exceeded", err)
	}
}

func TestHandler_Signal(t *testing.T) {
	h := NewHandler(time.Second, WithSignals(syscall.SIGUSR1))
	called := make(chan struct{})
	h.OnShutdown("hook", func(context.Context) error {
		close(called)
		return nil
	})

	errCh := make(chan error, 1)
	go func() { errCh <- h.Wait(context.Background()) }()

	// Give Wait time to install the signal handler.
	time.Sleep(50 * time.Millisecond)
	if err := syscall.Kill(syscall.Getpid(), syscall.SIGUSR1); err != nil {
		t.Fatalf("Kill() error = %v", err)
	}

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Wait() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Wait() did not return after signal")
	}
	<-called
}
