package cli

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestRunServeStopsOnCancel(t *testing.T) {
	var logs bytes.Buffer
	c := New(&logs, LogInfo)
	ctx, cancel := context.WithCancel(withLogger(context.Background(), c.Logger))

	done := make(chan error, 1)
	go func() { done <- c.runServe(ctx, &logs, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("runServe() = %v, want nil after cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("runServe() did not stop")
	}
	if !bytes.Contains(logs.Bytes(), []byte("listening")) {
		t.Errorf("expected a listening log line, got %q", logs.String())
	}
}

func TestRunServeListenError(t *testing.T) {
	var logs bytes.Buffer
	c := New(&logs, LogInfo)
	ctx := withLogger(context.Background(), c.Logger)

	if err := c.runServe(ctx, &logs, "127.0.0.1:-1"); err == nil {
		t.Fatal("runServe() with an invalid address should fail")
	}
}
