package startup

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func fastBackoff() Backoff {
	return Backoff{
		InitialDelay: time.Millisecond,
		MaxDelay:     2 * time.Millisecond,
		MaxAttempts:  3,
		Multiplier:   2.0,
	}
}

func TestProbeSucceedsFirstTry(t *testing.T) {
	calls := 0
	err := Probe(context.Background(), "test", fastBackoff(), func() error {
		calls++
		return nil
	}, zerolog.Nop())

	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if calls != 1 {
		t.Errorf("fn called %d times, want 1", calls)
	}
}

func TestProbeRetriesNetworkErrors(t *testing.T) {
	calls := 0
	err := Probe(context.Background(), "test", fastBackoff(), func() error {
		calls++
		if calls < 3 {
			return errors.New("dial tcp 127.0.0.1:80: connection refused")
		}
		return nil
	}, zerolog.Nop())

	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if calls != 3 {
		t.Errorf("fn called %d times, want 3", calls)
	}
}

func TestProbeDoesNotRetryOtherErrors(t *testing.T) {
	calls := 0
	wantErr := errors.New("bad credentials")
	err := Probe(context.Background(), "test", fastBackoff(), func() error {
		calls++
		return wantErr
	}, zerolog.Nop())

	if !errors.Is(err, wantErr) {
		t.Fatalf("Probe returned %v", err)
	}
	if calls != 1 {
		t.Errorf("non-network error retried %d times", calls)
	}
}

func TestProbeExhaustsAttempts(t *testing.T) {
	calls := 0
	err := Probe(context.Background(), "test", fastBackoff(), func() error {
		calls++
		return &net.DNSError{Err: "no such host", Name: "example.invalid"}
	}, zerolog.Nop())

	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if calls != 3 {
		t.Errorf("fn called %d times, want 3", calls)
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"dns error", &net.DNSError{Err: "no such host"}, true},
		{"connection refused text", errors.New("dial tcp: connection refused"), true},
		{"plain error", errors.New("invalid response"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isTransient(tt.err); got != tt.want {
				t.Errorf("isTransient(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
