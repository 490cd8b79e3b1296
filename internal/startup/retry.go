// Package startup contains boot-time helpers, currently the retry loop
// used to verify upstream connectivity before the server goes live.
package startup

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Backoff configures the exponential retry used during startup checks.
type Backoff struct {
	InitialDelay time.Duration
	MaxDelay     time.Duration
	MaxAttempts  int
	Multiplier   float64
}

// DefaultBackoff suits a warmup probe: fail fast enough that a dead
// upstream does not hold the whole boot hostage.
func DefaultBackoff() Backoff {
	return Backoff{
		InitialDelay: 2 * time.Second,
		MaxDelay:     30 * time.Second,
		MaxAttempts:  4,
		Multiplier:   2.0,
	}
}

// isTransient reports whether err looks like a temporary network failure
// worth retrying. Anything else fails the probe immediately.
func isTransient(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	var dnsErr *net.DNSError
	if errors.As(err, &netErr) || errors.As(err, &dnsErr) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, indicator := range []string{
		"connection refused",
		"connection reset",
		"no such host",
		"timeout",
		"network is unreachable",
		"no route to host",
		"dial tcp",
		"temporary failure in name resolution",
	} {
		if strings.Contains(msg, indicator) {
			return true
		}
	}
	return false
}

// Probe runs fn with exponential backoff, retrying only transient network
// errors. A non-network error aborts the probe on the spot.
func Probe(ctx context.Context, name string, cfg Backoff, fn func() error, logger zerolog.Logger) error {
	delay := cfg.InitialDelay

	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		err := fn()
		if err == nil {
			if attempt > 1 {
				logger.Info().Str("probe", name).Int("attempt", attempt).Msg("Probe succeeded after retry")
			}
			return nil
		}
		lastErr = err

		if !isTransient(err) {
			logger.Error().Err(err).Str("probe", name).Msg("Probe failed with non-network error")
			return err
		}
		if attempt == cfg.MaxAttempts {
			break
		}

		logger.Warn().
			Err(err).
			Str("probe", name).
			Int("attempt", attempt).
			Dur("nextRetryIn", delay).
			Msg("Network error, retrying probe")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}

		delay = time.Duration(float64(delay) * cfg.Multiplier)
		if delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}

	logger.Error().Err(lastErr).Str("probe", name).Int("attempts", cfg.MaxAttempts).Msg("Probe exhausted retries")
	return lastErr
}
