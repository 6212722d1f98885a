package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
)

// ResilienceConfig bounds the retry/backoff and circuit-breaker behavior
// around provider calls. The verification core never sees any of this: the
// decorator is stateless from its point of view.
type ResilienceConfig struct {
	RetryMaxAttempts    int
	RetryInitialBackoff time.Duration
	RetryMaxBackoff     time.Duration
	RetryMultiplier     float64

	BreakerEnabled          bool
	BreakerMinRequests      uint32
	BreakerFailureRatio     float64
	BreakerOpenTimeout      time.Duration
	BreakerHalfOpenMaxCalls uint32
}

func DefaultResilienceConfig() ResilienceConfig {
	return ResilienceConfig{
		RetryMaxAttempts:    3,
		RetryInitialBackoff: 500 * time.Millisecond,
		RetryMaxBackoff:     5 * time.Second,
		RetryMultiplier:     2.0,

		BreakerEnabled:          true,
		BreakerMinRequests:      10,
		BreakerFailureRatio:     0.5,
		BreakerOpenTimeout:      30 * time.Second,
		BreakerHalfOpenMaxCalls: 2,
	}
}

func (c ResilienceConfig) normalize() ResilienceConfig {
	out := c
	def := DefaultResilienceConfig()

	if out.RetryMaxAttempts <= 0 {
		out.RetryMaxAttempts = def.RetryMaxAttempts
	}
	if out.RetryInitialBackoff <= 0 {
		out.RetryInitialBackoff = def.RetryInitialBackoff
	}
	if out.RetryMaxBackoff < out.RetryInitialBackoff {
		out.RetryMaxBackoff = out.RetryInitialBackoff
	}
	if out.RetryMultiplier < 1.0 {
		out.RetryMultiplier = def.RetryMultiplier
	}
	if out.BreakerMinRequests == 0 {
		out.BreakerMinRequests = def.BreakerMinRequests
	}
	if out.BreakerFailureRatio <= 0 || out.BreakerFailureRatio > 1 {
		out.BreakerFailureRatio = def.BreakerFailureRatio
	}
	if out.BreakerOpenTimeout <= 0 {
		out.BreakerOpenTimeout = def.BreakerOpenTimeout
	}
	if out.BreakerHalfOpenMaxCalls == 0 {
		out.BreakerHalfOpenMaxCalls = def.BreakerHalfOpenMaxCalls
	}
	return out
}

// retryableStatus reports whether a provider status code signals a
// transient condition worth retrying.
func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable:
		return true
	}
	return false
}

// classifyTransportError: context cancellation is never retried; rate-limit
// and upstream-unavailable statuses are; permanent provider errors (e.g.
// unknown model, 404) fail immediately.
func classifyTransportError(err error) (retryable bool) {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return retryableStatus(statusErr.StatusCode)
	}
	// network-level failures (connection reset, DNS) are worth one more try
	return true
}

// ResilientExtractor decorates an Extractor with bounded retry/backoff and
// a circuit breaker. It carries no extraction logic of its own.
type ResilientExtractor struct {
	inner   Extractor
	cfg     ResilienceConfig
	breaker *gobreaker.CircuitBreaker[RawExtraction]
	logger  *slog.Logger
}

func NewResilientExtractor(inner Extractor, cfg ResilienceConfig, logger *slog.Logger) *ResilientExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	cfg = cfg.normalize()

	r := &ResilientExtractor{inner: inner, cfg: cfg, logger: logger}
	if cfg.BreakerEnabled {
		r.breaker = gobreaker.NewCircuitBreaker[RawExtraction](gobreaker.Settings{
			Name:        "llm-extract",
			MaxRequests: cfg.BreakerHalfOpenMaxCalls,
			Timeout:     cfg.BreakerOpenTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				if counts.Requests < cfg.BreakerMinRequests {
					return false
				}
				return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.BreakerFailureRatio
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn("llm.breaker.state_change", "name", name, "from", from.String(), "to", to.String())
			},
		})
	}
	return r
}

func (r *ResilientExtractor) Extract(ctx context.Context, req ExtractRequest) (RawExtraction, []byte, error) {
	if r.breaker == nil {
		return r.extractWithRetry(ctx, req)
	}
	var raw []byte
	out, err := r.breaker.Execute(func() (RawExtraction, error) {
		ex, rawJSON, exErr := r.extractWithRetry(ctx, req)
		raw = rawJSON
		return ex, exErr
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return RawExtraction{}, nil, fmt.Errorf("llm backend unavailable: %w", err)
		}
		return RawExtraction{}, raw, err
	}
	return out, raw, nil
}

func (r *ResilientExtractor) extractWithRetry(ctx context.Context, req ExtractRequest) (RawExtraction, []byte, error) {
	backoff := r.cfg.RetryInitialBackoff

	var lastErr error
	var lastRaw []byte
	for attempt := 1; attempt <= r.cfg.RetryMaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return RawExtraction{}, lastRaw, err
		}

		out, raw, err := r.inner.Extract(ctx, req)
		if err == nil {
			return out, raw, nil
		}
		lastErr, lastRaw = err, raw

		if !classifyTransportError(err) || attempt == r.cfg.RetryMaxAttempts {
			return RawExtraction{}, lastRaw, err
		}

		wait := backoff
		if wait > r.cfg.RetryMaxBackoff {
			wait = r.cfg.RetryMaxBackoff
		}
		r.logger.Warn("llm.extract.retry",
			"attempt", attempt,
			"max_attempts", r.cfg.RetryMaxAttempts,
			"backoff_ms", wait.Milliseconds(),
			"error", err,
		)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return RawExtraction{}, lastRaw, lastErr
		case <-timer.C:
		}
		backoff = time.Duration(float64(backoff) * r.cfg.RetryMultiplier)
	}
	return RawExtraction{}, lastRaw, lastErr
}
