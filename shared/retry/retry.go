package retry

import (
	"context"
	"time"

	"github.com/Pawan0019/Hotel-Room-Booking/config"
	"github.com/Pawan0019/Hotel-Room-Booking/shared/metrics"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
)

// Policy bounds how often and how slowly an operation is re-run.
type Policy struct {
	MaxRetries   int
	InitialDelay time.Duration
	MaxDelay     time.Duration
}

func FromConfig(cfg *config.Config) Policy {
	return Policy{
		MaxRetries:   cfg.DB.Tx.MaxRetry,
		InitialDelay: time.Duration(cfg.DB.Tx.InitialDelayMs) * time.Millisecond,
		MaxDelay:     time.Duration(cfg.DB.Tx.MaxDelayMs) * time.Millisecond,
	}
}

func (p Policy) backOff(ctx context.Context) backoff.BackOffContext {
	exp := backoff.NewExponentialBackOff()
	exp.MaxElapsedTime = 0

	if p.InitialDelay > 0 {
		exp.InitialInterval = p.InitialDelay
	}

	if p.MaxDelay > 0 {
		exp.MaxInterval = p.MaxDelay
	}

	retries := p.MaxRetries
	if retries < 0 {
		retries = 0
	}

	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(retries)), ctx)
}

// Do runs op until it succeeds, returns an error that retryable rejects, the policy runs out
// of retries or ctx is done. The last error of op is returned.
func Do(ctx context.Context, name string, policy Policy, retryable func(error) bool, op func() error) error {
	attempt := 0

	return backoff.RetryNotify(func() error { //nolint:wrapcheck
		attempt++

		err := op()
		if err == nil {
			return nil
		}

		if !retryable(err) {
			return backoff.Permanent(err)
		}

		return err
	}, policy.backOff(ctx), func(err error, wait time.Duration) {
		metrics.IncRetry(name)
		log.Warn().
			Err(err).
			Str("operation", name).
			Int("attempt", attempt).
			Dur("wait", wait).
			Msg("retrying after retryable store error")
	})
}
