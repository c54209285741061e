package retry_test

import (
	"context"
	"testing"
	"time"

	"github.com/ledgerpilot/go-gl-recon/internal/common/retry"
	"github.com/ledgerpilot/go-gl-recon/internal/config"

	"github.com/stretchr/testify/assert"
)

func Test_Retry_ExponentialBackoff(t *testing.T) {
	t.Run("failed - retries exhausted", func(t *testing.T) {
		retryer := retry.NewExponentialBackOff(&config.ExponentialBackOffConfig{MaxRetries: 1})

		var attempts int
		err := retryer.Retry(context.Background(), func() error {
			attempts++
			return assert.AnError
		})

		assert.NotNil(t, err)
		assert.Equal(t, 2, attempts)
	})

	t.Run("success - first attempt", func(t *testing.T) {
		retryer := retry.NewExponentialBackOff(&config.ExponentialBackOffConfig{})

		var attempts int
		err := retryer.Retry(context.Background(), func() error {
			attempts++
			return nil
		})

		assert.Nil(t, err)
		assert.Equal(t, 1, attempts)
	})

	t.Run("success - recovers after failure", func(t *testing.T) {
		retryer := retry.NewExponentialBackOff(&config.ExponentialBackOffConfig{MaxRetries: 5})

		var attempts int
		err := retryer.Retry(context.Background(), func() error {
			attempts++
			if attempts < 3 {
				return assert.AnError
			}
			return nil
		})

		assert.Nil(t, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("failed - force stop retrying", func(t *testing.T) {
		retryer := retry.NewExponentialBackOff(&config.ExponentialBackOffConfig{MaxRetries: 5})

		var attempts int
		err := retryer.Retry(context.Background(), func() error {
			attempts++
			return retryer.StopRetryWithErr(assert.AnError)
		})

		assert.ErrorIs(t, err, assert.AnError)
		assert.Equal(t, 1, attempts)
	})

	t.Run("failed - context cancelled", func(t *testing.T) {
		retryer := retry.NewExponentialBackOff(&config.ExponentialBackOffConfig{MaxRetries: 10})

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		err := retryer.Retry(ctx, func() error {
			return assert.AnError
		})

		assert.NotNil(t, err)
	})
}
