package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSleeper struct {
	delays []time.Duration
}

func (r *recordingSleeper) sleep(_ context.Context, d time.Duration) error {
	r.delays = append(r.delays, d)
	return nil
}

func TestLinearDo(t *testing.T) {
	boom := errors.New("boom")

	t.Run("three failures wait 5s, 10s and 15s then give up", func(t *testing.T) {
		rec := &recordingSleeper{}
		calls := 0
		var retried []int
		policy := Linear{
			Attempts: 3,
			Step:     5 * time.Second,
			Sleep:    rec.sleep,
			OnRetry:  func(attempt int, _ error) { retried = append(retried, attempt) },
		}

		err := policy.Do(context.Background(), func(context.Context) error {
			calls++
			return boom
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrExhausted)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 3, calls)
		assert.Equal(t, []time.Duration{5 * time.Second, 10 * time.Second, 15 * time.Second}, rec.delays)
		assert.Equal(t, []int{1, 2, 3}, retried)
	})

	t.Run("success stops retrying", func(t *testing.T) {
		rec := &recordingSleeper{}
		calls := 0
		policy := Linear{Attempts: 3, Step: time.Second, Sleep: rec.sleep}

		err := policy.Do(context.Background(), func(context.Context) error {
			calls++
			if calls < 2 {
				return boom
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 2, calls)
		assert.Equal(t, []time.Duration{time.Second}, rec.delays)
	})

	t.Run("cancellation interrupts the backoff", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		policy := Linear{Attempts: 3, Step: time.Hour}

		err := policy.Do(ctx, func(context.Context) error { return boom })

		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		assert.NotErrorIs(t, err, ErrExhausted)
	})
}

func TestSleep(t *testing.T) {
	start := time.Now()
	require.NoError(t, Sleep(context.Background(), 20*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, Sleep(ctx, time.Hour), context.DeadlineExceeded)
}
