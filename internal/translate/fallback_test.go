package translate

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/sweep/internal/common"
	"github.com/Veraticus/sweep/internal/observability"
)

func newTestFallback(m *MockTranslator) *Fallback {
	return NewFallback(m, FallbackOptions{
		Delay: time.Millisecond,
		Retry: common.RetryOptions{MaxAttempts: 1},
	})
}

func TestContainsDisallowed(t *testing.T) {
	tests := []struct {
		name            string
		text            string
		allowVietnamese bool
		want            bool
	}{
		{name: "ascii letters", text: "Ha Noi", want: false},
		{name: "digits", text: "Quan 1", want: true},
		{name: "punctuation", text: "Ba Ria-Vung Tau", want: true},
		{name: "cjk", text: "北京", want: true},
		{name: "vietnamese rejected by default", text: "Hà Nội", want: true},
		{name: "vietnamese allowed", text: "Hà Nội", allowVietnamese: true, want: false},
		{name: "cjk still rejected", text: "Hà 北", allowVietnamese: true, want: true},
		{name: "empty", text: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsDisallowed(tt.text, tt.allowVietnamese))
		})
	}
}

func TestFallback_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("clean text skips the translator", func(t *testing.T) {
		m := NewMockTranslator(nil)
		f := newTestFallback(m)

		got, err := f.Resolve(ctx, "Dak Lak")
		require.NoError(t, err)
		assert.Equal(t, "Dak Lak", got)
		assert.Equal(t, 0, m.CallCount())
	})

	t.Run("foreign text is translated", func(t *testing.T) {
		m := NewMockTranslator(map[string]string{"河内": "Hà Nội"})
		f := newTestFallback(m)

		got, err := f.Resolve(ctx, "河内")
		require.NoError(t, err)
		assert.Equal(t, "Hà Nội", got)
	})

	t.Run("untranslatable text becomes Others", func(t *testing.T) {
		m := NewMockTranslator(map[string]string{"東京都": "東京"})
		f := newTestFallback(m)

		got, err := f.Resolve(ctx, "東京都")
		require.NoError(t, err)
		assert.Equal(t, OthersLabel, got)
	})

	t.Run("repeated inputs are memoized", func(t *testing.T) {
		m := NewMockTranslator(map[string]string{"河内": "Hà Nội"})
		f := newTestFallback(m)

		for i := 0; i < 5; i++ {
			got, err := f.Resolve(ctx, "河内")
			require.NoError(t, err)
			assert.Equal(t, "Hà Nội", got)
		}
		assert.Equal(t, 1, m.CallCount())
		assert.Equal(t, 1, f.CacheSize())
	})

	t.Run("concurrent callers share one call", func(t *testing.T) {
		m := NewMockTranslator(map[string]string{"河内": "Hà Nội"})
		f := newTestFallback(m)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				got, err := f.Resolve(ctx, "河内")
				assert.NoError(t, err)
				assert.Equal(t, "Hà Nội", got)
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, m.CallCount())
	})

	t.Run("failures surface and are not cached", func(t *testing.T) {
		errDown := errors.New("service down")
		m := NewMockTranslator(nil)
		m.TranslateFn = func(_ context.Context, _, _ string) (Result, error) {
			return Result{}, errDown
		}
		f := newTestFallback(m)

		_, err := f.Resolve(ctx, "河内")
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrTranslationFailed)
		assert.ErrorIs(t, err, errDown)
		assert.Equal(t, 0, f.CacheSize())
	})
}

func TestFallback_RetriesAreCounted(t *testing.T) {
	m := NewMockTranslator(nil)
	failures := 0
	m.TranslateFn = func(_ context.Context, text, _ string) (Result, error) {
		if failures < 2 {
			failures++
			return Result{}, &common.RetryableError{Err: errors.New("503"), Retryable: true}
		}
		return Result{Original: text, Translated: "Seoul"}, nil
	}

	var seen []int
	f := NewFallback(m, FallbackOptions{
		Delay: time.Millisecond,
		Retry: common.RetryOptions{
			Operation:    "translate-test",
			MaxAttempts:  3,
			InitialDelay: time.Millisecond,
			MaxDelay:     time.Millisecond,
			OnRetry:      func(attempt int, _ error) { seen = append(seen, attempt) },
		},
	})

	got, err := f.Resolve(context.Background(), "서울")
	require.NoError(t, err)
	assert.Equal(t, "Seoul", got)
	assert.Equal(t, []int{1, 2}, seen)

	var metric dto.Metric
	require.NoError(t, observability.Retries.WithLabelValues("translate-test").Write(&metric))
	assert.InDelta(t, 2.0, metric.GetCounter().GetValue(), 0.001)
}

func TestPacer(t *testing.T) {
	p := newPacer(30 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, p.wait(ctx))
	start := time.Now()
	require.NoError(t, p.wait(ctx))
	assert.GreaterOrEqual(t, time.Since(start), 25*time.Millisecond)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	err := p.wait(canceled)
	assert.ErrorIs(t, err, context.Canceled)
}
