package translate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"golang.org/x/sync/singleflight"

	"github.com/Veraticus/sweep/internal/common"
	"github.com/Veraticus/sweep/internal/observability"
)

// OthersLabel replaces text that is still foreign after translation.
const OthersLabel = "Others"

// DefaultDelay is the minimum pause between translation calls.
const DefaultDelay = 500 * time.Millisecond

const vietnameseLetters = "àáạảãâầấậẩẫăằắặẳẵèéẹẻẽêềếệểễìíịỉĩòóọỏõôồốộổỗơờớợởỡùúụủũưừứựửữỳýỵỷỹđ" +
	"ÀÁẠẢÃÂẦẤẬẨẪĂẰẮẶẲẴÈÉẸẺẼÊỀẾỆỂỄÌÍỊỈĨÒÓỌỎÕÔỒỐỘỔỖƠỜỚỢỞỠÙÚỤỦŨƯỪỨỰỬỮỲÝỴỶỸĐ"

// FallbackOptions configures a Fallback.
type FallbackOptions struct {
	TargetLanguage string
	Delay          time.Duration
	Retry          common.RetryOptions
}

// Fallback resolves geography strings containing foreign characters by
// translating them. Results are memoized per distinct input, so repeated
// strings across rows and chunks cost one network call.
type Fallback struct {
	translator Translator
	pacer      *pacer
	cache      *translationCache
	group      singleflight.Group
	target     string
	retry      common.RetryOptions
}

// NewFallback wraps a translator with pacing and memoization.
func NewFallback(translator Translator, opts FallbackOptions) *Fallback {
	target := opts.TargetLanguage
	if target == "" {
		target = DefaultTargetLanguage
	}

	delay := opts.Delay
	if delay == 0 {
		delay = DefaultDelay
	}

	retry := opts.Retry
	if retry.Operation == "" {
		retry.Operation = "translate"
	}
	retries := observability.Retries.WithLabelValues(retry.Operation)
	onRetry := retry.OnRetry
	retry.OnRetry = func(attempt int, err error) {
		retries.Inc()
		if onRetry != nil {
			onRetry(attempt, err)
		}
	}

	return &Fallback{
		translator: translator,
		pacer:      newPacer(delay),
		cache:      newTranslationCache(),
		target:     target,
		retry:      retry,
	}
}

// Resolve returns text unchanged when it only holds ASCII letters and
// whitespace. Otherwise it returns the translation, or OthersLabel when the
// translation still holds disallowed characters. Translation failures are
// returned as errors and are not memoized.
func (f *Fallback) Resolve(ctx context.Context, text string) (string, error) {
	if !ContainsDisallowed(text, false) {
		observability.Translations.WithLabelValues("skipped").Inc()
		return text, nil
	}

	if resolved, ok := f.cache.get(text); ok {
		observability.Translations.WithLabelValues("cached").Inc()
		return resolved, nil
	}

	v, err, _ := f.group.Do(text, func() (any, error) {
		if resolved, ok := f.cache.get(text); ok {
			return resolved, nil
		}

		resolved, err := f.translate(ctx, text)
		if err != nil {
			return "", err
		}

		f.cache.set(text, resolved)
		return resolved, nil
	})
	if err != nil {
		observability.Translations.WithLabelValues("error").Inc()
		return "", fmt.Errorf("%w: %q: %w", common.ErrTranslationFailed, text, err)
	}

	return v.(string), nil
}

// CacheSize reports how many distinct inputs have been resolved.
func (f *Fallback) CacheSize() int {
	return f.cache.size()
}

func (f *Fallback) translate(ctx context.Context, text string) (string, error) {
	var result Result
	err := common.WithRetry(ctx, func() error {
		if err := f.pacer.wait(ctx); err != nil {
			return &common.RetryableError{Err: err, Retryable: false}
		}

		r, err := f.translator.Translate(ctx, text, f.target)
		if err != nil {
			return err
		}
		result = r
		return nil
	}, f.retry)
	if err != nil {
		return "", err
	}

	if ContainsDisallowed(result.Translated, true) {
		slog.Debug("Translation still foreign", "original", text, "translated", result.Translated)
		observability.Translations.WithLabelValues("others").Inc()
		return OthersLabel, nil
	}

	slog.Debug("Translated geography", "original", text, "translated", result.Translated)
	observability.Translations.WithLabelValues("translated").Inc()
	return result.Translated, nil
}

// ContainsDisallowed reports whether text holds anything other than ASCII
// letters and whitespace. With allowVietnamese, Vietnamese letters are
// accepted as well.
func ContainsDisallowed(text string, allowVietnamese bool) bool {
	for _, r := range text {
		switch {
		case r < unicode.MaxASCII && unicode.IsLetter(r):
		case unicode.IsSpace(r):
		case allowVietnamese && strings.ContainsRune(vietnameseLetters, r):
		default:
			return true
		}
	}
	return false
}
