package translate

import (
	"context"
	"fmt"
	"sync"
)

// MockTranslator is a map-backed Translator for tests.
type MockTranslator struct {
	// Translations maps input text to its translation.
	Translations map[string]string
	// TranslateFn overrides the map lookup when set.
	TranslateFn func(ctx context.Context, text, targetLang string) (Result, error)

	// Call tracking
	Calls []string
	mu    sync.Mutex
}

// NewMockTranslator creates a mock answering from the given map.
func NewMockTranslator(translations map[string]string) *MockTranslator {
	if translations == nil {
		translations = map[string]string{}
	}
	return &MockTranslator{Translations: translations}
}

// Translate implements Translator.
func (m *MockTranslator) Translate(ctx context.Context, text, targetLang string) (Result, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, text)
	m.mu.Unlock()

	if m.TranslateFn != nil {
		return m.TranslateFn(ctx, text, targetLang)
	}

	translated, ok := m.Translations[text]
	if !ok {
		return Result{}, fmt.Errorf("%w: no mock translation for %q", ErrUnexpectedResponse, text)
	}
	return Result{Original: text, Translated: translated}, nil
}

// CallCount returns the number of Translate calls made.
func (m *MockTranslator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
