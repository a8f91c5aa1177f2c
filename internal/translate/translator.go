package translate

import (
	"context"
	"errors"
)

// DefaultTargetLanguage is the language foreign geography is translated to.
const DefaultTargetLanguage = "vi"

var (
	// ErrUnexpectedResponse is returned when the service answers with a shape
	// that is not a translation.
	ErrUnexpectedResponse = errors.New("unexpected translation response")
	// ErrEmptyTranslation is returned when the service translated to nothing.
	ErrEmptyTranslation = errors.New("empty translation")
)

// Translator converts text into a target language.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (Result, error)
}

// Result is a successful translation.
type Result struct {
	Original   string
	Translated string
}
