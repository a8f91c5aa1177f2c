package geo

import (
	"context"
	"log/slog"
)

// Resolver converts text containing foreign characters into the target
// script. The translate package's Fallback implements it.
type Resolver interface {
	Resolve(ctx context.Context, text string) (string, error)
}

// Cleaner runs the full geography pipeline:
// normalize, resolve foreign text, normalize again, canonical lookup.
type Cleaner struct {
	normalizer *Normalizer
	resolver   Resolver
	lookup     *Lookup
}

// NewCleaner creates a cleaner. A nil resolver skips translation and a nil
// lookup passes cleaned names through.
func NewCleaner(normalizer *Normalizer, resolver Resolver, lookup *Lookup) *Cleaner {
	if normalizer == nil {
		normalizer = DefaultNormalizer()
	}
	return &Cleaner{
		normalizer: normalizer,
		resolver:   resolver,
		lookup:     lookup,
	}
}

// Clean returns the standardized label for a raw geography string.
// Translation failures leave the normalized text unresolved.
func (c *Cleaner) Clean(ctx context.Context, raw string) string {
	text := c.normalizer.Normalize(raw)

	if c.resolver != nil {
		resolved, err := c.resolver.Resolve(ctx, text)
		if err != nil {
			slog.Warn("Leaving geography unresolved", "text", text, "error", err)
		} else {
			text = c.normalizer.Normalize(resolved)
		}
	}

	return c.lookup.Canonical(text)
}
