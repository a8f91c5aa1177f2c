// Package translate provides the foreign-text fallback used by geography
// cleaning. It wraps an external translation service behind the Translator
// interface, paces calls to respect the service's rate limit, and memoizes
// results for the duration of a run.
package translate
