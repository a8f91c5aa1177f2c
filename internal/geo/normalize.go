// Package geo cleans free-text geography fields into canonical province labels.
package geo

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	dashPattern       = regexp.MustCompile(`[-–]`)
	genericTinhSuffix = regexp.MustCompile(`\btinh\b`)
)

// NormalizerConfig holds the fixed tables used by a Normalizer.
type NormalizerConfig struct {
	CharMap      map[string]string // letters generic decomposition does not fold
	Stopwords    []string          // removed on word boundaries, lower-case ASCII
	SpecialCases []string          // literal forms that bypass suffix stripping
	Aliases      [][2]string       // ordered (variant, canonical) pairs
}

// DefaultNormalizerConfig returns the tables for Vietnamese province names.
func DefaultNormalizerConfig() NormalizerConfig {
	return NormalizerConfig{
		CharMap: map[string]string{
			"đ": "d",
			"Đ": "D",
			"ð": "d",
			"Ð": "D",
		},
		Stopwords:    []string{"thanh pho", "pho", "province", "city"},
		SpecialCases: []string{"ha tinh"},
		Aliases: [][2]string{
			{"dac lak", "dak lak"},
			{"lau dai dac lac", "dak lak"},
			{"tan an", "long an"},
		},
	}
}

// Normalizer strips accents, stopwords and known misspellings from
// geography strings. It is safe for concurrent use.
type Normalizer struct {
	charMap   *strings.Replacer
	stopwords *regexp.Regexp
	cfg       NormalizerConfig
}

// NewNormalizer compiles a normalizer from its tables.
func NewNormalizer(cfg NormalizerConfig) *Normalizer {
	pairs := make([]string, 0, len(cfg.CharMap)*2)
	for from, to := range cfg.CharMap {
		pairs = append(pairs, from, to)
	}

	n := &Normalizer{
		cfg:     cfg,
		charMap: strings.NewReplacer(pairs...),
	}

	if len(cfg.Stopwords) > 0 {
		quoted := make([]string, len(cfg.Stopwords))
		for i, w := range cfg.Stopwords {
			quoted[i] = regexp.QuoteMeta(w)
		}
		n.stopwords = regexp.MustCompile(`\b(` + strings.Join(quoted, "|") + `)\b`)
	}

	return n
}

// DefaultNormalizer returns a normalizer for Vietnamese province names.
func DefaultNormalizer() *Normalizer {
	return NewNormalizer(DefaultNormalizerConfig())
}

// Normalize returns the cleaned, title-cased form of a geography string.
// Normalize(Normalize(s)) == Normalize(s).
func (n *Normalizer) Normalize(raw string) string {
	text := StripAccents(raw)
	text = n.charMap.Replace(text)
	text = squash(strings.ToLower(text))

	if n.stopwords != nil {
		text = squash(n.stopwords.ReplaceAllString(text, ""))
	}

	// Special cases and aliases only ever see squashed text.
	special := false
	for _, sc := range n.cfg.SpecialCases {
		if strings.Contains(text, sc) {
			text = sc
			special = true
			break
		}
	}

	if !special {
		text = squash(genericTinhSuffix.ReplaceAllString(text, ""))
		for _, alias := range n.cfg.Aliases {
			if strings.Contains(text, alias[0]) {
				text = alias[1]
				break
			}
		}
	}

	// Casers carry state, so each call gets its own.
	return cases.Title(language.Und).String(text)
}

// squash turns dashes into spaces and collapses whitespace runs.
func squash(text string) string {
	return strings.Join(strings.Fields(dashPattern.ReplaceAllString(text, " ")), " ")
}

// StripAccents decomposes text and drops all combining marks.
func StripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
