package extract

import (
	"regexp"
	"strings"
)

var (
	// Anything that is not a word character, whitespace or a period.
	sizeSeparator = regexp.MustCompile(`[^\p{L}\p{N}_\s.]`)
	sizeUnit      = regexp.MustCompile(`(?i)(g|kg|ml)`)
	sizeDigit     = regexp.MustCompile(`\p{Nd}`)
)

// Size returns the first token of productName that carries both a digit and
// a g, kg or ml unit, lower-cased. A token equal to exempt (compared
// case-insensitively) is skipped.
func Size(productName, exempt string) (string, bool) {
	cleaned := sizeSeparator.ReplaceAllString(productName, " ")
	exempt = strings.ToLower(exempt)

	for _, word := range strings.Fields(cleaned) {
		lower := strings.ToLower(word)
		if exempt != "" && lower == exempt {
			continue
		}
		if sizeDigit.MatchString(word) && sizeUnit.MatchString(word) {
			return lower, true
		}
	}

	return "", false
}

// FormatLabels names the package-format categories.
type FormatLabels struct {
	Liquid string
	Powder string
	None   string
}

// DefaultFormatLabels returns the milk-product format labels.
func DefaultFormatLabels() FormatLabels {
	return FormatLabels{
		Liquid: "Liquid Milk",
		Powder: "Milk Powder",
		None:   "No format",
	}
}

// Format derives the package format from an extracted size.
func Format(size string, labels FormatLabels) string {
	lower := strings.ToLower(size)
	switch {
	case strings.Contains(lower, "ml"):
		return labels.Liquid
	case strings.Contains(lower, "g"):
		return labels.Powder
	}
	return labels.None
}
