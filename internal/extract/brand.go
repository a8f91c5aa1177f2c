package extract

import (
	"regexp"
	"strings"

	"github.com/Veraticus/sweep/internal/model"
)

// BrandMatcher finds the first brand mentioned in a product name.
type BrandMatcher struct {
	pattern *regexp.Regexp
	casing  map[string]string
}

// NewBrandMatcher compiles an alternation over the vocabulary. Alternatives
// keep vocabulary order, so two brands matching at the same position
// resolve to the earlier entry.
func NewBrandMatcher(brands model.Vocabulary) *BrandMatcher {
	m := &BrandMatcher{casing: make(map[string]string, len(brands))}

	keys := make([]string, 0, len(brands))
	for _, brand := range brands {
		key := strings.ToLower(strings.TrimSpace(brand))
		if key == "" {
			continue
		}
		if _, seen := m.casing[key]; seen {
			continue
		}
		m.casing[key] = brand
		keys = append(keys, regexp.QuoteMeta(key))
	}

	if len(keys) > 0 {
		m.pattern = regexp.MustCompile("(" + strings.Join(keys, "|") + ")")
	}

	return m
}

// Match returns the brand, in its vocabulary casing, of the leftmost match.
func (m *BrandMatcher) Match(productName string) (string, bool) {
	if m.pattern == nil {
		return "", false
	}

	found := m.pattern.FindString(strings.ToLower(productName))
	if found == "" {
		return "", false
	}

	brand, ok := m.casing[found]
	return brand, ok
}
