package extract

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Veraticus/sweep/internal/model"
)

var parenPattern = regexp.MustCompile(`\((.*?)\)`)

// RegionOptions holds the alias tables for warehouse regions. Match keys
// are lower-case and checked in order.
type RegionOptions struct {
	InBrackets []model.AliasRule
	Outside    []model.AliasRule
}

// DefaultRegionOptions returns the warehouse aliases of the export source.
func DefaultRegionOptions() RegionOptions {
	return RegionOptions{
		InBrackets: []model.AliasRule{
			{Match: "q6", Label: "HCM"},
			{Match: "củ chi", Label: "HCM"},
			{Match: "hcm", Label: "HCM"},
			{Match: "tuy hòa", Label: "Phú Yên"},
			{Match: "tuy hoà", Label: "Phú Yên"},
		},
		Outside: []model.AliasRule{
			{Match: "hn", Label: "Hà Nội"},
			{Match: "đn", Label: "Đà Nẵng"},
			{Match: "hcm", Label: "HCM"},
			{Match: "bách hóa sữa bột 2", Label: "HCM"},
		},
	}
}

// Region derives the region of a warehouse name. A parenthesized hint wins:
// it maps through the bracket aliases or is returned title-cased. Without
// one the whole name is checked against the outside aliases.
func Region(warehouse string, opts RegionOptions) string {
	if m := parenPattern.FindStringSubmatch(warehouse); m != nil {
		hint := strings.TrimSpace(m[1])
		if label, ok := matchAlias(strings.ToLower(hint), opts.InBrackets); ok {
			return label
		}
		return cases.Title(language.Und).String(hint)
	}

	if label, ok := matchAlias(strings.ToLower(warehouse), opts.Outside); ok {
		return label
	}

	return warehouse
}

func matchAlias(s string, rules []model.AliasRule) (string, bool) {
	for _, r := range rules {
		if r.Match != "" && strings.Contains(s, r.Match) {
			return r.Label, true
		}
	}
	return "", false
}
