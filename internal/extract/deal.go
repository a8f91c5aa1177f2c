package extract

import (
	"regexp"
	"strings"

	"github.com/Veraticus/sweep/internal/model"
)

// NoKOL is returned when a product name names neither a KOL nor a deal.
const NoKOL = "No KOLs"

const dealToken = "DEAL"

var bracketPattern = regexp.MustCompile(`\[(.*?)\]`)

// Deal extracts the influencer or deal tag of a product name.
//
// A KOL from the vocabulary wins, in vocabulary order. Otherwise the first
// bracket mentioning DEAL, after dropping brackets that contain an excluded
// phrase, yields the text following DEAL.
func Deal(productName string, exclude, kols model.Vocabulary) string {
	upperName := strings.ToUpper(productName)
	for _, kol := range kols {
		upperKOL := strings.ToUpper(kol)
		if upperKOL != "" && strings.Contains(upperName, upperKOL) {
			return upperKOL
		}
	}

	for _, bracket := range Brackets(productName) {
		if containsAnyFold(bracket, exclude) {
			continue
		}

		upper := strings.ToUpper(bracket)
		idx := strings.Index(upper, dealToken)
		if idx < 0 {
			continue
		}

		rest := upper[idx+len(dealToken):]
		if next := strings.Index(rest, dealToken); next >= 0 {
			rest = rest[:next]
		}
		return strings.TrimSpace(rest)
	}

	return NoKOL
}

// Brackets returns the contents of every [...] group in order.
func Brackets(s string) []string {
	matches := bracketPattern.FindAllStringSubmatch(s, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out
}

func containsAnyFold(s string, phrases model.Vocabulary) bool {
	lower := strings.ToLower(s)
	for _, p := range phrases {
		if p == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}
