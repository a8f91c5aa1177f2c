package extract

import (
	"strings"

	"github.com/Veraticus/sweep/internal/model"
)

// NoGift is returned when a product name mentions no gift.
const NoGift = "NO GIFT"

// GiftOptions configures gift extraction.
type GiftOptions struct {
	Token      string // generic gift word, e.g. TẶNG
	CardMarker string // keys containing it keep their value verbatim
	Rules      []model.GiftRule
}

// DefaultGiftOptions returns the Vietnamese gift vocabulary.
func DefaultGiftOptions() GiftOptions {
	return GiftOptions{
		Token:      "TẶNG",
		CardMarker: "THẺ QUÀ TẶNG",
	}
}

// Gift extracts the promotional gift attached to a product name.
//
// Precedence: the first rule whose key occurs in the name; then the text
// after the gift token inside the first bracket mentioning it; then the
// text after the token anywhere in the name.
func Gift(productName string, opts GiftOptions) string {
	token := strings.ToUpper(opts.Token)

	for _, rule := range opts.Rules {
		if rule.Key == "" || !strings.Contains(productName, rule.Key) {
			continue
		}
		if opts.CardMarker != "" && strings.Contains(rule.Key, opts.CardMarker) {
			return strings.ToUpper(rule.Value)
		}
		value := strings.ToUpper(rule.Value)
		if token != "" {
			value = strings.ReplaceAll(value, token, "")
		}
		return strings.TrimSpace(value)
	}

	if token == "" {
		return NoGift
	}

	for _, bracket := range Brackets(productName) {
		if gift, ok := after(strings.ToUpper(bracket), token); ok {
			return gift
		}
	}

	if gift, ok := after(strings.ToUpper(productName), token); ok {
		return gift
	}

	return NoGift
}

func after(s, token string) (string, bool) {
	_, rest, found := strings.Cut(s, token)
	if !found {
		return "", false
	}
	return strings.TrimSpace(rest), true
}
