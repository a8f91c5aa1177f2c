package model

// Vocabulary is an ordered list of literal strings configuring a rule.
// Order is the precedence used to break ties between matches.
type Vocabulary []string

// Clone returns an independent copy of the vocabulary.
func (v Vocabulary) Clone() Vocabulary {
	if v == nil {
		return nil
	}
	out := make(Vocabulary, len(v))
	copy(out, v)
	return out
}

// GiftRule maps a literal product-name fragment to a gift label.
type GiftRule struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// AliasRule maps a lower-case hint to a canonical label.
type AliasRule struct {
	Match string `json:"match" yaml:"match"`
	Label string `json:"label" yaml:"label"`
}
