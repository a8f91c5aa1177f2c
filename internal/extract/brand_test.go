package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/sweep/internal/model"
)

func TestBrandMatcher_Match(t *testing.T) {
	brands := model.Vocabulary{"Grow", "PediaSure", "Ensure", "Similac", "Glucerna"}
	m := NewBrandMatcher(brands)

	tests := []struct {
		name    string
		product string
		want    string
		found   bool
	}{
		{name: "case insensitive", product: "SỮA BỘT ENSURE GOLD 850G", want: "Ensure", found: true},
		{name: "original casing kept", product: "pediasure 400g", want: "PediaSure", found: true},
		{name: "leftmost in text wins", product: "Similac tặng kèm Ensure", want: "Similac", found: true},
		{name: "substring of word", product: "Abbott Grow Gold", want: "Grow", found: true},
		{name: "no brand", product: "Khăn tắm cao cấp", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := m.Match(tt.product)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBrandMatcher_TieBreakByVocabularyOrder(t *testing.T) {
	product := "Ensure Gold 850g"

	first := NewBrandMatcher(model.Vocabulary{"Ensure", "Ensure Gold"})
	got, _ := first.Match(product)
	assert.Equal(t, "Ensure", got)

	second := NewBrandMatcher(model.Vocabulary{"Ensure Gold", "Ensure"})
	got, _ = second.Match(product)
	assert.Equal(t, "Ensure Gold", got)
}

func TestBrandMatcher_EmptyVocabulary(t *testing.T) {
	m := NewBrandMatcher(nil)
	_, ok := m.Match("Ensure")
	assert.False(t, ok)
}

func TestBrandMatcher_QuotesMetacharacters(t *testing.T) {
	m := NewBrandMatcher(model.Vocabulary{"S-26 (Gold)"})
	got, ok := m.Match("Sữa S-26 (Gold) 900g")
	assert.True(t, ok)
	assert.Equal(t, "S-26 (Gold)", got)
}
