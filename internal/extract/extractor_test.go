package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/sweep/internal/model"
)

func TestExtractor(t *testing.T) {
	brands := model.Vocabulary{"Ensure", "Glucerna"}
	outlier := "COMBO 24 CHAI SỮA NƯỚC GLUCERNA HƯƠNG VANI"

	e := New(Options{
		Brands:       brands,
		SizeOutliers: model.Vocabulary{outlier},
		SizeExempt:   "5g",
		DefaultSize:  "220ml",
		Formats:      DefaultFormatLabels(),
		Gift:         DefaultGiftOptions(),
		Region:       DefaultRegionOptions(),
	})

	// Mutating the caller's vocabulary must not leak into the extractor.
	brands[0] = "Changed"

	assert.Equal(t, "Ensure", e.Brand("Ensure Gold 850g"))
	assert.Equal(t, "850g", e.Size("Ensure Gold 850g"))
	assert.Equal(t, "220ml", e.Size(outlier))
	assert.Equal(t, "", e.Size("COMBO 24 CHAI"))
	assert.Equal(t, "Liquid Milk", e.Format(e.Size(outlier)))
	assert.Equal(t, "No format", e.Format(""))
	assert.Equal(t, NoKOL, e.KOL("Ensure Gold 850g"))
	assert.Equal(t, NoGift, e.Gift("Ensure Gold 850g"))
	assert.Equal(t, "HCM", e.Region("Kho (HCM)"))
}
