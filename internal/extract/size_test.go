package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSize(t *testing.T) {
	tests := []struct {
		name     string
		product  string
		exempt   string
		want     string
		wantFind bool
	}{
		{name: "grams", product: "Sữa bột Ensure Gold 850g", want: "850g", wantFind: true},
		{name: "millilitres upper case", product: "Thùng 24 chai Ensure 237ML", want: "237ml", wantFind: true},
		{name: "kilograms", product: "PediaSure 1.6kg hương vani", want: "1.6kg", wantFind: true},
		{name: "exempt token skipped", product: "Combo Similac 5G 900g Can", exempt: "5g", want: "900g", wantFind: true},
		{name: "exempt token is the only size", product: "Similac 5G", exempt: "5g", wantFind: false},
		{name: "punctuation split", product: "Glucerna (400g)/lon", want: "400g", wantFind: true},
		{name: "first qualifying token wins", product: "Ensure 400g x2 850g", want: "400g", wantFind: true},
		{name: "units without digits", product: "Grow gold milk", wantFind: false},
		{name: "digits without units", product: "Combo 24 chai", wantFind: false},
		{name: "empty", product: "", wantFind: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Size(tt.product, tt.exempt)
			assert.Equal(t, tt.wantFind, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat(t *testing.T) {
	labels := DefaultFormatLabels()

	assert.Equal(t, "Liquid Milk", Format("220ml", labels))
	assert.Equal(t, "Liquid Milk", Format("237ML", labels))
	assert.Equal(t, "Milk Powder", Format("850g", labels))
	assert.Equal(t, "Milk Powder", Format("1.6kg", labels))
	assert.Equal(t, "No format", Format("", labels))
}
