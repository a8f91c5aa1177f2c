package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/sweep/internal/model"
)

func TestDeal(t *testing.T) {
	exclude := model.Vocabulary{"Hot Deal", "Deal Hè", "Deal E2E"}
	kols := model.Vocabulary{"Quyền Leo", "Hằng Du Mục"}

	tests := []struct {
		name    string
		product string
		exclude model.Vocabulary
		kols    model.Vocabulary
		want    string
	}{
		{
			name:    "deal code without vocabularies",
			product: "[DEAL SPECIAL50] Ensure Gold 850g",
			want:    "SPECIAL50",
		},
		{
			name:    "kol beats deal",
			product: "[DEAL X] Ensure - Quyền Leo livestream",
			exclude: exclude,
			kols:    kols,
			want:    "QUYỀN LEO",
		},
		{
			name:    "kol vocabulary order",
			product: "Hằng Du Mục x Quyền Leo",
			kols:    kols,
			want:    "QUYỀN LEO",
		},
		{
			name:    "excluded bracket skipped",
			product: "[Hot Deal] [DEAL abc] Similac",
			exclude: exclude,
			want:    "ABC",
		},
		{
			name:    "only excluded brackets",
			product: "[Deal Hè] [DATE TỪ 01.01.2025 TRỞ ĐI] PediaSure",
			exclude: exclude,
			want:    NoKOL,
		},
		{
			name:    "lower case deal token",
			product: "[deal mega] Grow",
			want:    "MEGA",
		},
		{
			name:    "text between repeated tokens",
			product: "[DEAL A DEAL B] Grow",
			want:    "A",
		},
		{
			name:    "deal outside brackets ignored",
			product: "DEAL SPECIAL Grow",
			want:    NoKOL,
		},
		{
			name:    "nothing",
			product: "Ensure Gold 850g",
			exclude: exclude,
			kols:    kols,
			want:    NoKOL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Deal(tt.product, tt.exclude, tt.kols))
		})
	}
}

func TestBrackets(t *testing.T) {
	assert.Equal(t, []string{"A", "B c"}, Brackets("[A] x [B c] y"))
	assert.Empty(t, Brackets("no brackets"))
}
