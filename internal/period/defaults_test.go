package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/sweep/internal/model"
)

func TestGenerateDefaults_FullMonth(t *testing.T) {
	got := GenerateDefaults(march(1), march(31))

	want := []model.Period{
		model.NewPeriod(DoubleDay, march(1), march(13)),
		model.NewPeriod(MidMonth, march(14), march(20)),
		model.NewPeriod(PayDay, march(21), march(31)),
	}
	assert.Equal(t, want, got)
}

func TestGenerateDefaults_Clipped(t *testing.T) {
	got := GenerateDefaults(
		time.Date(2024, time.February, 25, 9, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 16, 18, 0, 0, 0, time.UTC),
	)

	want := []model.Period{
		model.NewPeriod(PayDay, model.Date(2024, time.February, 25), model.Date(2024, time.February, 29)),
		model.NewPeriod(DoubleDay, march(1), march(13)),
		model.NewPeriod(MidMonth, march(14), march(16)),
	}
	assert.Equal(t, want, got)
}

func TestGenerateDefaults_AcrossYear(t *testing.T) {
	got := GenerateDefaults(model.Date(2023, time.December, 30), model.Date(2024, time.January, 2))
	require.Len(t, got, 2)
	assert.Equal(t, PayDay, got[0].Name)
	assert.Equal(t, model.Date(2023, time.December, 31), got[0].End)
	assert.Equal(t, DoubleDay, got[1].Name)
	assert.Equal(t, model.Date(2024, time.January, 2), got[1].End)
}

func TestGenerateDefaults_Empty(t *testing.T) {
	assert.Empty(t, GenerateDefaults(march(10), march(1)))
}

func TestGenerateDefaults_AllAdmitted(t *testing.T) {
	r := NewRegistry()
	decisions := r.AddDefaults(model.Date(2024, time.January, 5), model.Date(2024, time.June, 17))

	for _, d := range decisions {
		assert.Equal(t, Accepted, d.Admission, d.Period.String())
	}
	assert.Equal(t, len(decisions), r.Len())
}
