package period

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Import(t *testing.T) {
	r := NewRegistry()
	report := r.Import([]ImportRow{
		{Line: 2, Name: "Tet Sale", Start: "01/02/2024", End: "10/02/2024"},
		{Line: 3, Name: "", Start: "11/02/2024", End: "12/02/2024"},
		{Line: 4, Name: "Bad Date", Start: "2024/13/40", End: "12/02/2024"},
		{Line: 5, Name: "Backwards", Start: "20/02/2024", End: "15/02/2024"},
		{Line: 6, Name: "Overlap", Start: "10/02/2024", End: "14/02/2024"},
		{Line: 7, Name: "Valentine", Start: "14/2/2024", End: "14/2/2024 23:59:59"},
		{Line: 8, Name: "Tet Sale", Start: "01/02/2024", End: "10/02/2024"},
	})

	assert.Equal(t, 2, report.Accepted)
	assert.Equal(t, 2, report.Rejected)
	assert.Equal(t, 3, report.Skipped)
	require.Len(t, report.Rows, 7)

	assert.Equal(t, Accepted, report.Rows[0].Admission)
	assert.True(t, report.Rows[1].Skipped)
	assert.True(t, report.Rows[2].Skipped)
	assert.True(t, report.Rows[3].Skipped)
	assert.ErrorIs(t, report.Rows[3].Err, ErrInvalidRange)
	assert.Equal(t, RejectedOverlap, report.Rows[4].Admission)
	assert.ErrorIs(t, report.Rows[4].Err, ErrOverlap)
	assert.Equal(t, Accepted, report.Rows[5].Admission)
	assert.Equal(t, RejectedDuplicateTriple, report.Rows[6].Admission)

	assert.Equal(t, 2, r.Len())
	assert.Equal(t, "Valentine", r.Assign(march(1).AddDate(0, -1, 13)))
}

func TestParseDate(t *testing.T) {
	for _, in := range []string{"05/03/2024", "5/3/2024", "05-03-2024", "2024-03-05", "05/03/2024 10:00:00"} {
		got, err := ParseDate(in)
		require.NoError(t, err, in)
		assert.Equal(t, march(5), got, in)
	}

	_, err := ParseDate("March 5")
	assert.Error(t, err)
}
