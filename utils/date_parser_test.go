package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDate(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		source DateSource
	}{
		{
			name:   "month name wins over earlier numeric date",
			text:   "Printed 2019-06-20\nDue Jun 19, 2019",
			want:   "Jun 19, 2019",
			source: DateFromMonthName,
		},
		{
			name:   "full month without comma",
			text:   "Invoice Date June 19 2019",
			want:   "June 19 2019",
			source: DateFromMonthName,
		},
		{
			name:   "iso date",
			text:   "Issued 2021-03-04 by Acme",
			want:   "2021-03-04",
			source: DateFromNumeric,
		},
		{
			name:   "slash date kept verbatim",
			text:   "Date: 03/04/2020",
			want:   "03/04/2020",
			source: DateFromNumeric,
		},
		{
			name:   "dash date with short year",
			text:   "6-19-19",
			want:   "6-19-19",
			source: DateFromNumeric,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, source := extractDate(tt.text)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
			assert.Equal(t, tt.source, source)
		})
	}
}

func TestExtractDateAbsent(t *testing.T) {
	got, source := extractDate("Acme Corp\nTotal: 50.00")

	assert.Nil(t, got)
	assert.Equal(t, DateAbsent, source)
	assert.Nil(t, ExtractDate(""))
}

func TestCompareDates(t *testing.T) {
	assert.True(t, CompareDates("Jun 19, 2019", "jun 19, 2019"))
	assert.True(t, CompareDates("Jun 19, 2019", "Jun 19, 2019 10:00"))
	assert.True(t, CompareDates("2019-06-20", "06/20/2019"))
	assert.False(t, CompareDates("2020-01-01", "2021-01-01"))
	assert.False(t, CompareDates("", "2019-06-20"))
	assert.False(t, CompareDates("2019-06-20", "n/a"))
}
