package utils

import (
	"slices"
	"strings"
	"testing"

	"github.com/Aashish23092/invoice-audit/dto"
	"github.com/stretchr/testify/assert"
)

func TestExtractVendor(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "skips denylisted and numeric lines",
			text: "Invoice #123\nAcme Corp\nTotal: 50.00",
			want: "Acme Corp",
		},
		{
			name: "skips lines with digits",
			text: "42 Wallaby Way\nGlobex Corporation",
			want: "Globex Corporation",
		},
		{
			name: "must start with a letter",
			text: "(Initech)\n*Umbrella*\nHooli Inc",
			want: "Hooli Inc",
		},
		{
			name: "empty text",
			text: "",
			want: dto.DefaultVendor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractVendor(CleanLines(tt.text)))
		})
	}
}

func TestExtractVendorScanWindow(t *testing.T) {
	header := make([]string, 0, vendorScanWindow+1)
	for i := range vendorScanWindow {
		header = append(header, "Line "+strings.Repeat("9", i+1))
	}
	header = append(header, "Late Vendor LLC")

	assert.Equal(t, dto.DefaultVendor, ExtractVendor(CleanLines(strings.Join(header, "\n"))))
}

func TestExtractVendorDoesNotFilterNoise(t *testing.T) {
	// Denylisting belongs to CleanLines; raw lines are only checked for
	// digits and a leading letter.
	lines := []string{"42 Wallaby Way", "Invoice copy", "Acme Corp"}

	assert.Equal(t, "Invoice copy", ExtractVendor(slices.Values(lines)))
}
