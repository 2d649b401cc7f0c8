package gst_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"saralgst/internal/domain"
	"saralgst/internal/gst"
)

func TestIsValidGSTIN(t *testing.T) {
	tests := []struct {
		name  string
		gstin string
		want  bool
	}{
		{"valid maharashtra", "27AAPFU0939F1ZV", true},
		{"valid karnataka", "29AABCT1332L1ZU", true},
		{"valid delhi", "07AABCU9603R1ZM", true},
		{"too short", "27AAPFU0939F1Z", false},
		{"too long", "27AAPFU0939F1ZVX", false},
		{"lowercase letters", "27aapfu0939f1zv", false},
		{"missing Z at position 14", "27AAPFU0939F1XV", false},
		{"zero entity number", "27AAPFU0939F0ZV", false},
		{"empty", "", false},
		{"letters in state code", "AAAAPFU0939F1ZV", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gst.IsValidGSTIN(tt.gstin))
		})
	}
}

func TestStateCodeFromGSTIN(t *testing.T) {
	assert.Equal(t, "27", gst.StateCodeFromGSTIN("27AAPFU0939F1ZV"))
	assert.Equal(t, "07", gst.StateCodeFromGSTIN("07AABCU9603R1ZM"))

	// Unknown prefix yields no state code.
	assert.Equal(t, "", gst.StateCodeFromGSTIN("99AAPFU0939F1ZV"))
	assert.Equal(t, "", gst.StateCodeFromGSTIN(""))
	assert.Equal(t, "", gst.StateCodeFromGSTIN("2"))
}

func TestStateName(t *testing.T) {
	assert.Equal(t, "Maharashtra", gst.StateName("27"))
	assert.Equal(t, "Karnataka", gst.StateName("29"))
	assert.Equal(t, "", gst.StateName("00"))
}

func TestSupplyTypeFor(t *testing.T) {
	assert.Equal(t, domain.SupplyIntraState, gst.SupplyTypeFor("27", "27"))
	assert.Equal(t, domain.SupplyInterState, gst.SupplyTypeFor("27", "29"))

	// Indeterminable when either side is unknown.
	assert.Equal(t, domain.SupplyType(""), gst.SupplyTypeFor("", "29"))
	assert.Equal(t, domain.SupplyType(""), gst.SupplyTypeFor("27", ""))
}

func TestIsValidDate(t *testing.T) {
	assert.True(t, gst.DatePattern.MatchString("2025-04-01"))
	assert.False(t, gst.DatePattern.MatchString("01-04-2025"))
	assert.False(t, gst.DatePattern.MatchString("2025/04/01"))
}
