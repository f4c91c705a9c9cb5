package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeFuelStatus(t *testing.T) {
	tests := []struct {
		input string
		want  FuelStatus
		known bool
	}{
		{"reviewing", FuelStatusReviewing, true},
		{"approved", FuelStatusApproved, true},
		{"successed", FuelStatusApproved, true},
		{"declined", FuelStatusDeclined, true},
		{"rejected", FuelStatusDeclined, true},
		{"on-hold", FuelStatus("on-hold"), false},
		{"", FuelStatus(""), false},
	}

	for _, tt := range tests {
		got, known := NormalizeFuelStatus(tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
		assert.Equal(t, tt.known, known, "input %q", tt.input)
	}
}
