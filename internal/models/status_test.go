package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want ContractStatus
	}{
		{"Active", StatusActive},
		{"pending", StatusPending},
		{" COMPLETED ", StatusCompleted},
		{"Cancelled", StatusCancelled},
	}
	for _, tt := range tests {
		got, err := ParseStatus(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseStatus("Draft")
	require.ErrorIs(t, err, ErrUnknownStatus)
}

func TestStatus_LabelsAndColors(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range Statuses {
		require.True(t, s.Valid())
		assert.NotEmpty(t, s.String())
		assert.Equal(t, uint8(0xff), s.Color().A)
		seen[s.String()] = true
	}
	assert.Len(t, seen, 4)

	bogus := ContractStatus(42)
	assert.False(t, bogus.Valid())
	_, err := bogus.MarshalText()
	require.ErrorIs(t, err, ErrUnknownStatus)
}

func TestParseType(t *testing.T) {
	assert.Equal(t, TypeRental, ParseType("rental"))
	assert.Equal(t, TypeSupport, ParseType("Support"))
	assert.Equal(t, TypeOther, ParseType(""))
	assert.Equal(t, TypeOther, ParseType("Barter"))
	assert.Contains(t, FormTypes, TypeOther)
	assert.Len(t, SampleTypes, 15)
}
