package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	addr, err := NewAddress("Street 1", 1, "Zipcode 1", "City 1")
	require.NoError(t, err)

	assert.Equal(t, "Street 1", addr.Street())
	assert.Equal(t, 1, addr.Number())
	assert.Equal(t, "Zipcode 1", addr.Zip())
	assert.Equal(t, "City 1", addr.City())
	assert.False(t, addr.IsZero())
	assert.Equal(t, "Street 1, 1, Zipcode 1 City 1", addr.String())
}

func TestNewAddress_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		street string
		number int
		zip    string
		city   string
		want   error
	}{
		{"empty street", "", 1, "zip", "city", ErrEmptyStreet},
		{"zero number", "street", 0, "zip", "city", ErrNonPositiveNumber},
		{"negative number", "street", -4, "zip", "city", ErrNonPositiveNumber},
		{"empty zip", "street", 1, "", "city", ErrEmptyZip},
		{"empty city", "street", 1, "zip", "", ErrEmptyCity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, err := NewAddress(tt.street, tt.number, tt.zip, tt.city)
			assert.ErrorIs(t, err, ErrValidation)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, addr.IsZero())
		})
	}
}
