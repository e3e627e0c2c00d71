package kernel_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	tests := []struct {
		name    string
		street  string
		city    string
		country string
		wantErr bool
	}{
		{name: "valid address", street: "12 Rizal Ave", city: "Manila", country: "PH"},
		{name: "missing street", street: " ", city: "Manila", country: "PH", wantErr: true},
		{name: "missing city", street: "12 Rizal Ave", city: "", country: "PH", wantErr: true},
		{name: "missing country", street: "12 Rizal Ave", city: "Manila", country: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, err := kernel.NewAddress(tt.street, tt.city, tt.country, "1000", "+63 900 000 0000")

			if tt.wantErr {
				require.Error(t, err)
				require.ErrorIs(t, err, errs.ErrValueIsRequired)
				return
			}

			require.NoError(t, err)
			require.NoError(t, addr.Validate())
			assert.Equal(t, tt.street, addr.Street())
			assert.Equal(t, "1000", addr.PostalCode())
		})
	}
}

func TestNewAddress_CollectsAllMissingFields(t *testing.T) {
	_, err := kernel.NewAddress("", "", "", "", "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "street")
	assert.Contains(t, err.Error(), "city")
	assert.Contains(t, err.Error(), "country")
}

func TestAddress_Validate(t *testing.T) {
	var addr kernel.Address

	assert.Equal(t, kernel.ErrAddressIsNotConstructed, addr.Validate())
}

func TestAddress_StringAndEquality(t *testing.T) {
	a, err := kernel.NewAddress("12 Rizal Ave", "Manila", "PH", "1000", "")
	require.NoError(t, err)
	b, err := kernel.NewAddress(" 12 Rizal Ave ", "Manila", "PH", "1000", "")
	require.NoError(t, err)

	assert.Equal(t, "12 Rizal Ave, Manila, 1000, PH", a.String())
	assert.True(t, a.IsEqual(b))
}
