package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMinorUnits(t *testing.T) {
	cases := []struct {
		price string
		want  int64
	}{
		{"1999.00", 199900},
		{"0.50", 50},
		{"0.5", 50},
		{"4999.00", 499900},
		{"4999", 499900},
		{"0", 0},
		{"0.00", 0},
		{"12.3", 1230},
		{".99", 99},
		{" 250.00 ", 25000},
	}
	for _, tc := range cases {
		got, err := ToMinorUnits(tc.price)
		require.NoError(t, err, "price %q", tc.price)
		assert.Equal(t, tc.want, got, "price %q", tc.price)
	}
}

func TestToMinorUnitsRejectsMalformed(t *testing.T) {
	for _, price := range []string{
		"", "abc", "12a.00", "1,999.00", "-5.00", "1.999", "9.9.9", "₹100",
	} {
		_, err := ToMinorUnits(price)
		assert.Error(t, err, "price %q", price)
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "4,999.00 INR", FormatAmount(499900, "INR"))
	assert.Equal(t, "0.50 INR", FormatAmount(50, "INR"))
	assert.Equal(t, "1,234,567.89 INR", FormatAmount(123456789, "INR"))
	assert.Equal(t, "19.99 USD", FormatAmount(1999, "USD"))
}
