package decimal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ParseCommaDecimal_WithValidValues_ReturnsNumber(t *testing.T) {
	cases := map[string]float64{
		"1,55":  1.55,
		"0":     0,
		"99,99": 99.99,
		"12":    12,
		"7,5":   7.5,
	}

	for input, expected := range cases {
		value, ok := ParseCommaDecimal(input)
		assert.True(t, ok, "expected %q to parse", input)
		assert.Equal(t, expected, value)
	}
}

func Test_ParseCommaDecimal_WithInvalidValues_ReportsFailure(t *testing.T) {
	invalid := []string{"", "1.55", "100", "1,555", "abc", "-5", "1,", ",5"}

	for _, input := range invalid {
		_, ok := ParseCommaDecimal(input)
		assert.False(t, ok, "expected %q to be rejected", input)
	}
}

func Test_FormatCommaDecimal_WithZero_ReturnsEmptyString(t *testing.T) {
	assert.Equal(t, "", FormatCommaDecimal(0))
}

func Test_FormatCommaDecimal_WithValue_UsesCommaSeparator(t *testing.T) {
	assert.Equal(t, "1,55", FormatCommaDecimal(1.55))
	assert.Equal(t, "12", FormatCommaDecimal(12))
	assert.Equal(t, "99,99", FormatCommaDecimal(99.99))
}

func Test_CommaDecimal_RoundTripsThroughStorageValue(t *testing.T) {
	inputs := []string{"1,55", "99,99", "7,5", "12"}

	for _, input := range inputs {
		value, ok := ParseCommaDecimal(input)
		assert.True(t, ok)
		assert.Equal(t, input, FormatCommaDecimal(value))
	}
}
