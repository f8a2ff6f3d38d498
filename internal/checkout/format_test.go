package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCardNumber(t *testing.T) {
	assert.Equal(t, "4242 4242 4242 4242", FormatCardNumber("4242424242424242"))
	assert.Equal(t, "4242 4242 4242 4242", FormatCardNumber("4242-4242-4242-4242"))
	// Capped at 16 digits.
	assert.Equal(t, "4242 4242 4242 4242", FormatCardNumber("42424242424242429999"))
	assert.Equal(t, "4242 4", FormatCardNumber("42 42 4"))
	assert.Equal(t, "", FormatCardNumber("no digits"))
}

func TestFormatExpiry(t *testing.T) {
	assert.Equal(t, "12/25", FormatExpiry("1225"))
	assert.Equal(t, "12/25", FormatExpiry("12/25"))
	// Separator only appears once a third digit exists.
	assert.Equal(t, "12", FormatExpiry("12"))
	assert.Equal(t, "1", FormatExpiry("1"))
	// Capped at four digits.
	assert.Equal(t, "12/25", FormatExpiry("122567"))
}

func TestFormatCVV(t *testing.T) {
	assert.Equal(t, "123", FormatCVV("123"))
	assert.Equal(t, "1234", FormatCVV("12345"))
	assert.Equal(t, "12", FormatCVV("1a2b"))
}

func TestFormatCityStripsDigits(t *testing.T) {
	assert.Equal(t, "San Francisco", FormatCity("San4 Francisco2"))
}

func TestFormatZip(t *testing.T) {
	assert.Equal(t, "94102", FormatZip("94102-1234"))
}
