package validate

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmail(t *testing.T) {
	valid := []string{
		"a@b.co",
		"john.doe@example.com",
		"user+tag@sub.domain.org",
	}
	for _, s := range valid {
		assert.NoError(t, Email(s), "email %q should be accepted", s)
	}

	invalid := []string{
		"invalid-email",
		"no-at-sign.com",
		"missing@tld",
		"two@@signs.com",
		"@no-local.com",
		"",
	}
	for _, s := range invalid {
		assert.Error(t, Email(s), "email %q should be rejected", s)
	}
}

func TestPhoneNumber(t *testing.T) {
	valid := []string{
		"+15551234567",
		"15551234567",
		"+442071838750",
		"99",
	}
	for _, s := range valid {
		assert.NoError(t, PhoneNumber(s), "phone %q should be accepted", s)
	}

	invalid := []string{
		"0123456789",        // leading zero
		"+0123456789",       // leading zero after +
		"555-123-4567",      // separators
		"+1234567890123456", // 16 digits
		"1",                 // too short
		"abc",
		"",
	}
	for _, s := range invalid {
		assert.Error(t, PhoneNumber(s), "phone %q should be rejected", s)
	}
}

func TestRequired_AllPresent(t *testing.T) {
	err := Required(
		Field{Name: "name", Present: true},
		Field{Name: "email", Present: true},
	)
	assert.NoError(t, err)
}

func TestRequired_ReportsAllMissing(t *testing.T) {
	err := Required(
		Field{Name: "name", Present: false},
		Field{Name: "email", Present: false},
		Field{Name: "phone_number", Present: false},
	)

	var mfErr *MissingFieldsError
	require.ErrorAs(t, err, &mfErr)
	assert.Equal(t, []string{"name", "email", "phone_number"}, mfErr.Fields)
	assert.Equal(t, "missing required fields: name, email, phone_number", err.Error())
}

func TestRequired_ReportsOnlyMissing(t *testing.T) {
	err := Required(
		Field{Name: "name", Present: true},
		Field{Name: "email", Present: false},
		Field{Name: "phone_number", Present: true},
	)

	var mfErr *MissingFieldsError
	require.ErrorAs(t, err, &mfErr)
	assert.Equal(t, []string{"email"}, mfErr.Fields)
}

func TestNonNegativePrice(t *testing.T) {
	assert.NoError(t, NonNegativePrice(decimal.RequireFromString("19.99")))
	assert.NoError(t, NonNegativePrice(decimal.Zero))
	assert.Error(t, NonNegativePrice(decimal.RequireFromString("-0.01")))
}

func TestNonNegativeStock(t *testing.T) {
	assert.NoError(t, NonNegativeStock(0))
	assert.NoError(t, NonNegativeStock(100))
	assert.Error(t, NonNegativeStock(-1))
}

func TestPositiveQuantity(t *testing.T) {
	assert.NoError(t, PositiveQuantity(1))
	assert.Error(t, PositiveQuantity(0))
	assert.Error(t, PositiveQuantity(-5))
}
