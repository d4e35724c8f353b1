// Package validate holds the pure input checks applied before any
// persistence call. Every function is stateless and returns a plain error
// describing what is wrong with the input.
package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// Shape check only: something before the @, something after it, and at
	// least one dot in the domain part.
	emailRe = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

	// E.164-like: optional leading +, 2-15 digits, first digit 1-9.
	phoneRe = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
)

// Field pairs a request field name with whether the request supplied it.
type Field struct {
	Name    string
	Present bool
}

// MissingFieldsError names every required field absent from a request,
// not just the first.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// Required checks field presence in the given order and returns a
// *MissingFieldsError listing all absent fields, or nil.
func Required(fields ...Field) error {
	var missing []string
	for _, f := range fields {
		if !f.Present {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	return nil
}

// Email checks that s looks like local-part@domain.tld.
func Email(s string) error {
	if !emailRe.MatchString(s) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// PhoneNumber checks that s is an E.164-like phone number.
func PhoneNumber(s string) error {
	if !phoneRe.MatchString(s) {
		return fmt.Errorf("invalid phone number format")
	}
	return nil
}

// NonNegativePrice checks that a price is zero or greater.
func NonNegativePrice(v decimal.Decimal) error {
	if v.IsNegative() {
		return fmt.Errorf("price must be non-negative")
	}
	return nil
}

// NonNegativeStock checks that a stock level is zero or greater.
func NonNegativeStock(v int) error {
	if v < 0 {
		return fmt.Errorf("stock level must be a non-negative integer")
	}
	return nil
}

// PositiveQuantity checks that a line item quantity is at least one.
func PositiveQuantity(v int) error {
	if v <= 0 {
		return fmt.Errorf("quantity must be greater than 0")
	}
	return nil
}
