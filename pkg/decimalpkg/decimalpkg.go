// Package decimalpkg provides binding helpers for decimal string fields.
package decimalpkg

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ValidDecimal validates that the field parses as a decimal number, so that
// malformed amounts never reach the service layer. Sign and sufficiency stay
// domain concerns.
var ValidDecimal validator.Func = func(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		_, err := decimal.NewFromString(s)
		return err == nil
	}

	return false
}
