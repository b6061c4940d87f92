package dto

import (
	"fmt"
	"reflect"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// RegisterValidators installs the decimal-aware binding tags on gin's validator:
//
//	dgt0     value > 0
//	dgte0    value >= 0
//	dlte100  value <= 100
//
// decimal.Decimal is exposed to the validator as its string form.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
	}
	return registerDecimalRules(v)
}

func registerDecimalRules(v *validator.Validate) error {
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	rules := map[string]func(decimal.Decimal) bool{
		"dgt0":    func(d decimal.Decimal) bool { return d.IsPositive() },
		"dgte0":   func(d decimal.Decimal) bool { return !d.IsNegative() },
		"dlte100": func(d decimal.Decimal) bool { return d.LessThanOrEqual(hundred) },
	}
	for tag, check := range rules {
		err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			d, err := decimal.NewFromString(fl.Field().String())
			if err != nil {
				return false
			}
			return check(d)
		})
		if err != nil {
			return fmt.Errorf("register %s: %w", tag, err)
		}
	}
	return nil
}
