package service

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// registerBookingTags adds isodate (YYYY-MM-DD, real calendar date) and hhmm (00:00-23:59).
// It panics when a tag cannot be registered; that only happens on a wiring mistake.
func registerBookingTags(v *validator.Validate) *validator.Validate {
	if v == nil {
		v = validator.New()
	}
	mustRegister(v, "isodate", func(fl validator.FieldLevel) bool {
		_, err := parseDate(fl.Field().String())
		return err == nil
	})
	mustRegister(v, "hhmm", func(fl validator.FieldLevel) bool {
		_, err := parseClock(fl.Field().String())
		return err == nil
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}
