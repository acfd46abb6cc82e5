package handlers

import (
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/ttacon/libphonenumber"
)

var (
	gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
	panPattern   = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)

	registerOnce sync.Once
)

// RegisterValidators adds the gstin, pan and phone_in tags to gin's validator.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("gstin", func(fl validator.FieldLevel) bool {
			return gstinPattern.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("pan", func(fl validator.FieldLevel) bool {
			return panPattern.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("phone_in", func(fl validator.FieldLevel) bool {
			return validIndianPhone(fl.Field().String())
		})
	})
}

func validIndianPhone(s string) bool {
	p, err := libphonenumber.Parse(s, "IN")
	if err != nil {
		return false
	}
	return libphonenumber.IsValidNumber(p)
}
