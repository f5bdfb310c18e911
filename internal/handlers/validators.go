package handlers

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var teamSlugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// RegisterCustomValidators installs the CRM's custom binding validators on
// gin's validator engine. Call once before routes are registered.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("teamslug", func(fl validator.FieldLevel) bool {
			return teamSlugPattern.MatchString(fl.Field().String())
		})
	}
}
