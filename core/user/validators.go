package user

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/eldad2003/pharmverse-edu-hub/core"
)

var (
	yearGroupTag  = "yeargroup"
	yearGroupText = "unknown year group"
)

// InitValidators registers the user validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(yearGroupTag, yearGroupValidation)
	core.RegisterCustomTranslation(validate, translator, yearGroupTag, yearGroupText)
}

// Custom Validators

// yearGroupValidation checks that the field is one of YearGroups
func yearGroupValidation(fl validator.FieldLevel) bool {
	return IsYearGroup(fl.Field().String())
}
