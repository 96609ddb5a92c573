package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
}

var validate = validator.New()

var growIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

func init() {
	// GrowID: 3-20 chars, letters/digits/underscore only
	validate.RegisterValidation("growid", func(fl validator.FieldLevel) bool {
		v := fl.Field().String()
		return len(v) >= 3 && len(v) <= 20 && growIDPattern.MatchString(v)
	})
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := validate.Struct(data)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			var element ErrorResponse
			element.FailedField = err.StructNamespace()
			element.Tag = err.Tag()
			element.Value = err.Param()
			errors = append(errors, &element)
		}
	}
	return errors
}
