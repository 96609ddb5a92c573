package service

import (
	"fmt"

	"vendshop/pkg/validator"
)

// validateStruct returns the first validation failure as a user-facing
// message, or "" when the struct is valid
func validateStruct(data interface{}) string {
	if errs := validator.ValidateStruct(data); len(errs) > 0 {
		first := errs[0]
		return fmt.Sprintf("Validation failed: Field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}
	return ""
}
