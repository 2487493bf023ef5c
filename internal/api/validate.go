package api

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// validateInput runs struct tag validation on input, adapted from the
// request-validation helper the rest of this codebase's lineage uses.
func validateInput(input interface{}) error {
	return validate.Struct(input)
}
