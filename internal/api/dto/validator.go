package dto

import (
	"github.com/go-playground/validator/v10"

	apperrors "github.com/credsure/admin-api/pkg/util"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks struct tags and reports failures as a validation error with
// per-field details.
func Validate(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	details := make(map[string]any, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Field()] = "failed on " + fe.Tag()
	}
	return apperrors.NewValidationError("validation failed", details)
}
