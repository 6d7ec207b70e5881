package dto

import (
	"github.com/go-playground/validator/v10"

	apperrors "github.com/pekay23/raymond-gray-platform/pkg/util"
)

var validate = validator.New()

// Validate runs struct tag validation and maps failures onto the shared
// error envelope.
func Validate(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	details := map[string]any{}
	if fieldErrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range fieldErrs {
			details[fe.Field()] = fe.Tag()
		}
	}
	return apperrors.NewValidationError("invalid payload", details)
}
