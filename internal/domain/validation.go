package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// validate is shared by every draft; validator.Validate caches struct metadata
// and is safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names so messages match the wire format.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		// ALLOW-PANIC: registration only fails on a programming error
		panic(fmt.Sprintf("register notblank validation: %v", err))
	}
	return v
}

// Validate checks the draft's fields and returns a *ValidationError for the
// first field that fails.
func (d TaskDraft) Validate() error {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return NewValidationError(fe.Field(), validationMessage(fe), ErrValidation)
	}
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

// validationMessage maps a validator tag to a user-facing message.
func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "min", "max":
		return fmt.Sprintf(
			"must be between %d and %d characters",
			MinDescriptionLength,
			MaxDescriptionLength,
		)
	default:
		return "is invalid"
	}
}
