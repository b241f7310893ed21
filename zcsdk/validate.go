package zcsdk

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError describes one payload field rejected before the request
// was built. Field is the JSON name sent on the wire.
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, err := range v {
		msgs = append(msgs, err.Message)
	}

	return strings.Join(msgs, "; ")
}

type payloadValidator struct {
	validate *validator.Validate
}

func newPayloadValidator() *payloadValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		const maxSplits = 2
		name := strings.SplitN(fld.Tag.Get("json"), ",", maxSplits)[0]

		if name == "-" {
			return ""
		}

		return name
	})

	return &payloadValidator{validate: v}
}

// Validate checks struct payloads against their validate tags. Other
// payload kinds pass unchecked.
func (v *payloadValidator) Validate(payload any) error {
	if !isStruct(payload) {
		return nil
	}

	if err := v.validate.Struct(payload); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return formatValidationErrors(fieldErrs)
		}

		return err
	}

	return nil
}

func isNil(payload any) bool {
	if payload == nil {
		return true
	}

	val := reflect.ValueOf(payload)
	switch val.Kind() { //nolint:exhaustive
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return val.IsNil()
	default:
		return false
	}
}

func isStruct(payload any) bool {
	val := reflect.ValueOf(payload)
	for val.Kind() == reflect.Pointer {
		if val.IsNil() {
			return false
		}

		val = val.Elem()
	}

	return val.Kind() == reflect.Struct
}

func formatValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	out := make(ValidationErrors, 0, len(errs))

	for _, err := range errs {
		field := err.Field()
		if field == "" {
			field = err.StructField()
		}

		out = append(out, ValidationError{
			Field:   field,
			Tag:     err.Tag(),
			Value:   fmt.Sprintf("%v", err.Value()),
			Message: validationMessage(field, err),
		})
	}

	return out
}

func validationMessage(field string, err validator.FieldError) string {
	param := err.Param()

	switch err.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, param)
	default:
		return fmt.Sprintf("%s failed validation on '%s'", field, err.Tag())
	}
}
