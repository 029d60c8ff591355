// Package validator validates request structs with go-playground/validator
// and turns failures into friendly per-field messages.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	if err := validate.RegisterValidation("pathsegment", isPathSegment); err != nil {
		panic(err)
	}
}

// errorMessages maps validation tags to custom error messages.
var errorMessages = map[string]string{
	"required":    "The field '%s' is required.",
	"min":         "The field '%s' must be at least %s characters long.",
	"max":         "The field '%s' must be no longer than %s characters.",
	"printascii":  "The field '%s' must contain printable ASCII characters only.",
	"pathsegment": "The field '%s' must not contain path separators or be '.' or '..'.",
}

// isPathSegment accepts strings usable as a single directory name.
func isPathSegment(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "." || s == ".." {
		return false
	}
	return !strings.ContainsAny(s, "/\\\x00")
}

// parseMessage constructs a friendly error message based on the validation tag.
func parseMessage(field string, e validator.FieldError) string {
	if msg, ok := errorMessages[e.Tag()]; ok {
		switch strings.Count(msg, "%s") {
		case 1:
			return fmt.Sprintf(msg, field)
		case 2:
			return fmt.Sprintf(msg, field, e.Param())
		}
	}
	return fmt.Sprintf("Field '%s' is invalid: %s", field, e.Tag())
}

// ValidateStruct validates a struct and returns a map of dotted JSON field
// paths to friendly error messages. The map is empty when s is valid.
func ValidateStruct(s any) map[string]string {
	validationErrors := make(map[string]string)

	err := validate.Struct(s)
	if err == nil {
		return validationErrors
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		validationErrors["_"] = err.Error()
		return validationErrors
	}
	for _, e := range validationErrs {
		field := e.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		validationErrors[field] = parseMessage(field, e)
	}
	return validationErrors
}
