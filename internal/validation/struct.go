package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

var messages = map[string]string{
	"required": "The %s field is required.",
	"max":      "The %s field must not be greater than %s characters.",
	"min":      "The %s field must be at least %s characters.",
	"oneof":    "The selected %s is invalid.",
	"email":    "The %s field must be a valid email address.",
}

func message(e validator.FieldError) string {
	field := strings.ReplaceAll(e.Field(), "_", " ")
	if tmpl, ok := messages[e.Tag()]; ok {
		if strings.Count(tmpl, "%s") == 2 {
			return fmt.Sprintf(tmpl, field, e.Param())
		}
		return fmt.Sprintf(tmpl, field)
	}
	return fmt.Sprintf("The %s field is invalid.", field)
}

// Struct validates the struct tags of s and returns field errors keyed by JSON name.
func Struct(s any) Errors {
	errs := Errors{}
	err := validate.Struct(s)
	if err == nil {
		return errs
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			errs.Add(fe.Field(), message(fe))
		}
		return errs
	}
	errs.Add("_", err.Error())
	return errs
}

// CheckLength records a failure when value has fewer than min or more than max characters.
func CheckLength(errs Errors, field, value string, min, max int, label string) {
	n := utf8.RuneCountInString(value)
	switch {
	case n < min && min == 1:
		errs.Add(field, label+" is required")
	case n < min:
		errs.Add(field, fmt.Sprintf("%s must be at least %d characters", label, min))
	case n > max:
		errs.Add(field, fmt.Sprintf("%s cannot exceed %d characters", label, max))
	}
}

const MaxNameLength = 255

// CheckName trims value, checks it is 1 to MaxNameLength characters and returns the trimmed value.
func CheckName(errs Errors, field, value, label string) string {
	value = strings.TrimSpace(value)
	CheckLength(errs, field, value, 1, MaxNameLength, label)
	return value
}
