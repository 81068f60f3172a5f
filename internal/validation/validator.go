// Package validation wraps the shared go-playground validator and turns its
// errors into form field messages and configuration errors.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/alexisbeaulieu97/momentum/internal/theme"
	momentumerrors "github.com/alexisbeaulieu97/momentum/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	routePattern = regexp.MustCompile(`^/[A-Za-z0-9_\-/]*$`)
)

// Get returns the shared validator. Field names in reported errors follow
// the json (or yaml, or mapstructure) tag of each field.
func Get() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, key := range []string{"json", "yaml", "mapstructure"} {
				name := strings.SplitN(f.Tag.Get(key), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return f.Name
		})

		_ = v.RegisterValidation("theme_id", func(fl validator.FieldLevel) bool {
			id := fl.Field().String()
			return id == "" || theme.Builtin().Has(id)
		})

		_ = v.RegisterValidation("route", func(fl validator.FieldLevel) bool {
			return routePattern.MatchString(fl.Field().String())
		})

		validateInst = v
	})
	return validateInst
}

// Messages overrides the generated message for a field and tag, keyed
// "field.tag" (for example "confirmPassword.eqfield").
type Messages map[string]string

// Form validates a submitted form and returns a FieldErrors error keyed by
// field name, or nil.
func Form(form interface{}, overrides Messages) error {
	err := Get().Struct(form)
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return fmt.Errorf("validate form: %w", err)
	}

	fields := momentumerrors.FieldErrors{}
	for _, fe := range ves {
		field := fe.Field()
		if msg, ok := overrides[field+"."+fe.Tag()]; ok {
			fields.Add(field, msg)
			continue
		}
		fields.Add(field, message(fe))
	}
	return fields.Err()
}

// Config validates a decoded configuration struct and reports the first
// failure as a ValidationError with a dotted lower-case field path.
func Config(cfg interface{}) error {
	err := Get().Struct(cfg)
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if errors.As(err, &ves) {
		ve := ves[0]
		field := dottedFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return momentumerrors.NewValidationError(field, msg, err)
	}
	return momentumerrors.NewValidationError("config", err.Error(), err)
}

func dottedFieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.Namespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	return strings.ToLower(strings.Join(parts, "."))
}

func message(fe validator.FieldError) string {
	label := Label(fe.Field())
	switch fe.Tag() {
	case "required", "required_if":
		return label + " is required"
	case "email":
		return "Enter a valid email address"
	case "hexcolor":
		return label + " must be a hex color"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "eqfield":
		return fmt.Sprintf("%s must match %s", label, Label(lowerFirst(fe.Param())))
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", label, fe.Param())
	case "theme_id":
		return label + " is not a known theme"
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

// Label turns a camelCase field name into a sentence-case label:
// "coinReward" becomes "Coin reward".
func Label(field string) string {
	var b strings.Builder
	for i, r := range field {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteByte(' ')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func lowerFirst(s string) string {
	for i, r := range s {
		return string(unicode.ToLower(r)) + s[i+len(string(r)):]
	}
	return s
}
