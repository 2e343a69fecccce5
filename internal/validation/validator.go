// Package validation checks domain records with go-playground/validator and
// reports failures as *domain.ValidationError keyed by JSON field name.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"
	"unicode"

	"filmorate/internal/domain"

	"github.com/go-playground/validator/v10"
)

var (
	defaultValidator *Validator
	defaultOnce      sync.Once
)

// Default returns a shared Validator that reads the wall clock.
func Default() *Validator {
	defaultOnce.Do(func() {
		defaultValidator = New(time.Now)
	})
	return defaultValidator
}

type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

func New(now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	v := &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      now,
	}

	v.validate.RegisterTagNameFunc(jsonFieldName)
	v.validate.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(domain.Date); ok {
			return d.Time
		}
		return nil
	}, domain.Date{})

	mustRegister(v.validate, "notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister(v.validate, "nowhitespace", func(fl validator.FieldLevel) bool {
		return !strings.ContainsFunc(fl.Field().String(), unicode.IsSpace)
	})
	mustRegister(v.validate, "releasedate", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		return ok && !t.Before(domain.FirstFilmScreening.Time)
	})
	mustRegister(v.validate, "notfuture", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		return ok && !t.After(domain.DateOf(v.now()).Time)
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validator: %v", tag, err))
	}
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

// Struct validates s and returns nil or a *domain.ValidationError.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate: %w", err)
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		if _, seen := fields[fe.Field()]; seen {
			continue
		}
		fields[fe.Field()] = translate(fe)
	}
	return domain.NewValidationError(fields)
}

func translate(fe validator.FieldError) string {
	value := formatValue(fe.Value())

	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "nowhitespace":
		return fmt.Sprintf("must not contain whitespace, got %s", value)
	case "email":
		return fmt.Sprintf("must be a valid email address, got %s", value)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters, got %d", fe.Param(), len([]rune(fe.Value().(string))))
		}
		return fmt.Sprintf("must be at most %s, got %s", fe.Param(), value)
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s, got %s", fe.Param(), value)
	case "releasedate":
		return fmt.Sprintf("must not be before %s, got %s", domain.FirstFilmScreening, value)
	case "notfuture":
		return fmt.Sprintf("must not be in the future, got %s", value)
	default:
		return fmt.Sprintf("failed %s check, got %s", fe.Tag(), value)
	}
}

func formatValue(v any) string {
	switch x := v.(type) {
	case time.Time:
		return x.Format(domain.DateLayout)
	case domain.Date:
		return x.String()
	case string:
		return fmt.Sprintf("%q", x)
	default:
		return fmt.Sprint(x)
	}
}
