// Package validation checks caller input before it reaches the services.
// The services trust their input; priority ranges, name formats and batch
// limits are enforced only here.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/alexanderramin/itemtracker/internal/domain"
	"github.com/go-playground/validator/v10"
)

// CompletionGrace is how far in the past a supplied completion time may lie.
const CompletionGrace = 5 * time.Minute

var (
	categoryNamePattern = regexp.MustCompile(`^[\p{L}\p{N}_\s\-]+$`)
	hexColorPattern     = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)
)

// Validator validates request structs. Time-dependent rules read clock.
type Validator struct {
	validate *validator.Validate
	clock    domain.Clock
}

func New(clock domain.Clock) *Validator {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	v := &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		clock:    clock,
	}

	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// Registration only fails for empty tags or nil funcs.
	_ = v.validate.RegisterValidation("categoryname", validCategoryName)
	_ = v.validate.RegisterValidation("hexrgb", validHexColor)
	_ = v.validate.RegisterValidation("notstale", v.notStale)
	return v
}

// Struct validates s and returns an error wrapping domain.ErrValidation that
// lists every failed rule.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, message(fe))
	}
	return domain.Validationf("%s", strings.Join(msgs, "; "))
}

func validCategoryName(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	return strings.TrimSpace(name) != "" && categoryNamePattern.MatchString(name)
}

func validHexColor(fl validator.FieldLevel) bool {
	return hexColorPattern.MatchString(fl.Field().String())
}

func (v *Validator) notStale(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return t.After(v.clock.Now().Add(-CompletionGrace))
}

func message(fe validator.FieldError) string {
	field := fieldName(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		case reflect.Slice, reflect.Map:
			return fmt.Sprintf("%s must contain at least %s entries", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("%s cannot exceed %s characters", field, fe.Param())
		case reflect.Slice, reflect.Map:
			return fmt.Sprintf("%s cannot contain more than %s entries", field, fe.Param())
		}
		return fmt.Sprintf("%s cannot exceed %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "nefield":
		return "from and to category ids must be different"
	case "unique":
		return fmt.Sprintf("%s must not contain duplicates", field)
	case "categoryname":
		return fmt.Sprintf("%s contains invalid characters", field)
	case "hexrgb":
		return fmt.Sprintf("%s must be a valid hex color (e.g., #FF5733 or #F57)", field)
	case "notstale":
		return fmt.Sprintf("%s cannot be in the past", field)
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}

// fieldName drops the top-level struct name from the error namespace.
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	if ns == "" {
		return "value"
	}
	return ns
}
