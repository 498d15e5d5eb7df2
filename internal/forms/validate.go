package forms

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ValidationError names one rejected field.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationErrors is returned by every form's Validate.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, e := range v {
		parts[i] = e.Field + ": " + e.Reason
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

// Has reports whether field was rejected.
func (v ValidationErrors) Has(field string) bool {
	for _, e := range v {
		if e.Field == field {
			return true
		}
	}
	return false
}

// AsValidationErrors unwraps err into field errors.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var v ValidationErrors
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

var (
	pincodeRe = regexp.MustCompile(`^[1-9][0-9]{5}$`)
	// Indian mobile numbers with optional +91 or 0 prefix, spaces and dashes allowed.
	phoneRe = regexp.MustCompile(`^(\+91|0)?[6-9][0-9]{9}$`)
	panRe   = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)

	validate     *validator.Validate
	validateOnce sync.Once
)

func engine() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("pincode", func(fl validator.FieldLevel) bool {
			return pincodeRe.MatchString(strings.TrimSpace(fl.Field().String()))
		})
		_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return phoneRe.MatchString(normalizePhone(fl.Field().String()))
		})
		_ = v.RegisterValidation("pan", func(fl validator.FieldLevel) bool {
			return panRe.MatchString(strings.ToUpper(strings.TrimSpace(fl.Field().String())))
		})
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		validate = v
	})
	return validate
}

func normalizePhone(s string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(s))
}

// check runs struct tags and then the form's extra rules.
func check(form interface{}, extra ...ValidationError) error {
	var out ValidationErrors
	if err := engine().Struct(form); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			out = append(out, ValidationError{Field: fieldPath(fe), Reason: reason(fe)})
		}
	}
	out = append(out, extra...)
	if len(out) == 0 {
		return nil
	}
	return out
}

// fieldPath drops the struct name from the namespace ("Form.skills[0]").
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "pincode":
		return "must be a 6 digit PIN code"
	case "phone":
		return "must be a valid 10 digit mobile number"
	case "pan":
		return "must be a valid PAN (e.g. ABCDE1234F)"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	default:
		return "is invalid"
	}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
