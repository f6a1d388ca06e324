// Package validation wraps go-playground/validator with the locale and money
// rules used by the request DTOs.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	englishLetters = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	arabicLetters  = regexp.MustCompile(`^[\x{0600}-\x{06FF}\s]+$`)
)

// FieldError one failed rule, keyed by the JSON field name.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// Errors all failed rules of a single struct.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, f := range e {
		parts = append(parts, f.Field+": "+f.Rule)
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Validator configured validator instance, safe for concurrent use.
type Validator struct {
	v *validator.Validate
}

// New registers the custom rules:
//
//	english  letters and whitespace only
//	arabic   Arabic block letters and whitespace only
//	money    0 < decimal < 10^16 with at most two fraction digits
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// decimal.Decimal is validated through its string form.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("english", func(fl validator.FieldLevel) bool {
		return englishLetters.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("arabic", func(fl validator.FieldLevel) bool {
		return arabicLetters.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
		return IsMoney(fl.Field().String())
	})

	return &Validator{v: v}
}

// moneyLimit exclusive upper bound of a NUMERIC(18,2) amount.
var moneyLimit = decimal.New(1, 16)

// IsMoney reports whether s is a positive decimal below 10^16 with at most
// two fraction digits.
func IsMoney(s string) bool {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return false
	}
	return d.IsPositive() && d.LessThan(moneyLimit) && d.Equal(d.Round(2))
}

// Struct validates s. The returned error is Errors when rules fail.
func (v *Validator) Struct(s interface{}) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Rule: fe.Tag(), Param: fe.Param()})
	}
	return out
}
