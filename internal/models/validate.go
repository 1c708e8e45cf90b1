package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	apperrors "github.com/tropicaldog17/zakat/internal/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Decimals validate by their numeric value.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	// Report JSON field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// IsISO4217 reports whether c is an assigned ISO 4217 code. c must already
// be upper case.
func IsISO4217(c string) bool {
	return validate.Var(c, "iso4217") == nil
}

// Validate checks amounts are non-negative and codes well formed. The error,
// when not nil, is an apperrors.ValidationErrors.
func (r *ZakatRequest) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.ValidationErrors{{Field: "request", Message: err.Error()}}
	}
	out := make(apperrors.ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, &apperrors.ErrValidation{
			Field:   fieldPath(fe.Namespace()),
			Message: describe(fe),
		})
	}
	return out
}

// fieldPath drops the root struct name: "ZakatRequest.cash.values.savings" → "cash.values.savings".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must be >= " + fe.Param()
	case "lte":
		return "must be <= " + fe.Param()
	case "len":
		return fmt.Sprintf("must be %s characters", fe.Param())
	case "iso4217":
		return "must be an ISO 4217 currency code"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}
