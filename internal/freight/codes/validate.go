package codes

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/cargodesk/cargodesk/internal/platform/httpx"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the process-wide validator with the freight rules
// registered: port, carrier and container. Field errors are keyed by JSON name.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		mustRegister(v, "port", IsPort)
		mustRegister(v, "carrier", IsCarrier)
		mustRegister(v, "container", IsContainerType)
		validate = v
	})
	return validate
}

func mustRegister(v *validator.Validate, tag string, check func(string) bool) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return check(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("codes: register %s: %v", tag, err))
	}
}

// Check validates s and converts failures into an *httpx.ValidationError.
func Check(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fe.Field()] = message(fe)
	}
	return &httpx.ValidationError{Fields: fields}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "port":
		return "must be a UN/LOCODE such as KRPUS"
	case "carrier":
		return "must be a SCAC or IATA carrier code"
	case "container":
		return "must be one of " + strings.Join(ContainerTypes, ", ")
	case "iso4217":
		return "must be an ISO 4217 currency code"
	case "datetime":
		return "must be a date in YYYY-MM-DD form"
	case "oneof":
		return "must be one of " + fe.Param()
	case "nefield":
		return "must differ from " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "gte", "gt", "lte", "lt", "min":
		return fmt.Sprintf("failed %s=%s", fe.Tag(), fe.Param())
	default:
		return "is invalid"
	}
}

// Invalid builds a single-field validation error.
func Invalid(field, msg string) error {
	return &httpx.ValidationError{Fields: map[string]string{field: msg}}
}
