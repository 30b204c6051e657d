package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/oksasatya/catalog-backoffice/pkg/optional"
)

// valuer is implemented by optional.Field.
type valuer interface {
	ValidationValue() any
}

// Init configures the global validator used by Gin's binding.
// - Uses JSON tag names in errors.
// - Unwraps optional fields so tags apply to the inner value and omitempty
//   skips fields that were absent or null.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		Configure(v)
	}
}

// Configure applies the same setup to any validator instance.
func Configure(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(unwrapOptional,
		optional.Field[string]{},
		optional.Field[int64]{},
		optional.Field[int]{},
		optional.Field[bool]{},
		optional.Field[float64]{},
	)
	v.RegisterAlias("pwd", "min=8")  // password minimum length
	v.RegisterAlias("phone", "e164") // phone number alias
}

func unwrapOptional(field reflect.Value) any {
	if f, ok := field.Interface().(valuer); ok {
		return f.ValidationValue()
	}
	return nil
}

// ToDetails converts validation/binding errors into a map[field]message suitable for API error.details.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	var se *json.SyntaxError
	if errors.As(err, &se) {
		return map[string]string{"payload": "invalid json"}
	}

	// Wrong JSON type for a known field, e.g. "price": "abc".
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) {
		field := strings.Trim(ute.Field, ".")
		if field == "" {
			return map[string]string{"payload": "invalid json"}
		}
		return map[string]string{field: "must be " + describeKind(ute.Type)}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = formatFieldError(fe)
		}
		return out
	}

	return map[string]string{"payload": "invalid payload"}
}

func describeKind(t reflect.Type) string {
	if t == nil {
		return "a valid value"
	}
	switch {
	case isNumberKind(t.Kind()) && t.Kind() >= reflect.Float32:
		return "a number"
	case isNumberKind(t.Kind()):
		return "an integer"
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Slice, reflect.Array:
		return "an array"
	case reflect.Map, reflect.Struct:
		return "an object"
	}
	return "a valid value"
}

func formatFieldError(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()

	switch tag {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "url", "http_url":
		return "must be a valid URL"
	case "e164", "phone":
		return "must be a valid phone number"
	case "numeric", "number":
		return "must be numeric"
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	case "len":
		return fmt.Sprintf("must be exactly %s characters long", param)
	case "min", "gte":
		if isNumberKind(fe.Kind()) {
			return "must be at least " + param
		}
		return "must be at least " + param + " characters long"
	case "max", "lte":
		if isNumberKind(fe.Kind()) {
			return "must be at most " + param
		}
		return "must be at most " + param + " characters long"
	case "gt":
		return "must be greater than " + param
	case "lt":
		return "must be less than " + param
	case "pwd":
		return "must be at least 8 characters"
	default:
		if param != "" {
			return fmt.Sprintf("validation failed for '%s' with parameter '%s'", tag, param)
		}
		return fmt.Sprintf("validation failed for '%s'", tag)
	}
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
