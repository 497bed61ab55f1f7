package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Init configures the global validator used by Gin's binding: JSON tag names
// in errors plus aliases for common semantics.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		v.RegisterAlias("pwd", "min=8")
		v.RegisterAlias("username", "min=3,max=32,alphanum")
	}
}

// ToDetails converts validation/binding errors into a map[field]message
// suitable for the API error details.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return map[string]string{"payload": "invalid json"}
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

func formatFieldError(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()

	switch tag {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "uuid":
		return "must be a valid UUID"
	case "url":
		return "must be a valid URL"
	case "latitude":
		return "must be a valid latitude"
	case "longitude":
		return "must be a valid longitude"
	case "alphanum":
		return "must contain alphanumeric characters only"
	case "datetime":
		if param != "" {
			return "must match datetime format: " + param
		}
		return "must be a valid datetime"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(param, " ", ", ")
	case "min":
		if isNumberKind(fe.Kind()) {
			return "must be at least " + param
		}
		return "must be at least " + param + " characters long"
	case "max":
		if isNumberKind(fe.Kind()) {
			return "must be at most " + param
		}
		return "must be at most " + param + " characters long"
	case "gte":
		return "must be greater than or equal to " + param
	case "lte":
		return "must be less than or equal to " + param
	case "pwd":
		return "min length 8"
	case "username":
		return "must be 3-32 alphanumeric characters"
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
