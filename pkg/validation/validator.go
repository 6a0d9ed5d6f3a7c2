package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/oksasatya/rb-marketplace/internal/domain/entity"
)

// MaxPrice is the upper bound accepted for an artwork price, in RB.
var MaxPrice = decimal.NewFromInt(1_000_000)

// Init configures the global validator used by Gin's binding.
// - Uses JSON tag names in errors.
// - Registers marketplace tags: rbprice, category.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		Register(v)
	}
}

// Register installs the tag name func, custom tags and aliases on v.
func Register(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})
	_ = v.RegisterValidation("rbprice", validatePrice)
	_ = v.RegisterValidation("category", validateCategory)
	v.RegisterAlias("uuid4", "uuid")
	v.RegisterAlias("nonzero", "required")
	v.RegisterAlias("sortkey", "oneof=newest popular price-low price-high")
}

// validatePrice accepts a decimal given as any string kind (string,
// json.Number) or as decimal.Decimal. It must be positive, have at most two
// fractional digits and not exceed MaxPrice.
func validatePrice(fl validator.FieldLevel) bool {
	var d decimal.Decimal
	field := fl.Field()
	if dec, ok := field.Interface().(decimal.Decimal); ok {
		d = dec
	} else if field.Kind() == reflect.String {
		parsed, err := decimal.NewFromString(strings.TrimSpace(field.String()))
		if err != nil {
			return false
		}
		d = parsed
	} else {
		return false
	}
	if !d.IsPositive() || d.GreaterThan(MaxPrice) {
		return false
	}
	return d.Equal(d.Round(2))
}

func validateCategory(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	s := fl.Field().String()
	for _, c := range entity.Categories {
		if s == c {
			return true
		}
	}
	return false
}

// ToDetails converts validation/binding errors into a map[field]message suitable for API error.details.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	// Invalid JSON payloads
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
	case "required", "nonzero":
		return "is required"
	case "required_without":
		return "is required when " + param + " is not present"

	case "email":
		return "must be a valid email"
	case "url", "http_url":
		return "must be a valid URL"
	case "uri":
		return "must be a valid URI"
	case "uuid", "uuid4":
		return "must be a valid UUID"

	case "len":
		return fmt.Sprintf("must be exactly %s characters long", param)
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
	case "gt":
		return "must be greater than " + param
	case "gte":
		return "must be greater than or equal to " + param
	case "lte":
		return "must be less than or equal to " + param

	case "oneof", "sortkey":
		if tag == "sortkey" {
			param = "newest popular price-low price-high"
		}
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	case "numeric":
		return "must be numeric"
	case "boolean":
		return "must be a boolean value"

	case "rbprice":
		return "must be a positive RB amount with at most 2 decimals, up to " + MaxPrice.String()
	case "category":
		return "must be one of: " + strings.Join(entity.Categories, ", ")

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
