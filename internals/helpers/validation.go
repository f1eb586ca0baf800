package helper

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Shared validator instance for all DTOs. The custom `pan` tag enforces the
// Indian PAN format: 5 uppercase letters, 4 digits, 1 uppercase letter.
var (
	panRegexp = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	Validate  = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("pan", func(fl validator.FieldLevel) bool {
		return panRegexp.MatchString(fl.Field().String())
	})
	return v
}

// IsValidPAN reports whether s matches the PAN format (uppercase only).
func IsValidPAN(s string) bool {
	return panRegexp.MatchString(s)
}

// ValidationErrorMap flattens validator errors into the field → messages map
// used by JsonValidationError. Field keys are snake_cased struct field names.
func ValidationErrorMap(err error) map[string][]string {
	out := map[string][]string{}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		out["_"] = []string{err.Error()}
		return out
	}
	for _, fe := range verrs {
		field := toSnake(fe.Field())
		var msg string
		switch fe.Tag() {
		case "required":
			msg = "is required"
		case "email":
			msg = "must be a valid email"
		case "pan":
			msg = "must match PAN format AAAAA9999A"
		case "gt":
			msg = "must be greater than " + fe.Param()
		case "min":
			msg = "must be at least " + fe.Param()
		case "max":
			msg = "must be at most " + fe.Param()
		case "oneof":
			msg = "must be one of: " + fe.Param()
		case "eq":
			msg = "must equal " + fe.Param()
		default:
			msg = "is invalid"
		}
		out[field] = append(out[field], msg)
	}
	return out
}

// toSnake converts a struct field name to the snake_case key clients see.
// Acronym runs stay together: ParentPAN → parent_pan, FeeAmountINR →
// fee_amount_inr, PANNumber → pan_number.
func toSnake(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if r < 'A' || r > 'Z' {
			b.WriteRune(r)
			continue
		}
		if i > 0 {
			prev := runes[i-1]
			prevUpper := prev >= 'A' && prev <= 'Z'
			nextLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'
			if !prevUpper || nextLower {
				b.WriteByte('_')
			}
		}
		b.WriteRune(r + ('a' - 'A'))
	}
	return b.String()
}
