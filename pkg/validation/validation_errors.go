package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Messages overrides the generated text for a "field.tag" pair.
var Messages = map[string]string{
	"fullName.required":          "Full name is required",
	"fullName.min":               "Full name must be at least 2 characters",
	"email.email":                "Invalid email address",
	"email.required":             "Invalid email address",
	"dateOfBirth.past_date":      "Date of Birth must be in the past",
	"dob.past_date":              "Date of Birth must be in the past",
	"address.required":           "Address is required",
	"phoneNumber.required":       "Phone number is required",
	"currentPosition.required":   "Current position is required",
	"skills.min":                 "At least one skill is required",
	"skills.required":            "At least one skill is required",
	"requiredSkills.min":         "At least one skill is required",
	"requiredSkills.required":    "At least one skill is required",
	"recruiterOwner.required":    "Recruiter owner is required",
	"note.max":                   "Note must be 500 characters or less",
	"notes.max":                  "Notes must be 500 characters or less",
	"role.required":              "Please select a role",
	"department.required":        "Please select a department",
	"title.required":             "Required field",
	"workingAddress.required":    "Required field",
	"benefits.min":               "Required field",
	"benefits.required":          "Required field",
	"level.min":                  "Required field",
	"level.required":             "Required field",
	"endDate.gtefield":           "End date must not be before start date",
	"salaryRangeTo.gtefield":     "Salary to must not be less than salary from",
	"contractPeriodEnd.gtefield": "Contract end must not be before contract start",
}

// FormError carries per-field messages for a rejected form.
type FormError struct {
	Fields map[string]string
}

func (e *FormError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewFormError builds a FormError for a single field.
func NewFormError(field, message string) *FormError {
	return &FormError{Fields: map[string]string{field: message}}
}

// Add records a message, keeping the first one per field.
func (e *FormError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = message
	}
}

// Struct validates s and converts validator failures into a *FormError.
func Struct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	return &FormError{Fields: FormatValidationErrors(validationErrors)}
}

// AsFormError extracts a *FormError from err.
func AsFormError(err error) (*FormError, bool) {
	var formErr *FormError
	if errors.As(err, &formErr) {
		return formErr, true
	}
	return nil, false
}

// FormatValidationErrors converts validator.ValidationErrors to field -> message.
// Only the first failure per field is kept.
func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	messages := make(map[string]string, len(errs))
	for _, e := range errs {
		field := baseField(e.Field())
		if _, exists := messages[field]; exists {
			continue
		}
		messages[field] = formatSingleError(e)
	}
	return messages
}

func formatSingleError(e validator.FieldError) string {
	fieldName := baseField(e.Field())
	tag := e.Tag()
	if msg, ok := Messages[fieldName+"."+tag]; ok {
		return msg
	}

	label := FieldLabel(fieldName)
	param := e.Param()

	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", label)

	case "min":
		switch e.Kind().String() {
		case "string":
			return fmt.Sprintf("%s must be at least %s characters", label, param)
		case "slice":
			return fmt.Sprintf("Select at least %s %s", param, strings.ToLower(label))
		}
		return fmt.Sprintf("%s must be at least %s", label, param)

	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be %s characters or less", label, param)
		}
		return fmt.Sprintf("%s must be at most %s", label, param)

	case "gte":
		return fmt.Sprintf("%s must be at least %s", label, param)

	case "gt":
		return fmt.Sprintf("%s is required", label)

	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.Join(strings.Fields(param), ", "))

	case "email":
		return "Invalid email address"

	case "url":
		return fmt.Sprintf("%s must be a valid URL", label)

	case "valid_name":
		return fmt.Sprintf("%s may only contain letters, spaces and common punctuation", label)

	case "valid_phone":
		return fmt.Sprintf("%s must have 7-15 digits, optionally starting with +", label)

	case "no_emoji":
		return fmt.Sprintf("%s must not contain emoji or symbols", label)

	case "past_date":
		return fmt.Sprintf("%s must be in the past", label)

	case "clock":
		return fmt.Sprintf("%s must be a time (HH:mm)", label)

	case "gtefield":
		return fmt.Sprintf("%s must not be before %s", label, strings.ToLower(FieldLabel(lowerFirst(param))))

	case "gtfield":
		return fmt.Sprintf("%s must be after %s", label, strings.ToLower(FieldLabel(lowerFirst(param))))

	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

// FieldLabel turns a camelCase field name into a sentence-case label:
// "currentPosition" -> "Current position".
func FieldLabel(fieldName string) string {
	var result strings.Builder
	for i, r := range fieldName {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
			result.WriteRune(r + ('a' - 'A'))
			continue
		}
		if i == 0 && r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		result.WriteRune(r)
	}
	return result.String()
}

// baseField drops a dive index: "level[0]" -> "level".
func baseField(field string) string {
	if i := strings.IndexByte(field, '['); i > 0 {
		return field[:i]
	}
	return field
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'A' && s[0] <= 'Z' {
		return string(s[0]+('a'-'A')) + s[1:]
	}
	return s
}
